package user

import (
	"context"
	"errors"
	"strings"

	"skillbridge/database/repository"
	"skillbridge/models"
	"skillbridge/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func (s *DefaultUserService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	role, ok := models.ParseRole(req.Role)
	if !ok || role == models.RoleAdmin {
		return nil, utils.Validation("role must be student or tutor")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, utils.Validation("name is required")
	}

	user, err := s.createUser(ctx, name, req.Email, req.Password, role)
	if err != nil {
		return nil, err
	}

	if role == models.RoleTutor {
		profile := &models.TutorProfile{ID: user.ID, Subjects: []string{}, IsAvailable: true}
		if err := s.Tutors.Create(ctx, profile); err != nil {
			// Roll back so the email can register again.
			if delErr := s.Repo.Delete(ctx, user.ID); delErr != nil {
				utils.GetLogger().Error("Failed to remove user after tutor profile error",
					zap.String("userId", user.ID), zap.Error(delErr))
			}
			return nil, utils.Internal(err, "failed to create tutor profile")
		}
	}

	utils.GetLogger().Info("User registered", zap.String("userId", user.ID), zap.String("role", string(role)))
	return s.issue(user)
}

func (s *DefaultUserService) createUser(ctx context.Context, name, email, password string, role models.Role) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.Internal(err, "failed to hash password")
	}
	user := &models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		Role:         role,
		Status:       models.UserActive,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, utils.Conflict("email %s is already registered", user.Email)
		}
		return nil, utils.Internal(err, "failed to create user")
	}
	return user, nil
}

func (s *DefaultUserService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.Unauthenticated("invalid email or password")
		}
		return nil, utils.Internal(err, "authentication failed, please try again")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, utils.Unauthenticated("invalid email or password")
	}
	if user.Status == models.UserBanned {
		return nil, utils.Unauthorized("account is banned")
	}
	return s.issue(user)
}

func (s *DefaultUserService) issue(user *models.User) (*models.AuthResponse, error) {
	token, expires, err := s.Tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, utils.Internal(err, "failed to issue token")
	}
	user.PasswordHash = ""
	return &models.AuthResponse{Token: token, ExpiresAt: expires, User: user}, nil
}
