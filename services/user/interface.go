package user

import (
	"context"
	"time"

	"skillbridge/database/repository"
	"skillbridge/models"
	"skillbridge/services/cache"
)

type UserService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, req models.ProfileUpdateRequest) (*models.User, error)
	// ResolveStatus returns the account status, consulting the auth cache first.
	ResolveStatus(ctx context.Context, userID string) (models.UserStatus, error)
	// EnsureAdmin creates the admin account if no user owns email yet.
	EnsureAdmin(ctx context.Context, name, email, password string) error
}

// TokenIssuer signs bearer tokens for authenticated users.
type TokenIssuer interface {
	GenerateToken(userID string, role models.Role) (string, time.Time, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo     repository.UserRepository
	Tutors   repository.TutorRepository
	Tokens   TokenIssuer
	Statuses cache.StatusCache
}

func NewUserService(repo repository.UserRepository, tutors repository.TutorRepository, tokens TokenIssuer, statuses cache.StatusCache) *DefaultUserService {
	if statuses == nil {
		statuses = cache.NopStatusCache{}
	}
	return &DefaultUserService{Repo: repo, Tutors: tutors, Tokens: tokens, Statuses: statuses}
}
