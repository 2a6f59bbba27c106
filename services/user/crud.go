package user

import (
	"context"
	"errors"

	"skillbridge/database/repository"
	"skillbridge/models"
	"skillbridge/utils"

	"go.uber.org/zap"
)

func (s *DefaultUserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFound("user %s not found", userID)
		}
		return nil, utils.Internal(err, "failed to load user")
	}
	return user, nil
}

func (s *DefaultUserService) UpdateProfile(ctx context.Context, userID string, req models.ProfileUpdateRequest) (*models.User, error) {
	user, err := s.Repo.UpdateProfile(ctx, userID, repository.ProfilePatch{Name: req.Name, Phone: req.Phone})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFound("user %s not found", userID)
		}
		return nil, utils.Internal(err, "failed to update profile")
	}
	return user, nil
}

func (s *DefaultUserService) ResolveStatus(ctx context.Context, userID string) (models.UserStatus, error) {
	status, err := s.Statuses.Get(ctx, userID)
	if err != nil {
		utils.GetLogger().Warn("auth cache read failed", zap.String("userId", userID), zap.Error(err))
	} else if status != "" {
		return status, nil
	}

	user, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", utils.Unauthenticated("account no longer exists")
		}
		return "", utils.Internal(err, "failed to load account")
	}
	if err := s.Statuses.Set(ctx, userID, user.Status); err != nil {
		utils.GetLogger().Warn("auth cache write failed", zap.String("userId", userID), zap.Error(err))
	}
	return user.Status, nil
}
