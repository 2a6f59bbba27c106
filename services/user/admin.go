package user

import (
	"context"
	"errors"
	"strings"

	"skillbridge/database/repository"
	"skillbridge/models"
	"skillbridge/utils"

	"go.uber.org/zap"
)

func (s *DefaultUserService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil
	}
	existing, err := s.Repo.GetByEmail(ctx, email)
	if err == nil {
		if existing.Role != models.RoleAdmin {
			utils.GetLogger().Warn("Default admin email belongs to a non-admin account", zap.String("email", email))
		}
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	user, err := s.createUser(ctx, name, email, password, models.RoleAdmin)
	if err != nil {
		if utils.IsKind(err, utils.KindConflict) {
			return nil
		}
		return err
	}
	utils.GetLogger().Info("Default admin created", zap.String("userId", user.ID))
	return nil
}
