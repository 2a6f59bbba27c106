package admin

import (
	"context"
	"errors"

	"skillbridge/database/repository"
	"skillbridge/models"
	"skillbridge/utils"

	"go.uber.org/zap"
)

const (
	defaultUserPageSize = 20
	maxUserPageSize     = 100
)

func (s *DefaultAdminService) ListUsers(ctx context.Context, filter models.UserFilter) (*models.UserPage, error) {
	criteria := repository.UserSearchCriteria{Search: filter.Search, Page: filter.Page, Limit: filter.Limit}
	if filter.Role != "" {
		role, ok := models.ParseRole(filter.Role)
		if !ok {
			return nil, utils.Validation("unknown role %q", filter.Role)
		}
		criteria.Role = role
	}
	if filter.Status != "" {
		status, ok := models.ParseUserStatus(filter.Status)
		if !ok {
			return nil, utils.Validation("unknown status %q", filter.Status)
		}
		criteria.Status = status
	}
	if criteria.Page < 1 {
		criteria.Page = 1
	} else if criteria.Page > models.MaxPage {
		criteria.Page = models.MaxPage
	}
	if criteria.Limit < 1 {
		criteria.Limit = defaultUserPageSize
	} else if criteria.Limit > maxUserPageSize {
		criteria.Limit = maxUserPageSize
	}

	users, total, err := s.Users.List(ctx, criteria)
	if err != nil {
		return nil, utils.Internal(err, "failed to list users")
	}
	return &models.UserPage{
		Users: users,
		Pagination: models.Pagination{
			Page:       criteria.Page,
			Limit:      criteria.Limit,
			Total:      total,
			TotalPages: int((total + int64(criteria.Limit) - 1) / int64(criteria.Limit)),
		},
	}, nil
}

func (s *DefaultAdminService) SetUserStatus(ctx context.Context, actor models.Principal, userID, status string) (*models.User, error) {
	next, ok := models.ParseUserStatus(status)
	if !ok {
		return nil, utils.Validation("status must be ACTIVE or BANNED")
	}
	if userID == actor.UserID {
		return nil, utils.Validation("admins cannot change their own status")
	}

	user, err := s.Users.SetStatus(ctx, userID, next)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFound("user %s not found", userID)
		}
		return nil, utils.Internal(err, "failed to update user status")
	}

	logger := utils.GetLogger().With(zap.String("userId", userID), zap.String("status", string(next)))
	if err := s.Statuses.Invalidate(ctx, userID); err != nil {
		logger.Warn("auth cache invalidation failed", zap.Error(err))
	}
	if user.Role == models.RoleTutor {
		if err := s.TutorCache.Invalidate(ctx, userID); err != nil {
			logger.Warn("tutor cache invalidation failed", zap.Error(err))
		}
	}
	logger.Info("User status changed", zap.String("by", actor.UserID))
	return user, nil
}
