package admin

import (
	"context"

	"skillbridge/database/repository"
	"skillbridge/models"
	"skillbridge/services/cache"
)

// AdminService covers account moderation.
type AdminService interface {
	ListUsers(ctx context.Context, filter models.UserFilter) (*models.UserPage, error)
	SetUserStatus(ctx context.Context, actor models.Principal, userID, status string) (*models.User, error)
}

// CategoryService manages the admin-owned category list.
type CategoryService interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, req models.CategoryRequest) (*models.Category, error)
	UpdateCategory(ctx context.Context, id string, upd models.CategoryUpdate) (*models.Category, error)
	// DeleteCategory also detaches the category from every tutor profile.
	DeleteCategory(ctx context.Context, id string) error
}

type DefaultAdminService struct {
	Users      repository.UserRepository
	Tutors     repository.TutorRepository
	Categories repository.CategoryRepository
	Statuses   cache.StatusCache
	TutorCache cache.TutorCache
}

func NewAdminService(
	users repository.UserRepository,
	tutors repository.TutorRepository,
	categories repository.CategoryRepository,
	statuses cache.StatusCache,
	tutorCache cache.TutorCache,
) *DefaultAdminService {
	if statuses == nil {
		statuses = cache.NopStatusCache{}
	}
	if tutorCache == nil {
		tutorCache = cache.NopTutorCache{}
	}
	return &DefaultAdminService{
		Users:      users,
		Tutors:     tutors,
		Categories: categories,
		Statuses:   statuses,
		TutorCache: tutorCache,
	}
}
