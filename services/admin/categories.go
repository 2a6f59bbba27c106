package admin

import (
	"context"
	"errors"
	"strings"

	"skillbridge/database/repository"
	"skillbridge/models"
	"skillbridge/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultAdminService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.Categories.List(ctx)
	if err != nil {
		return nil, utils.Internal(err, "failed to list categories")
	}
	return categories, nil
}

func (s *DefaultAdminService) CreateCategory(ctx context.Context, req models.CategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, utils.Validation("name is required")
	}
	category := &models.Category{
		ID:          uuid.New().String(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.Categories.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, utils.Conflict("category %q already exists", name)
		}
		return nil, utils.Internal(err, "failed to create category")
	}
	return category, nil
}

func (s *DefaultAdminService) UpdateCategory(ctx context.Context, id string, upd models.CategoryUpdate) (*models.Category, error) {
	category, err := s.Categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFound("category %s not found", id)
		}
		return nil, utils.Internal(err, "failed to load category")
	}
	if upd.Name != nil {
		if category.Name = strings.TrimSpace(*upd.Name); category.Name == "" {
			return nil, utils.Validation("name cannot be empty")
		}
	}
	if upd.Description != nil {
		category.Description = strings.TrimSpace(*upd.Description)
	}

	updated, err := s.Categories.Update(ctx, category)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, utils.Conflict("category %q already exists", category.Name)
		case errors.Is(err, repository.ErrNotFound):
			return nil, utils.NotFound("category %s not found", id)
		}
		return nil, utils.Internal(err, "failed to update category")
	}
	return updated, nil
}

func (s *DefaultAdminService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.Categories.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.NotFound("category %s not found", id)
		}
		return utils.Internal(err, "failed to delete category")
	}
	detached, err := s.Tutors.ClearCategory(ctx, id)
	if err != nil {
		return utils.Internal(err, "category deleted but tutor profiles were not updated")
	}
	utils.GetLogger().Info("Category deleted", zap.String("categoryId", id), zap.Int64("tutorsDetached", detached))
	return nil
}
