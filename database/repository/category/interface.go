package categoryRepo

import (
	"context"

	"skillbridge/models"
)

type CategoryRepository interface {
	// Create returns database.ErrDuplicate when the name is taken (case-insensitive).
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id string) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	Update(ctx context.Context, category *models.Category) (*models.Category, error)
	Delete(ctx context.Context, id string) error
}
