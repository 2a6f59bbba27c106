package userRepo

import (
	"context"

	"skillbridge/models"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// Create inserts a new user; a taken email yields database.ErrDuplicate.
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail includes the password hash for login.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.User, error)
	UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (*models.User, error)
	SetAvatar(ctx context.Context, id, url string) error
	SetStatus(ctx context.Context, id string, status models.UserStatus) (*models.User, error)
	List(ctx context.Context, criteria UserSearchCriteria) ([]models.User, int64, error)
	// Delete removes an account; a missing id yields database.ErrNotFound.
	Delete(ctx context.Context, id string) error
}

// ProfilePatch holds account fields editable by their owner; nil means unchanged.
type ProfilePatch struct {
	Name  *string
	Phone *string
}

// UserSearchCriteria holds parameters for the admin user listing.
type UserSearchCriteria struct {
	Role   models.Role
	Status models.UserStatus
	Search string // partial name or email, case-insensitive
	Page   int
	Limit  int
}
