package tutorRepo

import (
	"context"

	"skillbridge/models"
)

// TutorRepository persists tutor profiles and serves the public directory.
type TutorRepository interface {
	Create(ctx context.Context, profile *models.TutorProfile) error
	GetByID(ctx context.Context, id string) (*models.TutorProfile, error)
	// Update writes the editable fields of profile and returns the stored document.
	Update(ctx context.Context, profile *models.TutorProfile) (*models.TutorProfile, error)
	Search(ctx context.Context, criteria TutorSearchCriteria) ([]TutorSearchResult, int64, error)
	// UpdateRating stores a recomputed summary unless a newer one (higher count) is already stored.
	UpdateRating(ctx context.Context, tutorID string, summary models.RatingSummary) (bool, error)
	ClearCategory(ctx context.Context, categoryID string) (int64, error)
}

// TutorSearchCriteria is the normalized directory query.
type TutorSearchCriteria struct {
	SearchTerm  string
	CategoryID  string
	Subject     string
	MinRating   *float64
	MinPrice    *float64
	MaxPrice    *float64
	IsAvailable *bool
	SortBy      string // rating | price | experience
	Descending  bool
	Page        int
	Limit       int
}

// TutorSearchResult is a profile joined with its owning account.
type TutorSearchResult struct {
	Profile models.TutorProfile `bson:",inline"`
	User    models.User         `bson:"user"`
}
