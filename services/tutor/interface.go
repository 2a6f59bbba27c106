package tutor

import (
	"context"
	"io"
	"time"

	"skillbridge/database/repository"
	"skillbridge/models"
	"skillbridge/services/cache"
	"skillbridge/services/storage"
)

const (
	DefaultPageSize = 12
	MaxPageSize     = 50
	avatarFolder    = "skillbridge/avatars"
)

// TutorService serves the public tutor directory and tutors' own profiles.
type TutorService interface {
	SearchTutors(ctx context.Context, filter models.TutorFilter) (*models.TutorPage, error)
	GetTutor(ctx context.Context, tutorID string) (*models.TutorCard, error)
	GetOwnProfile(ctx context.Context, tutorID string) (*models.TutorCard, error)
	UpdateProfile(ctx context.Context, tutorID string, upd models.TutorProfileUpdate) (*models.TutorCard, error)
	UploadAvatar(ctx context.Context, tutorID string, file io.Reader) (*models.TutorCard, error)
}

type DefaultTutorService struct {
	Tutors     repository.TutorRepository
	Users      repository.UserRepository
	Slots      repository.AvailabilityRepository
	Categories repository.CategoryRepository
	Cache      cache.TutorCache
	// Storage is nil when avatar upload is not configured.
	Storage storage.StorageService
	Now     func() time.Time
}

func NewTutorService(
	tutors repository.TutorRepository,
	users repository.UserRepository,
	slots repository.AvailabilityRepository,
	categories repository.CategoryRepository,
	tutorCache cache.TutorCache,
	store storage.StorageService,
) *DefaultTutorService {
	if tutorCache == nil {
		tutorCache = cache.NopTutorCache{}
	}
	return &DefaultTutorService{
		Tutors:     tutors,
		Users:      users,
		Slots:      slots,
		Categories: categories,
		Cache:      tutorCache,
		Storage:    store,
		Now:        time.Now,
	}
}
