package tutor

import (
	"context"
	"errors"
	"io"
	"strings"

	"skillbridge/database/repository"
	"skillbridge/models"
	"skillbridge/utils"

	"go.uber.org/zap"
)

// normalizeSubjects trims, drops empties and removes case-insensitive duplicates.
func normalizeSubjects(subjects []string) []string {
	seen := make(map[string]bool, len(subjects))
	out := make([]string, 0, len(subjects))
	for _, s := range subjects {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

func (s *DefaultTutorService) UpdateProfile(ctx context.Context, tutorID string, upd models.TutorProfileUpdate) (*models.TutorCard, error) {
	profile, err := s.Tutors.GetByID(ctx, tutorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFound("tutor profile %s not found", tutorID)
		}
		return nil, utils.Internal(err, "failed to load tutor profile")
	}

	if upd.Bio != nil {
		profile.Bio = strings.TrimSpace(*upd.Bio)
	}
	if upd.HourlyRate != nil {
		if *upd.HourlyRate < 0 {
			return nil, utils.Validation("hourlyRate cannot be negative")
		}
		profile.HourlyRate = *upd.HourlyRate
	}
	if upd.Experience != nil {
		if *upd.Experience < 0 {
			return nil, utils.Validation("experience cannot be negative")
		}
		profile.Experience = *upd.Experience
	}
	if upd.Subjects != nil {
		profile.Subjects = normalizeSubjects(*upd.Subjects)
	}
	if upd.IsAvailable != nil {
		profile.IsAvailable = *upd.IsAvailable
	}
	if upd.CategoryID != nil {
		categoryID := strings.TrimSpace(*upd.CategoryID)
		if categoryID != "" {
			if _, err := s.Categories.GetByID(ctx, categoryID); err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return nil, utils.Validation("category %s does not exist", categoryID)
				}
				return nil, utils.Internal(err, "failed to load category")
			}
		}
		profile.CategoryID = categoryID
	}

	if upd.Name != nil || upd.Phone != nil {
		if _, err := s.Users.UpdateProfile(ctx, tutorID, repository.ProfilePatch{Name: upd.Name, Phone: upd.Phone}); err != nil {
			return nil, utils.Internal(err, "failed to update account")
		}
	}
	if _, err := s.Tutors.Update(ctx, profile); err != nil {
		return nil, utils.Internal(err, "failed to update tutor profile")
	}

	s.invalidate(ctx, tutorID)
	return s.assemble(ctx, tutorID)
}

func (s *DefaultTutorService) UploadAvatar(ctx context.Context, tutorID string, file io.Reader) (*models.TutorCard, error) {
	if s.Storage == nil {
		return nil, utils.PreconditionFailed("avatar upload is not configured")
	}
	url, err := s.Storage.UploadImage(ctx, file, avatarFolder, tutorID)
	if err != nil {
		return nil, utils.Internal(err, "failed to upload avatar")
	}
	if err := s.Users.SetAvatar(ctx, tutorID, url); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFound("tutor %s not found", tutorID)
		}
		return nil, utils.Internal(err, "failed to save avatar")
	}
	s.invalidate(ctx, tutorID)
	return s.assemble(ctx, tutorID)
}

func (s *DefaultTutorService) invalidate(ctx context.Context, tutorID string) {
	if err := s.Cache.Invalidate(ctx, tutorID); err != nil {
		utils.GetLogger().Warn("tutor cache invalidation failed", zap.String("tutorId", tutorID), zap.Error(err))
	}
}
