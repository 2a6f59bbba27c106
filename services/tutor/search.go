package tutor

import (
	"context"
	"strings"

	"skillbridge/database/repository"
	"skillbridge/models"
	"skillbridge/utils"
)

// normalizeFilter applies paging defaults and rejects contradictory ranges.
func normalizeFilter(f models.TutorFilter) (repository.TutorSearchCriteria, error) {
	c := repository.TutorSearchCriteria{
		SearchTerm:  strings.TrimSpace(f.SearchTerm),
		CategoryID:  strings.TrimSpace(f.CategoryID),
		Subject:     strings.TrimSpace(f.Subject),
		MinRating:   f.MinRating,
		MinPrice:    f.MinPrice,
		MaxPrice:    f.MaxPrice,
		IsAvailable: f.IsAvailable,
		SortBy:      f.SortBy,
		Descending:  f.SortOrder != "asc",
		Page:        f.Page,
		Limit:       f.Limit,
	}
	if c.MinPrice != nil && c.MaxPrice != nil && *c.MinPrice > *c.MaxPrice {
		return c, utils.Validation("minPrice cannot exceed maxPrice")
	}
	if c.SortBy == "" {
		c.SortBy = "rating"
	}
	switch {
	case c.Page < 1:
		c.Page = 1
	case c.Page > models.MaxPage:
		c.Page = models.MaxPage
	}
	switch {
	case c.Limit < 1:
		c.Limit = DefaultPageSize
	case c.Limit > MaxPageSize:
		c.Limit = MaxPageSize
	}
	return c, nil
}

func (s *DefaultTutorService) SearchTutors(ctx context.Context, filter models.TutorFilter) (*models.TutorPage, error) {
	criteria, err := normalizeFilter(filter)
	if err != nil {
		return nil, err
	}

	results, total, err := s.Tutors.Search(ctx, criteria)
	if err != nil {
		return nil, utils.Internal(err, "failed to search tutors")
	}

	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.Profile.ID
	}
	slots, err := s.Slots.ListByTutors(ctx, ids)
	if err != nil {
		return nil, utils.Internal(err, "failed to load availability")
	}
	slotsByTutor := make(map[string][]models.AvailabilitySlot, len(ids))
	for _, slot := range slots {
		slotsByTutor[slot.TutorID] = append(slotsByTutor[slot.TutorID], slot)
	}

	categories, err := s.Categories.List(ctx)
	if err != nil {
		return nil, utils.Internal(err, "failed to load categories")
	}
	categoryByID := make(map[string]*models.Category, len(categories))
	for i := range categories {
		categoryByID[categories[i].ID] = &categories[i]
	}

	cards := make([]models.TutorCard, 0, len(results))
	for _, r := range results {
		cards = append(cards, *buildCard(r.Profile, r.User, slotsByTutor[r.Profile.ID], categoryByID[r.Profile.CategoryID]))
	}

	totalPages := int((total + int64(criteria.Limit) - 1) / int64(criteria.Limit))
	return &models.TutorPage{
		Tutors: cards,
		Pagination: models.Pagination{
			Page:       criteria.Page,
			Limit:      criteria.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}
