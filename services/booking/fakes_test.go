package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	"skillbridge/database/repository"
	"skillbridge/models"
)

// memBookingRepo mirrors the storage guarantees of the Mongo repository:
// exclusive creation per tutor and compare-and-swap transitions.
type memBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]models.Booking
	tutors   map[string]bool
}

func newMemBookingRepo(tutorIDs ...string) *memBookingRepo {
	r := &memBookingRepo{bookings: map[string]models.Booking{}, tutors: map[string]bool{}}
	for _, id := range tutorIDs {
		r.tutors[id] = true
	}
	return r
}

func (r *memBookingRepo) CreateExclusive(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.tutors[b.TutorID] {
		return repository.ErrNotFound
	}
	for _, other := range r.bookings {
		if other.TutorID != b.TutorID || !other.Status.Active() {
			continue
		}
		if other.ScheduledAt.Before(b.EndsAt) && other.EndsAt.After(b.ScheduledAt) {
			return repository.ErrConflict
		}
	}
	b.ActiveSlotKey = models.ActiveSlotKey(b.TutorID, b.ScheduledAt)
	r.bookings[b.ID] = *b
	return nil
}

func (r *memBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (r *memBookingRepo) Transition(_ context.Context, id string, from []models.BookingStatus, to models.BookingStatus, at time.Time) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	matched := false
	for _, s := range from {
		if b.Status == s {
			matched = true
		}
	}
	if !matched {
		return nil, repository.ErrNotFound
	}
	b.Status = to
	b.UpdatedAt = at
	switch to {
	case models.BookingConfirmed:
		b.ConfirmedAt = &at
	case models.BookingCompleted:
		b.CompletedAt = &at
	case models.BookingCancelled:
		b.CancelledAt = &at
	}
	if !to.Active() {
		b.ActiveSlotKey = ""
	}
	r.bookings[id] = b
	return &b, nil
}

func (r *memBookingRepo) List(_ context.Context, f models.BookingFilter) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if f.StudentID != "" && b.StudentID != f.StudentID {
			continue
		}
		if f.TutorID != "" && b.TutorID != f.TutorID {
			continue
		}
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *memBookingRepo) MarkReminderSent(_ context.Context, id string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status != models.BookingConfirmed || b.ReminderSentAt != nil {
		return false, nil
	}
	b.ReminderSentAt = &at
	r.bookings[id] = b
	return true, nil
}

// stubTutorRepo serves profiles from a map; other methods are unused by bookings.
type stubTutorRepo struct {
	profiles map[string]models.TutorProfile
}

func (r *stubTutorRepo) Create(context.Context, *models.TutorProfile) error { return nil }

func (r *stubTutorRepo) GetByID(_ context.Context, id string) (*models.TutorProfile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *stubTutorRepo) Update(_ context.Context, p *models.TutorProfile) (*models.TutorProfile, error) {
	return p, nil
}

func (r *stubTutorRepo) Search(context.Context, repository.TutorSearchCriteria) ([]repository.TutorSearchResult, int64, error) {
	return nil, 0, nil
}

func (r *stubTutorRepo) UpdateRating(context.Context, string, models.RatingSummary) (bool, error) {
	return true, nil
}

func (r *stubTutorRepo) ClearCategory(context.Context, string) (int64, error) { return 0, nil }

type stubSlotRepo struct {
	slots map[string]models.AvailabilitySlot
}

func (r *stubSlotRepo) Create(context.Context, *models.AvailabilitySlot) error { return nil }

func (r *stubSlotRepo) GetByID(_ context.Context, id string) (*models.AvailabilitySlot, error) {
	s, ok := r.slots[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (r *stubSlotRepo) Update(_ context.Context, s *models.AvailabilitySlot) (*models.AvailabilitySlot, error) {
	return s, nil
}

func (r *stubSlotRepo) Delete(context.Context, string, string) error { return nil }

func (r *stubSlotRepo) ListByTutor(context.Context, string) ([]models.AvailabilitySlot, error) {
	return nil, nil
}

func (r *stubSlotRepo) ListByTutors(context.Context, []string) ([]models.AvailabilitySlot, error) {
	return nil, nil
}

func (r *stubSlotRepo) ReplaceForTutor(context.Context, string, []models.AvailabilitySlot) error {
	return nil
}

type recordingScheduler struct {
	mu        sync.Mutex
	scheduled []string
	err       error
}

func (s *recordingScheduler) ScheduleReminder(_ context.Context, b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduled = append(s.scheduled, b.ID)
	return s.err
}

var errSchedulerDown = errors.New("queue unavailable")
