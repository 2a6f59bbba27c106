package review

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"skillbridge/database/repository"
	"skillbridge/models"
	"skillbridge/utils"
)

type memReviewRepo struct {
	mu         sync.Mutex
	byBooking  map[string]models.Review
	summaryErr error
}

func newMemReviewRepo() *memReviewRepo {
	return &memReviewRepo{byBooking: map[string]models.Review{}}
}

func (r *memReviewRepo) Create(_ context.Context, review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byBooking[review.BookingID]; ok {
		return repository.ErrDuplicate
	}
	r.byBooking[review.BookingID] = *review
	return nil
}

func (r *memReviewRepo) ListByTutor(_ context.Context, tutorID string) ([]models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Review
	for _, rv := range r.byBooking {
		if rv.TutorID == tutorID {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (r *memReviewRepo) Summary(ctx context.Context, tutorID string) (models.RatingSummary, error) {
	if r.summaryErr != nil {
		return models.RatingSummary{}, r.summaryErr
	}
	reviews, _ := r.ListByTutor(ctx, tutorID)
	if len(reviews) == 0 {
		return models.RatingSummary{}, nil
	}
	total := 0
	for _, rv := range reviews {
		total += rv.Rating
	}
	return models.RatingSummary{Average: float64(total) / float64(len(reviews)), Count: len(reviews)}, nil
}

type stubBookingRepo struct {
	bookings map[string]models.Booking
}

func (r *stubBookingRepo) CreateExclusive(context.Context, *models.Booking) error { return nil }

func (r *stubBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (r *stubBookingRepo) Transition(context.Context, string, []models.BookingStatus, models.BookingStatus, time.Time) (*models.Booking, error) {
	return nil, repository.ErrNotFound
}

func (r *stubBookingRepo) List(context.Context, models.BookingFilter) ([]models.Booking, error) {
	return nil, nil
}

func (r *stubBookingRepo) MarkReminderSent(context.Context, string, time.Time) (bool, error) {
	return false, nil
}

// ratingTutorRepo applies the same monotonic guard as the Mongo repository.
type ratingTutorRepo struct {
	mu      sync.Mutex
	ratings map[string]models.RatingSummary
}

func (r *ratingTutorRepo) Create(context.Context, *models.TutorProfile) error { return nil }

func (r *ratingTutorRepo) GetByID(_ context.Context, id string) (*models.TutorProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.ratings[id]
	return &models.TutorProfile{ID: id, Rating: s.Average, TotalReviews: s.Count}, nil
}

func (r *ratingTutorRepo) Update(_ context.Context, p *models.TutorProfile) (*models.TutorProfile, error) {
	return p, nil
}

func (r *ratingTutorRepo) Search(context.Context, repository.TutorSearchCriteria) ([]repository.TutorSearchResult, int64, error) {
	return nil, 0, nil
}

func (r *ratingTutorRepo) UpdateRating(_ context.Context, id string, summary models.RatingSummary) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ratings[id].Count > summary.Count {
		return false, nil
	}
	r.ratings[id] = summary
	return true, nil
}

func (r *ratingTutorRepo) ClearCategory(context.Context, string) (int64, error) { return 0, nil }

var student = models.Principal{UserID: "student-1", Role: models.RoleStudent}

func newTestService() (*DefaultReviewService, *memReviewRepo, *ratingTutorRepo) {
	utils.GetLogger()
	reviews := newMemReviewRepo()
	tutors := &ratingTutorRepo{ratings: map[string]models.RatingSummary{}}
	bookings := &stubBookingRepo{bookings: map[string]models.Booking{
		"done-1":    {ID: "done-1", StudentID: "student-1", TutorID: "tutor-1", Status: models.BookingCompleted},
		"done-2":    {ID: "done-2", StudentID: "student-1", TutorID: "tutor-1", Status: models.BookingCompleted},
		"done-3":    {ID: "done-3", StudentID: "student-2", TutorID: "tutor-1", Status: models.BookingCompleted},
		"confirmed": {ID: "confirmed", StudentID: "student-1", TutorID: "tutor-1", Status: models.BookingConfirmed},
		"cancelled": {ID: "cancelled", StudentID: "student-1", TutorID: "tutor-1", Status: models.BookingCancelled},
	}}
	return NewReviewService(reviews, bookings, tutors, nil), reviews, tutors
}

func expectKind(t *testing.T, err error, kind utils.ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s, got nil", kind)
	}
	if got := utils.KindOf(err); got != kind {
		t.Fatalf("expected %s, got %s (%v)", kind, got, err)
	}
}

func TestSubmitReviewUpdatesRating(t *testing.T) {
	svc, _, tutors := newTestService()
	ctx := context.Background()

	r, err := svc.SubmitReview(ctx, student, models.ReviewRequest{BookingID: "done-1", Rating: 5, Comment: "  great  "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.TutorID != "tutor-1" || r.Comment != "great" {
		t.Fatalf("unexpected review %+v", r)
	}
	if got := tutors.ratings["tutor-1"]; got.Average != 5 || got.Count != 1 {
		t.Fatalf("expected rating 5 over 1 review, got %+v", got)
	}

	if _, err := svc.SubmitReview(ctx, student, models.ReviewRequest{BookingID: "done-2", Rating: 4}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	other := models.Principal{UserID: "student-2", Role: models.RoleStudent}
	if _, err := svc.SubmitReview(ctx, other, models.ReviewRequest{BookingID: "done-3", Rating: 4}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := tutors.ratings["tutor-1"]
	if got.Count != 3 || got.Average != 13.0/3.0 {
		t.Fatalf("expected exact mean 13/3 over 3 reviews, got %+v", got)
	}
}

func TestSecondReviewIsConflict(t *testing.T) {
	svc, _, tutors := newTestService()
	ctx := context.Background()

	if _, err := svc.SubmitReview(ctx, student, models.ReviewRequest{BookingID: "done-1", Rating: 5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := svc.SubmitReview(ctx, student, models.ReviewRequest{BookingID: "done-1", Rating: 1})
	expectKind(t, err, utils.KindConflict)

	if got := tutors.ratings["tutor-1"]; got.Average != 5 || got.Count != 1 {
		t.Fatalf("rejected review must not change the rating, got %+v", got)
	}
}

func TestConcurrentReviewsForOneBooking(t *testing.T) {
	svc, reviews, _ := newTestService()

	var wg sync.WaitGroup
	errs := make(chan error, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(rating int) {
			defer wg.Done()
			_, err := svc.SubmitReview(context.Background(), student, models.ReviewRequest{BookingID: "done-1", Rating: rating})
			errs <- err
		}(i + 1)
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
		} else if !utils.IsKind(err, utils.KindConflict) {
			t.Fatalf("unexpected error kind: %v", err)
		}
	}
	if ok != 1 || len(reviews.byBooking) != 1 {
		t.Fatalf("expected exactly one stored review, got %d successes", ok)
	}
}

func TestSubmitReviewCheckOrder(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	stranger := models.Principal{UserID: "student-9", Role: models.RoleStudent}

	cases := []struct {
		name  string
		actor models.Principal
		req   models.ReviewRequest
		kind  utils.ErrorKind
	}{
		{"rating too low", student, models.ReviewRequest{BookingID: "missing", Rating: 0}, utils.KindValidation},
		{"rating too high", student, models.ReviewRequest{BookingID: "done-1", Rating: 6}, utils.KindValidation},
		{"unknown booking", student, models.ReviewRequest{BookingID: "missing", Rating: 3}, utils.KindNotFound},
		{"not the student", stranger, models.ReviewRequest{BookingID: "confirmed", Rating: 3}, utils.KindUnauthorized},
		{"confirmed booking", student, models.ReviewRequest{BookingID: "confirmed", Rating: 3}, utils.KindPreconditionFailed},
		{"cancelled booking", student, models.ReviewRequest{BookingID: "cancelled", Rating: 3}, utils.KindPreconditionFailed},
	}
	for _, tc := range cases {
		_, err := svc.SubmitReview(ctx, tc.actor, tc.req)
		if err == nil || utils.KindOf(err) != tc.kind {
			t.Fatalf("%s: expected %s, got %v", tc.name, tc.kind, err)
		}
	}
}

func TestRecomputeFailureKeepsReview(t *testing.T) {
	svc, reviews, _ := newTestService()
	reviews.summaryErr = errors.New("aggregate timeout")

	r, err := svc.SubmitReview(context.Background(), student, models.ReviewRequest{BookingID: "done-1", Rating: 4})
	if err != nil {
		t.Fatalf("review should be accepted even if the recompute fails: %v", err)
	}
	if _, ok := reviews.byBooking[r.BookingID]; !ok {
		t.Fatalf("review was not stored")
	}

	reviews.summaryErr = nil
	summary, err := svc.RecomputeRating(context.Background(), "tutor-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Count != 1 || summary.Average != 4 {
		t.Fatalf("recompute should repair the aggregate, got %+v", summary)
	}
}
