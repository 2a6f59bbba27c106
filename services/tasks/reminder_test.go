package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"skillbridge/database/repository"
	"skillbridge/models"

	"github.com/hibiken/asynq"
)

type stubEnqueuer struct {
	tasks []*asynq.Task
	opts  [][]asynq.Option
	err   error
}

func (e *stubEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	e.tasks = append(e.tasks, task)
	e.opts = append(e.opts, opts)
	if e.err != nil {
		return nil, e.err
	}
	return &asynq.TaskInfo{ID: "task-1"}, nil
}

var now = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

func newTestScheduler(e Enqueuer) *AsynqReminderScheduler {
	s := NewReminderScheduler(e, time.Hour)
	s.Now = func() time.Time { return now }
	return s
}

func TestScheduleReminderEnqueuesBeforeSession(t *testing.T) {
	e := &stubEnqueuer{}
	s := newTestScheduler(e)
	b := &models.Booking{ID: "b1", StudentID: "s1", TutorID: "t1", ScheduledAt: now.Add(24 * time.Hour)}

	if err := s.ScheduleReminder(context.Background(), b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(e.tasks) != 1 {
		t.Fatalf("expected one task, got %d", len(e.tasks))
	}
	if e.tasks[0].Type() != TypeSendReminder {
		t.Fatalf("unexpected task type %s", e.tasks[0].Type())
	}

	var payload models.ReminderPayload
	if err := json.Unmarshal(e.tasks[0].Payload(), &payload); err != nil {
		t.Fatalf("invalid payload: %v", err)
	}
	if payload.BookingID != "b1" || payload.StudentID != "s1" || payload.TutorID != "t1" {
		t.Fatalf("unexpected payload %+v", payload)
	}

	var gotID string
	var gotAt time.Time
	for _, o := range e.opts[0] {
		switch o.Type() {
		case asynq.TaskIDOpt:
			gotID = o.Value().(string)
		case asynq.ProcessAtOpt:
			gotAt = o.Value().(time.Time)
		}
	}
	if gotID != "reminder:b1" {
		t.Fatalf("expected deterministic task id, got %q", gotID)
	}
	if !gotAt.Equal(now.Add(23 * time.Hour)) {
		t.Fatalf("expected fire time one hour before session, got %v", gotAt)
	}
}

func TestScheduleReminderSkipsPassedWindow(t *testing.T) {
	e := &stubEnqueuer{}
	s := newTestScheduler(e)
	b := &models.Booking{ID: "b1", ScheduledAt: now.Add(30 * time.Minute)}

	if err := s.ScheduleReminder(context.Background(), b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(e.tasks) != 0 {
		t.Fatalf("no task expected inside the lead time")
	}
}

func TestScheduleReminderIgnoresDuplicateTask(t *testing.T) {
	s := newTestScheduler(&stubEnqueuer{err: asynq.ErrTaskIDConflict})
	b := &models.Booking{ID: "b1", ScheduledAt: now.Add(24 * time.Hour)}
	if err := s.ScheduleReminder(context.Background(), b); err != nil {
		t.Fatalf("duplicate reminder should be ignored, got %v", err)
	}

	s = newTestScheduler(&stubEnqueuer{err: errors.New("redis down")})
	if err := s.ScheduleReminder(context.Background(), b); err == nil {
		t.Fatalf("expected enqueue failure to surface")
	}
}

type reminderBookingRepo struct {
	bookings map[string]models.Booking
}

func (r *reminderBookingRepo) CreateExclusive(context.Context, *models.Booking) error { return nil }

func (r *reminderBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (r *reminderBookingRepo) Transition(context.Context, string, []models.BookingStatus, models.BookingStatus, time.Time) (*models.Booking, error) {
	return nil, repository.ErrNotFound
}

func (r *reminderBookingRepo) List(context.Context, models.BookingFilter) ([]models.Booking, error) {
	return nil, nil
}

func (r *reminderBookingRepo) MarkReminderSent(_ context.Context, id string, at time.Time) (bool, error) {
	b, ok := r.bookings[id]
	if !ok || b.Status != models.BookingConfirmed || b.ReminderSentAt != nil {
		return false, nil
	}
	b.ReminderSentAt = &at
	r.bookings[id] = b
	return true, nil
}

type recordingNotifier struct {
	sent []models.Reminder
	to   [][]string
}

func (n *recordingNotifier) SendReminder(_ context.Context, r models.Reminder, recipients ...string) error {
	n.sent = append(n.sent, r)
	n.to = append(n.to, recipients)
	return nil
}

func reminderTask(t *testing.T, bookingID string) *asynq.Task {
	t.Helper()
	task, _, err := NewReminderTask(models.ReminderPayload{BookingID: bookingID}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return task
}

func TestReminderHandlerSendsOnceForConfirmed(t *testing.T) {
	repo := &reminderBookingRepo{bookings: map[string]models.Booking{
		"b1": {ID: "b1", StudentID: "s1", TutorID: "t1", Status: models.BookingConfirmed, Duration: 60, ScheduledAt: now.Add(time.Hour)},
	}}
	n := &recordingNotifier{}
	h := NewReminderHandler(repo, n)

	for i := 0; i < 2; i++ {
		if err := h.ProcessTask(context.Background(), reminderTask(t, "b1")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if len(n.sent) != 1 {
		t.Fatalf("expected exactly one reminder, got %d", len(n.sent))
	}
	if len(n.to[0]) != 2 || n.to[0][0] != "s1" || n.to[0][1] != "t1" {
		t.Fatalf("unexpected recipients %v", n.to[0])
	}
}

func TestReminderHandlerSkipsInactiveBookings(t *testing.T) {
	repo := &reminderBookingRepo{bookings: map[string]models.Booking{
		"cancelled": {ID: "cancelled", Status: models.BookingCancelled},
	}}
	n := &recordingNotifier{}
	h := NewReminderHandler(repo, n)

	if err := h.ProcessTask(context.Background(), reminderTask(t, "cancelled")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := h.ProcessTask(context.Background(), reminderTask(t, "gone")); err != nil {
		t.Fatalf("unknown bookings should be dropped, got %v", err)
	}
	if len(n.sent) != 0 {
		t.Fatalf("no reminders expected, got %d", len(n.sent))
	}
}

func TestReminderHandlerRejectsBadPayload(t *testing.T) {
	h := NewReminderHandler(&reminderBookingRepo{}, &recordingNotifier{})
	err := h.ProcessTask(context.Background(), asynq.NewTask(TypeSendReminder, []byte("{")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
}
