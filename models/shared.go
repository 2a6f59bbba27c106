package models

import "time"

// MaxPage bounds list offsets so skip stays small.
const MaxPage = 10000

// ReminderPayload is carried by the booking reminder task.
type ReminderPayload struct {
	BookingID   string    `json:"bookingId"`
	StudentID   string    `json:"studentId"`
	TutorID     string    `json:"tutorId"`
	ScheduledAt time.Time `json:"scheduledAt"`
}

// Reminder is what the worker produces for a booking that is still confirmed.
type Reminder struct {
	BookingID string    `json:"bookingId"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	FireDate  time.Time `json:"fireDate"`
}
