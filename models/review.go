package models

import "time"

type Review struct {
	ID        string    `bson:"id" json:"id"`
	BookingID string    `bson:"bookingId" json:"bookingId"`
	StudentID string    `bson:"studentId" json:"studentId"`
	TutorID   string    `bson:"tutorId" json:"tutorId"`
	Rating    int       `bson:"rating" json:"rating"`
	Comment   string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Range checks on rating happen in the review service so the error kind is consistent.
type ReviewRequest struct {
	BookingID string `json:"bookingId" binding:"required"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment" binding:"max=2000"`
}

// RatingSummary is the eagerly recomputed aggregate for a tutor.
type RatingSummary struct {
	Average float64 `bson:"average"`
	Count   int     `bson:"count"`
}
