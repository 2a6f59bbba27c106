package models

import "time"

// TutorProfile is owned 1:1 by a TUTOR user; ID is the owner's user ID.
type TutorProfile struct {
	ID           string    `bson:"id" json:"id"`
	Bio          string    `bson:"bio" json:"bio"`
	HourlyRate   float64   `bson:"hourlyRate" json:"hourlyRate"`
	Experience   int       `bson:"experience" json:"experience"`
	Subjects     []string  `bson:"subjects" json:"subjects"`
	CategoryID   string    `bson:"categoryId,omitempty" json:"categoryId,omitempty"`
	Rating       float64   `bson:"rating" json:"rating"`
	TotalReviews int       `bson:"totalReviews" json:"totalReviews"`
	IsAvailable  bool      `bson:"isAvailable" json:"isAvailable"`
	BookingSeq   int64     `bson:"bookingSeq" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// TutorCard is the public view of a tutor: account basics, profile and weekly slots.
type TutorCard struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	AvatarURL    string             `json:"avatarUrl,omitempty"`
	Status       UserStatus         `json:"status"`
	Profile      TutorProfile       `json:"profile"`
	Category     *Category          `json:"category,omitempty"`
	Availability []AvailabilitySlot `json:"availability"`
	Rating       float64            `json:"rating"`
	TotalReviews int                `json:"totalReviews"`
}

// TutorProfileUpdate carries the editable profile fields; nil means unchanged.
type TutorProfileUpdate struct {
	Name        *string   `json:"name" binding:"omitempty,min=2,max=100"`
	Phone       *string   `json:"phone" binding:"omitempty,max=32"`
	Bio         *string   `json:"bio" binding:"omitempty,max=4000"`
	HourlyRate  *float64  `json:"hourlyRate" binding:"omitempty,gte=0"`
	Experience  *int      `json:"experience" binding:"omitempty,gte=0,lte=80"`
	Subjects    *[]string `json:"subjects" binding:"omitempty,dive,max=80"`
	CategoryID  *string   `json:"categoryId"`
	IsAvailable *bool     `json:"isAvailable"`
}

// TutorFilter mirrors the directory's query string.
type TutorFilter struct {
	SearchTerm  string   `form:"searchTerm"`
	CategoryID  string   `form:"categoryId"`
	Subject     string   `form:"subject"`
	MinRating   *float64 `form:"minRating" binding:"omitempty,gte=0,lte=5"`
	MinPrice    *float64 `form:"minPrice" binding:"omitempty,gte=0"`
	MaxPrice    *float64 `form:"maxPrice" binding:"omitempty,gte=0"`
	IsAvailable *bool    `form:"isAvailable"`
	SortBy      string   `form:"sortBy" binding:"omitempty,oneof=rating price experience"`
	SortOrder   string   `form:"sortOrder" binding:"omitempty,oneof=asc desc"`
	Page        int      `form:"page" binding:"omitempty,gte=1,lte=10000"`
	Limit       int      `form:"limit" binding:"omitempty,gte=1,lte=50"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type TutorPage struct {
	Tutors     []TutorCard `json:"tutors"`
	Pagination Pagination  `json:"pagination"`
}
