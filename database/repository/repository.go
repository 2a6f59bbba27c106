package repository

import (
	"skillbridge/database"
	availabilityRepo "skillbridge/database/repository/availability"
	bookingRepo "skillbridge/database/repository/booking"
	categoryRepo "skillbridge/database/repository/category"
	reviewRepo "skillbridge/database/repository/review"
	tutorRepo "skillbridge/database/repository/tutor"
	userRepo "skillbridge/database/repository/user"
)

// Sentinel errors shared by every repository.
var (
	ErrNotFound  = database.ErrNotFound
	ErrDuplicate = database.ErrDuplicate
	ErrConflict  = database.ErrConflict
)

// Re-export the UserRepository interface and constructor.
type UserRepository = userRepo.UserRepository

type UserSearchCriteria = userRepo.UserSearchCriteria

type ProfilePatch = userRepo.ProfilePatch

var NewMongoUserRepository = userRepo.NewMongoUserRepo

// Re-export the TutorRepository interface and constructor.
type TutorRepository = tutorRepo.TutorRepository

type TutorSearchCriteria = tutorRepo.TutorSearchCriteria

type TutorSearchResult = tutorRepo.TutorSearchResult

var NewMongoTutorRepo = tutorRepo.NewMongoTutorRepo

type AvailabilityRepository = availabilityRepo.AvailabilityRepository

var NewMongoAvailabilityRepo = availabilityRepo.NewMongoAvailabilityRepo

type BookingRepository = bookingRepo.BookingRepository

var NewMongoBookingRepo = bookingRepo.NewMongoBookingRepo

type ReviewRepository = reviewRepo.ReviewRepository

var NewMongoReviewRepo = reviewRepo.NewMongoReviewRepo

type CategoryRepository = categoryRepo.CategoryRepository

var NewMongoCategoryRepo = categoryRepo.NewMongoCategoryRepo
