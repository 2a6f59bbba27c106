package booking

import "skillbridge/models"

type transition struct {
	from  []models.BookingStatus
	actor models.Role
}

// transitions lists every legal move; anything else is an invalid transition.
var transitions = map[models.BookingStatus]transition{
	models.BookingConfirmed: {from: []models.BookingStatus{models.BookingPending}, actor: models.RoleTutor},
	models.BookingCompleted: {from: []models.BookingStatus{models.BookingConfirmed}, actor: models.RoleTutor},
	models.BookingCancelled: {from: []models.BookingStatus{models.BookingPending, models.BookingConfirmed}, actor: models.RoleStudent},
}

// CanTransition reports whether from -> to is in the lifecycle table.
func CanTransition(from, to models.BookingStatus) bool {
	t, ok := transitions[to]
	if !ok {
		return false
	}
	for _, s := range t.from {
		if s == from {
			return true
		}
	}
	return false
}

// owner returns the booking participant allowed to perform t.
func (t transition) owner(b *models.Booking) string {
	if t.actor == models.RoleTutor {
		return b.TutorID
	}
	return b.StudentID
}
