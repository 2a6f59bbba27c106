package handlers

// HandlerBundle groups all endpoint handlers for route registration.
type HandlerBundle struct {
	Auth         *AuthHandler
	Users        *UserHandler
	Tutors       *TutorHandler
	Availability *AvailabilityHandler
	Bookings     *BookingHandler
	Reviews      *ReviewHandler
	Categories   *CategoryHandler
	Admin        *AdminHandler
}
