package handlers

import (
	"context"
	"net/http"

	"skillbridge/models"
	"skillbridge/services/booking"
	"skillbridge/utils"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	Bookings booking.BookingService
}

func NewBookingHandler(bookings booking.BookingService) *BookingHandler {
	return &BookingHandler{Bookings: bookings}
}

func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	var req models.CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.Bookings.CreateBooking(c.Request.Context(), p, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// ListBookingsHandler lists the caller's bookings; admins see all. Optional ?status= filter.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	bookings, err := h.Bookings.ListBookings(c.Request.Context(), p, c.Query("status"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	b, err := h.Bookings.GetBooking(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

type transitionFunc func(ctx context.Context, actor models.Principal, bookingID string) (*models.Booking, error)

func (h *BookingHandler) runTransition(c *gin.Context, fn transitionFunc) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	b, err := fn(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) ConfirmBookingHandler(c *gin.Context) {
	h.runTransition(c, h.Bookings.Confirm)
}

func (h *BookingHandler) CompleteBookingHandler(c *gin.Context) {
	h.runTransition(c, h.Bookings.Complete)
}

func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	h.runTransition(c, h.Bookings.Cancel)
}

// UpdateStatusHandler accepts {"status": "CONFIRMED" | "COMPLETED" | "CANCELLED"}.
func (h *BookingHandler) UpdateStatusHandler(c *gin.Context) {
	var req models.BookingStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	h.runTransition(c, func(ctx context.Context, actor models.Principal, id string) (*models.Booking, error) {
		return h.Bookings.UpdateStatus(ctx, actor, id, req.Status)
	})
}
