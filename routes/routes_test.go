package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"skillbridge/handlers"
	"skillbridge/models"
	"skillbridge/services/booking"
	"skillbridge/utils"

	"github.com/gin-gonic/gin"
)

type statusOnlyBookings struct {
	booking.BookingService
	gotID     string
	gotStatus string
	gotActor  models.Principal
}

func (s *statusOnlyBookings) UpdateStatus(_ context.Context, actor models.Principal, id, status string) (*models.Booking, error) {
	s.gotActor, s.gotID, s.gotStatus = actor, id, status
	return &models.Booking{ID: id, Status: models.BookingStatus(status)}, nil
}

func TestBookingStatusIsReachableOnBothPaths(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tutor := models.Principal{UserID: "tutor-1", Role: models.RoleTutor}
	auth := func(c *gin.Context) {
		c.Set(utils.PrincipalKey, tutor)
		c.Next()
	}

	for _, path := range []string{"/api/bookings/b1", "/api/bookings/b1/status"} {
		svc := &statusOnlyBookings{}
		r := gin.New()
		RegisterBookingRoutes(r.Group("/api"), &handlers.HandlerBundle{Bookings: handlers.NewBookingHandler(svc)}, auth)

		body, _ := json.Marshal(map[string]string{"status": "COMPLETED"})
		req := httptest.NewRequest(http.MethodPatch, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d: %s", path, rec.Code, rec.Body.String())
		}
		if svc.gotID != "b1" || svc.gotStatus != "COMPLETED" || svc.gotActor != tutor {
			t.Fatalf("%s: unexpected dispatch id=%q status=%q actor=%+v", path, svc.gotID, svc.gotStatus, svc.gotActor)
		}
	}
}
