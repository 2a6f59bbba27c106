package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := map[ErrorKind]int{
		KindValidation:         http.StatusBadRequest,
		KindInvalidTransition:  http.StatusConflict,
		KindConflict:           http.StatusConflict,
		KindPreconditionFailed: http.StatusPreconditionFailed,
		KindNotFound:           http.StatusNotFound,
		KindUnauthorized:       http.StatusForbidden,
		KindUnauthenticated:    http.StatusUnauthorized,
		KindInternal:           http.StatusInternalServerError,
	}
	for kind, want := range cases {
		if got := HTTPStatus(kind); got != want {
			t.Fatalf("HTTPStatus(%s) = %d, want %d", kind, got, want)
		}
	}
}

func TestKindOfFollowsWrappedErrors(t *testing.T) {
	err := fmt.Errorf("outer: %w", Conflict("slot taken"))
	if KindOf(err) != KindConflict {
		t.Fatalf("expected Conflict, got %s", KindOf(err))
	}
	if KindOf(errors.New("boom")) != KindInternal {
		t.Fatalf("plain errors should be Internal")
	}
	if IsKind(nil, KindInternal) {
		t.Fatalf("nil error has no kind")
	}
}

func TestInternalUnwrapsCause(t *testing.T) {
	cause := errors.New("socket closed")
	err := Internal(cause, "failed to load booking")
	if !errors.Is(err, cause) {
		t.Fatalf("expected Internal to wrap its cause")
	}
}

func TestRespondErrorHidesInternalMessages(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err         error
		wantStatus  int
		wantKind    ErrorKind
		wantMessage string
	}{
		{InvalidTransition("cannot confirm a CANCELLED booking"), http.StatusConflict, KindInvalidTransition, "cannot confirm a CANCELLED booking"},
		{Internal(errors.New("mongo down"), "failed"), http.StatusInternalServerError, KindInternal, "An unexpected error occurred. Please try again later."},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		RespondError(c, tc.err)

		if rec.Code != tc.wantStatus {
			t.Fatalf("expected %d, got %d", tc.wantStatus, rec.Code)
		}
		var body ErrorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid json body: %v", err)
		}
		if body.Error != tc.wantKind || body.Message != tc.wantMessage {
			t.Fatalf("unexpected body %+v", body)
		}
	}
}

func TestErrorHandlerRecoversPanics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
