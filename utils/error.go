package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorKind classifies failures of the booking contract.
type ErrorKind string

const (
	KindValidation         ErrorKind = "ValidationError"
	KindInvalidTransition  ErrorKind = "InvalidTransitionError"
	KindPreconditionFailed ErrorKind = "PreconditionFailed"
	KindConflict           ErrorKind = "Conflict"
	KindNotFound           ErrorKind = "NotFound"
	KindUnauthorized       ErrorKind = "Unauthorized"
	KindUnauthenticated    ErrorKind = "Unauthenticated"
	KindInternal           ErrorKind = "Internal"
)

// AppError is a classified error that handlers translate into an HTTP response.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

func newAppError(kind ErrorKind, format string, args ...interface{}) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...interface{}) *AppError {
	return newAppError(KindValidation, format, args...)
}

func InvalidTransition(format string, args ...interface{}) *AppError {
	return newAppError(KindInvalidTransition, format, args...)
}

func PreconditionFailed(format string, args ...interface{}) *AppError {
	return newAppError(KindPreconditionFailed, format, args...)
}

func Conflict(format string, args ...interface{}) *AppError {
	return newAppError(KindConflict, format, args...)
}

func NotFound(format string, args ...interface{}) *AppError {
	return newAppError(KindNotFound, format, args...)
}

func Unauthorized(format string, args ...interface{}) *AppError {
	return newAppError(KindUnauthorized, format, args...)
}

func Unauthenticated(format string, args ...interface{}) *AppError {
	return newAppError(KindUnauthenticated, format, args...)
}

// Internal wraps an infrastructure failure; the cause is logged, never sent to clients.
func Internal(err error, format string, args ...interface{}) *AppError {
	e := newAppError(KindInternal, format, args...)
	e.Err = err
	return e
}

// KindOf returns the kind of the first AppError in err's chain, or KindInternal.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus maps an error kind to a response code.
func HTTPStatus(kind ErrorKind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindInvalidTransition, KindConflict:
		return http.StatusConflict
	case KindPreconditionFailed:
		return http.StatusPreconditionFailed
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusForbidden
	case KindUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Error   ErrorKind `json:"error"`
	Message string    `json:"message"`
}

// RespondError writes err as a JSON error response and aborts the chain.
func RespondError(c *gin.Context, err error) {
	kind := KindOf(err)
	status := HTTPStatus(kind)
	message := "An unexpected error occurred. Please try again later."

	var appErr *AppError
	if errors.As(err, &appErr) && kind != KindInternal {
		message = appErr.Message
	}

	logger := RequestLogger(c)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.Error(err))
	} else {
		logger.Warn("request rejected", zap.String("kind", string(kind)), zap.String("message", message))
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: kind, Message: message})
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, kind ErrorKind, message string) {
	RequestLogger(c).Warn(message, zap.Int("status", status))
	c.AbortWithStatusJSON(status, ErrorResponse{Error: kind, Message: message})
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				RequestLogger(c).Error("Unhandled panic", zap.Any("error", err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Error:   KindInternal,
					Message: "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}

// RequestLogger returns the per-request logger stored by the logging middleware,
// falling back to the global logger.
func RequestLogger(c *gin.Context) *zap.Logger {
	if c != nil {
		if v, ok := c.Get(LoggerKey); ok {
			if l, ok := v.(*zap.Logger); ok {
				return l
			}
		}
	}
	return GetLogger()
}
