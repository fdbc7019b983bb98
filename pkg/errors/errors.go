package errors

import "net/http"

// AppError is a custom error type that includes an HTTP status code
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// NewAppError creates a new AppError
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Common errors
var (
	ErrInvalidRequest  = NewAppError(http.StatusBadRequest, "Invalid request parameters")
	ErrUnauthenticated = NewAppError(http.StatusUnauthorized, "Authentication required")
	ErrForbidden       = NewAppError(http.StatusForbidden, "Access denied")
	ErrNotFound        = NewAppError(http.StatusNotFound, "Resource not found")
	ErrInternalServer  = NewAppError(http.StatusInternalServerError, "Internal server error")
	ErrRateLimit       = NewAppError(http.StatusTooManyRequests, "Rate limit exceeded")
)

// Messaging and connection-graph error taxonomy. Each maps to the HTTP
// status the REST fallback surfaces; the websocket path sends the message
// in an error frame.
var (
	ErrEmptyMessage     = NewAppError(http.StatusBadRequest, "Message must have content or an attachment")
	ErrNotConnected     = NewAppError(http.StatusForbidden, "Users are not connected")
	ErrDuplicateRequest = NewAppError(http.StatusConflict, "A pending or accepted request already exists for this pair")
	ErrSelfRequest      = NewAppError(http.StatusBadRequest, "Cannot send a connection request to yourself")
	ErrNotAuthorized    = NewAppError(http.StatusForbidden, "Only the receiver may respond to this request")
	ErrInvalidState     = NewAppError(http.StatusConflict, "Request has already been responded to")
)

// Helper functions to create specific errors
func BadRequest(msg string) *AppError {
	return NewAppError(http.StatusBadRequest, msg)
}

func NotFound(msg string) *AppError {
	return NewAppError(http.StatusNotFound, msg)
}

func Unauthorized(msg string) *AppError {
	return NewAppError(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) *AppError {
	return NewAppError(http.StatusForbidden, msg)
}

func Conflict(msg string) *AppError {
	return NewAppError(http.StatusConflict, msg)
}

func Internal(msg string) *AppError {
	return NewAppError(http.StatusInternalServerError, msg)
}
