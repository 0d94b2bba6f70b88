package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

// Error represents an application error carrying the HTTP status it maps to.
type Error struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	ErrorCode string `json:"error,omitempty"`
	Err       error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// WithCode returns a copy of the error tagged with a machine-readable code.
func (e *Error) WithCode(code string) *Error {
	cp := *e
	cp.ErrorCode = code
	return &cp
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message, nil)
}

func Conflict(message string) *Error {
	return New(http.StatusConflict, message, nil)
}

func Validation(message string) *Error {
	return New(http.StatusBadRequest, message, nil)
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message, nil)
}

// Internal wraps an unexpected failure. The cause is kept for logging only.
func Internal(message string, err error) *Error {
	return New(http.StatusInternalServerError, message, err)
}

// FromDB converts a repository error into an application error, treating a
// missing row as notFoundMsg.
func FromDB(err error, notFoundMsg string) *Error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(notFoundMsg)
	}
	return ErrDatabaseQuery.wrap(err)
}

func (e *Error) wrap(err error) *Error {
	cp := *e
	cp.Err = err
	return &cp
}

// As extracts an *Error from err. Anything else becomes an internal error.
func As(err error) *Error {
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return ErrInternalServer.wrap(err)
}

// Common error types
var (
	ErrUnauthorized       = New(http.StatusUnauthorized, "Unauthorized", nil)
	ErrInternalServer     = New(http.StatusInternalServerError, "Internal server error", nil)
	ErrServiceUnavailable = New(http.StatusServiceUnavailable, "Service unavailable", nil)
	ErrDatabaseQuery      = New(http.StatusInternalServerError, "Database query error", nil)
)

// Authentication error types
var (
	ErrInvalidCredentials = New(http.StatusUnauthorized, "Invalid username or password", nil)
	ErrInvalidToken       = New(http.StatusUnauthorized, "Invalid or expired token", nil)
)

// Business logic error types
var (
	ErrEmptyCart = New(http.StatusBadRequest, "Cannot create order from empty cart", nil).WithCode("ORDER_CREATION_FAILED")
)
