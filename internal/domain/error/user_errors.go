// Package error defines domain-specific errors for the Money Saver application.
package error

import "errors"

// User domain errors.
var (
	// ErrUserNotFound is returned when a user is not found in the system.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when another user already owns the email address.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUserInactive is returned when an operation targets a deactivated user.
	ErrUserInactive = errors.New("user is inactive")
)

// UserErrorCode defines error codes for user errors.
// Format: USR-XXYYYY where XX is category and YYYY is specific error.
type UserErrorCode string

const (
	ErrCodeUserNotFound       UserErrorCode = "USR-010001"
	ErrCodeEmailAlreadyExists UserErrorCode = "USR-010002"
	ErrCodeUserInactive       UserErrorCode = "USR-010003"
)

// UserError represents a user error with code and message.
type UserError struct {
	Code    UserErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *UserError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new UserError with the given code and message.
func NewUserError(code UserErrorCode, message string, err error) *UserError {
	return &UserError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
