// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Failure kinds for the ingestion pipeline and the persistence layer. Every
// failure a user can trigger wraps exactly one of these, so callers can
// distinguish them internally even though most surface the same message.
var (
	// ErrInput indicates empty or malformed user input, caught before any
	// external call is made.
	ErrInput = errors.New("invalid input")

	// ErrUpstream indicates a transport failure or a non-2xx/empty response
	// from the external language model.
	ErrUpstream = errors.New("model request failed")

	// ErrValidation indicates the model response parsed but was missing
	// required fields or carried a non-numeric cost.
	ErrValidation = errors.New("model response invalid")

	// ErrPersistence indicates a local store operation failed and was
	// rolled back.
	ErrPersistence = errors.New("persistence failed")

	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrProtectedList indicates an attempt to delete the "All Expenses" list.
	ErrProtectedList = errors.New("default list cannot be deleted")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// UserMessage extracts the user-facing message from err, falling back to a
// generic message when err carries none.
func UserMessage(err error) string {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}
	return "Something went wrong, please try again."
}
