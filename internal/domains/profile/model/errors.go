package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeProfileNotFound = "PRF001"
	ErrCodeUnavailable     = "PRF002"
)

// Errors
var (
	ErrUserNotFound = errors.New("user not found")
	ErrUnavailable  = errors.New("identity directory unavailable")
)

// ProfileError custom error type
type ProfileError struct {
	Code    string
	Message string
	Err     error
}

func (e *ProfileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ProfileError) Unwrap() error {
	return e.Err
}

func NewProfileNotFoundError(username string) *ProfileError {
	return &ProfileError{
		Code:    ErrCodeProfileNotFound,
		Message: fmt.Sprintf("User %q not found", username),
		Err:     ErrUserNotFound,
	}
}

func NewUnavailableError(cause error) *ProfileError {
	return &ProfileError{
		Code:    ErrCodeUnavailable,
		Message: "failed to query identity directory",
		Err:     fmt.Errorf("%w: %w", ErrUnavailable, cause),
	}
}
