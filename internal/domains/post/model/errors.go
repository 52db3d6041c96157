package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error codes
const (
	ErrCodeValidationFailed = "POST001"
	ErrCodeRateLimited      = "POST002"
	ErrCodePostNotFound     = "POST003"
	ErrCodeAuthorMissing    = "POST004"
	ErrCodeUnavailable      = "POST005"
	ErrCodeInvalidCursor    = "POST006"
	ErrCodeInvalidLimit     = "POST007"
)

// Validation reasons
const (
	ReasonMissing  = "missing"
	ReasonTooShort = "too_short"
	ReasonTooLong  = "too_long"
	ReasonNotEmoji = "not_emoji"
)

// Errors
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrRateLimited      = errors.New("too many posts, please slow down")
	ErrPostNotFound     = errors.New("post not found")
	ErrAuthorMissing    = errors.New("author for post not found")
	ErrUnavailable      = errors.New("service temporarily unavailable")
	ErrInvalidCursor    = errors.New("invalid cursor")
	ErrInvalidLimit     = errors.New("invalid limit")
)

// PostError custom error type. Field and Reason are only set for
// validation failures.
type PostError struct {
	Code    string
	Message string
	Field   string
	Reason  string
	Err     error
}

func (e *PostError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *PostError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewValidationError(field, reason, message string) *PostError {
	return &PostError{
		Code:    ErrCodeValidationFailed,
		Message: message,
		Field:   field,
		Reason:  reason,
		Err:     ErrValidationFailed,
	}
}

func NewRateLimitedError() *PostError {
	return &PostError{
		Code:    ErrCodeRateLimited,
		Message: "You are posting too fast, please wait a moment",
		Err:     ErrRateLimited,
	}
}

func NewPostNotFoundError() *PostError {
	return &PostError{
		Code:    ErrCodePostNotFound,
		Message: "Post not found",
		Err:     ErrPostNotFound,
	}
}

func NewAuthorMissingError(postID uuid.UUID, authorID string) *PostError {
	return &PostError{
		Code:    ErrCodeAuthorMissing,
		Message: fmt.Sprintf("Author %q for post %s not found", authorID, postID),
		Err:     ErrAuthorMissing,
	}
}

// NewUnavailableError wraps a collaborator failure. Both ErrUnavailable and
// cause stay reachable through errors.Is.
func NewUnavailableError(op string, cause error) *PostError {
	return &PostError{
		Code:    ErrCodeUnavailable,
		Message: fmt.Sprintf("failed to %s", op),
		Err:     fmt.Errorf("%w: %w", ErrUnavailable, cause),
	}
}

func NewInvalidCursorError() *PostError {
	return &PostError{
		Code:    ErrCodeInvalidCursor,
		Message: "Cursor must be a post id",
		Err:     ErrInvalidCursor,
	}
}

func NewInvalidLimitError(message string) *PostError {
	return &PostError{
		Code:    ErrCodeInvalidLimit,
		Message: message,
		Err:     ErrInvalidLimit,
	}
}
