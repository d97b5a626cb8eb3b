package model

import "errors"

var (
	// ErrProfileNotFound is returned when a profile is not found.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrDisplayNameRequired is returned when a profile's display name is empty.
	ErrDisplayNameRequired = errors.New("display name is required")

	// ErrNegativeReach is returned when list_size or social_reach is negative.
	ErrNegativeReach = errors.New("list_size and social_reach must be non-negative")
)

// ErrorCode represents a machine-readable error code.
type ErrorCode string

const (
	CodeProfileNotFound    ErrorCode = "PROFILE_NOT_FOUND"
	CodeDisplayNameRequired ErrorCode = "DISPLAY_NAME_REQUIRED"
	CodeNegativeReach      ErrorCode = "NEGATIVE_REACH"
	CodeInternalError      ErrorCode = "INTERNAL_ERROR"
)

// GetErrorCode maps errors to error codes.
func GetErrorCode(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrProfileNotFound):
		return CodeProfileNotFound
	case errors.Is(err, ErrDisplayNameRequired):
		return CodeDisplayNameRequired
	case errors.Is(err, ErrNegativeReach):
		return CodeNegativeReach
	default:
		return CodeInternalError
	}
}

// GetErrorMessage returns a user-friendly error message.
func GetErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrProfileNotFound):
		return "Profile not found"
	case errors.Is(err, ErrDisplayNameRequired):
		return "Display name is required"
	case errors.Is(err, ErrNegativeReach):
		return "List size and social reach must be non-negative"
	default:
		return "Internal server error"
	}
}
