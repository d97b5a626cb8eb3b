package model

import "errors"

var (
	ErrSuggestionNotFound  = errors.New("match suggestion not found")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrDuplicateSuggestion = errors.New("duplicate match suggestion for pair")
)

type ErrorCode string

const (
	CodeSuggestionNotFound  ErrorCode = "SUGGESTION_NOT_FOUND"
	CodeInvalidTransition   ErrorCode = "INVALID_TRANSITION"
	CodeDuplicateSuggestion ErrorCode = "DUPLICATE_SUGGESTION"
	CodeInternalError       ErrorCode = "INTERNAL_ERROR"
)

func GetErrorCode(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrSuggestionNotFound):
		return CodeSuggestionNotFound
	case errors.Is(err, ErrInvalidTransition):
		return CodeInvalidTransition
	case errors.Is(err, ErrDuplicateSuggestion):
		return CodeDuplicateSuggestion
	default:
		return CodeInternalError
	}
}

func GetErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrSuggestionNotFound):
		return "Match suggestion not found"
	case errors.Is(err, ErrInvalidTransition):
		return "Invalid status transition"
	case errors.Is(err, ErrDuplicateSuggestion):
		return "Duplicate match suggestion for pair"
	default:
		return "Internal server error"
	}
}
