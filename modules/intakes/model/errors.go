package model

import "errors"

var (
	ErrIntakeNotFound        = errors.New("intake submission not found")
	ErrTooManyVerifiedOffers = errors.New("at most 2 verified offers are allowed")
	ErrTooManyVerifiedNeeds  = errors.New("at most 2 verified needs are allowed")
	ErrEventIDRequired       = errors.New("event id is required")
	ErrDuplicateIntake       = errors.New("an intake for this profile and event already exists")
	ErrInvalidPreference     = errors.New("invalid match preference")
	ErrInvalidAntiPersona    = errors.New("invalid anti-persona")
)

type ErrorCode string

const (
	CodeIntakeNotFound        ErrorCode = "INTAKE_NOT_FOUND"
	CodeTooManyVerifiedOffers ErrorCode = "TOO_MANY_VERIFIED_OFFERS"
	CodeTooManyVerifiedNeeds  ErrorCode = "TOO_MANY_VERIFIED_NEEDS"
	CodeEventIDRequired       ErrorCode = "EVENT_ID_REQUIRED"
	CodeDuplicateIntake       ErrorCode = "DUPLICATE_INTAKE"
	CodeInvalidPreference     ErrorCode = "INVALID_PREFERENCE"
	CodeInvalidAntiPersona    ErrorCode = "INVALID_ANTI_PERSONA"
	CodeInternalError         ErrorCode = "INTERNAL_ERROR"
)

func GetErrorCode(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrIntakeNotFound):
		return CodeIntakeNotFound
	case errors.Is(err, ErrTooManyVerifiedOffers):
		return CodeTooManyVerifiedOffers
	case errors.Is(err, ErrTooManyVerifiedNeeds):
		return CodeTooManyVerifiedNeeds
	case errors.Is(err, ErrEventIDRequired):
		return CodeEventIDRequired
	case errors.Is(err, ErrDuplicateIntake):
		return CodeDuplicateIntake
	case errors.Is(err, ErrInvalidPreference):
		return CodeInvalidPreference
	case errors.Is(err, ErrInvalidAntiPersona):
		return CodeInvalidAntiPersona
	default:
		return CodeInternalError
	}
}

func GetErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrIntakeNotFound):
		return "Intake submission not found"
	case errors.Is(err, ErrTooManyVerifiedOffers):
		return "At most 2 verified offers are allowed"
	case errors.Is(err, ErrTooManyVerifiedNeeds):
		return "At most 2 verified needs are allowed"
	case errors.Is(err, ErrEventIDRequired):
		return "Event id is required"
	case errors.Is(err, ErrDuplicateIntake):
		return "An intake for this profile and event already exists"
	case errors.Is(err, ErrInvalidPreference):
		return "Invalid match preference"
	case errors.Is(err, ErrInvalidAntiPersona):
		return "Invalid anti-persona"
	default:
		return "Internal server error"
	}
}
