package model

import (
	"errors"
	"time"
)

// ReviewStatus is the lifecycle of a manual-review queue entry.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewResolved ReviewStatus = "resolved"
)

// ReviewQueueEntry is a tier-4 fuzzy match staged for a human operator.
// Tier-4 matches never auto-merge (spec §4.1 "Failure semantics"); this is
// where they land instead, mirroring the ambiguous-candidate persistence in
// the entity-resolution cascade this module is grounded on.
type ReviewQueueEntry struct {
	ID                 string
	DirectoryRecordID  string
	CandidateProfileID string
	Confidence         float64
	Reason             string
	Status             ReviewStatus
	Decision           *string
	DecidedBy          *string
	CreatedAt          time.Time
	DecidedAt          *time.Time
}

// ReviewQueueEntryDTO is the JSON representation.
type ReviewQueueEntryDTO struct {
	ID                 string       `json:"id"`
	DirectoryRecordID  string       `json:"directory_record_id"`
	CandidateProfileID string       `json:"candidate_profile_id"`
	Confidence         float64      `json:"confidence"`
	Reason             string       `json:"reason"`
	Status             ReviewStatus `json:"status"`
	Decision           *string      `json:"decision,omitempty"`
	DecidedBy          *string      `json:"decided_by,omitempty"`
	CreatedAt          time.Time    `json:"created_at"`
	DecidedAt          *time.Time   `json:"decided_at,omitempty"`
}

func (e *ReviewQueueEntry) ToDTO() *ReviewQueueEntryDTO {
	return &ReviewQueueEntryDTO{
		ID: e.ID, DirectoryRecordID: e.DirectoryRecordID, CandidateProfileID: e.CandidateProfileID,
		Confidence: e.Confidence, Reason: e.Reason, Status: e.Status,
		Decision: e.Decision, DecidedBy: e.DecidedBy, CreatedAt: e.CreatedAt, DecidedAt: e.DecidedAt,
	}
}

// MergeHistoryEntry records a field-level conflict the resolver chose not to
// silently overwrite: the older record's value is kept, the newer value is
// appended here (spec §4.1 "conflicting non-null values ... newer value is
// appended to a history log rather than silently overwriting").
type MergeHistoryEntry struct {
	ID         string
	ProfileID  string
	Field      string
	KeptValue  string
	NewValue   string
	RecordedAt time.Time
}

var (
	ErrReviewEntryNotFound = errors.New("review queue entry not found")
	ErrAmbiguousMatch      = errors.New("ambiguous match: multiple exact name+company candidates")
	ErrRecordMissingName   = errors.New("directory record is missing a name")
)

type ErrorCode string

const (
	CodeReviewEntryNotFound ErrorCode = "REVIEW_ENTRY_NOT_FOUND"
	CodeAmbiguousMatch      ErrorCode = "AMBIGUOUS_MATCH"
	CodeRecordMissingName   ErrorCode = "RECORD_MISSING_NAME"
	CodeInternalError       ErrorCode = "INTERNAL_ERROR"
)

func GetErrorCode(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrReviewEntryNotFound):
		return CodeReviewEntryNotFound
	case errors.Is(err, ErrAmbiguousMatch):
		return CodeAmbiguousMatch
	case errors.Is(err, ErrRecordMissingName):
		return CodeRecordMissingName
	default:
		return CodeInternalError
	}
}

func GetErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrReviewEntryNotFound):
		return "review queue entry not found"
	case errors.Is(err, ErrAmbiguousMatch):
		return "ambiguous match"
	case errors.Is(err, ErrRecordMissingName):
		return "directory record is missing a name"
	default:
		return "internal error"
	}
}
