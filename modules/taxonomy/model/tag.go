package model

import (
	"errors"
	"time"
)

// NicheTag is a curated entry in the niche taxonomy. The Synergy component
// consults this table before falling back to the semantic-similarity oracle
// when deciding whether two profiles' niches are identical, client-adjacent,
// or unrelated (spec §4.3).
type NicheTag struct {
	ID          string
	Name        string
	NormalizedName string
	ParentID    *string
	CreatedAt   time.Time
}

// NicheTagDTO is the JSON representation of a NicheTag.
type NicheTagDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ParentID  *string   `json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (t *NicheTag) ToDTO() *NicheTagDTO {
	return &NicheTagDTO{ID: t.ID, Name: t.Name, ParentID: t.ParentID, CreatedAt: t.CreatedAt}
}

// ProfileNicheTag relates a profile to a curated niche tag. Two profiles
// sharing a ProfileNicheTag are treated as having an identical niche
// relationship without needing an oracle call.
type ProfileNicheTag struct {
	ID        string
	ProfileID string
	NicheTagID string
	CreatedAt time.Time
}

// Relation mirrors the teacher's generic polymorphic TagRelation, kept here
// because the taxonomy may eventually tag other entity types (events,
// directory records) beyond profiles.
type Relation struct {
	ID         string
	NicheTagID string
	EntityType string
	EntityID   string
	CreatedAt  time.Time
}

var (
	ErrNicheTagNotFound     = errors.New("niche tag not found")
	ErrNicheTagNameRequired = errors.New("niche tag name is required")
)

type ErrorCode string

const (
	CodeNicheTagNotFound     ErrorCode = "NICHE_TAG_NOT_FOUND"
	CodeNicheTagNameRequired ErrorCode = "NICHE_TAG_NAME_REQUIRED"
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
)

// GetErrorCode maps errors to error codes.
func GetErrorCode(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrNicheTagNotFound):
		return CodeNicheTagNotFound
	case errors.Is(err, ErrNicheTagNameRequired):
		return CodeNicheTagNameRequired
	default:
		return CodeInternalError
	}
}
