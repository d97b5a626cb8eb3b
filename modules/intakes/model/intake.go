package model

import (
	"strings"
	"time"
)

// PreferenceType is one of the relationship preferences a profile can
// declare on an intake (spec §3, §9 "model preferences as a set from day
// one; legacy single-value data becomes a singleton set").
type PreferenceType string

const (
	PeerBundle         PreferenceType = "Peer_Bundle"
	ReferralUpstream   PreferenceType = "Referral_Upstream"
	ReferralDownstream PreferenceType = "Referral_Downstream"
	ServiceProvider    PreferenceType = "Service_Provider"
)

// AntiPersona is a class of profile a user opts out of being matched with.
type AntiPersona string

const (
	NoBeginners        AntiPersona = "no_beginners"
	NoServiceProviders AntiPersona = "no_service_providers"
	NoCompetitors      AntiPersona = "no_competitors"
)

// IntakeSubmission is a verified per-event declaration of intent (spec §3).
type IntakeSubmission struct {
	ID              string
	ProfileID       string
	EventID         string
	EventName       string
	EventDate       time.Time
	VerifiedOffers  []string
	VerifiedNeeds   []string
	MatchPreference []PreferenceType
	AntiPersonas    []AntiPersona
	SuggestedOffers []string // transcript-inferred, Bronze, informational only
	SuggestedNeeds  []string
	ConfirmedAt     *time.Time
	EvidenceKey     *string // optional S3 object key for an uploaded evidence scan
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IntakeSubmissionDTO is the JSON representation.
type IntakeSubmissionDTO struct {
	ID              string           `json:"id"`
	ProfileID       string           `json:"profile_id"`
	EventID         string           `json:"event_id"`
	EventName       string           `json:"event_name"`
	EventDate       time.Time        `json:"event_date"`
	VerifiedOffers  []string         `json:"verified_offers"`
	VerifiedNeeds   []string         `json:"verified_needs"`
	MatchPreference []PreferenceType `json:"match_preference"`
	AntiPersonas    []AntiPersona    `json:"anti_personas"`
	SuggestedOffers []string         `json:"suggested_offers,omitempty"`
	SuggestedNeeds  []string         `json:"suggested_needs,omitempty"`
	ConfirmedAt     *time.Time       `json:"confirmed_at,omitempty"`
	IsPlatinum      bool             `json:"is_platinum"`
	EvidenceURL     *string          `json:"evidence_url,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// PlatinumWindow is the recency bound an intake's confirmation must fall
// within to be treated as verified truth for scoring (spec §3, §4.5).
const PlatinumWindow = 30 * 24 * time.Hour

// IsPlatinum reports whether this intake is confirmed and within the
// 30-day verification window as of now.
func (i *IntakeSubmission) IsPlatinum(now time.Time) bool {
	return i.ConfirmedAt != nil && now.Sub(*i.ConfirmedAt) <= PlatinumWindow && now.Sub(*i.ConfirmedAt) >= 0
}

// ToDTO converts IntakeSubmission to IntakeSubmissionDTO. evidenceURL is
// resolved by the caller (presigned S3 URL), mirroring the teacher's resume
// file-URL pattern.
func (i *IntakeSubmission) ToDTO(now time.Time, evidenceURL *string) *IntakeSubmissionDTO {
	return &IntakeSubmissionDTO{
		ID:              i.ID,
		ProfileID:       i.ProfileID,
		EventID:         i.EventID,
		EventName:       i.EventName,
		EventDate:       i.EventDate,
		VerifiedOffers:  i.VerifiedOffers,
		VerifiedNeeds:   i.VerifiedNeeds,
		MatchPreference: i.MatchPreference,
		AntiPersonas:    i.AntiPersonas,
		SuggestedOffers: i.SuggestedOffers,
		SuggestedNeeds:  i.SuggestedNeeds,
		ConfirmedAt:     i.ConfirmedAt,
		IsPlatinum:      i.IsPlatinum(now),
		EvidenceURL:     evidenceURL,
		CreatedAt:       i.CreatedAt,
		UpdatedAt:       i.UpdatedAt,
	}
}

// SplitSentences splits free-text offering/seeking fields on sentence
// boundaries, the Feature Assembler's fallback source for offers()/needs()
// when no Platinum intake exists (spec §4.2).
func SplitSentences(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	raw := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '\n' || r == ';'
	})
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
