// Package model holds the Match Suggestion (spec §3): the persisted,
// queryable output of a cycle run, and its append-only status history.
// Grounded on modules/applications' Application/ApplicationStage pair —
// a mutable aggregate plus an append-only child log — adapted from a
// user-driven pipeline stage history to a monotone status lifecycle.
package model

import "time"

// Status is a Match Suggestion's position in its lifecycle (spec §3).
// Transitions are monotone: Pending -> Viewed -> Contacted -> (Connected | Dismissed).
type Status string

const (
	StatusPending   Status = "pending"
	StatusViewed    Status = "viewed"
	StatusContacted Status = "contacted"
	StatusConnected Status = "connected"
	StatusDismissed Status = "dismissed"
)

// transitionRank orders statuses along the monotone lifecycle. Connected
// and Dismissed share rank 3: both are terminal, reachable only from
// Contacted, and mutually exclusive as a pair's final state.
var transitionRank = map[Status]int{
	StatusPending:   0,
	StatusViewed:    1,
	StatusContacted: 2,
	StatusConnected: 3,
	StatusDismissed: 3,
}

// CanTransition reports whether moving from `from` to `to` respects the
// monotone lifecycle (spec §3 Lifecycles): rank must advance by exactly
// one step, so no stage is skipped, and Connected and Dismissed (both
// rank 3) are terminal and unreachable from one another once either is set.
func CanTransition(from, to Status) bool {
	fr, ok1 := transitionRank[from]
	tr, ok2 := transitionRank[to]
	if !ok1 || !ok2 {
		return false
	}
	if fr == 3 {
		return false // terminal
	}
	return tr == fr+1
}

// DefaultExpiry is how long a suggestion is valid past cycle start
// (spec §3, §6 expiry_days default).
const DefaultExpiry = 7 * 24 * time.Hour

// MatchSuggestion is the persisted, queryable output of a cycle run
// (spec §3). Uniqueness: at most one record per (target, candidate) pair.
type MatchSuggestion struct {
	ID                 string
	CycleID            string
	TargetProfileID    string
	CandidateProfileID string
	ScoreAB            float64
	ScoreBA            float64
	HarmonicMean       float64
	ScaleSymmetryScore float64
	TrustLevel         string
	MatchReason        string
	Status             Status
	Rank               int
	Tier               string
	ConfigSnapshot     []byte // opaque blob: weights/thresholds in effect (spec §6)
	ExpiresAt          time.Time
	SuggestedAt        time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// StatusEvent is one append-only entry in a suggestion's status history
// (modeled on ApplicationStage's append-only stage log).
type StatusEvent struct {
	ID         string
	MatchID    string
	FromStatus Status
	ToStatus   Status
	OccurredAt time.Time
}

// MatchSuggestionDTO is the API-facing view of a Match Suggestion.
type MatchSuggestionDTO struct {
	ID                 string    `json:"id"`
	TargetProfileID    string    `json:"target_profile_id"`
	CandidateProfileID string    `json:"candidate_profile_id"`
	ScoreAB            float64   `json:"score_ab"`
	ScoreBA            float64   `json:"score_ba"`
	HarmonicMean       float64   `json:"harmonic_mean"`
	ScaleSymmetryScore float64   `json:"scale_symmetry_score"`
	TrustLevel         string    `json:"trust_level"`
	MatchReason        string    `json:"match_reason"`
	Status             string    `json:"status"`
	Rank               int       `json:"rank"`
	Tier               string    `json:"tier"`
	ExpiresAt          time.Time `json:"expires_at"`
	SuggestedAt        time.Time `json:"suggested_at"`
}

func (m *MatchSuggestion) ToDTO() *MatchSuggestionDTO {
	return &MatchSuggestionDTO{
		ID:                 m.ID,
		TargetProfileID:    m.TargetProfileID,
		CandidateProfileID: m.CandidateProfileID,
		ScoreAB:            m.ScoreAB,
		ScoreBA:            m.ScoreBA,
		HarmonicMean:       m.HarmonicMean,
		ScaleSymmetryScore: m.ScaleSymmetryScore,
		TrustLevel:         m.TrustLevel,
		MatchReason:        m.MatchReason,
		Status:             string(m.Status),
		Rank:               m.Rank,
		Tier:               m.Tier,
		ExpiresAt:          m.ExpiresAt,
		SuggestedAt:        m.SuggestedAt,
	}
}
