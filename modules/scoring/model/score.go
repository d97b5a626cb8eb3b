// Package model holds the Scorer's (spec §4.3) intermediate and output
// types: the four weighted components, the directional score, and the
// reciprocal pair result persisted as a match suggestion candidate.
package model

import "time"

// Component weights (spec §4.3).
const (
	WeightIntent   = 0.45
	WeightSynergy  = 0.25
	WeightMomentum = 0.20
	WeightContext  = 0.10
)

// IntentMatch is the strongest need/offer pair that fired Intent, cited in
// the reason string (spec §4.3 clause i).
type IntentMatch struct {
	Need       string
	Offer      string
	Similarity float64
}

// DirectionalResult holds one direction's (A→B) component values and the
// combined weighted sum, plus enough provenance to build a reason string.
type DirectionalResult struct {
	Intent          float64
	IntentMatch     *IntentMatch
	Synergy         float64
	NicheScore      float64
	Momentum        float64
	Context         float64
	SharedEventCount int
	Score           float64 // weighted sum in [0,1]
}

// PairResult is one reciprocally-scored ordered pair, target-centric: it
// is what the Scorer emits for "the match suggested to Target, naming
// Candidate" (spec §3 Match Suggestion).
type PairResult struct {
	TargetProfileID    string
	CandidateProfileID string
	ScoreAB            float64 // target→candidate, 0-100
	ScoreBA            float64 // candidate→target, 0-100
	HarmonicMean       float64 // 0-100
	ScaleSymmetryScore float64 // 0-1 diagnostic
	TrustLevel         string  // Platinum/Gold/Bronze/Legacy
	FinalScore         float64 // F = harmonic_mean * trust weight
	MatchReason        string
	CandidateLastActiveAt *time.Time
	Rank               int // assigned by RankWithinTarget, 1-based
}
