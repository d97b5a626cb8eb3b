// Package model defines the feature bundle the Scorer reads: everything
// about a profile the scoring formulas need, gathered once per cycle and
// held read-only for the duration of scoring (spec §4.2, §5).
package model

import "time"

// TrustSource is the provenance classification that drives the Scorer's
// trust modifier (spec §4.3, §4.5).
type TrustSource string

const (
	Platinum TrustSource = "Platinum"
	Gold     TrustSource = "Gold"
	Bronze   TrustSource = "Bronze"
	Legacy   TrustSource = "Legacy"
)

// trustWeight is the ordering Platinum(1.0) > Gold(0.5) > Bronze(0.3) >
// Legacy(0.1) the trust modifier multiplies by (spec §4.3).
var trustWeight = map[TrustSource]float64{
	Platinum: 1.0,
	Gold:     0.5,
	Bronze:   0.3,
	Legacy:   0.1,
}

// Weight returns this trust source's multiplier.
func (t TrustSource) Weight() float64 {
	return trustWeight[t]
}

// Min returns the lower-ranked of two trust sources, per trust(A,B) =
// min(trust_source(A), trust_source(B)) (spec §4.3).
func Min(a, b TrustSource) TrustSource {
	if trustWeight[a] <= trustWeight[b] {
		return a
	}
	return b
}

// PreferenceType mirrors modules/intakes/model.PreferenceType without an
// import, so the assembler/scorer packages don't depend on the intakes
// module's persistence-facing surface.
type PreferenceType string

const (
	PeerBundle         PreferenceType = "Peer_Bundle"
	ReferralUpstream   PreferenceType = "Referral_Upstream"
	ReferralDownstream PreferenceType = "Referral_Downstream"
	ServiceProvider    PreferenceType = "Service_Provider"
)

// AntiPersona mirrors modules/intakes/model.AntiPersona.
type AntiPersona string

// FeatureBundle is the Feature Assembler's output for one profile: offers,
// needs, preferences, anti-personas, niche, audience, reach, last-active,
// attended events and trust source (spec §4.2, every bullet point of it).
type FeatureBundle struct {
	ProfileID    string
	DisplayName  string
	Offers       []string
	Needs        []string
	Preferences  []PreferenceType
	AntiPersonas map[AntiPersona]bool
	Niche        string
	Audience     string
	Reach        int
	LastActiveAt *time.Time
	Events       map[string]bool
	TrustSource  TrustSource
	IsSleepingGiant bool

	// CuratedNicheTags are the curated taxonomy entries an operator has
	// attached to this profile (modules/taxonomy). Two profiles sharing a
	// curated tag are identical-niche without needing an oracle call.
	CuratedNicheTags map[string]bool
}

// HasAntiPersona reports whether p is in this bundle's anti-persona set.
// The Feature Assembler only carries the *set*; classifying a specific
// candidate into a persona bucket (beginner, service provider, competitor)
// is the Scorer's job since it requires comparing two bundles (spec §4.3
// edge case b).
func (b *FeatureBundle) HasAntiPersona(p AntiPersona) bool {
	return b.AntiPersonas[p]
}

// HasPreference reports whether p is among this bundle's declared match
// preferences.
func (b *FeatureBundle) HasPreference(p PreferenceType) bool {
	for _, pref := range b.Preferences {
		if pref == p {
			return true
		}
	}
	return false
}

// OnlyServiceProvider reports whether Service_Provider is the profile's
// sole selected preference, the condition under which scale_modifier is
// disabled per spec §9 open question (b).
func (b *FeatureBundle) OnlyServiceProvider() bool {
	return len(b.Preferences) == 1 && b.Preferences[0] == ServiceProvider
}

// SharesCuratedNiche reports whether this bundle and other have at least one
// curated taxonomy tag in common, the identical-niche short-circuit the
// Synergy component checks before falling back to the semantic oracle.
func (b *FeatureBundle) SharesCuratedNiche(other *FeatureBundle) bool {
	for tag := range b.CuratedNicheTags {
		if other.CuratedNicheTags[tag] {
			return true
		}
	}
	return false
}

// SharedEventCount returns |events(A) ∩ events(B)|.
func (b *FeatureBundle) SharedEventCount(other *FeatureBundle) int {
	count := 0
	for e := range b.Events {
		if other.Events[e] {
			count++
		}
	}
	return count
}
