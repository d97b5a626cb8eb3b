package service

import (
	assemblerModel "github.com/jvmatch/partnermatch/modules/assembler/model"
	"github.com/jvmatch/partnermatch/internal/platform/oracle"
)

// nicheRelationship classifies how two normalized niches relate, the input
// to the niche_score lookup table (spec §4.3).
type nicheRelationship int

const (
	nicheIdentical nicheRelationship = iota
	nicheClientAdjacent
	nicheUnrelated
)

// semanticIdenticalThreshold / semanticAdjacentFloor bound the niche
// relationship tiers (spec §4.3 table: "Identical (normalized equal or
// semantic ≥ 0.85)", "Client-adjacent (semantic 0.4-0.85)").
const (
	semanticIdenticalThreshold = 0.85
	semanticAdjacentFloor      = 0.40
)

// curatedMatch is true when both profiles carry a shared taxonomy tag
// (modules/taxonomy), which short-circuits the relationship to identical
// before the semantic oracle or its Jaccard fallback is ever consulted.
func classifyNicheRelationship(nicheA, nicheB string, semanticScore float64, curatedMatch bool) nicheRelationship {
	if nicheA == nicheB || curatedMatch {
		return nicheIdentical
	}
	switch {
	case semanticScore >= semanticIdenticalThreshold:
		return nicheIdentical
	case semanticScore >= semanticAdjacentFloor:
		return nicheClientAdjacent
	default:
		return nicheUnrelated
	}
}

// nicheScoreFor implements the niche_score lookup table (spec §4.3),
// taking the max across A's selected preferences when more than one is
// set (spec §9 open question b).
func nicheScoreFor(preferences []assemblerModel.PreferenceType, relationship nicheRelationship) float64 {
	best := 0.0
	for _, pref := range preferences {
		score := nicheScoreForPreference(pref, relationship)
		if score > best {
			best = score
		}
	}
	return best
}

func nicheScoreForPreference(pref assemblerModel.PreferenceType, relationship nicheRelationship) float64 {
	switch pref {
	case assemblerModel.PeerBundle:
		if relationship == nicheIdentical {
			return 1.0
		}
		return 0.2
	case assemblerModel.ReferralUpstream, assemblerModel.ReferralDownstream:
		switch relationship {
		case nicheIdentical:
			return 0.1 // competitor penalty
		case nicheClientAdjacent:
			return 0.9
		default:
			return 0.3
		}
	case assemblerModel.ServiceProvider:
		return 0.7
	default:
		return 0.0
	}
}

// scaleModifier implements scale_modifier (spec §4.3): disabled (returns
// 1.0) when the demanding side's only preference is Service_Provider;
// 0.8 when either reach is zero/unknown; otherwise a function of the
// reach ratio.
func scaleModifier(preferences []assemblerModel.PreferenceType, reachA, reachB int) float64 {
	if onlyServiceProvider(preferences) {
		return 1.0
	}
	if reachA <= 0 || reachB <= 0 {
		return 0.8
	}
	r := reachRatio(reachA, reachB)
	switch {
	case r > 0.5:
		return 1.0
	case r < 0.1:
		return 0.5
	default:
		return 0.5 + (r-0.1)*(0.5/0.4)
	}
}

func onlyServiceProvider(preferences []assemblerModel.PreferenceType) bool {
	return len(preferences) == 1 && preferences[0] == assemblerModel.ServiceProvider
}

// reachRatio is min(reachA,reachB)/max(reachA,reachB); also exposed as the
// diagnostic scale_symmetry_score.
func reachRatio(reachA, reachB int) float64 {
	if reachA <= 0 && reachB <= 0 {
		return 1.0
	}
	if reachA <= 0 || reachB <= 0 {
		return 0.0
	}
	a, b := float64(reachA), float64(reachB)
	if a > b {
		a, b = b, a
	}
	return a / b
}

// synergy computes Synergy(A,B) = niche_score · scale_modifier, using A's
// preferences to select the niche_score row and A/B's reach for the scale
// modifier (spec §4.3). semanticScore is the oracle or Jaccard-fallback
// similarity between niche(A) and niche(B) (0 when they are already
// normalized-equal or curated-identical; the classifier short-circuits both
// cases before semanticScore is consulted).
func synergy(aPreferences []assemblerModel.PreferenceType, nicheA, nicheB string, semanticScore float64, curatedMatch bool, reachA, reachB int) (value, nicheScore float64) {
	relationship := classifyNicheRelationship(nicheA, nicheB, semanticScore, curatedMatch)
	nicheScore = nicheScoreFor(aPreferences, relationship)
	modifier := scaleModifier(aPreferences, reachA, reachB)
	return clamp01(nicheScore * modifier), nicheScore
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// jaccardNicheFallback is used when the semantic oracle is unavailable;
// token-overlap is the same documented fallback proxy spec §4.3 defines
// for Intent, reused here for the niche relationship classification.
var jaccardNicheFallback = oracle.Jaccard
