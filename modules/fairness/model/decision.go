// Package model holds the Fairness Filter's (spec §4.4) output types:
// the per-pair fairness decision and the cycle-scoped popularity counter.
package model

// RankTier labels a suggestion's position in its target's candidate list
// after filtering (spec §4.4): Gold (1-3), Silver (4-8), Bronze (9+).
type RankTier string

const (
	TierGold   RankTier = "Gold"
	TierSilver RankTier = "Silver"
	TierBronze RankTier = "Bronze"
)

// RankTierFor implements the rank-tier boundaries.
func RankTierFor(rank int) RankTier {
	switch {
	case rank <= 3:
		return TierGold
	case rank <= 8:
		return TierSilver
	default:
		return TierBronze
	}
}

// PopularityRow tracks top_3_appearances for one profile within one cycle
// (spec §3 Popularity Row), owned exclusively by the Fairness Filter
// (spec §5 "single-writer").
type PopularityRow struct {
	ProfileID         string
	MatchCycleID      string
	Top3Appearances   int
}
