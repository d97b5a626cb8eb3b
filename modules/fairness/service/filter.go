// Package service implements the Fairness Filter (spec §4.4): it enforces
// the popularity cap on Top-3 appearances and attaches rank-tier labels.
// Grounded on the pack's fuzzy.go tiered-decision-routing pattern
// (threshold-gated bucket assignment with a single-pass counter), adapted
// from a per-record decision to a cycle-wide, single-writer counter over
// a globally ordered pair stream (spec §5).
package service

import (
	"sort"

	fairnessModel "github.com/jvmatch/partnermatch/modules/fairness/model"
	scoringModel "github.com/jvmatch/partnermatch/modules/scoring/model"
	scoringService "github.com/jvmatch/partnermatch/modules/scoring/service"
)

// DefaultPopularityCap is CAP when the cycle config doesn't override it
// (spec §4.4, §6).
const DefaultPopularityCap = 5

// Decision is one pair's outcome after fairness filtering: whether it was
// dropped from its target's Top-3, its recomputed list position, and the
// rank-tier label attached post-filtering.
type Decision struct {
	Pair            *scoringModel.PairResult
	DroppedFromTop3 bool
	FinalRank       int
	Tier            fairnessModel.RankTier
}

// Filter applies the popularity cap to a cycle's full scored-pair set and
// returns one Decision per pair, plus the final popularity counters.
type Filter struct {
	cap int
}

func NewFilter(popularityCap int) *Filter {
	if popularityCap <= 0 {
		popularityCap = DefaultPopularityCap
	}
	return &Filter{cap: popularityCap}
}

// Apply implements the policy (spec §4.4): iterate the cycle's pairs in
// order of decreasing F; for each pair whose target-rank is ≤3, check the
// candidate's cycle-scoped top3 counter; drop if at cap, otherwise admit
// and increment. Dropped pairs are demoted out of the top-3 band for
// their target (pushed behind all still-accepted pairs) but not deleted —
// "it may still appear at rank ≥4 in A's list if retained" (spec §4.4).
func (f *Filter) Apply(pairs []*scoringModel.PairResult) ([]*Decision, map[string]int) {
	ordered := scoringService.GlobalFairnessOrder(pairs)
	top3Counter := make(map[string]int)
	decisionByPair := make(map[*scoringModel.PairResult]*Decision, len(pairs))

	for _, p := range ordered {
		d := &Decision{Pair: p}
		decisionByPair[p] = d
		if p.Rank <= 3 {
			if top3Counter[p.CandidateProfileID] >= f.cap {
				d.DroppedFromTop3 = true
			} else {
				top3Counter[p.CandidateProfileID]++
			}
		}
	}

	byTarget := make(map[string][]*Decision)
	for _, p := range pairs {
		d := decisionByPair[p]
		byTarget[p.TargetProfileID] = append(byTarget[p.TargetProfileID], d)
	}

	var all []*Decision
	for _, group := range byTarget {
		assignFinalRanks(group)
		all = append(all, group...)
	}

	return all, top3Counter
}

// assignFinalRanks reorders one target's decisions so accepted pairs
// (in their original F-descending order) occupy the front of the list and
// dropped pairs are pushed to the back, starting no earlier than rank 4,
// then labels each with a rank tier.
func assignFinalRanks(group []*Decision) {
	sort.SliceStable(group, func(i, j int) bool { return group[i].Pair.Rank < group[j].Pair.Rank })

	var accepted, dropped []*Decision
	for _, d := range group {
		if d.DroppedFromTop3 {
			dropped = append(dropped, d)
		} else {
			accepted = append(accepted, d)
		}
	}
	for i, d := range accepted {
		d.FinalRank = i + 1
		d.Tier = fairnessModel.RankTierFor(d.FinalRank)
	}
	next := len(accepted) + 1
	if next < 4 {
		next = 4
	}
	for i, d := range dropped {
		d.FinalRank = next + i
		d.Tier = fairnessModel.RankTierFor(d.FinalRank)
	}
}
