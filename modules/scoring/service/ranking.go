package service

import (
	"math"
	"sort"

	scoringModel "github.com/jvmatch/partnermatch/modules/scoring/model"
)

// trustRank orders trust levels for the tie-break chain's first key
// (higher trust wins ties).
var trustRank = map[string]int{
	"Platinum": 4,
	"Gold":     3,
	"Bronze":   2,
	"Legacy":   1,
}

// RankWithinTarget groups pairs by target and sorts each target's
// candidate list by final score descending, breaking ties per spec §4.3
// edge case (d): higher trust level → higher reciprocal symmetry (smaller
// |S_AB−S_BA|) → more recent candidate last_active_at → lexicographic
// candidate id. Assigns the 1-based Rank field in place.
func RankWithinTarget(pairs []*scoringModel.PairResult) {
	byTarget := make(map[string][]*scoringModel.PairResult)
	for _, p := range pairs {
		byTarget[p.TargetProfileID] = append(byTarget[p.TargetProfileID], p)
	}

	for _, group := range byTarget {
		sort.SliceStable(group, func(i, j int) bool {
			return lessForRanking(group[i], group[j])
		})
		for rank, p := range group {
			p.Rank = rank + 1
		}
	}
}

func lessForRanking(a, b *scoringModel.PairResult) bool {
	if a.FinalScore != b.FinalScore {
		return a.FinalScore > b.FinalScore
	}
	if trustRank[a.TrustLevel] != trustRank[b.TrustLevel] {
		return trustRank[a.TrustLevel] > trustRank[b.TrustLevel]
	}
	symA := math.Abs(a.ScoreAB - a.ScoreBA)
	symB := math.Abs(b.ScoreAB - b.ScoreBA)
	if symA != symB {
		return symA < symB
	}
	aActive, bActive := a.CandidateLastActiveAt, b.CandidateLastActiveAt
	switch {
	case aActive != nil && bActive != nil && !aActive.Equal(*bActive):
		return aActive.After(*bActive)
	case aActive != nil && bActive == nil:
		return true
	case aActive == nil && bActive != nil:
		return false
	}
	return a.CandidateProfileID < b.CandidateProfileID
}

// GlobalFairnessOrder returns pairs ordered by the deterministic
// merge-sort key (−F, candidate_id) the Fairness Filter iterates in
// (spec §5).
func GlobalFairnessOrder(pairs []*scoringModel.PairResult) []*scoringModel.PairResult {
	ordered := make([]*scoringModel.PairResult, len(pairs))
	copy(ordered, pairs)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].FinalScore != ordered[j].FinalScore {
			return ordered[i].FinalScore > ordered[j].FinalScore
		}
		return ordered[i].CandidateProfileID < ordered[j].CandidateProfileID
	})
	return ordered
}
