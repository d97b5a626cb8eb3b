package service

import (
	scoringModel "github.com/jvmatch/partnermatch/modules/scoring/model"
	"github.com/jvmatch/partnermatch/internal/platform/oracle"
)

// similarityLookup resolves a precomputed oracle similarity for a
// (need, offer) pair, built once per cycle from a single batched oracle
// call over every candidate pair (spec §5: "batched, ≥32 pairs per call").
type similarityLookup func(a, b string) (float64, bool)

// intentResult implements Intent(A,B) (spec §4.3): 1 if any need in
// needs(A) semantically matches any offer in offers(B) above threshold,
// else 0. Falls back to Jaccard token overlap when no oracle score is
// available for a pair. Cites the strongest matching pair for the reason
// string regardless of whether it actually fired.
func intentResult(needs, offers []string, lookup similarityLookup, semanticThreshold, fallbackThreshold float64) (float64, *scoringModel.IntentMatch) {
	if len(needs) == 0 || len(offers) == 0 {
		return 0, nil
	}

	var best *scoringModel.IntentMatch
	fired := false

	for _, need := range needs {
		for _, offer := range offers {
			score, pairFired := scoreFor(need, offer, lookup, semanticThreshold, fallbackThreshold)
			if best == nil || score > best.Similarity {
				best = &scoringModel.IntentMatch{Need: need, Offer: offer, Similarity: score}
			}
			if pairFired {
				fired = true
			}
		}
	}

	if fired {
		return 1, best
	}
	return 0, best
}

// scoreFor returns a pair's similarity and whether it clears the relevant
// threshold. Semantic matches must strictly exceed 0.65; the Jaccard
// fallback only needs to meet 0.30 (spec §4.3's two different comparators).
func scoreFor(need, offer string, lookup similarityLookup, semanticThreshold, fallbackThreshold float64) (score float64, fired bool) {
	if lookup != nil {
		if s, ok := lookup(need, offer); ok {
			return s, s > semanticThreshold
		}
	}
	j := oracle.Jaccard(need, offer)
	return j, j >= fallbackThreshold
}
