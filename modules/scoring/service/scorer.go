// Package service implements the Scorer (spec §4.3): for every eligible
// ordered pair it computes a directional score from four weighted
// components, combines both directions via a harmonic mean, applies a
// trust modifier, and emits a reason string. Grounded on the pack's
// matching_algorithm_service.go (score-then-sort candidate pipeline) and
// adv_scorer.go (multi-component weighted scoring with an explanation
// string), generalized to reciprocal pair scoring with worker sharding
// per spec §5.
package service

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	assemblerModel "github.com/jvmatch/partnermatch/modules/assembler/model"
	"github.com/jvmatch/partnermatch/internal/platform/oracle"
	scoringModel "github.com/jvmatch/partnermatch/modules/scoring/model"
)

// Config is the tunable cycle configuration (spec §6 run_cycle config).
type Config struct {
	IntentFallbackThreshold float64 // default 0.30
	SemanticMatchThreshold  float64 // default 0.65
	OracleEnabled           bool
	Shards                  int // worker count for pair scoring, default 4
}

// Scorer computes reciprocal scores for every eligible pair in a cycle's
// feature bundle table.
type Scorer struct {
	oracle oracle.Oracle
	cfg    Config
	now    func() time.Time
}

func NewScorer(o oracle.Oracle, cfg Config, now func() time.Time) *Scorer {
	if cfg.Shards <= 0 {
		cfg.Shards = 4
	}
	return &Scorer{oracle: o, cfg: cfg, now: now}
}

// ScoreAll computes every eligible ordered-pair match for every target in
// bundles. It owns pair eligibility (self-pair and anti-persona exclusion,
// spec §4.3 edge cases a/b), the single global oracle batch call (spec §5
// "batched ≥32 pairs per call"), and the worker sharding by target (spec
// §5 "partition profiles into shards; each worker computes scores for
// pairs whose target falls in its shard").
func (s *Scorer) ScoreAll(ctx context.Context, bundles map[string]*assemblerModel.FeatureBundle) ([]*scoringModel.PairResult, error) {
	ids := sortedIDs(bundles)
	now := s.now()

	lookup, err := s.buildSimilarityLookup(ctx, ids, bundles)
	if err != nil {
		return nil, err
	}

	shards := shardIDs(ids, s.cfg.Shards)
	shardResults := make([][]*scoringModel.PairResult, len(shards))

	g, gctx := errgroup.WithContext(ctx)
	for shardIdx, shardIDs := range shards {
		shardIdx, shardIDs := shardIdx, shardIDs
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var out []*scoringModel.PairResult
			for _, targetID := range shardIDs {
				target := bundles[targetID]
				for _, candidateID := range ids {
					if candidateID == targetID {
						continue // spec §4.3 edge case a: self-pair skipped
					}
					candidate := bundles[candidateID]
					if mutuallyExcluded(target, candidate) {
						continue // spec §4.3 edge case b / §8 property 8
					}
					out = append(out, s.scorePair(target, candidate, lookup, now))
				}
			}
			shardResults[shardIdx] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []*scoringModel.PairResult
	for _, shard := range shardResults {
		all = append(all, shard...)
	}

	RankWithinTarget(all)
	return all, nil
}

// scorePair computes the full reciprocal result for one ordered (target,
// candidate) pair, target-centric (spec §3 Match Suggestion naming).
func (s *Scorer) scorePair(target, candidate *assemblerModel.FeatureBundle, lookup similarityLookup, now time.Time) *scoringModel.PairResult {
	sharedEvents := target.SharedEventCount(candidate)
	contextValue := matchContext(sharedEvents)

	ab := s.direction(target, candidate, contextValue, sharedEvents, lookup, now)
	ba := s.direction(candidate, target, contextValue, sharedEvents, lookup, now)

	scoreAB := ab.Score * 100
	scoreBA := ba.Score * 100
	harmonic := harmonicMean(scoreAB, scoreBA)

	trustLevel := assemblerModel.Min(target.TrustSource, candidate.TrustSource)
	final := harmonic * trustLevel.Weight()

	return &scoringModel.PairResult{
		TargetProfileID:       target.ProfileID,
		CandidateProfileID:    candidate.ProfileID,
		ScoreAB:               scoreAB,
		ScoreBA:               scoreBA,
		HarmonicMean:          harmonic,
		ScaleSymmetryScore:    reachRatio(target.Reach, candidate.Reach),
		TrustLevel:            string(trustLevel),
		FinalScore:            final,
		MatchReason:           buildReason(ab, target.TrustSource == assemblerModel.Platinum),
		CandidateLastActiveAt: candidate.LastActiveAt,
	}
}

// direction computes one directional score A→B and its component
// breakdown (spec §4.3). Momentum always uses the *recipient's* (B's)
// activity; Context is symmetric and passed in precomputed.
func (s *Scorer) direction(a, b *assemblerModel.FeatureBundle, contextValue float64, sharedEvents int, lookup similarityLookup, now time.Time) *scoringModel.DirectionalResult {
	intent, intentMatch := intentResult(a.Needs, b.Offers, lookup, s.cfg.SemanticMatchThreshold, s.cfg.IntentFallbackThreshold)

	curatedMatch := a.SharesCuratedNiche(b)
	var semanticNiche float64
	if a.Niche != b.Niche && !curatedMatch {
		if lookup != nil {
			if score, ok := lookup(a.Niche, b.Niche); ok {
				semanticNiche = score
			} else {
				semanticNiche = jaccardNicheFallback(a.Niche, b.Niche)
			}
		} else {
			semanticNiche = jaccardNicheFallback(a.Niche, b.Niche)
		}
	}
	syn, nicheScore := synergy(a.Preferences, a.Niche, b.Niche, semanticNiche, curatedMatch, a.Reach, b.Reach)

	mom := momentum(b.LastActiveAt, now)

	score := clamp01(scoringModel.WeightIntent*intent + scoringModel.WeightSynergy*syn + scoringModel.WeightMomentum*mom + scoringModel.WeightContext*contextValue)

	return &scoringModel.DirectionalResult{
		Intent:           intent,
		IntentMatch:      intentMatch,
		Synergy:          syn,
		NicheScore:       nicheScore,
		Momentum:         mom,
		Context:          contextValue,
		SharedEventCount: sharedEvents,
		Score:            score,
	}
}

// harmonicMean implements HM = 2·S_AB·S_BA/(S_AB+S_BA), 0 if the sum is 0
// (spec §4.3, §8 properties 2/3/7). Inputs and output are on the 0-100
// scale the Match Suggestion's score_ab/score_ba/harmonic_mean use.
func harmonicMean(scoreAB, scoreBA float64) float64 {
	if scoreAB+scoreBA == 0 {
		return 0
	}
	return 2 * scoreAB * scoreBA / (scoreAB + scoreBA)
}

// buildSimilarityLookup collects every (need, offer) and differing-niche
// pair across the whole eligible pair set and resolves them in one
// batched oracle call, so scoring never makes a per-pair oracle round
// trip (spec §5).
func (s *Scorer) buildSimilarityLookup(ctx context.Context, ids []string, bundles map[string]*assemblerModel.FeatureBundle) (similarityLookup, error) {
	if !s.cfg.OracleEnabled || s.oracle == nil {
		return nil, nil
	}

	seen := make(map[[2]string]bool)
	var pairs []oracle.Pair
	addPair := func(a, b string) {
		if a == "" || b == "" || a == b {
			return
		}
		key := [2]string{a, b}
		if seen[key] {
			return
		}
		seen[key] = true
		pairs = append(pairs, oracle.Pair{A: a, B: b})
	}

	for _, targetID := range ids {
		target := bundles[targetID]
		for _, candidateID := range ids {
			if candidateID == targetID {
				continue
			}
			candidate := bundles[candidateID]
			for _, need := range target.Needs {
				for _, offer := range candidate.Offers {
					addPair(need, offer)
				}
			}
			if target.Niche != candidate.Niche && !target.SharesCuratedNiche(candidate) {
				addPair(target.Niche, candidate.Niche)
			}
		}
	}

	if len(pairs) == 0 {
		return nil, nil
	}

	scores := s.oracle.BatchSimilarity(ctx, pairs)
	results := make(map[[2]string]float64, len(pairs))
	for i, p := range pairs {
		if i < len(scores) {
			results[[2]string{p.A, p.B}] = scores[i]
		}
	}

	return func(a, b string) (float64, bool) {
		if v, ok := results[[2]string{a, b}]; ok {
			return v, true
		}
		if v, ok := results[[2]string{b, a}]; ok {
			return v, true
		}
		return 0, false
	}, nil
}

func sortedIDs(bundles map[string]*assemblerModel.FeatureBundle) []string {
	ids := make([]string, 0, len(bundles))
	for id := range bundles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func shardIDs(ids []string, numShards int) [][]string {
	if numShards > len(ids) {
		numShards = len(ids)
	}
	if numShards <= 0 {
		return nil
	}
	shards := make([][]string, numShards)
	for i, id := range ids {
		shards[i%numShards] = append(shards[i%numShards], id)
	}
	return shards
}
