// Package service turns a cycle's scored, filtered pairs into persisted
// Match Suggestions and exposes the status-transition API (spec §3, §6).
// Grounded on modules/applications' ApplicationService.Update pattern for
// validating a status field against an allow-list before writing, adapted
// to a monotone lifecycle instead of a flat enum.
package service

import (
	"context"
	"encoding/json"
	"time"

	fairnessService "github.com/jvmatch/partnermatch/modules/fairness/service"
	"github.com/jvmatch/partnermatch/modules/matches/model"
	"github.com/jvmatch/partnermatch/modules/matches/ports"
)

// ConfigSnapshot is the opaque blob stored on every suggestion row in a
// cycle, letting a later reviewer reconstruct which weights and thresholds
// produced it (spec §6 "Suggestion rows carry the config snapshot... for
// reproducibility").
type ConfigSnapshot struct {
	TopK                    int     `json:"top_k"`
	PopularityCap           int     `json:"popularity_cap"`
	ExpiryDays              int     `json:"expiry_days"`
	IntentFallbackThreshold float64 `json:"intent_fallback_threshold"`
	SemanticMatchThreshold  float64 `json:"semantic_match_threshold"`
	OracleEnabled           bool    `json:"oracle_enabled"`
}

type SuggestionService struct {
	repo ports.SuggestionRepository
	now  func() time.Time
}

func NewSuggestionService(repo ports.SuggestionRepository, now func() time.Time) *SuggestionService {
	if now == nil {
		now = time.Now
	}
	return &SuggestionService{repo: repo, now: now}
}

// PersistCycle converts the Fairness Filter's decisions into MatchSuggestion
// rows and writes them in one batch, applying top_k truncation per target
// (spec §6 top_k) before persisting. Dropped-from-Top-3 pairs are still
// persisted (demoted, not deleted, per spec §4.4).
func (s *SuggestionService) PersistCycle(ctx context.Context, cycleID string, decisions []*fairnessService.Decision, cfg ConfigSnapshot) error {
	rows, err := BuildRows(decisions, cfg, s.now().UTC())
	if err != nil {
		return err
	}
	return s.repo.CreateBatch(ctx, cycleID, rows)
}

// BuildRows converts a cycle's fairness decisions into MatchSuggestion rows,
// applying top_k truncation per target (spec §6), without touching
// storage. Exposed so run_for_profile (modules/cycle) can hand the caller
// suggestions straight from memory instead of reading them back from the
// database it just wrote.
func BuildRows(decisions []*fairnessService.Decision, cfg ConfigSnapshot, suggestedAt time.Time) ([]*model.MatchSuggestion, error) {
	snapshot, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}

	byTarget := make(map[string][]*fairnessService.Decision)
	for _, d := range decisions {
		byTarget[d.Pair.TargetProfileID] = append(byTarget[d.Pair.TargetProfileID], d)
	}

	expiresAt := suggestedAt.Add(time.Duration(cfg.ExpiryDays) * 24 * time.Hour)

	var rows []*model.MatchSuggestion
	for _, group := range byTarget {
		limit := cfg.TopK
		if limit <= 0 || limit > len(group) {
			limit = len(group)
		}
		for i, d := range group {
			if i >= limit {
				break
			}
			p := d.Pair
			rows = append(rows, &model.MatchSuggestion{
				TargetProfileID:    p.TargetProfileID,
				CandidateProfileID: p.CandidateProfileID,
				ScoreAB:            p.ScoreAB,
				ScoreBA:            p.ScoreBA,
				HarmonicMean:       p.HarmonicMean,
				ScaleSymmetryScore: p.ScaleSymmetryScore,
				TrustLevel:         p.TrustLevel,
				MatchReason:        p.MatchReason,
				Status:             model.StatusPending,
				Rank:               d.FinalRank,
				Tier:               string(d.Tier),
				ConfigSnapshot:     snapshot,
				ExpiresAt:          expiresAt,
				SuggestedAt:        suggestedAt,
			})
		}
	}

	return rows, nil
}

func (s *SuggestionService) GetByID(ctx context.Context, id string) (*model.MatchSuggestionDTO, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return m.ToDTO(), nil
}

func (s *SuggestionService) ListForTarget(ctx context.Context, targetProfileID string, opts *ports.ListOptions) ([]*model.MatchSuggestionDTO, int, error) {
	rows, total, err := s.repo.ListForTarget(ctx, targetProfileID, opts)
	if err != nil {
		return nil, 0, err
	}
	dtos := make([]*model.MatchSuggestionDTO, len(rows))
	for i, r := range rows {
		dtos[i] = r.ToDTO()
	}
	return dtos, total, nil
}

// Advance moves a suggestion to `to`, rejecting the call if it would break
// the monotone lifecycle (spec §3 Lifecycles).
func (s *SuggestionService) Advance(ctx context.Context, id string, to model.Status) (*model.MatchSuggestionDTO, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !model.CanTransition(current.Status, to) {
		return nil, model.ErrInvalidTransition
	}
	if err := s.repo.UpdateStatus(ctx, id, current.Status, to); err != nil {
		return nil, err
	}
	current.Status = to
	return current.ToDTO(), nil
}

func (s *SuggestionService) StatusHistory(ctx context.Context, matchID string) ([]*model.StatusEvent, error) {
	return s.repo.ListStatusHistory(ctx, matchID)
}
