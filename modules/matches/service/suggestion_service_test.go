package service

import (
	"context"
	"testing"
	"time"

	fairnessModel "github.com/jvmatch/partnermatch/modules/fairness/model"
	fairnessService "github.com/jvmatch/partnermatch/modules/fairness/service"
	"github.com/jvmatch/partnermatch/modules/matches/model"
	"github.com/jvmatch/partnermatch/modules/matches/ports"
	scoringModel "github.com/jvmatch/partnermatch/modules/scoring/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSuggestionRepo struct {
	created []*model.MatchSuggestion
	byID    map[string]*model.MatchSuggestion
}

func newFakeSuggestionRepo() *fakeSuggestionRepo {
	return &fakeSuggestionRepo{byID: map[string]*model.MatchSuggestion{}}
}

func (f *fakeSuggestionRepo) CreateBatch(ctx context.Context, cycleID string, suggestions []*model.MatchSuggestion) error {
	for i, s := range suggestions {
		s.ID = "id-" + s.TargetProfileID + "-" + s.CandidateProfileID
		s.CycleID = cycleID
		f.byID[s.ID] = s
		f.created = append(f.created, suggestions[i])
	}
	return nil
}

func (f *fakeSuggestionRepo) GetByID(ctx context.Context, id string) (*model.MatchSuggestion, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, model.ErrSuggestionNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSuggestionRepo) GetByPair(ctx context.Context, targetProfileID, candidateProfileID string) (*model.MatchSuggestion, error) {
	return nil, model.ErrSuggestionNotFound
}

func (f *fakeSuggestionRepo) ListForTarget(ctx context.Context, targetProfileID string, opts *ports.ListOptions) ([]*model.MatchSuggestion, int, error) {
	var out []*model.MatchSuggestion
	for _, s := range f.byID {
		if s.TargetProfileID == targetProfileID {
			out = append(out, s)
		}
	}
	return out, len(out), nil
}

func (f *fakeSuggestionRepo) UpdateStatus(ctx context.Context, id string, from, to model.Status) error {
	s, ok := f.byID[id]
	if !ok {
		return model.ErrSuggestionNotFound
	}
	if s.Status != from {
		return model.ErrInvalidTransition
	}
	s.Status = to
	return nil
}

func (f *fakeSuggestionRepo) ListStatusHistory(ctx context.Context, matchID string) ([]*model.StatusEvent, error) {
	return nil, nil
}

func (f *fakeSuggestionRepo) CountTop3ForCandidate(ctx context.Context, cycleID, candidateProfileID string) (int, error) {
	return 0, nil
}

func (f *fakeSuggestionRepo) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	return 0, nil
}

func decisionFor(target, candidate string, rank int, tier fairnessModel.RankTier) *fairnessService.Decision {
	return &fairnessService.Decision{
		Pair: &scoringModel.PairResult{TargetProfileID: target, CandidateProfileID: candidate, FinalScore: 90, Rank: rank},
		FinalRank: rank,
		Tier:      tier,
	}
}

func TestSuggestionService_PersistCycle_TopKTruncates(t *testing.T) {
	repo := newFakeSuggestionRepo()
	svc := NewSuggestionService(repo, func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) })

	var decisions []*fairnessService.Decision
	for i := 0; i < 5; i++ {
		decisions = append(decisions, decisionFor("target", string(rune('a'+i)), i+1, fairnessModel.TierGold))
	}

	err := svc.PersistCycle(context.Background(), "cycle-1", decisions, ConfigSnapshot{TopK: 3, ExpiryDays: 7})
	require.NoError(t, err)
	assert.Len(t, repo.created, 3, "top_k=3 must truncate the persisted rows per target")
}

func TestSuggestionService_PersistCycle_ExpiryFromConfig(t *testing.T) {
	repo := newFakeSuggestionRepo()
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	svc := NewSuggestionService(repo, func() time.Time { return now })

	decisions := []*fairnessService.Decision{decisionFor("target", "cand", 1, fairnessModel.TierGold)}
	err := svc.PersistCycle(context.Background(), "cycle-1", decisions, ConfigSnapshot{TopK: 20, ExpiryDays: 7})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	assert.Equal(t, now.AddDate(0, 0, 7), repo.created[0].ExpiresAt)
}

func TestSuggestionService_Advance_RejectsSkippedStage(t *testing.T) {
	repo := newFakeSuggestionRepo()
	repo.byID["m1"] = &model.MatchSuggestion{ID: "m1", Status: model.StatusPending}
	svc := NewSuggestionService(repo, nil)

	_, err := svc.Advance(context.Background(), "m1", model.StatusContacted)
	assert.ErrorIs(t, err, model.ErrInvalidTransition)
}

func TestSuggestionService_Advance_AllowsMonotoneStep(t *testing.T) {
	repo := newFakeSuggestionRepo()
	repo.byID["m1"] = &model.MatchSuggestion{ID: "m1", Status: model.StatusPending}
	svc := NewSuggestionService(repo, nil)

	dto, err := svc.Advance(context.Background(), "m1", model.StatusViewed)
	require.NoError(t, err)
	assert.Equal(t, "viewed", dto.Status)
}
