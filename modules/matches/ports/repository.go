package ports

import (
	"context"
	"time"

	"github.com/jvmatch/partnermatch/modules/matches/model"
)

// ListOptions mirrors applications/ports.ListOptions, narrowed to what a
// target-centric suggestion list needs.
type ListOptions struct {
	Limit  int
	Offset int
	Status string // optional filter, "" means all
}

type SuggestionRepository interface {
	// CreateBatch inserts one cycle's suggestions in a single transaction,
	// skipping (not erroring) rows that already exist for their (target,
	// candidate) pair so repeat cycle runs stay idempotent.
	CreateBatch(ctx context.Context, cycleID string, suggestions []*model.MatchSuggestion) error
	GetByID(ctx context.Context, id string) (*model.MatchSuggestion, error)
	GetByPair(ctx context.Context, targetProfileID, candidateProfileID string) (*model.MatchSuggestion, error)
	ListForTarget(ctx context.Context, targetProfileID string, opts *ListOptions) ([]*model.MatchSuggestion, int, error)
	// UpdateStatus appends a StatusEvent and advances the suggestion's
	// status; callers must have already validated the transition via
	// model.CanTransition.
	UpdateStatus(ctx context.Context, id string, from, to model.Status) error
	ListStatusHistory(ctx context.Context, matchID string) ([]*model.StatusEvent, error)
	// CountTop3ForCandidate reports how many targets currently rank this
	// candidate in their Top-3 for the given cycle (spec §3 invariant d).
	CountTop3ForCandidate(ctx context.Context, cycleID, candidateProfileID string) (int, error)
	// DeleteExpired removes suggestions whose expires_at has passed;
	// returns the count removed.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}
