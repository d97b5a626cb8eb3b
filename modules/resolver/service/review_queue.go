package service

import (
	"context"
	"time"

	"github.com/jvmatch/partnermatch/modules/resolver/model"
	"github.com/jvmatch/partnermatch/modules/resolver/ports"
)

// QueueService is the operator-facing side of the tier-4 review queue: list
// what's pending, record a merge/reject decision. Separate from
// EntityResolver, which only ever writes to the queue.
type QueueService struct {
	store ports.ReviewQueueStore
	now   func() time.Time
}

func NewQueueService(store ports.ReviewQueueStore, now func() time.Time) *QueueService {
	return &QueueService{store: store, now: now}
}

func (s *QueueService) ListPending(ctx context.Context) ([]*model.ReviewQueueEntry, error) {
	return s.store.ListPending(ctx)
}

// Decide records an operator's merge/reject call on a queued entry.
// decision is caller-defined ("merge" or "reject"); the resolver itself
// stays out of the business of acting on the decision, mirroring tier-4's
// "never auto-merges" rule (spec §4.1).
func (s *QueueService) Decide(ctx context.Context, id, decision, decidedBy string) error {
	return s.store.Decide(ctx, id, decision, decidedBy, s.now())
}
