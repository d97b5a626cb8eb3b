package service

import (
	"context"
	"testing"
	"time"

	"github.com/jvmatch/partnermatch/modules/resolver/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReviewQueueStore struct {
	pending      []*model.ReviewQueueEntry
	decidedID    string
	decidedWith  string
	decidedBy    string
	decidedAt    time.Time
	decideErr    error
}

func (f *fakeReviewQueueStore) ListPending(ctx context.Context) ([]*model.ReviewQueueEntry, error) {
	return f.pending, nil
}

func (f *fakeReviewQueueStore) Decide(ctx context.Context, id, decision, decidedBy string, decidedAt time.Time) error {
	f.decidedID = id
	f.decidedWith = decision
	f.decidedBy = decidedBy
	f.decidedAt = decidedAt
	return f.decideErr
}

func TestQueueService_ListPending(t *testing.T) {
	store := &fakeReviewQueueStore{pending: []*model.ReviewQueueEntry{{ID: "r1"}, {ID: "r2"}}}
	svc := NewQueueService(store, func() time.Time { return time.Unix(0, 0) })

	entries, err := svc.ListPending(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestQueueService_Decide(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeReviewQueueStore{}
	svc := NewQueueService(store, func() time.Time { return now })

	err := svc.Decide(context.Background(), "r1", "merge", "operator-1")

	require.NoError(t, err)
	assert.Equal(t, "r1", store.decidedID)
	assert.Equal(t, "merge", store.decidedWith)
	assert.Equal(t, "operator-1", store.decidedBy)
	assert.Equal(t, now, store.decidedAt)
}

func TestQueueService_Decide_PropagatesNotFound(t *testing.T) {
	store := &fakeReviewQueueStore{decideErr: model.ErrReviewEntryNotFound}
	svc := NewQueueService(store, time.Now)

	err := svc.Decide(context.Background(), "missing", "reject", "operator-1")

	assert.Equal(t, model.ErrReviewEntryNotFound, err)
}
