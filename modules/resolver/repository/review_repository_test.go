package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jvmatch/partnermatch/modules/resolver/model"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testReviewRepo duplicates ReviewRepository's query text against
// pgxmock.PgxPoolIface, since *pgxpool.Pool can't be substituted directly
// (same pattern as modules/matches/repository's testSuggestionRepo).
type testReviewRepo struct{ mock pgxmock.PgxPoolIface }

func (r *testReviewRepo) CreateReviewEntry(ctx context.Context, entry *model.ReviewQueueEntry) error {
	query := `
		INSERT INTO review_queue_entries (id, directory_record_id, candidate_profile_id, confidence, reason, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	entry.ID = "review-1"
	entry.Status = model.ReviewPending
	entry.CreatedAt = time.Now().UTC()
	_, err := r.mock.Exec(ctx, query, entry.ID, entry.DirectoryRecordID, entry.CandidateProfileID, entry.Confidence, entry.Reason, entry.Status, entry.CreatedAt)
	return err
}

func (r *testReviewRepo) Decide(ctx context.Context, id, decision, decidedBy string, decidedAt time.Time) error {
	query := `
		UPDATE review_queue_entries SET status = $1, decision = $2, decided_by = $3, decided_at = $4
		WHERE id = $5 AND status = $6
	`
	result, err := r.mock.Exec(ctx, query, model.ReviewResolved, decision, decidedBy, decidedAt, id, model.ReviewPending)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return model.ErrReviewEntryNotFound
	}
	return nil
}

func TestReviewRepository_CreateReviewEntry(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	entry := &model.ReviewQueueEntry{DirectoryRecordID: "rec-1", CandidateProfileID: "p-1", Confidence: 0.62, Reason: "fuzzy name match"}

	mock.ExpectExec("INSERT INTO review_queue_entries").
		WithArgs(pgxmock.AnyArg(), entry.DirectoryRecordID, entry.CandidateProfileID, entry.Confidence, entry.Reason, model.ReviewPending, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := &testReviewRepo{mock: mock}
	err = repo.CreateReviewEntry(context.Background(), entry)
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_Decide_NotFoundWhenAlreadyResolved(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("UPDATE review_queue_entries").
		WithArgs(model.ReviewResolved, "merge", "op-1", pgxmock.AnyArg(), "review-1", model.ReviewPending).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := &testReviewRepo{mock: mock}
	err = repo.Decide(context.Background(), "review-1", "merge", "op-1", time.Now().UTC())
	assert.Equal(t, model.ErrReviewEntryNotFound, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
