// Package repository persists the Entity Resolver's tier-4 review queue and
// merge history log (modules/resolver/model), grounded on modules/comments'
// single-table pgxpool repository pattern.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jvmatch/partnermatch/modules/resolver/model"
)

type ReviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// CreateReviewEntry stages a tier-4 ambiguous match for a human operator
// (spec §4.1 "Failure semantics": tier-4 never auto-merges).
func (r *ReviewRepository) CreateReviewEntry(ctx context.Context, entry *model.ReviewQueueEntry) error {
	query := `
		INSERT INTO review_queue_entries (id, directory_record_id, candidate_profile_id, confidence, reason, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	entry.ID = uuid.New().String()
	entry.Status = model.ReviewPending
	entry.CreatedAt = time.Now().UTC()
	_, err := r.pool.Exec(ctx, query, entry.ID, entry.DirectoryRecordID, entry.CandidateProfileID, entry.Confidence, entry.Reason, entry.Status, entry.CreatedAt)
	return err
}

// CreateMergeHistoryEntry appends a field-level conflict the resolver chose
// not to silently overwrite (spec §4.1).
func (r *ReviewRepository) CreateMergeHistoryEntry(ctx context.Context, entry *model.MergeHistoryEntry) error {
	query := `
		INSERT INTO merge_history_entries (id, profile_id, field, kept_value, new_value, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	entry.ID = uuid.New().String()
	entry.RecordedAt = time.Now().UTC()
	_, err := r.pool.Exec(ctx, query, entry.ID, entry.ProfileID, entry.Field, entry.KeptValue, entry.NewValue, entry.RecordedAt)
	return err
}

// ListPending returns the operator-facing review queue, oldest first.
func (r *ReviewRepository) ListPending(ctx context.Context) ([]*model.ReviewQueueEntry, error) {
	query := `
		SELECT id, directory_record_id, candidate_profile_id, confidence, reason, status, decision, decided_by, created_at, decided_at
		FROM review_queue_entries WHERE status = $1 ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, model.ReviewPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*model.ReviewQueueEntry
	for rows.Next() {
		e := &model.ReviewQueueEntry{}
		if err := rows.Scan(&e.ID, &e.DirectoryRecordID, &e.CandidateProfileID, &e.Confidence, &e.Reason, &e.Status, &e.Decision, &e.DecidedBy, &e.CreatedAt, &e.DecidedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Decide records an operator's merge/reject decision on a queued entry.
func (r *ReviewRepository) Decide(ctx context.Context, id, decision, decidedBy string, decidedAt time.Time) error {
	query := `
		UPDATE review_queue_entries SET status = $1, decision = $2, decided_by = $3, decided_at = $4
		WHERE id = $5 AND status = $6
	`
	result, err := r.pool.Exec(ctx, query, model.ReviewResolved, decision, decidedBy, decidedAt, id, model.ReviewPending)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return model.ErrReviewEntryNotFound
	}
	return nil
}
