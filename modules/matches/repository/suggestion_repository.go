// Package repository implements ports.SuggestionRepository over Postgres,
// grounded on modules/applications' ApplicationRepository/ApplicationStageRepository
// pair: a mutable aggregate row plus an append-only child log, persisted
// with pgx/pgxpool. CreateBatch additionally follows spec §7's "transactional
// persistence with rollback-on-failure" by wrapping the whole cycle's insert
// in a single pgx.Tx.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jvmatch/partnermatch/modules/matches/model"
	"github.com/jvmatch/partnermatch/modules/matches/ports"
)

type SuggestionRepository struct {
	pool *pgxpool.Pool
}

func NewSuggestionRepository(pool *pgxpool.Pool) *SuggestionRepository {
	return &SuggestionRepository{pool: pool}
}

// CreateBatch inserts a cycle's suggestions inside one transaction. An
// existing row for a (target, candidate) pair is left untouched rather than
// erroring, so repeat or resumed cycle runs stay idempotent (spec §3
// uniqueness, §7 "transactional persistence with rollback-on-failure").
func (r *SuggestionRepository) CreateBatch(ctx context.Context, cycleID string, suggestions []*model.MatchSuggestion) error {
	if len(suggestions) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()
	for _, s := range suggestions {
		s.ID = uuid.New().String()
		s.CycleID = cycleID
		s.CreatedAt = now
		s.UpdatedAt = now
		if s.Status == "" {
			s.Status = model.StatusPending
		}
		if s.SuggestedAt.IsZero() {
			s.SuggestedAt = now
		}
		if s.ExpiresAt.IsZero() {
			s.ExpiresAt = s.SuggestedAt.Add(model.DefaultExpiry)
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO match_suggestions
				(id, cycle_id, target_profile_id, candidate_profile_id, score_ab, score_ba,
				 harmonic_mean, scale_symmetry_score, trust_level, match_reason, status, rank, tier,
				 config_snapshot, expires_at, suggested_at, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
			ON CONFLICT (target_profile_id, candidate_profile_id) DO NOTHING
		`,
			s.ID, s.CycleID, s.TargetProfileID, s.CandidateProfileID, s.ScoreAB, s.ScoreBA,
			s.HarmonicMean, s.ScaleSymmetryScore, s.TrustLevel, s.MatchReason, s.Status, s.Rank, s.Tier,
			s.ConfigSnapshot, s.ExpiresAt, s.SuggestedAt, s.CreatedAt, s.UpdatedAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *SuggestionRepository) GetByID(ctx context.Context, id string) (*model.MatchSuggestion, error) {
	query := `
		SELECT id, cycle_id, target_profile_id, candidate_profile_id, score_ab, score_ba,
		       harmonic_mean, scale_symmetry_score, trust_level, match_reason, status, rank, tier,
		       config_snapshot, expires_at, suggested_at, created_at, updated_at
		FROM match_suggestions WHERE id = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *SuggestionRepository) GetByPair(ctx context.Context, targetProfileID, candidateProfileID string) (*model.MatchSuggestion, error) {
	query := `
		SELECT id, cycle_id, target_profile_id, candidate_profile_id, score_ab, score_ba,
		       harmonic_mean, scale_symmetry_score, trust_level, match_reason, status, rank, tier,
		       config_snapshot, expires_at, suggested_at, created_at, updated_at
		FROM match_suggestions WHERE target_profile_id = $1 AND candidate_profile_id = $2
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, targetProfileID, candidateProfileID))
}

func (r *SuggestionRepository) ListForTarget(ctx context.Context, targetProfileID string, opts *ports.ListOptions) ([]*model.MatchSuggestion, int, error) {
	countQuery := `SELECT COUNT(*) FROM match_suggestions WHERE target_profile_id = $1 AND ($2 = '' OR status = $2)`
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, targetProfileID, opts.Status).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, cycle_id, target_profile_id, candidate_profile_id, score_ab, score_ba,
		       harmonic_mean, scale_symmetry_score, trust_level, match_reason, status, rank, tier,
		       config_snapshot, expires_at, suggested_at, created_at, updated_at
		FROM match_suggestions
		WHERE target_profile_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY rank ASC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.pool.Query(ctx, query, targetProfileID, opts.Status, opts.Limit, opts.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*model.MatchSuggestion
	for rows.Next() {
		s, err := scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, s)
	}
	return out, total, rows.Err()
}

// UpdateStatus appends a StatusEvent and advances the suggestion's status
// in one transaction. Callers must validate the transition via
// model.CanTransition beforehand; this method re-checks the current status
// against `from` to guard against a concurrent update racing it.
func (r *SuggestionRepository) UpdateStatus(ctx context.Context, id string, from, to model.Status) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE match_suggestions SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		to, time.Now().UTC(), id, from,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrInvalidTransition
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO match_status_events (id, match_id, from_status, to_status, occurred_at) VALUES ($1, $2, $3, $4, $5)`,
		uuid.New().String(), id, from, to, time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *SuggestionRepository) ListStatusHistory(ctx context.Context, matchID string) ([]*model.StatusEvent, error) {
	query := `SELECT id, match_id, from_status, to_status, occurred_at FROM match_status_events WHERE match_id = $1 ORDER BY occurred_at ASC`
	rows, err := r.pool.Query(ctx, query, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.StatusEvent
	for rows.Next() {
		e := &model.StatusEvent{}
		if err := rows.Scan(&e.ID, &e.MatchID, &e.FromStatus, &e.ToStatus, &e.OccurredAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *SuggestionRepository) CountTop3ForCandidate(ctx context.Context, cycleID, candidateProfileID string) (int, error) {
	query := `SELECT COUNT(*) FROM match_suggestions WHERE cycle_id = $1 AND candidate_profile_id = $2 AND rank <= 3`
	var count int
	err := r.pool.QueryRow(ctx, query, cycleID, candidateProfileID).Scan(&count)
	return count, err
}

func (r *SuggestionRepository) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM match_suggestions WHERE expires_at < $1`, now)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SuggestionRepository) scanOne(row pgx.Row) (*model.MatchSuggestion, error) {
	s, err := scanRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSuggestionNotFound
		}
		return nil, err
	}
	return s, nil
}

func scanRow(row rowScanner) (*model.MatchSuggestion, error) {
	s := &model.MatchSuggestion{}
	err := row.Scan(
		&s.ID, &s.CycleID, &s.TargetProfileID, &s.CandidateProfileID, &s.ScoreAB, &s.ScoreBA,
		&s.HarmonicMean, &s.ScaleSymmetryScore, &s.TrustLevel, &s.MatchReason, &s.Status, &s.Rank, &s.Tier,
		&s.ConfigSnapshot, &s.ExpiresAt, &s.SuggestedAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}
