package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jvmatch/partnermatch/modules/directory/model"
)

// DirectoryRepository persists raw ingested rows ahead of resolution,
// adapted from the teacher's company repository.
type DirectoryRepository struct {
	pool *pgxpool.Pool
}

func NewDirectoryRepository(pool *pgxpool.Pool) *DirectoryRepository {
	return &DirectoryRepository{pool: pool}
}

func (r *DirectoryRepository) Create(ctx context.Context, rec *model.DirectoryRecord) error {
	query := `
		INSERT INTO directory_records (id, source, event_id, raw_name, raw_email, raw_company, raw_website,
			resolved_profile_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	rec.ID = uuid.New().String()
	if rec.Status == "" {
		rec.Status = model.ResolutionUnresolved
	}
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	_, err := r.pool.Exec(ctx, query,
		rec.ID, rec.Source, rec.EventID, rec.RawName, rec.RawEmail, rec.RawCompany, rec.RawWebsite,
		rec.ResolvedProfileID, rec.Status, rec.CreatedAt, rec.UpdatedAt,
	)
	return err
}

// ListUnresolved returns every record the Resolver has not yet processed,
// the cascade's input batch (spec §4.1 "a batch of candidate records").
func (r *DirectoryRepository) ListUnresolved(ctx context.Context) ([]*model.DirectoryRecord, error) {
	query := `
		SELECT id, source, event_id, raw_name, raw_email, raw_company, raw_website,
			resolved_profile_id, status, created_at, updated_at
		FROM directory_records
		WHERE status = $1
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, model.ResolutionUnresolved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*model.DirectoryRecord
	for rows.Next() {
		rec := &model.DirectoryRecord{}
		if err := rows.Scan(&rec.ID, &rec.Source, &rec.EventID, &rec.RawName, &rec.RawEmail, &rec.RawCompany,
			&rec.RawWebsite, &rec.ResolvedProfileID, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// MarkResolved transitions a record out of "unresolved" once the Resolver
// has decided its fate (merged into an existing profile, staged for manual
// review, or used to create a new profile).
func (r *DirectoryRepository) MarkResolved(ctx context.Context, recordID string, status model.ResolutionStatus, resolvedProfileID *string) error {
	query := `UPDATE directory_records SET status = $2, resolved_profile_id = $3, updated_at = $4 WHERE id = $1`
	result, err := r.pool.Exec(ctx, query, recordID, status, resolvedProfileID, time.Now().UTC())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return model.ErrDirectoryRecordNotFound
	}
	return nil
}

func (r *DirectoryRepository) GetByID(ctx context.Context, recordID string) (*model.DirectoryRecord, error) {
	query := `
		SELECT id, source, event_id, raw_name, raw_email, raw_company, raw_website,
			resolved_profile_id, status, created_at, updated_at
		FROM directory_records WHERE id = $1
	`
	rec := &model.DirectoryRecord{}
	err := r.pool.QueryRow(ctx, query, recordID).Scan(&rec.ID, &rec.Source, &rec.EventID, &rec.RawName,
		&rec.RawEmail, &rec.RawCompany, &rec.RawWebsite, &rec.ResolvedProfileID, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrDirectoryRecordNotFound
		}
		return nil, err
	}
	return rec, nil
}
