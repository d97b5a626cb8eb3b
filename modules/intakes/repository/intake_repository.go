package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jvmatch/partnermatch/modules/intakes/model"
)

// IntakeRepository implements ports.IntakeRepository over Postgres, storing
// set-valued fields (verified offers/needs, preferences, anti-personas) as
// native arrays, per the teacher's jobs/companies array-column conventions.
type IntakeRepository struct {
	pool *pgxpool.Pool
}

func NewIntakeRepository(pool *pgxpool.Pool) *IntakeRepository {
	return &IntakeRepository{pool: pool}
}

func (r *IntakeRepository) Create(ctx context.Context, intake *model.IntakeSubmission) error {
	query := `
		INSERT INTO intake_submissions
			(id, profile_id, event_id, event_name, event_date, verified_offers, verified_needs,
			 match_preference, anti_personas, suggested_offers, suggested_needs, confirmed_at,
			 evidence_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	intake.ID = uuid.New().String()
	now := time.Now().UTC()
	intake.CreatedAt = now
	intake.UpdatedAt = now

	_, err := r.pool.Exec(ctx, query,
		intake.ID, intake.ProfileID, intake.EventID, intake.EventName, intake.EventDate,
		intake.VerifiedOffers, intake.VerifiedNeeds,
		preferencesToStrings(intake.MatchPreference), antiPersonasToStrings(intake.AntiPersonas),
		intake.SuggestedOffers, intake.SuggestedNeeds, intake.ConfirmedAt, intake.EvidenceKey,
		intake.CreatedAt, intake.UpdatedAt,
	)
	return err
}

func (r *IntakeRepository) GetByID(ctx context.Context, id string) (*model.IntakeSubmission, error) {
	query := `
		SELECT id, profile_id, event_id, event_name, event_date, verified_offers, verified_needs,
		       match_preference, anti_personas, suggested_offers, suggested_needs, confirmed_at,
		       evidence_key, created_at, updated_at
		FROM intake_submissions WHERE id = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *IntakeRepository) GetByProfileAndEvent(ctx context.Context, profileID, eventID string) (*model.IntakeSubmission, error) {
	query := `
		SELECT id, profile_id, event_id, event_name, event_date, verified_offers, verified_needs,
		       match_preference, anti_personas, suggested_offers, suggested_needs, confirmed_at,
		       evidence_key, created_at, updated_at
		FROM intake_submissions WHERE profile_id = $1 AND event_id = $2
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, profileID, eventID))
}

func (r *IntakeRepository) Confirm(ctx context.Context, id string, confirmedAt time.Time) error {
	query := `UPDATE intake_submissions SET confirmed_at = $1, updated_at = $2 WHERE id = $3`
	tag, err := r.pool.Exec(ctx, query, confirmedAt, confirmedAt, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrIntakeNotFound
	}
	return nil
}

func (r *IntakeRepository) SetEvidenceKey(ctx context.Context, id string, key string) error {
	query := `UPDATE intake_submissions SET evidence_key = $1, updated_at = $2 WHERE id = $3`
	tag, err := r.pool.Exec(ctx, query, key, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrIntakeNotFound
	}
	return nil
}

// LatestConfirmedByProfile implements the external load_intakes(profile_ids)
// interface (spec §6): one row per profile, the most recently confirmed
// intake, "latest confirmed wins" (spec §3).
func (r *IntakeRepository) LatestConfirmedByProfile(ctx context.Context, profileIDs []string) (map[string]*model.IntakeSubmission, error) {
	query := `
		SELECT DISTINCT ON (profile_id)
		       id, profile_id, event_id, event_name, event_date, verified_offers, verified_needs,
		       match_preference, anti_personas, suggested_offers, suggested_needs, confirmed_at,
		       evidence_key, created_at, updated_at
		FROM intake_submissions
		WHERE profile_id = ANY($1) AND confirmed_at IS NOT NULL
		ORDER BY profile_id, confirmed_at DESC
	`
	rows, err := r.pool.Query(ctx, query, profileIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]*model.IntakeSubmission)
	for rows.Next() {
		intake, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		out[intake.ProfileID] = intake
	}
	return out, rows.Err()
}

// EventsAttendedByProfile returns distinct event ids per profile across the
// full intake history (events(P), spec §4.2), not just the latest intake.
func (r *IntakeRepository) EventsAttendedByProfile(ctx context.Context, profileIDs []string) (map[string][]string, error) {
	query := `SELECT profile_id, event_id FROM intake_submissions WHERE profile_id = ANY($1)`
	rows, err := r.pool.Query(ctx, query, profileIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var profileID, eventID string
		if err := rows.Scan(&profileID, &eventID); err != nil {
			return nil, err
		}
		out[profileID] = append(out[profileID], eventID)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *IntakeRepository) scanOne(row pgx.Row) (*model.IntakeSubmission, error) {
	intake, err := scanRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrIntakeNotFound
		}
		return nil, err
	}
	return intake, nil
}

func scanRow(row rowScanner) (*model.IntakeSubmission, error) {
	intake := &model.IntakeSubmission{}
	var preferences, antiPersonas []string
	err := row.Scan(
		&intake.ID, &intake.ProfileID, &intake.EventID, &intake.EventName, &intake.EventDate,
		&intake.VerifiedOffers, &intake.VerifiedNeeds,
		&preferences, &antiPersonas,
		&intake.SuggestedOffers, &intake.SuggestedNeeds, &intake.ConfirmedAt, &intake.EvidenceKey,
		&intake.CreatedAt, &intake.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	intake.MatchPreference = stringsToPreferences(preferences)
	intake.AntiPersonas = stringsToAntiPersonas(antiPersonas)
	return intake, nil
}

func preferencesToStrings(p []model.PreferenceType) []string {
	out := make([]string, len(p))
	for i, v := range p {
		out[i] = string(v)
	}
	return out
}

func antiPersonasToStrings(a []model.AntiPersona) []string {
	out := make([]string, len(a))
	for i, v := range a {
		out[i] = string(v)
	}
	return out
}

func stringsToPreferences(s []string) []model.PreferenceType {
	out := make([]model.PreferenceType, len(s))
	for i, v := range s {
		out[i] = model.PreferenceType(v)
	}
	return out
}

func stringsToAntiPersonas(s []string) []model.AntiPersona {
	out := make([]model.AntiPersona, len(s))
	for i, v := range s {
		out[i] = model.AntiPersona(v)
	}
	return out
}
