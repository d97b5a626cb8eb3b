package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jvmatch/partnermatch/modules/intakes/model"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testIntakeRepo duplicates IntakeRepository's queries against
// pgxmock.PgxPoolIface, since *pgxpool.Pool itself cannot be substituted
// directly (same pattern as modules/profiles/repository).
type testIntakeRepo struct {
	mock pgxmock.PgxPoolIface
}

func (r *testIntakeRepo) Create(ctx context.Context, intake *model.IntakeSubmission) error {
	query := `
		INSERT INTO intake_submissions
			(id, profile_id, event_id, event_name, event_date, verified_offers, verified_needs,
			 match_preference, anti_personas, suggested_offers, suggested_needs, confirmed_at,
			 evidence_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	intake.ID = "test-intake-id"
	now := time.Now().UTC()
	intake.CreatedAt = now
	intake.UpdatedAt = now

	_, err := r.mock.Exec(ctx, query,
		intake.ID, intake.ProfileID, intake.EventID, intake.EventName, intake.EventDate,
		intake.VerifiedOffers, intake.VerifiedNeeds,
		preferencesToStrings(intake.MatchPreference), antiPersonasToStrings(intake.AntiPersonas),
		intake.SuggestedOffers, intake.SuggestedNeeds, intake.ConfirmedAt, intake.EvidenceKey,
		intake.CreatedAt, intake.UpdatedAt,
	)
	return err
}

func (r *testIntakeRepo) Confirm(ctx context.Context, id string, confirmedAt time.Time) error {
	query := `UPDATE intake_submissions SET confirmed_at = $1, updated_at = $2 WHERE id = $3`
	tag, err := r.mock.Exec(ctx, query, confirmedAt, confirmedAt, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrIntakeNotFound
	}
	return nil
}

func TestIntakeRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	intake := &model.IntakeSubmission{
		ProfileID:       "profile-1",
		EventID:         "event-1",
		EventName:       "Summit 2026",
		VerifiedOffers:  []string{"video editing"},
		VerifiedNeeds:   []string{"copywriting"},
		MatchPreference: []model.PreferenceType{model.PeerBundle},
	}

	mock.ExpectExec("INSERT INTO intake_submissions").
		WithArgs(pgxmock.AnyArg(), intake.ProfileID, intake.EventID, intake.EventName, intake.EventDate,
			intake.VerifiedOffers, intake.VerifiedNeeds, []string{"Peer_Bundle"}, []string{},
			intake.SuggestedOffers, intake.SuggestedNeeds, intake.ConfirmedAt, intake.EvidenceKey,
			pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := &testIntakeRepo{mock: mock}
	err = repo.Create(context.Background(), intake)

	require.NoError(t, err)
	assert.NotEmpty(t, intake.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIntakeRepository_Confirm(t *testing.T) {
	t.Run("not found returns ErrIntakeNotFound", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("UPDATE intake_submissions").
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), "missing").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		repo := &testIntakeRepo{mock: mock}
		err = repo.Confirm(context.Background(), "missing", time.Now())

		assert.ErrorIs(t, err, model.ErrIntakeNotFound)
	})
}
