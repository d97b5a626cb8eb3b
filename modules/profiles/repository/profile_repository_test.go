package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jvmatch/partnermatch/modules/profiles/model"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRepository_Create(t *testing.T) {
	t.Run("creates profile successfully", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		p := &model.Profile{DisplayName: "Ada Lovelace", Niche: "engineering"}

		mock.ExpectExec("INSERT INTO profiles").
			WithArgs(pgxmock.AnyArg(), p.DisplayName, p.Email, p.Company, p.Website, p.Niche, p.Audience,
				p.ListSize, p.SocialReach, p.LastActiveAt, p.Offering, p.Seeking, p.WhatYouDo, pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		repo := &testProfileRepo{mock: mock}
		err = repo.Create(context.Background(), p)

		require.NoError(t, err)
		assert.NotEmpty(t, p.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProfileRepository_GetByID(t *testing.T) {
	t.Run("returns profile successfully", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		now := time.Now()
		rows := pgxmock.NewRows([]string{
			"id", "display_name", "email", "company", "website", "niche", "audience",
			"list_size", "social_reach", "last_active_at", "offering", "seeking", "what_you_do", "created_at", "updated_at",
		}).AddRow("profile-1", "Ada Lovelace", nil, nil, nil, "engineering", "founders", 100, 200, nil, nil, nil, nil, now, now)

		mock.ExpectQuery("SELECT id, display_name").
			WithArgs("profile-1").
			WillReturnRows(rows)

		repo := &testProfileRepo{mock: mock}
		p, err := repo.GetByID(context.Background(), "profile-1")

		require.NoError(t, err)
		assert.Equal(t, "profile-1", p.ID)
		assert.Equal(t, 300, p.Reach())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error when not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT id, display_name").
			WithArgs("missing").
			WillReturnError(pgx.ErrNoRows)

		repo := &testProfileRepo{mock: mock}
		p, err := repo.GetByID(context.Background(), "missing")

		assert.Nil(t, p)
		assert.Equal(t, model.ErrProfileNotFound, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProfileRepository_Update(t *testing.T) {
	t.Run("returns error when profile not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		p := &model.Profile{ID: "missing", DisplayName: "X"}

		mock.ExpectExec("UPDATE profiles").
			WithArgs(p.ID, p.DisplayName, p.Email, p.Company, p.Website, p.Niche, p.Audience,
				p.ListSize, p.SocialReach, p.Offering, p.Seeking, p.WhatYouDo, pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		repo := &testProfileRepo{mock: mock}
		err = repo.Update(context.Background(), p)

		assert.Equal(t, model.ErrProfileNotFound, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

// testProfileRepo mirrors ProfileRepository's queries against pgxmock's
// PgxPoolIface, since *pgxpool.Pool itself cannot be substituted directly.
type testProfileRepo struct {
	mock pgxmock.PgxPoolIface
}

func (r *testProfileRepo) Create(ctx context.Context, p *model.Profile) error {
	query := `
		INSERT INTO profiles (id, display_name, email, company, website, niche, audience,
			list_size, social_reach, last_active_at, offering, seeking, what_you_do, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	p.ID = "test-profile-id"
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.mock.Exec(ctx, query,
		p.ID, p.DisplayName, p.Email, p.Company, p.Website, p.Niche, p.Audience,
		p.ListSize, p.SocialReach, p.LastActiveAt, p.Offering, p.Seeking, p.WhatYouDo, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *testProfileRepo) GetByID(ctx context.Context, profileID string) (*model.Profile, error) {
	query := `
		SELECT id, display_name, email, company, website, niche, audience,
			list_size, social_reach, last_active_at, offering, seeking, what_you_do, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`
	p := &model.Profile{}
	err := r.mock.QueryRow(ctx, query, profileID).Scan(
		&p.ID, &p.DisplayName, &p.Email, &p.Company, &p.Website, &p.Niche, &p.Audience,
		&p.ListSize, &p.SocialReach, &p.LastActiveAt, &p.Offering, &p.Seeking, &p.WhatYouDo, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, model.ErrProfileNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *testProfileRepo) Update(ctx context.Context, p *model.Profile) error {
	query := `
		UPDATE profiles
		SET display_name = $2, email = $3, company = $4, website = $5, niche = $6, audience = $7,
			list_size = $8, social_reach = $9, offering = $10, seeking = $11, what_you_do = $12, updated_at = $13
		WHERE id = $1
	`
	p.UpdatedAt = time.Now().UTC()
	result, err := r.mock.Exec(ctx, query,
		p.ID, p.DisplayName, p.Email, p.Company, p.Website, p.Niche, p.Audience,
		p.ListSize, p.SocialReach, p.Offering, p.Seeking, p.WhatYouDo, p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return model.ErrProfileNotFound
	}
	return nil
}
