package repository

import (
	"context"
	"testing"
	"time"

	cycleModel "github.com/jvmatch/partnermatch/modules/cycle/model"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPresetRepo struct {
	mock pgxmock.PgxPoolIface
}

func (r *testPresetRepo) Create(ctx context.Context, preset *cycleModel.CycleConfigPreset) error {
	query := `
		INSERT INTO cycle_config_presets (
			id, name, top_k, popularity_cap, expiry_days,
			intent_fallback_threshold, semantic_match_threshold, oracle_enabled, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	preset.ID = "test-preset-id"
	preset.CreatedAt = time.Now().UTC()

	_, err := r.mock.Exec(ctx, query,
		preset.ID, preset.Name, preset.Config.TopK, preset.Config.PopularityCap, preset.Config.ExpiryDays,
		preset.Config.IntentFallbackThreshold, preset.Config.SemanticMatchThreshold, preset.Config.OracleEnabled,
		preset.CreatedAt,
	)
	return err
}

func (r *testPresetRepo) GetByName(ctx context.Context, name string) (*cycleModel.CycleConfigPreset, error) {
	query := `
		SELECT id, name, top_k, popularity_cap, expiry_days,
			intent_fallback_threshold, semantic_match_threshold, oracle_enabled, created_at
		FROM cycle_config_presets WHERE name = $1
	`
	p := &cycleModel.CycleConfigPreset{}
	err := r.mock.QueryRow(ctx, query, name).Scan(
		&p.ID, &p.Name, &p.Config.TopK, &p.Config.PopularityCap, &p.Config.ExpiryDays,
		&p.Config.IntentFallbackThreshold, &p.Config.SemanticMatchThreshold, &p.Config.OracleEnabled,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func TestPresetRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	preset := &cycleModel.CycleConfigPreset{
		Name:   "conservative",
		Config: cycleModel.CycleConfig{TopK: 10, PopularityCap: 2, ExpiryDays: 7, IntentFallbackThreshold: 0.30, SemanticMatchThreshold: 0.65, OracleEnabled: true},
	}

	mock.ExpectExec("INSERT INTO cycle_config_presets").
		WithArgs(pgxmock.AnyArg(), preset.Name, preset.Config.TopK, preset.Config.PopularityCap, preset.Config.ExpiryDays,
			preset.Config.IntentFallbackThreshold, preset.Config.SemanticMatchThreshold, preset.Config.OracleEnabled, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := &testPresetRepo{mock: mock}
	err = repo.Create(context.Background(), preset)

	require.NoError(t, err)
	assert.NotEmpty(t, preset.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPresetRepository_GetByName(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows([]string{
		"id", "name", "top_k", "popularity_cap", "expiry_days",
		"intent_fallback_threshold", "semantic_match_threshold", "oracle_enabled", "created_at",
	}).AddRow("preset-1", "conservative", 10, 2, 7, 0.30, 0.65, true, time.Now())

	mock.ExpectQuery("SELECT id, name, top_k").WithArgs("conservative").WillReturnRows(rows)

	repo := &testPresetRepo{mock: mock}
	preset, err := repo.GetByName(context.Background(), "conservative")

	require.NoError(t, err)
	assert.Equal(t, "conservative", preset.Name)
	assert.Equal(t, 2, preset.Config.PopularityCap)
	require.NoError(t, mock.ExpectationsWereMet())
}
