// Package repository persists CycleConfigPresets, adapted from
// applications/model/stage_template.go's StageTemplate: the same
// named-bundle-of-settings table, retargeted from pipeline stage labels to
// a CycleConfig bundle.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	cycleModel "github.com/jvmatch/partnermatch/modules/cycle/model"
)

type PresetRepository struct {
	pool *pgxpool.Pool
}

func NewPresetRepository(pool *pgxpool.Pool) *PresetRepository {
	return &PresetRepository{pool: pool}
}

func (r *PresetRepository) Create(ctx context.Context, preset *cycleModel.CycleConfigPreset) error {
	query := `
		INSERT INTO cycle_config_presets (
			id, name, top_k, popularity_cap, expiry_days,
			intent_fallback_threshold, semantic_match_threshold, oracle_enabled, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	preset.ID = uuid.New().String()
	preset.CreatedAt = time.Now().UTC()

	_, err := r.pool.Exec(ctx, query,
		preset.ID, preset.Name, preset.Config.TopK, preset.Config.PopularityCap, preset.Config.ExpiryDays,
		preset.Config.IntentFallbackThreshold, preset.Config.SemanticMatchThreshold, preset.Config.OracleEnabled,
		preset.CreatedAt,
	)
	return err
}

func (r *PresetRepository) List(ctx context.Context) ([]*cycleModel.CycleConfigPreset, error) {
	query := `
		SELECT id, name, top_k, popularity_cap, expiry_days,
			intent_fallback_threshold, semantic_match_threshold, oracle_enabled, created_at
		FROM cycle_config_presets ORDER BY name ASC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var presets []*cycleModel.CycleConfigPreset
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, err
		}
		presets = append(presets, p)
	}
	return presets, rows.Err()
}

func (r *PresetRepository) GetByName(ctx context.Context, name string) (*cycleModel.CycleConfigPreset, error) {
	query := `
		SELECT id, name, top_k, popularity_cap, expiry_days,
			intent_fallback_threshold, semantic_match_threshold, oracle_enabled, created_at
		FROM cycle_config_presets WHERE name = $1
	`
	row := r.pool.QueryRow(ctx, query, name)
	preset, err := scanPreset(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, cycleModel.ErrPresetNotFound
		}
		return nil, err
	}
	return preset, nil
}

type presetScanner interface {
	Scan(dest ...interface{}) error
}

func scanPreset(row presetScanner) (*cycleModel.CycleConfigPreset, error) {
	p := &cycleModel.CycleConfigPreset{}
	err := row.Scan(
		&p.ID, &p.Name, &p.Config.TopK, &p.Config.PopularityCap, &p.Config.ExpiryDays,
		&p.Config.IntentFallbackThreshold, &p.Config.SemanticMatchThreshold, &p.Config.OracleEnabled,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}
