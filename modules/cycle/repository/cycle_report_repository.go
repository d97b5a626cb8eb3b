// Package repository persists CycleReports and aggregates them into a
// CycleTrend, adapted from modules/analytics' AnalyticsRepository: the same
// pgxpool-backed CTE-style aggregate query, retargeted from a user's
// applications to the pipeline's own run history.
package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	cycleModel "github.com/jvmatch/partnermatch/modules/cycle/model"
)

type CycleReportRepository struct {
	pool *pgxpool.Pool
}

func NewCycleReportRepository(pool *pgxpool.Pool) *CycleReportRepository {
	return &CycleReportRepository{pool: pool}
}

// PersistReport records one cycle's counts (spec §6's CycleReport) as a row
// in the trend history.
func (r *CycleReportRepository) PersistReport(ctx context.Context, report *cycleModel.CycleReport) error {
	query := `
		INSERT INTO cycle_reports (
			cycle_id, profiles_scored, pairs_considered, pairs_emitted,
			pairs_dropped_by_fairness, orphans, started_at, ended_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		report.CycleID, report.ProfilesScored, report.PairsConsidered, report.PairsEmitted,
		report.PairsDroppedByFairness, report.Orphans, report.StartedAt, report.EndedAt,
	)
	return err
}

// GetTrend aggregates the most recent limit cycle_reports rows, grounded on
// analytics_repository.GetOverview's WITH-clause/ROUND-and-divide style.
func (r *CycleReportRepository) GetTrend(ctx context.Context, limit int) (*cycleModel.CycleTrend, error) {
	query := `
		WITH recent AS (
			SELECT profiles_scored, pairs_considered, pairs_emitted, pairs_dropped_by_fairness, orphans
			FROM cycle_reports
			ORDER BY ended_at DESC
			LIMIT $1
		)
		SELECT
			COUNT(*) AS cycles_considered,
			COALESCE(ROUND(AVG(profiles_scored)::numeric, 2), 0) AS avg_profiles_scored,
			COALESCE(ROUND(AVG(pairs_considered)::numeric, 2), 0) AS avg_pairs_considered,
			COALESCE(ROUND(AVG(pairs_emitted)::numeric, 2), 0) AS avg_pairs_emitted,
			COALESCE(ROUND(AVG(pairs_dropped_by_fairness)::numeric, 2), 0) AS avg_pairs_dropped_by_fairness,
			COALESCE(ROUND(AVG(orphans)::numeric, 2), 0) AS avg_orphans,
			CASE
				WHEN SUM(profiles_scored) > 0
				THEN ROUND((SUM(orphans)::numeric / SUM(profiles_scored)) * 100, 2)
				ELSE 0
			END AS orphan_rate
		FROM recent
	`

	trend := &cycleModel.CycleTrend{}
	err := r.pool.QueryRow(ctx, query, limit).Scan(
		&trend.CyclesConsidered,
		&trend.AvgProfilesScored,
		&trend.AvgPairsConsidered,
		&trend.AvgPairsEmitted,
		&trend.AvgPairsDroppedByFairness,
		&trend.AvgOrphans,
		&trend.OrphanRate,
	)
	if err != nil {
		return nil, err
	}
	return trend, nil
}
