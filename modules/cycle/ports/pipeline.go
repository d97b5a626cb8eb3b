// Package ports defines the Cycle orchestrator's narrow view of each
// pipeline stage (spec §2, §6), so run_cycle/run_for_profile can be driven
// against fakes in tests without standing up Postgres for every stage.
package ports

import (
	"context"

	assemblerModel "github.com/jvmatch/partnermatch/modules/assembler/model"
	directoryModel "github.com/jvmatch/partnermatch/modules/directory/model"
	fairnessService "github.com/jvmatch/partnermatch/modules/fairness/service"
	cycleModel "github.com/jvmatch/partnermatch/modules/cycle/model"
	resolverService "github.com/jvmatch/partnermatch/modules/resolver/service"
	scoringModel "github.com/jvmatch/partnermatch/modules/scoring/model"
)

// DirectorySource is the external load_profiles() collaborator's resolution
// side: the backlog of directory rows awaiting fusion into the profile set.
type DirectorySource interface {
	ListUnresolved(ctx context.Context) ([]*directoryModel.DirectoryRecord, error)
}

// Resolver is the Entity Resolver stage (spec §4.1, §2 step 1).
type Resolver interface {
	ResolveBatch(ctx context.Context, records []*directoryModel.DirectoryRecord) ([]*resolverService.Outcome, map[string]error)
}

// Assembler is the Feature Assembler stage (spec §4.2, §2 step 2).
type Assembler interface {
	Assemble(ctx context.Context) (map[string]*assemblerModel.FeatureBundle, error)
}

// Scorer is the Scorer stage (spec §4.3, §2 step 3).
type Scorer interface {
	ScoreAll(ctx context.Context, bundles map[string]*assemblerModel.FeatureBundle) ([]*scoringModel.PairResult, error)
}

// FairnessFilter is the Fairness Filter stage (spec §4.4, §2 step 4).
type FairnessFilter interface {
	Apply(pairs []*scoringModel.PairResult) ([]*fairnessService.Decision, map[string]int)
}

// SuggestionPersister writes a cycle's filtered decisions as Match
// Suggestion rows (spec §3, §6 "Suggestion rows carry the config snapshot").
type SuggestionPersister interface {
	PersistCycle(ctx context.Context, cycleID string, decisions []*fairnessService.Decision, cfg cycleModel.CycleConfig) error
}

// ReminderRepository persists CycleReminders raised after a run (e.g. for
// profiles left orphaned).
type ReminderRepository interface {
	Create(ctx context.Context, reminder *cycleModel.CycleReminder) error
}

// CycleReportRepository persists each run's CycleReport and aggregates a
// recent window of them into a CycleTrend, adapted from modules/analytics'
// per-user Overview/Funnel queries into a cross-cycle trend (spec §6's
// "operator reviews after a run", extended across runs).
type CycleReportRepository interface {
	PersistReport(ctx context.Context, report *cycleModel.CycleReport) error
	GetTrend(ctx context.Context, limit int) (*cycleModel.CycleTrend, error)
}

// PresetRepository persists named, reusable CycleConfigPreset bundles
// (spec §6, adapted from applications/model/stage_template.go's
// StageTemplate) so an operator can select "conservative" or "aggressive"
// config by name instead of repeating every field on every run_cycle call.
type PresetRepository interface {
	Create(ctx context.Context, preset *cycleModel.CycleConfigPreset) error
	List(ctx context.Context) ([]*cycleModel.CycleConfigPreset, error)
	GetByName(ctx context.Context, name string) (*cycleModel.CycleConfigPreset, error)
}
