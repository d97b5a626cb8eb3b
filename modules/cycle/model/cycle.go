// Package model holds the Cycle orchestrator's (spec §6) configuration and
// reporting types. Grounded on modules/analytics' flat report-struct
// convention (OverviewAnalytics, FunnelAnalytics) for CycleReport, and on
// modules/reminders' Reminder for CycleReminder.
package model

import (
	"errors"
	"time"
)

// ErrPresetNotFound is returned when a named CycleConfigPreset doesn't exist.
var ErrPresetNotFound = errors.New("cycle config preset not found")

// CycleConfig is run_cycle's config argument (spec §6): top_k, popularity
// cap, expiry window, and the two Intent thresholds, with oracle
// enable/disable. Defaults mirror internal/config.MatchingConfig.
type CycleConfig struct {
	TopK                    int
	PopularityCap           int
	ExpiryDays              int
	IntentFallbackThreshold float64
	SemanticMatchThreshold  float64
	OracleEnabled           bool
}

// DefaultCycleConfig returns the default CycleConfig values (spec §6 defaults).
func DefaultCycleConfig() CycleConfig {
	return CycleConfig{
		TopK:                    20,
		PopularityCap:           5,
		ExpiryDays:              7,
		IntentFallbackThreshold: 0.30,
		SemanticMatchThreshold:  0.65,
		OracleEnabled:           true,
	}
}

// CycleConfigPreset is a named, reusable CycleConfig bundle (e.g. a
// "conservative" preset with a lower popularity cap for a smaller cohort),
// adapted from applications/model/stage_template.go's StageTemplate.
type CycleConfigPreset struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Config    CycleConfig `json:"config"`
	CreatedAt time.Time `json:"created_at"`
}

// Cycle is one bounded batch run of the matching pipeline (GLOSSARY: Cycle).
type Cycle struct {
	ID        string
	Config    CycleConfig
	StartedAt time.Time
	EndedAt   *time.Time
	Status    string // running, completed, failed
}

// CycleReport is run_cycle's return value (spec §6): the counts an operator
// reviews after a run.
type CycleReport struct {
	CycleID           string    `json:"cycle_id"`
	ProfilesScored    int       `json:"profiles_scored"`
	PairsConsidered   int       `json:"pairs_considered"`
	PairsEmitted      int       `json:"pairs_emitted"`
	PairsDroppedByFairness int  `json:"pairs_dropped_by_fairness"`
	Orphans           int       `json:"orphans"`
	StartedAt         time.Time `json:"started_at"`
	EndedAt           time.Time `json:"ended_at"`
}

// CycleReminder is a scheduled nudge tied to a cycle's results, e.g.
// "review orphaned profiles" (adapted from modules/reminders' Reminder,
// retargeted from an application/stage to a cycle).
type CycleReminder struct {
	ID        string
	CycleID   string
	RemindAt  time.Time
	Message   string
	IsDone    bool
	CreatedAt time.Time
}

func (c *CycleReminder) ToDTO() *CycleReminderDTO {
	return &CycleReminderDTO{
		ID: c.ID, CycleID: c.CycleID, RemindAt: c.RemindAt, Message: c.Message, IsDone: c.IsDone,
	}
}

type CycleReminderDTO struct {
	ID       string    `json:"id"`
	CycleID  string    `json:"cycle_id"`
	RemindAt time.Time `json:"remind_at"`
	Message  string    `json:"message"`
	IsDone   bool      `json:"is_done"`
}

// CycleTrend aggregates recent CycleReports into the operator-facing view
// modules/analytics' Overview/Funnel analytics gave per-user application
// funnels: here the "funnel" is the pipeline itself, aggregated across a
// recent window of cycles instead of across a user's applications.
type CycleTrend struct {
	CyclesConsidered       int     `json:"cycles_considered"`
	AvgProfilesScored      float64 `json:"avg_profiles_scored"`
	AvgPairsConsidered     float64 `json:"avg_pairs_considered"`
	AvgPairsEmitted        float64 `json:"avg_pairs_emitted"`
	AvgPairsDroppedByFairness float64 `json:"avg_pairs_dropped_by_fairness"`
	AvgOrphans             float64 `json:"avg_orphans"`
	OrphanRate             float64 `json:"orphan_rate"`
}
