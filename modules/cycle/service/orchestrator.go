// Package service implements the Cycle orchestrator: run_cycle and
// run_for_profile (spec §6), wiring Resolver -> Assembler -> Scorer ->
// Fairness Filter sequentially per spec §5's stage-level scheduling model.
// Grounded on modules/applications' ApplicationService, which composes
// several repositories behind one service the same way this orchestrator
// composes four pipeline stages behind one entry point.
package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	cycleModel "github.com/jvmatch/partnermatch/modules/cycle/model"
	"github.com/jvmatch/partnermatch/modules/cycle/ports"
	fairnessService "github.com/jvmatch/partnermatch/modules/fairness/service"
	matchesModel "github.com/jvmatch/partnermatch/modules/matches/model"
	matchesService "github.com/jvmatch/partnermatch/modules/matches/service"
	scoringModel "github.com/jvmatch/partnermatch/modules/scoring/model"
)

// SuggestionPersisterAdapter satisfies ports.SuggestionPersister by
// converting a CycleConfig into matches/service's opaque ConfigSnapshot
// blob before delegating to the real SuggestionService.
type SuggestionPersisterAdapter struct {
	Inner *matchesService.SuggestionService
}

func (a *SuggestionPersisterAdapter) PersistCycle(ctx context.Context, cycleID string, decisions []*fairnessService.Decision, cfg cycleModel.CycleConfig) error {
	return a.Inner.PersistCycle(ctx, cycleID, decisions, matchesService.ConfigSnapshot{
		TopK:                    cfg.TopK,
		PopularityCap:           cfg.PopularityCap,
		ExpiryDays:              cfg.ExpiryDays,
		IntentFallbackThreshold: cfg.IntentFallbackThreshold,
		SemanticMatchThreshold:  cfg.SemanticMatchThreshold,
		OracleEnabled:           cfg.OracleEnabled,
	})
}

// Orchestrator drives one full pipeline pass. Stage implementations are
// injected as the narrow ports interfaces so run_cycle can be exercised
// against fakes without a database (spec §5 "single driver process").
type Orchestrator struct {
	directory ports.DirectorySource
	resolver  ports.Resolver
	assembler ports.Assembler
	scorer    ports.Scorer
	fairness  ports.FairnessFilter
	persister ports.SuggestionPersister
	reminders ports.ReminderRepository
	reports   ports.CycleReportRepository
	now       func() time.Time
}

// NewOrchestrator wires the four pipeline stages behind one entry point.
// reminders and reports may both be nil: a cycle still runs and reports
// correctly without either sink, it just skips raising the orphan-backlog
// nudge and skips recording the run into the trend history.
func NewOrchestrator(
	directory ports.DirectorySource,
	resolver ports.Resolver,
	assembler ports.Assembler,
	scorer ports.Scorer,
	fairness ports.FairnessFilter,
	persister ports.SuggestionPersister,
	reminders ports.ReminderRepository,
	reports ports.CycleReportRepository,
	now func() time.Time,
) *Orchestrator {
	if now == nil {
		now = time.Now
	}
	return &Orchestrator{
		directory: directory, resolver: resolver, assembler: assembler,
		scorer: scorer, fairness: fairness, persister: persister,
		reminders: reminders, reports: reports, now: now,
	}
}

// RunCycle implements run_cycle(cycle_id, config) -> CycleReport (spec §6).
// A ctx cancellation between stages aborts the run and discards any
// in-flight Scorer output, honoring spec §5's cancellation guarantee.
func (o *Orchestrator) RunCycle(ctx context.Context, cycleID string, cfg cycleModel.CycleConfig) (*cycleModel.CycleReport, error) {
	started := o.now().UTC()
	report := &cycleModel.CycleReport{CycleID: cycleID, StartedAt: started}

	unresolved, err := o.directory.ListUnresolved(ctx)
	if err != nil {
		return nil, fmt.Errorf("cycle %s: list unresolved directory records: %w", cycleID, err)
	}
	if len(unresolved) > 0 {
		if _, failures := o.resolver.ResolveBatch(ctx, unresolved); len(failures) > 0 {
			for recordID, err := range failures {
				log.Printf("[WARN] cycle %s: resolution failed for record %s: %v", cycleID, recordID, err)
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("cycle %s: cancelled after resolution: %w", cycleID, err)
	}

	bundles, err := o.assembler.Assemble(ctx)
	if err != nil {
		return nil, fmt.Errorf("cycle %s: assemble feature bundles: %w", cycleID, err)
	}
	report.ProfilesScored = len(bundles)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("cycle %s: cancelled after assembly: %w", cycleID, err)
	}

	pairs, err := o.scorer.ScoreAll(ctx, bundles)
	if err != nil {
		return nil, fmt.Errorf("cycle %s: score pairs: %w", cycleID, err)
	}
	report.PairsConsidered = len(pairs)

	if err := checkInvariants(pairs); err != nil {
		return nil, fmt.Errorf("cycle %s: invariant violation, aborting: %w", cycleID, err)
	}

	if err := ctx.Err(); err != nil {
		// Scorer output is discarded by returning before any write occurs.
		return nil, fmt.Errorf("cycle %s: cancelled after scoring, discarding output: %w", cycleID, err)
	}

	decisions, top3Counter := o.fairness.Apply(pairs)
	if err := checkPopularityCap(top3Counter, cfg.PopularityCap); err != nil {
		return nil, fmt.Errorf("cycle %s: invariant violation, aborting: %w", cycleID, err)
	}

	var emitted, dropped int
	matchedTargets := make(map[string]bool)
	for _, d := range decisions {
		if d.DroppedFromTop3 {
			dropped++
		} else {
			emitted++
		}
		matchedTargets[d.Pair.TargetProfileID] = true
	}
	report.PairsEmitted = emitted
	report.PairsDroppedByFairness = dropped

	for profileID := range bundles {
		if !matchedTargets[profileID] {
			report.Orphans++
		}
	}

	if err := o.persister.PersistCycle(ctx, cycleID, decisions, cfg); err != nil {
		return nil, fmt.Errorf("cycle %s: persist suggestions, rolling back: %w", cycleID, err)
	}

	report.EndedAt = o.now().UTC()

	if o.reports != nil {
		if err := o.reports.PersistReport(ctx, report); err != nil {
			log.Printf("[WARN] cycle %s: failed to persist cycle report for trend history: %v", cycleID, err)
		}
	}

	if o.reminders != nil && report.Orphans > 0 {
		reminder := &cycleModel.CycleReminder{
			CycleID:  cycleID,
			RemindAt: report.EndedAt.AddDate(0, 0, 1),
			Message:  fmt.Sprintf("%d profiles orphaned this cycle; resolve the pending review queue before the next cycle", report.Orphans),
		}
		if err := o.reminders.Create(ctx, reminder); err != nil {
			log.Printf("[WARN] cycle %s: failed to raise orphan-backlog reminder: %v", cycleID, err)
		}
	}

	return report, nil
}

// RunForProfile implements run_for_profile(profile_id) -> []MatchSuggestion
// (spec §6): runs assembly, scoring and fairness over the whole eligible set
// (a candidate's fit still depends on it; directory resolution is not run),
// persists only the decisions targeting the requested profile under an
// ad-hoc cycle id, and returns them as suggestion rows for an on-demand
// per-user refresh.
func (o *Orchestrator) RunForProfile(ctx context.Context, profileID string, cfg cycleModel.CycleConfig) ([]*matchesModel.MatchSuggestion, error) {
	cycleID := "adhoc-" + profileID + "-" + uuid.NewString()

	bundles, err := o.assembler.Assemble(ctx)
	if err != nil {
		return nil, fmt.Errorf("run_for_profile %s: assemble feature bundles: %w", profileID, err)
	}

	pairs, err := o.scorer.ScoreAll(ctx, bundles)
	if err != nil {
		return nil, fmt.Errorf("run_for_profile %s: score pairs: %w", profileID, err)
	}
	if err := checkInvariants(pairs); err != nil {
		return nil, fmt.Errorf("run_for_profile %s: invariant violation, aborting: %w", profileID, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run_for_profile %s: cancelled after scoring, discarding output: %w", profileID, err)
	}

	decisions, top3Counter := o.fairness.Apply(pairs)
	if err := checkPopularityCap(top3Counter, cfg.PopularityCap); err != nil {
		return nil, fmt.Errorf("run_for_profile %s: invariant violation, aborting: %w", profileID, err)
	}

	var forProfile []*fairnessService.Decision
	for _, d := range decisions {
		if d.Pair.TargetProfileID == profileID {
			forProfile = append(forProfile, d)
		}
	}

	if err := o.persister.PersistCycle(ctx, cycleID, forProfile, cfg); err != nil {
		return nil, fmt.Errorf("run_for_profile %s: persist suggestions, rolling back: %w", profileID, err)
	}

	return matchesService.BuildRows(forProfile, matchesService.ConfigSnapshot{
		TopK:                    cfg.TopK,
		PopularityCap:           cfg.PopularityCap,
		ExpiryDays:              cfg.ExpiryDays,
		IntentFallbackThreshold: cfg.IntentFallbackThreshold,
		SemanticMatchThreshold:  cfg.SemanticMatchThreshold,
		OracleEnabled:           cfg.OracleEnabled,
	}, o.now().UTC())
}

// checkInvariants enforces spec §3's invariants (a) and (b) as the fatal
// defensive traps spec §7 describes: these must never fire in a correct
// implementation, so any failure aborts the cycle rather than skipping a
// record.
func checkInvariants(pairs []*scoringModel.PairResult) error {
	for _, p := range pairs {
		if p.TargetProfileID == p.CandidateProfileID {
			return fmt.Errorf("self-pair emitted for profile %s", p.TargetProfileID)
		}
		if p.HarmonicMean < 0 || p.HarmonicMean > 100 {
			return fmt.Errorf("harmonic mean %.4f outside [0,100] for pair (%s,%s)", p.HarmonicMean, p.TargetProfileID, p.CandidateProfileID)
		}
	}
	return nil
}

// checkPopularityCap enforces spec §3's invariant (c), the third fatal trap
// spec §7 names alongside self-pair and out-of-range harmonic mean: no
// candidate may appear in more than cap distinct profiles' top 3. The
// Fairness Filter enforces the cap it was constructed with, not the per-run
// cfg.PopularityCap, so a run whose cap is lower than the filter's (a
// request override or a preset) can breach it here and abort; a breach at
// the filter's own cap means the filter itself is broken. Either way the
// cycle aborts instead of persisting an invariant-breaking result.
func checkPopularityCap(top3Counter map[string]int, cap int) error {
	if cap <= 0 {
		cap = fairnessService.DefaultPopularityCap
	}
	for candidateID, count := range top3Counter {
		if count > cap {
			return fmt.Errorf("popularity cap breached: candidate %s appeared in top 3 of %d profiles, cap is %d", candidateID, count, cap)
		}
	}
	return nil
}
