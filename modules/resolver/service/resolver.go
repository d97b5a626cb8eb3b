// Package service implements the Entity Resolver (spec §4.1): it fuses
// directory records with transcript-extracted speaker records into a
// canonical profile set via an email -> name+company -> fuzzy-name cascade.
// Grounded on the pack's entity_resolver.go (confidence-tiered cascade,
// "when in doubt, create new — duplicates are recoverable, false merges
// corrupt data") and fuzzy.go (tiered decision routing into a review
// queue for anything below a hard-merge threshold).
package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	directoryModel "github.com/jvmatch/partnermatch/modules/directory/model"
	profileModel "github.com/jvmatch/partnermatch/modules/profiles/model"
	"github.com/jvmatch/partnermatch/modules/resolver/model"
	"github.com/jvmatch/partnermatch/modules/resolver/ports"
)

// FuzzyThreshold is the minimum name-similarity ratio that stages a tier-4
// review candidate (spec §4.1, Tier 4).
const FuzzyThreshold = 0.80

// Outcome is what the resolver decided for one directory record.
type Outcome struct {
	RecordID   string
	Status     directoryModel.ResolutionStatus
	ProfileID  string // set when Status is Merged or Created
	Confidence float64
}

// EntityResolver runs the five-tier resolution cascade.
type EntityResolver struct {
	profiles  ports.ProfileStore
	reviews   ports.ReviewRepository
	directory ports.DirectoryMarker
	now       func() time.Time
}

// NewEntityResolver builds a resolver. now is injected so cycle runs are
// deterministic and testable (spec §6 "a wall-clock now() supplied by the
// caller").
func NewEntityResolver(profiles ports.ProfileStore, reviews ports.ReviewRepository, directory ports.DirectoryMarker, now func() time.Time) *EntityResolver {
	return &EntityResolver{profiles: profiles, reviews: reviews, directory: directory, now: now}
}

// ResolveBatch runs the cascade for every record, fetching the candidate
// profile pool once. Per-record failures (ErrRecordMissingName,
// ErrAmbiguousMatch) are returned alongside successful outcomes rather than
// aborting the batch — §7 "Per-record failures never bring down a cycle."
func (r *EntityResolver) ResolveBatch(ctx context.Context, records []*directoryModel.DirectoryRecord) ([]*Outcome, map[string]error) {
	pool, err := r.profiles.ListAll(ctx)
	if err != nil {
		failures := make(map[string]error, len(records))
		for _, rec := range records {
			failures[rec.ID] = err
		}
		return nil, failures
	}

	outcomes := make([]*Outcome, 0, len(records))
	failures := make(map[string]error)

	for _, rec := range records {
		outcome, err := r.resolveOne(ctx, rec, pool)
		if err != nil {
			failures[rec.ID] = err
			continue
		}
		outcomes = append(outcomes, outcome)
		if outcome.Status == directoryModel.ResolutionCreated {
			pool = append(pool, newProfileFromRecord(rec, outcome.ProfileID, r.now()))
		} else if outcome.Status == directoryModel.ResolutionMerged {
			for _, p := range pool {
				if p.ID == outcome.ProfileID {
					mergeFields(p, rec)
					break
				}
			}
		}
	}

	return outcomes, failures
}

func (r *EntityResolver) resolveOne(ctx context.Context, rec *directoryModel.DirectoryRecord, pool []*profileModel.Profile) (*Outcome, error) {
	name := profileModel.NormalizeText(rec.RawName)
	if name == "" {
		return nil, model.ErrRecordMissingName
	}

	// Tier 1: normalized email equality.
	if rec.RawEmail != nil {
		email := normalizeEmail(*rec.RawEmail)
		if email != "" {
			for _, p := range pool {
				if p.Email != nil && normalizeEmail(*p.Email) == email {
					return r.merge(ctx, rec, p, 1.00)
				}
			}
		}
	}

	recordCompany := ""
	if rec.RawCompany != nil {
		recordCompany = profileModel.NormalizeText(*rec.RawCompany)
	}

	// Tier 2: exact name + exact company.
	if recordCompany != "" {
		var candidates []*profileModel.Profile
		for _, p := range pool {
			if profileModel.NormalizeText(p.DisplayName) == name && p.Company != nil &&
				profileModel.NormalizeText(*p.Company) == recordCompany {
				candidates = append(candidates, p)
			}
		}
		if len(candidates) > 1 {
			return nil, model.ErrAmbiguousMatch
		}
		if len(candidates) == 1 {
			return r.merge(ctx, rec, candidates[0], 0.90)
		}
	}

	// Tier 3: exact name, company absent on either side.
	var tier3 []*profileModel.Profile
	for _, p := range pool {
		if profileModel.NormalizeText(p.DisplayName) != name {
			continue
		}
		candidateCompanyAbsent := p.Company == nil || strings.TrimSpace(*p.Company) == ""
		if recordCompany == "" || candidateCompanyAbsent {
			tier3 = append(tier3, p)
		}
	}
	if len(tier3) > 0 {
		sort.Slice(tier3, func(i, j int) bool { return tier3[i].ID < tier3[j].ID })
		return r.merge(ctx, rec, tier3[0], 0.70)
	}

	// Tier 4: fuzzy name similarity, staged for manual review, never merges.
	var bestCandidate *profileModel.Profile
	bestScore := 0.0
	for _, p := range pool {
		score := NameSimilarity(name, profileModel.NormalizeText(p.DisplayName))
		if score >= FuzzyThreshold && score > bestScore {
			bestScore = score
			bestCandidate = p
		}
	}
	if bestCandidate != nil {
		confidence := 0.50 + (bestScore - FuzzyThreshold)
		if confidence > 0.70 {
			confidence = 0.70
		}
		entry := &model.ReviewQueueEntry{
			ID:                 uuid.New().String(),
			DirectoryRecordID:  rec.ID,
			CandidateProfileID: bestCandidate.ID,
			Confidence:         confidence,
			Reason:             "fuzzy name match",
			Status:             model.ReviewPending,
			CreatedAt:          r.now(),
		}
		if err := r.reviews.CreateReviewEntry(ctx, entry); err != nil {
			return nil, err
		}
		if err := r.directory.MarkResolved(ctx, rec.ID, directoryModel.ResolutionStaged, nil); err != nil {
			return nil, err
		}
		return &Outcome{RecordID: rec.ID, Status: directoryModel.ResolutionStaged, Confidence: confidence}, nil
	}

	// Tier 5: no match, create a new canonical profile.
	newID := uuid.New().String()
	newProfile := newProfileFromRecord(rec, newID, r.now())
	if err := r.profiles.Create(ctx, newProfile); err != nil {
		return nil, err
	}
	if err := r.directory.MarkResolved(ctx, rec.ID, directoryModel.ResolutionCreated, &newID); err != nil {
		return nil, err
	}
	return &Outcome{RecordID: rec.ID, Status: directoryModel.ResolutionCreated, ProfileID: newID, Confidence: 0}, nil
}

// merge applies field-fill-on-null semantics and logs conflicts, then
// persists the updated profile and marks the record resolved.
func (r *EntityResolver) merge(ctx context.Context, rec *directoryModel.DirectoryRecord, target *profileModel.Profile, confidence float64) (*Outcome, error) {
	conflicts := mergeFields(target, rec)
	target.UpdatedAt = r.now()

	if err := r.profiles.Update(ctx, target); err != nil {
		return nil, err
	}
	for _, c := range conflicts {
		c.ID = uuid.New().String()
		c.ProfileID = target.ID
		c.RecordedAt = r.now()
		if err := r.reviews.CreateMergeHistoryEntry(ctx, c); err != nil {
			return nil, err
		}
	}
	if err := r.directory.MarkResolved(ctx, rec.ID, directoryModel.ResolutionMerged, &target.ID); err != nil {
		return nil, err
	}
	return &Outcome{RecordID: rec.ID, Status: directoryModel.ResolutionMerged, ProfileID: target.ID, Confidence: confidence}, nil
}

// mergeFields fills target's null fields from rec, and for any field that's
// non-null on both sides but disagrees, keeps the older (target) value and
// returns a MergeHistoryEntry recording the newer value instead of
// silently overwriting (spec §4.1).
func mergeFields(target *profileModel.Profile, rec *directoryModel.DirectoryRecord) []*model.MergeHistoryEntry {
	var conflicts []*model.MergeHistoryEntry

	fillOrLog := func(field string, existing *string, incoming *string, set func(string)) {
		if incoming == nil || strings.TrimSpace(*incoming) == "" {
			return
		}
		if existing == nil || strings.TrimSpace(*existing) == "" {
			set(*incoming)
			return
		}
		if profileModel.NormalizeText(*existing) != profileModel.NormalizeText(*incoming) {
			conflicts = append(conflicts, &model.MergeHistoryEntry{
				Field:     field,
				KeptValue: *existing,
				NewValue:  *incoming,
			})
		}
	}

	fillOrLog("email", target.Email, rec.RawEmail, func(v string) { target.Email = &v })
	fillOrLog("company", target.Company, rec.RawCompany, func(v string) { target.Company = &v })
	fillOrLog("website", target.Website, rec.RawWebsite, func(v string) { target.Website = &v })

	return conflicts
}

func newProfileFromRecord(rec *directoryModel.DirectoryRecord, id string, now time.Time) *profileModel.Profile {
	return &profileModel.Profile{
		ID:          id,
		DisplayName: strings.TrimSpace(rec.RawName),
		Email:       rec.RawEmail,
		Company:     rec.RawCompany,
		Website:     rec.RawWebsite,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
