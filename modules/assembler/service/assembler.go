// Package service implements the Feature Assembler (spec §4.2): for every
// profile it gathers the latest verified intake (Platinum), profile fields
// (Gold), and inferred transcript signals (Bronze) into one read-only
// feature bundle the Scorer can fan out over. Grounded on the pack's
// matching_algorithm_service.go candidate-scoring-input assembly: one pass
// building everything a scorer needs before any pair is scored.
package service

import (
	"context"
	"strings"
	"time"

	assemblerModel "github.com/jvmatch/partnermatch/modules/assembler/model"
	"github.com/jvmatch/partnermatch/modules/assembler/ports"
	intakeModel "github.com/jvmatch/partnermatch/modules/intakes/model"
	profileModel "github.com/jvmatch/partnermatch/modules/profiles/model"
)

// FeatureAssembler builds the cycle-wide feature bundle table.
type FeatureAssembler struct {
	profiles ports.ProfileSource
	intakes  ports.IntakeSource
	taxonomy ports.TaxonomySource
	now      func() time.Time
}

// taxonomy may be nil, in which case no profile carries curated niche tags
// and the Scorer's Synergy component falls through to the semantic oracle
// for every pair, same as before the taxonomy module existed.
func NewFeatureAssembler(profiles ports.ProfileSource, intakes ports.IntakeSource, taxonomy ports.TaxonomySource, now func() time.Time) *FeatureAssembler {
	return &FeatureAssembler{profiles: profiles, intakes: intakes, taxonomy: taxonomy, now: now}
}

// Assemble builds one FeatureBundle per profile, keyed by profile id. It is
// the only point in a cycle that touches the profile/intake stores for
// feature data; the Scorer reads the returned table as immutable (spec §5
// "constructed once per cycle and held immutable for the duration").
func (a *FeatureAssembler) Assemble(ctx context.Context) (map[string]*assemblerModel.FeatureBundle, error) {
	profiles, err := a.profiles.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(profiles))
	for i, p := range profiles {
		ids[i] = p.ID
	}

	latestIntakes, err := a.intakes.LatestConfirmedByProfile(ctx, ids)
	if err != nil {
		return nil, err
	}
	events, err := a.intakes.EventsAttendedByProfile(ctx, ids)
	if err != nil {
		return nil, err
	}

	var nicheTags map[string][]string
	if a.taxonomy != nil {
		nicheTags, err = a.taxonomy.NicheTagsByProfile(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	now := a.now()
	bundles := make(map[string]*assemblerModel.FeatureBundle, len(profiles))
	for _, p := range profiles {
		bundles[p.ID] = a.assembleOne(p, latestIntakes[p.ID], events[p.ID], nicheTags[p.ID], now)
	}
	return bundles, nil
}

func (a *FeatureAssembler) assembleOne(p *profileModel.Profile, intake *intakeModel.IntakeSubmission, eventIDs []string, nicheTags []string, now time.Time) *assemblerModel.FeatureBundle {
	platinum := intake != nil && intake.IsPlatinum(now)

	bundle := &assemblerModel.FeatureBundle{
		ProfileID:    p.ID,
		DisplayName:  p.DisplayName,
		Niche:        p.NormalizedNiche(),
		Audience:     profileModel.NormalizeText(p.Audience),
		Reach:        p.Reach(),
		LastActiveAt: p.LastActiveAt,
		Events:       toSet(eventIDs),
		AntiPersonas: map[assemblerModel.AntiPersona]bool{},
		CuratedNicheTags: toSet(nicheTags),
	}

	bundle.Offers = offers(p, intake, platinum)
	bundle.Needs = needs(p, intake, platinum)
	bundle.Preferences = preferences(intake)
	if intake != nil {
		for _, ap := range intake.AntiPersonas {
			bundle.AntiPersonas[assemblerModel.AntiPersona(ap)] = true
		}
	}
	bundle.TrustSource = trustSource(p, intake, now)
	bundle.IsSleepingGiant = bundle.Reach > 5000 && bundle.TrustSource != assemblerModel.Platinum && bundle.TrustSource != assemblerModel.Bronze

	return bundle
}

// offers implements offers(P) (spec §4.2): Platinum intake's verified
// offers, else the profile's free-text offering split on sentence
// boundaries, else empty. Bronze-inferred suggested_offers never feed this
// — the verified-vs-inferred boundary spec §9 calls out by name.
func offers(p *profileModel.Profile, intake *intakeModel.IntakeSubmission, platinum bool) []string {
	if platinum && len(intake.VerifiedOffers) > 0 {
		return intake.VerifiedOffers
	}
	if p.Offering != nil {
		return intakeModel.SplitSentences(*p.Offering)
	}
	return nil
}

// needs implements needs(P), analogous to offers(P).
func needs(p *profileModel.Profile, intake *intakeModel.IntakeSubmission, platinum bool) []string {
	if platinum && len(intake.VerifiedNeeds) > 0 {
		return intake.VerifiedNeeds
	}
	if p.Seeking != nil {
		return intakeModel.SplitSentences(*p.Seeking)
	}
	return nil
}

// preferences implements preferences(P): the intake's match_preference set
// if present, else {Peer_Bundle} as default (spec §4.2).
func preferences(intake *intakeModel.IntakeSubmission) []assemblerModel.PreferenceType {
	if intake != nil && len(intake.MatchPreference) > 0 {
		out := make([]assemblerModel.PreferenceType, len(intake.MatchPreference))
		for i, p := range intake.MatchPreference {
			out[i] = assemblerModel.PreferenceType(p)
		}
		return out
	}
	return []assemblerModel.PreferenceType{assemblerModel.PeerBundle}
}

// trustSource implements trust_source(P) (spec §4.2, §4.5): Platinum if
// intake confirmed within 30d; Gold if profile fields populated but no
// recent intake; Bronze if only transcript-inferred fields (recent
// activity with no confirmed intake); Legacy otherwise.
func trustSource(p *profileModel.Profile, intake *intakeModel.IntakeSubmission, now time.Time) assemblerModel.TrustSource {
	if intake != nil && intake.IsPlatinum(now) {
		return assemblerModel.Platinum
	}
	if profileFieldsPopulated(p) {
		return assemblerModel.Gold
	}
	if p.LastActiveAt != nil && now.Sub(*p.LastActiveAt) <= 30*24*time.Hour {
		return assemblerModel.Bronze
	}
	return assemblerModel.Legacy
}

func profileFieldsPopulated(p *profileModel.Profile) bool {
	return p.Niche != "" && (notEmpty(p.Offering) || notEmpty(p.Seeking))
}

func notEmpty(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

func toSet(items []string) map[string]bool {
	out := make(map[string]bool, len(items))
	for _, i := range items {
		out[i] = true
	}
	return out
}
