package ports

import (
	"context"

	intakeModel "github.com/jvmatch/partnermatch/modules/intakes/model"
	profileModel "github.com/jvmatch/partnermatch/modules/profiles/model"
)

// ProfileSource is the external load_profiles() collaborator (spec §6).
type ProfileSource interface {
	ListAll(ctx context.Context) ([]*profileModel.Profile, error)
}

// IntakeSource is the external load_intakes(profile_ids) collaborator
// (spec §6), plus the full-history event lookup events(P) needs (spec
// §4.2).
type IntakeSource interface {
	LatestConfirmedByProfile(ctx context.Context, profileIDs []string) (map[string]*intakeModel.IntakeSubmission, error)
	EventsAttendedByProfile(ctx context.Context, profileIDs []string) (map[string][]string, error)
}

// TaxonomySource loads each profile's curated niche taxonomy tags
// (modules/taxonomy), the Synergy component's identical-niche short-circuit.
type TaxonomySource interface {
	NicheTagsByProfile(ctx context.Context, profileIDs []string) (map[string][]string, error)
}
