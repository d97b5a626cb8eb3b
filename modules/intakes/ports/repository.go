package ports

import (
	"context"
	"time"

	"github.com/jvmatch/partnermatch/modules/intakes/model"
)

// IntakeRepository persists intake submissions.
type IntakeRepository interface {
	Create(ctx context.Context, intake *model.IntakeSubmission) error
	GetByID(ctx context.Context, id string) (*model.IntakeSubmission, error)
	GetByProfileAndEvent(ctx context.Context, profileID, eventID string) (*model.IntakeSubmission, error)
	Confirm(ctx context.Context, id string, confirmedAt time.Time) error
	SetEvidenceKey(ctx context.Context, id string, key string) error

	// LatestConfirmedByProfile returns, per profile id, the most recently
	// confirmed intake (the "load_intakes(profile_ids)" external interface,
	// spec §6). Profiles with no confirmed intake are simply absent.
	LatestConfirmedByProfile(ctx context.Context, profileIDs []string) (map[string]*model.IntakeSubmission, error)

	// EventsAttendedByProfile returns, per profile id, the distinct event
	// ids drawn from that profile's full intake history (events(P), spec
	// §4.2), not just the latest confirmed one.
	EventsAttendedByProfile(ctx context.Context, profileIDs []string) (map[string][]string, error)
}
