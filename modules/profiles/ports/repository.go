package ports

import (
	"context"
	"time"

	"github.com/jvmatch/partnermatch/modules/profiles/model"
)

// ProfileRepository defines the interface for profile data access.
type ProfileRepository interface {
	Create(ctx context.Context, profile *model.Profile) error
	GetByID(ctx context.Context, profileID string) (*model.Profile, error)
	GetByEmail(ctx context.Context, email string) (*model.Profile, error)
	List(ctx context.Context, limit, offset int, sortBy, sortOrder string) ([]*model.ProfileDTO, int, error)
	// ListAll returns every profile, enrichments included. Grounds the
	// core pipeline's load_profiles() collaborator interface (spec §6).
	ListAll(ctx context.Context) ([]*model.Profile, error)
	Update(ctx context.Context, profile *model.Profile) error
	Delete(ctx context.Context, profileID string) error
	TouchLastActive(ctx context.Context, profileID string, at time.Time) error
}
