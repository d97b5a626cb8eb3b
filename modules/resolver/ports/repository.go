package ports

import (
	"context"
	"time"

	directoryModel "github.com/jvmatch/partnermatch/modules/directory/model"
	profileModel "github.com/jvmatch/partnermatch/modules/profiles/model"
	"github.com/jvmatch/partnermatch/modules/resolver/model"
)

// ProfileStore is the slice of profile persistence the resolver needs: read
// the full candidate pool once per cycle, then merge into or create
// profiles. A narrower interface than ports.ProfileRepository so the
// resolver doesn't depend on the profiles module's HTTP-facing surface.
type ProfileStore interface {
	ListAll(ctx context.Context) ([]*profileModel.Profile, error)
	Create(ctx context.Context, profile *profileModel.Profile) error
	Update(ctx context.Context, profile *profileModel.Profile) error
}

// ReviewRepository persists tier-4 review queue entries and the merge
// history log.
type ReviewRepository interface {
	CreateReviewEntry(ctx context.Context, entry *model.ReviewQueueEntry) error
	CreateMergeHistoryEntry(ctx context.Context, entry *model.MergeHistoryEntry) error
}

// ReviewQueueStore is the operator-facing slice of review queue persistence:
// listing what's pending and recording a human decision on an entry. Kept
// separate from ReviewRepository since the resolver's own cascade never
// reads the queue back or decides on it.
type ReviewQueueStore interface {
	ListPending(ctx context.Context) ([]*model.ReviewQueueEntry, error)
	Decide(ctx context.Context, id, decision, decidedBy string, decidedAt time.Time) error
}

// DirectoryMarker transitions a directory record once the resolver has
// decided its fate.
type DirectoryMarker interface {
	MarkResolved(ctx context.Context, recordID string, status directoryModel.ResolutionStatus, resolvedProfileID *string) error
}
