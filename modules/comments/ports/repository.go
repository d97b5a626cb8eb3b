package ports

import (
	"context"

	"github.com/jvmatch/partnermatch/modules/comments/model"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	ListByReviewQueueEntry(ctx context.Context, reviewQueueEntryID string) ([]*model.Comment, error)
	Delete(ctx context.Context, userID, commentID string) error
}
