package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jvmatch/partnermatch/modules/comments/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockCommentRepository implements ports.CommentRepository
type MockCommentRepository struct {
	CreateFunc                 func(ctx context.Context, comment *model.Comment) error
	ListByReviewQueueEntryFunc func(ctx context.Context, reviewQueueEntryID string) ([]*model.Comment, error)
	DeleteFunc                 func(ctx context.Context, userID, commentID string) error
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, comment)
	}
	return nil
}

func (m *MockCommentRepository) ListByReviewQueueEntry(ctx context.Context, reviewQueueEntryID string) ([]*model.Comment, error) {
	if m.ListByReviewQueueEntryFunc != nil {
		return m.ListByReviewQueueEntryFunc(ctx, reviewQueueEntryID)
	}
	return nil, nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, userID, commentID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, commentID)
	}
	return nil
}

func TestCommentService_Create(t *testing.T) {
	userID := "user-123"

	t.Run("creates comment successfully", func(t *testing.T) {
		mockRepo := &MockCommentRepository{
			CreateFunc: func(ctx context.Context, comment *model.Comment) error {
				comment.ID = "comment-1"
				comment.CreatedAt = time.Now()
				comment.UpdatedAt = time.Now()
				return nil
			},
		}

		svc := NewCommentService(mockRepo)
		req := &model.CreateCommentRequest{
			ReviewQueueEntryID: "review-1",
			Content:            "This is a comment",
		}

		result, err := svc.Create(context.Background(), userID, req)

		require.NoError(t, err)
		assert.Equal(t, "comment-1", result.ID)
		assert.Equal(t, "This is a comment", result.Content)
		assert.Equal(t, "review-1", result.ReviewQueueEntryID)
	})

	t.Run("returns error for empty content", func(t *testing.T) {
		mockRepo := &MockCommentRepository{}
		svc := NewCommentService(mockRepo)
		req := &model.CreateCommentRequest{
			ReviewQueueEntryID: "review-1",
			Content:            "   ",
		}

		result, err := svc.Create(context.Background(), userID, req)

		assert.Nil(t, result)
		assert.Equal(t, model.ErrContentRequired, err)
	})

	t.Run("trims whitespace from content", func(t *testing.T) {
		var createdComment *model.Comment

		mockRepo := &MockCommentRepository{
			CreateFunc: func(ctx context.Context, comment *model.Comment) error {
				createdComment = comment
				comment.ID = "comment-1"
				return nil
			},
		}

		svc := NewCommentService(mockRepo)
		req := &model.CreateCommentRequest{
			ReviewQueueEntryID: "review-1",
			Content:            "  Comment with whitespace  ",
		}

		_, err := svc.Create(context.Background(), userID, req)

		require.NoError(t, err)
		assert.Equal(t, "Comment with whitespace", createdComment.Content)
	})

	t.Run("returns error from repository", func(t *testing.T) {
		expectedError := errors.New("database error")

		mockRepo := &MockCommentRepository{
			CreateFunc: func(ctx context.Context, comment *model.Comment) error {
				return expectedError
			},
		}

		svc := NewCommentService(mockRepo)
		req := &model.CreateCommentRequest{
			ReviewQueueEntryID: "review-1",
			Content:            "Test comment",
		}

		result, err := svc.Create(context.Background(), userID, req)

		assert.Nil(t, result)
		assert.Equal(t, expectedError, err)
	})
}

func TestCommentService_ListByReviewQueueEntry(t *testing.T) {
	reviewID := "review-1"

	t.Run("returns comments list", func(t *testing.T) {
		expectedComments := []*model.Comment{
			{
				ID:                 "comment-1",
				ReviewQueueEntryID: reviewID,
				Content:            "First comment",
				CreatedAt:          time.Now(),
			},
			{
				ID:                 "comment-2",
				ReviewQueueEntryID: reviewID,
				Content:            "Second comment",
				CreatedAt:          time.Now(),
			},
		}

		mockRepo := &MockCommentRepository{
			ListByReviewQueueEntryFunc: func(ctx context.Context, rid string) ([]*model.Comment, error) {
				assert.Equal(t, reviewID, rid)
				return expectedComments, nil
			},
		}

		svc := NewCommentService(mockRepo)
		result, err := svc.ListByReviewQueueEntry(context.Background(), reviewID)

		require.NoError(t, err)
		assert.Len(t, result, 2)
		assert.Equal(t, "First comment", result[0].Content)
		assert.Equal(t, "Second comment", result[1].Content)
	})

	t.Run("returns empty list", func(t *testing.T) {
		mockRepo := &MockCommentRepository{
			ListByReviewQueueEntryFunc: func(ctx context.Context, rid string) ([]*model.Comment, error) {
				return []*model.Comment{}, nil
			},
		}

		svc := NewCommentService(mockRepo)
		result, err := svc.ListByReviewQueueEntry(context.Background(), reviewID)

		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("returns error from repository", func(t *testing.T) {
		expectedError := errors.New("database error")

		mockRepo := &MockCommentRepository{
			ListByReviewQueueEntryFunc: func(ctx context.Context, rid string) ([]*model.Comment, error) {
				return nil, expectedError
			},
		}

		svc := NewCommentService(mockRepo)
		result, err := svc.ListByReviewQueueEntry(context.Background(), reviewID)

		assert.Nil(t, result)
		assert.Equal(t, expectedError, err)
	})
}

func TestCommentService_Delete(t *testing.T) {
	userID := "user-123"
	commentID := "comment-1"

	t.Run("deletes comment successfully", func(t *testing.T) {
		var deletedCommentID string

		mockRepo := &MockCommentRepository{
			DeleteFunc: func(ctx context.Context, uid, cid string) error {
				deletedCommentID = cid
				return nil
			},
		}

		svc := NewCommentService(mockRepo)
		err := svc.Delete(context.Background(), userID, commentID)

		require.NoError(t, err)
		assert.Equal(t, commentID, deletedCommentID)
	})

	t.Run("returns error when comment not found", func(t *testing.T) {
		mockRepo := &MockCommentRepository{
			DeleteFunc: func(ctx context.Context, uid, cid string) error {
				return model.ErrCommentNotFound
			},
		}

		svc := NewCommentService(mockRepo)
		err := svc.Delete(context.Background(), userID, commentID)

		assert.Equal(t, model.ErrCommentNotFound, err)
	})
}

func TestComment_ToDTO(t *testing.T) {
	now := time.Now()

	comment := &model.Comment{
		ID:                 "comment-1",
		UserID:             "user-123",
		ReviewQueueEntryID: "review-1",
		Content:            "Test comment",
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	dto := comment.ToDTO()

	assert.Equal(t, comment.ID, dto.ID)
	assert.Equal(t, comment.ReviewQueueEntryID, dto.ReviewQueueEntryID)
	assert.Equal(t, comment.Content, dto.Content)
	assert.Equal(t, comment.CreatedAt, dto.CreatedAt)
}
