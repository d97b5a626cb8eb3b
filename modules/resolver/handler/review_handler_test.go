package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jvmatch/partnermatch/modules/resolver/model"
	"github.com/jvmatch/partnermatch/modules/resolver/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReviewQueueStore struct {
	pending   []*model.ReviewQueueEntry
	decideErr error
}

func (f *fakeReviewQueueStore) ListPending(ctx context.Context) ([]*model.ReviewQueueEntry, error) {
	return f.pending, nil
}

func (f *fakeReviewQueueStore) Decide(ctx context.Context, id, decision, decidedBy string, decidedAt time.Time) error {
	return f.decideErr
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func mockAuthMiddleware(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
}

func TestReviewHandler_ListPending(t *testing.T) {
	store := &fakeReviewQueueStore{pending: []*model.ReviewQueueEntry{
		{ID: "r1", Status: model.ReviewPending},
		{ID: "r2", Status: model.ReviewPending},
	}}
	handler := NewReviewHandler(service.NewQueueService(store, time.Now))

	router := setupTestRouter()
	v1 := router.Group("/api/v1")
	handler.RegisterRoutes(v1, mockAuthMiddleware("user-123"))

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/reviews", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []model.ReviewQueueEntryDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Len(t, response, 2)
}

func TestReviewHandler_Decide(t *testing.T) {
	store := &fakeReviewQueueStore{}
	handler := NewReviewHandler(service.NewQueueService(store, time.Now))

	router := setupTestRouter()
	v1 := router.Group("/api/v1")
	handler.RegisterRoutes(v1, mockAuthMiddleware("operator-1"))

	body := `{"decision":"merge"}`
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/reviews/r1/decide", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReviewHandler_Decide_NotFound(t *testing.T) {
	store := &fakeReviewQueueStore{decideErr: model.ErrReviewEntryNotFound}
	handler := NewReviewHandler(service.NewQueueService(store, time.Now))

	router := setupTestRouter()
	v1 := router.Group("/api/v1")
	handler.RegisterRoutes(v1, mockAuthMiddleware("operator-1"))

	body := `{"decision":"merge"}`
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/reviews/missing/decide", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReviewHandler_Decide_Unauthenticated(t *testing.T) {
	store := &fakeReviewQueueStore{}
	handler := NewReviewHandler(service.NewQueueService(store, time.Now))

	router := setupTestRouter()
	v1 := router.Group("/api/v1")
	reviews := v1.Group("/reviews")
	reviews.POST("/:id/decide", handler.Decide)

	body := `{"decision":"merge"}`
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/reviews/r1/decide", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
