// Package handler exposes the tier-4 review queue (modules/resolver) to
// operators over HTTP, grounded on modules/matches' handler for
// request/response shape.
package handler

import (
	"net/http"

	"github.com/jvmatch/partnermatch/internal/platform/auth"
	httpPlatform "github.com/jvmatch/partnermatch/internal/platform/http"
	"github.com/jvmatch/partnermatch/modules/resolver/model"
	"github.com/jvmatch/partnermatch/modules/resolver/service"
	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	queue *service.QueueService
}

func NewReviewHandler(queue *service.QueueService) *ReviewHandler {
	return &ReviewHandler{queue: queue}
}

func (h *ReviewHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	reviews := rg.Group("/reviews")
	reviews.Use(authMiddleware)
	{
		reviews.GET("", h.ListPending)
		reviews.POST("/:id/decide", h.Decide)
	}
}

// ListPending godoc
// @Summary List pending tier-4 review queue entries
// @Tags reviews
// @Security BearerAuth
// @Produce json
// @Success 200 {array} model.ReviewQueueEntryDTO
// @Failure 500 {object} httpPlatform.ErrorResponse
// @Router /reviews [get]
func (h *ReviewHandler) ListPending(c *gin.Context) {
	entries, err := h.queue.ListPending(c.Request.Context())
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusInternalServerError, string(model.GetErrorCode(err)), model.GetErrorMessage(err))
		return
	}
	dtos := make([]*model.ReviewQueueEntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = e.ToDTO()
	}
	httpPlatform.RespondWithData(c, http.StatusOK, dtos)
}

type decideBody struct {
	Decision string `json:"decision" binding:"required"`
}

// Decide godoc
// @Summary Record an operator decision on a review queue entry
// @Tags reviews
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Review queue entry ID"
// @Param request body decideBody true "merge or reject"
// @Success 200 {object} map[string]string
// @Failure 400 {object} httpPlatform.ErrorResponse
// @Failure 404 {object} httpPlatform.ErrorResponse
// @Router /reviews/{id}/decide [post]
func (h *ReviewHandler) Decide(c *gin.Context) {
	userID, ok := auth.MustGetUserID(c)
	if !ok {
		return
	}
	var body decideBody
	if err := c.ShouldBindJSON(&body); err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request payload")
		return
	}

	if err := h.queue.Decide(c.Request.Context(), c.Param("id"), body.Decision, userID); err != nil {
		statusCode := http.StatusInternalServerError
		if err == model.ErrReviewEntryNotFound {
			statusCode = http.StatusNotFound
		}
		httpPlatform.RespondWithError(c, statusCode, string(model.GetErrorCode(err)), model.GetErrorMessage(err))
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, gin.H{"message": "decision recorded"})
}
