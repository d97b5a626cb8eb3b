package handler

import (
	"net/http"
	"strconv"

	httpPlatform "github.com/jvmatch/partnermatch/internal/platform/http"
	"github.com/jvmatch/partnermatch/modules/matches/model"
	"github.com/jvmatch/partnermatch/modules/matches/ports"
	"github.com/jvmatch/partnermatch/modules/matches/service"
	"github.com/gin-gonic/gin"
)

type SuggestionHandler struct {
	service *service.SuggestionService
}

func NewSuggestionHandler(service *service.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{service: service}
}

func (h *SuggestionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	matches := rg.Group("/matches")
	{
		matches.GET("/:id", h.Get)
		matches.GET("/:id/history", h.StatusHistory)
		matches.POST("/:id/status", h.Advance)
		matches.GET("/profiles/:profileId", h.ListForTarget)
	}
}

// Get godoc
// @Summary Fetch a match suggestion
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param id path string true "Match Suggestion ID"
// @Success 200 {object} model.MatchSuggestionDTO
// @Failure 404 {object} httpPlatform.ErrorResponse
// @Router /matches/{id} [get]
func (h *SuggestionHandler) Get(c *gin.Context) {
	dto, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusNotFound, string(model.GetErrorCode(err)), model.GetErrorMessage(err))
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, dto)
}

// ListForTarget godoc
// @Summary List match suggestions for a profile
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param profileId path string true "Target Profile ID"
// @Param status query string false "Filter by status"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} model.MatchSuggestionDTO
// @Router /matches/profiles/{profileId} [get]
func (h *SuggestionHandler) ListForTarget(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	opts := &ports.ListOptions{Limit: limit, Offset: offset, Status: c.Query("status")}

	dtos, total, err := h.service.ListForTarget(c.Request.Context(), c.Param("profileId"), opts)
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusInternalServerError, string(model.GetErrorCode(err)), model.GetErrorMessage(err))
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, gin.H{"items": dtos, "total": total})
}

type advanceStatusBody struct {
	Status string `json:"status" binding:"required"`
}

// Advance godoc
// @Summary Advance a match suggestion's status
// @Description Moves a suggestion forward along pending -> viewed -> contacted -> (connected | dismissed)
// @Tags matches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Match Suggestion ID"
// @Param request body advanceStatusBody true "Target status"
// @Success 200 {object} model.MatchSuggestionDTO
// @Failure 400 {object} httpPlatform.ErrorResponse
// @Router /matches/{id}/status [post]
func (h *SuggestionHandler) Advance(c *gin.Context) {
	var body advanceStatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request payload")
		return
	}
	dto, err := h.service.Advance(c.Request.Context(), c.Param("id"), model.Status(body.Status))
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, string(model.GetErrorCode(err)), model.GetErrorMessage(err))
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, dto)
}

// StatusHistory godoc
// @Summary Fetch a match suggestion's status history
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param id path string true "Match Suggestion ID"
// @Success 200 {array} model.StatusEvent
// @Router /matches/{id}/history [get]
func (h *SuggestionHandler) StatusHistory(c *gin.Context) {
	events, err := h.service.StatusHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusInternalServerError, string(model.GetErrorCode(err)), model.GetErrorMessage(err))
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, events)
}
