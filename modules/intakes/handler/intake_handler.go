package handler

import (
	"net/http"
	"time"

	httpPlatform "github.com/jvmatch/partnermatch/internal/platform/http"
	"github.com/jvmatch/partnermatch/modules/intakes/model"
	"github.com/jvmatch/partnermatch/modules/intakes/service"
	"github.com/gin-gonic/gin"
)

type IntakeHandler struct {
	service *service.IntakeService
}

func NewIntakeHandler(service *service.IntakeService) *IntakeHandler {
	return &IntakeHandler{service: service}
}

func (h *IntakeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	intakes := rg.Group("/intakes")
	{
		intakes.POST("", h.Create)
		intakes.GET("/:id", h.Get)
		intakes.POST("/:id/confirm", h.Confirm)
		intakes.POST("/:id/evidence-upload-url", h.GenerateEvidenceUploadURL)
	}
}

type createIntakeBody struct {
	ProfileID       string                  `json:"profile_id" binding:"required"`
	EventID         string                  `json:"event_id" binding:"required"`
	EventName       string                  `json:"event_name"`
	EventDate       time.Time               `json:"event_date"`
	VerifiedOffers  []string                `json:"verified_offers"`
	VerifiedNeeds   []string                `json:"verified_needs"`
	MatchPreference []model.PreferenceType  `json:"match_preference"`
	AntiPersonas    []model.AntiPersona     `json:"anti_personas"`
	SuggestedOffers []string                `json:"suggested_offers"`
	SuggestedNeeds  []string                `json:"suggested_needs"`
}

// Create godoc
// @Summary Submit an event intake
// @Description Records a profile's verified offers/needs/preferences for one event
// @Tags intakes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body createIntakeBody true "Intake details"
// @Success 201 {object} model.IntakeSubmissionDTO
// @Failure 400 {object} httpPlatform.ErrorResponse
// @Router /intakes [post]
func (h *IntakeHandler) Create(c *gin.Context) {
	var body createIntakeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request payload")
		return
	}

	dto, err := h.service.Create(c.Request.Context(), &service.CreateIntakeRequest{
		ProfileID:       body.ProfileID,
		EventID:         body.EventID,
		EventName:       body.EventName,
		EventDate:       body.EventDate,
		VerifiedOffers:  body.VerifiedOffers,
		VerifiedNeeds:   body.VerifiedNeeds,
		MatchPreference: body.MatchPreference,
		AntiPersonas:    body.AntiPersonas,
		SuggestedOffers: body.SuggestedOffers,
		SuggestedNeeds:  body.SuggestedNeeds,
	})
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, string(model.GetErrorCode(err)), model.GetErrorMessage(err))
		return
	}
	httpPlatform.RespondWithData(c, http.StatusCreated, dto)
}

// Get godoc
// @Summary Fetch an intake submission
// @Tags intakes
// @Security BearerAuth
// @Produce json
// @Param id path string true "Intake ID"
// @Success 200 {object} model.IntakeSubmissionDTO
// @Failure 404 {object} httpPlatform.ErrorResponse
// @Router /intakes/{id} [get]
func (h *IntakeHandler) Get(c *gin.Context) {
	dto, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusNotFound, string(model.GetErrorCode(err)), model.GetErrorMessage(err))
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, dto)
}

// Confirm godoc
// @Summary Confirm an intake submission
// @Description Marks an intake confirmed, making it Platinum-qualifying for 30 days
// @Tags intakes
// @Security BearerAuth
// @Produce json
// @Param id path string true "Intake ID"
// @Success 200 {object} model.IntakeSubmissionDTO
// @Failure 404 {object} httpPlatform.ErrorResponse
// @Router /intakes/{id}/confirm [post]
func (h *IntakeHandler) Confirm(c *gin.Context) {
	dto, err := h.service.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusNotFound, string(model.GetErrorCode(err)), model.GetErrorMessage(err))
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, dto)
}

type evidenceUploadBody struct {
	ContentType string `json:"content_type" binding:"required"`
}

// GenerateEvidenceUploadURL godoc
// @Summary Generate a presigned upload URL for intake evidence
// @Tags intakes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Intake ID"
// @Param request body evidenceUploadBody true "Upload details"
// @Success 200 {object} map[string]string
// @Failure 400 {object} httpPlatform.ErrorResponse
// @Router /intakes/{id}/evidence-upload-url [post]
func (h *IntakeHandler) GenerateEvidenceUploadURL(c *gin.Context) {
	var body evidenceUploadBody
	if err := c.ShouldBindJSON(&body); err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request payload")
		return
	}
	url, err := h.service.GenerateEvidenceUploadURL(c.Request.Context(), c.Param("id"), body.ContentType)
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, "UPLOAD_URL_FAILED", err.Error())
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, gin.H{"upload_url": url})
}
