package handler

import (
	"net/http"

	httpPlatform "github.com/jvmatch/partnermatch/internal/platform/http"
	"github.com/jvmatch/partnermatch/modules/profiles/model"
	"github.com/jvmatch/partnermatch/modules/profiles/service"

	"github.com/gin-gonic/gin"
)

// ProfileHandler handles profile HTTP requests.
type ProfileHandler struct {
	service *service.ProfileService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(service *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Create godoc
// @Summary Create a profile
// @Description Register a profile directly, bypassing the resolver cascade
// @Tags profiles
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body model.CreateProfileRequest true "Profile details"
// @Success 201 {object} model.ProfileDTO
// @Failure 400 {object} httpPlatform.ErrorResponse
// @Failure 500 {object} httpPlatform.ErrorResponse
// @Router /profiles [post]
func (h *ProfileHandler) Create(c *gin.Context) {
	var req model.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request payload")
		return
	}

	profile, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	httpPlatform.RespondWithData(c, http.StatusCreated, profile)
}

// Get godoc
// @Summary Get a profile
// @Tags profiles
// @Security BearerAuth
// @Produce json
// @Param id path string true "Profile ID"
// @Success 200 {object} model.ProfileDTO
// @Failure 404 {object} httpPlatform.ErrorResponse "Profile not found"
// @Router /profiles/{id} [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, profile)
}

// List godoc
// @Summary List profiles
// @Tags profiles
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Number of items per page (default: 20, max: 100)"
// @Param offset query int false "Number of items to skip (default: 0)"
// @Param sort query string false "Sort format: field:order (e.g., reach:desc)"
// @Success 200 {object} httpPlatform.PaginatedResponse{items=[]model.ProfileDTO}
// @Router /profiles [get]
func (h *ProfileHandler) List(c *gin.Context) {
	pagination, err := httpPlatform.ParsePaginationParams(c)
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, "INVALID_PAGINATION_PARAMS", "Invalid pagination parameters")
		return
	}

	sortBy, sortOrder := parseSort(c.Query("sort"))

	profiles, total, err := h.service.List(c.Request.Context(), pagination.Limit, pagination.Offset, sortBy, sortOrder)
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list profiles")
		return
	}

	httpPlatform.RespondWithPagination(c, http.StatusOK, profiles, pagination.Limit, pagination.Offset, total)
}

// Update godoc
// @Summary Update a profile
// @Tags profiles
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Profile ID"
// @Param request body model.UpdateProfileRequest true "Updated profile details"
// @Success 200 {object} model.ProfileDTO
// @Failure 404 {object} httpPlatform.ErrorResponse "Profile not found"
// @Router /profiles/{id} [patch]
func (h *ProfileHandler) Update(c *gin.Context) {
	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request payload")
		return
	}

	profile, err := h.service.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	httpPlatform.RespondWithData(c, http.StatusOK, profile)
}

// Delete godoc
// @Summary Delete a profile
// @Tags profiles
// @Security BearerAuth
// @Produce json
// @Param id path string true "Profile ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} httpPlatform.ErrorResponse "Profile not found"
// @Router /profiles/{id} [delete]
func (h *ProfileHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, gin.H{"message": "Profile deleted successfully"})
}

func (h *ProfileHandler) respondError(c *gin.Context, err error) {
	errorCode := model.GetErrorCode(err)
	errorMessage := model.GetErrorMessage(err)

	statusCode := http.StatusInternalServerError
	switch errorCode {
	case model.CodeProfileNotFound:
		statusCode = http.StatusNotFound
	case model.CodeDisplayNameRequired, model.CodeNegativeReach:
		statusCode = http.StatusBadRequest
	}

	httpPlatform.RespondWithError(c, statusCode, string(errorCode), errorMessage)
}

// parseSort splits a sort parameter like "reach:desc" into (field, order).
func parseSort(sort string) (string, string) {
	for i := 0; i < len(sort); i++ {
		if sort[i] == ':' {
			return sort[:i], sort[i+1:]
		}
	}
	return sort, ""
}

// RegisterRoutes registers profile routes.
func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	profiles := router.Group("/profiles")
	profiles.Use(authMiddleware)
	{
		profiles.POST("", h.Create)
		profiles.GET("", h.List)
		profiles.GET("/:id", h.Get)
		profiles.PATCH("/:id", h.Update)
		profiles.DELETE("/:id", h.Delete)
	}
}
