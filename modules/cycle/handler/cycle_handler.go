// Package handler exposes run_cycle and run_for_profile (spec §6) over
// HTTP, grounded on modules/matches' handler for request/response shape.
package handler

import (
	"net/http"
	"strconv"

	httpPlatform "github.com/jvmatch/partnermatch/internal/platform/http"
	"github.com/jvmatch/partnermatch/modules/cycle/model"
	"github.com/jvmatch/partnermatch/modules/cycle/ports"
	"github.com/jvmatch/partnermatch/modules/cycle/service"
	"github.com/gin-gonic/gin"
)

// trendDefaultWindow bounds how many recent cycle_reports feed GetTrend when
// the caller doesn't specify one.
const trendDefaultWindow = 20

type CycleHandler struct {
	orchestrator *service.Orchestrator
	reports      ports.CycleReportRepository
	presets      ports.PresetRepository
	defaultCfg   model.CycleConfig
}

func NewCycleHandler(orchestrator *service.Orchestrator, reports ports.CycleReportRepository, presets ports.PresetRepository, defaultCfg model.CycleConfig) *CycleHandler {
	return &CycleHandler{orchestrator: orchestrator, reports: reports, presets: presets, defaultCfg: defaultCfg}
}

func (h *CycleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cycles := rg.Group("/cycles")
	{
		cycles.POST("/:id/run", h.RunCycle)
		cycles.GET("/trend", h.GetTrend)
	}
	presets := rg.Group("/cycle-presets")
	{
		presets.GET("", h.ListPresets)
		presets.POST("", h.CreatePreset)
	}
	rg.POST("/profiles/:id/refresh", h.RunForProfile)
}

type runCycleBody struct {
	Preset                  string  `json:"preset"`
	TopK                    int     `json:"top_k"`
	PopularityCap           int     `json:"popularity_cap"`
	ExpiryDays              int     `json:"expiry_days"`
	IntentFallbackThreshold float64 `json:"intent_fallback_threshold"`
	SemanticMatchThreshold  float64 `json:"semantic_match_threshold"`
	OracleEnabled           *bool   `json:"oracle_enabled"`
}

func (b *runCycleBody) toConfig(defaults model.CycleConfig) model.CycleConfig {
	cfg := defaults
	if b == nil {
		return cfg
	}
	if b.TopK > 0 {
		cfg.TopK = b.TopK
	}
	if b.PopularityCap > 0 {
		cfg.PopularityCap = b.PopularityCap
	}
	if b.ExpiryDays > 0 {
		cfg.ExpiryDays = b.ExpiryDays
	}
	if b.IntentFallbackThreshold > 0 {
		cfg.IntentFallbackThreshold = b.IntentFallbackThreshold
	}
	if b.SemanticMatchThreshold > 0 {
		cfg.SemanticMatchThreshold = b.SemanticMatchThreshold
	}
	if b.OracleEnabled != nil {
		cfg.OracleEnabled = *b.OracleEnabled
	}
	return cfg
}

// RunCycle godoc
// @Summary Run one matching cycle
// @Description Resolves the directory backlog, assembles feature bundles, scores every eligible pair, applies the fairness filter, and persists the resulting match suggestions.
// @Tags cycles
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Cycle ID"
// @Param request body runCycleBody false "Config overrides"
// @Success 200 {object} model.CycleReport
// @Failure 500 {object} httpPlatform.ErrorResponse
// @Router /cycles/{id}/run [post]
func (h *CycleHandler) RunCycle(c *gin.Context) {
	var body runCycleBody
	_ = c.ShouldBindJSON(&body)

	base := h.defaultCfg
	if body.Preset != "" {
		preset, err := h.presets.GetByName(c.Request.Context(), body.Preset)
		if err != nil {
			status := http.StatusInternalServerError
			if err == model.ErrPresetNotFound {
				status = http.StatusNotFound
			}
			httpPlatform.RespondWithError(c, status, "PRESET_NOT_FOUND", err.Error())
			return
		}
		base = preset.Config
	}
	cfg := body.toConfig(base)

	report, err := h.orchestrator.RunCycle(c.Request.Context(), c.Param("id"), cfg)
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusInternalServerError, "CYCLE_FAILED", err.Error())
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, report)
}

// RunForProfile godoc
// @Summary Refresh one profile's match suggestions on demand
// @Tags cycles
// @Security BearerAuth
// @Produce json
// @Param id path string true "Profile ID"
// @Success 200 {array} model.MatchSuggestionDTO
// @Failure 500 {object} httpPlatform.ErrorResponse
// @Router /profiles/{id}/refresh [post]
func (h *CycleHandler) RunForProfile(c *gin.Context) {
	suggestions, err := h.orchestrator.RunForProfile(c.Request.Context(), c.Param("id"), h.defaultCfg)
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusInternalServerError, "REFRESH_FAILED", err.Error())
		return
	}
	dtos := make([]interface{}, len(suggestions))
	for i, s := range suggestions {
		dtos[i] = s.ToDTO()
	}
	httpPlatform.RespondWithData(c, http.StatusOK, dtos)
}

// GetTrend godoc
// @Summary Aggregate recent cycle reports into a trend
// @Description Averages profiles scored, pairs considered/emitted/dropped, and orphans across a recent window of cycles (adapted from modules/analytics' per-user Overview).
// @Tags cycles
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Number of recent cycles to average over (default 20)"
// @Success 200 {object} model.CycleTrend
// @Failure 500 {object} httpPlatform.ErrorResponse
// @Router /cycles/trend [get]
func (h *CycleHandler) GetTrend(c *gin.Context) {
	limit := trendDefaultWindow
	if q := c.Query("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 {
			limit = n
		}
	}

	trend, err := h.reports.GetTrend(c.Request.Context(), limit)
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusInternalServerError, "TREND_FAILED", err.Error())
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, trend)
}

// ListPresets godoc
// @Summary List named cycle config presets
// @Tags cycles
// @Security BearerAuth
// @Produce json
// @Success 200 {array} model.CycleConfigPreset
// @Failure 500 {object} httpPlatform.ErrorResponse
// @Router /cycle-presets [get]
func (h *CycleHandler) ListPresets(c *gin.Context) {
	presets, err := h.presets.List(c.Request.Context())
	if err != nil {
		httpPlatform.RespondWithError(c, http.StatusInternalServerError, "PRESET_LIST_FAILED", err.Error())
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, presets)
}

type createPresetBody struct {
	Name                    string  `json:"name" binding:"required"`
	TopK                    int     `json:"top_k"`
	PopularityCap           int     `json:"popularity_cap"`
	ExpiryDays              int     `json:"expiry_days"`
	IntentFallbackThreshold float64 `json:"intent_fallback_threshold"`
	SemanticMatchThreshold  float64 `json:"semantic_match_threshold"`
	OracleEnabled           *bool   `json:"oracle_enabled"`
}

// CreatePreset godoc
// @Summary Save a named, reusable cycle config bundle
// @Tags cycles
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body createPresetBody true "Preset definition"
// @Success 200 {object} model.CycleConfigPreset
// @Failure 400 {object} httpPlatform.ErrorResponse
// @Failure 500 {object} httpPlatform.ErrorResponse
// @Router /cycle-presets [post]
func (h *CycleHandler) CreatePreset(c *gin.Context) {
	var body createPresetBody
	if err := c.ShouldBindJSON(&body); err != nil {
		httpPlatform.RespondWithError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request payload")
		return
	}

	cfg := (&runCycleBody{
		TopK:                    body.TopK,
		PopularityCap:           body.PopularityCap,
		ExpiryDays:              body.ExpiryDays,
		IntentFallbackThreshold: body.IntentFallbackThreshold,
		SemanticMatchThreshold:  body.SemanticMatchThreshold,
		OracleEnabled:           body.OracleEnabled,
	}).toConfig(h.defaultCfg)

	preset := &model.CycleConfigPreset{Name: body.Name, Config: cfg}
	if err := h.presets.Create(c.Request.Context(), preset); err != nil {
		httpPlatform.RespondWithError(c, http.StatusInternalServerError, "PRESET_CREATE_FAILED", err.Error())
		return
	}
	httpPlatform.RespondWithData(c, http.StatusOK, preset)
}
