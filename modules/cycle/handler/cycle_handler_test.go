package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jvmatch/partnermatch/modules/cycle/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCycleReportRepository struct {
	trend *model.CycleTrend
	err   error
}

func (f *fakeCycleReportRepository) PersistReport(ctx context.Context, report *model.CycleReport) error {
	return nil
}

func (f *fakeCycleReportRepository) GetTrend(ctx context.Context, limit int) (*model.CycleTrend, error) {
	return f.trend, f.err
}

type fakePresetRepository struct {
	byName  map[string]*model.CycleConfigPreset
	all     []*model.CycleConfigPreset
	created []*model.CycleConfigPreset
}

func (f *fakePresetRepository) Create(ctx context.Context, preset *model.CycleConfigPreset) error {
	f.created = append(f.created, preset)
	return nil
}

func (f *fakePresetRepository) List(ctx context.Context) ([]*model.CycleConfigPreset, error) {
	return f.all, nil
}

func (f *fakePresetRepository) GetByName(ctx context.Context, name string) (*model.CycleConfigPreset, error) {
	preset, ok := f.byName[name]
	if !ok {
		return nil, model.ErrPresetNotFound
	}
	return preset, nil
}

func TestCycleHandler_GetTrend(t *testing.T) {
	gin.SetMode(gin.TestMode)

	reports := &fakeCycleReportRepository{trend: &model.CycleTrend{
		CyclesConsidered:  5,
		AvgProfilesScored: 20,
		OrphanRate:        10,
	}}
	handler := NewCycleHandler(nil, reports, &fakePresetRepository{}, model.DefaultCycleConfig())

	router := gin.New()
	v1 := router.Group("/api/v1")
	handler.RegisterRoutes(v1)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/cycles/trend", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var trend model.CycleTrend
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &trend))
	assert.Equal(t, 5, trend.CyclesConsidered)
}

func TestCycleHandler_GetTrend_DefaultsWindowOnInvalidLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	reports := &fakeCycleReportRepository{trend: &model.CycleTrend{CyclesConsidered: 1}}
	handler := NewCycleHandler(nil, reports, &fakePresetRepository{}, model.DefaultCycleConfig())

	router := gin.New()
	v1 := router.Group("/api/v1")
	handler.RegisterRoutes(v1)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/cycles/trend?limit=not-a-number", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCycleHandler_ListPresets(t *testing.T) {
	gin.SetMode(gin.TestMode)

	presets := &fakePresetRepository{all: []*model.CycleConfigPreset{
		{ID: "p1", Name: "conservative", Config: model.DefaultCycleConfig()},
	}}
	handler := NewCycleHandler(nil, &fakeCycleReportRepository{}, presets, model.DefaultCycleConfig())

	router := gin.New()
	v1 := router.Group("/api/v1")
	handler.RegisterRoutes(v1)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/cycle-presets", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got []model.CycleConfigPreset
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "conservative", got[0].Name)
}

func TestCycleHandler_CreatePreset(t *testing.T) {
	gin.SetMode(gin.TestMode)

	presets := &fakePresetRepository{}
	handler := NewCycleHandler(nil, &fakeCycleReportRepository{}, presets, model.DefaultCycleConfig())

	router := gin.New()
	v1 := router.Group("/api/v1")
	handler.RegisterRoutes(v1)

	body, _ := json.Marshal(map[string]interface{}{"name": "conservative", "popularity_cap": 2})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/cycle-presets", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, presets.created, 1)
	assert.Equal(t, "conservative", presets.created[0].Name)
	assert.Equal(t, 2, presets.created[0].Config.PopularityCap)
}

func TestCycleHandler_RunCycle_UnknownPresetReturnsNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)

	presets := &fakePresetRepository{byName: map[string]*model.CycleConfigPreset{}}
	handler := NewCycleHandler(nil, &fakeCycleReportRepository{}, presets, model.DefaultCycleConfig())

	router := gin.New()
	v1 := router.Group("/api/v1")
	handler.RegisterRoutes(v1)

	body, _ := json.Marshal(map[string]interface{}{"preset": "nonexistent"})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/cycles/cycle-1/run", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
