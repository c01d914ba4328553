package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gridstress/internal/api/models"
	"gridstress/internal/sim"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, *RunStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := NewRunStore(time.Minute)
	h := NewSimulateHandler(store, nil)

	router := gin.New()
	api := router.Group("/api/v1")
	api.POST("/simulate", h.Run)
	api.GET("/simulate/:id/ledger", h.GetLedger)
	api.POST("/simulate/compare", h.Compare)
	return router, store
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestSimulate_CompletesWithSummary(t *testing.T) {
	router, _ := newTestRouter(t)

	body := `{
		"series": {"demand_mw": [10, 10, 10], "renewable_mw": [2, 2, 2], "interval_hours": 1},
		"fleet": {"batteries": [{"power_mw": 10, "capacity_mwh": 100, "initial_soc_mwh": 50}]}
	}`
	w := doJSON(router, http.MethodPost, "/api/v1/simulate", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.SimulateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "completed", resp.Status)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, 3, resp.Summary.TotalIntervals)
	assert.Zero(t, resp.Summary.TotalUnmetMWh)
	assert.Equal(t, -1, resp.Summary.ExhaustionIndex)
	assert.InDelta(t, 24.0, resp.Summary.EnergyDischargedMWh, 1e-9)
	require.Len(t, resp.Summary.FinalSOCMWh, 1)
	assert.InDelta(t, 26.0, resp.Summary.FinalSOCMWh[0], 1e-9)
	assert.Empty(t, resp.Ledger, "ledger should be omitted unless requested")
}

func TestSimulate_IncludeLedger(t *testing.T) {
	router, _ := newTestRouter(t)

	body := `{
		"series": {"demand_mw": [10, 10], "renewable_mw": [2, 2], "interval_hours": 1},
		"fleet": {"batteries": [{"power_mw": 10, "capacity_mwh": 100, "initial_soc_mwh": 50}]},
		"options": {"include_ledger": true}
	}`
	w := doJSON(router, http.MethodPost, "/api/v1/simulate", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.SimulateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Ledger, 2)
	assert.Equal(t, "DISCHARGING", resp.Ledger[0].Phase)
	assert.InDelta(t, 8.0, resp.Ledger[0].BatteryDispatchMW, 1e-9)
}

func TestSimulate_LimitIntervals(t *testing.T) {
	router, _ := newTestRouter(t)

	body := `{
		"series": {"demand_mw": [10, 10, 10, 10], "renewable_mw": [2, 2, 2, 2], "interval_hours": 1},
		"fleet": {"batteries": [{"power_mw": 10, "capacity_mwh": 100, "initial_soc_mwh": 50}]},
		"options": {"limit_intervals": 2}
	}`
	w := doJSON(router, http.MethodPost, "/api/v1/simulate", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.SimulateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Summary.TotalIntervals)
}

func TestSimulate_ExplicitEmptyBatteryStartsEmpty(t *testing.T) {
	router, _ := newTestRouter(t)

	body := `{
		"series": {"demand_mw": [10, 10], "renewable_mw": [0, 0], "interval_hours": 1},
		"fleet": {"batteries": [{"power_mw": 10, "capacity_mwh": 100, "initial_soc_mwh": 0}]}
	}`
	w := doJSON(router, http.MethodPost, "/api/v1/simulate", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.SimulateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// An explicit zero must not be re-defaulted half full: the pool has
	// nothing to give, so the whole shortfall goes unmet.
	assert.Zero(t, resp.Summary.EnergyDischargedMWh)
	assert.InDelta(t, 20.0, resp.Summary.TotalUnmetMWh, 1e-9)
	assert.Equal(t, 0, resp.Summary.ExhaustionIndex)
}

func TestSimulate_InvalidFleetRejected(t *testing.T) {
	router, _ := newTestRouter(t)

	body := `{
		"series": {"demand_mw": [10], "renewable_mw": [2], "interval_hours": 1},
		"fleet": {"batteries": [{"power_mw": -5, "capacity_mwh": 100}]}
	}`
	w := doJSON(router, http.MethodPost, "/api/v1/simulate", body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
	assert.Equal(t, "batteries[0].power_mw", resp.Error.Details["field"])
}

func TestSimulate_MalformedBodyRejected(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/v1/simulate", `{"series": `)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_REQUEST", resp.Error.Code)
}

func TestGetLedger_ReturnsStoredRun(t *testing.T) {
	router, _ := newTestRouter(t)

	body := `{
		"series": {"demand_mw": [10, 10], "renewable_mw": [2, 2], "interval_hours": 1},
		"fleet": {"batteries": [{"power_mw": 10, "capacity_mwh": 100, "initial_soc_mwh": 50}]}
	}`
	w := doJSON(router, http.MethodPost, "/api/v1/simulate", body)
	require.Equal(t, http.StatusOK, w.Code)

	var created models.SimulateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	w = doJSON(router, http.MethodGet, "/api/v1/simulate/"+created.ID+"/ledger", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var fetched models.SimulateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Len(t, fetched.Ledger, 2)
	assert.Equal(t, created.Summary, fetched.Summary)
}

func TestGetLedger_UnknownRun(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodGet, "/api/v1/simulate/run-999999/ledger", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "RUN_NOT_FOUND", resp.Error.Code)
}

func TestCompare_RunsEachVariation(t *testing.T) {
	router, _ := newTestRouter(t)

	body := `{
		"series": {"demand_mw": [30, 30], "renewable_mw": [0, 0], "interval_hours": 1},
		"base_fleet": {"batteries": [{"power_mw": 10, "capacity_mwh": 100, "initial_soc_mwh": 50}]},
		"variations": [
			{"name": "base"},
			{"name": "with-reserve", "fleet": {"reserves": [{"name": "peaker", "power_mw": 10}]}}
		]
	}`
	w := doJSON(router, http.MethodPost, "/api/v1/simulate/compare", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.CompareResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Comparison, 2)

	assert.Equal(t, "base", resp.Comparison[0].Name)
	require.NotNil(t, resp.Comparison[0].Summary)
	assert.InDelta(t, 40.0, resp.Comparison[0].Summary.TotalUnmetMWh, 1e-9)

	assert.Equal(t, "with-reserve", resp.Comparison[1].Name)
	require.NotNil(t, resp.Comparison[1].Summary)
	assert.InDelta(t, 20.0, resp.Comparison[1].Summary.TotalUnmetMWh, 1e-9)
	assert.InDelta(t, 20.0, resp.Comparison[1].Summary.ReserveEnergyMWh, 1e-9)
}

func TestCompare_InvalidVariationReportedNotDropped(t *testing.T) {
	router, _ := newTestRouter(t)

	body := `{
		"series": {"demand_mw": [30, 30], "renewable_mw": [0, 0], "interval_hours": 1},
		"base_fleet": {"batteries": [{"power_mw": 10, "capacity_mwh": 100, "initial_soc_mwh": 50}]},
		"variations": [
			{"name": "broken", "fleet": {"batteries": [{"power_mw": -5, "capacity_mwh": 100}]}},
			{"name": "ok"}
		]
	}`
	w := doJSON(router, http.MethodPost, "/api/v1/simulate/compare", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.CompareResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Comparison, 2, "a rejected variation still appears in the response")

	broken := resp.Comparison[0]
	assert.Equal(t, "broken", broken.Name)
	assert.Nil(t, broken.Summary)
	require.NotNil(t, broken.Error)
	assert.Equal(t, "INVALID_INPUT", broken.Error.Code)
	assert.Equal(t, "batteries[0].power_mw", broken.Error.Details["field"])

	ok := resp.Comparison[1]
	assert.Equal(t, "ok", ok.Name)
	require.NotNil(t, ok.Summary)
	assert.Nil(t, ok.Error)
}

func TestCompare_NoVariationsRejected(t *testing.T) {
	router, _ := newTestRouter(t)

	body := `{
		"series": {"demand_mw": [30], "renewable_mw": [0]},
		"base_fleet": {"batteries": [{"power_mw": 10, "capacity_mwh": 100}]},
		"variations": []
	}`
	w := doJSON(router, http.MethodPost, "/api/v1/simulate/compare", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRunStore_ExpiresEntries(t *testing.T) {
	store := NewRunStore(time.Millisecond)
	id := store.Put(&sim.Result{})

	_, ok := store.Get(id)
	assert.True(t, ok)

	time.Sleep(5 * time.Millisecond)
	_, ok = store.Get(id)
	assert.False(t, ok)

	// A later Put sweeps the expired entry out.
	store.Put(&sim.Result{})
	assert.Equal(t, 1, store.Len())
}
