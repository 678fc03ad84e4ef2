/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridhawk/common/dto"
	"gridhawk/internal/alerts"
	"gridhawk/internal/features"
	"gridhawk/internal/ml"
	"gridhawk/internal/scoring"
	dbmocks "gridhawk/mocks/db"
)

type testHarness struct {
	echo     *echo.Echo
	dbClient *dbmocks.FakeAlertDb
	registry *dbmocks.FakeMeterRegistry
}

// theft controls whether the fixed-output model flags every meter
func newTestHarness(t *testing.T, theft bool) *testHarness {
	t.Helper()

	intercept := -1.927
	if theft {
		intercept = 0.9445
	}
	columns := []string{"consumption", "meter_cv"}
	artifact := &ml.Artifact{
		Model: ml.ModelSpec{
			Type:         ml.ModelTypeLogistic,
			Intercept:    intercept,
			Coefficients: make([]float64, len(columns)),
		},
		Scaler: ml.ScalerSpec{
			Mean:  make([]float64, len(columns)),
			Scale: []float64{1, 1},
		},
		FeatureColumns: columns,
		Metadata:       ml.ArtifactMetadata{ModelVersion: "test.1"},
	}

	lc := logger.NewMockClient()
	dbClient := dbmocks.NewFakeAlertDb()
	meterRegistry := dbmocks.NewFakeMeterRegistry()
	alertService := alerts.NewAlertService(dbClient, meterRegistry, nil, nil, lc)
	scoringService := scoring.NewScoringService(
		features.NewEngine(lc),
		ml.NewScorer(artifact, lc),
		alertService,
		nil,
		lc,
		time.Minute,
		2,
	)

	e := echo.New()
	NewRouter(e, scoringService, alertService, meterRegistry, artifact, nil, lc).AddRoutes()

	return &testHarness{echo: e, dbClient: dbClient, registry: meterRegistry}
}

func (h *testHarness) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	h.echo.ServeHTTP(rec, req)
	return rec
}

const predictionBody = `{
  "meter_id": "MTR-001",
  "consumption_data": [
    {"date": "2024-01-01", "consumption": 1500},
    {"date": "2024-01-02", "consumption": 1450},
    {"date": "2024-01-03", "consumption": 1600}
  ]
}`

func TestPredictSingle(t *testing.T) {
	h := newTestHarness(t, false)

	rec := h.do(http.MethodPost, "/api/v1/predict/single", predictionBody)
	require.Equal(t, http.StatusOK, rec.Code)

	var response dto.PredictionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "MTR-001", response.MeterID)
	assert.Equal(t, dto.RiskLevelLow, response.RiskLevel)
	assert.InDelta(t, 0.1270, response.RiskScore, 0.001)
	assert.False(t, response.IsTheft)

	assert.NotEmpty(t, rec.Header().Get(CorrelationHeader))
}

func TestPredictSingle_BadPayload(t *testing.T) {
	h := newTestHarness(t, false)

	rec := h.do(http.MethodPost, "/api/v1/predict/single", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPredictSingle_MissingMeterId(t *testing.T) {
	h := newTestHarness(t, false)

	rec := h.do(http.MethodPost, "/api/v1/predict/single", `{"consumption_data":[{"date":"2024-01-01","consumption":10}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPredictSingle_EmptySeries(t *testing.T) {
	h := newTestHarness(t, false)

	rec := h.do(http.MethodPost, "/api/v1/predict/single", `{"meter_id":"MTR-001","consumption_data":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPredictBatch(t *testing.T) {
	h := newTestHarness(t, true)

	body := `{"data": [
	  {"meter_id": "MTR-001", "date": "2024-01-01", "consumption": 100},
	  {"meter_id": "MTR-002", "date": "2024-01-01", "consumption": 200}
	]}`
	rec := h.do(http.MethodPost, "/api/v1/predict/batch", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var response dto.BatchPredictionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, 2, response.TotalMeters)
	assert.Equal(t, 2, response.SuccessfulPredictions)
	assert.Equal(t, 2, response.AlertsCreated)
}

func TestAlertLifecycleOverHTTP(t *testing.T) {
	h := newTestHarness(t, true)

	rec := h.do(http.MethodPost, "/api/v1/predict/single", predictionBody)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = h.do(http.MethodGet, "/api/v1/alerts?status=pending", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var pending []dto.Alert
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pending))
	require.Len(t, pending, 1)
	alertId := pending[0].Id

	rec = h.do(http.MethodGet, "/api/v1/alerts/"+alertId, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = h.do(http.MethodPost, "/api/v1/alerts/"+alertId+"/confirm", `{"notes":"crew verified bypass"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var confirmed dto.Alert
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &confirmed))
	assert.Equal(t, dto.AlertStatusConfirmed, confirmed.Status)
	assert.Equal(t, "crew verified bypass", confirmed.InvestigationNotes)

	// terminal alerts cannot be dispositioned again
	rec = h.do(http.MethodPost, "/api/v1/alerts/"+alertId+"/reject", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = h.do(http.MethodGet, "/api/v1/alerts/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var summary dto.AlertSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 1, summary.TotalAlerts)
	assert.Equal(t, 1, summary.ConfirmedAlerts)
}

func TestGetAlert_NotFound(t *testing.T) {
	h := newTestHarness(t, false)

	rec := h.do(http.MethodGet, "/api/v1/alerts/no-such-id", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetAlerts_InvalidFilter(t *testing.T) {
	h := newTestHarness(t, false)

	rec := h.do(http.MethodGet, "/api/v1/alerts?status=bogus", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMeterEndpoints(t *testing.T) {
	h := newTestHarness(t, false)

	meterBody := `{"meter_id":"MTR-010","customer_name":"Acme Mills","area":"Sector-4","monthly_avg_kwh":900,"tariff_per_kwh":7.25}`
	rec := h.do(http.MethodPost, "/api/v1/meters", meterBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = h.do(http.MethodPost, "/api/v1/meters", meterBody)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = h.do(http.MethodPost, "/api/v1/meters", `{"customer_name":"No Id"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = h.do(http.MethodGet, "/api/v1/meters/MTR-010", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var meter dto.Meter
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &meter))
	assert.Equal(t, "Acme Mills", meter.CustomerName)

	rec = h.do(http.MethodGet, "/api/v1/meters/MTR-404", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = h.do(http.MethodGet, "/api/v1/meters?area=Sector-4", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var meters []dto.Meter
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &meters))
	assert.Len(t, meters, 1)
}

func TestModelInfo(t *testing.T) {
	h := newTestHarness(t, false)

	rec := h.do(http.MethodGet, "/api/v1/model/info", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var info dto.ModelInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, ml.ModelTypeLogistic, info.ModelType)
	assert.Equal(t, 2, info.FeatureCount)
	assert.Equal(t, 0.7, info.Thresholds.Critical)
}

func TestHealth(t *testing.T) {
	h := newTestHarness(t, false)

	rec := h.do(http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.Contains(t, rec.Body.String(), `"model_loaded":true`)
}
