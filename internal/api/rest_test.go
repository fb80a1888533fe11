package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/markusressel/i8kfans/internal/controller"
	"github.com/markusressel/i8kfans/internal/persistence"
	"github.com/markusressel/i8kfans/internal/policy"
	"github.com/markusressel/i8kfans/internal/sensors"
	"github.com/markusressel/i8kfans/internal/testingutils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockLoop struct {
	snapshot controller.Snapshot
}

func (l mockLoop) Run(ctx context.Context) error {
	return nil
}

func (l mockLoop) Cycle(ctx context.Context) error {
	return nil
}

func (l mockLoop) GetSnapshot() controller.Snapshot {
	return l.snapshot
}

func (l mockLoop) GetStatistics() controller.Statistics {
	return controller.Statistics{}
}

func (l mockLoop) GetThresholds() controller.Thresholds {
	return controller.Thresholds{
		Cpu: policy.ThresholdPair{Low: 40, High: 50},
		Gpu: policy.ThresholdPair{Low: 45, High: 53},
	}
}

var sensorStats = sensors.Stats{Last: 42, Min: 40, Max: 44, Avg: 42, Samples: 3}

var testDecision = policy.Decision{
	Cpu: policy.FanState{Temperature: 45, Current: policy.LevelOff, Target: policy.LevelMedium},
	Gpu: policy.FanState{Temperature: 40, Current: policy.LevelOff, Target: policy.LevelOff},
}

func request(t *testing.T, loop controller.ControlLoop, pers persistence.Persistence, path string) *httptest.ResponseRecorder {
	rest := CreateRestService(loop, pers, nil)
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	rest.ServeHTTP(rec, req)
	return rec
}

func TestAlive(t *testing.T) {
	// WHEN
	rec := request(t, mockLoop{}, nil, "/alive")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetFans(t *testing.T) {
	// GIVEN
	loop := mockLoop{snapshot: controller.Snapshot{Time: time.Now(), Decision: testDecision, Actuated: true}}

	// WHEN
	rec := request(t, loop, nil, "/fans")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var result fansResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Actuated)
	assert.Equal(t, testDecision.Cpu, result.Fans["cpu"])
	assert.Equal(t, testDecision.Gpu, result.Fans["gpu"])
}

func TestGetFans_NoCycleYet(t *testing.T) {
	// WHEN
	rec := request(t, mockLoop{}, nil, "/fans")

	// THEN
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetSensors(t *testing.T) {
	// GIVEN
	sensors.SensorMap.Set("cpu", &testingutils.MockSensor{ID: "cpu", Stats: sensorStats})
	sensors.SensorMap.Set("gpu", &testingutils.MockSensor{ID: "gpu", Stats: sensorStats})
	t.Cleanup(func() {
		sensors.SensorMap.Remove("cpu")
		sensors.SensorMap.Remove("gpu")
	})

	// WHEN
	rec := request(t, mockLoop{}, nil, "/sensors")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var result []sensorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Len(t, result, 2)
	assert.Equal(t, "cpu", result[0].ID)
	assert.Equal(t, "i8kctl", result[0].Config.Cmd.Exec)
	assert.Equal(t, 3, result[0].Stats.Samples)
	assert.Equal(t, "gpu", result[1].ID)
}

func TestGetSensor(t *testing.T) {
	// GIVEN
	sensors.SensorMap.Set("cpu", &testingutils.MockSensor{ID: "cpu", Stats: sensorStats})
	t.Cleanup(func() { sensors.SensorMap.Remove("cpu") })

	// WHEN
	rec := request(t, mockLoop{}, nil, "/sensors/cpu")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var result sensorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 42, result.Stats.Last)
}

func TestGetSensor_NotFound(t *testing.T) {
	// WHEN
	rec := request(t, mockLoop{}, nil, "/sensors/disk")

	// THEN
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "disk")
}

func TestGetPolicy(t *testing.T) {
	// WHEN
	rec := request(t, mockLoop{}, nil, "/policy")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var result controller.Thresholds
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, mockLoop{}.GetThresholds(), result)
}

func TestGetHistory(t *testing.T) {
	// GIVEN
	p := persistence.NewPersistence(filepath.Join(t.TempDir(), "i8kfans.db"))
	require.NoError(t, p.Init())
	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, p.SaveActuation(persistence.NewActuationRecord(start.Add(time.Duration(i)*time.Second), testDecision)))
	}

	// WHEN
	rec := request(t, mockLoop{}, p, "/history?limit=2")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var result []persistence.ActuationRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Len(t, result, 2)
	assert.Equal(t, "1", result[0].Cpu.Command)
}

func TestGetHistory_InvalidLimit(t *testing.T) {
	// WHEN
	rec := request(t, mockLoop{}, nil, "/history?limit=abc")

	// THEN
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetHistory_WithoutPersistence(t *testing.T) {
	// WHEN
	rec := request(t, mockLoop{}, nil, "/history")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestMetrics(t *testing.T) {
	// GIVEN
	registry := prometheus.NewRegistry()
	rest := CreateRestService(mockLoop{}, nil, registry)
	rest.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/alive", nil))

	// WHEN
	rec := httptest.NewRecorder()
	rest.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "i8kfans_api_requests_total")
}
