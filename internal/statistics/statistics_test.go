package statistics

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/markusressel/i8kfans/internal/controller"
	"github.com/markusressel/i8kfans/internal/policy"
	"github.com/markusressel/i8kfans/internal/sensors"
	"github.com/markusressel/i8kfans/internal/testingutils"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

type mockLoop struct {
	snapshot   controller.Snapshot
	statistics controller.Statistics
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
	return l.statistics
}

func (l mockLoop) GetThresholds() controller.Thresholds {
	return controller.Thresholds{}
}

func TestControllerCollector(t *testing.T) {
	// GIVEN
	collector := NewControllerCollector(mockLoop{
		statistics: controller.Statistics{Cycles: 10, SkippedCycles: 1, Actuations: 3, FailedActuations: 2},
	})

	// WHEN
	expected := `
# HELP i8kfans_controller_actuations_total Number of fan level changes issued
# TYPE i8kfans_controller_actuations_total counter
i8kfans_controller_actuations_total 3
# HELP i8kfans_controller_skipped_cycles_total Number of control cycles skipped because a temperature or fan level could not be read
# TYPE i8kfans_controller_skipped_cycles_total counter
i8kfans_controller_skipped_cycles_total 1
`
	err := testutil.CollectAndCompare(collector, strings.NewReader(expected),
		"i8kfans_controller_actuations_total", "i8kfans_controller_skipped_cycles_total")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 4, testutil.CollectAndCount(collector))
}

func TestFanCollector(t *testing.T) {
	// GIVEN
	loop := mockLoop{
		snapshot: controller.Snapshot{
			Time: time.Now(),
			Decision: policy.Decision{
				Cpu: policy.FanState{Temperature: 45, Current: policy.LevelOff, Target: policy.LevelMedium},
				Gpu: policy.FanState{Temperature: 55, Current: policy.LevelMax, Target: policy.LevelMax},
			},
		},
	}
	collector := NewFanCollector(loop)

	// WHEN
	expected := `
# HELP i8kfans_fan_target_level Level the fan was set to in the last control cycle
# TYPE i8kfans_fan_target_level gauge
i8kfans_fan_target_level{fan="cpu"} 1
i8kfans_fan_target_level{fan="gpu"} 2
`
	err := testutil.CollectAndCompare(collector, strings.NewReader(expected), "i8kfans_fan_target_level")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 4, testutil.CollectAndCount(collector))
}

func TestFanCollector_NoCycleYet(t *testing.T) {
	// GIVEN
	collector := NewFanCollector(mockLoop{})

	// THEN
	assert.Equal(t, 0, testutil.CollectAndCount(collector))
}

func TestSensorCollector(t *testing.T) {
	// GIVEN
	collector := NewSensorCollector([]sensors.Sensor{
		&testingutils.MockSensor{ID: "cpu", Stats: sensors.Stats{Last: 47, Avg: 45.5, Samples: 2}},
		&testingutils.MockSensor{ID: "gpu"},
	})

	// WHEN
	expected := `
# HELP i8kfans_sensor_temperature Last temperature read by the control loop in °C
# TYPE i8kfans_sensor_temperature gauge
i8kfans_sensor_temperature{fan="cpu"} 47
`
	err := testutil.CollectAndCompare(collector, strings.NewReader(expected), "i8kfans_sensor_temperature")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 2, testutil.CollectAndCount(collector))
}
