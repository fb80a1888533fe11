package testingutils

import (
	"context"
	"sync"
	"time"

	"github.com/markusressel/i8kfans/internal/configuration"
	"github.com/markusressel/i8kfans/internal/policy"
	"github.com/markusressel/i8kfans/internal/sensors"
)

// MockSensor returns Value (or Err) and keeps every recorded value.
type MockSensor struct {
	ID    string
	Value int
	Err   error
	Stats sensors.Stats

	mu       sync.Mutex
	Recorded []int
}

func (sensor *MockSensor) GetId() string {
	return sensor.ID
}

func (sensor *MockSensor) GetConfig() configuration.SensorConfig {
	return configuration.SensorConfig{
		ID:  sensor.ID,
		Cmd: &configuration.ExecConfig{Exec: "i8kctl", Args: []string{"temp"}},
	}
}

func (sensor *MockSensor) GetValue(ctx context.Context) (int, error) {
	return sensor.Value, sensor.Err
}

func (sensor *MockSensor) Record(value int) {
	sensor.mu.Lock()
	defer sensor.mu.Unlock()
	sensor.Recorded = append(sensor.Recorded, value)
}

// GetStats returns Stats if set, otherwise only the number of recorded values
func (sensor *MockSensor) GetStats() sensors.Stats {
	sensor.mu.Lock()
	defer sensor.mu.Unlock()
	if sensor.Stats.Samples > 0 {
		return sensor.Stats
	}
	return sensors.Stats{Samples: len(sensor.Recorded)}
}

type LevelCall struct {
	Cpu policy.LevelCommand
	Gpu policy.LevelCommand
}

// MockActuator applies commands to Cpu and Gpu and keeps every call.
type MockActuator struct {
	Cpu    policy.SpeedLevel
	Gpu    policy.SpeedLevel
	GetErr error
	SetErr error
	// SetDelay makes SetLevels take this long, unless ctx is done first
	SetDelay time.Duration
	Calls    []LevelCall
}

func (a *MockActuator) GetLevels(ctx context.Context) (policy.SpeedLevel, policy.SpeedLevel, error) {
	return a.Cpu, a.Gpu, a.GetErr
}

func (a *MockActuator) SetLevels(ctx context.Context, cpu policy.LevelCommand, gpu policy.LevelCommand) error {
	a.Calls = append(a.Calls, LevelCall{Cpu: cpu, Gpu: gpu})
	if a.SetDelay > 0 {
		select {
		case <-time.After(a.SetDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if a.SetErr != nil {
		return a.SetErr
	}
	if level, ok := cpu.Level(); ok {
		a.Cpu = level
	}
	if level, ok := gpu.Level(); ok {
		a.Gpu = level
	}
	return nil
}

func (a *MockActuator) GetConfig() configuration.FansConfig {
	return configuration.FansConfig{}
}
