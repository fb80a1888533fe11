package sensors

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/asecurityteam/rolling"
	"github.com/markusressel/i8kfans/internal/configuration"
	"github.com/markusressel/i8kfans/internal/util"
	cmap "github.com/orcaman/concurrent-map/v2"
)

var (
	// SensorMap holds the sensors of both fans, keyed by fan id
	SensorMap = cmap.New[Sensor]()

	ErrNoTemperature = errors.New("no temperature value found")
)

const defaultCommandTimeout = 2 * time.Second

type Sensor interface {
	GetId() string

	GetConfig() configuration.SensorConfig

	// GetValue returns the current temperature of this sensor
	GetValue(ctx context.Context) (int, error)

	// Record adds a successfully read temperature to the history of this sensor
	Record(value int)
	// GetStats returns statistics about the recently recorded temperatures
	GetStats() Stats
}

// Stats summarizes the recorded temperatures of a sensor.
type Stats struct {
	Last    int     `json:"last"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Avg     float64 `json:"avg"`
	Samples int     `json:"samples"`
}

func NewSensor(config configuration.SensorConfig) (Sensor, error) {
	if config.Cmd != nil {
		return &CmdSensor{
			Config: config,
		}, nil
	}

	if config.NvidiaSmi != nil {
		return &NvidiaSmiSensor{
			Config: config,
		}, nil
	}

	if config.File != nil {
		return &FileSensor{
			Config: config,
		}, nil
	}

	if config.Nvidia != nil {
		return CreateNvidiaSensor(config)
	}

	return nil, fmt.Errorf("no matching sensor type for sensor: %s", config.ID)
}

// history is embedded by all sensors to track recent readings
type history struct {
	mu      sync.RWMutex
	window  *rolling.PointPolicy
	last    int
	samples int
}

func (h *history) Record(value int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	size := windowSize()
	if h.window == nil {
		h.window = util.CreateRollingWindow(size)
		// avoid the empty window skewing min/avg
		util.FillWindow(h.window, size, float64(value))
	} else {
		h.window.Append(float64(value))
	}
	h.last = value
	h.samples++
}

func (h *history) GetStats() Stats {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.window == nil {
		return Stats{}
	}
	return Stats{
		Last:    h.last,
		Min:     util.GetWindowMin(h.window),
		Max:     util.GetWindowMax(h.window),
		Avg:     util.GetWindowAvg(h.window),
		Samples: h.samples,
	}
}

func windowSize() int {
	size := configuration.CurrentConfig.TempRollingWindowSize
	if size <= 0 {
		return 1
	}
	return size
}

func commandTimeout() time.Duration {
	timeout := configuration.CurrentConfig.CommandTimeout
	if timeout <= 0 {
		return defaultCommandTimeout
	}
	return timeout
}
