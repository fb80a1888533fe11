package sensors

import (
	"context"
	"fmt"

	"github.com/markusressel/i8kfans/internal/configuration"
	"github.com/markusressel/i8kfans/internal/util"
)

// FileSensor reads an integer temperature from a file, e.g. a sysfs thermal zone.
type FileSensor struct {
	Config configuration.SensorConfig `json:"configuration"`

	history
}

func (sensor *FileSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor *FileSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

func (sensor *FileSensor) GetValue(ctx context.Context) (int, error) {
	filePath, err := util.ExpandHome(sensor.Config.File.Path)
	if err != nil {
		return 0, err
	}

	value, err := util.ReadIntFromFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("sensor %s: unable to read int from file %s: %w", sensor.GetId(), filePath, err)
	}

	if divisor := sensor.Config.File.Divisor; divisor > 0 {
		value /= divisor
	}
	return value, nil
}
