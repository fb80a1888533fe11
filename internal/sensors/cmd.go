package sensors

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/markusressel/i8kfans/internal/configuration"
	"github.com/markusressel/i8kfans/internal/util"
)

// CmdSensor runs an executable that prints a single temperature value, like "i8kctl temp".
type CmdSensor struct {
	Config configuration.SensorConfig `json:"configuration"`

	history
}

func (sensor *CmdSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor *CmdSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

func (sensor *CmdSensor) GetValue(ctx context.Context) (int, error) {
	conf := sensor.Config.Cmd
	result, err := util.SafeCmdExecution(ctx, conf.Exec, conf.Args, commandTimeout())
	if err != nil {
		return 0, fmt.Errorf("sensor %s: %w", sensor.GetId(), err)
	}

	temp, err := strconv.ParseFloat(result, 64)
	if err != nil {
		return 0, fmt.Errorf("sensor %s: unable to read temperature from output of %s: %w", sensor.GetId(), conf.Exec, err)
	}

	return int(math.Round(temp)), nil
}
