package sensors

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/markusressel/i8kfans/internal/configuration"
	"github.com/markusressel/i8kfans/internal/util"
)

// NvidiaSmiSensor reads the GPU temperature from the report of
// "nvidia-smi -q -d TEMPERATURE".
type NvidiaSmiSensor struct {
	Config configuration.SensorConfig `json:"configuration"`

	history
}

func (sensor *NvidiaSmiSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor *NvidiaSmiSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

func (sensor *NvidiaSmiSensor) GetValue(ctx context.Context) (int, error) {
	conf := sensor.Config.NvidiaSmi
	output, err := util.SafeCmdExecution(ctx, conf.Exec, conf.Args, commandTimeout())
	if err != nil {
		return 0, fmt.Errorf("sensor %s: %w", sensor.GetId(), err)
	}

	temp, err := ParseNvidiaSmiTemperature(output)
	if err != nil {
		return 0, fmt.Errorf("sensor %s: %w", sensor.GetId(), err)
	}
	return temp, nil
}

// ParseNvidiaSmiTemperature returns the last purely numeric token of the given report,
// which is the current GPU temperature in the TEMPERATURE section.
func ParseNvidiaSmiTemperature(output string) (int, error) {
	fields := strings.Fields(output)
	for i := len(fields) - 1; i >= 0; i-- {
		if !isDigits(fields[i]) {
			continue
		}
		return strconv.Atoi(fields[i])
	}
	return 0, ErrNoTemperature
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}
