package fans

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/markusressel/i8kfans/internal/configuration"
	"github.com/markusressel/i8kfans/internal/policy"
)

var ErrInvalidLevel = errors.New("invalid fan level")

const defaultCommandTimeout = 2 * time.Second

// Actuator reads and changes the speed levels of the cpu and gpu fan.
// Both fans are always handled together, like the i8k interface does.
type Actuator interface {
	// GetLevels returns the current level of the cpu and gpu fan
	GetLevels(ctx context.Context) (cpu policy.SpeedLevel, gpu policy.SpeedLevel, err error)
	// SetLevels applies both commands in a single actuation, Keep leaves a fan unchanged
	SetLevels(ctx context.Context, cpu policy.LevelCommand, gpu policy.LevelCommand) error

	GetConfig() configuration.FansConfig
}

func NewActuator(config configuration.FansConfig) (Actuator, error) {
	if config.Cmd != nil {
		return &CmdFans{
			Config: config,
		}, nil
	}

	if config.File != nil {
		return &FileFans{
			Config: config,
		}, nil
	}

	return nil, fmt.Errorf("no matching fan type in fans configuration")
}

// ParseLevels parses the "<cpu> <gpu>" form printed by i8kfan.
func ParseLevels(output string) (cpu policy.SpeedLevel, gpu policy.SpeedLevel, err error) {
	fields := strings.Fields(output)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("%w: expected two levels, got %q", ErrInvalidLevel, output)
	}
	cpu, err = parseLevel(fields[0])
	if err != nil {
		return 0, 0, err
	}
	gpu, err = parseLevel(fields[1])
	if err != nil {
		return 0, 0, err
	}
	return cpu, gpu, nil
}

func parseLevel(s string) (policy.SpeedLevel, error) {
	value, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
	level := policy.SpeedLevel(value)
	if !level.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidLevel, value)
	}
	return level, nil
}

func commandTimeout() time.Duration {
	timeout := configuration.CurrentConfig.CommandTimeout
	if timeout <= 0 {
		return defaultCommandTimeout
	}
	return timeout
}
