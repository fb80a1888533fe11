package configuration

import (
	"fmt"
	"strings"

	"github.com/markusressel/i8kfans/internal/ui"
	"github.com/markusressel/i8kfans/internal/util"
	"golang.org/x/exp/slices"
)

var supportedSensorTypes = []string{SensorTypeCmd, SensorTypeNvidiaSmi, SensorTypeFile, SensorTypeNvidia}

func Validate(configPath string) error {
	return validateConfig(&CurrentConfig, configPath)
}

func validateConfig(config *Configuration, path string) error {
	if config.Interval <= 0 {
		return fmt.Errorf("invalid interval %s, must be > 0", config.Interval)
	}
	if config.HistorySize < 0 {
		return fmt.Errorf("invalid historySize %d, must be >= 0", config.HistorySize)
	}
	if config.TempRollingWindowSize <= 0 {
		return fmt.Errorf("invalid tempRollingWindowSize %d, must be > 0", config.TempRollingWindowSize)
	}

	for _, fan := range []struct {
		id     string
		config FanPolicyConfig
	}{
		{FanCpu, config.Cpu},
		{FanGpu, config.Gpu},
	} {
		if err := fan.config.Thresholds.Validate(); err != nil {
			return fmt.Errorf("fan %s: %w", fan.id, err)
		}
		if err := validateSensor(fan.id, fan.config.Sensor); err != nil {
			return err
		}
	}

	if err := validateFans(config.Fans); err != nil {
		return err
	}

	if err := validateRequirements(config.Requirements); err != nil {
		return err
	}

	if len(path) > 0 && containsCmdCollaborators(config) {
		if _, err := util.CheckFilePermissionsForExecution(path); err != nil {
			return fmt.Errorf("config file '%s' has invalid permissions: %s", path, err)
		}
	}

	return nil
}

// config files referencing executables must not be writable by anyone but root,
// since i8kfans runs them as root
func containsCmdCollaborators(config *Configuration) bool {
	return config.Cpu.Sensor.Cmd != nil || config.Gpu.Sensor.Cmd != nil ||
		config.Cpu.Sensor.NvidiaSmi != nil || config.Gpu.Sensor.NvidiaSmi != nil ||
		config.Fans.Cmd != nil
}

func validateSensor(fanId string, sensorConfig SensorConfig) error {
	types := sensorConfig.Types()
	if len(types) > 1 {
		return fmt.Errorf("sensor %s: only one sensor type can be used per sensor definition block, found: %s", fanId, strings.Join(types, ", "))
	}
	if len(types) <= 0 {
		return fmt.Errorf("sensor %s: sub-configuration for sensor is missing, use one of: %s", fanId, strings.Join(supportedSensorTypes, " | "))
	}
	if err := validateExec("sensor "+fanId, sensorConfig.Cmd); err != nil {
		return err
	}
	if err := validateExec("sensor "+fanId, sensorConfig.NvidiaSmi); err != nil {
		return err
	}

	if sensorConfig.File != nil {
		if len(sensorConfig.File.Path) <= 0 {
			return fmt.Errorf("sensor %s: no file path provided", fanId)
		}
		if sensorConfig.File.Divisor < 0 {
			return fmt.Errorf("sensor %s: invalid divisor %d, must be >= 0", fanId, sensorConfig.File.Divisor)
		}
	}

	if sensorConfig.Nvidia != nil && sensorConfig.Nvidia.Index < 0 {
		return fmt.Errorf("sensor %s: invalid nvidia device index %d, must be >= 0", fanId, sensorConfig.Nvidia.Index)
	}

	return nil
}

func validateExec(owner string, config *ExecConfig) error {
	if config == nil {
		return nil
	}
	if len(config.Exec) <= 0 {
		return fmt.Errorf("%s: executable is missing", owner)
	}
	return nil
}

func validateFans(config FansConfig) error {
	if config.Cmd != nil && config.File != nil {
		return fmt.Errorf("fans: only one fan type can be used, found: cmd, file")
	}
	if config.Cmd == nil && config.File == nil {
		return fmt.Errorf("fans: sub-configuration for fans is missing, use one of: cmd | file")
	}

	if config.Cmd != nil {
		if config.Cmd.GetLevels == nil {
			return fmt.Errorf("fans: missing getLevels configuration")
		}
		if err := validateExec("fans getLevels", config.Cmd.GetLevels); err != nil {
			return err
		}
		if config.Cmd.SetLevels == nil {
			return fmt.Errorf("fans: missing setLevels configuration")
		}
		if err := validateExec("fans setLevels", config.Cmd.SetLevels); err != nil {
			return err
		}

		args := strings.Join(config.Cmd.SetLevels.Args, " ")
		for _, placeholder := range []string{PlaceholderCpu, PlaceholderGpu} {
			if !strings.Contains(args, "%"+placeholder+"%") {
				ui.Warning("Fans: setLevels args do not contain the %%%s%% placeholder", placeholder)
			}
		}
	}

	if config.File != nil && len(config.File.Path) <= 0 {
		return fmt.Errorf("fans: no file path provided")
	}

	return nil
}

func validateRequirements(config RequirementsConfig) error {
	var seen []string
	for _, executable := range config.Executables {
		if len(strings.TrimSpace(executable)) <= 0 {
			return fmt.Errorf("requirements: empty executable name")
		}
		if slices.Contains(seen, executable) {
			ui.Warning("Requirements: executable %s is listed more than once", executable)
		}
		seen = append(seen, executable)
	}
	return nil
}
