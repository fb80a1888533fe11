package configuration

import "github.com/markusressel/i8kfans/internal/policy"

const (
	FanCpu = "cpu"
	FanGpu = "gpu"
)

// FanPolicyConfig holds everything needed to decide the speed of a single fan.
type FanPolicyConfig struct {
	Thresholds policy.ThresholdPair `json:"thresholds"`
	Sensor     SensorConfig         `json:"sensor"`
}

type RequirementsConfig struct {
	Enabled DefaultTrueBool `json:"enabled"`
	// Executables that have to be available in $PATH
	Executables []string `json:"executables"`
	// ProcEntry is a path that only exists if the kernel driver is loaded
	ProcEntry string `json:"procEntry"`
}
