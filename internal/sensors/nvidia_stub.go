//go:build disable_nvml

package sensors

import (
	"errors"

	"github.com/markusressel/i8kfans/internal/configuration"
)

const IsNvmlSupported = false

func CreateNvidiaSensor(config configuration.SensorConfig) (Sensor, error) {
	return nil, errors.New("this version of i8kfans was built without NVIDIA (nvml) support, use the nvidiaSmi sensor instead")
}

// CleanupAtExit does nothing if i8kfans was compiled without nvml support
func CleanupAtExit() {
}
