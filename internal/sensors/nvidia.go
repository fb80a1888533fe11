//go:build !disable_nvml

package sensors

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
	"github.com/markusressel/i8kfans/internal/configuration"
)

const IsNvmlSupported = true

var (
	nvmlMu          sync.Mutex
	nvmlInitialized bool
)

// NvidiaSensor reads the GPU temperature through NVML, without spawning nvidia-smi.
type NvidiaSensor struct {
	Config configuration.SensorConfig `json:"configuration"`

	device nvml.Device

	history
}

func CreateNvidiaSensor(config configuration.SensorConfig) (Sensor, error) {
	sensor := &NvidiaSensor{
		Config: config,
	}
	// fail early instead of returning a sensor that can never be read
	if err := sensor.init(); err != nil {
		return nil, err
	}
	return sensor, nil
}

func (sensor *NvidiaSensor) init() error {
	if err := initNvml(); err != nil {
		return err
	}

	index := sensor.Config.Nvidia.Index
	device, ret := nvml.DeviceGetHandleByIndex(index)
	if ret != nvml.SUCCESS {
		return fmt.Errorf("couldn't get handle for nvidia device %d: %s", index, nvml.ErrorString(ret))
	}
	sensor.device = device

	if _, ret = device.GetTemperature(nvml.TEMPERATURE_GPU); ret != nvml.SUCCESS {
		return fmt.Errorf("nvidia device %d doesn't support reading the temperature: %s", index, nvml.ErrorString(ret))
	}
	return nil
}

func (sensor *NvidiaSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor *NvidiaSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

func (sensor *NvidiaSensor) GetValue(ctx context.Context) (int, error) {
	temp, ret := sensor.device.GetTemperature(nvml.TEMPERATURE_GPU)
	if ret != nvml.SUCCESS {
		return 0, fmt.Errorf("sensor %s: %w", sensor.GetId(), errors.New(nvml.ErrorString(ret)))
	}
	return int(temp), nil
}

func initNvml() error {
	nvmlMu.Lock()
	defer nvmlMu.Unlock()

	if nvmlInitialized {
		return nil
	}
	if ret := nvml.Init(); ret != nvml.SUCCESS {
		return fmt.Errorf("unable to initialize nvml: %s", nvml.ErrorString(ret))
	}
	nvmlInitialized = true
	return nil
}

// CleanupAtExit shuts down nvml, if it was initialized. To be called at the end of main().
func CleanupAtExit() {
	nvmlMu.Lock()
	defer nvmlMu.Unlock()

	if nvmlInitialized {
		// nothing we could do about an error here
		_ = nvml.Shutdown()
		nvmlInitialized = false
	}
}
