package configuration

// SensorConfig describes where the temperature of one fan's component comes from.
// Exactly one of the sub-configurations has to be set.
type SensorConfig struct {
	// ID is not part of the config file, it is the id of the fan this sensor belongs to
	ID string `json:"id"`

	Cmd       *ExecConfig         `json:"cmd,omitempty"`
	NvidiaSmi *ExecConfig         `json:"nvidiaSmi,omitempty"`
	File      *FileSensorConfig   `json:"file,omitempty"`
	Nvidia    *NvidiaSensorConfig `json:"nvidia,omitempty"`
}

const (
	SensorTypeCmd       = "cmd"
	SensorTypeNvidiaSmi = "nvidiaSmi"
	SensorTypeFile      = "file"
	SensorTypeNvidia    = "nvidia"
)

// Types returns the names of all sub-configurations that are set.
func (c SensorConfig) Types() []string {
	var types []string
	if c.Cmd != nil {
		types = append(types, SensorTypeCmd)
	}
	if c.NvidiaSmi != nil {
		types = append(types, SensorTypeNvidiaSmi)
	}
	if c.File != nil {
		types = append(types, SensorTypeFile)
	}
	if c.Nvidia != nil {
		types = append(types, SensorTypeNvidia)
	}
	return types
}

type ExecConfig struct {
	Exec string   `json:"exec"`
	Args []string `json:"args"`
}

type FileSensorConfig struct {
	Path string `json:"path"`
	// Divisor is applied to the raw value, e.g. 1000 for sysfs millidegree files
	Divisor int `json:"divisor"`
}

type NvidiaSensorConfig struct {
	// Index of the GPU as enumerated by NVML
	Index int `json:"index"`
}
