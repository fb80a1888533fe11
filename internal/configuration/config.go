package configuration

import (
	"os"
	"time"

	"github.com/markusressel/i8kfans/internal/policy"
	"github.com/markusressel/i8kfans/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

type Configuration struct {
	DbPath      string `json:"dbPath"`
	HistorySize int    `json:"historySize"`

	// Interval between two control cycles
	Interval time.Duration `json:"interval"`
	// Timeout for each invocation of an external program
	CommandTimeout time.Duration `json:"commandTimeout"`

	TempRollingWindowSize int `json:"tempRollingWindowSize"`

	Cpu  FanPolicyConfig `json:"cpu"`
	Gpu  FanPolicyConfig `json:"gpu"`
	Fans FansConfig      `json:"fans"`

	Requirements RequirementsConfig `json:"requirements"`

	Statistics StatisticsConfig `json:"statistics"`
	Api        ApiConfig        `json:"api"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("i8kfans")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/i8kfans/")
	}

	viper.SetEnvPrefix("i8kfans")
	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("dbPath", "/etc/i8kfans/i8kfans.db")
	viper.SetDefault("historySize", 500)
	viper.SetDefault("interval", 1*time.Second)
	viper.SetDefault("commandTimeout", 2*time.Second)
	viper.SetDefault("tempRollingWindowSize", 60)

	viper.SetDefault("cpu.thresholds", []int{40, 50})
	viper.SetDefault("gpu.thresholds", []int{45, 53})

	viper.SetDefault("requirements.procEntry", "/proc/i8k")

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9000)

	viper.SetDefault("api.enabled", false)
	viper.SetDefault("api.host", "localhost")
	viper.SetDefault("api.port", 9001)
}

// DetectAndReadConfigFile reads the config file, if one exists, and returns its path.
// Running without a config file is fine, the defaults match a stock i8k setup.
func DetectAndReadConfigFile() string {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			ui.Fatal("Error reading config file, %s", err)
		}
		ui.Warning("No config file found, using default values")
	}
	return viper.ConfigFileUsed()
}

func LoadConfig() {
	err := viper.Unmarshal(&CurrentConfig, viper.DecodeHook(decodeHook()))
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
	applyDefaultCollaborators(&CurrentConfig)
}

func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		ThresholdPairHookFunc(),
		DefaultTrueBoolHookFunc(),
	)
}

// applyDefaultCollaborators fills in the i8k tools for every collaborator
// that was not configured explicitly.
func applyDefaultCollaborators(config *Configuration) {
	config.Cpu.Sensor.ID = FanCpu
	config.Gpu.Sensor.ID = FanGpu

	if len(config.Cpu.Sensor.Types()) == 0 {
		config.Cpu.Sensor.Cmd = &ExecConfig{
			Exec: "i8kctl",
			Args: []string{"temp"},
		}
	}
	if len(config.Gpu.Sensor.Types()) == 0 {
		config.Gpu.Sensor.NvidiaSmi = &ExecConfig{
			Exec: "nvidia-smi",
			Args: []string{"-q", "-d", "TEMPERATURE"},
		}
	}

	if config.Fans.Cmd == nil && config.Fans.File == nil {
		config.Fans.Cmd = &CmdFansConfig{
			GetLevels: &ExecConfig{Exec: "i8kfan"},
			SetLevels: &ExecConfig{
				Exec: "i8kfan",
				Args: []string{"%" + PlaceholderCpu + "%", "%" + PlaceholderGpu + "%"},
			},
		}
	}

	if config.Requirements.Executables == nil {
		config.Requirements.Executables = requiredExecutables(config)
	}
}

// requiredExecutables lists every executable the configured collaborators run, without duplicates
func requiredExecutables(config *Configuration) []string {
	var result []string
	add := func(exec *ExecConfig) {
		if exec != nil && len(exec.Exec) > 0 && !slices.Contains(result, exec.Exec) {
			result = append(result, exec.Exec)
		}
	}

	for _, sensor := range []SensorConfig{config.Cpu.Sensor, config.Gpu.Sensor} {
		add(sensor.Cmd)
		add(sensor.NvidiaSmi)
	}
	if config.Fans.Cmd != nil {
		add(config.Fans.Cmd.GetLevels)
		add(config.Fans.Cmd.SetLevels)
	}
	return result
}

// Thresholds returns the threshold pair configured for the given fan.
func (c *Configuration) Thresholds(fanId string) policy.ThresholdPair {
	if fanId == FanGpu {
		return c.Gpu.Thresholds
	}
	return c.Cpu.Thresholds
}
