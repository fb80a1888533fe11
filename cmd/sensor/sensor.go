package sensor

import (
	"context"
	"fmt"

	"github.com/markusressel/i8kfans/cmd/global"
	"github.com/markusressel/i8kfans/internal/configuration"
	"github.com/markusressel/i8kfans/internal/sensors"
	"github.com/markusressel/i8kfans/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var sensorId string

var Command = &cobra.Command{
	Use:              "sensor",
	Short:            "Print the current temperature of the cpu or gpu sensor",
	Long:             ``,
	TraverseChildren: true,
	Args:             cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DisableOutput()

		sensor, err := getSensor(sensorId)
		if err != nil {
			return err
		}

		value, err := sensor.GetValue(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("%d\n", value)
		return nil
	},
}

func init() {
	Command.PersistentFlags().StringVarP(
		&sensorId,
		"id", "i",
		"",
		"Sensor ID, one of: cpu | gpu",
	)
	_ = Command.MarkPersistentFlagRequired("id")
}

func getSensor(id string) (sensors.Sensor, error) {
	global.LoadConfig()

	var config configuration.SensorConfig
	switch id {
	case configuration.FanCpu:
		config = configuration.CurrentConfig.Cpu.Sensor
	case configuration.FanGpu:
		config = configuration.CurrentConfig.Gpu.Sensor
	default:
		return nil, fmt.Errorf("no sensor with id found: %s, options: [%s %s]", id, configuration.FanCpu, configuration.FanGpu)
	}

	ui.Debug("Sensor %s uses %v", id, config.Types())
	return sensors.NewSensor(config)
}
