package fan

import (
	"github.com/markusressel/i8kfans/cmd/global"
	"github.com/markusressel/i8kfans/internal/configuration"
	"github.com/markusressel/i8kfans/internal/fans"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "fan",
	Short:            "Fan related commands",
	Long:             ``,
	TraverseChildren: true,
}

func getActuator() (fans.Actuator, error) {
	global.LoadConfig()
	return fans.NewActuator(configuration.CurrentConfig.Fans)
}
