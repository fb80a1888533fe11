package fan

import (
	"context"
	"fmt"

	"github.com/markusressel/i8kfans/internal/policy"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var levelCmd = &cobra.Command{
	Use:   "level [cpu gpu]",
	Short: "Get/Set the level of the cpu and gpu fan ([0..2], \"-\" keeps a fan unchanged)",
	Long: `Without arguments the current levels are printed as "<cpu> <gpu>".
With two arguments both fans are set in a single actuation, e.g.:

  i8kfans fan level 2 -`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 2 {
			return fmt.Errorf("expected no or two arguments, got %d", len(args))
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DisableOutput()

		actuator, err := getActuator()
		if err != nil {
			return err
		}
		ctx := context.Background()

		if len(args) <= 0 {
			cpu, gpu, err := actuator.GetLevels(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("%s %s\n", cpu, gpu)
			return nil
		}

		cpu, err := policy.ParseLevelCommand(args[0])
		if err != nil {
			return err
		}
		gpu, err := policy.ParseLevelCommand(args[1])
		if err != nil {
			return err
		}
		return actuator.SetLevels(ctx, cpu, gpu)
	},
}

func init() {
	Command.AddCommand(levelCmd)
}
