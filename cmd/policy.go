package cmd

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/markusressel/i8kfans/cmd/global"
	"github.com/markusressel/i8kfans/internal/configuration"
	"github.com/markusressel/i8kfans/internal/policy"
	"github.com/markusressel/i8kfans/internal/ui"
	"github.com/spf13/cobra"
)

// temperatures shown around the thresholds in the chart
const chartMargin = 10

var evaluateTemps []int

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Print the thresholds of both fans and the resulting fan levels",
	Long: `Prints the thresholds of both fans as a table and the fan level
over temperature as a chart.

Use --temp <cpu>,<gpu> to see which levels the control loop would
choose for the given temperatures.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		global.LoadConfig()
		config := configuration.CurrentConfig

		if len(evaluateTemps) > 0 {
			return printEvaluation(config, evaluateTemps)
		}

		for idx, fanId := range []string{configuration.FanCpu, configuration.FanGpu} {
			if idx > 0 {
				ui.Printfln("")
			}
			thresholds := config.Thresholds(fanId)

			ui.Printfln(fanId)
			tab, err := global.RenderTable([]string{"Level", "Temperature"}, levelRows(thresholds))
			if err != nil {
				ui.Fatal("Error printing table: %v", err)
			}
			ui.Printfln(tab)

			ui.Printfln(plotLevels(thresholds))
		}
		return nil
	},
}

// levelRows lists the temperature range of each level, "-" for a level that is never reached
func levelRows(thresholds policy.ThresholdPair) [][]string {
	medium := "-"
	if thresholds.Low < thresholds.High {
		medium = fmt.Sprintf("%d°C .. %d°C", thresholds.Low, thresholds.High-1)
	}
	return [][]string{
		{policy.LevelOff.String(), fmt.Sprintf("< %d°C", thresholds.Low)},
		{policy.LevelMedium.String(), medium},
		{policy.LevelMax.String(), fmt.Sprintf(">= %d°C", thresholds.High)},
	}
}

// plotLevels charts the level of a fan over the temperatures around its thresholds
func plotLevels(thresholds policy.ThresholdPair) string {
	from := thresholds.Low - chartMargin
	to := thresholds.High + chartMargin

	var values []float64
	for temp := from; temp <= to; temp++ {
		values = append(values, float64(policy.Decide(temp, policy.LevelOff, thresholds)))
	}

	caption := fmt.Sprintf("Level / Temperature (%d°C .. %d°C)", from, to)
	return asciigraph.Plot(values, asciigraph.Height(4), asciigraph.Caption(caption))
}

func printEvaluation(config configuration.Configuration, temps []int) error {
	if len(temps) != 2 {
		return fmt.Errorf("--temp expects two values: <cpu>,<gpu>")
	}

	decision := policy.Evaluate(
		policy.FanState{Temperature: temps[0]},
		policy.FanState{Temperature: temps[1]},
		config.Thresholds(configuration.FanCpu),
		config.Thresholds(configuration.FanGpu),
	)

	var rows [][]string
	for _, fan := range []struct {
		id    string
		state policy.FanState
	}{
		{configuration.FanCpu, decision.Cpu},
		{configuration.FanGpu, decision.Gpu},
	} {
		thresholds := config.Thresholds(fan.id)
		decided := policy.Decide(fan.state.Temperature, fan.state.Current, thresholds)
		note := ""
		if decided != fan.state.Target {
			note = "raised by balancing"
		}
		rows = append(rows, []string{
			fan.id,
			fmt.Sprintf("%d°C", fan.state.Temperature),
			thresholds.String(),
			fan.state.Target.String(),
			note,
		})
	}

	tab, err := global.RenderTable([]string{"Fan", "Temperature", "Thresholds", "Level", ""}, rows)
	if err != nil {
		return err
	}
	ui.Printfln(tab)
	return nil
}

func init() {
	policyCmd.Flags().IntSliceVar(&evaluateTemps, "temp", nil, "cpu and gpu temperature to evaluate, e.g. --temp 45,60")
	rootCmd.AddCommand(policyCmd)
}
