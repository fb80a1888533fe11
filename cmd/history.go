package cmd

import (
	"fmt"
	"time"

	"github.com/markusressel/i8kfans/cmd/global"
	"github.com/markusressel/i8kfans/internal/configuration"
	"github.com/markusressel/i8kfans/internal/persistence"
	"github.com/markusressel/i8kfans/internal/ui"
	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the most recent fan level changes",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		global.LoadConfig()
		pers := persistence.NewPersistence(configuration.CurrentConfig.DbPath)

		if historyClear {
			if err := pers.DeleteHistory(); err != nil {
				return err
			}
			ui.Success("History cleared")
			return nil
		}

		records, err := pers.LoadActuations(historyLimit)
		if err != nil {
			return err
		}
		if len(records) <= 0 {
			ui.Info("No fan level changes recorded yet")
			return nil
		}

		var rows [][]string
		for _, record := range records {
			rows = append(rows, []string{
				record.Time.Format(time.DateTime),
				formatFanRecord(record.Cpu),
				formatFanRecord(record.Gpu),
				fmt.Sprintf("%s %s", record.Cpu.Command, record.Gpu.Command),
			})
		}

		tab, err := global.RenderTable([]string{"Time", "CPU", "GPU", "Command"}, rows)
		if err != nil {
			ui.Fatal("Error printing table: %v", err)
		}
		ui.Printfln(tab)
		return nil
	},
}

func formatFanRecord(record persistence.FanRecord) string {
	return fmt.Sprintf("%d°C %s -> %s", record.Temperature, record.Current, record.Target)
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of entries to print, 0 prints all")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "delete the recorded history")
	rootCmd.AddCommand(historyCmd)
}
