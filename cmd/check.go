package cmd

import (
	"github.com/markusressel/i8kfans/cmd/global"
	"github.com/markusressel/i8kfans/internal/configuration"
	"github.com/markusressel/i8kfans/internal/requirements"
	"github.com/markusressel/i8kfans/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that all programs and kernel modules i8kfans depends on are available",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		global.LoadConfig()

		results, err := requirements.Check(configuration.CurrentConfig.Requirements)

		var rows [][]string
		for _, result := range results {
			status := "ok"
			detail := result.Detail
			if !result.Ok() {
				status = "missing"
				detail = result.Err.Error()
			}
			if !global.NoColor {
				color := "green"
				if !result.Ok() {
					color = "red"
				}
				status = ansi.Color(status, color)
			}
			rows = append(rows, []string{result.Name, status, detail})
		}

		tab, tableErr := global.RenderTable([]string{"Requirement", "Status", "Detail"}, rows)
		if tableErr != nil {
			ui.Fatal("Error printing table: %v", tableErr)
		}
		ui.Printfln(tab)

		if err != nil {
			return err
		}
		ui.Success("All requirements are met")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
