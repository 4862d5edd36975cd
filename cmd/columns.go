package cmd

import (
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/survey"
)

var columnsCmd = &cobra.Command{
	Use:   "columns",
	Short: "List the survey columns and whether the loaded data holds them",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := loadBundle()
		if err != nil {
			return err
		}
		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetHeader([]string{"Code", "Column", "Source", "Present"})
		table.SetAutoWrapText(false)
		for _, c := range survey.All() {
			present := red("✗")
			switch {
			case c.Source() == survey.Derived && c != survey.Cohort:
				present = "-"
			case b.Has(c):
				present = green("✓")
			}
			table.Append([]string{c.Code(), c.Short(), c.Source().String(), present})
		}
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(columnsCmd)
}
