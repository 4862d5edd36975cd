package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/report"
	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/utils"
)

var (
	repOutputPath string
	repChartDir   string
	repX          string
	repY          string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the full report as Markdown",
	RunE: func(cmd *cobra.Command, args []string) error {
		x, err := parseColumn("x", repX)
		if err != nil {
			return err
		}
		y, err := parseColumn("y", repY)
		if err != nil {
			return err
		}
		b, err := loadBundle()
		if err != nil {
			return err
		}
		rep := report.Build(b, newEngine(), report.Options{X: x, Y: y, Log: logger})

		if repChartDir != "" {
			co, err := chartOptions()
			if err != nil {
				return err
			}
			n, err := rep.WriteCharts(repChartDir, co)
			if err != nil {
				return fmt.Errorf("write charts: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote %d charts to %s\n", n, repChartDir)
		}

		md := rep.Markdown()
		if repOutputPath == "" {
			fmt.Fprintln(cmd.OutOrStdout(), md)
			return nil
		}
		if err := utils.SafeWriteFile(repOutputPath, []byte(md)); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote report to %s\n", repOutputPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVarP(&repOutputPath, "output", "o", "", "optional path to write the report (Markdown)")
	reportCmd.Flags().StringVar(&repChartDir, "charts", "", "directory to write chart images into")
	reportCmd.Flags().StringVar(&repX, "x", "q1", "crosstab X column code")
	reportCmd.Flags().StringVar(&repY, "y", "q5", "crosstab Y column code")
}
