package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/insight"
	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/report"
)

var (
	ctX string
	ctY string
)

var crosstabCmd = &cobra.Command{
	Use:   "crosstab",
	Short: "Cross-tabulate two categorical questions",
	Example: `  osada crosstab
  osada crosstab --x q2 --y q6`,
	RunE: func(cmd *cobra.Command, args []string) error {
		x, err := parseColumn("x", ctX)
		if err != nil {
			return err
		}
		y, err := parseColumn("y", ctY)
		if err != nil {
			return err
		}
		b, err := loadBundle()
		if err != nil {
			return err
		}
		s, err := report.NewBuilder(b, newEngine(), logger).Crosstab(x, y)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		color.New(color.FgYellow).Fprintln(w, s.Title)
		if s.Table == nil {
			color.New(color.FgRed).Fprintln(w, s.Note)
			return nil
		}
		writeCrosstab(w, s.Table)
		if s.Narrative != "" {
			fmt.Fprintln(w, s.Narrative)
		}
		if s.Insight != "" {
			color.New(color.FgGreen).Fprintln(w, s.Insight)
		}
		return nil
	},
}

func writeCrosstab(w io.Writer, ct *insight.Contingency) {
	table := tablewriter.NewWriter(w)
	header := append([]string{""}, ct.Cols...)
	table.SetHeader(append(header, "n"))
	table.SetAutoWrapText(false)
	pct := ct.RowPercent()
	totals := ct.RowTotals()
	for i, row := range ct.Rows {
		line := []string{row}
		for _, p := range pct[i] {
			line = append(line, fmt.Sprintf("%.1f%%", p))
		}
		table.Append(append(line, strconv.Itoa(totals[i])))
	}
	table.Render()
}

func init() {
	rootCmd.AddCommand(crosstabCmd)
	crosstabCmd.Flags().StringVar(&ctX, "x", "q1", "row column code")
	crosstabCmd.Flags().StringVar(&ctY, "y", "q5", "column column code")
}
