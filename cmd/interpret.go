package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/chart"
	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/insight"
	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/report"
	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/survey"
	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/utils"
)

var (
	intPrimary   string
	intSecondary string
	intChartPath string
)

var interpretCmd = &cobra.Command{
	Use:   "interpret",
	Short: "Interpret one column, optionally against a second one",
	Example: `  osada interpret --primary q5
  osada interpret --primary q1 --secondary q5 --lang id`,
	RunE: func(cmd *cobra.Command, args []string) error {
		primary, err := parseColumn("primary", intPrimary)
		if err != nil {
			return err
		}
		if primary == survey.None {
			return errors.New("--primary is required")
		}
		secondary, err := parseColumn("secondary", intSecondary)
		if err != nil {
			return err
		}
		for _, c := range []survey.Column{primary, secondary} {
			if c.Source() == survey.Derived {
				return fmt.Errorf("%s is a derived band; interpret the raw column instead", c.Code())
			}
		}
		b, err := loadBundle()
		if err != nil {
			return err
		}
		eng := newEngine()
		in := eng.Interpret(b, primary, secondary)
		printInsight(cmd.OutOrStdout(), in)

		if intChartPath != "" {
			s, err := report.NewBuilder(b, eng, logger).Distribution(primary)
			if err != nil {
				return err
			}
			if s.Chart == nil {
				return errors.New(s.Note)
			}
			co, err := chartOptions()
			if err != nil {
				return err
			}
			data, err := chart.Bytes(*s.Chart, co)
			if err != nil {
				return err
			}
			if err := utils.SafeWriteFile(intChartPath, data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote distribution chart to %s\n", intChartPath)
		}
		return nil
	},
}

func printInsight(w io.Writer, in insight.Insight) {
	color.New(color.FgYellow).Fprintf(w, "\n%s", in.Primary.Short())
	if in.Secondary != survey.None {
		color.New(color.FgYellow).Fprintf(w, " × %s", in.Secondary.Short())
	}
	fmt.Fprintln(w)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Analyzer", "Result", "Detail"})
	table.SetAutoWrapText(false)
	if d := in.Dominance; d != nil {
		table.Append([]string{"dominance", d.Branch.String(), fmt.Sprintf("top %s %.1f%%, gap %.1f", d.Top.Label, d.Top.Percent, d.Gap)})
	} else {
		table.Append([]string{"dominance", "skipped", errText(in.DominanceErr)})
	}
	if t := in.Trend; t != nil {
		table.Append([]string{"trend", t.Direction.String(), fmt.Sprintf("skew %.3f, kept %d, dropped %d", t.Skewness, t.Kept, t.Dropped)})
	} else {
		table.Append([]string{"trend", "skipped", errText(in.TrendErr)})
	}
	if in.Secondary != survey.None {
		if a := in.Relation; a != nil && in.RelationErr == nil {
			table.Append([]string{"association", a.Strength.String(), fmt.Sprintf("V %.3f, chi2 %.2f, n %d", a.V, a.ChiSquare, a.N)})
		} else {
			table.Append([]string{"association", "skipped", errText(in.RelationErr)})
		}
	}
	table.Render()

	if text := in.String(); text != "" {
		color.New(color.FgGreen).Fprintln(w, text)
	} else {
		color.New(color.FgRed).Fprintln(w, "No interpretation available.")
	}
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func init() {
	rootCmd.AddCommand(interpretCmd)
	interpretCmd.Flags().StringVar(&intPrimary, "primary", "", "column code to interpret (e.g. q5)")
	interpretCmd.Flags().StringVar(&intSecondary, "secondary", "", "optional second column code for the association")
	interpretCmd.Flags().StringVar(&intChartPath, "chart", "", "optional path to write the primary column's distribution chart")
}
