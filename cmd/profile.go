package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/dataset"
	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/utils"
)

var (
	profOutputPath string
	profDataset    string
	profDelimiter  string
	profSheetName  string
)

var profileCmd = &cobra.Command{
	Use:   "profile [file]",
	Short: "Summarize a survey export column by column",
	Long: `Profile prints per-column statistics (kind, missing, unique, min/max/mean/std,
robust outliers, top values) and numeric correlations. Without a file argument it
profiles the configured survey exports.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var profiles []*dataset.Profile
		if len(args) == 1 {
			opt := dataset.ReadOptions{Delimiter: cfg.DelimiterRune(), Sheet: cfg.XLSXSheet}
			if profDelimiter != "" {
				d, err := parseDelimiter(profDelimiter)
				if err != nil {
					return err
				}
				opt.Delimiter = d
			}
			if profSheetName != "" {
				opt.Sheet = profSheetName
			}
			d, err := dataset.LoadFile(args[0], opt)
			if err != nil {
				return err
			}
			profiles = append(profiles, dataset.Summarize(d))
		} else {
			b, err := loadBundle()
			if err != nil {
				return err
			}
			switch strings.ToLower(strings.TrimSpace(profDataset)) {
			case "numeric":
				profiles = append(profiles, dataset.Summarize(b.Numeric))
			case "categorical":
				profiles = append(profiles, dataset.Summarize(b.Categorical))
			case "both", "":
				profiles = append(profiles, dataset.Summarize(b.Numeric), dataset.Summarize(b.Categorical))
			default:
				return fmt.Errorf("unsupported --dataset: %s (use numeric|categorical|both)", profDataset)
			}
		}

		var sb strings.Builder
		for i, p := range profiles {
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(p.Markdown())
		}
		md := sb.String()
		if profOutputPath == "" {
			fmt.Fprintln(cmd.OutOrStdout(), md)
			return nil
		}
		if err := utils.SafeWriteFile(profOutputPath, []byte(md)); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote profile to %s\n", profOutputPath)
		return nil
	},
}

func parseDelimiter(s string) (rune, error) {
	switch s {
	case ",":
		return ',', nil
	case "\t", "tab":
		return '\t', nil
	case ";":
		return ';', nil
	default:
		return 0, fmt.Errorf("unsupported --delimiter: %s", s)
	}
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.Flags().StringVarP(&profOutputPath, "output", "o", "", "optional path to write the profile (Markdown)")
	profileCmd.Flags().StringVar(&profDataset, "dataset", "both", "configured export to profile: numeric|categorical|both")
	profileCmd.Flags().StringVar(&profDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	profileCmd.Flags().StringVar(&profSheetName, "sheet-name", "", "XLSX: sheet name to profile")
}
