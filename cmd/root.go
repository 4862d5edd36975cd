package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/chart"
	cfgpkg "github.com/sapyyens/Dashboard--EDA-robloxmania/internal/config"
	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/dataset"
	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/insight"
	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/logging"
	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/survey"
)

var (
	// Global flags
	cfgFile     string
	debug       bool
	flagDataDir string
	flagLang    string

	// Loaded configuration
	cfg    *cfgpkg.Global
	logger = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "osada",
	Short: "OSADA impact report: survey statistics with narrative interpretation",
	Long: `osada loads the OSADA orientation survey exports (numeric and categorical answers),
computes descriptive statistics and association measures, and renders a navigable report
in which every chart comes with a plain-language interpretation.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error { return loadConfig() }
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.osada/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "directory holding the survey exports (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLang, "lang", "", "narrative language: en or id (overrides config)")
}

func loadConfig() error {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return err
	}
	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("data-dir") && flagDataDir != "" {
		c.DataDir = flagDataDir
	}
	if f.Changed("lang") && flagLang != "" {
		if err := c.Set("language", flagLang); err != nil {
			return err
		}
	}
	if debug {
		c.LogLevel = "debug"
	}
	cfg = c
	logger = logging.New(cfg.LogLevel, os.Stderr, isatty.IsTerminal(os.Stderr.Fd()))
	return nil
}

func dataSource(c *cfgpkg.Global) dataset.Source {
	return dataset.Source{
		Dir:             c.DataDir,
		NumericFile:     c.NumericFile,
		CategoricalFile: c.CategoricalFile,
		Read:            dataset.ReadOptions{Delimiter: c.DelimiterRune(), Sheet: c.XLSXSheet},
	}
}

// loadBundle reads both survey exports. A missing file is fatal for every command that needs data.
func loadBundle() (*dataset.Bundle, error) {
	b, err := dataset.NewStore(dataSource(cfg), logger).Load()
	if err != nil {
		return nil, fmt.Errorf("load survey data: %w", err)
	}
	logger.Debug().Str("run_id", b.RunID).Int("respondents", b.Rows()).Msg("survey data ready")
	return b, nil
}

func newEngine() *insight.Engine {
	return insight.NewEngine(insight.Options{
		Language:             cfg.Language,
		ContinuityCorrection: cfg.Association.ContinuityCorrection,
		ParseNumber:          dataset.ParseNumber,
		Logger:               &logger,
	})
}

func chartOptions() (chart.Options, error) {
	f, err := chart.ParseFormat(cfg.ChartFormat)
	if err != nil {
		return chart.Options{}, err
	}
	return chart.Options{Format: f, Width: cfg.ChartWidth, Height: cfg.ChartHeight}, nil
}

func parseColumn(flag, val string) (survey.Column, error) {
	c, err := survey.Parse(val)
	if err != nil {
		return survey.None, fmt.Errorf("--%s: %w", flag, err)
	}
	return c, nil
}
