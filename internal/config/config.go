package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	DataDir         string `mapstructure:"data_dir" yaml:"data_dir"`
	NumericFile     string `mapstructure:"numeric_file" yaml:"numeric_file"`
	CategoricalFile string `mapstructure:"categorical_file" yaml:"categorical_file"`
	// Delimiter overrides CSV delimiter sniffing; empty means auto.
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	XLSXSheet string `mapstructure:"xlsx_sheet" yaml:"xlsx_sheet"`

	ListenAddr string `mapstructure:"listen_addr" yaml:"listen_addr"`
	LogLevel   string `mapstructure:"log_level" yaml:"log_level"`
	// Language selects the narrative phrasebook (en, id).
	Language string `mapstructure:"language" yaml:"language"`

	ChartFormat string `mapstructure:"chart_format" yaml:"chart_format"`
	ChartWidth  int    `mapstructure:"chart_width" yaml:"chart_width"`
	ChartHeight int    `mapstructure:"chart_height" yaml:"chart_height"`

	Association Association `mapstructure:"association" yaml:"association"`
}

// Association tunes the association-strength analyzer.
type Association struct {
	ContinuityCorrection bool `mapstructure:"continuity_correction" yaml:"continuity_correction"`
}

// Keys lists every settable key in display order.
var Keys = []string{
	"data_dir", "numeric_file", "categorical_file", "delimiter", "xlsx_sheet",
	"listen_addr", "log_level", "language",
	"chart_format", "chart_width", "chart_height",
	"association.continuity_correction",
}

// DefaultPath is ~/.osada/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".osada", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.osada/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env (OSADA_*, including a .env file in the working directory) > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("OSADA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("data_dir", ".")
	v.SetDefault("numeric_file", "data_numerik.csv")
	v.SetDefault("categorical_file", "data_kategorikal.csv")
	v.SetDefault("delimiter", "")
	v.SetDefault("xlsx_sheet", "")
	v.SetDefault("listen_addr", "127.0.0.1:8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("language", "en")
	v.SetDefault("chart_format", "png")
	v.SetDefault("chart_width", 800)
	v.SetDefault("chart_height", 480)
	v.SetDefault("association.continuity_correction", false)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(filepath.Dir(p))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &c, nil
}

// validate runs file and env values through Set so they obey the same rules as
// `config set`. Empty strings keep their "auto" meaning.
func (c *Global) validate() error {
	for _, k := range []string{"delimiter", "log_level", "language", "chart_format", "chart_width", "chart_height"} {
		v, err := c.Get(k)
		if err != nil {
			return err
		}
		if v == "" {
			continue
		}
		if err := c.Set(k, v); err != nil {
			return err
		}
	}
	return nil
}

// DelimiterRune returns the configured CSV delimiter, or 0 for auto-detection.
// "tab" and `\t` select a tab.
func (c *Global) DelimiterRune() rune {
	switch c.Delimiter {
	case "":
		return 0
	case "tab", `\t`:
		return '\t'
	}
	r := []rune(c.Delimiter)
	return r[0]
}

// Get returns the value of key formatted for display.
func (c *Global) Get(key string) (string, error) {
	switch key {
	case "data_dir":
		return c.DataDir, nil
	case "numeric_file":
		return c.NumericFile, nil
	case "categorical_file":
		return c.CategoricalFile, nil
	case "delimiter":
		return c.Delimiter, nil
	case "xlsx_sheet":
		return c.XLSXSheet, nil
	case "listen_addr":
		return c.ListenAddr, nil
	case "log_level":
		return c.LogLevel, nil
	case "language":
		return c.Language, nil
	case "chart_format":
		return c.ChartFormat, nil
	case "chart_width":
		return strconv.Itoa(c.ChartWidth), nil
	case "chart_height":
		return strconv.Itoa(c.ChartHeight), nil
	case "association.continuity_correction":
		return strconv.FormatBool(c.Association.ContinuityCorrection), nil
	}
	return "", fmt.Errorf("unknown key: %s", key)
}

// Set validates val and assigns it to key.
func (c *Global) Set(key, val string) error {
	switch key {
	case "data_dir":
		c.DataDir = val
	case "numeric_file":
		c.NumericFile = val
	case "categorical_file":
		c.CategoricalFile = val
	case "delimiter":
		if val != "" && val != "tab" && val != `\t` && len([]rune(val)) != 1 {
			return fmt.Errorf("invalid delimiter: %q (use a single character or tab)", val)
		}
		c.Delimiter = val
	case "xlsx_sheet":
		c.XLSXSheet = val
	case "listen_addr":
		c.ListenAddr = val
	case "log_level":
		switch strings.ToLower(val) {
		case "debug", "info", "warn", "error", "off":
			c.LogLevel = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid log_level: %s (use debug, info, warn, error or off)", val)
		}
	case "language":
		switch strings.ToLower(val) {
		case "en", "english":
			c.Language = "en"
		case "id", "indonesian", "bahasa":
			c.Language = "id"
		default:
			return fmt.Errorf("invalid language: %s (use en or id)", val)
		}
	case "chart_format":
		switch strings.ToLower(val) {
		case "png", "svg":
			c.ChartFormat = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid chart_format: %s (use png or svg)", val)
		}
	case "chart_width", "chart_height":
		i, err := strconv.Atoi(val)
		if err != nil || i < 100 || i > 4000 {
			return fmt.Errorf("invalid int for %s: %v (100-4000)", key, val)
		}
		if key == "chart_width" {
			c.ChartWidth = i
		} else {
			c.ChartHeight = i
		}
	case "association.continuity_correction":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid bool for %s: %w", key, err)
		}
		c.Association.ContinuityCorrection = b
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}
