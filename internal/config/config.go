package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/statloom-cli/internal/stats"
)

// Global configuration structure.
type Global struct {
	// Dataset
	DatasetPath string `mapstructure:"dataset_path" yaml:"dataset_path"`
	Sheet       string `mapstructure:"sheet" yaml:"sheet"`
	Delimiter   string `mapstructure:"delimiter" yaml:"delimiter"`

	// Column positions are zero-based and label the two series in reports and charts.
	// Titles name a series in chart titles and fall back to the label when empty.
	XColumn int    `mapstructure:"x_column" yaml:"x_column"`
	XLabel  string `mapstructure:"x_label" yaml:"x_label"`
	XTitle  string `mapstructure:"x_title" yaml:"x_title"`
	YColumn int    `mapstructure:"y_column" yaml:"y_column"`
	YLabel  string `mapstructure:"y_label" yaml:"y_label"`
	YTitle  string `mapstructure:"y_title" yaml:"y_title"`

	// Statistics
	Alpha    float64 `mapstructure:"alpha" yaml:"alpha"`
	ModeTies string  `mapstructure:"mode_ties" yaml:"mode_ties"`

	// Charts
	ChartsEnabled bool    `mapstructure:"charts_enabled" yaml:"charts_enabled"`
	ChartsDir     string  `mapstructure:"charts_dir" yaml:"charts_dir"`
	ChartWidthIn  float64 `mapstructure:"chart_width_in" yaml:"chart_width_in"`
	ChartHeightIn float64 `mapstructure:"chart_height_in" yaml:"chart_height_in"`
	HistogramBins int     `mapstructure:"histogram_bins" yaml:"histogram_bins"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// Validate checks values that would otherwise fail deep inside a run.
func (c *Global) Validate() error {
	if c.Alpha <= 0 || c.Alpha >= 1 {
		return fmt.Errorf("alpha must be in (0,1), got %v", c.Alpha)
	}
	if c.XColumn < 0 || c.YColumn < 0 {
		return fmt.Errorf("column indices must be >= 0 (x=%d, y=%d)", c.XColumn, c.YColumn)
	}
	if _, err := stats.ParseTiePolicy(c.ModeTies); err != nil {
		return err
	}
	if c.HistogramBins <= 0 {
		return fmt.Errorf("histogram_bins must be > 0, got %d", c.HistogramBins)
	}
	if _, err := ParseDelimiter(c.Delimiter); err != nil {
		return err
	}
	return nil
}

// ParseDelimiter maps a user-facing delimiter name to a rune. Empty means ','.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "", ",", "comma":
		return ',', nil
	case ";", "semicolon":
		return ';', nil
	case "\t", "tab":
		return '\t', nil
	default:
		return 0, fmt.Errorf("unsupported delimiter: %q (use ',' | ';' | 'tab')", s)
	}
}

func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".statloom"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.statloom/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := defaultDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
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
// Precedence: env > config file > defaults. Command flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("STATLOOM")
	v.AutomaticEnv()

	// Defaults mirror the salary / batting-average layout of mlb_salaries.csv.
	v.SetDefault("dataset_path", "mlb_salaries.csv")
	v.SetDefault("sheet", "")
	v.SetDefault("delimiter", ",")
	v.SetDefault("x_column", 11)
	v.SetDefault("x_label", "Salaries")
	v.SetDefault("x_title", "Salary")
	v.SetDefault("y_column", 2)
	v.SetDefault("y_label", "Batting Averages")
	v.SetDefault("y_title", "Batting Average")
	v.SetDefault("alpha", 0.05)
	v.SetDefault("mode_ties", "smallest")
	v.SetDefault("charts_enabled", true)
	v.SetDefault("charts_dir", "charts")
	v.SetDefault("chart_width_in", 6.0)
	v.SetDefault("chart_height_in", 4.0)
	v.SetDefault("histogram_bins", 50)
	v.SetDefault("log_level", "info")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		dir, err := defaultDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
