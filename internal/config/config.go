package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	EnvPrefix  = "ELCAP"
	DirName    = ".elcap-firsts"
	FileName   = "config.yaml"
	KeyEnvName = "MOUNTAIN_PROJECT_KEY"
)

// Config is the full set of settings for a run
type Config struct {
	MountainProject MountainProjectConfig `mapstructure:"mountain_project" yaml:"mountain_project"`
	Scraper         ScraperConfig         `mapstructure:"scraper" yaml:"scraper"`
	Overrides       OverridesConfig       `mapstructure:"overrides" yaml:"overrides"`
	Chart           ChartConfig           `mapstructure:"chart" yaml:"chart"`
	Output          OutputConfig          `mapstructure:"output" yaml:"output"`
	Log             LogConfig             `mapstructure:"log" yaml:"log"`
}

// MountainProjectConfig selects the routes to survey
type MountainProjectConfig struct {
	APIKey      string  `mapstructure:"api_key" yaml:"api_key,omitempty"`
	BaseURL     string  `mapstructure:"base_url" yaml:"base_url"`
	Lat         float64 `mapstructure:"lat" yaml:"lat"`
	Lon         float64 `mapstructure:"lon" yaml:"lon"`
	MaxDistance float64 `mapstructure:"max_distance" yaml:"max_distance"`
	MaxResults  int     `mapstructure:"max_results" yaml:"max_results"`
	Area        string  `mapstructure:"area" yaml:"area"`
}

// ScraperConfig controls route page fetching
type ScraperConfig struct {
	UserAgent     string        `mapstructure:"user_agent" yaml:"user_agent"`
	Timeout       time.Duration `mapstructure:"timeout" yaml:"timeout"`
	Delay         time.Duration `mapstructure:"delay" yaml:"delay"`
	RespectRobots bool          `mapstructure:"respect_robots" yaml:"respect_robots"`
	CacheTTL      time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`
	FARow         int           `mapstructure:"fa_row" yaml:"fa_row"`
	FACol         int           `mapstructure:"fa_col" yaml:"fa_col"`
}

// OverridesConfig selects the manual corrections applied after cleaning
type OverridesConfig struct {
	File    string `mapstructure:"file" yaml:"file,omitempty"`
	Builtin bool   `mapstructure:"builtin" yaml:"builtin"`
}

// ChartConfig controls which leaderboard entries are drawn and how
type ChartConfig struct {
	Top       int     `mapstructure:"top" yaml:"top"`
	Min       int     `mapstructure:"min" yaml:"min"`
	Width     int     `mapstructure:"width" yaml:"width"`
	TextWidth int     `mapstructure:"text_width" yaml:"text_width"`
	Title     string  `mapstructure:"title" yaml:"title"`
	Font      string  `mapstructure:"font" yaml:"font,omitempty"`
	FontSize  float64 `mapstructure:"font_size" yaml:"font_size"`
}

// OutputConfig controls where artifacts go and how results are printed
type OutputConfig struct {
	Dir    string `mapstructure:"dir" yaml:"dir"`
	Format string `mapstructure:"format" yaml:"format"`
}

// LogConfig controls logging
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// Default returns the built-in configuration: El Capitan, surveyed politely.
func Default() Config {
	return Config{
		MountainProject: MountainProjectConfig{
			BaseURL:     "https://www.mountainproject.com/data",
			Lat:         37.732,
			Lon:         -119.638,
			MaxDistance: 1,
			MaxResults:  500,
			Area:        "El Capitan",
		},
		Scraper: ScraperConfig{
			UserAgent:     "elcap-firsts/1.0 (github.com/pfrederiksen/elcap-firsts)",
			Timeout:       30 * time.Second,
			Delay:         time.Second,
			RespectRobots: true,
			CacheTTL:      time.Hour,
			FARow:         1,
			FACol:         1,
		},
		Overrides: OverridesConfig{
			Builtin: true,
		},
		Chart: ChartConfig{
			Top:       24,
			Min:       2,
			Width:     900,
			TextWidth: 40,
			Title:     "First ascents by climber",
			FontSize:  13,
		},
		Output: OutputConfig{
			Dir:    "~/.local/share/elcap-firsts",
			Format: "text",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns ~/.elcap-firsts/config.yaml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, DirName, FileName), nil
}

// NewViper returns a viper instance with defaults, env binding and the config
// file location set up. cfgFile overrides the default search path.
func NewViper(cfgFile string) *viper.Viper {
	v := viper.New()
	SetDefaults(v, Default())

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, DirName))
		}
		v.SetConfigType("yaml")
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
	}

	// ELCAP_MOUNTAIN_PROJECT_API_KEY -> mountain_project.api_key
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// SetDefaults registers every field of cfg as a viper default so that
// environment variables can override keys absent from the file.
func SetDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("mountain_project.api_key", cfg.MountainProject.APIKey)
	v.SetDefault("mountain_project.base_url", cfg.MountainProject.BaseURL)
	v.SetDefault("mountain_project.lat", cfg.MountainProject.Lat)
	v.SetDefault("mountain_project.lon", cfg.MountainProject.Lon)
	v.SetDefault("mountain_project.max_distance", cfg.MountainProject.MaxDistance)
	v.SetDefault("mountain_project.max_results", cfg.MountainProject.MaxResults)
	v.SetDefault("mountain_project.area", cfg.MountainProject.Area)

	v.SetDefault("scraper.user_agent", cfg.Scraper.UserAgent)
	v.SetDefault("scraper.timeout", cfg.Scraper.Timeout)
	v.SetDefault("scraper.delay", cfg.Scraper.Delay)
	v.SetDefault("scraper.respect_robots", cfg.Scraper.RespectRobots)
	v.SetDefault("scraper.cache_ttl", cfg.Scraper.CacheTTL)
	v.SetDefault("scraper.fa_row", cfg.Scraper.FARow)
	v.SetDefault("scraper.fa_col", cfg.Scraper.FACol)

	v.SetDefault("overrides.file", cfg.Overrides.File)
	v.SetDefault("overrides.builtin", cfg.Overrides.Builtin)

	v.SetDefault("chart.top", cfg.Chart.Top)
	v.SetDefault("chart.min", cfg.Chart.Min)
	v.SetDefault("chart.width", cfg.Chart.Width)
	v.SetDefault("chart.text_width", cfg.Chart.TextWidth)
	v.SetDefault("chart.title", cfg.Chart.Title)
	v.SetDefault("chart.font", cfg.Chart.Font)
	v.SetDefault("chart.font_size", cfg.Chart.FontSize)

	v.SetDefault("output.dir", cfg.Output.Dir)
	v.SetDefault("output.format", cfg.Output.Format)

	v.SetDefault("log.level", cfg.Log.Level)
}

// Read loads the config file if there is one and decodes the merged settings.
// A missing file at the default location is not an error; a missing file
// given explicitly is.
func Read(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	if cfg.MountainProject.APIKey == "" {
		cfg.MountainProject.APIKey = os.Getenv(KeyEnvName)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load is NewViper followed by Read
func Load(cfgFile string) (Config, error) {
	return Read(NewViper(cfgFile))
}

// Validate checks settings that would otherwise fail deep inside a run
func (c Config) Validate() error {
	if c.MountainProject.MaxResults < 0 {
		return fmt.Errorf("mountain_project.max_results must not be negative: %d", c.MountainProject.MaxResults)
	}
	if c.MountainProject.MaxDistance < 0 {
		return fmt.Errorf("mountain_project.max_distance must not be negative: %g", c.MountainProject.MaxDistance)
	}
	if c.Scraper.FARow < 0 || c.Scraper.FACol < 0 {
		return fmt.Errorf("scraper.fa_row and scraper.fa_col must not be negative")
	}
	switch c.Output.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("invalid output.format: %q (must be text, json or yaml)", c.Output.Format)
	}
	return nil
}

// Redacted returns a copy safe to print
func (c Config) Redacted() Config {
	if c.MountainProject.APIKey != "" {
		c.MountainProject.APIKey = "********"
	}
	return c
}

// Marshal encodes the configuration as YAML
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// WriteDefault writes the default configuration to path, refusing to
// overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := Default().Marshal()
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	header := "# elcap-firsts configuration\n" +
		"#\n" +
		"# Priority (highest first): flags, ELCAP_* environment variables,\n" +
		"# this file, built-in defaults.\n" +
		"#\n" +
		"# Keep the API key out of this file: export MOUNTAIN_PROJECT_KEY or\n" +
		"# put it in a .env file in the working directory.\n\n"

	if err := os.WriteFile(path, append([]byte(header), data...), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
