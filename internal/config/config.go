package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"stockstat/internal/stats"
)

// envPrefix is the prefix for environment variable overrides, e.g.
// STOCKSTAT_ENGINE_BACKEND=scatter.
const envPrefix = "STOCKSTAT"

// Config represents the complete application configuration
type Config struct {
	Data    DataConfig    `yaml:"data" envconfig:"DATA"`
	Engine  EngineConfig  `yaml:"engine" envconfig:"ENGINE"`
	Filter  FilterConfig  `yaml:"filter" envconfig:"FILTER"`
	Report  ReportConfig  `yaml:"report" envconfig:"REPORT"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// DataConfig describes where input price files live and what format
// they are in.
type DataConfig struct {
	Dir    string `yaml:"dir" envconfig:"DIR"`
	Format string `yaml:"format" envconfig:"FORMAT" validate:"omitempty,oneof=csv xlsx excel auto"`
}

// EngineConfig selects the execution backend for the statistics pass.
type EngineConfig struct {
	Backend string `yaml:"backend" envconfig:"BACKEND" validate:"omitempty,oneof=serial parallel scatter"`
	Workers int    `yaml:"workers" envconfig:"WORKERS" validate:"min=0"`
}

// FilterConfig is the data-quality policy. Enabled is off by default for
// the pooled analysis; the decade analysis always cleans.
type FilterConfig struct {
	Enabled   bool    `yaml:"enabled" envconfig:"ENABLED"`
	MinPrice  float64 `yaml:"min_price" envconfig:"MIN_PRICE" validate:"min=0"`
	MaxPrice  float64 `yaml:"max_price" envconfig:"MAX_PRICE" validate:"min=0"`
	MaxReturn float64 `yaml:"max_return" envconfig:"MAX_RETURN" validate:"min=0"`
	MinYear   int     `yaml:"min_year" envconfig:"MIN_YEAR"`
	MaxYear   int     `yaml:"max_year" envconfig:"MAX_YEAR"`

	// TrackAllYears keeps the reported min/max year range over every
	// parsed record, including ones the filters drop. Pointer so that
	// an explicit false in config is distinguishable from unset.
	TrackAllYears *bool `yaml:"track_all_years" envconfig:"TRACK_ALL_YEARS"`
}

// ReportConfig controls report output.
type ReportConfig struct {
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`

	// CompatDecadeLabels reproduces the historical decade labeling
	// where the final decade is reported as 2010-2020.
	CompatDecadeLabels bool `yaml:"compat_decade_labels" envconfig:"COMPAT_DECADE_LABELS"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"omitempty,oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"omitempty,oneof=text json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"omitempty,oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// Load loads configuration from environment variables and an optional
// YAML file. Environment variables take precedence over the file, and
// defaults fill whatever remains unset.
func Load(path string) (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Load from config file if it exists
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			fileCfg, err := loadFromFile(path)
			if err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
			cfg = mergeConfigs(*fileCfg, cfg)
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence)
func mergeConfigs(fileConfig, envConfig Config) Config {
	if envConfig.Data.Dir == "" {
		envConfig.Data.Dir = fileConfig.Data.Dir
	}
	if envConfig.Data.Format == "" {
		envConfig.Data.Format = fileConfig.Data.Format
	}
	if envConfig.Engine.Backend == "" {
		envConfig.Engine.Backend = fileConfig.Engine.Backend
	}
	if envConfig.Engine.Workers == 0 {
		envConfig.Engine.Workers = fileConfig.Engine.Workers
	}
	if !envConfig.Filter.Enabled {
		envConfig.Filter.Enabled = fileConfig.Filter.Enabled
	}
	if envConfig.Filter.MinPrice == 0 {
		envConfig.Filter.MinPrice = fileConfig.Filter.MinPrice
	}
	if envConfig.Filter.MaxPrice == 0 {
		envConfig.Filter.MaxPrice = fileConfig.Filter.MaxPrice
	}
	if envConfig.Filter.MaxReturn == 0 {
		envConfig.Filter.MaxReturn = fileConfig.Filter.MaxReturn
	}
	if envConfig.Filter.MinYear == 0 {
		envConfig.Filter.MinYear = fileConfig.Filter.MinYear
	}
	if envConfig.Filter.MaxYear == 0 {
		envConfig.Filter.MaxYear = fileConfig.Filter.MaxYear
	}
	if envConfig.Filter.TrackAllYears == nil {
		envConfig.Filter.TrackAllYears = fileConfig.Filter.TrackAllYears
	}
	if envConfig.Report.OutputDir == "" {
		envConfig.Report.OutputDir = fileConfig.Report.OutputDir
	}
	if !envConfig.Report.CompatDecadeLabels {
		envConfig.Report.CompatDecadeLabels = fileConfig.Report.CompatDecadeLabels
	}
	if envConfig.Logging.Level == "" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if envConfig.Logging.Format == "" {
		envConfig.Logging.Format = fileConfig.Logging.Format
	}
	if envConfig.Logging.Output == "" {
		envConfig.Logging.Output = fileConfig.Logging.Output
	}
	if envConfig.Logging.FilePath == "" {
		envConfig.Logging.FilePath = fileConfig.Logging.FilePath
	}
	return envConfig
}

func (c *Config) applyDefaults() {
	if c.Data.Dir == "" {
		c.Data.Dir = "data/stocks"
	}
	if c.Data.Format == "" {
		c.Data.Format = "auto"
	}
	if c.Engine.Backend == "" {
		c.Engine.Backend = "parallel"
	}
	if c.Filter.MinPrice == 0 {
		c.Filter.MinPrice = stats.DefaultMinPrice
	}
	if c.Filter.MaxPrice == 0 {
		c.Filter.MaxPrice = stats.DefaultMaxPrice
	}
	if c.Filter.MaxReturn == 0 {
		c.Filter.MaxReturn = stats.DefaultMaxReturn
	}
	if c.Filter.MinYear == 0 {
		c.Filter.MinYear = stats.DefaultMinYear
	}
	if c.Filter.MaxYear == 0 {
		c.Filter.MaxYear = stats.DefaultMaxYear
	}
	if c.Filter.TrackAllYears == nil {
		trackAll := true
		c.Filter.TrackAllYears = &trackAll
	}
	if c.Report.OutputDir == "" {
		c.Report.OutputDir = "data/reports"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "console"
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/stockstat.log"
	}
}

// Validate checks struct tags and cross-field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if c.Filter.MinPrice > c.Filter.MaxPrice {
		return fmt.Errorf("filter.min_price %.4f exceeds filter.max_price %.4f",
			c.Filter.MinPrice, c.Filter.MaxPrice)
	}
	if c.Filter.MinYear > c.Filter.MaxYear {
		return fmt.Errorf("filter.min_year %d exceeds filter.max_year %d",
			c.Filter.MinYear, c.Filter.MaxYear)
	}
	return nil
}

// ToFilter converts the filter section into the engine's policy value.
// It returns nil when filtering is disabled.
func (f FilterConfig) ToFilter() *stats.Filter {
	if !f.Enabled {
		return nil
	}
	return &stats.Filter{
		MinPrice:  f.MinPrice,
		MaxPrice:  f.MaxPrice,
		MaxReturn: f.MaxReturn,
		MinYear:   f.MinYear,
		MaxYear:   f.MaxYear,
	}
}

// TrackAll reports the effective year-tracking mode.
func (f FilterConfig) TrackAll() bool {
	return f.TrackAllYears == nil || *f.TrackAllYears
}
