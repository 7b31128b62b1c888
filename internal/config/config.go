package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "trendcli/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Catalog   CatalogConfig   `yaml:"catalog" envconfig:"CATALOG"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// CatalogConfig describes the workbook to enrich and the sampling parameters
type CatalogConfig struct {
	SourcePath string `yaml:"source_path" split_words:"true" validate:"required"`
	// OutputPath defaults to SourcePath, overwriting the workbook in place.
	OutputPath          string  `yaml:"output_path" split_words:"true"`
	Sheet               string  `yaml:"sheet" split_words:"true"`
	TrendingProbability float64 `yaml:"trending_probability" split_words:"true" validate:"gte=0,lte=1"`
	MinTrending         int     `yaml:"min_trending" split_words:"true" validate:"gte=0"`
	// Seed of 0 means a random seed per run.
	Seed      uint64 `yaml:"seed" split_words:"true"`
	BackupDir string `yaml:"backup_dir" split_words:"true"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" split_words:"true" validate:"oneof=debug info warn warning error"`
	Output   string `yaml:"output" split_words:"true" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" split_words:"true" validate:"required_unless=Output console"`
}

// TelemetryConfig enables optional span and metric export. Empty paths disable it.
type TelemetryConfig struct {
	TraceFile   string `yaml:"trace_file" split_words:"true"`
	MetricsFile string `yaml:"metrics_file" split_words:"true"`
}

// Default returns the configuration used when no file or environment overrides exist.
func Default() Config {
	return Config{
		Catalog: CatalogConfig{
			SourcePath:          DefaultSourcePath,
			TrendingProbability: DefaultTrendingProbability,
			MinTrending:         DefaultMinTrending,
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Output:   DefaultLogOutput,
			FilePath: DefaultLogFile,
		},
	}
}

// Load loads configuration from the file named by TRENDING_CONFIG_FILE (if any)
// and environment variables. Precedence: env > file > defaults.
func Load() (*Config, error) {
	return LoadFrom(os.Getenv(ConfigFileEnv))
}

// LoadFrom is Load with an explicit config file path. An empty path skips the file layer.
func LoadFrom(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if err := loadFromFile(configFile, &cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err).
				WithContext("config_file", configFile)
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	cfg.resolvePaths()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadFromFile overlays the YAML file onto cfg; keys absent from the file keep their values.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func (c *Config) resolvePaths() {
	if c.Catalog.OutputPath == "" {
		c.Catalog.OutputPath = c.Catalog.SourcePath
	}
}

// Validate checks the configuration against its struct constraints
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return apperrors.NewValidationError("config validation failed", err)
	}
	return nil
}
