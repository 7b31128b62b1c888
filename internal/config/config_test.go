package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "trendcli/internal/errors"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trending.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFrom(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		file        string
		wantErr     bool
		wantErrType apperrors.ErrorType
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults with no file and no env",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultSourcePath, cfg.Catalog.SourcePath)
				assert.Equal(t, DefaultSourcePath, cfg.Catalog.OutputPath)
				assert.Equal(t, 0.25, cfg.Catalog.TrendingProbability)
				assert.Equal(t, 8, cfg.Catalog.MinTrending)
				assert.Zero(t, cfg.Catalog.Seed)
				assert.Equal(t, "warn", cfg.Logging.Level)
				assert.Equal(t, "console", cfg.Logging.Output)
				assert.Empty(t, cfg.Telemetry.TraceFile)
				assert.Empty(t, cfg.Telemetry.MetricsFile)
			},
		},
		{
			name: "file overrides defaults and keeps unset keys",
			file: "catalog:\n  source_path: data/catalog.xlsx\n  min_trending: 3\nlogging:\n  level: debug\n",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "data/catalog.xlsx", cfg.Catalog.SourcePath)
				assert.Equal(t, "data/catalog.xlsx", cfg.Catalog.OutputPath)
				assert.Equal(t, 3, cfg.Catalog.MinTrending)
				assert.Equal(t, 0.25, cfg.Catalog.TrendingProbability)
				assert.Equal(t, "debug", cfg.Logging.Level)
			},
		},
		{
			name: "env takes precedence over file",
			file: "catalog:\n  min_trending: 3\n  seed: 7\n",
			env: map[string]string{
				"TRENDING_CATALOG_MIN_TRENDING": "12",
				"TRENDING_CATALOG_OUTPUT_PATH":  "out/products.xlsx",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 12, cfg.Catalog.MinTrending)
				assert.Equal(t, uint64(7), cfg.Catalog.Seed)
				assert.Equal(t, DefaultSourcePath, cfg.Catalog.SourcePath)
				assert.Equal(t, "out/products.xlsx", cfg.Catalog.OutputPath)
			},
		},
		{
			name: "unprefixed variables are ignored",
			env: map[string]string{
				"OUTPUT_PATH": "/tmp/elsewhere.xlsx",
				"SOURCE_PATH": "/tmp/other.xlsx",
				"OUTPUT":      "json",
				"LEVEL":       "verbose",
				"SEED":        "5",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultSourcePath, cfg.Catalog.SourcePath)
				assert.Equal(t, DefaultSourcePath, cfg.Catalog.OutputPath)
				assert.Zero(t, cfg.Catalog.Seed)
				assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)
				assert.Equal(t, DefaultLogOutput, cfg.Logging.Output)
			},
		},
		{
			name: "prefixed leaf names split on word boundaries",
			env: map[string]string{
				"TRENDING_CATALOG_BACKUP_DIR":     "backups",
				"TRENDING_LOGGING_FILE_PATH":      "logs/run.log",
				"TRENDING_TELEMETRY_METRICS_FILE": "trending.prom",
				"TRENDING_CATALOG_SOURCE_PATH":    "data/catalog.xlsx",
				"TRENDING_CATALOG_SHEET":          "Products",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "backups", cfg.Catalog.BackupDir)
				assert.Equal(t, "logs/run.log", cfg.Logging.FilePath)
				assert.Equal(t, "trending.prom", cfg.Telemetry.MetricsFile)
				assert.Equal(t, "data/catalog.xlsx", cfg.Catalog.SourcePath)
				assert.Equal(t, "data/catalog.xlsx", cfg.Catalog.OutputPath)
				assert.Equal(t, "Products", cfg.Catalog.Sheet)
			},
		},
		{
			name:        "probability out of range",
			env:         map[string]string{"TRENDING_CATALOG_TRENDING_PROBABILITY": "1.5"},
			wantErr:     true,
			wantErrType: apperrors.ErrTypeValidation,
		},
		{
			name:        "negative floor",
			env:         map[string]string{"TRENDING_CATALOG_MIN_TRENDING": "-1"},
			wantErr:     true,
			wantErrType: apperrors.ErrTypeValidation,
		},
		{
			name:        "unknown log output",
			env:         map[string]string{"TRENDING_LOGGING_OUTPUT": "syslog"},
			wantErr:     true,
			wantErrType: apperrors.ErrTypeValidation,
		},
		{
			name:        "file output without path",
			file:        "logging:\n  output: file\n  file_path: \"\"\n",
			wantErr:     true,
			wantErrType: apperrors.ErrTypeValidation,
		},
		{
			name:        "malformed env value",
			env:         map[string]string{"TRENDING_CATALOG_SEED": "not-a-number"},
			wantErr:     true,
			wantErrType: apperrors.ErrTypeConfig,
		},
		{
			name:        "malformed yaml",
			file:        "catalog: [unterminated",
			wantErr:     true,
			wantErrType: apperrors.ErrTypeConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			var path string
			if tt.file != "" {
				path = writeConfigFile(t, tt.file)
			}

			cfg, err := LoadFrom(path)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsType(err, tt.wantErrType), "unexpected error: %v", err)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
			if tt.validateCfg != nil {
				tt.validateCfg(t, cfg)
			}
		})
	}
}

func TestLoadFrom_MissingFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
}

func TestLoad_UsesConfigFileEnv(t *testing.T) {
	path := writeConfigFile(t, "catalog:\n  sheet: Products\n")
	t.Setenv(ConfigFileEnv, path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Products", cfg.Catalog.Sheet)
}
