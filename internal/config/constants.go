package config

// Application constants
const (
	AppName    = "trendcli"
	AppVersion = "1.0.0"

	// EnvPrefix namespaces every environment variable, e.g. TRENDING_CATALOG_SEED.
	EnvPrefix = "TRENDING"
	// ConfigFileEnv names the optional YAML config file.
	ConfigFileEnv = "TRENDING_CONFIG_FILE"

	// Catalog defaults
	DefaultSourcePath          = "src/data/products.xlsx"
	DefaultTrendingProbability = 0.25
	DefaultMinTrending         = 8

	// Logging defaults
	DefaultLogLevel  = "warn"
	DefaultLogOutput = "console"
	DefaultLogFile   = "logs/trending.log"
)
