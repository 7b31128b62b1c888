// Package config provides centralized configuration management for trendcli.
// It handles loading configuration from multiple sources and validation.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file named by TRENDING_CONFIG_FILE
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern TRENDING_<SECTION>_<KEY>:
//
//	TRENDING_CATALOG_SOURCE_PATH=src/data/products.xlsx
//	TRENDING_CATALOG_MIN_TRENDING=8
//	TRENDING_CATALOG_SEED=42
//	TRENDING_LOGGING_LEVEL=info
//	TRENDING_TELEMETRY_METRICS_FILE=/var/lib/node_exporter/trending.prom
//
// With no file and no variables a run enriches src/data/products.xlsx in place
// with probability 0.25 and a floor of 8 trending products.
package config
