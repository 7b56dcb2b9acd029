// Package config loads the run configuration from a YAML or JSON file and
// SALESMART_* environment variables. Environment values win over the file,
// and CLI flags (applied by the caller) win over both.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SALESMART_SOURCE_DSN.
const EnvPrefix = "SALESMART"

// Config holds all configuration for a mart build.
type Config struct {
	// Job labels metrics and log lines.
	Job string `mapstructure:"job"`

	// Locale selects day, month and label vocabulary ("es", "en").
	Locale string `mapstructure:"locale"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	Source  Source  `mapstructure:"source"`
	Storage Storage `mapstructure:"storage"`
	Metrics Metrics `mapstructure:"metrics"`
}

// Source configures extraction.
type Source struct {
	// Kind is "sqlserver" or "sqlite".
	Kind string `mapstructure:"kind"`
	DSN  string `mapstructure:"dsn"`

	// Queries overrides the default extraction query per entity
	// (invoice_lines, customers, employees, products, suppliers).
	Queries map[string]string `mapstructure:"queries"`
}

// Storage configures the analytical store.
type Storage struct {
	// Kind is a registered storage backend: postgres, mssql, sqlite.
	Kind string `mapstructure:"kind"`
	DSN  string `mapstructure:"dsn"`

	// Schema qualifies table names; empty uses the connection default.
	Schema    string `mapstructure:"schema"`
	BatchSize int    `mapstructure:"batch_size"`
}

// Metrics selects the metrics backend.
type Metrics struct {
	// Backend is "none", "pushgateway" or "datadog".
	Backend        string   `mapstructure:"backend"`
	PushgatewayURL string   `mapstructure:"pushgateway_url"`
	DatadogAddr    string   `mapstructure:"datadog_addr"`
	DatadogTags    []string `mapstructure:"datadog_tags"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Job:      "salesmart",
		Locale:   "es",
		LogLevel: "info",
		Source: Source{
			Kind: "sqlserver",
		},
		Storage: Storage{
			Kind:      "postgres",
			BatchSize: 5000,
		},
		Metrics: Metrics{
			Backend:        "none",
			PushgatewayURL: "http://localhost:9091",
			DatadogAddr:    "127.0.0.1:8125",
		},
	}
}

// Load reads configuration from configFile (when set) or ./salesmart.yaml
// (when present), then applies environment overrides.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("salesmart")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, DefaultConfig())

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can see it during
// Unmarshal.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("job", d.Job)
	v.SetDefault("locale", d.Locale)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("source.kind", d.Source.Kind)
	v.SetDefault("source.dsn", d.Source.DSN)
	v.SetDefault("storage.kind", d.Storage.Kind)
	v.SetDefault("storage.dsn", d.Storage.DSN)
	v.SetDefault("storage.schema", d.Storage.Schema)
	v.SetDefault("storage.batch_size", d.Storage.BatchSize)
	v.SetDefault("metrics.backend", d.Metrics.Backend)
	v.SetDefault("metrics.pushgateway_url", d.Metrics.PushgatewayURL)
	v.SetDefault("metrics.datadog_addr", d.Metrics.DatadogAddr)
	v.SetDefault("metrics.datadog_tags", d.Metrics.DatadogTags)
}
