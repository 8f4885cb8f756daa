package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the entire application configuration. Values are populated by
// viper from file, environment and bound CLI flags, then checked once by
// Validate so the engines downstream never see a half-formed config.
type Config struct {
	Logger     LoggerConfig     `mapstructure:"logger" yaml:"logger"`
	Enrichment EnrichmentConfig `mapstructure:"enrichment" yaml:"enrichment"`
	Catalog    CatalogConfig    `mapstructure:"catalog" yaml:"catalog"`
	Scoring    ScoringConfig    `mapstructure:"scoring" yaml:"scoring"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// EnrichmentConfig tunes the lineage/readme cache subsystem, the only
// concurrent part of the engine.
type EnrichmentConfig struct {
	Concurrency      int           `mapstructure:"concurrency" yaml:"concurrency"`
	LineageBatchSize int           `mapstructure:"lineage_batch_size" yaml:"lineage_batch_size"`
	LineageDepth     int           `mapstructure:"lineage_depth" yaml:"lineage_depth"`
	CacheTTL         time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`
	CacheMaxEntries  int           `mapstructure:"cache_max_entries" yaml:"cache_max_entries"`
}

// CatalogConfig holds the connection details for the catalog REST client.
// The API token only arrives via environment, never the config file.
type CatalogConfig struct {
	BaseURL   string        `mapstructure:"base_url" yaml:"base_url"`
	APIToken  string        `mapstructure:"api_token" yaml:"-"`
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout"`
	RateLimit float64       `mapstructure:"rate_limit" yaml:"rate_limit"`
	RateBurst int           `mapstructure:"rate_burst" yaml:"rate_burst"`
}

// SetDefaults initializes default values for all configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "metascope")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	// -- Enrichment --
	v.SetDefault("enrichment.concurrency", 4)
	v.SetDefault("enrichment.lineage_batch_size", 50)
	v.SetDefault("enrichment.lineage_depth", 1)
	v.SetDefault("enrichment.cache_ttl", 5*time.Minute)
	v.SetDefault("enrichment.cache_max_entries", 500)

	// -- Catalog --
	v.SetDefault("catalog.timeout", "30s")
	v.SetDefault("catalog.rate_limit", 10.0)
	v.SetDefault("catalog.rate_burst", 20)

	setScoringDefaults(v)
}

// NewDefaultConfig returns a configuration populated with defaults only.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// Defaults are under our control; failing to unmarshal them is a bug.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	cfg.Scoring.applyStaticDefaults()
	return &cfg
}

// NewFromViper builds and validates a configuration from a viper instance.
func NewFromViper(v *viper.Viper) (*Config, error) {
	if err := v.BindEnv("catalog.api_token", "METASCOPE_CATALOG_TOKEN"); err != nil {
		return nil, fmt.Errorf("error binding environment: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.Scoring.applyStaticDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	if c.Enrichment.Concurrency <= 0 {
		return fmt.Errorf("enrichment.concurrency must be a positive integer")
	}
	if c.Enrichment.LineageBatchSize <= 0 {
		return fmt.Errorf("enrichment.lineage_batch_size must be a positive integer")
	}
	if c.Enrichment.CacheTTL <= 0 {
		return fmt.Errorf("enrichment.cache_ttl must be a positive duration")
	}
	if c.Enrichment.CacheMaxEntries <= 0 {
		return fmt.Errorf("enrichment.cache_max_entries must be a positive integer")
	}
	if c.Catalog.RateLimit <= 0 {
		return fmt.Errorf("catalog.rate_limit must be positive")
	}
	if err := c.Scoring.Validate(); err != nil {
		return fmt.Errorf("scoring configuration invalid: %w", err)
	}
	return nil
}
