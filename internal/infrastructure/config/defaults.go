package config

import (
	"runtime"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultQualityMinutes is the time budget of quality-sum mode
	DefaultQualityMinutes = 24
	// DefaultProductMinutes is the time budget of top-product mode
	DefaultProductMinutes = 32
	// DefaultProductLimit is the number of blueprints top-product mode evaluates
	DefaultProductLimit = 3
)

// Default returns a fully defaulted configuration
func Default() *Config {
	cfg := &Config{}
	cfg.Search.DiscardSurplus = true
	cfg.Search.OptimisticBound = true
	SetDefaults(cfg)
	return cfg
}

// envKeys are bound explicitly so AutomaticEnv reaches them during Unmarshal
// even when no config file mentions them
var envKeys = []string{
	"database.type", "database.url", "database.path", "database.host", "database.port",
	"database.user", "database.password", "database.name", "database.sslmode",
	"input.base_url", "input.session", "input.cache_dir", "input.timeout",
	"input.rate_limit.requests", "input.rate_limit.burst",
	"input.retry.max_attempts", "input.retry.backoff_base",
	"search.quality_minutes", "search.product_minutes", "search.product_limit", "search.workers",
	"logging.level", "logging.format", "logging.output", "logging.file_path",
	"metrics.pushgateway_url", "metrics.job",
}

// registerDefaults sets viper defaults for values SetDefaults cannot tell
// apart from an explicit zero (booleans that default to true)
func registerDefaults(v *viper.Viper) {
	v.SetDefault("search.discard_surplus", true)
	v.SetDefault("search.optimistic_bound", true)
	v.SetDefault("search.commit_intermediate", false)
	v.SetDefault("metrics.enabled", false)

	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}
}

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Type == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = "blueprints.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "blueprints"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "blueprints"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 10
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 2
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Input defaults
	if cfg.Input.BaseURL == "" {
		cfg.Input.BaseURL = "https://adventofcode.com"
	}
	if cfg.Input.CacheDir == "" {
		cfg.Input.CacheDir = ".cache/inputs"
	}
	if cfg.Input.Timeout == 0 {
		cfg.Input.Timeout = 30 * time.Second
	}
	if cfg.Input.RateLimit.Requests == 0 {
		cfg.Input.RateLimit.Requests = 1
	}
	if cfg.Input.RateLimit.Burst == 0 {
		cfg.Input.RateLimit.Burst = 1
	}
	if cfg.Input.Retry.MaxAttempts == 0 {
		cfg.Input.Retry.MaxAttempts = 3
	}
	if cfg.Input.Retry.BackoffBase == 0 {
		cfg.Input.Retry.BackoffBase = 1 * time.Second
	}
	if cfg.Input.Circuit.MaxFailures == 0 {
		cfg.Input.Circuit.MaxFailures = 5
	}
	if cfg.Input.Circuit.Timeout == 0 {
		cfg.Input.Circuit.Timeout = time.Minute
	}

	// Search defaults
	if cfg.Search.QualityMinutes == 0 {
		cfg.Search.QualityMinutes = DefaultQualityMinutes
	}
	if cfg.Search.ProductMinutes == 0 {
		cfg.Search.ProductMinutes = DefaultProductMinutes
	}
	if cfg.Search.ProductLimit == 0 {
		cfg.Search.ProductLimit = DefaultProductLimit
	}
	if cfg.Search.Workers == 0 {
		cfg.Search.Workers = runtime.NumCPU()
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	// Metrics defaults
	if cfg.Metrics.Job == "" {
		cfg.Metrics.Job = "blueprints"
	}
}
