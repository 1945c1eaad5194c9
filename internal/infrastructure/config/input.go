package config

import "time"

// InputConfig holds puzzle input client configuration
type InputConfig struct {
	// Base URL of the puzzle site
	BaseURL string `mapstructure:"base_url" validate:"required,url"`

	// Session cookie value (never written to the config file by the CLI)
	Session string `mapstructure:"session"`

	// Directory where fetched inputs are cached; empty disables the cache
	CacheDir string `mapstructure:"cache_dir"`

	// Request timeout
	Timeout time.Duration `mapstructure:"timeout" validate:"required"`

	// Rate limiting settings
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// Retry configuration
	Retry RetryConfig `mapstructure:"retry"`

	// Circuit breaker configuration
	Circuit CircuitConfig `mapstructure:"circuit"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	// Maximum requests per second
	Requests int `mapstructure:"requests" validate:"min=1"`

	// Burst size for token bucket
	Burst int `mapstructure:"burst" validate:"min=1"`
}

// RetryConfig holds retry configuration for failed requests
type RetryConfig struct {
	// Maximum number of retry attempts
	MaxAttempts int `mapstructure:"max_attempts" validate:"min=0"`

	// Base duration for exponential backoff
	BackoffBase time.Duration `mapstructure:"backoff_base"`
}

// CircuitConfig holds circuit breaker configuration
type CircuitConfig struct {
	// Consecutive failures before the circuit opens
	MaxFailures int `mapstructure:"max_failures" validate:"min=1"`

	// Cool-down before a probe request is allowed
	Timeout time.Duration `mapstructure:"timeout"`
}
