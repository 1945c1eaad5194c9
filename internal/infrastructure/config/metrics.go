package config

// MetricsConfig holds metrics collection and push configuration
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active
	Enabled bool `mapstructure:"enabled"`

	// Pushgateway URL; metrics are pushed after each CLI run when set
	PushgatewayURL string `mapstructure:"pushgateway_url" validate:"omitempty,url"`

	// Job name used for the push grouping key
	Job string `mapstructure:"job"`
}
