package config

// SearchConfig holds evaluation defaults
type SearchConfig struct {
	// Time budget for quality-sum mode
	QualityMinutes int `mapstructure:"quality_minutes" validate:"min=0,max=2147483647"`

	// Time budget for top-product mode
	ProductMinutes int `mapstructure:"product_minutes" validate:"min=0,max=2147483647"`

	// Number of leading blueprints evaluated in top-product mode
	ProductLimit int `mapstructure:"product_limit" validate:"min=1"`

	// Parallel blueprint searches; 0 means one per CPU
	Workers int `mapstructure:"workers" validate:"min=0"`

	// Greedily commit to the output recipe's intermediate ingredient
	CommitIntermediate bool `mapstructure:"commit_intermediate"`

	// Clamp unusable surplus stock so equivalent states merge
	DiscardSurplus bool `mapstructure:"discard_surplus"`

	// Prune states whose optimistic ceiling cannot beat the best floor
	OptimisticBound bool `mapstructure:"optimistic_bound"`
}
