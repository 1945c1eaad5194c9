package cli

import (
	"fmt"

	"github.com/andrescamacho/blueprints-go/internal/domain/blueprint"
	"github.com/andrescamacho/blueprints-go/internal/infrastructure/config"
)

// resolveMode resolves the evaluation mode from the flag or user defaults.
// Priority: --mode flag > user config default > quality.
func resolveMode(flagValue string) (blueprint.Mode, error) {
	if flagValue != "" {
		return blueprint.ParseMode(flagValue)
	}

	userCfg, err := loadUserConfig()
	if err == nil && userCfg.DefaultMode != "" {
		return blueprint.ParseMode(userCfg.DefaultMode)
	}

	return blueprint.ModeQualitySum, nil
}

// resolveInputPath resolves the blueprint file from arguments or user defaults.
// Returns an error only if no file can be identified from any source.
func resolveInputPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	userCfg, err := loadUserConfig()
	if err != nil {
		return "", fmt.Errorf("no input file specified and failed to load user config: %w", err)
	}
	if userCfg.DefaultInput != "" {
		return userCfg.DefaultInput, nil
	}

	return "", fmt.Errorf("no input file specified: pass a file, or set a default with 'blueprints config set-input'")
}

// resolveTimeBudget returns the minutes flag or the configured default for the mode
func resolveTimeBudget(flagValue int, mode blueprint.Mode, search config.SearchConfig) int {
	if flagValue >= 0 {
		return flagValue
	}
	if mode == blueprint.ModeTopProduct {
		return search.ProductMinutes
	}
	return search.QualityMinutes
}

// resolveLimit returns the limit flag or the configured default for the mode.
// Quality mode evaluates everything unless a limit is given.
func resolveLimit(flagValue int, mode blueprint.Mode, search config.SearchConfig) int {
	if flagValue >= 0 {
		return flagValue
	}
	if mode == blueprint.ModeTopProduct {
		return search.ProductLimit
	}
	return 0
}

func loadUserConfig() (*config.UserConfig, error) {
	handler, err := config.NewUserConfigHandler()
	if err != nil {
		return nil, err
	}
	return handler.Load()
}
