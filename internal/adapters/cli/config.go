package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/blueprints-go/internal/domain/blueprint"
	"github.com/andrescamacho/blueprints-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage blueprints configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (BP_* prefix)
2. Config file (config.yaml)
3. Default values

User preferences (default mode and input file) are stored in ~/.blueprints/config.json

Examples:
  blueprints config show
  blueprints config set-mode product
  blueprints config set-input ~/puzzles/day19.txt
  blueprints config clear`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetModeCommand())
	cmd.AddCommand(newConfigSetInputCommand())
	cmd.AddCommand(newConfigClearCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(out, "Using default configuration.")
				cfg = config.Default()
			}

			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			userCfg, err := userConfigHandler.Load()
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load user config: %v\n\n", err)
				userCfg = &config.UserConfig{}
			}

			fmt.Fprintln(out, "Blueprints Configuration")
			fmt.Fprintln(out, "========================")

			fmt.Fprintln(out, "User Preferences:")
			fmt.Fprintf(out, "  Config file:         %s\n", userConfigHandler.GetConfigPath())
			fmt.Fprintf(out, "  Default mode:        %s\n", orNotSet(userCfg.DefaultMode))
			fmt.Fprintf(out, "  Default input:       %s\n", orNotSet(userCfg.DefaultInput))

			fmt.Fprintln(out, "\nSearch:")
			fmt.Fprintf(out, "  Quality minutes:     %d\n", cfg.Search.QualityMinutes)
			fmt.Fprintf(out, "  Product minutes:     %d\n", cfg.Search.ProductMinutes)
			fmt.Fprintf(out, "  Product limit:       %d\n", cfg.Search.ProductLimit)
			fmt.Fprintf(out, "  Workers:             %d\n", cfg.Search.Workers)
			fmt.Fprintf(out, "  Commit intermediate: %t\n", cfg.Search.CommitIntermediate)
			fmt.Fprintf(out, "  Discard surplus:     %t\n", cfg.Search.DiscardSurplus)
			fmt.Fprintf(out, "  Optimistic bound:    %t\n", cfg.Search.OptimisticBound)

			fmt.Fprintln(out, "\nDatabase:")
			fmt.Fprintf(out, "  Type:                %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.URL != "":
				fmt.Fprintf(out, "  URL:                 %s\n", maskPassword(cfg.Database.URL))
			case cfg.Database.Type == "sqlite":
				fmt.Fprintf(out, "  Path:                %s\n", cfg.Database.Path)
			default:
				fmt.Fprintf(out, "  Host:                %s:%d\n", cfg.Database.Host, cfg.Database.Port)
				fmt.Fprintf(out, "  Database:            %s\n", cfg.Database.Name)
				fmt.Fprintf(out, "  User:                %s\n", cfg.Database.User)
			}

			fmt.Fprintln(out, "\nPuzzle Input:")
			fmt.Fprintf(out, "  Base URL:            %s\n", cfg.Input.BaseURL)
			fmt.Fprintf(out, "  Session:             %s\n", maskSecret(cfg.Input.Session))
			fmt.Fprintf(out, "  Cache dir:           %s\n", orNotSet(cfg.Input.CacheDir))
			fmt.Fprintf(out, "  Rate limit:          %d req/s (burst: %d)\n", cfg.Input.RateLimit.Requests, cfg.Input.RateLimit.Burst)
			fmt.Fprintf(out, "  Max retries:         %d\n", cfg.Input.Retry.MaxAttempts)

			fmt.Fprintln(out, "\nLogging:")
			fmt.Fprintf(out, "  Level:               %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "  Format:              %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "  Output:              %s\n", cfg.Logging.Output)

			fmt.Fprintln(out, "\nMetrics:")
			fmt.Fprintf(out, "  Enabled:             %t\n", cfg.Metrics.Enabled)
			fmt.Fprintf(out, "  Pushgateway:         %s\n", orNotSet(cfg.Metrics.PushgatewayURL))

			return nil
		},
	}

	return cmd
}

func newConfigSetModeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-mode <quality|product>",
		Short: "Set the default evaluation mode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := blueprint.ParseMode(args[0])
			if err != nil {
				return err
			}

			handler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := handler.SetDefaultMode(string(mode)); err != nil {
				return fmt.Errorf("failed to save default mode: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Default mode set to %s\n", mode)
			return nil
		},
	}
}

func newConfigSetInputCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-input <file>",
		Short: "Set the default blueprint file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := handler.SetDefaultInput(args[0]); err != nil {
				return fmt.Errorf("failed to save default input: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Default input set to %s\n", args[0])
			return nil
		},
	}
}

func newConfigClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear user preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := handler.Clear(); err != nil {
				return fmt.Errorf("failed to clear preferences: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "✓ Preferences cleared")
			return nil
		},
	}
}

func orNotSet(value string) string {
	if value == "" {
		return "(not set)"
	}
	return value
}

// maskSecret shows only the last four characters of a token
func maskSecret(secret string) string {
	if secret == "" {
		return "(not set)"
	}
	if len(secret) <= 4 {
		return "****"
	}
	return "****" + secret[len(secret)-4:]
}

// maskPassword hides the password of a connection URL
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "****")
	}
	return u.String()
}
