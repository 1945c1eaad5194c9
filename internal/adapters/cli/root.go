package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "blueprints",
		Short: "Blueprints - find the best output each robot factory blueprint can reach",
		Long: `Blueprints evaluates robot factory blueprints: for each cost table it
searches every build order within a time budget and reports the largest
number of output units (geodes) the factory can collect.

Examples:
  blueprints evaluate input.txt
  blueprints evaluate input.txt --mode product --minutes 32 --limit 3
  blueprints evaluate blueprints.yaml --json --save
  blueprints fetch --year 2022 --day 19 --output input.txt
  blueprints runs list
  blueprints runs show quality-24m-0a1b2c3d
  blueprints convert input.txt --to yaml`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml, ./configs/config.yaml, /etc/blueprints/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	// Add command groups
	rootCmd.AddCommand(NewEvaluateCommand())
	rootCmd.AddCommand(NewFetchCommand())
	rootCmd.AddCommand(NewRunsCommand())
	rootCmd.AddCommand(NewConvertCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
