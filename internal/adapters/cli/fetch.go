package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/blueprints-go/internal/adapters/input"
	"github.com/andrescamacho/blueprints-go/internal/adapters/parser"
)

// NewFetchCommand creates the fetch command
func NewFetchCommand() *cobra.Command {
	var (
		year   int
		day    int
		output string
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download a puzzle input",
		Long: `Download a puzzle input using the session token from BP_INPUT_SESSION
(or AOC_SESSION). Inputs are cached under input.cache_dir and reused.

The input is checked by parsing it before it is written.

Examples:
  blueprints fetch --year 2022 --day 19
  blueprints fetch --year 2022 --day 19 --output input.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, app, err := newApplication(cmd.Context(), appOptions{})
			if err != nil {
				return err
			}
			defer app.Close()

			in := app.cfg.Input
			client := input.NewClient(input.Config{
				BaseURL:         in.BaseURL,
				Session:         in.Session,
				CacheDir:        in.CacheDir,
				Timeout:         in.Timeout,
				RequestsPerSec:  float64(in.RateLimit.Requests),
				Burst:           in.RateLimit.Burst,
				MaxRetries:      in.Retry.MaxAttempts,
				BackoffBase:     in.Retry.BackoffBase,
				CircuitFailures: in.Circuit.MaxFailures,
				CircuitTimeout:  in.Circuit.Timeout,
			}, nil)

			fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
			defer cancel()

			body, err := client.FetchInput(fetchCtx, year, day)
			app.pushMetrics(ctx, map[string]string{"command": "fetch"})
			if err != nil {
				return err
			}

			blueprints, err := parser.ParseBlueprints(body)
			if err != nil {
				return fmt.Errorf("downloaded input is not a blueprint list: %w", err)
			}

			if output == "" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}
			if err := os.WriteFile(output, []byte(body), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d blueprints to %s\n", len(blueprints), output)
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 2022, "Puzzle year")
	cmd.Flags().IntVar(&day, "day", 19, "Puzzle day")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the input to a file instead of stdout")

	return cmd
}

// fetchTimeout bounds a single fetch including retries
const fetchTimeout = 2 * time.Minute
