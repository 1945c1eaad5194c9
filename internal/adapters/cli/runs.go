package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/blueprints-go/internal/application/evaluation/commands"
)

// NewRunsCommand creates the runs command with subcommands
func NewRunsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect saved evaluation runs",
		Long: `List and show evaluation runs stored with 'blueprints evaluate --save'.

Examples:
  blueprints runs list
  blueprints runs list --limit 5
  blueprints runs show quality-24m-0a1b2c3d --json`,
	}

	cmd.AddCommand(newRunsListCommand())
	cmd.AddCommand(newRunsShowCommand())

	return cmd
}

func newRunsListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, app, err := newApplication(cmd.Context(), appOptions{withDatabase: true})
			if err != nil {
				return err
			}
			defer app.Close()

			resp, err := app.mediator.Send(ctx, &commands.ListRunsQuery{Limit: limit})
			if err != nil {
				return err
			}

			listed, ok := resp.(*commands.ListRunsResponse)
			if !ok {
				return fmt.Errorf("unexpected response type %T", resp)
			}
			writeRunList(cmd.OutOrStdout(), listed.Runs)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")

	return cmd
}

func newRunsShowCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one run with per-blueprint results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, app, err := newApplication(cmd.Context(), appOptions{withDatabase: true})
			if err != nil {
				return err
			}
			defer app.Close()

			resp, err := app.mediator.Send(ctx, &commands.GetRunQuery{ID: args[0]})
			if err != nil {
				return err
			}

			found, ok := resp.(*commands.GetRunResponse)
			if !ok {
				return fmt.Errorf("unexpected response type %T", resp)
			}
			if asJSON {
				return writeRunJSON(cmd.OutOrStdout(), found.Run, true)
			}
			writeRunText(cmd.OutOrStdout(), found.Run, false)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the run as JSON")

	return cmd
}
