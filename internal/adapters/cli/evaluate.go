package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/blueprints-go/internal/adapters/parser"
	"github.com/andrescamacho/blueprints-go/internal/application/common"
	"github.com/andrescamacho/blueprints-go/internal/application/evaluation/commands"
	"github.com/andrescamacho/blueprints-go/internal/domain/blueprint"
	"github.com/andrescamacho/blueprints-go/internal/infrastructure/config"
)

// NewEvaluateCommand creates the evaluate command
func NewEvaluateCommand() *cobra.Command {
	var (
		modeFlag           string
		minutes            int
		limit              int
		workers            int
		commitIntermediate bool
		noBound            bool
		save               bool
		asJSON             bool
	)

	cmd := &cobra.Command{
		Use:   "evaluate [file]",
		Short: "Evaluate blueprints and print the aggregate score",
		Long: `Evaluate every blueprint in a puzzle text or YAML file.

Modes:
  quality  sum of blueprint id x best output over every blueprint (default 24 minutes)
  product  product of best outputs over the first --limit blueprints (default 32 minutes, limit 3)

When no file is given, the default input from 'blueprints config set-input' is used.

Examples:
  blueprints evaluate input.txt
  blueprints evaluate input.txt --mode product
  blueprints evaluate blueprints.yaml --minutes 20 --workers 2 --json
  blueprints evaluate input.txt --save`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := resolveMode(modeFlag)
			if err != nil {
				return err
			}
			path, err := resolveInputPath(args)
			if err != nil {
				return err
			}

			blueprints, err := parser.LoadFile(path)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			ctx, app, err := newApplication(ctx, appOptions{
				withDatabase: save,
				configure: func(cfg *config.Config) {
					if cmd.Flags().Changed("commit-intermediate") {
						cfg.Search.CommitIntermediate = commitIntermediate
					}
					if noBound {
						cfg.Search.OptimisticBound = false
					}
				},
			})
			if err != nil {
				return err
			}
			defer app.Close()

			if workers <= 0 {
				workers = app.cfg.Search.Workers
			}

			resp, err := app.mediator.Send(ctx, &commands.EvaluateBlueprintsCommand{
				Blueprints: blueprints,
				Mode:       mode,
				TimeBudget: resolveTimeBudget(minutes, mode, app.cfg.Search),
				Limit:      resolveLimit(limit, mode, app.cfg.Search),
				Workers:    workers,
				Save:       save,
			})
			app.pushMetrics(ctx, map[string]string{"mode": string(mode)})

			evaluated, _ := resp.(*commands.EvaluateBlueprintsResponse)
			if evaluated == nil || evaluated.Run == nil {
				if errors.Is(err, context.Canceled) {
					return fmt.Errorf("evaluation interrupted")
				}
				return err
			}
			if err != nil {
				// The run finished but could not be saved; report both
				common.LoggerFromContext(ctx).Log("ERROR", "[CLI] Run not saved", map[string]interface{}{
					"run_id": evaluated.Run.ID(),
					"error":  err,
				})
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if writeErr := writeRunJSON(out, evaluated.Run, evaluated.Saved); writeErr != nil {
					return writeErr
				}
			} else {
				writeRunText(out, evaluated.Run, evaluated.Saved)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&modeFlag, "mode", "", "Evaluation mode: quality or product (default: user preference, then quality)")
	cmd.Flags().IntVar(&minutes, "minutes", -1, "Time budget in minutes (default: 24 for quality, 32 for product)")
	cmd.Flags().IntVar(&limit, "limit", -1, "Evaluate only the first N blueprints (default: all for quality, 3 for product)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Parallel blueprint searches (default: one per CPU)")
	cmd.Flags().BoolVar(&commitIntermediate, "commit-intermediate", false, "Greedily build the output's intermediate ingredient when affordable (faster, may miss the optimum)")
	cmd.Flags().BoolVar(&noBound, "no-bound", false, "Disable optimistic-bound pruning")
	cmd.Flags().BoolVar(&save, "save", false, "Store the run in the database")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the run as JSON")

	return cmd
}

// runReport is the JSON form of an evaluation run
type runReport struct {
	ID         string            `json:"id"`
	Mode       string            `json:"mode"`
	Minutes    int               `json:"minutes"`
	Limit      int               `json:"limit,omitempty"`
	Aggregate  int               `json:"aggregate"`
	Saved      bool              `json:"saved"`
	StartedAt  string            `json:"started_at"`
	DurationMs int64             `json:"duration_ms"`
	Blueprints []blueprintReport `json:"blueprints"`
}

type blueprintReport struct {
	ID           int   `json:"id"`
	Position     int   `json:"position"`
	BestScore    int   `json:"best_score"`
	Quality      int   `json:"quality"`
	Expanded     int   `json:"states_expanded"`
	Duplicates   int   `json:"states_duplicate"`
	Pruned       int   `json:"states_pruned"`
	PeakFrontier int   `json:"peak_frontier"`
	DurationMs   int64 `json:"duration_ms"`
}

func newRunReport(run *blueprint.EvaluationRun, saved bool) runReport {
	report := runReport{
		ID:         run.ID(),
		Mode:       string(run.Mode()),
		Minutes:    run.TimeBudget(),
		Limit:      run.Limit(),
		Aggregate:  run.Aggregate(),
		Saved:      saved,
		StartedAt:  run.StartedAt().Format(time.RFC3339),
		DurationMs: run.Duration().Milliseconds(),
	}
	for _, res := range run.Results() {
		report.Blueprints = append(report.Blueprints, blueprintReport{
			ID:           res.BlueprintID,
			Position:     res.Position,
			BestScore:    res.BestScore,
			Quality:      res.Quality(),
			Expanded:     res.Stats.Expanded,
			Duplicates:   res.Stats.Duplicates,
			Pruned:       res.Stats.Pruned,
			PeakFrontier: res.Stats.PeakFrontier,
			DurationMs:   res.Duration.Milliseconds(),
		})
	}
	return report
}

func writeRunJSON(w io.Writer, run *blueprint.EvaluationRun, saved bool) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(newRunReport(run, saved)); err != nil {
		return fmt.Errorf("failed to encode run: %w", err)
	}
	return nil
}
