package evaluation

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/andrescamacho/blueprints-go/internal/adapters/metrics"
	"github.com/andrescamacho/blueprints-go/internal/application/common"
	"github.com/andrescamacho/blueprints-go/internal/domain/blueprint"
	"github.com/andrescamacho/blueprints-go/internal/domain/production"
	"github.com/andrescamacho/blueprints-go/internal/domain/search"
	"github.com/andrescamacho/blueprints-go/internal/domain/shared"
	"github.com/andrescamacho/blueprints-go/pkg/utils"
)

// Options controls how each blueprint is searched
type Options struct {
	Policy          production.PolicyOptions
	OptimisticBound bool
}

// DefaultOptions enables every sound reduction and leaves the greedy
// intermediate commit off
func DefaultOptions() Options {
	return Options{
		Policy:          production.DefaultPolicyOptions(),
		OptimisticBound: true,
	}
}

// EvaluateRequest describes one evaluation run
type EvaluateRequest struct {
	Blueprints []blueprint.Blueprint
	Mode       blueprint.Mode
	TimeBudget int
	Limit      int
	Workers    int  // <= 0 means one per CPU
	Save       bool // persist the run when a repository is configured
}

// Evaluator runs the search once per blueprint and folds the results.
//
// Blueprints are independent, so Evaluate searches them in parallel. Each
// search owns its frontier and visited set; only the immutable cost table is
// shared.
type Evaluator struct {
	opts  Options
	repo  blueprint.RunRepository
	clock shared.Clock
	newID func(mode string, budget int) string
}

// NewEvaluator creates an evaluator. repo may be nil (runs are never saved);
// a nil clock uses the real clock.
func NewEvaluator(opts Options, repo blueprint.RunRepository, clock shared.Clock) *Evaluator {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Evaluator{
		opts:  opts,
		repo:  repo,
		clock: clock,
		newID: utils.GenerateRunID,
	}
}

// Options returns the search options
func (e *Evaluator) Options() Options {
	return e.opts
}

// EvaluateBlueprint searches one blueprint with the given time budget.
// The cost table is validated when the blueprint is built, so any failure here
// is either a bad budget or a transition error from the policy.
func (e *Evaluator) EvaluateBlueprint(ctx context.Context, bp blueprint.Blueprint, budget int) (blueprint.Result, error) {
	logger := common.LoggerFromContext(ctx)

	if bp.Costs == nil {
		return blueprint.Result{}, &blueprint.ErrInvalidBlueprint{ID: bp.ID, Reason: "missing cost table"}
	}

	initial, err := production.NewInitialState(bp.Catalog(), budget)
	if err != nil {
		return blueprint.Result{}, err
	}

	policy := production.NewPruningPolicy(bp.Costs, e.opts.Policy)
	engine := search.NewEngine(search.WithBounds(e.opts.OptimisticBound))

	logger.Log("DEBUG", "[Evaluate] Searching blueprint", map[string]interface{}{
		"blueprint_id":        bp.ID,
		"time_budget":         budget,
		"commit_intermediate": e.opts.Policy.CommitIntermediate,
		"discard_surplus":     e.opts.Policy.DiscardSurplus,
		"optimistic_bound":    e.opts.OptimisticBound,
	})

	start := e.clock.Now()
	outcome, err := engine.Run(initial, policy)
	if err != nil {
		return blueprint.Result{}, fmt.Errorf("search aborted for blueprint %d: %w", bp.ID, err)
	}

	result := blueprint.Result{
		BlueprintID: bp.ID,
		BestScore:   outcome.BestScore,
		Stats:       outcome.Stats,
		Duration:    e.clock.Now().Sub(start),
	}

	logger.Log("INFO", "[Evaluate] Blueprint evaluated", map[string]interface{}{
		"blueprint_id":  bp.ID,
		"best_score":    result.BestScore,
		"expanded":      result.Stats.Expanded,
		"duplicates":    result.Stats.Duplicates,
		"pruned":        result.Stats.Pruned,
		"peak_frontier": result.Stats.PeakFrontier,
		"duration_ms":   result.Duration.Milliseconds(),
	})

	return result, nil
}

// Evaluate selects the blueprints for the request's mode, searches them in
// parallel, and returns the finished run with its aggregate. Results keep the
// input order. Cancellation is checked before each blueprint starts; a running
// search is not interrupted.
func (e *Evaluator) Evaluate(ctx context.Context, req EvaluateRequest) (*blueprint.EvaluationRun, error) {
	logger := common.LoggerFromContext(ctx)

	if !req.Mode.IsValid() {
		return nil, &blueprint.ErrUnknownMode{Name: string(req.Mode)}
	}
	if req.TimeBudget < 0 || req.TimeBudget > production.MaxTimeBudget {
		return nil, &production.ErrInvalidTimeBudget{Budget: req.TimeBudget}
	}

	selected, err := blueprint.SelectForMode(req.Mode, req.Blueprints, req.Limit)
	if err != nil {
		return nil, err
	}

	workers := req.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = utils.Clamp(workers, 1, len(selected))

	logger.Log("INFO", "[Evaluate] Starting evaluation run", map[string]interface{}{
		"mode":        req.Mode.String(),
		"time_budget": req.TimeBudget,
		"blueprints":  len(selected),
		"workers":     workers,
	})

	startedAt := e.clock.Now()
	results := make([]blueprint.Result, len(selected))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, bp := range selected {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			result, err := e.EvaluateBlueprint(gctx, bp, req.TimeBudget)
			if err != nil {
				metrics.RecordBlueprintFailure(req.Mode, bp.ID)
				logger.Log("ERROR", "[Evaluate] Blueprint evaluation failed", map[string]interface{}{
					"blueprint_id": bp.ID,
					"error":        err.Error(),
				})
				return fmt.Errorf("blueprint %d: %w", bp.ID, err)
			}

			metrics.RecordBlueprintEvaluation(req.Mode, result)
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		metrics.RecordRun(req.Mode, 0, false, e.clock.Now().Sub(startedAt).Seconds())
		return nil, err
	}

	finishedAt := e.clock.Now()
	run, err := blueprint.NewEvaluationRun(
		e.newID(req.Mode.String(), req.TimeBudget),
		req.Mode,
		req.TimeBudget,
		req.Limit,
		results,
		startedAt,
		finishedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record evaluation run: %w", err)
	}

	metrics.RecordRun(req.Mode, run.Aggregate(), true, run.Duration().Seconds())

	logger.Log("INFO", "[Evaluate] Evaluation run completed", map[string]interface{}{
		"run_id":          run.ID(),
		"mode":            req.Mode.String(),
		"aggregate":       run.Aggregate(),
		"states_expanded": run.StatesExpanded(),
		"duration_ms":     run.Duration().Milliseconds(),
	})

	if req.Save && e.repo != nil {
		if err := e.repo.Save(ctx, run); err != nil {
			return run, fmt.Errorf("failed to save evaluation run %s: %w", run.ID(), err)
		}
		logger.Log("INFO", "[Evaluate] Evaluation run saved", map[string]interface{}{
			"run_id": run.ID(),
		})
	}

	return run, nil
}
