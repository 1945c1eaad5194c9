package commands

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/blueprints-go/internal/application/common"
	"github.com/andrescamacho/blueprints-go/internal/application/evaluation"
	"github.com/andrescamacho/blueprints-go/internal/domain/blueprint"
)

// EvaluateBlueprintsCommand evaluates a list of blueprints in one mode
type EvaluateBlueprintsCommand struct {
	Blueprints []blueprint.Blueprint `validate:"required,min=1"`
	Mode       blueprint.Mode        `validate:"required,oneof=quality product"`
	TimeBudget int                   `validate:"min=0,max=2147483647"`
	Limit      int                   `validate:"min=0"`
	Workers    int                   `validate:"min=0"`
	Save       bool
}

// EvaluateBlueprintsResponse carries the finished run
type EvaluateBlueprintsResponse struct {
	Run   *blueprint.EvaluationRun
	Saved bool
}

// EvaluateBlueprintsHandler handles EvaluateBlueprintsCommand
type EvaluateBlueprintsHandler struct {
	evaluator *evaluation.Evaluator
	validate  *validator.Validate
	canSave   bool
}

// NewEvaluateBlueprintsHandler creates the handler. canSave reports whether the
// evaluator was built with a run repository.
func NewEvaluateBlueprintsHandler(evaluator *evaluation.Evaluator, canSave bool) *EvaluateBlueprintsHandler {
	return &EvaluateBlueprintsHandler{
		evaluator: evaluator,
		validate:  validator.New(),
		canSave:   canSave,
	}
}

// Handle validates the command and runs the evaluation
func (h *EvaluateBlueprintsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*EvaluateBlueprintsCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	if len(cmd.Blueprints) == 0 {
		return nil, blueprint.ErrNoBlueprints
	}
	if err := h.validate.Struct(cmd); err != nil {
		return nil, fmt.Errorf("invalid evaluate command: %w", err)
	}

	run, err := h.evaluator.Evaluate(ctx, evaluation.EvaluateRequest{
		Blueprints: cmd.Blueprints,
		Mode:       cmd.Mode,
		TimeBudget: cmd.TimeBudget,
		Limit:      cmd.Limit,
		Workers:    cmd.Workers,
		Save:       cmd.Save,
	})
	if err != nil {
		if run != nil {
			// Evaluation finished but saving failed; keep the result
			return &EvaluateBlueprintsResponse{Run: run}, err
		}
		return nil, err
	}

	return &EvaluateBlueprintsResponse{
		Run:   run,
		Saved: cmd.Save && h.canSave,
	}, nil
}
