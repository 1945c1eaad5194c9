package commands

import (
	"fmt"

	"github.com/andrescamacho/blueprints-go/internal/application/common"
	"github.com/andrescamacho/blueprints-go/internal/application/evaluation"
	"github.com/andrescamacho/blueprints-go/internal/domain/blueprint"
)

// RegisterHandlers registers the evaluation command and, when repo is not nil,
// the run queries on the mediator
func RegisterHandlers(m common.Mediator, evaluator *evaluation.Evaluator, repo blueprint.RunRepository) error {
	evaluateHandler := NewEvaluateBlueprintsHandler(evaluator, repo != nil)
	if err := common.RegisterHandler[*EvaluateBlueprintsCommand](m, evaluateHandler); err != nil {
		return fmt.Errorf("failed to register EvaluateBlueprints handler: %w", err)
	}

	if repo == nil {
		return nil
	}

	if err := common.RegisterHandler[*GetRunQuery](m, NewGetRunHandler(repo)); err != nil {
		return fmt.Errorf("failed to register GetRun handler: %w", err)
	}
	if err := common.RegisterHandler[*ListRunsQuery](m, NewListRunsHandler(repo)); err != nil {
		return fmt.Errorf("failed to register ListRuns handler: %w", err)
	}

	return nil
}
