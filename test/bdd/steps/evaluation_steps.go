package steps

import (
	"context"
	"errors"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/blueprints-go/internal/adapters/parser"
	"github.com/andrescamacho/blueprints-go/internal/adapters/persistence"
	"github.com/andrescamacho/blueprints-go/internal/application/evaluation"
	"github.com/andrescamacho/blueprints-go/internal/domain/blueprint"
	"github.com/andrescamacho/blueprints-go/internal/domain/shared"
	"github.com/andrescamacho/blueprints-go/test/helpers"
)

type evaluationContext struct {
	blueprints []blueprint.Blueprint
	repo       *persistence.GormRunRepository
	run        *blueprint.EvaluationRun
	stored     *blueprint.EvaluationRun
	err        error
}

func (ec *evaluationContext) reset() {
	ec.blueprints = nil
	ec.repo = nil
	ec.run = nil
	ec.stored = nil
	ec.err = nil
}

func (ec *evaluationContext) evaluate(mode string, budget, limit int, save bool) error {
	parsed, err := blueprint.ParseMode(mode)
	if err != nil {
		return err
	}

	var repo blueprint.RunRepository
	if save {
		if helpers.SharedTestDB == nil {
			return fmt.Errorf("shared test database not initialized")
		}
		if err := helpers.TruncateAllTables(); err != nil {
			return fmt.Errorf("failed to truncate tables: %w", err)
		}
		ec.repo = persistence.NewGormRunRepository(helpers.SharedTestDB)
		repo = ec.repo
	}

	clock := shared.NewMockClock(shared.NewRealClock().Now())
	evaluator := evaluation.NewEvaluator(evaluation.DefaultOptions(), repo, clock)
	ec.run, ec.err = evaluator.Evaluate(context.Background(), evaluation.EvaluateRequest{
		Blueprints: ec.blueprints,
		Mode:       parsed,
		TimeBudget: budget,
		Limit:      limit,
		Save:       save,
	})
	return nil
}

// Given steps

func (ec *evaluationContext) theSampleBlueprintInput() error {
	blueprints, err := parser.ParseBlueprints(helpers.SampleInput)
	if err != nil {
		return fmt.Errorf("failed to parse sample input: %w", err)
	}
	ec.blueprints = blueprints
	return nil
}

// When steps

func (ec *evaluationContext) iEvaluateTheBlueprintsInModeWithMinutes(mode string, budget int) error {
	return ec.evaluate(mode, budget, 0, false)
}

func (ec *evaluationContext) iEvaluateTheFirstBlueprintsInModeWithMinutes(limit int, mode string, budget int) error {
	return ec.evaluate(mode, budget, limit, false)
}

func (ec *evaluationContext) iEvaluateAndSaveTheBlueprintsInModeWithMinutes(mode string, budget int) error {
	return ec.evaluate(mode, budget, 0, true)
}

// Then steps

func (ec *evaluationContext) theAggregateShouldBe(expected int) error {
	if ec.err != nil {
		return fmt.Errorf("evaluation failed: %w", ec.err)
	}
	if got := ec.run.Aggregate(); got != expected {
		return fmt.Errorf("expected aggregate %d, got %d", expected, got)
	}
	return nil
}

func (ec *evaluationContext) blueprintShouldHaveABestOutputOf(id, expected int) error {
	if ec.run == nil {
		return fmt.Errorf("no evaluation run available: %v", ec.err)
	}
	for _, result := range ec.run.Results() {
		if result.BlueprintID != id {
			continue
		}
		if result.BestScore != expected {
			return fmt.Errorf("expected blueprint %d best output %d, got %d", id, expected, result.BestScore)
		}
		return nil
	}
	return fmt.Errorf("blueprint %d not in results", id)
}

func (ec *evaluationContext) blueprintResultsShouldBeReported(expected int) error {
	if ec.run == nil {
		return fmt.Errorf("no evaluation run available: %v", ec.err)
	}
	if got := len(ec.run.Results()); got != expected {
		return fmt.Errorf("expected %d results, got %d", expected, got)
	}
	return nil
}

func (ec *evaluationContext) theEvaluationShouldFailWithAnInvalidLimit() error {
	var limitErr *blueprint.ErrInvalidLimit
	if !errors.As(ec.err, &limitErr) {
		return fmt.Errorf("expected ErrInvalidLimit, got %v", ec.err)
	}
	return nil
}

func (ec *evaluationContext) theSavedRunShouldBeStoredWithAnAggregateOf(expected int) error {
	if ec.err != nil {
		return fmt.Errorf("evaluation failed: %w", ec.err)
	}
	stored, err := ec.repo.FindByID(context.Background(), ec.run.ID())
	if err != nil {
		return fmt.Errorf("failed to load run %s: %w", ec.run.ID(), err)
	}
	ec.stored = stored
	if got := stored.Aggregate(); got != expected {
		return fmt.Errorf("expected stored aggregate %d, got %d", expected, got)
	}
	return nil
}

func (ec *evaluationContext) theStoredRunShouldListBlueprintResults(expected int) error {
	if ec.stored == nil {
		return fmt.Errorf("no stored run loaded")
	}
	if got := len(ec.stored.Results()); got != expected {
		return fmt.Errorf("expected %d stored results, got %d", expected, got)
	}
	return nil
}

// InitializeEvaluationScenario registers blueprint evaluation step definitions
func InitializeEvaluationScenario(ctx *godog.ScenarioContext) {
	ec := &evaluationContext{}

	ctx.Before(func(c context.Context, s *godog.Scenario) (context.Context, error) {
		ec.reset()
		return c, nil
	})

	// Given steps
	ctx.Step(`^the sample blueprint input$`, ec.theSampleBlueprintInput)

	// When steps
	ctx.Step(`^I evaluate the blueprints in "([^"]*)" mode with (\d+) minutes$`, ec.iEvaluateTheBlueprintsInModeWithMinutes)
	ctx.Step(`^I evaluate the first (\d+) blueprints in "([^"]*)" mode with (\d+) minutes$`, ec.iEvaluateTheFirstBlueprintsInModeWithMinutes)
	ctx.Step(`^I evaluate and save the blueprints in "([^"]*)" mode with (\d+) minutes$`, ec.iEvaluateAndSaveTheBlueprintsInModeWithMinutes)

	// Then steps
	ctx.Step(`^the aggregate should be (\d+)$`, ec.theAggregateShouldBe)
	ctx.Step(`^blueprint (\d+) should have a best output of (\d+)$`, ec.blueprintShouldHaveABestOutputOf)
	ctx.Step(`^(\d+) blueprint results? should be reported$`, ec.blueprintResultsShouldBeReported)
	ctx.Step(`^the evaluation should fail with an invalid limit$`, ec.theEvaluationShouldFailWithAnInvalidLimit)
	ctx.Step(`^the saved run should be stored with an aggregate of (\d+)$`, ec.theSavedRunShouldBeStoredWithAnAggregateOf)
	ctx.Step(`^the stored run should list (\d+) blueprint results$`, ec.theStoredRunShouldListBlueprintResults)
}
