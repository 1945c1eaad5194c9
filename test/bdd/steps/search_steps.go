package steps

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/blueprints-go/internal/domain/production"
	"github.com/andrescamacho/blueprints-go/internal/domain/search"
	"github.com/andrescamacho/blueprints-go/test/helpers"
)

type searchContext struct {
	table         *production.CostTable
	tableErr      error
	state         production.State
	transitionErr error
	best          int
	stats         search.Stats
	unreducedBest int
	unreduced     search.Stats
	err           error
}

func (sc *searchContext) reset() {
	sc.table = nil
	sc.tableErr = nil
	sc.state = production.State{}
	sc.transitionErr = nil
	sc.best = 0
	sc.stats = search.Stats{}
	sc.unreducedBest = 0
	sc.unreduced = search.Stats{}
	sc.err = nil
}

func (sc *searchContext) useTable(raw map[string]map[string]int) error {
	table, err := production.NewCostTable(production.DefaultCatalog, raw)
	if err != nil {
		return fmt.Errorf("failed to build cost table: %w", err)
	}
	sc.table = table
	return nil
}

func (sc *searchContext) run(budget int, opts ...search.Option) (search.Result, error) {
	if sc.table == nil {
		return search.Result{}, fmt.Errorf("no cost table configured")
	}
	initial, err := production.NewInitialState(sc.table.Catalog(), budget)
	if err != nil {
		return search.Result{}, err
	}
	policy := production.NewPruningPolicy(sc.table, production.DefaultPolicyOptions())
	return search.NewEngine(opts...).Run(initial, policy)
}

// Given steps

func (sc *searchContext) aCostTable(table *godog.Table) error {
	if len(table.Rows) < 2 {
		return fmt.Errorf("cost table needs a header and at least one recipe")
	}
	header := table.Rows[0].Cells
	raw := make(map[string]map[string]int, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		robot := row.Cells[0].Value
		ingredients := make(map[string]int)
		for i := 1; i < len(row.Cells); i++ {
			qty, err := strconv.Atoi(row.Cells[i].Value)
			if err != nil {
				return fmt.Errorf("invalid quantity %q for %s: %w", row.Cells[i].Value, robot, err)
			}
			if qty > 0 {
				ingredients[header[i].Value] = qty
			}
		}
		raw[robot] = ingredients
	}
	return sc.useTable(raw)
}

func (sc *searchContext) theCostTableOfSampleBlueprint(id int) error {
	switch id {
	case 1:
		return sc.useTable(helpers.SampleCostsOne())
	case 2:
		return sc.useTable(helpers.SampleCostsTwo())
	default:
		return fmt.Errorf("no sample blueprint %d", id)
	}
}

func (sc *searchContext) theCheapCostTable() error {
	return sc.useTable(helpers.CheapCosts())
}

func (sc *searchContext) aFactoryWithATimeBudgetOfMinutes(budget int) error {
	if sc.table == nil {
		return fmt.Errorf("no cost table configured")
	}
	state, err := production.NewInitialState(sc.table.Catalog(), budget)
	if err != nil {
		return err
	}
	sc.state = state
	return nil
}

// When steps

func (sc *searchContext) iSearchWithATimeBudgetOfMinutes(budget int) error {
	result, err := sc.run(budget)
	sc.best = result.BestScore
	sc.stats = result.Stats
	sc.err = err
	return nil
}

func (sc *searchContext) iSearchAgainWithoutDeduplicationOrBounds(budget int) error {
	result, err := sc.run(budget, search.WithoutDeduplication(), search.WithoutBounds())
	sc.unreducedBest = result.BestScore
	sc.unreduced = result.Stats
	if err != nil {
		sc.err = err
	}
	return nil
}

func (sc *searchContext) theFactoryIdlesForMinutes(minutes int) error {
	for i := 0; i < minutes; i++ {
		sc.state = sc.state.AdvanceIdle()
	}
	return nil
}

func (sc *searchContext) iTryToBuildARobot(name string) error {
	kind, err := sc.table.Catalog().Lookup(name)
	if err != nil {
		return err
	}
	cost, ok := sc.table.Recipe(kind)
	if !ok {
		return fmt.Errorf("no recipe for %s", name)
	}
	_, sc.transitionErr = sc.state.AdvanceWithBuild(kind, cost)
	return nil
}

func (sc *searchContext) iCreateACostTableWhereRobotsCost(robot string, qty int, ingredient string) error {
	sc.table, sc.tableErr = production.NewCostTable(production.DefaultCatalog, map[string]map[string]int{
		robot: {ingredient: qty},
	})
	return nil
}

// Then steps

func (sc *searchContext) theBestOutputShouldBe(expected int) error {
	if sc.err != nil {
		return fmt.Errorf("search failed: %w", sc.err)
	}
	if sc.best != expected {
		return fmt.Errorf("expected best output %d, got %d", expected, sc.best)
	}
	return nil
}

func (sc *searchContext) theSearchShouldHaveReachedTerminalStates(expected int) error {
	if sc.stats.Terminals != expected {
		return fmt.Errorf("expected %d terminal states, got %d", expected, sc.stats.Terminals)
	}
	return nil
}

func (sc *searchContext) bothSearchesShouldReportABestOutputOf(expected int) error {
	if sc.err != nil {
		return fmt.Errorf("search failed: %w", sc.err)
	}
	if sc.best != expected || sc.unreducedBest != expected {
		return fmt.Errorf("expected both searches to reach %d, got %d and %d", expected, sc.best, sc.unreducedBest)
	}
	return nil
}

func (sc *searchContext) theUnreducedSearchShouldReportDuplicateStates(expected int) error {
	if sc.unreduced.Duplicates != expected {
		return fmt.Errorf("expected %d duplicates, got %d", expected, sc.unreduced.Duplicates)
	}
	return nil
}

func (sc *searchContext) theStockShouldBe(name string, expected int) error {
	kind, err := production.DefaultCatalog.Lookup(name)
	if err != nil {
		return err
	}
	if got := sc.state.Stock(kind); got != expected {
		return fmt.Errorf("expected %s stock %d, got %d", name, expected, got)
	}
	return nil
}

func (sc *searchContext) minutesShouldRemain(expected int) error {
	if got := sc.state.Remaining(); got != expected {
		return fmt.Errorf("expected %d minutes remaining, got %d", expected, got)
	}
	return nil
}

func (sc *searchContext) theTransitionShouldBeRefused() error {
	var transitionErr *production.ErrInvalidTransition
	if !errors.As(sc.transitionErr, &transitionErr) {
		return fmt.Errorf("expected ErrInvalidTransition, got %v", sc.transitionErr)
	}
	return nil
}

func (sc *searchContext) theCostTableShouldBeRejected() error {
	var malformed *production.ErrMalformedCostTable
	if !errors.As(sc.tableErr, &malformed) {
		return fmt.Errorf("expected ErrMalformedCostTable, got %v", sc.tableErr)
	}
	if sc.table != nil {
		return fmt.Errorf("expected no cost table for a rejected definition")
	}
	return nil
}

// InitializeSearchScenario registers search engine step definitions
func InitializeSearchScenario(ctx *godog.ScenarioContext) {
	sc := &searchContext{}

	ctx.Before(func(c context.Context, s *godog.Scenario) (context.Context, error) {
		sc.reset()
		return c, nil
	})

	// Given steps
	ctx.Step(`^a cost table:$`, sc.aCostTable)
	ctx.Step(`^the cost table of sample blueprint (\d+)$`, sc.theCostTableOfSampleBlueprint)
	ctx.Step(`^the cheap cost table$`, sc.theCheapCostTable)
	ctx.Step(`^a factory with a time budget of (\d+) minutes$`, sc.aFactoryWithATimeBudgetOfMinutes)

	// When steps
	ctx.Step(`^I search with a time budget of (\d+) minutes$`, sc.iSearchWithATimeBudgetOfMinutes)
	ctx.Step(`^I search again with a time budget of (\d+) minutes without deduplication or bounds$`, sc.iSearchAgainWithoutDeduplicationOrBounds)
	ctx.Step(`^the factory idles for (\d+) minutes$`, sc.theFactoryIdlesForMinutes)
	ctx.Step(`^I try to build a "([^"]*)" robot$`, sc.iTryToBuildARobot)
	ctx.Step(`^I create a cost table where "([^"]*)" robots cost (\d+) "([^"]*)"$`, sc.iCreateACostTableWhereRobotsCost)

	// Then steps
	ctx.Step(`^the best output should be (\d+)$`, sc.theBestOutputShouldBe)
	ctx.Step(`^the search should have reached (\d+) terminal states?$`, sc.theSearchShouldHaveReachedTerminalStates)
	ctx.Step(`^both searches should report a best output of (\d+)$`, sc.bothSearchesShouldReportABestOutputOf)
	ctx.Step(`^the unreduced search should report (\d+) duplicate states$`, sc.theUnreducedSearchShouldReportDuplicateStates)
	ctx.Step(`^the "([^"]*)" stock should be (\d+)$`, sc.theStockShouldBe)
	ctx.Step(`^(\d+) minutes should remain$`, sc.minutesShouldRemain)
	ctx.Step(`^the transition should be refused$`, sc.theTransitionShouldBeRefused)
	ctx.Step(`^the cost table should be rejected$`, sc.theCostTableShouldBeRejected)
}
