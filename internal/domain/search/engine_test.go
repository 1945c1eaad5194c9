package search_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/blueprints-go/internal/domain/production"
	"github.com/andrescamacho/blueprints-go/internal/domain/search"
	"github.com/andrescamacho/blueprints-go/test/helpers"
)

// twinIdlePolicy offers the idle successor twice so every level produces a duplicate
type twinIdlePolicy struct{}

func (twinIdlePolicy) Expand(s production.State) ([]production.State, error) {
	next := s.AdvanceIdle()
	return []production.State{next, next}, nil
}

type failingPolicy struct {
	err error
}

func (p failingPolicy) Expand(production.State) ([]production.State, error) {
	return nil, p.err
}

// fixedBoundsPolicy idles and reports the same bounds for every state
type fixedBoundsPolicy struct {
	floor, ceiling int
}

func (fixedBoundsPolicy) Expand(s production.State) ([]production.State, error) {
	return []production.State{s.AdvanceIdle()}, nil
}

func (p fixedBoundsPolicy) Bounds(production.State) (int, int) {
	return p.floor, p.ceiling
}

func initialState(t *testing.T, budget int) production.State {
	t.Helper()
	s, err := production.NewInitialState(production.DefaultCatalog, budget)
	require.NoError(t, err)
	return s
}

func TestEngine_Run_DropsDuplicateStates(t *testing.T) {
	// Arrange
	engine := search.NewEngine()

	// Act
	result, err := engine.Run(initialState(t, 3), twinIdlePolicy{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0, result.BestScore)
	assert.Equal(t, 3, result.Stats.Expanded)
	assert.Equal(t, 3, result.Stats.Duplicates)
	assert.Equal(t, 1, result.Stats.Terminals)
}

func TestEngine_Run_WithoutDeduplicationExpandsEveryCopy(t *testing.T) {
	// Arrange
	engine := search.NewEngine(search.WithoutDeduplication())

	// Act
	result, err := engine.Run(initialState(t, 3), twinIdlePolicy{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0, result.BestScore)
	assert.Equal(t, 7, result.Stats.Expanded)
	assert.Equal(t, 0, result.Stats.Duplicates)
	assert.Equal(t, 8, result.Stats.Terminals)
	assert.Equal(t, 8, result.Stats.PeakFrontier)
}

func TestEngine_Run_TerminalInitialStateIsNotExpanded(t *testing.T) {
	// Arrange
	policy := failingPolicy{err: errors.New("must not be called")}

	// Act
	result, err := search.NewEngine().Run(initialState(t, 0), policy)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0, result.BestScore)
	assert.Equal(t, 0, result.Stats.Expanded)
	assert.Equal(t, 1, result.Stats.Terminals)
}

func TestEngine_Run_ExpansionErrorAbortsSearch(t *testing.T) {
	// Arrange
	boom := errors.New("boom")

	// Act
	_, err := search.NewEngine().Run(initialState(t, 5), failingPolicy{err: boom})

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "expanding t=5")
}

func TestEngine_Run_NilPolicy(t *testing.T) {
	// Act
	_, err := search.NewEngine().Run(initialState(t, 5), nil)

	// Assert
	assert.ErrorIs(t, err, search.ErrNilPolicy)
}

func TestEngine_Run_PrunesBelowFloor(t *testing.T) {
	// Arrange
	policy := fixedBoundsPolicy{floor: 5, ceiling: 4}

	// Act
	bounded, err := search.NewEngine().Run(initialState(t, 4), policy)
	require.NoError(t, err)
	unbounded, err := search.NewEngine(search.WithoutBounds()).Run(initialState(t, 4), policy)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, 5, bounded.BestScore, "floor is reported as achievable")
	assert.Equal(t, 1, bounded.Stats.Pruned)
	assert.Equal(t, 0, bounded.Stats.Expanded)

	assert.Equal(t, 0, unbounded.BestScore)
	assert.Equal(t, 0, unbounded.Stats.Pruned)
	assert.Equal(t, 4, unbounded.Stats.Expanded)
}

func TestEngine_Run_ObserverReceivesStats(t *testing.T) {
	// Arrange
	var observed []search.Stats
	engine := search.NewEngine(search.WithObserver(func(s search.Stats) {
		observed = append(observed, s)
	}))

	// Act
	result, err := engine.Run(initialState(t, 3), twinIdlePolicy{})

	// Assert
	require.NoError(t, err)
	require.Len(t, observed, 1)
	assert.Equal(t, result.Stats, observed[0])
}

func TestSearch_SampleBlueprintTwo(t *testing.T) {
	// Arrange
	table := helpers.NewTestCostTable(t, helpers.SampleCostsTwo())
	policy := production.NewPruningPolicy(table, production.DefaultPolicyOptions())

	// Act
	best, err := search.Search(initialState(t, 24), policy)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 12, best)
}

func TestSearch_TableWithoutOreRecipe(t *testing.T) {
	// Arrange
	raw := helpers.SampleCostsOne()
	delete(raw, "ore")
	table := helpers.NewTestCostTable(t, raw)
	policy := production.NewPruningPolicy(table, production.DefaultPolicyOptions())

	// Act
	best, err := search.Search(initialState(t, 24), policy)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 9, best)
}

func TestSearch_CheapTableByBudget(t *testing.T) {
	table := helpers.NewTestCostTable(t, helpers.CheapCosts())
	policy := production.NewPruningPolicy(table, production.DefaultPolicyOptions())

	cases := []struct {
		budget int
		want   int
	}{
		{0, 0},
		{1, 0},
		{8, 0},
		{9, 1},
		{10, 3},
		{11, 6},
		{12, 10},
	}

	for _, tc := range cases {
		best, err := search.Search(initialState(t, tc.budget), policy)
		require.NoError(t, err)
		assert.Equal(t, tc.want, best, "budget %d", tc.budget)
	}
}

func TestEngine_Run_SameScoreAcrossOptions(t *testing.T) {
	table := helpers.NewTestCostTable(t, helpers.CheapCosts())
	policies := map[string]*production.PruningPolicy{
		"clamped": production.NewPruningPolicy(table, production.DefaultPolicyOptions()),
		"raw":     production.NewPruningPolicy(table, production.PolicyOptions{}),
	}
	engines := map[string]*search.Engine{
		"default":    search.NewEngine(),
		"no-dedup":   search.NewEngine(search.WithoutDeduplication()),
		"no-bounds":  search.NewEngine(search.WithoutBounds()),
		"exhaustive": search.NewEngine(search.WithoutDeduplication(), search.WithoutBounds()),
	}

	for policyName, policy := range policies {
		for engineName, engine := range engines {
			result, err := engine.Run(initialState(t, 10), policy)
			require.NoError(t, err)
			assert.Equal(t, 3, result.BestScore, "%s policy, %s engine", policyName, engineName)
		}
	}
}
