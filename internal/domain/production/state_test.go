package production_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/blueprints-go/internal/domain/production"
)

const (
	ore production.Kind = iota
	clay
	obsidian
	geode
)

func mustState(t *testing.T, remaining int, stock, rate production.Quantities) production.State {
	t.Helper()
	s, err := production.ReconstructState(production.DefaultCatalog, remaining, stock, rate)
	require.NoError(t, err)
	return s
}

func TestNewInitialState(t *testing.T) {
	// Act
	s, err := production.NewInitialState(production.DefaultCatalog, 24)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 24, s.Remaining())
	assert.Equal(t, 1, s.Rate(ore))
	for _, k := range []production.Kind{clay, obsidian, geode} {
		assert.Equal(t, 0, s.Rate(k))
		assert.Equal(t, 0, s.Stock(k))
	}
	assert.False(t, s.IsTerminal())
	assert.Equal(t, geode, s.Output())
}

func TestNewInitialState_NegativeBudget(t *testing.T) {
	_, err := production.NewInitialState(production.DefaultCatalog, -1)

	var budgetErr *production.ErrInvalidTimeBudget
	require.True(t, errors.As(err, &budgetErr))
	assert.Equal(t, -1, budgetErr.Budget)
}

func TestNewInitialState_BudgetBeyondStateRange(t *testing.T) {
	tests := []struct {
		name   string
		budget int
	}{
		{"just past the limit", production.MaxTimeBudget + 1},
		{"wraps to zero in 32 bits", 1 << 32},
		{"wraps to 24 in 32 bits", 1<<32 + 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := production.NewInitialState(production.DefaultCatalog, tt.budget)

			var budgetErr *production.ErrInvalidTimeBudget
			require.True(t, errors.As(err, &budgetErr))
			assert.Equal(t, tt.budget, budgetErr.Budget)

			_, err = production.ReconstructState(production.DefaultCatalog, tt.budget, production.Quantities{}, production.Quantities{1})
			assert.True(t, errors.As(err, &budgetErr))
		})
	}
}

func TestNewInitialState_MaxBudget(t *testing.T) {
	s, err := production.NewInitialState(production.DefaultCatalog, production.MaxTimeBudget)

	require.NoError(t, err)
	assert.Equal(t, production.MaxTimeBudget, s.Remaining())
	assert.False(t, s.IsTerminal())
}

func TestState_WithRemaining_Clamps(t *testing.T) {
	s := mustState(t, 5, production.Quantities{}, production.Quantities{1})

	assert.Equal(t, 0, s.WithRemaining(-3).Remaining())
	assert.Equal(t, 9, s.WithRemaining(9).Remaining())

	huge := s.WithRemaining(1 << 31)
	assert.Equal(t, production.MaxTimeBudget, huge.Remaining())
	assert.False(t, huge.IsTerminal())
}

func TestState_AdvanceIdle(t *testing.T) {
	// Arrange
	s := mustState(t, 5, production.Quantities{3, 1, 0, 2}, production.Quantities{2, 1, 0, 1})

	// Act
	next := s.AdvanceIdle()

	// Assert
	assert.Equal(t, 4, next.Remaining())
	assert.Equal(t, 5, next.Stock(ore))
	assert.Equal(t, 2, next.Stock(clay))
	assert.Equal(t, 0, next.Stock(obsidian))
	assert.Equal(t, 3, next.Score())
	assert.Equal(t, 2, next.Rate(ore), "rates are unchanged")
	assert.Equal(t, 5, s.Remaining(), "receiver is not mutated")
}

func TestState_AdvanceIdle_Terminal(t *testing.T) {
	s := mustState(t, 0, production.Quantities{1, 0, 0, 4}, production.Quantities{1, 0, 0, 1})

	assert.Equal(t, s, s.AdvanceIdle())
}

func TestState_AdvanceWithBuild_NewUnitStartsNextStep(t *testing.T) {
	// Arrange
	s := mustState(t, 10, production.Quantities{4, 0, 0, 0}, production.Quantities{1, 0, 0, 0})
	cost := production.Quantities{2, 0, 0, 0}

	// Act
	next, err := s.AdvanceWithBuild(clay, cost)
	require.NoError(t, err)
	after := next.AdvanceIdle()

	// Assert
	assert.Equal(t, 9, next.Remaining())
	assert.Equal(t, 3, next.Stock(ore), "cost paid, pre-build rate produced")
	assert.Equal(t, 0, next.Stock(clay), "new unit does not produce in its own step")
	assert.Equal(t, 1, next.Rate(clay))
	assert.Equal(t, 1, after.Stock(clay))
}

func TestState_AdvanceWithBuild_Unaffordable(t *testing.T) {
	// Arrange
	s := mustState(t, 10, production.Quantities{3, 5, 0, 0}, production.Quantities{1, 1, 0, 0})
	cost := production.Quantities{3, 14, 0, 0}

	// Act
	_, err := s.AdvanceWithBuild(obsidian, cost)

	// Assert
	var transitionErr *production.ErrInvalidTransition
	require.True(t, errors.As(err, &transitionErr))
	assert.Equal(t, obsidian, transitionErr.Kind)
	assert.Equal(t, clay, transitionErr.Resource)
	assert.Equal(t, 14, transitionErr.Required)
	assert.Equal(t, 5, transitionErr.Available)
	assert.Equal(t, "invalid transition building kind#2 at t=10: need 14 kind#1, have 5", err.Error())
}

func TestState_AdvanceWithBuild_Terminal(t *testing.T) {
	s := mustState(t, 0, production.Quantities{10, 0, 0, 0}, production.Quantities{1, 0, 0, 0})

	_, err := s.AdvanceWithBuild(clay, production.Quantities{1, 0, 0, 0})

	var transitionErr *production.ErrInvalidTransition
	require.True(t, errors.As(err, &transitionErr))
	assert.Equal(t, "no time left", transitionErr.Reason)
}

func TestState_AdvanceWithBuild_KindOutsideCatalog(t *testing.T) {
	s := mustState(t, 3, production.Quantities{10, 0, 0, 0}, production.Quantities{1, 0, 0, 0})

	_, err := s.AdvanceWithBuild(production.Kind(6), production.Quantities{})

	var transitionErr *production.ErrInvalidTransition
	require.True(t, errors.As(err, &transitionErr))
	assert.Equal(t, "kind outside catalog", transitionErr.Reason)
}

func TestState_EqualityIsValueBased(t *testing.T) {
	// Two build orders that land on the same tuple
	a := mustState(t, 3, production.Quantities{2, 1, 0, 0}, production.Quantities{1, 1, 0, 0})
	b := mustState(t, 3, production.Quantities{2, 1, 0, 0}, production.Quantities{1, 1, 0, 0})

	seen := map[production.State]struct{}{a: {}}
	_, ok := seen[b]

	assert.True(t, ok)
	assert.NotEqual(t, a, a.WithRemaining(4))
}

func TestReconstructState_RejectsNegativeValues(t *testing.T) {
	_, err := production.ReconstructState(production.DefaultCatalog, 3, production.Quantities{-1}, production.Quantities{1})
	assert.Error(t, err)

	_, err = production.ReconstructState(production.DefaultCatalog, -2, production.Quantities{}, production.Quantities{1})
	assert.Error(t, err)
}

func TestState_String(t *testing.T) {
	s := mustState(t, 7, production.Quantities{1, 2, 3, 4}, production.Quantities{1, 0, 0, 1})

	assert.Equal(t, "t=7 stock=[1 2 3 4] rate=[1 0 0 1]", s.String())
}
