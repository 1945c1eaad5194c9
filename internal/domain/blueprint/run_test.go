package blueprint_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/blueprints-go/internal/domain/blueprint"
	"github.com/andrescamacho/blueprints-go/internal/domain/search"
)

func TestNewEvaluationRun(t *testing.T) {
	// Arrange
	started := time.Date(2022, 12, 19, 6, 0, 0, 0, time.UTC)
	finished := started.Add(1500 * time.Millisecond)
	results := []blueprint.Result{
		{BlueprintID: 1, BestScore: 9, Stats: search.Stats{Expanded: 100}},
		{BlueprintID: 2, BestScore: 12, Stats: search.Stats{Expanded: 50}},
	}

	// Act
	run, err := blueprint.NewEvaluationRun("run-1", blueprint.ModeQualitySum, 24, 0, results, started, finished)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "run-1", run.ID())
	assert.Equal(t, 33, run.Aggregate())
	assert.Equal(t, 150, run.StatesExpanded())
	assert.Equal(t, 1500*time.Millisecond, run.Duration())

	results[0].BestScore = 0
	assert.Equal(t, 9, run.Results()[0].BestScore, "run keeps its own copy")
}

func TestNewEvaluationRun_NumbersPositionsInOrder(t *testing.T) {
	// Arrange
	started := time.Date(2022, 12, 19, 6, 0, 0, 0, time.UTC)
	results := []blueprint.Result{
		{BlueprintID: 5, BestScore: 9},
		{BlueprintID: 7, BestScore: 12},
	}

	// Act
	run, err := blueprint.NewEvaluationRun("run-2", blueprint.ModeQualitySum, 24, 0, results, started, started)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, run.Results()[0].Position)
	assert.Equal(t, 2, run.Results()[1].Position)
	assert.Equal(t, 33, run.Aggregate())
	assert.Zero(t, results[0].Position, "caller slice is left untouched")
}

func TestNewEvaluationRun_Validation(t *testing.T) {
	now := time.Now()

	_, err := blueprint.NewEvaluationRun("", blueprint.ModeQualitySum, 24, 0, nil, now, now)
	assert.Error(t, err)

	_, err = blueprint.NewEvaluationRun("x", blueprint.ModeQualitySum, -1, 0, nil, now, now)
	assert.Error(t, err)

	_, err = blueprint.NewEvaluationRun("x", blueprint.ModeQualitySum, 24, 0, nil, now, now.Add(-time.Second))
	assert.Error(t, err)

	_, err = blueprint.NewEvaluationRun("x", blueprint.Mode("bogus"), 24, 0, nil, now, now)
	assert.Error(t, err)
}
