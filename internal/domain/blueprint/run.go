package blueprint

import (
	"fmt"
	"time"
)

// EvaluationRun is the aggregate root recording one finished evaluation.
// Runs are immutable once created.
type EvaluationRun struct {
	id         string
	mode       Mode
	timeBudget int
	limit      int
	results    []Result
	aggregate  int
	startedAt  time.Time
	finishedAt time.Time
}

// NewEvaluationRun creates a run from finished results in evaluation order,
// numbers their positions from 1 and computes the aggregate
func NewEvaluationRun(
	id string,
	mode Mode,
	timeBudget int,
	limit int,
	results []Result,
	startedAt time.Time,
	finishedAt time.Time,
) (*EvaluationRun, error) {
	if id == "" {
		return nil, fmt.Errorf("evaluation run id cannot be empty")
	}
	if timeBudget < 0 {
		return nil, fmt.Errorf("evaluation run time budget cannot be negative: %d", timeBudget)
	}
	if finishedAt.Before(startedAt) {
		return nil, fmt.Errorf("evaluation run finished before it started")
	}

	copied := make([]Result, len(results))
	copy(copied, results)
	for i := range copied {
		copied[i].Position = i + 1
	}

	aggregate, err := Aggregate(mode, copied)
	if err != nil {
		return nil, err
	}

	return &EvaluationRun{
		id:         id,
		mode:       mode,
		timeBudget: timeBudget,
		limit:      limit,
		results:    copied,
		aggregate:  aggregate,
		startedAt:  startedAt,
		finishedAt: finishedAt,
	}, nil
}

// ReconstructEvaluationRun rebuilds a run from persistence without recomputing the aggregate
func ReconstructEvaluationRun(
	id string,
	mode Mode,
	timeBudget int,
	limit int,
	results []Result,
	aggregate int,
	startedAt time.Time,
	finishedAt time.Time,
) *EvaluationRun {
	return &EvaluationRun{
		id:         id,
		mode:       mode,
		timeBudget: timeBudget,
		limit:      limit,
		results:    results,
		aggregate:  aggregate,
		startedAt:  startedAt,
		finishedAt: finishedAt,
	}
}

// Getters

func (r *EvaluationRun) ID() string {
	return r.id
}

func (r *EvaluationRun) Mode() Mode {
	return r.mode
}

func (r *EvaluationRun) TimeBudget() int {
	return r.timeBudget
}

func (r *EvaluationRun) Limit() int {
	return r.limit
}

func (r *EvaluationRun) Results() []Result {
	out := make([]Result, len(r.results))
	copy(out, r.results)
	return out
}

func (r *EvaluationRun) Aggregate() int {
	return r.aggregate
}

func (r *EvaluationRun) StartedAt() time.Time {
	return r.startedAt
}

func (r *EvaluationRun) FinishedAt() time.Time {
	return r.finishedAt
}

// Duration returns the wall time of the run
func (r *EvaluationRun) Duration() time.Duration {
	return r.finishedAt.Sub(r.startedAt)
}

// StatesExpanded returns the total number of states expanded across blueprints
func (r *EvaluationRun) StatesExpanded() int {
	total := 0
	for _, res := range r.results {
		total += res.Stats.Expanded
	}
	return total
}
