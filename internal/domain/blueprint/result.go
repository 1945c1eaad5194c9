package blueprint

import (
	"time"

	"github.com/andrescamacho/blueprints-go/internal/domain/search"
)

// Result is the outcome of evaluating one blueprint.
//
// Position is the 1-based place of the blueprint in the evaluated list and is
// the quality weight. It is assigned by NewEvaluationRun; BlueprintID is the
// number from the input header and is only used for reporting.
type Result struct {
	BlueprintID int
	Position    int
	BestScore   int
	Stats       search.Stats
	Duration    time.Duration
}

// Quality returns the blueprint's quality score (position times best score)
func (r Result) Quality() int {
	return r.Position * r.BestScore
}

// QualitySum returns the sum of quality scores
func QualitySum(results []Result) int {
	total := 0
	for _, r := range results {
		total += r.Quality()
	}
	return total
}

// Product returns the product of best scores. The empty product is 1.
func Product(results []Result) int {
	total := 1
	for _, r := range results {
		total *= r.BestScore
	}
	return total
}

// Aggregate folds results with the reduction of the given mode
func Aggregate(mode Mode, results []Result) (int, error) {
	switch mode {
	case ModeQualitySum:
		return QualitySum(results), nil
	case ModeTopProduct:
		return Product(results), nil
	default:
		return 0, &ErrUnknownMode{Name: string(mode)}
	}
}

// SelectForMode returns the blueprints a mode evaluates.
//
// Quality mode evaluates every blueprint unless limit > 0, in which case only
// the first limit are kept. Product mode requires limit > 0 and evaluates the
// first limit blueprints (all of them when fewer are available).
func SelectForMode(mode Mode, blueprints []Blueprint, limit int) ([]Blueprint, error) {
	if len(blueprints) == 0 {
		return nil, ErrNoBlueprints
	}

	switch mode {
	case ModeQualitySum:
		if limit <= 0 || limit >= len(blueprints) {
			return blueprints, nil
		}
		return blueprints[:limit], nil
	case ModeTopProduct:
		if limit <= 0 {
			return nil, &ErrInvalidLimit{Mode: mode, Limit: limit}
		}
		if limit >= len(blueprints) {
			return blueprints, nil
		}
		return blueprints[:limit], nil
	default:
		return nil, &ErrUnknownMode{Name: string(mode)}
	}
}
