package search

import (
	"errors"
	"fmt"

	"github.com/andrescamacho/blueprints-go/internal/domain/production"
)

// ErrNilPolicy is returned when Run is called without an expansion policy
var ErrNilPolicy = errors.New("search requires an expansion policy")

// ExpansionPolicy supplies the candidate successors of a non-terminal state.
// Every successor must be the product of a legal transition.
type ExpansionPolicy interface {
	Expand(state production.State) ([]production.State, error)
}

// Bounder is implemented by policies that can bound the final score reachable
// from a state. floor must be achievable from the state; ceiling must never
// be below the best reachable score.
type Bounder interface {
	Bounds(state production.State) (floor, ceiling int)
}

// Stats counts the work done by one search
type Stats struct {
	Expanded     int
	Duplicates   int
	Pruned       int
	Terminals    int
	PeakFrontier int
}

// Result is the outcome of one search
type Result struct {
	BestScore int
	Stats     Stats
}

// Engine explores the reachable states of one problem instance breadth-first.
// An Engine holds configuration only; every Run owns its own frontier and
// visited set, so one Engine may serve concurrent runs.
type Engine struct {
	dedup    bool
	bounds   bool
	observer func(Stats)
}

// Option configures an Engine
type Option func(*Engine)

// WithoutDeduplication disables the visited set. Results must not change, only runtime.
func WithoutDeduplication() Option {
	return func(e *Engine) {
		e.dedup = false
	}
}

// WithoutBounds ignores Bounder policies
func WithoutBounds() Option {
	return func(e *Engine) {
		e.bounds = false
	}
}

// WithBounds sets whether Bounder policies are used to discard hopeless states
func WithBounds(enabled bool) Option {
	return func(e *Engine) {
		e.bounds = enabled
	}
}

// WithObserver registers a callback invoked with the final stats of every run
func WithObserver(fn func(Stats)) Option {
	return func(e *Engine) {
		e.observer = fn
	}
}

// NewEngine creates an engine with deduplication and bounds enabled
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		dedup:  true,
		bounds: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Search returns the best terminal score reachable from initial under policy
func Search(initial production.State, policy ExpansionPolicy) (int, error) {
	result, err := NewEngine().Run(initial, policy)
	if err != nil {
		return 0, err
	}
	return result.BestScore, nil
}

// Run explores every state reachable from initial through the policy's
// candidates and returns the maximum terminal score.
//
// States are dequeued in FIFO order. A state already in the visited set is
// dropped; otherwise it is recorded, scored if terminal, and expanded if not.
// The search ends when the frontier is empty.
func (e *Engine) Run(initial production.State, policy ExpansionPolicy) (Result, error) {
	if policy == nil {
		return Result{}, ErrNilPolicy
	}

	var bounder Bounder
	if e.bounds {
		bounder, _ = policy.(Bounder)
	}

	var (
		stats   Stats
		best    int
		floor   int
		queue   = newFrontier(initial)
		visited map[production.State]struct{}
	)
	if e.dedup {
		visited = make(map[production.State]struct{}, 1024)
	}

	for queue.len() > 0 {
		if n := queue.len(); n > stats.PeakFrontier {
			stats.PeakFrontier = n
		}

		current, _ := queue.pop()

		if visited != nil {
			if _, seen := visited[current]; seen {
				stats.Duplicates++
				continue
			}
			visited[current] = struct{}{}
		}

		if bounder != nil {
			lo, hi := bounder.Bounds(current)
			if lo > floor {
				floor = lo
			}
			if hi < floor {
				stats.Pruned++
				continue
			}
		}

		if current.IsTerminal() {
			stats.Terminals++
			if score := current.Score(); score > best {
				best = score
			}
			continue
		}

		stats.Expanded++
		candidates, err := policy.Expand(current)
		if err != nil {
			return Result{Stats: stats}, fmt.Errorf("expanding %s: %w", current, err)
		}
		queue.push(candidates...)
	}

	// The floor is reachable by idling, so it is a valid score even when the
	// state that established it was later overtaken.
	if floor > best {
		best = floor
	}

	if e.observer != nil {
		e.observer(stats)
	}

	return Result{BestScore: best, Stats: stats}, nil
}
