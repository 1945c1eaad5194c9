package production

import (
	"errors"
	"fmt"
)

// PolicyOptions toggles the optional parts of the pruning policy
type PolicyOptions struct {
	// CommitIntermediate also commits greedily to the output recipe's last
	// intermediate ingredient (obsidian in the default catalog) whenever it is
	// affordable and below its rate ceiling. Faster, but not optimal for every
	// table: sample blueprint 1 drops from 56 to 54 at 32 steps.
	CommitIntermediate bool

	// DiscardSurplus clamps non-output stock to what could still be spent in
	// the remaining steps, so states that differ only in unusable surplus
	// collapse during deduplication.
	DiscardSurplus bool
}

// DefaultPolicyOptions returns the options used when nothing is configured
func DefaultPolicyOptions() PolicyOptions {
	return PolicyOptions{
		CommitIntermediate: false,
		DiscardSurplus:     true,
	}
}

// PruningPolicy produces the candidate successors of a state for one cost table.
//
// Rules, in order:
//  1. An affordable output build is the only candidate (greedy commit).
//  2. With CommitIntermediate, an affordable build of the committed
//     intermediate below its ceiling is the only candidate.
//  3. Otherwise idle is offered, followed by every affordable build of a
//     non-output kind whose rate is still below MaxConsumption.
//
// Every offered build is affordable; the policy never relies on the state to
// reject a transition.
type PruningPolicy struct {
	table    *CostTable
	opts     PolicyOptions
	output   Kind
	builders []Kind

	commitKind    Kind
	hasCommitKind bool
}

// NewPruningPolicy derives the pruning bounds for a cost table
func NewPruningPolicy(table *CostTable, opts PolicyOptions) *PruningPolicy {
	catalog := table.Catalog()
	p := &PruningPolicy{
		table:  table,
		opts:   opts,
		output: catalog.Output(),
	}

	for _, k := range catalog.Kinds() {
		if k != p.output && table.Producible(k) {
			p.builders = append(p.builders, k)
		}
	}

	// The committed intermediate is the latest non-primary kind the output recipe consumes
	outputBill, _ := table.Recipe(p.output)
	for _, k := range catalog.Kinds() {
		if k == catalog.Primary() || k == p.output {
			continue
		}
		if outputBill[k] > 0 && table.Producible(k) {
			p.commitKind = k
			p.hasCommitKind = true
		}
	}

	return p
}

// Table returns the cost table the policy was derived from
func (p *PruningPolicy) Table() *CostTable {
	return p.table
}

// Options returns the policy options
func (p *PruningPolicy) Options() PolicyOptions {
	return p.opts
}

// RateCeiling returns the highest useful rate for kind k
func (p *PruningPolicy) RateCeiling(k Kind) int {
	return p.table.MaxConsumption(k)
}

// Expand returns the candidate successors of s. Terminal states have none.
func (p *PruningPolicy) Expand(s State) ([]State, error) {
	if s.IsTerminal() {
		return nil, nil
	}

	if p.affordable(s, p.output) {
		next, err := p.build(s, p.output)
		if err != nil {
			return nil, err
		}
		return []State{next}, nil
	}

	if p.opts.CommitIntermediate && p.hasCommitKind && p.worthBuilding(s, p.commitKind) {
		next, err := p.build(s, p.commitKind)
		if err != nil {
			return nil, err
		}
		return []State{next}, nil
	}

	candidates := make([]State, 0, len(p.builders)+1)
	candidates = append(candidates, p.settle(s.AdvanceIdle()))

	for _, k := range p.builders {
		if !p.worthBuilding(s, k) {
			continue
		}
		next, err := p.build(s, k)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, next)
	}

	return candidates, nil
}

// Bounds returns the output the state is guaranteed to reach by idling (floor)
// and an optimistic ceiling assuming one more output unit is built every
// remaining step.
func (p *PruningPolicy) Bounds(s State) (floor, ceiling int) {
	t := s.Remaining()
	floor = s.Score() + s.Rate(p.output)*t
	ceiling = floor + t*(t-1)/2
	return floor, ceiling
}

func (p *PruningPolicy) affordable(s State, k Kind) bool {
	bill, ok := p.table.Recipe(k)
	return ok && s.CanAfford(bill)
}

func (p *PruningPolicy) worthBuilding(s State, k Kind) bool {
	return s.Rate(k) < p.table.MaxConsumption(k) && p.affordable(s, k)
}

func (p *PruningPolicy) build(s State, k Kind) (State, error) {
	bill, _ := p.table.Recipe(k)
	next, err := s.AdvanceWithBuild(k, bill)
	if err != nil {
		var transitionErr *ErrInvalidTransition
		if errors.As(err, &transitionErr) {
			catalog := p.table.Catalog()
			transitionErr.KindName = catalog.Name(transitionErr.Kind)
			transitionErr.ResourceName = catalog.Name(transitionErr.Resource)
		}
		return State{}, fmt.Errorf("expansion offered an unaffordable build: %w", err)
	}
	return p.settle(next), nil
}

// settle applies the surplus clamp to a freshly produced successor
func (p *PruningPolicy) settle(s State) State {
	if !p.opts.DiscardSurplus {
		return s
	}
	t := int32(s.Remaining())
	for _, k := range p.table.Catalog().Kinds() {
		if k == p.output {
			continue
		}
		var limit int32
		if t > 0 {
			limit = int32(p.table.MaxConsumption(k))*t - int32(s.Rate(k))*(t-1)
			if limit < 0 {
				limit = 0
			}
		}
		if int32(s.Stock(k)) > limit {
			s = s.withStock(k, limit)
		}
	}
	return s
}
