package production

import (
	"fmt"
	"math"
)

// MaxTimeBudget is the largest budget a State can hold
const MaxTimeBudget = math.MaxInt32

// State is one point of the search: time left, accumulated stock and
// production rate per resource kind.
//
// State is a comparable value type. Two states are equal iff every field is
// equal, which makes State usable directly as a deduplication key. Transitions
// never mutate the receiver; they return a new State.
type State struct {
	remaining int32
	kinds     uint8
	output    uint8
	stock     Quantities
	rate      Quantities
}

// NewInitialState creates the state a factory starts in: the full budget, one
// unit of primary rate and nothing else.
func NewInitialState(catalog *Catalog, budget int) (State, error) {
	if budget < 0 || budget > MaxTimeBudget {
		return State{}, &ErrInvalidTimeBudget{Budget: budget}
	}
	s := State{
		remaining: int32(budget),
		kinds:     uint8(catalog.Len()),
		output:    uint8(catalog.Output()),
	}
	s.rate[catalog.Primary()] = 1
	return s, nil
}

// ReconstructState rebuilds a state from explicit values (used by tests and
// scenario setup). Values beyond the catalog length are ignored.
func ReconstructState(catalog *Catalog, remaining int, stock, rate Quantities) (State, error) {
	if remaining < 0 || remaining > MaxTimeBudget {
		return State{}, &ErrInvalidTimeBudget{Budget: remaining}
	}
	s := State{
		remaining: int32(remaining),
		kinds:     uint8(catalog.Len()),
		output:    uint8(catalog.Output()),
	}
	for i := 0; i < catalog.Len(); i++ {
		if stock[i] < 0 || rate[i] < 0 {
			return State{}, fmt.Errorf("negative %s stock or rate", catalog.Name(Kind(i)))
		}
		s.stock[i] = stock[i]
		s.rate[i] = rate[i]
	}
	return s, nil
}

// AdvanceIdle returns the state one step later with nothing built: every stock
// grows by its rate. A terminal state has no successor and is returned unchanged.
func (s State) AdvanceIdle() State {
	if s.IsTerminal() {
		return s
	}
	next := s
	next.remaining--
	for i := 0; i < int(s.kinds); i++ {
		next.stock[i] += s.rate[i]
	}
	return next
}

// AdvanceWithBuild returns the state one step later with one unit of kind
// started this step. The cost is paid at the start of the step, existing
// rates produce during the step, and the new unit only produces from the next
// step on.
func (s State) AdvanceWithBuild(kind Kind, cost Quantities) (State, error) {
	if int(kind) >= int(s.kinds) {
		return State{}, &ErrInvalidTransition{
			Kind:      kind,
			Remaining: int(s.remaining),
			Reason:    "kind outside catalog",
		}
	}
	if s.IsTerminal() {
		return State{}, &ErrInvalidTransition{
			Kind:      kind,
			Remaining: 0,
			Reason:    "no time left",
		}
	}
	for i := 0; i < int(s.kinds); i++ {
		if s.stock[i] < cost[i] {
			return State{}, &ErrInvalidTransition{
				Kind:      kind,
				Resource:  Kind(i),
				Required:  int(cost[i]),
				Available: int(s.stock[i]),
				Remaining: int(s.remaining),
			}
		}
	}

	next := s
	next.remaining--
	for i := 0; i < int(s.kinds); i++ {
		next.stock[i] += s.rate[i] - cost[i]
	}
	next.rate[kind]++
	return next, nil
}

// CanAfford reports whether the current stock covers cost
func (s State) CanAfford(cost Quantities) bool {
	for i := 0; i < int(s.kinds); i++ {
		if s.stock[i] < cost[i] {
			return false
		}
	}
	return true
}

// IsTerminal reports whether no time is left
func (s State) IsTerminal() bool {
	return s.remaining == 0
}

// Score returns the accumulated output stock
func (s State) Score() int {
	return int(s.stock[s.output])
}

// Remaining returns the number of steps left
func (s State) Remaining() int {
	return int(s.remaining)
}

// Stock returns the accumulated quantity of kind k
func (s State) Stock(k Kind) int {
	return int(s.stock[k])
}

// Rate returns the per-step production of kind k
func (s State) Rate(k Kind) int {
	return int(s.rate[k])
}

// Kinds returns the number of resource kinds tracked
func (s State) Kinds() int {
	return int(s.kinds)
}

// Output returns the output kind
func (s State) Output() Kind {
	return Kind(s.output)
}

// WithRemaining returns a copy with the time budget replaced, clamped to
// [0, MaxTimeBudget].
func (s State) WithRemaining(n int) State {
	switch {
	case n < 0:
		n = 0
	case n > MaxTimeBudget:
		n = MaxTimeBudget
	}
	s.remaining = int32(n)
	return s
}

// withStock returns a copy with kind k's stock replaced
func (s State) withStock(k Kind, qty int32) State {
	s.stock[k] = qty
	return s
}

// String renders the state for logs
func (s State) String() string {
	return fmt.Sprintf("t=%d stock=%v rate=%v", s.remaining, s.stock[:s.kinds], s.rate[:s.kinds])
}
