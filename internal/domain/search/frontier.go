package search

import "github.com/andrescamacho/blueprints-go/internal/domain/production"

// compactThreshold is the number of consumed slots after which the queue
// reclaims the dead prefix of its backing slice.
const compactThreshold = 4096

// frontier is a FIFO queue of states awaiting expansion
type frontier struct {
	items []production.State
	head  int
}

func newFrontier(initial production.State) *frontier {
	f := &frontier{items: make([]production.State, 0, 1024)}
	f.push(initial)
	return f
}

func (f *frontier) push(states ...production.State) {
	f.items = append(f.items, states...)
}

func (f *frontier) pop() (production.State, bool) {
	if f.head >= len(f.items) {
		return production.State{}, false
	}
	s := f.items[f.head]
	f.head++

	if f.head >= compactThreshold && f.head*2 >= len(f.items) {
		n := copy(f.items, f.items[f.head:])
		f.items = f.items[:n]
		f.head = 0
	}
	return s, true
}

func (f *frontier) len() int {
	return len(f.items) - f.head
}
