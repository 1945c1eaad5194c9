package helpers

import (
	"context"
	"sort"
	"sync"

	"github.com/andrescamacho/blueprints-go/internal/domain/blueprint"
)

// MockRunRepository is a test double for blueprint.RunRepository
type MockRunRepository struct {
	mu      sync.RWMutex
	runs    map[string]*blueprint.EvaluationRun
	SaveErr error
	saves   int
}

// NewMockRunRepository creates a new mock run repository
func NewMockRunRepository() *MockRunRepository {
	return &MockRunRepository{
		runs: make(map[string]*blueprint.EvaluationRun),
	}
}

// Save stores the run unless SaveErr is set
func (m *MockRunRepository) Save(ctx context.Context, run *blueprint.EvaluationRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.runs[run.ID()] = run
	m.saves++
	return nil
}

// FindByID retrieves a run by ID
func (m *MockRunRepository) FindByID(ctx context.Context, id string) (*blueprint.EvaluationRun, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	run, ok := m.runs[id]
	if !ok {
		return nil, &blueprint.ErrRunNotFound{ID: id}
	}
	return run, nil
}

// ListRecent returns up to limit runs, newest first
func (m *MockRunRepository) ListRecent(ctx context.Context, limit int) ([]*blueprint.EvaluationRun, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	runs := make([]*blueprint.EvaluationRun, 0, len(m.runs))
	for _, run := range m.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt().After(runs[j].StartedAt())
	})
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// SaveCount returns the number of successful saves
func (m *MockRunRepository) SaveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}
