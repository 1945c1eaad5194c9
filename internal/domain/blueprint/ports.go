package blueprint

import "context"

// RunRepository persists finished evaluation runs
type RunRepository interface {
	// Save persists a run together with its per-blueprint results
	Save(ctx context.Context, run *EvaluationRun) error

	// FindByID retrieves a run; returns *ErrRunNotFound when absent
	FindByID(ctx context.Context, id string) (*EvaluationRun, error)

	// ListRecent returns up to limit runs, newest first
	ListRecent(ctx context.Context, limit int) ([]*EvaluationRun, error)
}
