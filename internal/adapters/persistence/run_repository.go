package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/blueprints-go/internal/domain/blueprint"
	"github.com/andrescamacho/blueprints-go/internal/domain/search"
)

// GormRunRepository implements blueprint.RunRepository using GORM
type GormRunRepository struct {
	db *gorm.DB
}

// NewGormRunRepository creates a new GORM run repository
func NewGormRunRepository(db *gorm.DB) *GormRunRepository {
	return &GormRunRepository{db: db}
}

// Save persists a finished run and its per-blueprint results in one transaction
func (r *GormRunRepository) Save(ctx context.Context, run *blueprint.EvaluationRun) error {
	model := r.runToModel(run)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(model).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save evaluation run %s: %w", run.ID(), err)
	}

	return nil
}

// FindByID retrieves a run with its results
func (r *GormRunRepository) FindByID(ctx context.Context, id string) (*blueprint.EvaluationRun, error) {
	var model EvaluationRunModel
	result := r.db.WithContext(ctx).
		Preload("Results", orderByPosition).
		Where("id = ?", id).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, &blueprint.ErrRunNotFound{ID: id}
		}
		return nil, fmt.Errorf("failed to find evaluation run: %w", result.Error)
	}

	return r.modelToRun(&model), nil
}

// ListRecent returns up to limit runs, newest first
func (r *GormRunRepository) ListRecent(ctx context.Context, limit int) ([]*blueprint.EvaluationRun, error) {
	var models []EvaluationRunModel
	query := r.db.WithContext(ctx).
		Preload("Results", orderByPosition).
		Order("started_at DESC").
		Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list evaluation runs: %w", err)
	}

	runs := make([]*blueprint.EvaluationRun, 0, len(models))
	for i := range models {
		runs = append(runs, r.modelToRun(&models[i]))
	}
	return runs, nil
}

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// runToModel converts the domain run to database models
func (r *GormRunRepository) runToModel(run *blueprint.EvaluationRun) *EvaluationRunModel {
	results := run.Results()
	model := &EvaluationRunModel{
		ID:             run.ID(),
		Mode:           string(run.Mode()),
		TimeBudget:     run.TimeBudget(),
		BlueprintLimit: run.Limit(),
		Aggregate:      int64(run.Aggregate()),
		StartedAt:      run.StartedAt().UTC(),
		FinishedAt:     run.FinishedAt().UTC(),
		Results:        make([]BlueprintResultModel, 0, len(results)),
	}

	for _, res := range results {
		model.Results = append(model.Results, BlueprintResultModel{
			RunID:        run.ID(),
			Position:     res.Position,
			BlueprintID:  res.BlueprintID,
			BestScore:    res.BestScore,
			Expanded:     int64(res.Stats.Expanded),
			Duplicates:   int64(res.Stats.Duplicates),
			Pruned:       int64(res.Stats.Pruned),
			Terminals:    int64(res.Stats.Terminals),
			PeakFrontier: int64(res.Stats.PeakFrontier),
			DurationMs:   res.Duration.Milliseconds(),
		})
	}

	return model
}

// modelToRun converts database models back to the domain run
func (r *GormRunRepository) modelToRun(model *EvaluationRunModel) *blueprint.EvaluationRun {
	results := make([]blueprint.Result, 0, len(model.Results))
	for _, res := range model.Results {
		results = append(results, blueprint.Result{
			BlueprintID: res.BlueprintID,
			Position:    res.Position,
			BestScore:   res.BestScore,
			Stats: search.Stats{
				Expanded:     int(res.Expanded),
				Duplicates:   int(res.Duplicates),
				Pruned:       int(res.Pruned),
				Terminals:    int(res.Terminals),
				PeakFrontier: int(res.PeakFrontier),
			},
			Duration: time.Duration(res.DurationMs) * time.Millisecond,
		})
	}

	return blueprint.ReconstructEvaluationRun(
		model.ID,
		blueprint.Mode(model.Mode),
		model.TimeBudget,
		model.BlueprintLimit,
		results,
		int(model.Aggregate),
		model.StartedAt,
		model.FinishedAt,
	)
}
