package persistence

import (
	"time"
)

// EvaluationRunModel represents the evaluation_runs table
type EvaluationRunModel struct {
	ID             string                 `gorm:"column:id;primaryKey"`
	Mode           string                 `gorm:"column:mode;not null;index"`
	TimeBudget     int                    `gorm:"column:time_budget;not null"`
	BlueprintLimit int                    `gorm:"column:blueprint_limit;not null;default:0"`
	Aggregate      int64                  `gorm:"column:aggregate;not null"`
	StartedAt      time.Time              `gorm:"column:started_at;not null;index"`
	FinishedAt     time.Time              `gorm:"column:finished_at;not null"`
	Results        []BlueprintResultModel `gorm:"foreignKey:RunID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (EvaluationRunModel) TableName() string {
	return "evaluation_runs"
}

// BlueprintResultModel represents the blueprint_results table.
// Only finished results are stored; search state is never persisted.
type BlueprintResultModel struct {
	ID           int    `gorm:"column:id;primaryKey;autoIncrement"`
	RunID        string `gorm:"column:run_id;not null;index"`
	Position     int    `gorm:"column:position;not null"`
	BlueprintID  int    `gorm:"column:blueprint_id;not null"`
	BestScore    int    `gorm:"column:best_score;not null"`
	Expanded     int64  `gorm:"column:states_expanded;not null;default:0"`
	Duplicates   int64  `gorm:"column:states_duplicate;not null;default:0"`
	Pruned       int64  `gorm:"column:states_pruned;not null;default:0"`
	Terminals    int64  `gorm:"column:terminal_states;not null;default:0"`
	PeakFrontier int64  `gorm:"column:peak_frontier;not null;default:0"`
	DurationMs   int64  `gorm:"column:duration_ms;not null;default:0"`
}

func (BlueprintResultModel) TableName() string {
	return "blueprint_results"
}
