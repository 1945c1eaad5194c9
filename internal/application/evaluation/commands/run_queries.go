package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/blueprints-go/internal/application/common"
	"github.com/andrescamacho/blueprints-go/internal/domain/blueprint"
)

// defaultListLimit caps ListRunsQuery when no limit is given
const defaultListLimit = 20

// GetRunQuery loads one saved evaluation run
type GetRunQuery struct {
	ID string
}

// GetRunResponse carries the loaded run
type GetRunResponse struct {
	Run *blueprint.EvaluationRun
}

// GetRunHandler handles GetRunQuery
type GetRunHandler struct {
	repo blueprint.RunRepository
}

// NewGetRunHandler creates a new get run handler
func NewGetRunHandler(repo blueprint.RunRepository) *GetRunHandler {
	return &GetRunHandler{repo: repo}
}

// Handle executes the query
func (h *GetRunHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetRunQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}
	if query.ID == "" {
		return nil, fmt.Errorf("run id is required")
	}

	run, err := h.repo.FindByID(ctx, query.ID)
	if err != nil {
		return nil, err
	}
	return &GetRunResponse{Run: run}, nil
}

// ListRunsQuery lists the most recent saved runs
type ListRunsQuery struct {
	Limit int
}

// ListRunsResponse carries the runs, newest first
type ListRunsResponse struct {
	Runs []*blueprint.EvaluationRun
}

// ListRunsHandler handles ListRunsQuery
type ListRunsHandler struct {
	repo blueprint.RunRepository
}

// NewListRunsHandler creates a new list runs handler
func NewListRunsHandler(repo blueprint.RunRepository) *ListRunsHandler {
	return &ListRunsHandler{repo: repo}
}

// Handle executes the query
func (h *ListRunsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*ListRunsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	limit := query.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	runs, err := h.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return &ListRunsResponse{Runs: runs}, nil
}
