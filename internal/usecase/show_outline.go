// Package usecase contains the application use cases.
package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/whiteboard/internal/domain"
	"github.com/runoshun/whiteboard/internal/usecase/shared"
)

// ShowOutlineInput contains the parameters for showing the outline.
type ShowOutlineInput struct {
	TaskID string // Subtree to show (empty = whole outline)
}

// ShowOutlineOutput contains the result of showing the outline.
type ShowOutlineOutput struct {
	Task *domain.Task     // The requested task
	JSON *domain.TaskJSON // Projection of Task
}

// ShowOutline is the use case for reading the outline as a JSON projection.
// Every concrete task needs an identifier to be addressable by a later
// patch, so identifiers minted for the projection are saved.
type ShowOutline struct {
	repo domain.OutlineRepository
	ids  *domain.IDGenerator
}

// NewShowOutline creates a new ShowOutline use case.
func NewShowOutline(repo domain.OutlineRepository, ids *domain.IDGenerator) *ShowOutline {
	return &ShowOutline{repo: repo, ids: ids}
}

// Execute returns the projection of the requested task.
func (uc *ShowOutline) Execute(ctx context.Context, in ShowOutlineInput) (*ShowOutlineOutput, error) {
	var root *domain.Task
	_, _, err := shared.EditTree(ctx, uc.repo, uc.ids, func(r *domain.Task) error {
		root = r
		_, err := r.EnsureIDs()
		return err
	})
	if err != nil {
		return nil, err
	}

	task, err := shared.GetTask(root, in.TaskID)
	if err != nil {
		return nil, err
	}
	projection, err := domain.ToJSON(task)
	if err != nil {
		return nil, fmt.Errorf("project task: %w", err)
	}
	return &ShowOutlineOutput{Task: task, JSON: projection}, nil
}
