package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/whiteboard/internal/domain"
	"github.com/runoshun/whiteboard/internal/usecase/shared"
)

// SetStatusInput contains the parameters for moving a task on the board.
type SetStatusInput struct {
	TaskID string        // Task to update (required)
	Status domain.Status // New status; empty = advance to the next status
}

// SetStatusOutput contains the result of setting a status.
type SetStatusOutput struct {
	Line   string        // Task line after the change
	Status domain.Status // Resulting status
}

// SetStatus is the use case for changing the status tag of a task.
// Fields are ordered to minimize memory padding.
type SetStatus struct {
	repo     domain.OutlineRepository
	notifier domain.Notifier
	clock    domain.Clock
	logger   domain.Logger
	ids      *domain.IDGenerator
}

// NewSetStatus creates a new SetStatus use case.
func NewSetStatus(
	repo domain.OutlineRepository,
	ids *domain.IDGenerator,
	notifier domain.Notifier,
	clock domain.Clock,
	logger domain.Logger,
) *SetStatus {
	return &SetStatus{repo: repo, ids: ids, notifier: notifier, clock: clock, logger: logger}
}

// Execute sets the status of a task. new and done are written as the
// absence or presence of the "x " marker; doing as a status tag.
func (uc *SetStatus) Execute(ctx context.Context, in SetStatusInput) (*SetStatusOutput, error) {
	if in.TaskID == "" {
		return nil, fmt.Errorf("task id is required: %w", domain.ErrTaskNotFound)
	}
	if in.Status != "" {
		if _, err := domain.ParseStatus(string(in.Status)); err != nil {
			return nil, err
		}
	}

	out := &SetStatusOutput{}
	before, after, err := shared.EditTree(ctx, uc.repo, uc.ids, func(root *domain.Task) error {
		task, err := shared.GetTask(root, in.TaskID)
		if err != nil {
			return err
		}
		st := in.Status
		if st == "" {
			st = task.Status().Next()
		}
		done := st == domain.StatusDone
		if err := domain.ApplyJSON(task, &domain.Patch{Status: &st, IsDone: &done}); err != nil {
			return err
		}
		out.Line, out.Status = task.Line(), task.Status()
		return nil
	})
	if err != nil {
		return nil, err
	}

	if before != after {
		shared.NotifyChanged(ctx, uc.notifier, uc.clock, in.TaskID)
		if uc.logger != nil {
			uc.logger.Info(in.TaskID, "status", fmt.Sprintf("status set: %s", out.Status))
		}
	}
	return out, nil
}
