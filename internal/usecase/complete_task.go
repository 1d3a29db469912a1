package usecase

import (
	"context"

	"github.com/runoshun/whiteboard/internal/domain"
)

// CompleteTaskInput contains the parameters for completing a task.
type CompleteTaskInput struct {
	TaskID string // Task to complete (required)
	Undo   bool   // Reopen the task instead
}

// CompleteTask is the use case for checking a task off.
// It is SetStatus with done (or new when reopening).
type CompleteTask struct {
	setStatus *SetStatus
}

// NewCompleteTask creates a new CompleteTask use case.
func NewCompleteTask(setStatus *SetStatus) *CompleteTask {
	return &CompleteTask{setStatus: setStatus}
}

// Execute marks the task done, or new when Undo is set.
func (uc *CompleteTask) Execute(ctx context.Context, in CompleteTaskInput) (*SetStatusOutput, error) {
	st := domain.StatusDone
	if in.Undo {
		st = domain.StatusNew
	}
	return uc.setStatus.Execute(ctx, SetStatusInput{TaskID: in.TaskID, Status: st})
}
