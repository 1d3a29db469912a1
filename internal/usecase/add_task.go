package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/whiteboard/internal/domain"
	"github.com/runoshun/whiteboard/internal/usecase/shared"
)

// AddTaskInput contains the parameters for adding a task.
type AddTaskInput struct {
	ParentID string // Parent task (empty = top level)
	Line     string // Task line without indentation
}

// AddTaskOutput contains the created task.
type AddTaskOutput struct {
	ID   string // Identifier of the new task
	Line string // Stored line, including indentation
}

// AddTask is the use case for appending a child task.
// Fields are ordered to minimize memory padding.
type AddTask struct {
	repo     domain.OutlineRepository
	notifier domain.Notifier
	clock    domain.Clock
	logger   domain.Logger
	ids      *domain.IDGenerator
}

// NewAddTask creates a new AddTask use case.
func NewAddTask(
	repo domain.OutlineRepository,
	ids *domain.IDGenerator,
	notifier domain.Notifier,
	clock domain.Clock,
	logger domain.Logger,
) *AddTask {
	return &AddTask{repo: repo, ids: ids, notifier: notifier, clock: clock, logger: logger}
}

// Execute appends the line as the last child of the parent and gives it an id.
func (uc *AddTask) Execute(ctx context.Context, in AddTaskInput) (*AddTaskOutput, error) {
	line := strings.TrimSpace(in.Line)
	if line == "" {
		return nil, domain.ErrEmptyLine
	}
	if strings.ContainsAny(line, "\r\n") {
		return nil, domain.ErrLineBreak
	}
	if _, err := domain.Tokenize(line); err != nil {
		return nil, err
	}

	out := &AddTaskOutput{}
	_, _, err := shared.EditTree(ctx, uc.repo, uc.ids, func(root *domain.Task) error {
		parent, err := shared.GetTask(root, in.ParentID)
		if err != nil {
			return err
		}
		child := domain.NewTask(domain.IndentString(parent.Level()+1)+line, uc.ids)
		id, err := child.ID()
		if err != nil {
			return err
		}
		parent.AppendChild(child)
		out.ID, out.Line = id, child.Line()
		return nil
	})
	if err != nil {
		return nil, err
	}

	shared.NotifyChanged(ctx, uc.notifier, uc.clock, in.ParentID)
	if uc.logger != nil {
		uc.logger.Info(out.ID, "add", fmt.Sprintf("task added under %s", domain.LogScope(in.ParentID)))
	}
	return out, nil
}
