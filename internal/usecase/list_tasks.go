package usecase

import (
	"context"
	"slices"

	"github.com/runoshun/whiteboard/internal/domain"
	"github.com/runoshun/whiteboard/internal/usecase/shared"
)

// ListTasksInput contains the parameters for listing tasks.
// Empty fields do not filter.
type ListTasksInput struct {
	ParentID string          // List below this task (empty = whole outline)
	Context  string          // Require this @context
	Project  string          // Require this +project
	Tags     []string        // Tag specs that must all match ("key:" or "key:value")
	NoTags   []string        // Tag specs none of which may match
	Statuses []domain.Status // Allowed statuses
	MaxDepth int             // Deepest level to include, 1 = direct children (0 = unlimited)
	HideDone bool            // Exclude done tasks
}

// ListedTask is a task with its depth below the listing root.
type ListedTask struct {
	Task  *domain.Task
	Depth int // 1 = direct child
}

// ListTasksOutput contains the result of listing tasks.
type ListTasksOutput struct {
	Tasks []ListedTask // Matching tasks in outline order
}

// ListTasks is the use case for listing tasks.
type ListTasks struct {
	repo domain.OutlineRepository
	ids  *domain.IDGenerator
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(repo domain.OutlineRepository, ids *domain.IDGenerator) *ListTasks {
	return &ListTasks{repo: repo, ids: ids}
}

// Execute lists tasks matching the given input criteria.
func (uc *ListTasks) Execute(ctx context.Context, in ListTasksInput) (*ListTasksOutput, error) {
	root, err := shared.LoadTree(ctx, uc.repo, uc.ids)
	if err != nil {
		return nil, err
	}
	parent, err := shared.GetTask(root, in.ParentID)
	if err != nil {
		return nil, err
	}

	out := &ListTasksOutput{}
	parent.Walk(func(task *domain.Task, depth int) bool {
		if task == parent || task.IsVirtual() {
			return true
		}
		if in.MaxDepth > 0 && depth > in.MaxDepth {
			return false
		}
		if in.matches(task) {
			out.Tasks = append(out.Tasks, ListedTask{Task: task, Depth: depth})
		}
		return true
	})
	return out, nil
}

func (in ListTasksInput) matches(task *domain.Task) bool {
	if in.HideDone && task.IsDone() {
		return false
	}
	if len(in.Statuses) > 0 && !slices.Contains(in.Statuses, task.Status()) {
		return false
	}
	if in.Context != "" && !slices.Contains(task.Contexts(), in.Context) {
		return false
	}
	if in.Project != "" && !slices.Contains(task.Projects(), in.Project) {
		return false
	}
	if len(in.Tags) > 0 && !task.HasTags(in.Tags...) {
		return false
	}
	if len(in.NoTags) > 0 && !task.HasNoTags(in.NoTags...) {
		return false
	}
	return true
}
