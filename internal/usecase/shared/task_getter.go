package shared

import (
	"context"
	"fmt"

	"github.com/runoshun/whiteboard/internal/domain"
)

// LoadTree loads and parses the outline. The result is always the virtual
// root, even for a single top-level task. Identifiers already stored in the
// outline are reported to ids, so tasks added later never reuse them.
func LoadTree(ctx context.Context, repo domain.OutlineRepository, ids *domain.IDGenerator) (*domain.Task, error) {
	text, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load outline: %w", err)
	}
	return parseTree(text, ids), nil
}

// GetTask returns the task with the given id, or root for an empty id.
// Returns domain.ErrTaskNotFound if no task carries the id.
func GetTask(root *domain.Task, id string) (*domain.Task, error) {
	if id == "" {
		return root, nil
	}
	task := root.FindByID(id)
	if task == nil {
		return nil, fmt.Errorf("task %s: %w", id, domain.ErrTaskNotFound)
	}
	return task, nil
}

// EditTree parses the outline, lets fn modify the tree and saves the
// rendered result, all under the store lock. It returns the text before
// and after the edit; they are equal when nothing changed.
func EditTree(
	ctx context.Context,
	repo domain.OutlineRepository,
	ids *domain.IDGenerator,
	fn func(root *domain.Task) error,
) (before, after string, err error) {
	err = repo.Update(ctx, func(text string) (string, error) {
		root := parseTree(text, ids)
		if err := fn(root); err != nil {
			return "", err
		}
		before, after = text, domain.Render(root)
		return after, nil
	})
	if err != nil {
		return "", "", err
	}
	return before, after, nil
}

func parseTree(text string, ids *domain.IDGenerator) *domain.Task {
	root := domain.ParseRoot(text, ids)
	if ids != nil {
		ids.ObserveTree(root)
	}
	return root
}
