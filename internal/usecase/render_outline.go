package usecase

import (
	"context"

	"github.com/runoshun/whiteboard/internal/domain"
	"github.com/runoshun/whiteboard/internal/usecase/shared"
)

// RenderOutlineInput contains the parameters for rendering the outline.
type RenderOutlineInput struct {
	TaskID string // Subtree to render (empty = whole outline)
}

// RenderOutlineOutput contains the rendered text.
type RenderOutlineOutput struct {
	Text string
}

// RenderOutline is the use case for printing the outline in its text form.
// It never modifies the stored outline.
type RenderOutline struct {
	repo domain.OutlineRepository
	ids  *domain.IDGenerator
}

// NewRenderOutline creates a new RenderOutline use case.
func NewRenderOutline(repo domain.OutlineRepository, ids *domain.IDGenerator) *RenderOutline {
	return &RenderOutline{repo: repo, ids: ids}
}

// Execute renders the requested subtree.
func (uc *RenderOutline) Execute(ctx context.Context, in RenderOutlineInput) (*RenderOutlineOutput, error) {
	root, err := shared.LoadTree(ctx, uc.repo, uc.ids)
	if err != nil {
		return nil, err
	}
	task, err := shared.GetTask(root, in.TaskID)
	if err != nil {
		return nil, err
	}
	return &RenderOutlineOutput{Text: domain.Render(task)}, nil
}
