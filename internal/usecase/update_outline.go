package usecase

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/whiteboard/internal/domain"
	"github.com/runoshun/whiteboard/internal/usecase/shared"
)

// UpdateOutlineInput contains the parameters for patching the outline.
type UpdateOutlineInput struct {
	TaskID string // Task to patch (empty = the root of the outline)
	Data   []byte // Patch document (JSON)
	DryRun bool   // Compute the result without saving it
}

// UpdateOutlineOutput contains the result of patching the outline.
// Fields are ordered to minimize memory padding.
type UpdateOutlineOutput struct {
	Task    *domain.TaskJSON // Projection of the patched task
	Before  string           // Outline text before the patch
	After   string           // Outline text after the patch
	Changed bool             // Whether the text changed
}

// UpdateOutline is the use case for applying a JSON patch to the outline.
// Fields are ordered to minimize memory padding.
type UpdateOutline struct {
	repo      domain.OutlineRepository
	validator domain.PatchValidator
	notifier  domain.Notifier
	clock     domain.Clock
	logger    domain.Logger
	ids       *domain.IDGenerator
}

// NewUpdateOutline creates a new UpdateOutline use case.
// validator, notifier and logger may be nil.
func NewUpdateOutline(
	repo domain.OutlineRepository,
	ids *domain.IDGenerator,
	validator domain.PatchValidator,
	notifier domain.Notifier,
	clock domain.Clock,
	logger domain.Logger,
) *UpdateOutline {
	return &UpdateOutline{
		repo:      repo,
		ids:       ids,
		validator: validator,
		notifier:  notifier,
		clock:     clock,
		logger:    logger,
	}
}

// Execute validates and decodes the patch, applies it and saves the outline.
// A rejected patch leaves the stored outline untouched.
func (uc *UpdateOutline) Execute(ctx context.Context, in UpdateOutlineInput) (*UpdateOutlineOutput, error) {
	if len(bytes.TrimSpace(in.Data)) == 0 {
		return nil, domain.ErrNoFieldsToUpdate
	}
	if uc.validator != nil {
		if err := uc.validator.Validate(in.Data); err != nil {
			return nil, err
		}
	}
	patch, err := domain.DecodePatch(in.Data)
	if err != nil {
		return nil, err
	}

	out := &UpdateOutlineOutput{}
	apply := func(root *domain.Task) error {
		task, err := shared.GetTask(root, in.TaskID)
		if err != nil {
			return err
		}
		if err := domain.ApplyJSON(task, patch); err != nil {
			return err
		}
		out.Task, err = domain.ToJSON(task)
		if err != nil {
			return fmt.Errorf("project task: %w", err)
		}
		return nil
	}

	if in.DryRun {
		text, err := uc.repo.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load outline: %w", err)
		}
		// A private generator keeps the preview from consuming identifiers.
		ids := domain.NewIDGenerator()
		root := domain.ParseRoot(text, ids)
		ids.ObserveTree(root)
		if err := apply(root); err != nil {
			return nil, err
		}
		out.Before, out.After = text, domain.Render(root)
	} else {
		out.Before, out.After, err = shared.EditTree(ctx, uc.repo, uc.ids, apply)
		if err != nil {
			return nil, err
		}
	}
	out.Changed = !sameText(out.Before, out.After)

	if out.Changed && !in.DryRun {
		shared.NotifyChanged(ctx, uc.notifier, uc.clock, in.TaskID)
		if uc.logger != nil {
			uc.logger.Info(in.TaskID, "patch", fmt.Sprintf("outline patched (%d bytes)", len(in.Data)))
		}
	}
	return out, nil
}

// sameText compares outline texts ignoring the trailing newline a store adds.
func sameText(a, b string) bool {
	return strings.TrimRight(a, "\n") == strings.TrimRight(b, "\n")
}
