package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/whiteboard/internal/domain"
	"github.com/runoshun/whiteboard/internal/usecase/shared"
)

// ReplaceOutlineInput contains the new outline text.
type ReplaceOutlineInput struct {
	Text string
}

// ReplaceOutlineOutput contains the result of replacing the outline.
type ReplaceOutlineOutput struct {
	Before  string
	Changed bool
}

// ReplaceOutline is the use case for saving hand-edited outline text.
// Any text is a valid outline; it is stored verbatim.
// Fields are ordered to minimize memory padding.
type ReplaceOutline struct {
	repo     domain.OutlineRepository
	notifier domain.Notifier
	clock    domain.Clock
	logger   domain.Logger
}

// NewReplaceOutline creates a new ReplaceOutline use case.
func NewReplaceOutline(
	repo domain.OutlineRepository,
	notifier domain.Notifier,
	clock domain.Clock,
	logger domain.Logger,
) *ReplaceOutline {
	return &ReplaceOutline{repo: repo, notifier: notifier, clock: clock, logger: logger}
}

// Execute stores the text unless it equals the current outline.
func (uc *ReplaceOutline) Execute(ctx context.Context, in ReplaceOutlineInput) (*ReplaceOutlineOutput, error) {
	out := &ReplaceOutlineOutput{}
	err := uc.repo.Update(ctx, func(text string) (string, error) {
		out.Before = text
		return in.Text, nil
	})
	if err != nil {
		return nil, err
	}
	out.Changed = !sameText(out.Before, in.Text)

	if out.Changed {
		shared.NotifyChanged(ctx, uc.notifier, uc.clock, "")
		if uc.logger != nil {
			uc.logger.Info("", "edit", fmt.Sprintf("outline replaced (%d bytes)", len(in.Text)))
		}
	}
	return out, nil
}
