package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/whiteboard/internal/domain"
	"github.com/runoshun/whiteboard/internal/usecase/shared"
)

// AssignIDsOutput contains the result of assigning identifiers.
type AssignIDsOutput struct {
	Minted int // Number of identifiers added
}

// AssignIDs is the use case for giving every task an identifier.
type AssignIDs struct {
	repo     domain.OutlineRepository
	notifier domain.Notifier
	clock    domain.Clock
	ids      *domain.IDGenerator
}

// NewAssignIDs creates a new AssignIDs use case.
func NewAssignIDs(repo domain.OutlineRepository, ids *domain.IDGenerator, notifier domain.Notifier, clock domain.Clock) *AssignIDs {
	return &AssignIDs{repo: repo, ids: ids, notifier: notifier, clock: clock}
}

// Execute appends an id tag to every task that has none and saves.
func (uc *AssignIDs) Execute(ctx context.Context) (*AssignIDsOutput, error) {
	out := &AssignIDsOutput{}
	_, _, err := shared.EditTree(ctx, uc.repo, uc.ids, func(root *domain.Task) error {
		n, err := root.EnsureIDs()
		if err != nil {
			return fmt.Errorf("assign ids: %w", err)
		}
		out.Minted = n
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out.Minted > 0 {
		shared.NotifyChanged(ctx, uc.notifier, uc.clock, "")
	}
	return out, nil
}
