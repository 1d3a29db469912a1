package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/whiteboard/internal/domain"
)

// OutlineHistoryInput contains the parameters for listing revisions.
type OutlineHistoryInput struct {
	Limit int // Maximum number of revisions (0 = all)
}

// OutlineHistoryOutput contains the revisions, newest first.
type OutlineHistoryOutput struct {
	Revisions []domain.Revision
	Supported bool // False when the store keeps no history
}

// OutlineHistory is the use case for listing past revisions of the outline.
type OutlineHistory struct {
	repo domain.OutlineRepository
}

// NewOutlineHistory creates a new OutlineHistory use case.
func NewOutlineHistory(repo domain.OutlineRepository) *OutlineHistory {
	return &OutlineHistory{repo: repo}
}

// Execute lists revisions when the store supports it.
func (uc *OutlineHistory) Execute(ctx context.Context, in OutlineHistoryInput) (*OutlineHistoryOutput, error) {
	reader, ok := uc.repo.(domain.HistoryReader)
	if !ok {
		return &OutlineHistoryOutput{}, nil
	}
	revs, err := reader.History(ctx, in.Limit)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return &OutlineHistoryOutput{Revisions: revs, Supported: true}, nil
}

// ShowRevisionInput contains the parameters for reading a revision.
type ShowRevisionInput struct {
	Hash string // Revision hash (required)
}

// ShowRevisionOutput contains a past revision and the current text.
type ShowRevisionOutput struct {
	Text    string // Outline text of the revision
	Current string // Current outline text
}

// ShowRevision is the use case for reading a past revision of the outline.
type ShowRevision struct {
	repo domain.OutlineRepository
}

// NewShowRevision creates a new ShowRevision use case.
func NewShowRevision(repo domain.OutlineRepository) *ShowRevision {
	return &ShowRevision{repo: repo}
}

// Execute returns the revision text. Stores without history return
// ErrHistoryUnsupported.
func (uc *ShowRevision) Execute(ctx context.Context, in ShowRevisionInput) (*ShowRevisionOutput, error) {
	reader, ok := uc.repo.(domain.RevisionReader)
	if !ok {
		return nil, domain.ErrHistoryUnsupported
	}
	text, err := reader.Revision(ctx, in.Hash)
	if err != nil {
		return nil, err
	}
	current, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load outline: %w", err)
	}
	return &ShowRevisionOutput{Text: text, Current: current}, nil
}
