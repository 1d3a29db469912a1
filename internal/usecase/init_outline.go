package usecase

import (
	"context"
	"fmt"
	"os"

	"github.com/runoshun/whiteboard/internal/domain"
)

// InitOutlineInput contains the parameters for InitOutline.
type InitOutlineInput struct {
	DataDir string // Path to the .whiteboard directory
}

// InitOutlineOutput contains the result of InitOutline.
type InitOutlineOutput struct {
	AlreadyInitialized bool // True if the outline store already existed
}

// InitOutline creates the outline store of a project.
type InitOutline struct {
	storeInit domain.StoreInitializer
}

// NewInitOutline creates a new InitOutline use case.
func NewInitOutline(storeInit domain.StoreInitializer) *InitOutline {
	return &InitOutline{storeInit: storeInit}
}

// Execute creates the data directory and an empty outline if missing.
// Running it twice is harmless.
func (uc *InitOutline) Execute(_ context.Context, in InitOutlineInput) (*InitOutlineOutput, error) {
	if in.DataDir != "" {
		if err := os.MkdirAll(in.DataDir, 0o750); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}
	created, err := uc.storeInit.Initialize()
	if err != nil {
		return nil, fmt.Errorf("initialize outline store: %w", err)
	}
	return &InitOutlineOutput{AlreadyInitialized: !created}, nil
}
