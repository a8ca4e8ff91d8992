package ports

import (
	"context"

	"github.com/aretw0/adaptor/pkg/domain"
)

// RunStore persists the final state of completed runs.
type RunStore interface {
	// Save records run under run.ID, replacing any previous record.
	Save(ctx context.Context, run *domain.Run) error

	// Load retrieves a run.
	// Returns domain.ErrRunNotFound if the run does not exist.
	Load(ctx context.Context, runID string) (*domain.Run, error)

	// Delete removes a run. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, runID string) error

	// List returns the stored run IDs, oldest first.
	List(ctx context.Context) ([]string, error)
}
