package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-pathfinder/domain"
	"github.com/google/uuid"
)

// RunRepo defines the interface for run persistence operations.
type RunRepo interface {
	// Save inserts or updates a run in the repository.
	Save(ctx context.Context, run *dmn.Run) error

	// ByID retrieves a run by its unique ID.
	// Returns ErrRunNotFound if there is no such run.
	ByID(ctx context.Context, id uuid.UUID) (*dmn.Run, error)
}

// RunCache keeps recently solved runs keyed by their configuration.
type RunCache interface {
	// Fetch returns the cached run for key, or ErrCacheMiss.
	Fetch(ctx context.Context, key string) (*dmn.Run, error)

	// Store caches run under key.
	Store(ctx context.Context, key string, run *dmn.Run) error

	// Lock takes a lock named after key and returns its release function.
	Lock(ctx context.Context, key string) (func(), error)
}
