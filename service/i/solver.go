package i

import (
	"context"

	"github.com/beka-birhanu/vinom-pathfinder/config"
	dmn "github.com/beka-birhanu/vinom-pathfinder/domain"
	"github.com/google/uuid"
)

// RunService solves mazes on request and serves stored runs.
type RunService interface {
	// SolveCached returns the run for cfg, solving it only when no cached copy exists.
	SolveCached(ctx context.Context, cfg config.MazeConfig) (*dmn.Run, error)

	// RunByID returns a stored run.
	RunByID(ctx context.Context, id uuid.UUID) (*dmn.Run, error)
}
