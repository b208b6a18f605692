package i

import (
	"context"
	"time"

	"github.com/beka-birhanu/vinom-pathfinder/grid"
	"github.com/beka-birhanu/vinom-pathfinder/pathfinding"
)

// Agent names the drawing agents handed to a Visualizer.
type Agent string

const (
	ExplorerAgent Agent = "explorer"
	ShortestAgent Agent = "shortest"
)

// AgentTrack is the route one agent animates. Exactly one of Sequence or
// Segments is set; Segments is walked from Start.
type AgentTrack struct {
	Agent    Agent
	Start    grid.Coordinate
	Target   grid.Coordinate // cell the agent is heading for
	Sequence []grid.Coordinate
	Segments pathfinding.Segments
	Delay    time.Duration // time per step
}

// Cells returns the cells of the track in animation order.
func (t AgentTrack) Cells() []grid.Coordinate {
	if t.Sequence != nil {
		return t.Sequence
	}
	return t.Segments.Ordered(t.Start)
}

// Visualizer animates agent tracks over a maze and returns when the display is closed.
type Visualizer interface {
	Animate(ctx context.Context, m Maze, tracks []AgentTrack) error
}
