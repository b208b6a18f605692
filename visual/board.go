/*
Package visual animates traversal results over a maze.

Two visualizers are provided: Terminal redraws an ANSI rendering of the maze for
every step, and Image writes an animated GIF or a PNG of the final state. Both
replay the agent tracks one after another, in the order they are given.
*/
package visual

import (
	"context"
	"time"

	"github.com/beka-birhanu/vinom-pathfinder/grid"
	"github.com/beka-birhanu/vinom-pathfinder/service/i"
)

// board accumulates the footprints the agents leave on the maze.
type board struct {
	start   grid.Coordinate
	target  grid.Coordinate
	marked  bool // start and target are known
	marks   map[grid.Coordinate]i.Agent
	head    grid.Coordinate
	hasHead bool
}

func newBoard(tracks []i.AgentTrack) *board {
	b := &board{marks: make(map[grid.Coordinate]i.Agent)}
	if len(tracks) > 0 {
		b.start = tracks[0].Start
		b.target = tracks[0].Target
		b.marked = true
	}
	return b
}

// step moves agent onto cell, leaving a footprint.
func (b *board) step(agent i.Agent, cell grid.Coordinate) {
	b.marks[cell] = agent
	b.head = cell
	b.hasHead = true
}

// park hides the moving head between tracks.
func (b *board) park() {
	b.hasHead = false
}

func (b *board) isStart(c grid.Coordinate) bool  { return b.marked && c == b.start }
func (b *board) isTarget(c grid.Coordinate) bool { return b.marked && c == b.target }
func (b *board) isHead(c grid.Coordinate) bool   { return b.hasHead && c == b.head }

// pause waits d or until ctx is done.
func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
