package i

import (
	"github.com/beka-birhanu/vinom-pathfinder/grid"
)

// Maze is a generated maze, shared read-only by the traversals and the visualizers.
type Maze interface {
	grid.Grid
	Rows() int
	Cols() int
	InBound(grid.Coordinate) bool
	String() string
}

// BuildOptions carries the structural parameters of maze construction.
type BuildOptions struct {
	Seed        int64
	LoopPercent int
}

// MazeFactory builds a rows x cols maze designed around the given end cell.
type MazeFactory func(rows, cols int, end grid.Coordinate, opts BuildOptions) (Maze, error)
