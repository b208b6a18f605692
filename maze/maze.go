/*
Package maze provides tools for creating rectangular mazes.

It defines the `WilsonMaze` structure, composed of `Cell` objects with one wall per side.
Mazes are generated with Wilson's loop-erased random walk, grown from the designated end
cell, and can optionally be braided with extra openings to create loops.

The maze answers passage queries for grid.Coordinate values (1-indexed) and renders
itself as ASCII.
*/
package maze

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/beka-birhanu/vinom-pathfinder/grid"
)

const (
	// MaxDimension bounds both the row and the column count.
	MaxDimension = 100

	maxLoopPercent = 100
)

var (
	ErrInvalidDimensions = errors.New("maze: invalid maze dimensions")
	ErrInvalidOptions    = errors.New("maze: invalid build options")
	ErrBoundaryWall      = errors.New("maze: cannot open a boundary wall")
)

// Options tunes maze generation.
type Options struct {
	Seed        int64 // Seed for the random source; equal seeds give equal mazes.
	LoopPercent int   // 0 gives a perfect maze; up to 100 opens extra walls to form loops.
}

// WilsonMaze represents a rectangular maze consisting of cells with walls.
type WilsonMaze struct {
	rows int       // number of rows
	cols int       // number of columns
	seed int64     // seed the maze was generated with
	grid [][]*Cell // 2D grid of cells, grid[row-1][col-1]
	rng  *rand.Rand
}

// New builds a rows x cols maze grown from end and returns it.
func New(rows, cols int, end grid.Coordinate, opts Options) (*WilsonMaze, error) {
	m, err := NewClosed(rows, cols)
	if err != nil {
		return nil, err
	}
	if !m.InBound(end) {
		return nil, fmt.Errorf("%w: end %s", grid.ErrCellNotFound, end)
	}
	if opts.LoopPercent < 0 || opts.LoopPercent > maxLoopPercent {
		return nil, fmt.Errorf("%w: loop percent %d not in 0..%d", ErrInvalidOptions, opts.LoopPercent, maxLoopPercent)
	}

	m.seed = opts.Seed
	m.rng = rand.New(rand.NewSource(opts.Seed))
	m.generateMaze(end)
	m.addLoops(opts.LoopPercent)
	return m, nil
}

// NewClosed returns a rows x cols maze with every wall up.
func NewClosed(rows, cols int) (*WilsonMaze, error) {
	if min(rows, cols) <= 0 || max(rows, cols) > MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}

	cells := make([][]*Cell, rows)
	for i := range cells {
		cells[i] = make([]*Cell, cols)
		for j := range cells[i] {
			cells[i][j] = closedCell()
		}
	}

	return &WilsonMaze{rows: rows, cols: cols, grid: cells}, nil
}

// Rows returns the number of rows.
func (m *WilsonMaze) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *WilsonMaze) Cols() int { return m.cols }

// Seed returns the seed the maze was generated with.
func (m *WilsonMaze) Seed() int64 { return m.seed }

// InBound reports whether c is a cell of the maze.
func (m *WilsonMaze) InBound(c grid.Coordinate) bool {
	return c.Within(m.rows, m.cols)
}

// HasPassage implements grid.Grid.
func (m *WilsonMaze) HasPassage(c grid.Coordinate, d grid.Direction) (bool, error) {
	if !m.InBound(c) {
		return false, grid.CellNotFound(c, m.rows, m.cols)
	}
	return !m.cell(c).HasWall(d), nil
}

// OpenPassage removes the wall between c and its neighbor toward d on both sides.
func (m *WilsonMaze) OpenPassage(c grid.Coordinate, d grid.Direction) error {
	return m.setWall(c, d, false)
}

// ClosePassage raises the wall between c and its neighbor toward d on both sides.
func (m *WilsonMaze) ClosePassage(c grid.Coordinate, d grid.Direction) error {
	return m.setWall(c, d, true)
}

func (m *WilsonMaze) setWall(c grid.Coordinate, d grid.Direction, wall bool) error {
	if !m.InBound(c) {
		return grid.CellNotFound(c, m.rows, m.cols)
	}
	n := grid.Neighbor(c, d)
	if !m.InBound(n) {
		if !wall {
			return fmt.Errorf("%w: %s toward %s", ErrBoundaryWall, c, d.Name())
		}
		return nil
	}
	m.cell(c).SetWall(d, wall)
	m.cell(n).SetWall(d.Opposite(), wall)
	return nil
}

func (m *WilsonMaze) cell(c grid.Coordinate) *Cell {
	return m.grid[c.Row-1][c.Col-1]
}

// move is a step from one cell to an adjacent one.
type move struct {
	from grid.Coordinate
	to   grid.Coordinate
	dir  grid.Direction
}

// randomCellPosition generates a random position within the maze.
func (m *WilsonMaze) randomCellPosition() grid.Coordinate {
	return grid.At(m.rng.Intn(m.rows)+1, m.rng.Intn(m.cols)+1)
}

// randomUnvisitedCellPosition selects a random position that has not been visited.
func (m *WilsonMaze) randomUnvisitedCellPosition(visited map[grid.Coordinate]struct{}) grid.Coordinate {
	for {
		pos := m.randomCellPosition()
		if _, included := visited[pos]; !included {
			return pos
		}
	}
}

// neighbors finds all in-bound moves from a given cell position.
func (m *WilsonMaze) neighbors(pos grid.Coordinate) []move {
	var result []move
	for _, d := range grid.Directions {
		n := grid.Neighbor(pos, d)
		if m.InBound(n) {
			result = append(result, move{from: pos, to: n, dir: d})
		}
	}
	return result
}

// randomWalk walks from a random unvisited cell until it hits the tree.
// Only the last exit from each cell is kept, which erases loops.
func (m *WilsonMaze) randomWalk(visited map[grid.Coordinate]struct{}) map[grid.Coordinate]move {
	cell := m.randomUnvisitedCellPosition(visited)
	visits := make(map[grid.Coordinate]move)

	for {
		neighbors := m.neighbors(cell)
		next := neighbors[m.rng.Intn(len(neighbors))]
		visits[cell] = next
		if _, included := visited[next.to]; included {
			break
		}
		cell = next.to
	}

	return visits
}

// generateMaze grows a spanning tree from root.
func (m *WilsonMaze) generateMaze(root grid.Coordinate) {
	visited := map[grid.Coordinate]struct{}{root: {}}

	for len(visited) < m.rows*m.cols {
		for cell, mv := range m.randomWalk(visited) {
			_ = m.OpenPassage(mv.from, mv.dir)
			visited[cell] = struct{}{}
		}
	}
}

// addLoops opens percent/100 * cells/10 extra interior walls.
func (m *WilsonMaze) addLoops(percent int) {
	extra := percent * m.rows * m.cols / (maxLoopPercent * 10)
	closed := m.closedInteriorWalls()
	for extra > 0 && len(closed) > 0 {
		i := m.rng.Intn(len(closed))
		_ = m.OpenPassage(closed[i].from, closed[i].dir)
		closed[i] = closed[len(closed)-1]
		closed = closed[:len(closed)-1]
		extra--
	}
}

// closedInteriorWalls lists each closed wall between two cells once (east and south sides).
func (m *WilsonMaze) closedInteriorWalls() []move {
	var walls []move
	for r := 1; r <= m.rows; r++ {
		for c := 1; c <= m.cols; c++ {
			pos := grid.At(r, c)
			for _, d := range []grid.Direction{grid.East, grid.South} {
				n := grid.Neighbor(pos, d)
				if m.InBound(n) && m.cell(pos).HasWall(d) {
					walls = append(walls, move{from: pos, to: n, dir: d})
				}
			}
		}
	}
	return walls
}

// String provides a textual representation of the maze.
func (m *WilsonMaze) String() string {
	return Render(m, m.rows, m.cols, func(grid.Coordinate) string { return "   " })
}

// Render draws any grid as ASCII. label returns the three-character body of each cell.
func Render(g grid.Grid, rows, cols int, label func(grid.Coordinate) string) string {
	var b strings.Builder

	// Top boundary
	b.WriteString("+" + strings.Repeat("---+", cols) + "\n")

	for row := 1; row <= rows; row++ {
		// Cell rows
		b.WriteString("|")
		for col := 1; col <= cols; col++ {
			pos := grid.At(row, col)
			b.WriteString(label(pos))
			if open, _ := g.HasPassage(pos, grid.East); open {
				b.WriteString(" ")
			} else {
				b.WriteString("|")
			}
		}
		b.WriteString("\n")

		// Wall rows
		b.WriteString("+")
		for col := 1; col <= cols; col++ {
			if open, _ := g.HasPassage(grid.At(row, col), grid.South); open {
				b.WriteString("   +")
			} else {
				b.WriteString("---+")
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}
