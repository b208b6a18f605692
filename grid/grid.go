/*
Package grid models a rectangular maze as an implicit graph.

Cells are addressed by 1-indexed (row, column) coordinates. Edges are passages
between a cell and its neighbor in one of the four cardinal directions; whether
a passage exists is answered by a Grid implementation, while the neighbor
coordinate itself is pure arithmetic.
*/
package grid

import (
	"errors"
	"fmt"
)

// ErrCellNotFound is returned when a queried coordinate is not part of the grid.
var ErrCellNotFound = errors.New("grid: cell not found")

// Coordinate is a (row, column) position in the grid, starting at (1, 1).
type Coordinate struct {
	Row int `json:"row" bson:"row"`
	Col int `json:"col" bson:"col"`
}

// At is a shorthand for building a Coordinate.
func At(row, col int) Coordinate {
	return Coordinate{Row: row, Col: col}
}

// String renders the coordinate as "(row, col)".
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Col)
}

// Within reports whether c lies in [1,rows]x[1,cols].
func (c Coordinate) Within(rows, cols int) bool {
	return c.Row >= 1 && c.Row <= rows && c.Col >= 1 && c.Col <= cols
}

// Grid answers passage queries for a maze.
type Grid interface {
	// HasPassage reports whether a traversable connection leaves cell toward d.
	// It returns an error wrapping ErrCellNotFound if cell is not in the grid.
	HasPassage(cell Coordinate, d Direction) (bool, error)
}

// Neighbor returns the coordinate adjacent to cell in direction d.
// No bounds validation is done; callers gate moves with Grid.HasPassage.
func Neighbor(cell Coordinate, d Direction) Coordinate {
	dRow, dCol := Delta(d)
	return Coordinate{Row: cell.Row + dRow, Col: cell.Col + dCol}
}

// CellNotFound builds the lookup error for a coordinate outside a rows x cols grid.
func CellNotFound(cell Coordinate, rows, cols int) error {
	return fmt.Errorf("%w: %s outside 1..%d x 1..%d", ErrCellNotFound, cell, rows, cols)
}
