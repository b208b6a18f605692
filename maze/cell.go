package maze

import "github.com/beka-birhanu/vinom-pathfinder/grid"

// Cell represents a single cell in a maze grid.
type Cell struct {
	NorthWall bool // NorthWall indicates whether there is a wall on the north side of the cell.
	SouthWall bool // SouthWall indicates whether there is a wall on the south side of the cell.
	EastWall  bool // EastWall indicates whether there is a wall on the east side of the cell.
	WestWall  bool // WestWall indicates whether there is a wall on the west side of the cell.
}

// closedCell returns a cell with all four walls up.
func closedCell() *Cell {
	return &Cell{NorthWall: true, SouthWall: true, EastWall: true, WestWall: true}
}

// HasWall reports whether the side facing d is walled.
func (c *Cell) HasWall(d grid.Direction) bool {
	switch d {
	case grid.North:
		return c.NorthWall
	case grid.South:
		return c.SouthWall
	case grid.East:
		return c.EastWall
	case grid.West:
		return c.WestWall
	default:
		return true
	}
}

// SetWall raises or removes the wall on the side facing d.
func (c *Cell) SetWall(d grid.Direction, wall bool) {
	switch d {
	case grid.North:
		c.NorthWall = wall
	case grid.South:
		c.SouthWall = wall
	case grid.East:
		c.EastWall = wall
	case grid.West:
		c.WestWall = wall
	}
}
