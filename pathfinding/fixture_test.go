package pathfinding

import (
	"math/rand"

	"github.com/beka-birhanu/vinom-pathfinder/grid"
)

// testGrid is a rows x cols grid whose passages are set explicitly.
type testGrid struct {
	rows, cols int
	open       map[grid.Coordinate]map[grid.Direction]bool
}

func newTestGrid(rows, cols int) *testGrid {
	return &testGrid{rows: rows, cols: cols, open: make(map[grid.Coordinate]map[grid.Direction]bool)}
}

func (g *testGrid) HasPassage(c grid.Coordinate, d grid.Direction) (bool, error) {
	if !c.Within(g.rows, g.cols) {
		return false, grid.CellNotFound(c, g.rows, g.cols)
	}
	return g.open[c][d], nil
}

// link opens the passage between c and its neighbor toward d on both sides.
func (g *testGrid) link(c grid.Coordinate, d grid.Direction) *testGrid {
	n := grid.Neighbor(c, d)
	g.set(c, d, true)
	g.set(n, d.Opposite(), true)
	return g
}

func (g *testGrid) unlink(c grid.Coordinate, d grid.Direction) *testGrid {
	n := grid.Neighbor(c, d)
	g.set(c, d, false)
	g.set(n, d.Opposite(), false)
	return g
}

func (g *testGrid) set(c grid.Coordinate, d grid.Direction, v bool) {
	if g.open[c] == nil {
		g.open[c] = make(map[grid.Direction]bool)
	}
	g.open[c][d] = v
}

// openGrid returns a grid with every interior passage open.
func openGrid(rows, cols int) *testGrid {
	g := newTestGrid(rows, cols)
	for r := 1; r <= rows; r++ {
		for c := 1; c <= cols; c++ {
			if c < cols {
				g.link(grid.At(r, c), grid.East)
			}
			if r < rows {
				g.link(grid.At(r, c), grid.South)
			}
		}
	}
	return g
}

// snakeGrid returns a row-major snake: a single corridor through every cell.
func snakeGrid(rows, cols int) *testGrid {
	g := newTestGrid(rows, cols)
	for r := 1; r <= rows; r++ {
		for c := 1; c < cols; c++ {
			g.link(grid.At(r, c), grid.East)
		}
		if r < rows {
			turn := cols
			if r%2 == 0 {
				turn = 1
			}
			g.link(grid.At(r, turn), grid.South)
		}
	}
	return g
}

// randomGrid opens each interior passage with probability p.
func randomGrid(rng *rand.Rand, rows, cols int, p float64) *testGrid {
	g := newTestGrid(rows, cols)
	for r := 1; r <= rows; r++ {
		for c := 1; c <= cols; c++ {
			if c < cols && rng.Float64() < p {
				g.link(grid.At(r, c), grid.East)
			}
			if r < rows && rng.Float64() < p {
				g.link(grid.At(r, c), grid.South)
			}
		}
	}
	return g
}

func (g *testGrid) cells() []grid.Coordinate {
	var out []grid.Coordinate
	for r := 1; r <= g.rows; r++ {
		for c := 1; c <= g.cols; c++ {
			out = append(out, grid.At(r, c))
		}
	}
	return out
}

// bruteDistances relaxes every passage until nothing changes.
// It shares no code with the traversals under test.
func bruteDistances(g *testGrid, start grid.Coordinate) map[grid.Coordinate]int {
	dist := map[grid.Coordinate]int{start: 0}
	for changed := true; changed; {
		changed = false
		for _, c := range g.cells() {
			dc, ok := dist[c]
			if !ok {
				continue
			}
			for d, open := range g.open[c] {
				if !open {
					continue
				}
				n := grid.Neighbor(c, d)
				if dn, seen := dist[n]; !seen || dc+1 < dn {
					dist[n] = dc + 1
					changed = true
				}
			}
		}
	}
	return dist
}
