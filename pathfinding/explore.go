package pathfinding

import (
	"fmt"

	"github.com/beka-birhanu/vinom-pathfinder/grid"
)

// explorer encapsulates mutable DFS state.
type explorer struct {
	grid    grid.Grid
	opts    Options
	target  grid.Coordinate
	stack   []grid.Coordinate
	visited map[grid.Coordinate]struct{}
	res     *Exploration
}

// ExploreAll walks every cell reachable from start depth-first and returns the
// pop order. Reaching target is recorded once and does not stop the walk.
// An unreachable or invalid target is reported through the result, not as an error.
// The error is non-nil only if start is not in the grid or the grid fails a lookup.
func ExploreAll(g grid.Grid, start, target grid.Coordinate, opts ...Option) (*Exploration, error) {
	if g == nil {
		return nil, ErrGridNil
	}
	if err := checkCell(g, start); err != nil {
		return nil, fmt.Errorf("pathfinding: start %s: %w", start, err)
	}

	e := &explorer{
		grid:    g,
		opts:    buildOptions(opts),
		target:  target,
		stack:   []grid.Coordinate{start},
		visited: map[grid.Coordinate]struct{}{start: {}},
		res:     &Exploration{TargetStatus: TargetUnreachable},
	}

	e.opts.Logger.Info(fmt.Sprintf("starting full exploration from %s", start))
	if err := e.loop(); err != nil {
		return nil, err
	}
	e.report(start)

	return e.res, nil
}

// loop pops until the stack is empty.
func (e *explorer) loop() error {
	for len(e.stack) > 0 {
		cell := e.pop()
		e.visit(cell)
		if err := e.pushNeighbors(cell); err != nil {
			return err
		}
	}
	return nil
}

// pop removes and returns the most recently pushed cell.
func (e *explorer) pop() grid.Coordinate {
	last := len(e.stack) - 1
	cell := e.stack[last]
	e.stack = e.stack[:last]
	return cell
}

// visit records the cell and raises the target flag the first time.
func (e *explorer) visit(cell grid.Coordinate) {
	e.res.Order = append(e.res.Order, cell)
	e.opts.OnVisit(cell)
	if cell == e.target && !e.res.TargetFound {
		e.res.TargetFound = true
		e.res.TargetStatus = TargetFound
		e.opts.Logger.Info(fmt.Sprintf("target %s encountered, exploration continues", cell))
	}
}

// pushNeighbors pushes every unvisited cell behind an open passage.
func (e *explorer) pushNeighbors(cell grid.Coordinate) error {
	for _, d := range grid.Directions {
		open, err := e.grid.HasPassage(cell, d)
		if err != nil {
			return fmt.Errorf("pathfinding: passage %s from %s: %w", d, cell, err)
		}
		if !open {
			continue
		}
		next := grid.Neighbor(cell, d)
		if _, seen := e.visited[next]; seen {
			continue
		}
		e.visited[next] = struct{}{}
		e.stack = append(e.stack, next)
	}
	return nil
}

// report logs the summary and classifies a target that was never popped.
func (e *explorer) report(start grid.Coordinate) {
	e.opts.Logger.Info(fmt.Sprintf("exploration complete, visited %d cells", len(e.res.Order)))
	if e.res.TargetFound {
		return
	}
	if err := checkCell(e.grid, e.target); err != nil {
		e.res.TargetStatus = TargetInvalid
		e.opts.Logger.Warning(fmt.Sprintf("target %s is not a cell of this maze", e.target))
		return
	}
	e.opts.Logger.Info(fmt.Sprintf("target %s is not reachable from %s", e.target, start))
}

// checkCell reports whether the grid knows cell, using a passage lookup.
func checkCell(g grid.Grid, cell grid.Coordinate) error {
	_, err := g.HasPassage(cell, grid.East)
	return err
}
