package pathfinding

import (
	"fmt"

	"github.com/beka-birhanu/vinom-pathfinder/grid"
)

// finder encapsulates mutable BFS state.
type finder struct {
	grid    grid.Grid
	opts    Options
	queue   []grid.Coordinate
	visited map[grid.Coordinate]struct{}
	parent  map[grid.Coordinate]grid.Coordinate // child -> parent
}

// ShortestPath finds a minimum-edge path from start to end breadth-first and
// returns it as parent->child Segments.
//
// Returns ErrNoPath with empty Segments if end is unreachable, and
// ErrBrokenTrace with empty Segments if reconstruction finds a gap.
// start == end yields empty Segments and a nil error.
func ShortestPath(g grid.Grid, start, end grid.Coordinate, opts ...Option) (Segments, error) {
	if g == nil {
		return Segments{}, ErrGridNil
	}
	if err := checkCell(g, start); err != nil {
		return Segments{}, fmt.Errorf("pathfinding: start %s: %w", start, err)
	}

	f := &finder{
		grid:    g,
		opts:    buildOptions(opts),
		queue:   []grid.Coordinate{start},
		visited: map[grid.Coordinate]struct{}{start: {}},
		parent:  make(map[grid.Coordinate]grid.Coordinate),
	}

	f.opts.Logger.Info(fmt.Sprintf("finding shortest path from %s to %s", start, end))
	found, err := f.search(end)
	if err != nil {
		return Segments{}, err
	}
	if !found {
		f.opts.Logger.Info(fmt.Sprintf("no path found from %s to %s", start, end))
		return Segments{}, ErrNoPath
	}

	segments, err := reconstruct(f.parent, start, end)
	if err != nil {
		f.opts.Logger.Error(err.Error())
		return Segments{}, err
	}
	f.opts.Logger.Info(fmt.Sprintf("shortest path has %d segments", segments.Len()))
	return segments, nil
}

// search dequeues until end is reached or the queue drains.
func (f *finder) search(end grid.Coordinate) (bool, error) {
	for len(f.queue) > 0 {
		cell := f.dequeue()
		f.opts.OnVisit(cell)
		if cell == end {
			return true, nil
		}
		if err := f.enqueueNeighbors(cell); err != nil {
			return false, err
		}
	}
	return false, nil
}

// dequeue pops the oldest cell.
func (f *finder) dequeue() grid.Coordinate {
	cell := f.queue[0]
	f.queue = f.queue[1:]
	return cell
}

// enqueueNeighbors records the parent of, and enqueues, every first-seen neighbor.
func (f *finder) enqueueNeighbors(cell grid.Coordinate) error {
	for _, d := range grid.Directions {
		open, err := f.grid.HasPassage(cell, d)
		if err != nil {
			return fmt.Errorf("pathfinding: passage %s from %s: %w", d, cell, err)
		}
		if !open {
			continue
		}
		next := grid.Neighbor(cell, d)
		if _, seen := f.visited[next]; seen {
			continue
		}
		f.visited[next] = struct{}{}
		f.parent[next] = cell
		f.queue = append(f.queue, next)
	}
	return nil
}

// reconstruct walks end back to start through parent and emits parent->child links.
func reconstruct(parent map[grid.Coordinate]grid.Coordinate, start, end grid.Coordinate) (Segments, error) {
	segments := make(Segments)
	for cur := end; cur != start; {
		p, ok := parent[cur]
		if !ok {
			return Segments{}, fmt.Errorf("%w: no parent recorded for %s", ErrBrokenTrace, cur)
		}
		if _, loop := segments[p]; loop {
			return Segments{}, fmt.Errorf("%w: cycle at %s", ErrBrokenTrace, p)
		}
		segments[p] = cur
		cur = p
	}
	return segments, nil
}
