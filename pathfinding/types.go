package pathfinding

import (
	"errors"

	"github.com/beka-birhanu/vinom-pathfinder/grid"
)

// Sentinel errors for traversal outcomes.
var (
	// ErrNoPath is returned by ShortestPath when end is unreachable from start.
	// It is a normal outcome, not a failure.
	ErrNoPath = errors.New("pathfinding: no path found")

	// ErrBrokenTrace is returned when path reconstruction meets a non-start cell
	// without a recorded parent. BFS never produces that state on its own.
	ErrBrokenTrace = errors.New("pathfinding: path reconstruction failed")

	// ErrGridNil is returned if a nil grid is passed.
	ErrGridNil = errors.New("pathfinding: grid is nil")
)

// TargetStatus tells how the exploration target related to the explored component.
type TargetStatus int

const (
	// TargetUnreachable means the target is a grid cell outside start's component.
	TargetUnreachable TargetStatus = iota
	// TargetFound means the target was popped during exploration.
	TargetFound
	// TargetInvalid means the target is not a cell of the grid at all.
	TargetInvalid
)

func (s TargetStatus) String() string {
	switch s {
	case TargetFound:
		return "found"
	case TargetUnreachable:
		return "unreachable"
	case TargetInvalid:
		return "invalid"
	}
	return "unknown"
}

// Exploration is the result of ExploreAll.
type Exploration struct {
	Order        []grid.Coordinate // cells in the order they were popped
	TargetFound  bool              // set once, the first time the target is popped
	TargetStatus TargetStatus
}

// Segments maps each parent cell on a path to the child that follows it.
type Segments map[grid.Coordinate]grid.Coordinate

// Len returns the number of edges on the path.
func (s Segments) Len() int {
	return len(s)
}

// Ordered walks the segments from start and returns the cells start..end.
// It stops early if a cell repeats, so a malformed map cannot loop forever.
func (s Segments) Ordered(start grid.Coordinate) []grid.Coordinate {
	if len(s) == 0 {
		return nil
	}
	path := make([]grid.Coordinate, 0, len(s)+1)
	seen := make(map[grid.Coordinate]struct{}, len(s)+1)
	cur := start
	for {
		if _, dup := seen[cur]; dup {
			break
		}
		seen[cur] = struct{}{}
		path = append(path, cur)
		next, ok := s[cur]
		if !ok {
			break
		}
		cur = next
	}
	return path
}

// Logger receives traversal diagnostics.
type Logger interface {
	Info(string)
	Warning(string)
	Error(string)
}

type nopLogger struct{}

func (nopLogger) Info(string)    {}
func (nopLogger) Warning(string) {}
func (nopLogger) Error(string)   {}

// Option configures a traversal via functional arguments.
type Option func(*Options)

// Options holds traversal hooks and diagnostics sinks.
type Options struct {
	// Logger receives progress, unreachable-target and inconsistency reports.
	Logger Logger

	// OnVisit is called for every cell as it is emitted (popped or dequeued).
	OnVisit func(grid.Coordinate)
}

// DefaultOptions returns Options with a silent logger and a no-op hook.
func DefaultOptions() Options {
	return Options{
		Logger:  nopLogger{},
		OnVisit: func(grid.Coordinate) {},
	}
}

// WithLogger routes traversal diagnostics to l.
func WithLogger(l Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithOnVisit registers a callback run for each emitted cell.
func WithOnVisit(fn func(grid.Coordinate)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
