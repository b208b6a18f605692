package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/beka-birhanu/vinom-pathfinder/config"
	dmn "github.com/beka-birhanu/vinom-pathfinder/domain"
	"github.com/beka-birhanu/vinom-pathfinder/pathfinding"
	"github.com/beka-birhanu/vinom-pathfinder/service/i"
	"github.com/google/uuid"
)

const (
	defaultExploreDelay = 30 * time.Millisecond
	defaultPathDelay    = 75 * time.Millisecond
)

var (
	ErrNoMazeFactory = errors.New("service: maze factory is required")
	ErrNoRepo        = errors.New("service: no run repository configured")
)

// Solver builds a maze, explores it, finds the shortest path and hands both
// results to a visualizer.
type Solver struct {
	mazeFactory  i.MazeFactory
	visualizer   i.Visualizer
	repo         i.RunRepo
	cache        i.RunCache
	logger       i.Logger
	exploreDelay time.Duration
	pathDelay    time.Duration
	newSeed      func() int64
	now          func() time.Time
}

// Config holds the dependencies of a Solver. Only MazeFactory is required.
type Config struct {
	MazeFactory  i.MazeFactory
	Visualizer   i.Visualizer // nil runs headless
	Repo         i.RunRepo    // nil disables persistence
	Cache        i.RunCache   // nil disables caching
	Logger       i.Logger
	ExploreDelay time.Duration
	PathDelay    time.Duration
}

// NewSolver creates a Solver from c.
func NewSolver(c *Config) (*Solver, error) {
	if c == nil || c.MazeFactory == nil {
		return nil, ErrNoMazeFactory
	}

	s := &Solver{
		mazeFactory:  c.MazeFactory,
		visualizer:   c.Visualizer,
		repo:         c.Repo,
		cache:        c.Cache,
		logger:       c.Logger,
		exploreDelay: c.ExploreDelay,
		pathDelay:    c.PathDelay,
		newSeed:      func() int64 { return rand.Int63n(math.MaxInt64-1) + 1 },
		now:          time.Now,
	}
	if s.logger == nil {
		s.logger = nopLogger{}
	}
	if s.exploreDelay <= 0 {
		s.exploreDelay = defaultExploreDelay
	}
	if s.pathDelay <= 0 {
		s.pathDelay = defaultPathDelay
	}
	return s, nil
}

// solution is everything one solve produces.
type solution struct {
	run      *dmn.Run
	maze     i.Maze
	segments pathfinding.Segments
}

// Solve builds the maze for cfg and runs both traversals.
//
// An unreachable end is not an error: the run simply has no path.
// A broken path reconstruction returns the run (without a path) together with
// an error wrapping pathfinding.ErrBrokenTrace.
func (s *Solver) Solve(ctx context.Context, cfg config.MazeConfig) (*dmn.Run, i.Maze, error) {
	sol, err := s.solve(ctx, cfg)
	if sol == nil {
		return nil, nil, err
	}
	return sol.run, sol.maze, err
}

func (s *Solver) solve(ctx context.Context, cfg config.MazeConfig) (*solution, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = s.newSeed()
	}

	s.logger.Info(fmt.Sprintf("creating %dx%d maze (seed %d, loop percent %d)", cfg.Rows, cfg.Columns, seed, cfg.LoopPercent))
	m, err := s.mazeFactory(cfg.Rows, cfg.Columns, cfg.End, i.BuildOptions{Seed: seed, LoopPercent: cfg.LoopPercent})
	if err != nil {
		s.logger.Error(fmt.Sprintf("creating maze: %s", err))
		return nil, fmt.Errorf("creating maze: %w", err)
	}

	exploration, err := pathfinding.ExploreAll(m, cfg.Start, cfg.End, pathfinding.WithLogger(s.logger))
	if err != nil {
		s.logger.Error(fmt.Sprintf("exploring maze: %s", err))
		return nil, fmt.Errorf("exploring maze: %w", err)
	}
	s.logger.Info(fmt.Sprintf("exploration sequence length: %d", len(exploration.Order)))

	sol := &solution{
		maze: m,
		run: &dmn.Run{
			ID:           uuid.New(),
			Rows:         cfg.Rows,
			Columns:      cfg.Columns,
			Start:        cfg.Start,
			End:          cfg.End,
			Seed:         seed,
			LoopPercent:  cfg.LoopPercent,
			Exploration:  exploration.Order,
			TargetStatus: exploration.TargetStatus.String(),
			Maze:         m.String(),
			CreatedAt:    s.now().UTC(),
		},
	}

	segments, err := pathfinding.ShortestPath(m, cfg.Start, cfg.End, pathfinding.WithLogger(s.logger))
	switch {
	case errors.Is(err, pathfinding.ErrNoPath):
		s.logger.Info(fmt.Sprintf("no path from %s to %s", cfg.Start, cfg.End))
	case errors.Is(err, pathfinding.ErrBrokenTrace):
		return sol, fmt.Errorf("finding shortest path: %w", err)
	case err != nil:
		s.logger.Error(fmt.Sprintf("finding shortest path: %s", err))
		return nil, fmt.Errorf("finding shortest path: %w", err)
	default:
		sol.segments = segments
		sol.run.Path = segments.Ordered(cfg.Start)
		sol.run.Segments = segments.Len()
		s.logger.Info(fmt.Sprintf("shortest path segments: %d", segments.Len()))
	}

	return sol, nil
}

// Run solves cfg and animates the results. The shortest-path animation is
// skipped when there is no path. A broken trace still animates the exploration
// and is returned afterwards.
func (s *Solver) Run(ctx context.Context, cfg config.MazeConfig) error {
	sol, solveErr := s.solve(ctx, cfg)
	if sol == nil {
		return solveErr
	}

	if s.visualizer == nil {
		return solveErr
	}

	tracks := []i.AgentTrack{{
		Agent:    i.ExplorerAgent,
		Start:    cfg.Start,
		Target:   cfg.End,
		Sequence: sol.run.Exploration,
		Delay:    s.exploreDelay,
	}}
	if sol.run.HasPath() {
		tracks = append(tracks, i.AgentTrack{
			Agent:    i.ShortestAgent,
			Start:    cfg.Start,
			Target:   cfg.End,
			Segments: sol.segments,
			Delay:    s.pathDelay,
		})
	} else {
		s.logger.Info("no shortest path to visualize")
	}

	s.logger.Info("launching maze visualization")
	if err := s.visualizer.Animate(ctx, sol.maze, tracks); err != nil {
		return errors.Join(solveErr, fmt.Errorf("visualizing maze: %w", err))
	}
	s.logger.Info("visualization closed")
	return solveErr
}

// SolveCached returns the run for cfg from the cache when possible. On a miss
// it solves under the cache lock, persists the run and caches it.
// A config without a seed always gets a fresh one and therefore a fresh run.
func (s *Solver) SolveCached(ctx context.Context, cfg config.MazeConfig) (*dmn.Run, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = s.newSeed()
	}
	key := CacheKey(cfg)

	if run, ok := s.fromCache(ctx, key); ok {
		return run, nil
	}
	if s.cache != nil {
		unlock, err := s.cache.Lock(ctx, key)
		if err != nil {
			s.logger.Warning(fmt.Sprintf("locking %s: %s", key, err))
		} else {
			defer unlock()
			// Another holder may have solved it while we waited.
			if run, ok := s.fromCache(ctx, key); ok {
				return run, nil
			}
		}
	}

	run, _, err := s.Solve(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if s.repo != nil {
		if err := s.repo.Save(ctx, run); err != nil {
			s.logger.Error(fmt.Sprintf("saving run %s: %s", run.ID, err))
			return nil, fmt.Errorf("saving run: %w", err)
		}
	}
	if s.cache != nil {
		if err := s.cache.Store(ctx, key, run); err != nil {
			s.logger.Warning(fmt.Sprintf("caching run %s: %s", run.ID, err))
		}
	}
	return run, nil
}

// RunByID returns a persisted run.
func (s *Solver) RunByID(ctx context.Context, id uuid.UUID) (*dmn.Run, error) {
	if s.repo == nil {
		return nil, ErrNoRepo
	}
	return s.repo.ByID(ctx, id)
}

func (s *Solver) fromCache(ctx context.Context, key string) (*dmn.Run, bool) {
	if s.cache == nil {
		return nil, false
	}
	run, err := s.cache.Fetch(ctx, key)
	if err != nil {
		if !errors.Is(err, i.ErrCacheMiss) {
			s.logger.Warning(fmt.Sprintf("reading cache %s: %s", key, err))
		}
		return nil, false
	}
	s.logger.Info(fmt.Sprintf("cache hit for %s", key))
	return run, true
}

// CacheKey identifies the run a configuration deterministically produces.
func CacheKey(cfg config.MazeConfig) string {
	return fmt.Sprintf("%dx%d:%d,%d-%d,%d:s%d:l%d",
		cfg.Rows, cfg.Columns,
		cfg.Start.Row, cfg.Start.Col,
		cfg.End.Row, cfg.End.Col,
		cfg.Seed, cfg.LoopPercent)
}

type nopLogger struct{}

func (nopLogger) Info(string)    {}
func (nopLogger) Warning(string) {}
func (nopLogger) Error(string)   {}
