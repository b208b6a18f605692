package pathfinding

import (
	"math/rand"
	"testing"

	"github.com/beka-birhanu/vinom-pathfinder/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	infos, warnings, errors []string
}

func (l *recordingLogger) Info(m string)    { l.infos = append(l.infos, m) }
func (l *recordingLogger) Warning(m string) { l.warnings = append(l.warnings, m) }
func (l *recordingLogger) Error(m string)   { l.errors = append(l.errors, m) }

func TestExploreAll(t *testing.T) {
	t.Run("Open 3x3 visits every cell and flags the target", func(t *testing.T) {
		res, err := ExploreAll(openGrid(3, 3), grid.At(1, 1), grid.At(3, 3))
		require.NoError(t, err)

		assert.Len(t, res.Order, 9)
		assert.ElementsMatch(t, openGrid(3, 3).cells(), res.Order)
		assert.True(t, res.TargetFound)
		assert.Equal(t, TargetFound, res.TargetStatus)
		assert.Equal(t, grid.At(1, 1), res.Order[0])
	})

	t.Run("Snake is walked in corridor order", func(t *testing.T) {
		res, err := ExploreAll(snakeGrid(3, 3), grid.At(1, 1), grid.At(3, 3))
		require.NoError(t, err)

		want := []grid.Coordinate{
			grid.At(1, 1), grid.At(1, 2), grid.At(1, 3),
			grid.At(2, 3), grid.At(2, 2), grid.At(2, 1),
			grid.At(3, 1), grid.At(3, 2), grid.At(3, 3),
		}
		assert.Equal(t, want, res.Order)
		assert.True(t, res.TargetFound)
	})

	t.Run("LIFO order pops the last pushed neighbor first", func(t *testing.T) {
		// (1,1) pushes East (1,2) then South (2,1); South is popped first.
		res, err := ExploreAll(openGrid(2, 2), grid.At(1, 1), grid.At(2, 2))
		require.NoError(t, err)
		assert.Equal(t, []grid.Coordinate{grid.At(1, 1), grid.At(2, 1), grid.At(2, 2), grid.At(1, 2)}, res.Order)
	})

	t.Run("Blocked 2x2 excludes the unreachable cell", func(t *testing.T) {
		g := newTestGrid(2, 2).
			link(grid.At(1, 1), grid.East).
			link(grid.At(1, 1), grid.South)
		log := &recordingLogger{}

		res, err := ExploreAll(g, grid.At(1, 1), grid.At(2, 2), WithLogger(log))
		require.NoError(t, err)

		assert.NotContains(t, res.Order, grid.At(2, 2))
		assert.Len(t, res.Order, 3)
		assert.False(t, res.TargetFound)
		assert.Equal(t, TargetUnreachable, res.TargetStatus)
		assert.Empty(t, log.warnings)
		assert.Contains(t, log.infos[len(log.infos)-1], "not reachable")
	})

	t.Run("Invalid target is reported, not fatal", func(t *testing.T) {
		log := &recordingLogger{}
		res, err := ExploreAll(openGrid(2, 2), grid.At(1, 1), grid.At(7, 7), WithLogger(log))
		require.NoError(t, err)

		assert.Len(t, res.Order, 4)
		assert.Equal(t, TargetInvalid, res.TargetStatus)
		assert.Len(t, log.warnings, 1)
	})

	t.Run("Start outside the grid", func(t *testing.T) {
		_, err := ExploreAll(openGrid(2, 2), grid.At(0, 1), grid.At(2, 2))
		assert.ErrorIs(t, err, grid.ErrCellNotFound)
	})

	t.Run("Nil grid", func(t *testing.T) {
		_, err := ExploreAll(nil, grid.At(1, 1), grid.At(1, 1))
		assert.ErrorIs(t, err, ErrGridNil)
	})

	t.Run("Single cell", func(t *testing.T) {
		res, err := ExploreAll(newTestGrid(1, 1), grid.At(1, 1), grid.At(1, 1))
		require.NoError(t, err)
		assert.Equal(t, []grid.Coordinate{grid.At(1, 1)}, res.Order)
		assert.True(t, res.TargetFound)
	})

	t.Run("OnVisit sees every emitted cell", func(t *testing.T) {
		var seen []grid.Coordinate
		res, err := ExploreAll(openGrid(3, 2), grid.At(2, 1), grid.At(1, 1), WithOnVisit(func(c grid.Coordinate) {
			seen = append(seen, c)
		}))
		require.NoError(t, err)
		assert.Equal(t, res.Order, seen)
	})

	t.Run("Asymmetric passage into a missing cell fails the lookup", func(t *testing.T) {
		g := newTestGrid(1, 1)
		g.set(grid.At(1, 1), grid.East, true)
		_, err := ExploreAll(g, grid.At(1, 1), grid.At(1, 1))
		assert.ErrorIs(t, err, grid.ErrCellNotFound)
	})
}

func TestExploreAllProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 40; i++ {
		rows, cols := 1+rng.Intn(6), 1+rng.Intn(6)
		g := randomGrid(rng, rows, cols, 0.55)
		start := grid.At(1+rng.Intn(rows), 1+rng.Intn(cols))
		target := grid.At(1+rng.Intn(rows), 1+rng.Intn(cols))
		component := bruteDistances(g, start)

		res, err := ExploreAll(g, start, target)
		require.NoError(t, err)

		seen := make(map[grid.Coordinate]int)
		for _, c := range res.Order {
			seen[c]++
		}
		for c, n := range seen {
			assert.Equal(t, 1, n, "cell %s emitted more than once", c)
			_, inComponent := component[c]
			assert.True(t, inComponent, "cell %s is not reachable", c)
		}
		assert.Len(t, res.Order, len(component))

		_, reachable := component[target]
		assert.Equal(t, reachable, res.TargetFound)

		again, err := ExploreAll(g, start, target)
		require.NoError(t, err)
		assert.Equal(t, res, again)
	}
}
