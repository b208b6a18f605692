package pathfinding

import (
	"math/rand"
	"testing"

	"github.com/beka-birhanu/vinom-pathfinder/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortestPath(t *testing.T) {
	t.Run("Open 3x3 needs four edges", func(t *testing.T) {
		segs, err := ShortestPath(openGrid(3, 3), grid.At(1, 1), grid.At(3, 3))
		require.NoError(t, err)

		assert.Equal(t, 4, segs.Len())
		path := segs.Ordered(grid.At(1, 1))
		require.Len(t, path, 5)
		assert.Equal(t, grid.At(1, 1), path[0])
		assert.Equal(t, grid.At(3, 3), path[4])
	})

	t.Run("Canonical order picks east before south", func(t *testing.T) {
		segs, err := ShortestPath(openGrid(3, 3), grid.At(1, 1), grid.At(3, 3))
		require.NoError(t, err)

		// (3,3) is first discovered from (2,3), which came from (1,3).
		want := Segments{
			grid.At(1, 1): grid.At(1, 2),
			grid.At(1, 2): grid.At(1, 3),
			grid.At(1, 3): grid.At(2, 3),
			grid.At(2, 3): grid.At(3, 3),
		}
		assert.Equal(t, want, segs)
	})

	t.Run("Snake corridor is the only path", func(t *testing.T) {
		segs, err := ShortestPath(snakeGrid(3, 3), grid.At(1, 1), grid.At(3, 3))
		require.NoError(t, err)
		assert.Equal(t, 8, segs.Len())
		assert.Len(t, segs.Ordered(grid.At(1, 1)), 9)
	})

	t.Run("Blocked 2x2 has no path", func(t *testing.T) {
		g := newTestGrid(2, 2).
			link(grid.At(1, 1), grid.East).
			link(grid.At(1, 1), grid.South)
		log := &recordingLogger{}

		segs, err := ShortestPath(g, grid.At(1, 1), grid.At(2, 2), WithLogger(log))
		assert.ErrorIs(t, err, ErrNoPath)
		assert.NotNil(t, segs)
		assert.Empty(t, segs)
		assert.Empty(t, log.errors)
	})

	t.Run("Removing a passage from an open grid cuts the cell off", func(t *testing.T) {
		g := openGrid(2, 2).
			unlink(grid.At(1, 2), grid.South).
			unlink(grid.At(2, 1), grid.East)

		segs, err := ShortestPath(g, grid.At(1, 1), grid.At(2, 2))
		assert.ErrorIs(t, err, ErrNoPath)
		assert.Empty(t, segs)
	})

	t.Run("Start equals end", func(t *testing.T) {
		segs, err := ShortestPath(openGrid(2, 2), grid.At(2, 2), grid.At(2, 2))
		require.NoError(t, err)
		assert.Empty(t, segs)
		assert.Nil(t, segs.Ordered(grid.At(2, 2)))
	})

	t.Run("End outside the grid is simply unreachable", func(t *testing.T) {
		_, err := ShortestPath(openGrid(2, 2), grid.At(1, 1), grid.At(5, 5))
		assert.ErrorIs(t, err, ErrNoPath)
	})

	t.Run("Start outside the grid", func(t *testing.T) {
		_, err := ShortestPath(openGrid(2, 2), grid.At(3, 1), grid.At(1, 1))
		assert.ErrorIs(t, err, grid.ErrCellNotFound)
		assert.NotErrorIs(t, err, ErrNoPath)
	})

	t.Run("Nil grid", func(t *testing.T) {
		_, err := ShortestPath(nil, grid.At(1, 1), grid.At(1, 1))
		assert.ErrorIs(t, err, ErrGridNil)
	})
}

func TestReconstruct(t *testing.T) {
	start, end := grid.At(1, 1), grid.At(1, 3)

	t.Run("Emits parent to child links", func(t *testing.T) {
		parent := map[grid.Coordinate]grid.Coordinate{
			grid.At(1, 2): start,
			end:           grid.At(1, 2),
		}
		segs, err := reconstruct(parent, start, end)
		require.NoError(t, err)
		assert.Equal(t, Segments{start: grid.At(1, 2), grid.At(1, 2): end}, segs)
	})

	t.Run("Missing parent is a broken trace, not a missing path", func(t *testing.T) {
		parent := map[grid.Coordinate]grid.Coordinate{end: grid.At(1, 2)}
		segs, err := reconstruct(parent, start, end)
		assert.ErrorIs(t, err, ErrBrokenTrace)
		assert.NotErrorIs(t, err, ErrNoPath)
		assert.Empty(t, segs)
	})

	t.Run("Parent cycle is a broken trace", func(t *testing.T) {
		parent := map[grid.Coordinate]grid.Coordinate{
			end:           grid.At(1, 2),
			grid.At(1, 2): end,
		}
		_, err := reconstruct(parent, start, end)
		assert.ErrorIs(t, err, ErrBrokenTrace)
	})
}

func TestShortestPathProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for i := 0; i < 60; i++ {
		rows, cols := 1+rng.Intn(6), 1+rng.Intn(6)
		g := randomGrid(rng, rows, cols, 0.6)
		start := grid.At(1+rng.Intn(rows), 1+rng.Intn(cols))
		end := grid.At(1+rng.Intn(rows), 1+rng.Intn(cols))
		dist := bruteDistances(g, start)

		segs, err := ShortestPath(g, start, end)
		want, reachable := dist[end]
		if !reachable {
			assert.ErrorIs(t, err, ErrNoPath)
			assert.Empty(t, segs)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, want, segs.Len(), "start %s end %s", start, end)

		// Every link must be an open passage between adjacent cells.
		for from, to := range segs {
			ok := false
			for _, d := range grid.Directions {
				if grid.Neighbor(from, d) == to {
					ok, _ = g.HasPassage(from, d)
				}
			}
			assert.True(t, ok, "segment %s -> %s is not a passage", from, to)
		}
		if want > 0 {
			path := segs.Ordered(start)
			assert.Equal(t, end, path[len(path)-1])
		}

		again, err := ShortestPath(g, start, end)
		require.NoError(t, err)
		assert.Equal(t, segs, again)
	}
}
