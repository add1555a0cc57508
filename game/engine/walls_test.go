package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidWallsInitialBoard(t *testing.T) {
	g := NewGrid(9, 9)
	one, two := startingPlayers()

	walls := ValidWalls(g, one, two)
	assert.Len(t, walls, 128)

	seen := make(map[Wall]bool)
	for _, w := range walls {
		assert.False(t, seen[w], "duplicate wall %s", w)
		seen[w] = true
	}
}

func TestValidWallsAfterPlacement(t *testing.T) {
	for _, wall := range []Wall{{Vertical, 1, 1}, {Horizontal, 1, 1}} {
		t.Run(wall.String(), func(t *testing.T) {
			g := NewGrid(9, 9)
			one, two := startingPlayers()
			require.True(t, CanPlaceWall(g, one, two, wall))

			g.PlaceWall(wall)
			assert.Len(t, ValidWalls(g, one, two), 124)
		})
	}
}

func TestCanPlaceWall(t *testing.T) {
	one, two := startingPlayers()

	tests := []struct {
		name     string
		existing []Wall
		wall     Wall
		want     bool
	}{
		{"open board", nil, Wall{Vertical, 2, 2}, true},
		{"same slot", []Wall{{Vertical, 2, 2}}, Wall{Vertical, 2, 2}, false},
		{"crossing", []Wall{{Vertical, 2, 2}}, Wall{Horizontal, 2, 2}, false},
		{"crossing horizontal first", []Wall{{Horizontal, 2, 2}}, Wall{Vertical, 2, 2}, false},
		{"overlap above", []Wall{{Vertical, 2, 2}}, Wall{Vertical, 2, 1}, false},
		{"overlap below", []Wall{{Vertical, 2, 2}}, Wall{Vertical, 2, 3}, false},
		{"overlap left", []Wall{{Horizontal, 2, 2}}, Wall{Horizontal, 1, 2}, false},
		{"overlap right", []Wall{{Horizontal, 2, 2}}, Wall{Horizontal, 3, 2}, false},
		{"stacked below", []Wall{{Vertical, 2, 2}}, Wall{Vertical, 2, 4}, true},
		{"far away", []Wall{{Vertical, 2, 2}}, Wall{Horizontal, 6, 6}, true},
		{"far corner", nil, Wall{Horizontal, 7, 7}, true},
		{"board edge", nil, Wall{Vertical, 9, 9}, false},
		{"last column", nil, Wall{Vertical, 8, 0}, false},
		{"last row", nil, Wall{Horizontal, 0, 8}, false},
		{"negative", nil, Wall{Horizontal, -1, 0}, false},
		{"bad orientation", nil, Wall{"diagonal", 1, 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(9, 9)
			for _, w := range tt.existing {
				g.PlaceWall(w)
			}
			before := g.Clone()

			assert.Equal(t, tt.want, CanPlaceWall(g, one, two, tt.wall))
			assert.Equal(t, before.Cells, g.Cells, "validator must not touch the grid")
		})
	}
}

func TestCanPlaceWallRejectsDisconnect(t *testing.T) {
	g := NewGrid(4, 4)
	one := Player{X: 2, Y: 0, GoalY: 3, Walls: 2}
	two := Player{X: 2, Y: 3, GoalY: 0, Walls: 2}

	first := Wall{Horizontal, 0, 1}
	require.True(t, CanPlaceWall(g, one, two, first))
	g.PlaceWall(first)

	closing := Wall{Horizontal, 2, 1}
	assert.False(t, CanPlaceWall(g, one, two, closing))
	assert.NotContains(t, ValidWalls(g, one, two), closing)
	assert.True(t, HasPath(g, one, two))
	assert.True(t, HasPath(g, two, one))
}

func TestWallPlacementKeepsPlayersConnected(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	g := NewGrid(9, 9)
	one, two := startingPlayers()

	placed := 0
	for i := 0; i < 30; i++ {
		walls := ValidWalls(g, one, two)
		if len(walls) == 0 {
			break
		}
		wall := walls[rng.Intn(len(walls))]
		require.True(t, CanPlaceWall(g, one, two, wall))
		g.PlaceWall(wall)
		placed++

		assert.True(t, HasPath(g, one, two), "player one cut off after %s", wall)
		assert.True(t, HasPath(g, two, one), "player two cut off after %s", wall)
	}
	assert.Equal(t, placed, CountWalls(g))
}

func TestCanPlaceWallDeterministic(t *testing.T) {
	g := NewGrid(9, 9)
	g.PlaceWall(Wall{Horizontal, 3, 3})
	one, two := startingPlayers()

	for _, wall := range []Wall{{Vertical, 3, 3}, {Vertical, 0, 0}, {Horizontal, 4, 3}} {
		first := CanPlaceWall(g, one, two, wall)
		for i := 0; i < 3; i++ {
			assert.Equal(t, first, CanPlaceWall(g, one, two, wall))
		}
	}
}

func TestBestMaxWalls(t *testing.T) {
	g := NewGrid(9, 9)
	one, two := startingPlayers()

	best := BestMaxWalls(g, one, two)
	require.NotEmpty(t, best)

	scratch := g.Clone()
	longest := 0
	for _, w := range ValidWalls(g, one, two) {
		_, theirs := wallHeuristic(scratch, one, two, w)
		if theirs > longest {
			longest = theirs
		}
	}

	for _, w := range best {
		_, theirs := wallHeuristic(scratch, one, two, w)
		assert.Equal(t, longest, theirs, "wall %s", w)
	}
	assert.Greater(t, longest, PathLength(g, two, one))
}

func TestBestMinmaxWalls(t *testing.T) {
	g := NewGrid(9, 9)
	one, two := startingPlayers()
	one.Y = 3

	best := BestMinmaxWalls(g, one, two)
	require.NotEmpty(t, best)

	scratch := g.Clone()
	bestDiff := -1 << 31
	count := 0
	for _, w := range ValidWalls(g, one, two) {
		own, theirs := wallHeuristic(scratch, one, two, w)
		switch diff := theirs - own; {
		case diff > bestDiff:
			bestDiff, count = diff, 1
		case diff == bestDiff:
			count++
		}
	}

	assert.Len(t, best, count)
	for _, w := range best {
		own, theirs := wallHeuristic(scratch, one, two, w)
		assert.Equal(t, bestDiff, theirs-own, "wall %s", w)
	}
	assert.Equal(t, g.Cells, scratch.Cells)
}
