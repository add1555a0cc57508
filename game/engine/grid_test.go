package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrid(t *testing.T) {
	g := NewGrid(9, 9)
	require.Len(t, g.Cells, 81)

	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			cell := g.CellAt(x, y)
			assert.Equal(t, x != 8, cell.Right, "right edge at (%d,%d)", x, y)
			assert.Equal(t, y != 8, cell.Down, "down edge at (%d,%d)", x, y)
		}
	}
}

func TestGridIndexRoundTrip(t *testing.T) {
	g := NewGrid(7, 5)
	for i := 0; i < g.Size(); i++ {
		x, y := g.Point(i)
		assert.Equal(t, i, g.Index(x, y))
	}
	x, y := g.Point(g.Index(6, 4))
	assert.Equal(t, 6, x)
	assert.Equal(t, 4, y)
}

func TestGridPlaceWall(t *testing.T) {
	tests := []struct {
		name    string
		wall    Wall
		cleared [][2]int
		right   bool
	}{
		{"vertical", Wall{Vertical, 2, 3}, [][2]int{{2, 3}, {2, 4}}, true},
		{"horizontal", Wall{Horizontal, 2, 3}, [][2]int{{2, 3}, {3, 3}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(9, 9)
			g.PlaceWall(tt.wall)

			closed := 0
			for y := 0; y < 9; y++ {
				for x := 0; x < 9; x++ {
					cell := g.CellAt(x, y)
					if x < 8 && !cell.Right {
						closed++
					}
					if y < 8 && !cell.Down {
						closed++
					}
				}
			}
			assert.Equal(t, 2, closed)

			for _, c := range tt.cleared {
				cell := g.CellAt(c[0], c[1])
				if tt.right {
					assert.False(t, cell.Right)
				} else {
					assert.False(t, cell.Down)
				}
			}
			assert.Equal(t, 1, CountWalls(g))
		})
	}
}

func TestGridCanStep(t *testing.T) {
	g := NewGrid(9, 9)

	assert.False(t, g.CanStep(0, 0, Up))
	assert.False(t, g.CanStep(0, 0, Left))
	assert.True(t, g.CanStep(0, 0, Down))
	assert.True(t, g.CanStep(0, 0, Right))
	assert.False(t, g.CanStep(8, 8, Down))
	assert.False(t, g.CanStep(8, 8, Right))

	// A vertical wall blocks both sides of the shared edge
	g.PlaceWall(Wall{Vertical, 3, 3})
	assert.False(t, g.CanStep(3, 3, Right))
	assert.False(t, g.CanStep(4, 3, Left))
	assert.False(t, g.CanStep(4, 4, Left))
	assert.True(t, g.CanStep(4, 5, Left))

	g.PlaceWall(Wall{Horizontal, 5, 5})
	assert.False(t, g.CanStep(5, 5, Down))
	assert.False(t, g.CanStep(6, 6, Up))
	assert.True(t, g.CanStep(7, 6, Up))
}

func TestGridCloneIsIndependent(t *testing.T) {
	g := NewGrid(9, 9)
	clone := g.Clone()
	clone.PlaceWall(Wall{Horizontal, 0, 0})

	assert.True(t, g.CellAt(0, 0).Down)
	assert.False(t, clone.CellAt(0, 0).Down)
}

func TestGridSetWallRevert(t *testing.T) {
	g := NewGrid(9, 9)
	before := g.Clone()

	wall := Wall{Vertical, 4, 4}
	g.setWall(wall, false)
	g.setWall(wall, true)

	assert.Equal(t, before.Cells, g.Cells)
}
