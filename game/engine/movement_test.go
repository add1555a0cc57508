package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func destinations(moves []Action) []Position {
	out := make([]Position, 0, len(moves))
	for _, m := range moves {
		out = append(out, *m.To)
	}
	return out
}

func TestValidMoves(t *testing.T) {
	tests := []struct {
		name  string
		walls []Wall
		mover Player
		other Player
		want  []Position
	}{
		{
			name:  "player one start",
			mover: Player{X: 4, Y: 0, GoalY: 8},
			other: Player{X: 4, Y: 8, GoalY: 0},
			want:  []Position{{4, 1}, {3, 0}, {5, 0}},
		},
		{
			name:  "player two start",
			mover: Player{X: 4, Y: 8, GoalY: 0},
			other: Player{X: 4, Y: 0, GoalY: 8},
			want:  []Position{{4, 7}, {3, 8}, {5, 8}},
		},
		{
			name:  "corner",
			mover: Player{X: 0, Y: 0, GoalY: 8},
			other: Player{X: 4, Y: 8, GoalY: 0},
			want:  []Position{{0, 1}, {1, 0}},
		},
		{
			name:  "straight jump",
			mover: Player{X: 4, Y: 4, GoalY: 8},
			other: Player{X: 4, Y: 5, GoalY: 0},
			want:  []Position{{4, 3}, {4, 6}, {3, 4}, {5, 4}},
		},
		{
			name:  "sideways jump",
			mover: Player{X: 4, Y: 4, GoalY: 8},
			other: Player{X: 5, Y: 4, GoalY: 0},
			want:  []Position{{4, 3}, {4, 5}, {3, 4}, {6, 4}},
		},
		{
			name:  "diagonal jump behind wall",
			walls: []Wall{{Horizontal, 4, 5}},
			mover: Player{X: 4, Y: 4, GoalY: 8},
			other: Player{X: 4, Y: 5, GoalY: 0},
			want:  []Position{{4, 3}, {3, 5}, {5, 5}, {3, 4}, {5, 4}},
		},
		{
			name:  "diagonal jump at board edge",
			mover: Player{X: 4, Y: 7, GoalY: 8},
			other: Player{X: 4, Y: 8, GoalY: 0},
			want:  []Position{{4, 6}, {3, 8}, {5, 8}, {3, 7}, {5, 7}},
		},
		{
			name:  "one diagonal blocked",
			walls: []Wall{{Horizontal, 4, 5}, {Vertical, 4, 4}},
			mover: Player{X: 4, Y: 4, GoalY: 8},
			other: Player{X: 4, Y: 5, GoalY: 0},
			want:  []Position{{4, 3}, {3, 5}, {3, 4}},
		},
		{
			name:  "walled in on three sides",
			walls: []Wall{{Vertical, 3, 3}, {Vertical, 4, 3}, {Horizontal, 4, 4}},
			mover: Player{X: 4, Y: 4, GoalY: 8},
			other: Player{X: 0, Y: 8, GoalY: 0},
			want:  []Position{{4, 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(9, 9)
			for _, w := range tt.walls {
				g.PlaceWall(w)
			}

			moves := ValidMoves(g, tt.mover, tt.other)
			assert.Equal(t, tt.want, destinations(moves))
			for _, m := range moves {
				assert.Equal(t, MoveAction, m.Type)
				assert.False(t, tt.other.At(m.To.X, m.To.Y), "move onto opponent")
			}
		})
	}
}

func TestIsValidMove(t *testing.T) {
	g := NewGrid(9, 9)
	mover := Player{X: 4, Y: 4, GoalY: 8}
	other := Player{X: 4, Y: 5, GoalY: 0}

	assert.True(t, IsValidMove(g, mover, other, 4, 6))
	assert.False(t, IsValidMove(g, mover, other, 4, 5))
	assert.False(t, IsValidMove(g, mover, other, 5, 5))
	assert.False(t, IsValidMove(g, mover, other, 4, 4))
	assert.False(t, IsValidMove(g, mover, other, 8, 8))
}

func TestValidActions(t *testing.T) {
	g := NewGrid(9, 9)
	one, two := startingPlayers()

	actions := ValidActions(g, one, two)
	assert.Len(t, actions, 3+128)
	assert.Equal(t, MoveAction, actions[0].Type)
	assert.Equal(t, WallAction, actions[len(actions)-1].Type)

	one.Walls = 0
	assert.Len(t, ValidActions(g, one, two), 3)
}
