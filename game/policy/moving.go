package policy

import (
	"fmt"
	"math"

	"github.com/wricardo/mcp-training/quoridor/game/engine"
)

// MoveOnly walks its own shortest path every turn
type MoveOnly struct{}

// Decide steps to the next cell on the shortest path
func (MoveOnly) Decide(g *engine.Grid, self, opponent engine.Player) (engine.Action, error) {
	return followPath(g, self, opponent)
}

// followPath returns the move onto the second cell of the shortest path.
// The path skips the opponent's cell, so when the next cell is not a legal
// destination the legal move leaving the shortest remaining path is used.
func followPath(g *engine.Grid, self, opponent engine.Player) (engine.Action, error) {
	path := engine.PathToGoal(g, self, opponent)
	if len(path) < 2 {
		return engine.Action{}, fmt.Errorf("%w from (%d,%d)", engine.ErrNoPath, self.X, self.Y)
	}

	next := path[1]
	if engine.IsValidMove(g, self, opponent, next.X, next.Y) {
		return engine.MoveTo(next.X, next.Y), nil
	}

	var best *engine.Action
	shortest := math.MaxInt
	for _, move := range engine.ValidMoves(g, self, opponent) {
		moved := self
		moved.X, moved.Y = move.To.X, move.To.Y
		if moved.HasWon() {
			return move, nil
		}
		if length := engine.PathLength(g, moved, opponent); length > 0 && length < shortest {
			shortest = length
			m := move
			best = &m
		}
	}
	if best == nil {
		return engine.Action{}, fmt.Errorf("%w: no legal move from (%d,%d)", engine.ErrNoPath, self.X, self.Y)
	}
	return *best, nil
}
