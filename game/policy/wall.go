package policy

import (
	"math/rand"

	"github.com/wricardo/mcp-training/quoridor/game/engine"
)

type wallSelector func(g *engine.Grid, placer, opponent engine.Player) []engine.Wall

// WallFirst places walls while it has any, choosing at random among the
// placements its selector rates best, and follows its shortest path after
// that or when no placement qualifies.
type WallFirst struct {
	rng    *rand.Rand
	choose wallSelector
}

// NewWallFirstMax creates a WallFirst policy that maximizes the opponent's path length
func NewWallFirstMax(rng *rand.Rand) *WallFirst {
	return &WallFirst{rng: rng, choose: engine.BestMaxWalls}
}

// NewWallFirstMinmax creates a WallFirst policy that maximizes the opponent's
// path length minus its own
func NewWallFirstMinmax(rng *rand.Rand) *WallFirst {
	return &WallFirst{rng: rng, choose: engine.BestMinmaxWalls}
}

// Decide places the best-rated wall or steps along the shortest path
func (w *WallFirst) Decide(g *engine.Grid, self, opponent engine.Player) (engine.Action, error) {
	if self.Walls > 0 {
		if walls := w.choose(g, self, opponent); len(walls) > 0 {
			wall := walls[w.rng.Intn(len(walls))]
			return engine.PlaceWall(wall.Orientation, wall.X, wall.Y), nil
		}
	}
	return followPath(g, self, opponent)
}
