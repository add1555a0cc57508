package policy

import (
	"errors"
	"math/rand"

	"github.com/wricardo/mcp-training/quoridor/game/engine"
)

var errNoLegalActions = errors.New("no legal actions")

// Random chooses uniformly among every legal move and wall
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a Random policy drawing from rng
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

// Decide picks one legal action at random
func (r *Random) Decide(g *engine.Grid, self, opponent engine.Player) (engine.Action, error) {
	return pick(r.rng, engine.ValidActions(g, self, opponent))
}

// RandomMoving chooses uniformly among legal moves and never places walls
type RandomMoving struct {
	rng *rand.Rand
}

// NewRandomMoving creates a RandomMoving policy drawing from rng
func NewRandomMoving(rng *rand.Rand) *RandomMoving {
	return &RandomMoving{rng: rng}
}

// Decide picks one legal move at random
func (r *RandomMoving) Decide(g *engine.Grid, self, opponent engine.Player) (engine.Action, error) {
	return pick(r.rng, engine.ValidMoves(g, self, opponent))
}

func pick(rng *rand.Rand, actions []engine.Action) (engine.Action, error) {
	if len(actions) == 0 {
		return engine.Action{}, errNoLegalActions
	}
	return actions[rng.Intn(len(actions))], nil
}
