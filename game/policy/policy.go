// Package policy provides the computer players that drive engine.Policy.
//
// Every policy picks one action per turn from the legal set computed by the
// engine. Random choices come from a *rand.Rand seeded at construction, so a
// game between two seeded policies is reproducible.
package policy

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/wricardo/mcp-training/quoridor/game/engine"
)

// Human marks a seat controlled through the API instead of a policy
const Human = "human"

var (
	ErrUnknownPolicy = errors.New("unknown policy")
	ErrHumanSeat     = errors.New("seat is controlled by a human")
)

// Info describes a registered policy
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type factory struct {
	description string
	build       func(rng *rand.Rand) engine.Policy
}

var registry = map[string]factory{
	"move_only": {
		description: "Follows its shortest path and never places walls",
		build:       func(*rand.Rand) engine.Policy { return MoveOnly{} },
	},
	"random": {
		description: "Picks uniformly among every legal move and wall",
		build:       func(rng *rand.Rand) engine.Policy { return NewRandom(rng) },
	},
	"random_moving": {
		description: "Picks uniformly among legal moves only",
		build:       func(rng *rand.Rand) engine.Policy { return NewRandomMoving(rng) },
	},
	"wall_first_max": {
		description: "Spends walls on the placements that lengthen the opponent's path most, then runs",
		build:       func(rng *rand.Rand) engine.Policy { return NewWallFirstMax(rng) },
	},
	"wall_first_minmax": {
		description: "Spends walls on the best path difference against the opponent, then runs",
		build:       func(rng *rand.Rand) engine.Policy { return NewWallFirstMinmax(rng) },
	},
}

// New builds the named policy with its own random source
func New(name string, seed int64) (engine.Policy, error) {
	if name == Human {
		return nil, ErrHumanSeat
	}
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
	return f.build(rand.New(rand.NewSource(seed))), nil
}

// Valid reports whether name is a registered policy or the human controller
func Valid(name string) bool {
	if name == Human {
		return true
	}
	_, ok := registry[name]
	return ok
}

// Names returns the registered policy names in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns every controller, including the human one
func List() []Info {
	infos := []Info{{Name: Human, Description: "Waits for moves submitted through the API"}}
	for _, name := range Names() {
		infos = append(infos, Info{Name: name, Description: registry[name].description})
	}
	return infos
}
