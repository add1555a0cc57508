package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrPolicyContractViolation wraps every rejected action
	ErrPolicyContractViolation = errors.New("policy contract violation")
	ErrIllegalMove             = errors.New("illegal move")
	ErrIllegalWall             = errors.New("illegal wall placement")
	ErrNoWallsRemaining        = errors.New("no walls remaining")
	ErrInvalidAction           = errors.New("invalid action")
	ErrGameOver                = errors.New("game is over")
	ErrTurnLimit               = errors.New("turn limit reached")
	ErrNoPath                  = errors.New("no path to goal")
)

// Policy chooses one action per turn for the player it controls. The grid
// handed to Decide is a private copy and must not be retained.
type Policy interface {
	Decide(grid *Grid, self, opponent Player) (Action, error)
}

// PolicyFunc adapts an ordinary function to the Policy interface
type PolicyFunc func(grid *Grid, self, opponent Player) (Action, error)

// Decide calls f(grid, self, opponent)
func (f PolicyFunc) Decide(grid *Grid, self, opponent Player) (Action, error) {
	return f(grid, self, opponent)
}

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	SetState(state *GameState) error
	Reset() *GameState
	IsGameOver() bool
	GetResult() *GameResult
	ToMove() Seat

	// Turn operations
	Apply(action Action) error
	Step(policy Policy) (Action, error)
	Play(one, two Policy) (*GameResult, error)

	// Queries for the side to move
	LegalMoves() []Action
	LegalWalls() []Wall
	LegalActions() []Action
	PathToGoal(seat Seat) []Position

	// Configuration
	GetConfig() *GameConfig
	SetConfig(config *GameConfig) error
}

// GameEngine implements the Engine interface
type GameEngine struct {
	state  *GameState
	config *GameConfig
}

// NewEngine creates a new game engine with the provided configuration
func NewEngine(config *GameConfig) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	engine := &GameEngine{
		config: config,
		state:  InitGameStateFromConfig(config),
	}

	return engine, nil
}

// NewEngineWithDefaults creates a new game engine on the standard board
func NewEngineWithDefaults() *GameEngine {
	config := DefaultGameConfig()
	return &GameEngine{
		config: config,
		state:  InitGameStateFromConfig(config),
	}
}

// Run plays one game between two policies on the standard board.
// Policy one moves first.
func Run(one, two Policy) (*GameResult, error) {
	return NewEngineWithDefaults().Play(one, two)
}

// GetState returns the current game state
func (e *GameEngine) GetState() *GameState {
	return e.state
}

// SetState sets the game state (used for persistence loading)
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if state.Grid == nil {
		return fmt.Errorf("state grid cannot be nil")
	}
	if len(state.Grid.Cells) != state.Grid.Size() {
		return fmt.Errorf("state grid has %d cells, expected %d", len(state.Grid.Cells), state.Grid.Size())
	}
	if state.ToMove != PlayerOne && state.ToMove != PlayerTwo {
		return fmt.Errorf("state has unknown side to move %d", state.ToMove)
	}
	for _, p := range state.Players {
		if !state.Grid.InBounds(p.X, p.Y) {
			return fmt.Errorf("player at (%d,%d) is off the board", p.X, p.Y)
		}
	}
	e.state = state
	return nil
}

// Reset resets the game to initial state
func (e *GameEngine) Reset() *GameState {
	e.state = InitGameStateFromConfig(e.config)
	return e.state
}

// IsGameOver returns whether a player has reached their goal row
func (e *GameEngine) IsGameOver() bool {
	return e.state.GameOver
}

// GetResult returns the final result, or nil while the game is running
func (e *GameEngine) GetResult() *GameResult {
	return e.state.Result
}

// ToMove returns the seat whose turn it is
func (e *GameEngine) ToMove() Seat {
	return e.state.ToMove
}

// players returns the side to move and its opponent
func (e *GameEngine) players() (Player, Player) {
	seat := e.state.ToMove
	return e.state.Players[seat], e.state.Players[seat.Other()]
}

// LegalMoves returns the legal moves for the side to move
func (e *GameEngine) LegalMoves() []Action {
	if e.state.GameOver {
		return nil
	}
	self, opponent := e.players()
	return ValidMoves(e.state.Grid, self, opponent)
}

// LegalWalls returns the legal wall placements for the side to move. It is
// empty once that player has used up their walls.
func (e *GameEngine) LegalWalls() []Wall {
	self, _ := e.players()
	if e.state.GameOver || self.Walls <= 0 {
		return nil
	}
	return ValidWalls(e.state.Grid, e.state.Players[PlayerOne], e.state.Players[PlayerTwo])
}

// LegalActions returns all legal moves followed by all legal walls
func (e *GameEngine) LegalActions() []Action {
	if e.state.GameOver {
		return nil
	}
	self, opponent := e.players()
	return ValidActions(e.state.Grid, self, opponent)
}

// PathToGoal returns the shortest path for the player in seat
func (e *GameEngine) PathToGoal(seat Seat) []Position {
	return PathToGoal(e.state.Grid, e.state.Players[seat], e.state.Players[seat.Other()])
}

// Apply validates and applies an action for the side to move. Rejected
// actions leave the state untouched and return an error wrapping
// ErrPolicyContractViolation.
func (e *GameEngine) Apply(action Action) error {
	if e.state.GameOver {
		return fmt.Errorf("%w: %w", ErrPolicyContractViolation, ErrGameOver)
	}

	seat := e.state.ToMove
	self, opponent := e.players()
	grid := e.state.Grid

	switch action.Type {
	case MoveAction:
		if action.To == nil {
			return fmt.Errorf("%w: %w: move has no destination", ErrPolicyContractViolation, ErrInvalidAction)
		}
		if !IsValidMove(grid, self, opponent, action.To.X, action.To.Y) {
			return fmt.Errorf("%w: %w: %s cannot move from (%d,%d) to (%d,%d)",
				ErrPolicyContractViolation, ErrIllegalMove, seat, self.X, self.Y, action.To.X, action.To.Y)
		}
		self.X, self.Y = action.To.X, action.To.Y

	case WallAction:
		if action.Wall == nil {
			return fmt.Errorf("%w: %w: wall action has no wall", ErrPolicyContractViolation, ErrInvalidAction)
		}
		if self.Walls <= 0 {
			return fmt.Errorf("%w: %w: %s has no walls left", ErrPolicyContractViolation, ErrNoWallsRemaining, seat)
		}
		if !CanPlaceWall(grid, e.state.Players[PlayerOne], e.state.Players[PlayerTwo], *action.Wall) {
			return fmt.Errorf("%w: %w: %s", ErrPolicyContractViolation, ErrIllegalWall, action.Wall)
		}
		grid.PlaceWall(*action.Wall)
		self.Walls--

	default:
		return fmt.Errorf("%w: %w: unknown action type %q", ErrPolicyContractViolation, ErrInvalidAction, action.Type)
	}

	e.state.Players[seat] = self
	e.state.Turns++
	e.state.LastAction = copyAction(action)

	if self.HasWon() {
		e.state.GameOver = true
		e.state.Result = &GameResult{Turns: e.state.Turns, Winner: seat}
		e.state.Message = fmt.Sprintf("%s wins after %d turns", seat, e.state.Turns)
		return nil
	}

	e.state.ToMove = seat.Other()
	e.state.Message = fmt.Sprintf("%s played %s; %s to move", seat, action, e.state.ToMove)
	return nil
}

// Step asks policy for the side to move's action and applies it
func (e *GameEngine) Step(policy Policy) (Action, error) {
	if e.state.GameOver {
		return Action{}, fmt.Errorf("%w: %w", ErrPolicyContractViolation, ErrGameOver)
	}

	self, opponent := e.players()
	action, err := policy.Decide(e.state.Grid.Clone(), self, opponent)
	if err != nil {
		return Action{}, fmt.Errorf("%s policy failed: %w", e.state.ToMove, err)
	}

	if err := e.Apply(action); err != nil {
		return action, err
	}
	return action, nil
}

// Play alternates the two policies until a player wins. Policy one controls
// PlayerOne. When the config sets MaxTurns the game stops with ErrTurnLimit
// once that many turns have been played without a winner.
func (e *GameEngine) Play(one, two Policy) (*GameResult, error) {
	policies := [2]Policy{one, two}

	for !e.state.GameOver {
		if e.config != nil && e.config.MaxTurns > 0 && e.state.Turns >= e.config.MaxTurns {
			return nil, fmt.Errorf("%w: %d turns", ErrTurnLimit, e.state.Turns)
		}
		if _, err := e.Step(policies[e.state.ToMove]); err != nil {
			return nil, err
		}
	}

	result := *e.state.Result
	return &result, nil
}

// GetConfig returns the current game configuration
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// SetConfig sets a new game configuration and resets the game
func (e *GameEngine) SetConfig(config *GameConfig) error {
	if err := ValidateGameConfig(config); err != nil {
		return err
	}

	e.config = config
	e.state = InitGameStateFromConfig(config)
	return nil
}

func copyAction(action Action) *Action {
	out := Action{Type: action.Type}
	if action.To != nil {
		to := *action.To
		out.To = &to
	}
	if action.Wall != nil {
		wall := *action.Wall
		out.Wall = &wall
	}
	return &out
}
