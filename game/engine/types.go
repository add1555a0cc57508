package engine

import "fmt"

// Orientation is the direction a wall runs along the board
type Orientation string

const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

// ActionType distinguishes the two kinds of turns
type ActionType string

const (
	MoveAction ActionType = "move"
	WallAction ActionType = "wall"
)

// Seat identifies one of the two players
type Seat int

const (
	PlayerOne Seat = iota
	PlayerTwo
)

const (
	// Board and rules constants
	DefaultBoardSize      = 9
	DefaultWallsPerPlayer = 10
	MinBoardSize          = 3
	MaxBoardSize          = 25
	MaxAdvanceSteps       = 500
	MaxSimulationGames    = 200
)

// Other returns the opposing seat
func (s Seat) Other() Seat {
	if s == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}

// String returns the seat name used in logs and API responses
func (s Seat) String() string {
	switch s {
	case PlayerOne:
		return "player_one"
	case PlayerTwo:
		return "player_two"
	default:
		return fmt.Sprintf("seat_%d", int(s))
	}
}

// Position represents x,y coordinates; x is the column and y the row
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Wall is a blocker spanning the 2x2 block whose upper-left cell is (X, Y)
type Wall struct {
	Orientation Orientation `json:"orientation"`
	X           int         `json:"x"`
	Y           int         `json:"y"`
}

// String renders the wall as "v(1,2)" or "h(1,2)"
func (w Wall) String() string {
	prefix := "h"
	if w.Orientation == Vertical {
		prefix = "v"
	}
	return fmt.Sprintf("%s(%d,%d)", prefix, w.X, w.Y)
}

// Player holds a player's position, goal row and remaining walls
type Player struct {
	X     int `json:"x"`
	Y     int `json:"y"`
	GoalY int `json:"goal_y"`
	Walls int `json:"walls"`
}

// Position returns the player's current cell
func (p Player) Position() Position {
	return Position{X: p.X, Y: p.Y}
}

// At reports whether the player occupies (x, y)
func (p Player) At(x, y int) bool {
	return p.X == x && p.Y == y
}

// HasWon reports whether the player stands on their goal row
func (p Player) HasWon() bool {
	return p.Y == p.GoalY
}

// Action is a single turn: a move to a cell or a wall placement
type Action struct {
	Type ActionType `json:"type"`
	To   *Position  `json:"to,omitempty"`
	Wall *Wall      `json:"wall,omitempty"`
}

// MoveTo builds a move action
func MoveTo(x, y int) Action {
	return Action{Type: MoveAction, To: &Position{X: x, Y: y}}
}

// PlaceWall builds a wall action
func PlaceWall(orientation Orientation, x, y int) Action {
	return Action{Type: WallAction, Wall: &Wall{Orientation: orientation, X: x, Y: y}}
}

// String renders the action for logs
func (a Action) String() string {
	switch {
	case a.Type == MoveAction && a.To != nil:
		return fmt.Sprintf("move(%d,%d)", a.To.X, a.To.Y)
	case a.Type == WallAction && a.Wall != nil:
		return "wall " + a.Wall.String()
	default:
		return "invalid"
	}
}

// GameResult is the terminal output of a game
type GameResult struct {
	Turns  int  `json:"turns"`
	Winner Seat `json:"winner"`
}

// GameState represents the complete game state
type GameState struct {
	Grid       *Grid       `json:"grid"`
	Players    [2]Player   `json:"players"`
	ToMove     Seat        `json:"to_move"`
	Turns      int         `json:"turns"`
	GameOver   bool        `json:"game_over"`
	Result     *GameResult `json:"result,omitempty"`
	LastAction *Action     `json:"last_action,omitempty"`
	Message    string      `json:"message"`
	ConfigName string      `json:"config_name"`
}

// Player returns the player sitting in seat
func (gs *GameState) Player(seat Seat) Player {
	return gs.Players[seat]
}

// Clone returns a deep copy of the state
func (gs *GameState) Clone() *GameState {
	clone := *gs
	if gs.Grid != nil {
		clone.Grid = gs.Grid.Clone()
	}
	if gs.Result != nil {
		result := *gs.Result
		clone.Result = &result
	}
	if gs.LastAction != nil {
		clone.LastAction = copyAction(*gs.LastAction)
	}
	return &clone
}
