package service

import (
	"time"

	"github.com/wricardo/mcp-training/quoridor/game/engine"
	"github.com/wricardo/mcp-training/quoridor/game/results"
)

// CreateSessionRequest selects the board and who plays each seat
type CreateSessionRequest struct {
	ConfigID  string `json:"config_id,omitempty"`
	PlayerOne string `json:"player_one,omitempty"`
	PlayerTwo string `json:"player_two,omitempty"`
	Seed      int64  `json:"seed,omitempty"`
}

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	Controllers    [2]string          `json:"controllers"`
	Seed           int64              `json:"seed"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	PathLengths    [2]int             `json:"path_lengths"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// ActionResult contains the outcome of a human action or an AI advance
type ActionResult struct {
	Success        bool              `json:"success"`
	GameState      *engine.GameState `json:"game_state"`
	Message        string            `json:"message"`
	Events         []GameEvent       `json:"events"`
	Applied        []AppliedAction   `json:"applied"`
	PathLengths    [2]int            `json:"path_lengths"`
	LegalMoveCount int               `json:"legal_move_count"`
	WaitingFor     string            `json:"waiting_for,omitempty"`
	GameOver       bool              `json:"game_over"`
	Winner         string            `json:"winner,omitempty"`
	Truncated      bool              `json:"truncated,omitempty"`
}

// AppliedAction is one action taken during a call, in turn order
type AppliedAction struct {
	Turn       int           `json:"turn"`
	Seat       engine.Seat   `json:"seat"`
	Controller string        `json:"controller"`
	Action     engine.Action `json:"action"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string      `json:"type"` // "move", "wall", "game_over", "reset"
	Message   string      `json:"message"`
	Timestamp time.Time   `json:"timestamp"`
	Seat      engine.Seat `json:"seat"`
}

// LegalActionsInfo lists what the side to move may do
type LegalActionsInfo struct {
	ToMove         engine.Seat          `json:"to_move"`
	Controller     string               `json:"controller"`
	GameOver       bool                 `json:"game_over"`
	Moves          []engine.Position    `json:"moves"`
	Walls          []engine.Wall        `json:"walls"`
	WallsRemaining int                  `json:"walls_remaining"`
	Paths          [2][]engine.Position `json:"paths"`
}

// SimulationRequest runs a batch of computer-vs-computer games
type SimulationRequest struct {
	ConfigID  string `json:"config_id,omitempty"`
	PlayerOne string `json:"player_one"`
	PlayerTwo string `json:"player_two"`
	Games     int    `json:"games"`
	Seed      int64  `json:"seed,omitempty"`
}

// GameSummary is the outcome of one simulated game
type GameSummary struct {
	Game   int         `json:"game"`
	Winner engine.Seat `json:"winner"`
	Turns  int         `json:"turns"`
	Error  string      `json:"error,omitempty"`
}

// SimulationResult aggregates a batch of simulated games
type SimulationResult struct {
	ConfigID     string        `json:"config_id"`
	Players      [2]string     `json:"players"`
	Games        int           `json:"games"`
	Wins         [2]int        `json:"wins"`
	Failed       int           `json:"failed"`
	AverageTurns float64       `json:"average_turns"`
	Results      []GameSummary `json:"results"`
}

// LeaderboardInfo combines standings with the latest finished games
type LeaderboardInfo struct {
	Standings []results.Standing `json:"standings"`
	Recent    []results.Record   `json:"recent"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename       string `json:"filename"`
	ConfigID       string `json:"config_id"` // The identifier to use for session creation
	Name           string `json:"name"`      // Display name
	Description    string `json:"description"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	WallsPerPlayer int    `json:"walls_per_player"`
	MaxTurns       int    `json:"max_turns,omitempty"`
}
