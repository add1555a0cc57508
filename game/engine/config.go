package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// GameConfig represents a board configuration loaded from JSON
type GameConfig struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	WallsPerPlayer int    `json:"walls_per_player"`
	// MaxTurns bounds Play; 0 means the game runs until someone wins.
	MaxTurns int `json:"max_turns,omitempty"`
}

// DefaultGameConfig returns the standard 9x9 board with 10 walls each
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Name:           "standard",
		Description:    "Standard 9x9 board, 10 walls per player",
		Width:          DefaultBoardSize,
		Height:         DefaultBoardSize,
		WallsPerPlayer: DefaultWallsPerPlayer,
	}
}

// ValidateGameConfig validates a board configuration for correctness and playability
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is required")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}

	if config.Width < MinBoardSize || config.Width > MaxBoardSize {
		return fmt.Errorf("config validation: width must be between %d and %d, got %d", MinBoardSize, MaxBoardSize, config.Width)
	}
	if config.Height < MinBoardSize || config.Height > MaxBoardSize {
		return fmt.Errorf("config validation: height must be between %d and %d, got %d", MinBoardSize, MaxBoardSize, config.Height)
	}

	maxWalls := (config.Width - 1) * (config.Height - 1)
	if config.WallsPerPlayer < 0 || config.WallsPerPlayer > maxWalls {
		return fmt.Errorf("config validation: walls_per_player must be between 0 and %d, got %d", maxWalls, config.WallsPerPlayer)
	}

	if config.MaxTurns < 0 {
		return fmt.Errorf("config validation: max_turns cannot be negative, got %d", config.MaxTurns)
	}

	return nil
}

// LoadGameConfig loads a board configuration from a JSON file
func LoadGameConfig(filename string) (*GameConfig, error) {
	// Support CONFIG_DIR environment variable for alternative config directory
	configPath := filename
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		if strings.HasPrefix(filename, "configs/") {
			configPath = filepath.Join(configDir, strings.TrimPrefix(filename, "configs/"))
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filename, err)
	}

	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// NewPlayers creates both players centered on their home rows.
// Player one starts on the top row and races to the bottom.
func NewPlayers(config *GameConfig) [2]Player {
	center := config.Width / 2
	return [2]Player{
		{X: center, Y: 0, GoalY: config.Height - 1, Walls: config.WallsPerPlayer},
		{X: center, Y: config.Height - 1, GoalY: 0, Walls: config.WallsPerPlayer},
	}
}

// InitGameStateFromConfig creates a new game state using the provided configuration
func InitGameStateFromConfig(config *GameConfig) *GameState {
	if config == nil {
		config = DefaultGameConfig()
	}

	return &GameState{
		Grid:       NewGrid(config.Width, config.Height),
		Players:    NewPlayers(config),
		ToMove:     PlayerOne,
		Message:    fmt.Sprintf("New %dx%d game: %s to move", config.Width, config.Height, PlayerOne),
		ConfigName: config.Name,
	}
}
