package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wricardo/mcp-training/quoridor/game/engine"
	"github.com/wricardo/mcp-training/quoridor/game/policy"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrConfigNotFound  = errors.New("configuration not found")
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrInvalidRequest  = errors.New("invalid request")
	ErrNotHumanTurn    = errors.New("side to move is not controlled by a human")
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Act(ctx context.Context, sessionID string, action engine.Action) (*ActionResult, error)
	Advance(ctx context.Context, sessionID string, maxSteps int) (*ActionResult, error)
	Reset(ctx context.Context, sessionID string) (*engine.GameState, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)
	LegalActions(ctx context.Context, sessionID string) (*LegalActionsInfo, error)
	RenderBoard(ctx context.Context, sessionID string) (string, error)

	// Simulations and results
	Simulate(ctx context.Context, req SimulationRequest) (*SimulationResult, error)
	Leaderboard(ctx context.Context, limit int) (*LeaderboardInfo, error)
	ListPolicies(ctx context.Context) ([]policy.Info, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.GameConfig, opts SessionOptions) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ConfigManager handles game configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.GameConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.GameConfig
	SaveConfig(name string, config *engine.GameConfig) error
}

// SessionOptions carries the per-session settings chosen at creation
type SessionOptions struct {
	ConfigID    string
	Controllers [2]string
	Seed        int64
}

// Session represents an active game session
type Session struct {
	ID          string
	Engine      *engine.GameEngine
	Config      *engine.GameConfig
	ConfigID    string
	Controllers [2]string
	Policies    [2]engine.Policy
	Seed        int64
	// Recorded is set once the finished game has been written to the results store
	Recorded       bool
	CreatedAt      time.Time
	LastAccessedAt time.Time
}

// IsHuman reports whether seat waits for actions submitted through the API
func (s *Session) IsHuman(seat engine.Seat) bool {
	return s.Controllers[seat] == policy.Human
}

// AttachPolicies builds the computer players for every non-human seat.
// Seat two draws from seed+1 so mirror matches do not play identically.
func (s *Session) AttachPolicies() error {
	for i, name := range s.Controllers {
		if name == policy.Human {
			s.Policies[i] = nil
			continue
		}
		p, err := policy.New(name, s.Seed+int64(i))
		if err != nil {
			return fmt.Errorf("seat %s: %w", engine.Seat(i), err)
		}
		s.Policies[i] = p
	}
	return nil
}

// NormalizeControllers fills empty seats with defaults and validates names.
// Player one defaults to a human and player two to move_only.
func NormalizeControllers(one, two string) ([2]string, error) {
	controllers := [2]string{one, two}
	if controllers[0] == "" {
		controllers[0] = policy.Human
	}
	if controllers[1] == "" {
		controllers[1] = "move_only"
	}
	for i, name := range controllers {
		if !policy.Valid(name) {
			return controllers, fmt.Errorf("%w: %s: %w: %q", ErrInvalidRequest, engine.Seat(i), policy.ErrUnknownPolicy, name)
		}
	}
	return controllers, nil
}
