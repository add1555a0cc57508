package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/wricardo/mcp-training/quoridor/game/engine"
	"github.com/wricardo/mcp-training/quoridor/game/policy"
	"github.com/wricardo/mcp-training/quoridor/game/results"
)

const (
	// DefaultLeaderboardLimit is used when a caller asks for no specific size
	DefaultLeaderboardLimit = 10

	// simulationTurnLimit bounds simulated games on boards without MaxTurns
	simulationTurnLimit = 10000
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	results  results.Store
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance. A nil store keeps
// results in memory.
func NewGameService(sessions SessionManager, configs ConfigManager, store results.Store) GameService {
	if store == nil {
		store = results.NewMemoryStore()
	}
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		results:  store,
	}
}

// CreateSession creates a new game session. Computer seats that move before
// any human are played immediately.
func (s *gameServiceImpl) CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionInfo, error) {
	controllers, err := NormalizeControllers(req.PlayerOne, req.PlayerTwo)
	if err != nil {
		return nil, err
	}

	config, err := s.resolveConfig(req.ConfigID)
	if err != nil {
		return nil, err
	}

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Create("", config, SessionOptions{
		ConfigID:    req.ConfigID,
		Controllers: controllers,
		Seed:        seed,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	log.WithFields(log.Fields{
		"session":    sess.ID,
		"config":     sess.ConfigID,
		"player_one": controllers[0],
		"player_two": controllers[1],
	}).Info("session created")

	if err := s.openingReplies(ctx, sess); err != nil {
		return nil, err
	}

	return sessionInfo(sess), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return sessionInfo(sess), nil
}

// ListSessions returns all active sessions, oldest first
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) {
			return sessions[i].ID < sessions[j].ID
		}
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})

	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return fmt.Errorf("delete session %s: %w", sessionID, err)
	}
	log.WithField("session", sessionID).Info("session deleted")
	return nil
}

// Act applies a human action for the side to move, then lets computer
// seats reply until a human is to move again or the game ends.
func (s *gameServiceImpl) Act(ctx context.Context, sessionID string, action engine.Action) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	state := sess.Engine.GetState()
	seat := state.ToMove
	if !state.GameOver {
		if !sess.IsHuman(seat) {
			return nil, fmt.Errorf("%w: %s is played by %s", ErrNotHumanTurn, seat, sess.Controllers[seat])
		}
		if turnLimitReached(sess) {
			return nil, fmt.Errorf("%w: %d turns", engine.ErrTurnLimit, state.Turns)
		}
	}

	if err := sess.Engine.Apply(action); err != nil {
		log.WithFields(log.Fields{
			"session": sess.ID,
			"seat":    seat,
			"action":  action.String(),
		}).WithError(err).Debug("action rejected")
		return nil, err
	}

	applied := []AppliedAction{s.logApplied(sess, seat, action)}
	events := []GameEvent{actionEvent(sess, seat, action)}

	more, moreEvents, truncated, err := s.advanceComputers(ctx, sess, engine.MaxAdvanceSteps)
	applied = append(applied, more...)
	events = append(events, moreEvents...)
	s.finish(ctx, sess)
	if err != nil {
		return nil, err
	}

	return buildResult(sess, applied, events, truncated), nil
}

// Advance lets computer seats play up to maxSteps actions. It stops early
// when a human is to move or the game ends.
func (s *gameServiceImpl) Advance(ctx context.Context, sessionID string, maxSteps int) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	if maxSteps <= 0 || maxSteps > engine.MaxAdvanceSteps {
		maxSteps = engine.MaxAdvanceSteps
	}

	applied, events, truncated, err := s.advanceComputers(ctx, sess, maxSteps)
	s.finish(ctx, sess)
	if err != nil {
		return nil, err
	}

	result := buildResult(sess, applied, events, truncated)
	result.Success = len(applied) > 0
	if !result.Success {
		result.Message = "no computer seat to move: " + result.Message
	}
	return result, nil
}

// Reset restores the starting position of a session
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Engine.Reset()
	sess.Recorded = false
	if err := sess.AttachPolicies(); err != nil {
		return nil, err
	}
	log.WithField("session", sess.ID).Info("session reset")

	if err := s.openingReplies(ctx, sess); err != nil {
		return nil, err
	}
	return sess.Engine.GetState().Clone(), nil
}

// GetGameState returns a snapshot of the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.GetState().Clone(), nil
}

// LegalActions lists the moves and walls open to the side to move
func (s *gameServiceImpl) LegalActions(ctx context.Context, sessionID string) (*LegalActionsInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	state := sess.Engine.GetState()
	info := &LegalActionsInfo{
		ToMove:         state.ToMove,
		Controller:     sess.Controllers[state.ToMove],
		GameOver:       state.GameOver,
		Moves:          []engine.Position{},
		Walls:          sess.Engine.LegalWalls(),
		WallsRemaining: state.Players[state.ToMove].Walls,
		Paths: [2][]engine.Position{
			sess.Engine.PathToGoal(engine.PlayerOne),
			sess.Engine.PathToGoal(engine.PlayerTwo),
		},
	}
	for _, move := range sess.Engine.LegalMoves() {
		info.Moves = append(info.Moves, *move.To)
	}
	if info.Walls == nil {
		info.Walls = []engine.Wall{}
	}
	return info, nil
}

// RenderBoard draws the board followed by a one-line status
func (s *gameServiceImpl) RenderBoard(ctx context.Context, sessionID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return "", err
	}

	state := sess.Engine.GetState()
	one, two := state.Players[engine.PlayerOne], state.Players[engine.PlayerTwo]

	var b strings.Builder
	if err := engine.Render(&b, state.Grid, one, two); err != nil {
		return "", err
	}
	paths := engine.PathLengths(state)
	fmt.Fprintf(&b, "x %s (%s) walls=%d path=%d | o %s (%s) walls=%d path=%d\n",
		engine.PlayerOne, sess.Controllers[0], one.Walls, paths[0],
		engine.PlayerTwo, sess.Controllers[1], two.Walls, paths[1])
	b.WriteString(state.Message)
	b.WriteString("\n")
	return b.String(), nil
}

// Simulate plays a batch of computer-vs-computer games on a private engine
// and records every finished game
func (s *gameServiceImpl) Simulate(ctx context.Context, req SimulationRequest) (*SimulationResult, error) {
	if req.Games <= 0 {
		req.Games = 1
	}
	if req.Games > engine.MaxSimulationGames {
		return nil, fmt.Errorf("%w: at most %d games per simulation", ErrInvalidRequest, engine.MaxSimulationGames)
	}

	players := [2]string{req.PlayerOne, req.PlayerTwo}
	for i := range players {
		if players[i] == "" {
			players[i] = "move_only"
		}
		if players[i] == policy.Human {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidRequest, engine.Seat(i), policy.ErrHumanSeat)
		}
		if !policy.Valid(players[i]) {
			return nil, fmt.Errorf("%w: %s: %w: %q", ErrInvalidRequest, engine.Seat(i), policy.ErrUnknownPolicy, players[i])
		}
	}

	config, err := s.resolveConfig(req.ConfigID)
	if err != nil {
		return nil, err
	}
	simConfig := *config
	if simConfig.MaxTurns == 0 {
		simConfig.MaxTurns = simulationTurnLimit
	}

	configID := req.ConfigID
	if configID == "" {
		configID = config.Name
	}

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	result := &SimulationResult{
		ConfigID: configID,
		Players:  players,
		Games:    req.Games,
		Results:  make([]GameSummary, 0, req.Games),
	}

	totalTurns := 0
	for game := 1; game <= req.Games; game++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("simulation stopped after %d games: %w", game-1, err)
		}

		summary := GameSummary{Game: game}
		outcome, err := playOnce(&simConfig, players, seed+int64(2*(game-1)))
		if err != nil {
			summary.Error = err.Error()
			result.Failed++
			result.Results = append(result.Results, summary)
			continue
		}

		summary.Winner = outcome.Winner
		summary.Turns = outcome.Turns
		result.Wins[outcome.Winner]++
		totalTurns += outcome.Turns
		result.Results = append(result.Results, summary)

		if _, err := s.results.Record(ctx, results.NewRecord("", configID, players, *outcome)); err != nil {
			log.WithError(err).Warn("failed to record simulated game")
		}
	}

	if finished := req.Games - result.Failed; finished > 0 {
		result.AverageTurns = float64(totalTurns) / float64(finished)
	}

	log.WithFields(log.Fields{
		"config":     configID,
		"player_one": players[0],
		"player_two": players[1],
		"games":      req.Games,
		"wins":       fmt.Sprintf("%d-%d", result.Wins[0], result.Wins[1]),
		"failed":     result.Failed,
	}).Info("simulation finished")

	return result, nil
}

// Leaderboard returns controller standings and the latest finished games
func (s *gameServiceImpl) Leaderboard(ctx context.Context, limit int) (*LeaderboardInfo, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	standings, err := s.results.Standings(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load standings: %w", err)
	}
	recent, err := s.results.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent games: %w", err)
	}
	if standings == nil {
		standings = []results.Standing{}
	}
	if recent == nil {
		recent = []results.Record{}
	}
	return &LeaderboardInfo{Standings: standings, Recent: recent}, nil
}

// ListPolicies returns every controller name a seat can use
func (s *gameServiceImpl) ListPolicies(ctx context.Context) ([]policy.Info, error) {
	return policy.List(), nil
}

// ListConfigs returns available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a game configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// getSession looks up a session and marks it as accessed
func (s *gameServiceImpl) getSession(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess, nil
}

func (s *gameServiceImpl) resolveConfig(configID string) (*engine.GameConfig, error) {
	if configID == "" {
		return s.configs.GetDefault(), nil
	}
	config, err := s.configs.LoadConfig(configID)
	if err != nil {
		if errors.Is(err, ErrConfigNotFound) {
			if available, listErr := s.configs.ListConfigs(); listErr == nil && len(available) > 0 {
				ids := make([]string, 0, len(available))
				for _, info := range available {
					ids = append(ids, info.ConfigID)
				}
				return nil, fmt.Errorf("%w: '%s' (available: %s)", ErrConfigNotFound, configID, strings.Join(ids, ", "))
			}
		}
		return nil, fmt.Errorf("failed to load config %s: %w", configID, err)
	}
	return config, nil
}

// openingReplies plays the computer seats that move before the first human
// turn. Computer-only sessions start paused so callers can step them with
// Advance.
func (s *gameServiceImpl) openingReplies(ctx context.Context, sess *Session) error {
	if !sess.IsHuman(engine.PlayerOne) && !sess.IsHuman(engine.PlayerTwo) {
		s.persist(sess)
		return nil
	}
	_, _, _, err := s.advanceComputers(ctx, sess, engine.MaxAdvanceSteps)
	s.finish(ctx, sess)
	return err
}

// advanceComputers plays computer seats until a human is to move, the game
// ends or limit actions have been applied. truncated reports that a computer
// seat was still to move when the limit was hit.
func (s *gameServiceImpl) advanceComputers(ctx context.Context, sess *Session, limit int) ([]AppliedAction, []GameEvent, bool, error) {
	applied := []AppliedAction{}
	events := []GameEvent{}

	for steps := 0; ; steps++ {
		state := sess.Engine.GetState()
		if state.GameOver || sess.IsHuman(state.ToMove) {
			return applied, events, false, nil
		}
		if turnLimitReached(sess) {
			events = append(events, GameEvent{
				Type:      "turn_limit",
				Message:   fmt.Sprintf("Turn limit of %d reached without a winner", sess.Config.MaxTurns),
				Timestamp: time.Now(),
				Seat:      state.ToMove,
			})
			return applied, events, false, nil
		}
		if steps >= limit {
			return applied, events, true, nil
		}
		if err := ctx.Err(); err != nil {
			return applied, events, false, err
		}

		seat := state.ToMove
		action, err := sess.Engine.Step(sess.Policies[seat])
		if err != nil {
			log.WithFields(log.Fields{
				"session":    sess.ID,
				"seat":       seat,
				"controller": sess.Controllers[seat],
			}).WithError(err).Error("computer player failed")
			return applied, events, false, err
		}
		applied = append(applied, s.logApplied(sess, seat, action))
		events = append(events, actionEvent(sess, seat, action))
	}
}

// logApplied logs one applied action and returns its record
func (s *gameServiceImpl) logApplied(sess *Session, seat engine.Seat, action engine.Action) AppliedAction {
	state := sess.Engine.GetState()
	log.WithFields(log.Fields{
		"session":    sess.ID,
		"turn":       state.Turns,
		"seat":       seat,
		"controller": sess.Controllers[seat],
		"action":     action.String(),
	}).Debug("action applied")

	return AppliedAction{
		Turn:       state.Turns,
		Seat:       seat,
		Controller: sess.Controllers[seat],
		Action:     action,
	}
}

// finish records a newly finished game and persists the session
func (s *gameServiceImpl) finish(ctx context.Context, sess *Session) {
	state := sess.Engine.GetState()
	if state.GameOver && state.Result != nil && !sess.Recorded {
		record := results.NewRecord(sess.ID, sess.ConfigID, sess.Controllers, *state.Result)
		if _, err := s.results.Record(ctx, record); err != nil {
			log.WithError(err).WithField("session", sess.ID).Warn("failed to record result")
		} else {
			sess.Recorded = true
			log.WithFields(log.Fields{
				"session": sess.ID,
				"winner":  state.Result.Winner,
				"turns":   state.Result.Turns,
			}).Info("game finished")
		}
	}
	s.persist(sess)
}

func (s *gameServiceImpl) persist(sess *Session) {
	if err := s.sessions.Save(sess.ID); err != nil {
		log.WithError(err).WithField("session", sess.ID).Warn("failed to persist session")
	}
}

// playOnce runs one simulated game with fresh policies
func playOnce(config *engine.GameConfig, players [2]string, seed int64) (*engine.GameResult, error) {
	var policies [2]engine.Policy
	for i, name := range players {
		p, err := policy.New(name, seed+int64(i))
		if err != nil {
			return nil, err
		}
		policies[i] = p
	}

	eng, err := engine.NewEngine(config)
	if err != nil {
		return nil, err
	}
	return eng.Play(policies[0], policies[1])
}

func turnLimitReached(sess *Session) bool {
	limit := sess.Config.MaxTurns
	return limit > 0 && sess.Engine.GetState().Turns >= limit
}

func actionEvent(sess *Session, seat engine.Seat, action engine.Action) GameEvent {
	return GameEvent{
		Type:      string(action.Type),
		Message:   fmt.Sprintf("%s (%s) played %s", seat, sess.Controllers[seat], action),
		Timestamp: time.Now(),
		Seat:      seat,
	}
}

// sessionInfo and buildResult must run under the service lock. The state
// they return is a copy the caller may read after the lock is released.
func sessionInfo(sess *Session) *SessionInfo {
	state := sess.Engine.GetState().Clone()
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     sess.ConfigID,
		Controllers:    sess.Controllers,
		Seed:           sess.Seed,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		PathLengths:    engine.PathLengths(state),
		GameState:      state,
		GameConfig:     sess.Config,
	}
}

func buildResult(sess *Session, applied []AppliedAction, events []GameEvent, truncated bool) *ActionResult {
	state := sess.Engine.GetState().Clone()
	result := &ActionResult{
		Success:        true,
		GameState:      state,
		Message:        state.Message,
		Events:         events,
		Applied:        applied,
		PathLengths:    engine.PathLengths(state),
		LegalMoveCount: len(sess.Engine.LegalMoves()),
		GameOver:       state.GameOver,
		Truncated:      truncated,
	}

	if state.GameOver && state.Result != nil {
		result.Winner = state.Result.Winner.String()
		result.Events = append(result.Events, GameEvent{
			Type:      "game_over",
			Message:   state.Message,
			Timestamp: time.Now(),
			Seat:      state.Result.Winner,
		})
	} else if sess.IsHuman(state.ToMove) {
		result.WaitingFor = state.ToMove.String()
	}
	return result
}
