// Package service provides the business logic layer for the Quoridor server.
//
// The service package implements:
//   - Multi-session game management with a controller per seat
//   - Human actions followed by automatic computer replies
//   - Batch simulations between policies
//   - Recording finished games for the leaderboard
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages board configuration loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine. Each session owns its own engine; seats are either "human"
// (actions arrive through Act) or a policy name from the policy package. After
// every human action the service plays computer seats until a human is to move
// or the game ends. Sessions where both seats are computers start paused and
// are stepped with Advance.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr, results.NewMemoryStore())
//
//	info, err := gameService.CreateSession(ctx, service.CreateSessionRequest{
//		ConfigID:  "small",
//		PlayerTwo: "wall_first_max",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.Act(ctx, info.ID, engine.MoveTo(2, 1))
//
// Errors:
//
// Lookups fail with ErrSessionNotFound or ErrConfigNotFound, malformed input
// with ErrInvalidRequest, and actions submitted for a computer seat with
// ErrNotHumanTurn. Illegal actions return the engine's errors, which wrap
// engine.ErrPolicyContractViolation.
package service
