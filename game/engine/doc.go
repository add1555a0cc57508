// Package engine provides the core rules engine for Quoridor.
//
// The engine package implements the game mechanics including:
//   - Grid model with per-cell "right" and "down" passability flags
//   - A* shortest path search to a player's goal row (opponent jump aware)
//   - Wall legality validation with a connectivity check for both players
//   - Legal move generation including straight and diagonal jumps
//   - The turn engine that alternates two policies until a player wins
//
// Core Types:
//
// Grid is the only mutable board state. Player carries a position, a goal
// row and the remaining wall allowance. Action is either a move to a cell
// or a wall placement. GameEngine drives a single game and implements the
// Engine interface; GameState is its JSON-serializable snapshot.
//
// Usage:
//
//	gameEngine, err := engine.NewEngine(engine.DefaultGameConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Apply an action for the side to move
//	moves := gameEngine.LegalMoves()
//	if err := gameEngine.Apply(moves[0]); err != nil {
//		log.Fatal(err)
//	}
//
//	// Or let two policies play to the end
//	result, err := gameEngine.Play(one, two)
//
// Game Rules:
//
// Two players start centered on opposite edges of the board and race to the
// opposite edge. On each turn a player either steps to an adjacent cell
// (jumping over an adjacent opponent when needed) or places a wall spanning
// two cells. A wall may never cut either player off from their goal row.
package engine
