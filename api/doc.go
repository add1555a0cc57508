// Package api provides the HTTP REST API for Quoridor sessions.
//
// Endpoints:
//
// Sessions:
//   - POST /api/sessions - Create a session {config_id, player_one, player_two, seed}
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/unified - Spectator summary (?sessionIds=a,b or ?configName=small)
//   - GET /api/sessions/{id} - Get a session
//   - DELETE /api/sessions/{id} - Delete a session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Current game state
//   - GET /api/sessions/{id}/board - Text rendering of the board
//   - GET /api/sessions/{id}/legal - Legal moves, walls and shortest paths
//   - POST /api/sessions/{id}/move - Move the pawn {x, y}
//   - POST /api/sessions/{id}/wall - Place a wall {orientation, x, y}
//   - POST /api/sessions/{id}/advance - Let computer seats play {max_steps}
//   - POST /api/sessions/{id}/reset - Start the game over
//
// Configuration, policies and results:
//   - GET /api/configs - List board configurations
//   - POST /api/configs - Save a configuration
//   - GET /api/configs/{name} - Get one configuration
//   - GET /api/policies - Controllers available for seats
//   - POST /api/simulations - Play computer-vs-computer games
//   - GET /api/leaderboard - Standings and recent games (?limit=N)
//
// Live updates are served on /ws?session={id}; see the websocket package.
//
// Errors are returned as {"error": "..."}. Unknown sessions and configs are
// 404, actions out of turn or after the game ended are 409, and illegal
// actions or malformed requests are 400.
//
// Usage:
//
//	server := api.NewServer(gameService, hub)
//	http.ListenAndServe(":8080", server)
package api
