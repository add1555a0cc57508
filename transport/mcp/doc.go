// Package mcp exposes Quoridor to AI agents over the Model Context Protocol.
//
// The Client is a thin proxy: every tool calls the REST API served by the
// api package and formats the JSON response as text for the agent.
//
// MCP Tools:
//   - create_session, list_sessions, get_session: session management
//   - game_state: board drawing, pawns, walls left and path lengths
//   - legal_actions: legal moves, walls and both shortest paths
//   - move, place_wall: human actions; computer seats reply automatically
//   - advance: let computer seats play
//   - reset_game: restart a session
//   - list_configs, list_policies: boards and controllers
//   - simulate, leaderboard: computer-vs-computer batches and standings
//   - game_instructions: rules and coordinate conventions
//
// Tool failures (unknown session, illegal action, wrong turn) are returned
// as tool errors rather than protocol errors so the agent can read them.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
