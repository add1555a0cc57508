package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/mcp-training/quoridor/game/engine"
	"github.com/wricardo/mcp-training/quoridor/game/policy"
	"github.com/wricardo/mcp-training/quoridor/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			// Simulations of large batches can take a while
			Timeout: 60 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Quoridor",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Quoridor - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Reach the far row before your opponent. Player one (x) starts on the top row
and races to the bottom; player two (o) starts on the bottom row and races to
the top. On your turn either move your pawn or place a wall.

AVAILABLE TOOLS:
- create_session: Start a game, choosing who plays each seat
- list_sessions / get_session: Find existing games
- game_state: Board, pawns, walls left and shortest path lengths
- legal_actions: Every legal move and wall for the side to move
- move: Move your pawn to a cell - requires intent explanation
- place_wall: Place a wall - requires intent explanation
- advance: Let computer seats play
- reset_game: Start the same game over
- list_configs / list_policies: Boards and computer opponents
- simulate / leaderboard: Play computer-vs-computer batches and see standings
- game_instructions: Full rules and coordinate conventions

NOTE: The 'intent' parameter on move/place_wall serves as rubber duck debugging - explain your reasoning!`),
	)

	c.registerTools()
}

func sessionIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

func intentProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Brief explanation of the intent behind this action (serves as a rubber duck to help explain your reasoning)",
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session. Seats default to human (player one) vs move_only (player two).",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Board configuration to use (optional, see list_configs)",
				},
				"player_one": map[string]interface{}{
					"type":        "string",
					"description": "Controller for player one: human or a policy from list_policies",
				},
				"player_two": map[string]interface{}{
					"type":        "string",
					"description": "Controller for player two: human or a policy from list_policies",
				},
				"seed": map[string]interface{}{
					"type":        "integer",
					"description": "Seed for randomized policies (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current board, pawns, walls remaining and shortest path lengths",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "legal_actions",
		Description: "List every legal pawn move and wall placement for the side to move, plus both shortest paths",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"include_walls": map[string]interface{}{
					"type":        "boolean",
					"description": "List every legal wall (can be long on big boards)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleLegalActions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Move your pawn to a cell. Computer seats reply automatically.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "Destination column (0-based)",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Destination row (0-based, row 0 is the top)",
				},
				"intent": intentProperty(),
			},
			Required: []string{"session_id", "x", "y"},
		},
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "place_wall",
		Description: "Place a two-cell wall whose upper-left anchor is (x, y). Computer seats reply automatically.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"orientation": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"horizontal", "vertical"},
					"description": "horizontal walls block up/down steps, vertical walls block left/right steps",
				},
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "Anchor column (0 to width-2)",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Anchor row (0 to height-2)",
				},
				"intent": intentProperty(),
			},
			Required: []string{"session_id", "orientation", "x", "y"},
		},
	}, c.handlePlaceWall)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "advance",
		Description: "Let computer-controlled seats play until a human is to move or the game ends",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"max_steps": map[string]interface{}{
					"type":        "integer",
					"description": "Stop after this many actions (optional)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleAdvance)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Reset the game to its initial state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available board configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_policies",
		Description: "List the controllers that can sit in a seat",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListPolicies)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "simulate",
		Description: "Play a batch of computer-vs-computer games and record the results",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Board configuration (optional)",
				},
				"player_one": map[string]interface{}{
					"type":        "string",
					"description": "Policy for player one",
				},
				"player_two": map[string]interface{}{
					"type":        "string",
					"description": "Policy for player two",
				},
				"games": map[string]interface{}{
					"type":        "integer",
					"description": fmt.Sprintf("Number of games (1-%d)", engine.MaxSimulationGames),
				},
				"seed": map[string]interface{}{
					"type":        "integer",
					"description": "Base seed (optional)",
				},
			},
		},
	}, c.handleSimulate)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "leaderboard",
		Description: "Show controller standings and the most recent finished games",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum entries per list",
				},
			},
		},
	}, c.handleLeaderboard)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result == nil {
		return nil
	}
	if text, ok := result.(*string); ok {
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		*text = string(data)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(result)
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

// intArg reads an integer argument; JSON numbers arrive as float64
func intArg(args map[string]interface{}, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	default:
		return 0, false
	}
}

func sessionPath(sessionID, suffix string) string {
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	body := service.CreateSessionRequest{}
	body.ConfigID, _ = args["config_id"].(string)
	body.PlayerOne, _ = args["player_one"].(string)
	body.PlayerTwo, _ = args["player_two"].(string)
	if seed, ok := intArg(args, "seed"); ok {
		body.Seed = int64(seed)
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n\n%s",
		session.ID, session.ConfigName, formatSessionInfo(&session))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		status := "in progress"
		if s.GameState != nil && s.GameState.GameOver {
			status = "finished"
		}
		fmt.Fprintf(&b, "- %s (Config: %s, %s vs %s, %s, Created: %s)\n",
			s.ID, s.ConfigName, s.Controllers[0], s.Controllers[1], status, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, ""), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var state engine.GameState
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleLegalActions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	includeWalls, _ := args["include_walls"].(bool)

	var legal service.LegalActionsInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/legal"), nil, &legal); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatLegalActions(&legal, includeWalls)), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	x, okX := intArg(args, "x")
	y, okY := intArg(args, "y")
	if !okX || !okY {
		return mcp.NewToolResultError("x and y are required integers"), nil
	}

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_, _ = args["intent"].(string)

	var result service.ActionResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/move"), map[string]int{"x": x, "y": y}, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatActionResult(&result)), nil
}

func (c *Client) handlePlaceWall(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	orientation, _ := args["orientation"].(string)
	x, okX := intArg(args, "x")
	y, okY := intArg(args, "y")
	if !okX || !okY {
		return mcp.NewToolResultError("x and y are required integers"), nil
	}

	_, _ = args["intent"].(string)

	body := map[string]interface{}{
		"orientation": orientation,
		"x":           x,
		"y":           y,
	}

	var result service.ActionResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/wall"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatActionResult(&result)), nil
}

func (c *Client) handleAdvance(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	maxSteps, _ := intArg(args, "max_steps")

	var result service.ActionResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/advance"), map[string]int{"max_steps": maxSteps}, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatActionResult(&result)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}

	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/reset"), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Configurations:\n\n")
	for _, config := range configs {
		fmt.Fprintf(&b, "• %s (config_id: %s)\n  %s\n  Board: %dx%d, Walls: %d each",
			config.Name, config.ConfigID, config.Description, config.Width, config.Height, config.WallsPerPlayer)
		if config.MaxTurns > 0 {
			fmt.Fprintf(&b, ", Max turns: %d", config.MaxTurns)
		}
		b.WriteString("\n\n")
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleListPolicies(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var policies []policy.Info
	if err := c.apiCall(ctx, "GET", "/api/policies", nil, &policies); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Controllers:\n\n")
	for _, p := range policies {
		fmt.Fprintf(&b, "• %s - %s\n", p.Name, p.Description)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleSimulate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	body := service.SimulationRequest{}
	body.ConfigID, _ = args["config_id"].(string)
	body.PlayerOne, _ = args["player_one"].(string)
	body.PlayerTwo, _ = args["player_two"].(string)
	body.Games, _ = intArg(args, "games")
	if seed, ok := intArg(args, "seed"); ok {
		body.Seed = int64(seed)
	}

	var result service.SimulationResult
	if err := c.apiCall(ctx, "POST", "/api/simulations", body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSimulation(&result)), nil
}

func (c *Client) handleLeaderboard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := "/api/leaderboard"
	if limit, ok := intArg(arguments(request), "limit"); ok && limit > 0 {
		path += fmt.Sprintf("?limit=%d", limit)
	}

	var board service.LeaderboardInfo
	if err := c.apiCall(ctx, "GET", path, nil, &board); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatLeaderboard(&board)), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Quoridor - Complete Instructions

GAME OBJECTIVE:
Be the first to move your pawn onto the opposite edge of the board.
• Player one (x) starts in the middle of row 0 and must reach the bottom row.
• Player two (o) starts in the middle of the bottom row and must reach row 0.
• Player one moves first.

COORDINATES:
• x is the column, counted from 0 on the left.
• y is the row, counted from 0 at the top.
• A 9x9 board has cells (0,0) through (8,8).

ON YOUR TURN, DO EXACTLY ONE OF:
1. Move your pawn one step up, down, left or right.
   • You cannot step through a wall or off the board.
   • If the opponent stands next to you, jump straight over them.
   • If a wall or the board edge is behind the opponent, step diagonally
     to either side of them instead, unless a wall blocks that side.
2. Place a wall, if you have any left (10 each on the standard board).
   • A wall is two cells long. It is anchored at its upper-left cell (x, y),
     with 0 <= x <= width-2 and 0 <= y <= height-2.
   • horizontal: blocks stepping between rows y and y+1, for columns x and x+1.
   • vertical: blocks stepping between columns x and x+1, for rows y and y+1.
   • Walls cannot overlap or cross another wall through the same midpoint.
   • A wall may never cut either player off from their goal row.

BOARD LEGEND (game_state):
• x / o - the two pawns
• ─── and │ between cells - placed walls (open edges are blank)
• Path lengths count the cells on each player's shortest route, including
  the cell they stand on. The shorter path is usually ahead.

🤖 AI AGENTS - STRATEGY TIPS:
• Call legal_actions before acting; it lists every legal move and both
  shortest paths.
• Compare path lengths: a wall is worth placing when it lengthens the
  opponent's path more than yours.
• Save walls for the endgame; a wall placed early is easy to route around.
• Watch for jumps: meeting the opponent head-on can gain you a step.

COMPUTER OPPONENTS:
• Seats can be human or any policy from list_policies.
• When you act, computer seats reply automatically until it is a human's
  turn again. Use advance to step computer-only games.

ERRORS:
• Illegal actions are rejected and the game state is left unchanged.
• Acting when it is not a human's turn, or after the game is over, fails.

SESSION MANAGEMENT:
• Multiple sessions can run at once; each has a short ID.
• Finished games are recorded on the leaderboard.`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nPlayers: x=%s, o=%s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.Controllers[0], session.Controllers[1],
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var result strings.Builder
	paths := [2]int{-1, -1}
	if state.Grid != nil {
		paths = engine.PathLengths(state)
	}

	fmt.Fprintf(&result, "Turn: %d | To move: %s\n", state.Turns, state.ToMove)
	for _, seat := range []engine.Seat{engine.PlayerOne, engine.PlayerTwo} {
		p := state.Players[seat]
		fmt.Fprintf(&result, "%s %s: (%d,%d) | goal row %d | walls %d | path %d\n",
			pawnMark(seat), seat, p.X, p.Y, p.GoalY, p.Walls, paths[seat])
	}
	result.WriteString("\n")

	if state.Grid != nil {
		result.WriteString(engine.RenderString(state.Grid, state.Players[engine.PlayerOne], state.Players[engine.PlayerTwo]))
	}

	if state.GameOver && state.Result != nil {
		fmt.Fprintf(&result, "\n🏁 GAME OVER: %s wins after %d turns", state.Result.Winner, state.Result.Turns)
	}

	if state.Message != "" {
		fmt.Fprintf(&result, "\nMessage: %s", state.Message)
	}

	return result.String()
}

func pawnMark(seat engine.Seat) string {
	if seat == engine.PlayerOne {
		return "x"
	}
	return "o"
}

func formatActionResult(result *service.ActionResult) string {
	var b strings.Builder
	if result.Success {
		b.WriteString("✓ Action accepted\n")
	} else {
		b.WriteString("✗ Nothing applied\n")
	}

	if len(result.Applied) > 0 {
		b.WriteString("Applied:\n")
		for _, a := range result.Applied {
			fmt.Fprintf(&b, "%d. %s (%s): %s\n", a.Turn, a.Seat, a.Controller, a.Action)
		}
	}

	if len(result.Events) > 0 {
		b.WriteString("Events:\n")
		for _, event := range result.Events {
			fmt.Fprintf(&b, "- %s: %s\n", event.Type, event.Message)
		}
	}

	if result.Truncated {
		b.WriteString("Stopped at the step limit; call advance again to continue.\n")
	}
	if result.WaitingFor != "" {
		fmt.Fprintf(&b, "Waiting for %s (%d legal moves)\n", result.WaitingFor, result.LegalMoveCount)
	}

	b.WriteString("\n" + formatGameState(result.GameState))
	return b.String()
}

func formatPositions(positions []engine.Position) string {
	parts := make([]string, 0, len(positions))
	for _, p := range positions {
		parts = append(parts, fmt.Sprintf("(%d,%d)", p.X, p.Y))
	}
	return strings.Join(parts, " ")
}

func formatLegalActions(legal *service.LegalActionsInfo, includeWalls bool) string {
	var b strings.Builder
	if legal.GameOver {
		b.WriteString("Game over: no legal actions\n")
		return b.String()
	}

	fmt.Fprintf(&b, "To move: %s (%s)\n", legal.ToMove, legal.Controller)
	fmt.Fprintf(&b, "Moves: %s\n", formatPositions(legal.Moves))
	fmt.Fprintf(&b, "Walls remaining: %d, legal placements: %d\n", legal.WallsRemaining, len(legal.Walls))
	if includeWalls && len(legal.Walls) > 0 {
		parts := make([]string, 0, len(legal.Walls))
		for _, w := range legal.Walls {
			parts = append(parts, w.String())
		}
		fmt.Fprintf(&b, "Walls: %s\n", strings.Join(parts, " "))
	}
	for i, path := range legal.Paths {
		fmt.Fprintf(&b, "Shortest path %s (%d cells): %s\n", engine.Seat(i), len(path), formatPositions(path))
	}
	return b.String()
}

func formatSimulation(result *service.SimulationResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Simulation on %s: %s (x) vs %s (o), %d games\n",
		result.ConfigID, result.Players[0], result.Players[1], result.Games)
	fmt.Fprintf(&b, "Wins: %s %d, %s %d", result.Players[0], result.Wins[0], result.Players[1], result.Wins[1])
	if result.Failed > 0 {
		fmt.Fprintf(&b, ", failed %d", result.Failed)
	}
	fmt.Fprintf(&b, "\nAverage turns: %.1f\n", result.AverageTurns)
	return b.String()
}

func formatLeaderboard(board *service.LeaderboardInfo) string {
	var b strings.Builder
	b.WriteString("Standings:\n")
	if len(board.Standings) == 0 {
		b.WriteString("(no finished games yet)\n")
	}
	for i, s := range board.Standings {
		fmt.Fprintf(&b, "%d. %s - %d/%d wins (%.0f%%)\n", i+1, s.Controller, s.Wins, s.Games, s.WinRate*100)
	}

	if len(board.Recent) > 0 {
		b.WriteString("\nRecent games:\n")
		for _, r := range board.Recent {
			fmt.Fprintf(&b, "- %s vs %s on %s: %s won in %d turns\n",
				r.Players[0], r.Players[1], r.ConfigName, r.WinnerName(), r.Turns)
		}
	}
	return b.String()
}
