// Command quoridor starts the Quoridor game server.
//
// It supports three modes:
//  1. "server" (default) – runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "stdio-mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//  3. "play" – plays one game between two policies in the terminal and prints the result
//
// Flags control host/port, config and session directories, debug logging,
// version output, and optional ngrok tunneling for easy external access during
// development. REDIS_ADDR switches the leaderboard from memory to Redis.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/wricardo/mcp-training/quoridor/api"
	"github.com/wricardo/mcp-training/quoridor/game/config"
	"github.com/wricardo/mcp-training/quoridor/game/engine"
	"github.com/wricardo/mcp-training/quoridor/game/policy"
	"github.com/wricardo/mcp-training/quoridor/game/results"
	"github.com/wricardo/mcp-training/quoridor/game/service"
	"github.com/wricardo/mcp-training/quoridor/game/session"
	"github.com/wricardo/mcp-training/quoridor/transport/mcp"
	"github.com/wricardo/mcp-training/quoridor/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Quoridor Server"
)

// playTurnLimit stops terminal games between policies that never finish
const playTurnLimit = 10000

// Configuration flags control how the server starts and which services are enabled.
var (
	port         = flag.Int("port", 8080, "HTTP server port")
	host         = flag.String("host", "localhost", "HTTP server host")
	configDir    = flag.String("config-dir", getConfigDirDefault(), "Directory containing board configurations")
	sessionsDir  = flag.String("sessions-dir", "sessions", "Directory for session snapshots (empty disables persistence)")
	debug        = flag.Bool("debug", false, "Enable debug logging")
	version      = flag.Bool("version", false, "Show version information")
	ngrokEnabled = flag.Bool("ngrok", false, "Enable ngrok tunnel")
	ngrokAuth    = flag.String("ngrok-auth", "", "Ngrok auth token (or use NGROK_AUTHTOKEN env var)")
	ngrokDomain  = flag.String("ngrok-domain", "", "Custom ngrok domain (optional)")

	// play mode
	playerOne = flag.String("player-one", "move_only", "Policy for player one in play mode")
	playerTwo = flag.String("player-two", "move_only", "Policy for player two in play mode")
	board     = flag.String("board", config.DefaultConfigID, "Board configuration in play mode")
	seed      = flag.Int64("seed", 0, "Seed for randomized policies in play mode (0 uses the clock)")
)

// getConfigDirDefault returns the default configuration directory.
// It honors the CONFIG_DIR environment variable, then ./configs when it
// exists, then the user's XDG config directory.
func getConfigDirDefault() string {
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		return configDir
	}
	if info, err := os.Stat("configs"); err == nil && info.IsDir() {
		return "configs"
	}
	// xdg.ConfigFile creates the parent directories of the returned path
	path, err := xdg.ConfigFile(filepath.Join("quoridor", "configs", config.DefaultConfigID+".json"))
	if err != nil {
		return "configs"
	}
	return filepath.Dir(path)
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] [MODE]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "%s v%s\n\n", AppName, Version)
		fmt.Fprintf(os.Stderr, "Available modes:\n")
		fmt.Fprintf(os.Stderr, "  server, http     Run HTTP server with API, WebSocket, and MCP endpoint (default)\n")
		fmt.Fprintf(os.Stderr, "  stdio-mcp        Run MCP stdio server with internal HTTP server\n")
		fmt.Fprintf(os.Stderr, "  mcp-stdio        Alias for stdio-mcp\n")
		fmt.Fprintf(os.Stderr, "  mcp              Alias for stdio-mcp\n")
		fmt.Fprintf(os.Stderr, "  play             Play one game between two policies and print the result\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                    # Run HTTP server on default port 8080\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -port 9090         # Run HTTP server on port 9090\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s stdio-mcp          # Run MCP stdio server\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -player-two wall_first_max play   # Watch a game in the terminal\n", os.Args[0])
	}
}

// main parses flags, initializes services, and starts the selected mode.
func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.WithError(err).Warn("error loading .env file")
		}
	} else {
		log.Info("loaded environment variables from .env file")
	}

	flag.Parse()

	if *version {
		fmt.Printf("%s v%s\n", AppName, Version)
		os.Exit(0)
	}

	if *debug {
		log.SetLevel(log.DebugLevel)
		log.SetReportCaller(true)
	}

	args := flag.Args()
	mode := "server"
	if len(args) > 0 {
		mode = args[0]
	}

	// stdout carries the MCP protocol in stdio mode
	if mode == "stdio-mcp" || mode == "mcp-stdio" || mode == "mcp" {
		log.SetOutput(os.Stderr)
	}

	log.WithFields(log.Fields{"version": Version, "mode": mode}).Infof("starting %s", AppName)

	if mode == "play" {
		if err := runPlay(os.Stdout); err != nil {
			log.WithError(err).Fatal("game failed")
		}
		return
	}

	gameService, err := initializeServices()
	if err != nil {
		log.WithError(err).Fatal("failed to initialize services")
	}

	switch mode {
	case "stdio-mcp", "mcp-stdio", "mcp":
		runStdioMCPWithInternalServer(gameService)

	case "server", "http":
		runHTTPServer(gameService)

	default:
		log.Fatalf("Unknown mode: %s. Use 'server' (default), 'stdio-mcp' or 'play'", mode)
	}
}

// runPlay plays one game between the policies named by the play flags
func runPlay(w io.Writer) error {
	configs, err := config.NewManager(*configDir)
	if err != nil {
		return fmt.Errorf("failed to create config manager: %w", err)
	}
	gameConfig, err := configs.LoadConfig(*board)
	if err != nil {
		return err
	}

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}

	result, err := playGame(w, gameConfig, *playerOne, *playerTwo, s, *debug)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"winner": result.Winner,
		"turns":  result.Turns,
		"seed":   s,
	}).Info("game finished")
	return nil
}

// playGame runs one game to completion and writes the final board and the
// result to w. With verbose set every action and intermediate board is written.
func playGame(w io.Writer, gameConfig *engine.GameConfig, one, two string, seed int64, verbose bool) (*engine.GameResult, error) {
	cfg := *gameConfig
	if cfg.MaxTurns == 0 {
		cfg.MaxTurns = playTurnLimit
	}

	names := [2]string{one, two}
	var policies [2]engine.Policy
	for i, name := range names {
		p, err := policy.New(name, seed+int64(i))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", engine.Seat(i), err)
		}
		policies[i] = p
	}

	e, err := engine.NewEngine(&cfg)
	if err != nil {
		return nil, err
	}

	for !e.IsGameOver() {
		state := e.GetState()
		if state.Turns >= cfg.MaxTurns {
			return nil, fmt.Errorf("%w: %d turns", engine.ErrTurnLimit, state.Turns)
		}
		seat := state.ToMove
		action, err := e.Step(policies[seat])
		if err != nil {
			return nil, err
		}
		if verbose {
			state = e.GetState()
			fmt.Fprintf(w, "%d. %s (%s): %s\n", state.Turns, seat, names[seat], action)
			if err := engine.Render(w, state.Grid, state.Players[engine.PlayerOne], state.Players[engine.PlayerTwo]); err != nil {
				return nil, fmt.Errorf("failed to render board: %w", err)
			}
		}
	}

	state := e.GetState()
	if !verbose {
		if err := engine.Render(w, state.Grid, state.Players[engine.PlayerOne], state.Players[engine.PlayerTwo]); err != nil {
			return nil, fmt.Errorf("failed to render board: %w", err)
		}
	}
	result := e.GetResult()
	fmt.Fprintf(w, "%s (%s) wins after %d turns\n", result.Winner, names[result.Winner], result.Turns)
	return result, nil
}

// runHTTPServer starts the HTTP server with REST API, WebSocket hub, and an /mcp proxy endpoint.
// If ngrok is enabled (via flag or environment), it also provisions a public tunnel.
func runHTTPServer(gameService service.GameService) {
	hub := websocket.NewHub()
	go hub.Run()
	defer hub.Stop()

	apiServer := api.NewServer(gameService, hub)

	addr := fmt.Sprintf("%s:%d", *host, *port)

	// MCP client for the /mcp endpoint calls back into this server
	mcpClient := mcp.NewClient(fmt.Sprintf("http://%s", addr))

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", mcpHandler(mcpClient))

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.WithFields(log.Fields{
			"api":       fmt.Sprintf("http://%s/api", addr),
			"websocket": fmt.Sprintf("ws://%s/ws?session=<session_id>", addr),
			"mcp":       fmt.Sprintf("http://%s/mcp", addr),
		}).Infof("HTTP server listening on %s", addr)

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	if ngrokRequested() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrok(ctx, mainRouter)
		}()
	}

	sig := <-stop
	log.WithField("signal", sig.String()).Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("HTTP server shutdown error")
	}

	wg.Wait()
	log.Info("server stopped")
}

// mcpHandler answers single JSON-RPC messages posted to /mcp
func mcpHandler(client *mcp.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := client.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	}
}

// ngrokRequested reports whether the tunnel is enabled by flag or NGROK_ENABLED
func ngrokRequested() bool {
	if *ngrokEnabled {
		return true
	}
	env := os.Getenv("NGROK_ENABLED")
	return env == "true" || env == "1"
}

// runNgrok serves handler through an ngrok tunnel until ctx is cancelled
func runNgrok(ctx context.Context, handler http.Handler) {
	authToken := *ngrokAuth
	if authToken == "" {
		authToken = os.Getenv("NGROK_AUTHTOKEN")
		if authToken == "" {
			authToken = os.Getenv("NGROK_AUTH_TOKEN")
		}
	}

	if authToken == "" {
		log.Warn("ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
		return
	}

	domain := *ngrokDomain
	if domain == "" {
		domain = os.Getenv("NGROK_DOMAIN")
	}

	var tunnel ngrokConfig.Tunnel
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
		log.WithField("domain", domain).Info("using custom ngrok domain")
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		log.WithError(err).Error("failed to start ngrok tunnel")
		return
	}
	defer func() {
		if err := tun.Close(); err != nil {
			log.WithError(err).Warn("failed to close ngrok tunnel")
		}
	}()

	ngrokURL := tun.URL()
	log.WithFields(log.Fields{
		"api":       ngrokURL + "/api",
		"websocket": ngrokURL + "/ws?session=<session_id>",
		"mcp":       ngrokURL + "/mcp",
	}).Infof("ngrok tunnel established: %s", ngrokURL)

	if err := http.Serve(tun, handler); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Warn("ngrok server error")
	}
	log.Info("ngrok tunnel closed")
}

// newResultsStore returns a Redis-backed store when REDIS_ADDR is set and
// reachable, and an in-memory store otherwise
func newResultsStore(ctx context.Context) results.Store {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return results.NewMemoryStore()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.WithError(err).WithField("addr", addr).Warn("redis unavailable, keeping results in memory")
		client.Close()
		return results.NewMemoryStore()
	}

	log.WithField("addr", addr).Info("recording results in redis")
	return results.NewRedisStore(client, os.Getenv("REDIS_PREFIX"))
}

// initializeServices wires session/config managers, the results store and
// the game service. It also starts background routines that prune stale
// sessions and sessions whose snapshot files were deleted.
func initializeServices() (service.GameService, error) {
	configManager, err := config.NewManager(*configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	var sessionManager *session.Manager
	var persistence session.SessionPersistence
	if *sessionsDir != "" {
		persistence, err = session.NewFilePersistence(*sessionsDir, configManager)
		if err != nil {
			return nil, fmt.Errorf("failed to create session persistence: %w", err)
		}
		sessionManager = session.NewManagerWithPersistence(persistence)

		if err := sessionManager.LoadPersistedSessions(); err != nil {
			log.WithError(err).Warn("failed to load persisted sessions")
		}
	} else {
		sessionManager = session.NewManager()
	}

	gameService := service.NewGameService(sessionManager, configManager, newResultsStore(context.Background()))

	go sessionCleanupRoutine(sessionManager)
	if persistence != nil {
		go filesystemSyncRoutine(sessionManager, persistence)
	}

	return gameService, nil
}

// sessionCleanupRoutine periodically removes sessions that have not been accessed
// within the retention window.
func sessionCleanupRoutine(manager *session.Manager) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if removed := manager.CleanupExpiredSessions(24 * time.Hour); removed > 0 {
			log.WithField("removed", removed).Info("cleaned up expired sessions")
		}
	}
}

// filesystemSyncRoutine periodically removes sessions from memory when their
// snapshot files are deleted.
func filesystemSyncRoutine(manager *session.Manager, persistence session.SessionPersistence) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		pruneOrphanedSessions(manager, persistence)
	}
}

func pruneOrphanedSessions(manager *session.Manager, persistence session.SessionPersistence) int {
	pruned := 0
	for _, s := range manager.List() {
		if persistence.Exists(s.ID) {
			continue
		}
		if err := manager.DeleteFromMemory(s.ID); err == nil {
			pruned++
			log.WithField("session", s.ID).Info("pruned session from memory (file deleted)")
		}
	}
	return pruned
}

// runStdioMCPWithInternalServer runs an MCP stdio server.
// It tries to reuse an external API at http://localhost:8080; if unavailable, it
// starts a minimal internal HTTP API bound to a random loopback port and targets that.
func runStdioMCPWithInternalServer(gameService service.GameService) {
	var baseURL string

	externalURL := "http://localhost:8080"
	log.WithField("url", externalURL).Info("checking for external API server")

	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(externalURL + "/healthz")
	if err == nil && resp.StatusCode < 500 {
		resp.Body.Close()
		log.WithField("url", externalURL).Info("external API server found, using it for MCP")
		baseURL = externalURL
	} else {
		log.Info("no external API server found, starting internal HTTP server")

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			log.WithError(err).Fatal("failed to get available port")
		}

		internalAddr := fmt.Sprintf("127.0.0.1:%d", listener.Addr().(*net.TCPAddr).Port)
		log.WithField("addr", internalAddr).Info("starting internal HTTP server for MCP stdio")

		hub := websocket.NewHub()
		go hub.Run()
		defer hub.Stop()

		httpServer := &http.Server{Handler: api.NewServer(gameService, hub)}
		go func() {
			if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.WithError(err).Error("internal HTTP server error")
			}
		}()

		baseURL = fmt.Sprintf("http://%s", internalAddr)
	}

	mcpClient := mcp.NewClient(baseURL)
	log.WithField("api", baseURL).Info("MCP stdio server ready")

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		log.WithError(err).Fatal("MCP stdio server error")
	}
}
