package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wricardo/mcp-training/quoridor/game/engine"
)

func newTestClient(hub *Hub, sessionID string) *Client {
	return &Client{
		hub:       hub,
		sessionID: sessionID,
		send:      make(chan []byte, sendBuffer),
	}
}

func TestNewHub(t *testing.T) {
	hub := NewHub()

	if hub == nil {
		t.Fatal("NewHub() returned nil")
	}
	if hub.sessions == nil {
		t.Error("Hub sessions map is nil")
	}
	if hub.register == nil || hub.unregister == nil {
		t.Error("Hub channels are nil")
	}
}

func TestHubRegisterClient(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub, "test-session")

	hub.registerClient(client)

	if !hub.sessions["test-session"][client] {
		t.Error("Client was not registered in session")
	}
	if hub.ClientCount("test-session") != 1 {
		t.Errorf("Expected 1 client in session, got %d", hub.ClientCount("test-session"))
	}
}

func TestHubUnregisterClient(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub, "test-session")

	hub.registerClient(client)
	hub.unregisterClient(client)

	if _, exists := hub.sessions["test-session"]; exists {
		t.Error("Session should be removed when last client leaves")
	}
	if _, ok := <-client.send; ok {
		t.Error("Client send channel should be closed")
	}

	// A second unregister is a no-op
	hub.unregisterClient(client)
}

func TestHubMultipleClientsInSession(t *testing.T) {
	hub := NewHub()
	sessionID := "multi-client-session"

	client1 := newTestClient(hub, sessionID)
	client2 := newTestClient(hub, sessionID)
	other := newTestClient(hub, "other-session")

	hub.registerClient(client1)
	hub.registerClient(client2)
	hub.registerClient(other)

	if hub.ClientCount(sessionID) != 2 {
		t.Errorf("Expected 2 clients in session, got %d", hub.ClientCount(sessionID))
	}

	hub.unregisterClient(client1)

	if hub.ClientCount(sessionID) != 1 {
		t.Errorf("Expected 1 client remaining in session, got %d", hub.ClientCount(sessionID))
	}
	if !hub.sessions[sessionID][client2] {
		t.Error("client2 should still be registered")
	}
}

func TestHubBroadcastToSession(t *testing.T) {
	hub := NewHub()
	sessionID := "broadcast-test"

	client := newTestClient(hub, sessionID)
	bystander := newTestClient(hub, "elsewhere")
	hub.registerClient(client)
	hub.registerClient(bystander)

	state := engine.InitGameStateFromConfig(&engine.GameConfig{Name: "small", Width: 5, Height: 5, WallsPerPlayer: 3})
	hub.BroadcastToSession(sessionID, state)

	select {
	case data := <-client.send:
		var message Message
		if err := json.Unmarshal(data, &message); err != nil {
			t.Fatalf("Failed to unmarshal message: %v", err)
		}
		if message.SessionID != sessionID {
			t.Errorf("Expected sessionID %s, got %s", sessionID, message.SessionID)
		}
		if message.Event != "state_update" {
			t.Errorf("Expected event 'state_update', got %s", message.Event)
		}
		if message.GameState == nil || message.GameState.Players[engine.PlayerTwo].Y != 4 {
			t.Errorf("GameState not correctly transmitted: %+v", message.GameState)
		}
	default:
		t.Error("No message queued for client")
	}

	if len(bystander.send) != 0 {
		t.Error("Clients of other sessions should not receive the update")
	}
}

func TestHubBroadcastEvent(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub, "event-test")
	hub.registerClient(client)

	hub.BroadcastEvent("event-test", "game_over", map[string]string{"winner": "player_two"})

	var message struct {
		Event string            `json:"event"`
		Data  map[string]string `json:"data"`
	}
	if err := json.Unmarshal(<-client.send, &message); err != nil {
		t.Fatalf("Failed to unmarshal message: %v", err)
	}
	if message.Event != "game_over" || message.Data["winner"] != "player_two" {
		t.Errorf("Unexpected event message %+v", message)
	}
}

func TestHubDropsSlowClients(t *testing.T) {
	hub := NewHub()
	client := &Client{hub: hub, sessionID: "slow", send: make(chan []byte, 1)}
	hub.registerClient(client)

	hub.BroadcastEvent("slow", "tick", 1)
	hub.BroadcastEvent("slow", "tick", 2)

	if hub.ClientCount("slow") != 0 {
		t.Error("Expected slow client to be dropped")
	}
}

func TestWebSocketLifecycle(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	initial := engine.InitGameStateFromConfig(engine.DefaultGameConfig())
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, r.URL.Query().Get("session"), initial)
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?session=ws-test"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()

	readMessage := func() Message {
		t.Helper()
		conn.SetReadDeadline(time.Now().Add(time.Second))
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("Failed to read WebSocket message: %v", err)
		}
		var message Message
		if err := json.Unmarshal(data, &message); err != nil {
			t.Fatalf("Failed to unmarshal message: %v", err)
		}
		return message
	}

	first := readMessage()
	if first.GameState == nil || first.GameState.Turns != 0 {
		t.Fatalf("Expected initial state first, got %+v", first)
	}

	deadline := time.Now().Add(time.Second)
	for hub.ClientCount("ws-test") != 1 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if hub.ClientCount("ws-test") != 1 {
		t.Fatalf("Expected 1 registered client, got %d", hub.ClientCount("ws-test"))
	}

	next := initial.Clone()
	next.Turns = 1
	hub.BroadcastToSession("ws-test", next)

	update := readMessage()
	if update.GameState == nil || update.GameState.Turns != 1 {
		t.Errorf("Expected update with 1 turn, got %+v", update.GameState)
	}

	conn.Close()

	deadline = time.Now().Add(time.Second)
	for hub.ClientCount("ws-test") != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if hub.ClientCount("ws-test") != 0 {
		t.Error("Session should have been cleaned up after WebSocket close")
	}
}
