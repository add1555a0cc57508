package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/wricardo/mcp-training/quoridor/game/engine"
	"github.com/wricardo/mcp-training/quoridor/game/service"
)

func createTestConfig() *engine.GameConfig {
	return &engine.GameConfig{
		Name:           "small",
		Description:    "Test configuration",
		Width:          5,
		Height:         5,
		WallsPerPlayer: 3,
	}
}

func humanVsBot() service.SessionOptions {
	return service.SessionOptions{Controllers: [2]string{"human", "move_only"}, Seed: 7}
}

func TestManager_Create(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	t.Run("create with custom ID", func(t *testing.T) {
		session, err := manager.Create("test-session", config, humanVsBot())
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if session.ID != "test-session" {
			t.Errorf("Expected session ID 'test-session', got '%s'", session.ID)
		}
		if session.Engine == nil {
			t.Error("Expected engine to be initialized")
		}
		if session.ConfigID != "small" {
			t.Errorf("Expected config ID to default to config name, got '%s'", session.ConfigID)
		}
		if session.Policies[engine.PlayerOne] != nil {
			t.Error("Expected no policy for the human seat")
		}
		if session.Policies[engine.PlayerTwo] == nil {
			t.Error("Expected a policy for the computer seat")
		}
	})

	t.Run("create with auto-generated ID", func(t *testing.T) {
		session, err := manager.Create("", config, humanVsBot())
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if len(session.ID) != 4 {
			t.Errorf("Expected 4-character session ID, got %q", session.ID)
		}
	})

	t.Run("duplicate session ID", func(t *testing.T) {
		_, err := manager.Create("test-session", config, humanVsBot())
		if err != ErrSessionAlreadyExists {
			t.Errorf("Expected ErrSessionAlreadyExists, got %v", err)
		}
	})

	t.Run("case-insensitive duplicate check", func(t *testing.T) {
		_, err := manager.Create("TEST-SESSION", config, humanVsBot())
		if err != ErrSessionAlreadyExists {
			t.Errorf("Expected ErrSessionAlreadyExists for case variant, got %v", err)
		}
	})

	t.Run("invalid session ID", func(t *testing.T) {
		for _, id := range []string{"../x", "a/b", "a.b"} {
			if _, err := manager.Create(id, config, humanVsBot()); err != ErrInvalidSessionID {
				t.Errorf("Expected ErrInvalidSessionID for %q, got %v", id, err)
			}
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		invalidConfig := createTestConfig()
		invalidConfig.Width = 2
		if _, err := manager.Create("invalid-test", invalidConfig, humanVsBot()); err == nil {
			t.Error("Expected error for invalid config")
		}
	})

	t.Run("unknown controller", func(t *testing.T) {
		opts := service.SessionOptions{Controllers: [2]string{"human", "oracle"}}
		if _, err := manager.Create("bad-controller", config, opts); err == nil {
			t.Error("Expected error for unknown controller")
		}
		if _, err := manager.Get("bad-controller"); err != ErrSessionNotFound {
			t.Errorf("Expected failed session not to be stored, got %v", err)
		}
	})
}

func TestManager_Get(t *testing.T) {
	manager := NewManager()
	created, _ := manager.Create("get-test", createTestConfig(), humanVsBot())

	t.Run("get existing session", func(t *testing.T) {
		session, err := manager.Get("get-test")
		if err != nil {
			t.Fatalf("Failed to get session: %v", err)
		}
		if session != created {
			t.Error("Expected the stored session")
		}
	})

	t.Run("case-insensitive get", func(t *testing.T) {
		session, err := manager.Get("GET-TEST")
		if err != nil {
			t.Fatalf("Failed to get session with different case: %v", err)
		}
		if session != created {
			t.Error("Expected same session regardless of case")
		}
	})

	t.Run("get non-existent session", func(t *testing.T) {
		_, err := manager.Get("non-existent")
		if !errors.Is(err, service.ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})
}

func TestManager_Delete(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()
	manager.Create("delete-test", config, humanVsBot())

	t.Run("delete existing session", func(t *testing.T) {
		if err := manager.Delete("delete-test"); err != nil {
			t.Fatalf("Failed to delete session: %v", err)
		}
		if _, err := manager.Get("delete-test"); err != ErrSessionNotFound {
			t.Error("Expected session to be deleted")
		}
	})

	t.Run("delete non-existent session", func(t *testing.T) {
		if err := manager.Delete("non-existent"); err != ErrSessionNotFound {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("case-insensitive delete", func(t *testing.T) {
		manager.Create("case-test", config, humanVsBot())
		if err := manager.Delete("CASE-TEST"); err != nil {
			t.Fatalf("Failed to delete with different case: %v", err)
		}
		if manager.Count() != 0 {
			t.Errorf("Expected no sessions left, got %d", manager.Count())
		}
	})
}

func TestManager_List(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	if len(manager.List()) != 0 {
		t.Fatal("Expected empty list")
	}

	manager.Create("list-1", config, humanVsBot())
	manager.Create("list-2", config, humanVsBot())

	sessions := manager.List()
	if len(sessions) != 2 {
		t.Fatalf("Expected 2 sessions, got %d", len(sessions))
	}

	found := map[string]bool{}
	for _, s := range sessions {
		found[s.ID] = true
	}
	if !found["list-1"] || !found["list-2"] {
		t.Errorf("Expected both sessions in list, got %v", found)
	}
}

func TestManager_UpdateLastAccessed(t *testing.T) {
	manager := NewManager()
	session, _ := manager.Create("access-test", createTestConfig(), humanVsBot())
	original := session.LastAccessedAt

	time.Sleep(10 * time.Millisecond)

	if err := manager.UpdateLastAccessed("ACCESS-TEST"); err != nil {
		t.Fatalf("Failed to update last accessed: %v", err)
	}
	if !session.LastAccessedAt.After(original) {
		t.Error("Expected LastAccessedAt to move forward")
	}

	if err := manager.UpdateLastAccessed("missing"); err != ErrSessionNotFound {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_CleanupExpiredSessions(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	old, _ := manager.Create("old", config, humanVsBot())
	manager.Create("fresh", config, humanVsBot())
	old.LastAccessedAt = time.Now().Add(-2 * time.Hour)

	removed := manager.CleanupExpiredSessions(time.Hour)
	if removed != 1 {
		t.Errorf("Expected 1 removed session, got %d", removed)
	}
	if _, err := manager.Get("old"); err != ErrSessionNotFound {
		t.Error("Expected expired session to be gone")
	}
	if _, err := manager.Get("fresh"); err != nil {
		t.Errorf("Expected fresh session to survive: %v", err)
	}
}

func TestManager_SeatSeeds(t *testing.T) {
	manager := NewManager()
	opts := service.SessionOptions{Controllers: [2]string{"random", "random"}, Seed: 42}
	session, err := manager.Create("mirror", createTestConfig(), opts)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	if session.IsHuman(engine.PlayerOne) || session.IsHuman(engine.PlayerTwo) {
		t.Error("Expected both seats to be computer controlled")
	}
	if session.Seed != 42 {
		t.Errorf("Expected seed 42, got %d", session.Seed)
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	var wg sync.WaitGroup
	errs := make(chan error, 40)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			session, err := manager.Create("", config, humanVsBot())
			if err != nil {
				errs <- err
				return
			}
			if _, err := manager.Get(session.ID); err != nil {
				errs <- err
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Unexpected error during concurrent access: %v", err)
	}
	if manager.Count() != 20 {
		t.Errorf("Expected 20 sessions, got %d", manager.Count())
	}
}
