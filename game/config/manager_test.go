package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/wricardo/mcp-training/quoridor/game/engine"
)

func createValidConfig(name string) *engine.GameConfig {
	return &engine.GameConfig{
		Name:           name,
		Description:    "Test configuration",
		Width:          5,
		Height:         5,
		WallsPerPlayer: 3,
	}
}

func writeConfigFile(t *testing.T, dir, name string, config *engine.GameConfig) {
	t.Helper()
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}

	path := filepath.Join(dir, name+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
}

func TestNewManager(t *testing.T) {
	t.Run("valid directory", func(t *testing.T) {
		dir := t.TempDir()
		writeConfigFile(t, dir, "standard", &engine.GameConfig{Name: "Standard", Width: 9, Height: 9, WallsPerPlayer: 8})

		manager, err := NewManager(dir)
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		if manager.GetDefault().WallsPerPlayer != 8 {
			t.Errorf("Expected standard.json to be the default, got %+v", manager.GetDefault())
		}
	})

	t.Run("non-existent directory", func(t *testing.T) {
		_, err := NewManager("/non/existent/path")
		if err == nil {
			t.Error("Expected error for non-existent directory")
		}
	})

	t.Run("empty directory uses built-in board", func(t *testing.T) {
		manager, err := NewManager(t.TempDir())
		if err != nil {
			t.Fatalf("NewManager should succeed without config files, got error: %v", err)
		}

		defaultConfig := manager.GetDefault()
		if defaultConfig == nil || defaultConfig.Width != 9 || defaultConfig.WallsPerPlayer != 10 {
			t.Errorf("Expected built-in 9x9 default, got %+v", defaultConfig)
		}
	})
}

func TestManager_LoadConfig(t *testing.T) {
	dir := t.TempDir()
	small := createValidConfig("Small")
	writeConfigFile(t, dir, "small", small)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	t.Run("load existing config", func(t *testing.T) {
		config, err := manager.LoadConfig("small")
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		if config.Name != "Small" || config.Width != 5 {
			t.Errorf("Unexpected config %+v", config)
		}
	})

	t.Run("load with .json extension", func(t *testing.T) {
		config, err := manager.LoadConfig("small.json")
		if err != nil {
			t.Fatalf("Failed to load config with extension: %v", err)
		}
		if config.Name != "Small" {
			t.Errorf("Expected config name 'Small', got '%s'", config.Name)
		}
	})

	t.Run("load from cache", func(t *testing.T) {
		config1, _ := manager.LoadConfig("small")
		config2, err := manager.LoadConfig("small")
		if err != nil {
			t.Fatalf("Failed to load config from cache: %v", err)
		}
		if config1 != config2 {
			t.Error("Expected config to be loaded from cache")
		}
	})

	t.Run("load non-existent config", func(t *testing.T) {
		_, err := manager.LoadConfig("non-existent")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("Expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("reject path traversal", func(t *testing.T) {
		for _, name := range []string{"../secret", "a/b", "", "."} {
			if _, err := manager.LoadConfig(name); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig for %q, got %v", name, err)
			}
		}
	})

	t.Run("load invalid config", func(t *testing.T) {
		err := os.WriteFile(filepath.Join(dir, "invalid.json"), []byte(`{"name": "bad", "width": 1, "height": 1}`), 0644)
		if err != nil {
			t.Fatalf("Failed to write invalid config: %v", err)
		}

		_, err = manager.LoadConfig("invalid")
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("load malformed JSON", func(t *testing.T) {
		err := os.WriteFile(filepath.Join(dir, "malformed.json"), []byte(`{"name": "Malformed", invalid json}`), 0644)
		if err != nil {
			t.Fatalf("Failed to write malformed config: %v", err)
		}

		_, err = manager.LoadConfig("malformed")
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("standard is always available", func(t *testing.T) {
		config, err := manager.LoadConfig(DefaultConfigID)
		if err != nil {
			t.Fatalf("Failed to load standard config: %v", err)
		}
		if config.Width != engine.DefaultBoardSize {
			t.Errorf("Expected width %d, got %d", engine.DefaultBoardSize, config.Width)
		}
	})
}

func TestManager_ListConfigs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"small", "tall", "wide"} {
		writeConfigFile(t, dir, name, createValidConfig(name))
	}
	os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("readme"), 0644)
	os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0644)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	configList, err := manager.ListConfigs()
	if err != nil {
		t.Fatalf("Failed to list configs: %v", err)
	}

	want := []string{"small", "standard", "tall", "wide"}
	if len(configList) != len(want) {
		t.Fatalf("Expected %d configs, got %d", len(want), len(configList))
	}
	for i, id := range want {
		if configList[i].ConfigID != id {
			t.Errorf("Expected config %d to be %s, got %s", i, id, configList[i].ConfigID)
		}
	}
	if configList[1].Filename != "" || configList[1].Width != 9 {
		t.Errorf("Expected built-in standard entry, got %+v", configList[1])
	}
	if configList[0].Filename != "small.json" || configList[0].WallsPerPlayer != 3 {
		t.Errorf("Unexpected small entry %+v", configList[0])
	}
}

func TestManager_SaveConfig(t *testing.T) {
	dir := t.TempDir()
	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	config := createValidConfig("Custom")
	config.MaxTurns = 300
	if err := manager.SaveConfig("custom", config); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "custom.json")); err != nil {
		t.Errorf("Expected custom.json on disk: %v", err)
	}

	manager.RefreshCache()
	loaded, err := manager.LoadConfig("custom")
	if err != nil {
		t.Fatalf("Failed to load saved config: %v", err)
	}
	if loaded.MaxTurns != 300 {
		t.Errorf("Expected max turns 300, got %d", loaded.MaxTurns)
	}

	if err := manager.SaveConfig("broken", &engine.GameConfig{Name: "broken"}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
	if err := manager.SaveConfig("../escape", config); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for bad name, got %v", err)
	}
}

func TestManager_ReloadConfig(t *testing.T) {
	dir := t.TempDir()
	config := createValidConfig("Changeable")
	writeConfigFile(t, dir, "changeable", config)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	loaded, _ := manager.LoadConfig("changeable")
	if loaded.WallsPerPlayer != 3 {
		t.Errorf("Expected initial walls 3, got %d", loaded.WallsPerPlayer)
	}

	config.WallsPerPlayer = 5
	writeConfigFile(t, dir, "changeable", config)

	if err := manager.ReloadConfig("changeable"); err != nil {
		t.Fatalf("Failed to reload config: %v", err)
	}

	reloaded, _ := manager.LoadConfig("changeable")
	if reloaded.WallsPerPlayer != 5 {
		t.Errorf("Expected reloaded walls 5, got %d", reloaded.WallsPerPlayer)
	}
}

func TestManager_SetDefault(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "small", createValidConfig("Small"))

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	if err := manager.SetDefault("small"); err != nil {
		t.Fatalf("Failed to set default: %v", err)
	}
	if manager.GetDefault().Name != "Small" {
		t.Errorf("Expected default 'Small', got '%s'", manager.GetDefault().Name)
	}
	if err := manager.SetDefault("missing"); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("Expected ErrConfigNotFound, got %v", err)
	}
}

func TestManager_ValidateConfig(t *testing.T) {
	manager, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	if err := manager.ValidateConfig(createValidConfig("ok")); err != nil {
		t.Errorf("Expected valid config to pass validation: %v", err)
	}

	config := createValidConfig("")
	if err := manager.ValidateConfig(config); err == nil {
		t.Error("Expected error for config missing name")
	}

	config = createValidConfig("tiny")
	config.Width = 2
	if err := manager.ValidateConfig(config); err == nil {
		t.Error("Expected error for invalid width")
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	dir := t.TempDir()
	for i := 1; i <= 5; i++ {
		name := fmt.Sprintf("config%d", i)
		writeConfigFile(t, dir, name, createValidConfig(name))
	}

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 50)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			if _, err := manager.LoadConfig(fmt.Sprintf("config%d", id%5+1)); err != nil {
				errs <- err
			}
		}(i)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Unexpected error during concurrent access: %v", err)
	}
	if manager.Count() != 5 {
		t.Errorf("Expected 5 configs in cache, got %d", manager.Count())
	}
}
