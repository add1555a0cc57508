// Package config provides board configuration management for Quoridor.
//
// The config package handles:
//   - Loading board configurations from JSON files
//   - Configuration validation through the engine rules
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Board configurations are stored as JSON files in the configs directory,
// one file per board. The file name without extension is the config ID:
//
//	{
//	  "name": "small",
//	  "description": "5x5 board for quick games",
//	  "width": 5,
//	  "height": 5,
//	  "walls_per_player": 3,
//	  "max_turns": 0
//	}
//
// The "standard" 9x9 board with 10 walls per player is built in and is
// served even when the directory holds no standard.json.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load specific configuration
//	gameConfig, err := manager.LoadConfig("small")
//
//	// List available configurations
//	configs, err := manager.ListConfigs()
package config
