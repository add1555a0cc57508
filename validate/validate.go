// Command validate provides a small CLI that validates board configuration
// JSON files in a config directory (../configs by default). It checks:
//   - JSON structure, unknown keys and required fields
//   - The file name can be used as a config ID
//   - Board dimensions, wall supply and turn limit ranges
//   - Connectivity: both pawns can reach their goal rows from the start
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/wricardo/mcp-training/quoridor/game/engine"
)

var fileIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// validateConfig loads and validates a single configuration JSON file
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	if id := strings.TrimSuffix(result.File, ".json"); !fileIDPattern.MatchString(id) {
		result.fail("File name %q is not a usable config ID (letters, digits, '-' and '_' only)", id)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var config engine.GameConfig
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&config); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}

	if err := engine.ValidateGameConfig(&config); err != nil {
		result.fail("%s", strings.TrimPrefix(err.Error(), "config validation: "))
		return result
	}

	state := engine.InitGameStateFromConfig(&config)
	connectivity := validateConnectivity(state.Grid, state.Players)
	if !connectivity.Valid {
		result.Valid = false
	}
	result.Errors = append(result.Errors, connectivity.Errors...)

	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Board: %dx%d", config.Width, config.Height))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Walls per player: %d", config.WallsPerPlayer))
		if config.MaxTurns > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Max turns: %d", config.MaxTurns))
		} else {
			result.Errors = append(result.Errors, "✓ Max turns: unlimited")
		}
	}

	return result
}

// validateConnectivity ensures each player has a path from their pawn to
// their goal row on grid
func validateConnectivity(grid *engine.Grid, players [2]engine.Player) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	if grid == nil || grid.Size() == 0 {
		result.fail("Cannot validate connectivity: empty board")
		return result
	}

	for _, seat := range []engine.Seat{engine.PlayerOne, engine.PlayerTwo} {
		self, other := players[seat], players[seat.Other()]
		if !grid.InBounds(self.X, self.Y) {
			result.fail("Connectivity failure: %s starts off the board at (%d,%d)", seat, self.X, self.Y)
			continue
		}
		if !engine.HasPath(grid, self, other) {
			result.fail("Connectivity failure: %s cannot reach row %d", seat, self.GoalY)
			continue
		}
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Connectivity: %s reaches row %d in %d cells",
			seat, self.GoalY, engine.PathLength(grid, self, other)))
	}

	return result
}

// main validates every *.json file in the directory given as the first
// argument, printing a concise report and exiting with non-zero status if any
// are invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No configurations found in %s\n", configDir)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
