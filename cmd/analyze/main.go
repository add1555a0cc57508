// Command analyze prints quick, human-readable statistics about the board
// configurations in a config directory: dimensions, wall supply, opening
// path lengths, how many moves and walls the first player can choose from,
// and how the reference game between two path followers ends.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/wricardo/mcp-training/quoridor/game/config"
	"github.com/wricardo/mcp-training/quoridor/game/engine"
	"github.com/wricardo/mcp-training/quoridor/game/policy"
)

// referenceTurnLimit bounds the reference game on boards without a turn limit
const referenceTurnLimit = 10000

// Analysis summarizes one board configuration
type Analysis struct {
	ConfigID       string
	Name           string
	Width, Height  int
	WallsPerPlayer int
	MaxTurns       int
	PathLengths    [2]int
	OpeningMoves   int
	OpeningWalls   int
	// Reference game between two move_only players
	ReferenceWinner engine.Seat
	ReferenceTurns  int
	ReferenceErr    error
	Warnings        []string
}

func main() {
	dir := flag.String("config-dir", "configs", "Directory containing board configurations")
	flag.Parse()

	if err := run(os.Stdout, *dir); err != nil {
		fmt.Fprintf(os.Stderr, "analyze: %v\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer, dir string) error {
	manager, err := config.NewManager(dir)
	if err != nil {
		return err
	}

	infos, err := manager.ListConfigs()
	if err != nil {
		return err
	}

	for _, info := range infos {
		fmt.Fprintf(w, "\n=== Analyzing %s ===\n", info.ConfigID)
		cfg, err := manager.LoadConfig(info.ConfigID)
		if err != nil {
			fmt.Fprintf(w, "Error loading config: %v\n", err)
			continue
		}
		analysis, err := analyzeConfig(info.ConfigID, cfg)
		if err != nil {
			fmt.Fprintf(w, "Error analyzing config: %v\n", err)
			continue
		}
		printAnalysis(w, analysis)
	}
	return nil
}

func analyzeConfig(id string, cfg *engine.GameConfig) (*Analysis, error) {
	e, err := engine.NewEngine(cfg)
	if err != nil {
		return nil, err
	}

	a := &Analysis{
		ConfigID:       id,
		Name:           cfg.Name,
		Width:          cfg.Width,
		Height:         cfg.Height,
		WallsPerPlayer: cfg.WallsPerPlayer,
		MaxTurns:       cfg.MaxTurns,
		PathLengths:    engine.PathLengths(e.GetState()),
		OpeningMoves:   len(e.LegalMoves()),
		OpeningWalls:   len(e.LegalWalls()),
	}

	reference := *cfg
	if reference.MaxTurns == 0 {
		reference.MaxTurns = referenceTurnLimit
	}
	a.ReferenceWinner, a.ReferenceTurns, a.ReferenceErr = referenceGame(&reference)

	if cfg.Width%2 == 0 {
		a.Warnings = append(a.Warnings, fmt.Sprintf("even width: pawns start at column %d, right of centre", cfg.Width/2))
	}
	if cfg.WallsPerPlayer == 0 {
		a.Warnings = append(a.Warnings, "no walls: the game is a pure race decided by board height")
	}
	if a.ReferenceErr != nil && cfg.MaxTurns > 0 {
		a.Warnings = append(a.Warnings, fmt.Sprintf("max_turns %d ends the reference game before anyone wins", cfg.MaxTurns))
	}
	return a, nil
}

func referenceGame(cfg *engine.GameConfig) (engine.Seat, int, error) {
	e, err := engine.NewEngine(cfg)
	if err != nil {
		return 0, 0, err
	}
	one, err := policy.New("move_only", 1)
	if err != nil {
		return 0, 0, err
	}
	two, err := policy.New("move_only", 2)
	if err != nil {
		return 0, 0, err
	}
	result, err := e.Play(one, two)
	if err != nil {
		return 0, 0, err
	}
	return result.Winner, result.Turns, nil
}

func printAnalysis(w io.Writer, a *Analysis) {
	fmt.Fprintf(w, "Name: %s\n", a.Name)
	fmt.Fprintf(w, "Board: %d x %d\n", a.Width, a.Height)
	fmt.Fprintf(w, "Walls per player: %d\n", a.WallsPerPlayer)
	if a.MaxTurns > 0 {
		fmt.Fprintf(w, "Max turns: %d\n", a.MaxTurns)
	}
	fmt.Fprintf(w, "Opening path lengths: %d / %d\n", a.PathLengths[0], a.PathLengths[1])
	fmt.Fprintf(w, "Opening choices: %d moves, %d walls\n", a.OpeningMoves, a.OpeningWalls)

	if a.ReferenceErr != nil {
		fmt.Fprintf(w, "Reference game: %v\n", a.ReferenceErr)
	} else {
		fmt.Fprintf(w, "Reference game: %s wins in %d turns\n", a.ReferenceWinner, a.ReferenceTurns)
	}

	if len(a.Warnings) == 0 {
		fmt.Fprintf(w, "✅ No issues found\n")
		return
	}
	for _, warning := range a.Warnings {
		fmt.Fprintf(w, "⚠️  %s\n", warning)
	}
}
