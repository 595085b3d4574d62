// Command analyze prints quick, human-readable facts about the board presets
// in the project's configs directory. For each preset it summarizes the
// board dimensions, the cut-away cells, the playable cells and pegs, and
// the opening jumps together with how many replies each one leaves.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/wricardo/pegsolitaire/game/config"
	"github.com/wricardo/pegsolitaire/game/engine"
)

// Analysis holds the facts reported for one preset
type Analysis struct {
	ConfigID      string
	Name          string
	Size          int
	IllegalCells  int
	PlayableCells int
	Pegs          int
	Openings      []Opening
}

// Opening is a legal first jump and the number of jumps available after it
type Opening struct {
	Move    engine.Move
	Replies int
}

func main() {
	configDir := "configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	manager, err := config.NewManager(configDir)
	if err != nil {
		fmt.Printf("Error opening %s: %v\n", configDir, err)
		os.Exit(1)
	}

	presets, err := manager.ListConfigs()
	if err != nil {
		fmt.Printf("Error listing presets: %v\n", err)
		os.Exit(1)
	}

	for _, preset := range presets {
		fmt.Printf("\n=== Analyzing %s ===\n", preset.Filename)

		cfg, err := manager.LoadConfig(preset.ConfigID)
		if err != nil {
			fmt.Printf("Error loading preset: %v\n", err)
			continue
		}

		analysis, err := analyzeConfig(preset.ConfigID, cfg)
		if err != nil {
			fmt.Printf("Error analyzing preset: %v\n", err)
			continue
		}
		printAnalysis(os.Stdout, analysis)
	}
}

// analyzeConfig starts a game from cfg and inspects its opening position
func analyzeConfig(configID string, cfg *engine.BoardConfig) (*Analysis, error) {
	game, err := engine.NewEngine(cfg)
	if err != nil {
		return nil, err
	}

	board := game.Board()
	analysis := &Analysis{
		ConfigID:      configID,
		Name:          cfg.Name,
		Size:          cfg.Size,
		IllegalCells:  board.CountCells(engine.Illegal),
		PlayableCells: board.Size()*board.Size() - board.CountCells(engine.Illegal),
		Pegs:          board.PiecesLeft(),
	}

	for _, move := range board.LegalMoves() {
		next := board.Clone()
		if err := next.Move(move.From.Row, move.From.Col, move.To.Row, move.To.Col); err != nil {
			return nil, fmt.Errorf("opening %s: %w", move, err)
		}
		analysis.Openings = append(analysis.Openings, Opening{
			Move:    move,
			Replies: len(next.LegalMoves()),
		})
	}

	return analysis, nil
}

func printAnalysis(w io.Writer, a *Analysis) {
	fmt.Fprintf(w, "Name: %s (%s)\n", a.Name, a.ConfigID)
	fmt.Fprintf(w, "Board Size: %d x %d\n", a.Size, a.Size)
	fmt.Fprintf(w, "Cut-away cells: %d\n", a.IllegalCells)
	fmt.Fprintf(w, "Playable cells: %d\n", a.PlayableCells)
	fmt.Fprintf(w, "Pegs: %d\n", a.Pegs)

	if len(a.Openings) == 0 {
		fmt.Fprintf(w, "⚠️  WARNING: the starting board has no legal jump\n")
		return
	}

	fmt.Fprintf(w, "Opening jumps: %d\n", len(a.Openings))
	for _, o := range a.Openings {
		fmt.Fprintf(w, "   %s leaves %d replies\n", o.Move, o.Replies)
	}
}
