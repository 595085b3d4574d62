// Command validate provides a small CLI that validates board preset files
// (YAML or JSON) in a configs directory, ../configs by default. It checks:
//   - YAML/JSON structure and required fields
//   - Board size: odd, between the minimum and maximum supported sizes
//   - Required messages and their %d placeholders
//   - That an engine can be started from the preset and has an opening jump
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wricardo/pegsolitaire/game/engine"
)

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

// validateConfig loads and validates a single preset file. Unlike the
// engine's own validation it reports every problem it finds, not just the
// first.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	config, err := engine.DecodeBoardConfig(data, filepath.Ext(filePath))
	if err != nil {
		result.fail("Invalid preset: %v", err)
		return result
	}

	if config.Name == "" {
		result.fail("Missing required field: name")
	}
	if config.Description == "" {
		result.fail("Missing required field: description")
	}

	// Validate size
	switch {
	case config.Size < engine.MinBoardSize:
		result.fail("size must be at least %d, got %d", engine.MinBoardSize, config.Size)
	case config.Size%2 == 0:
		result.fail("size must be odd, got %d", config.Size)
	case config.Size > engine.MaxBoardSize:
		result.fail("size must be at most %d, got %d", engine.MaxBoardSize, config.Size)
	}

	// Validate messages
	requiredMessages := map[string]string{
		"welcome": config.Messages.Welcome,
		"win":     config.Messages.Win,
		"stalled": config.Messages.Stalled,
	}
	for _, key := range []string{"welcome", "win", "stalled"} {
		if requiredMessages[key] == "" {
			result.fail("Missing required message: %s", key)
		}
	}

	// Messages that report the peg count take exactly one %d
	countMessages := map[string]string{
		"moved":   config.Messages.Moved,
		"stalled": config.Messages.Stalled,
	}
	for _, key := range []string{"moved", "stalled"} {
		msg := countMessages[key]
		if msg == "" {
			continue
		}
		if n := strings.Count(msg, "%d"); n != 1 {
			result.fail("Message %s must contain exactly one %%d, found %d", key, n)
		}
	}

	if !result.Valid {
		return result
	}

	// The engine has the final say
	game, err := engine.NewEngine(config)
	if err != nil {
		result.fail("Engine rejected preset: %v", err)
		return result
	}

	state := game.GetState()
	if state.LegalMoveCount == 0 {
		result.fail("Starting board has no legal jump")
		return result
	}

	result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Board: %dx%d", config.Size, config.Size))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Playable cells: %d", state.PiecesLeft+1))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Pegs: %d", state.PiecesLeft))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Opening jumps: %d", state.LegalMoveCount))

	return result
}

// presetFiles lists the YAML and JSON files in dir, sorted by name
func presetFiles(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml", "*.json"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

// main scans the configs directory (first argument, default ../configs)
// for presets and validates each one, printing a concise report and exiting
// with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := presetFiles(configDir)
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No presets found in %s\n", configDir)
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
