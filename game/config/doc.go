// Package config provides board preset management for the peg solitaire server.
//
// The config package handles:
//   - Loading presets from YAML or JSON files
//   - Default preset selection
//   - Preset discovery and listing
//   - Saving presets back to disk
//
// Preset Format:
//
// A preset names the board, sets its size and carries the status messages
// shown to players:
//
//	name: Classic
//	description: Standard English cross with 32 pegs
//	size: 7
//	messages:
//	  welcome: Leave one peg in the centre to win.
//	  moved: "Peg removed. %d pegs left"
//	  win: Victory!
//	  stalled: "No moves left. %d pegs remain."
//
// A preset is addressed by its file name without extension ("classic" for
// classic.yaml). Lookups try .yaml, .yml and .json in that order.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	preset, err := manager.LoadConfig("wide")
//	defaultPreset := manager.GetDefault()
//	presets, err := manager.ListConfigs()
//
// When no classic preset exists the first valid file becomes the default,
// and an empty directory falls back to the built-in 7x7 board.
package config
