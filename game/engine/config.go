package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// BoardConfig describes a board preset loaded from YAML or JSON
type BoardConfig struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Size        int    `json:"size" yaml:"size"`
	Messages    struct {
		Welcome string `json:"welcome" yaml:"welcome"`
		Moved   string `json:"moved" yaml:"moved"`
		Win     string `json:"win" yaml:"win"`
		Stalled string `json:"stalled" yaml:"stalled"`
		Illegal string `json:"illegal" yaml:"illegal"`
	} `json:"messages" yaml:"messages"`
}

// ValidateBoardConfig validates a board preset
func ValidateBoardConfig(config *BoardConfig) error {
	if config == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfiguration)
	}
	if config.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidConfiguration)
	}
	if config.Description == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidConfiguration)
	}

	if err := ValidateBoardSize(config.Size); err != nil {
		return err
	}
	if config.Size > MaxBoardSize {
		return fmt.Errorf("%w: size must be at most %d, got %d", ErrInvalidConfiguration, MaxBoardSize, config.Size)
	}

	if config.Messages.Welcome == "" {
		return fmt.Errorf("%w: messages.welcome is required", ErrInvalidConfiguration)
	}
	if config.Messages.Win == "" {
		return fmt.Errorf("%w: messages.win is required", ErrInvalidConfiguration)
	}
	if config.Messages.Stalled == "" {
		return fmt.Errorf("%w: messages.stalled is required", ErrInvalidConfiguration)
	}

	// Format strings
	if config.Messages.Moved != "" && !strings.Contains(config.Messages.Moved, "%d") {
		return fmt.Errorf("%w: messages.moved must contain %%d for pieces left", ErrInvalidConfiguration)
	}
	if !strings.Contains(config.Messages.Stalled, "%d") {
		return fmt.Errorf("%w: messages.stalled must contain %%d for pieces left", ErrInvalidConfiguration)
	}

	return nil
}

// DecodeBoardConfig parses a preset; ext selects the format (".json", ".yaml", ".yml")
func DecodeBoardConfig(data []byte, ext string) (*BoardConfig, error) {
	var config BoardConfig
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	return &config, nil
}

// LoadBoardConfig loads and validates a board preset file
func LoadBoardConfig(filename string) (*BoardConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config, err := DecodeBoardConfig(data, filepath.Ext(filename))
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filename, err)
	}

	if err := ValidateBoardConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultBoardConfig returns the standard 7x7 English board preset
func DefaultBoardConfig() *BoardConfig {
	config := &BoardConfig{
		Name:        "Classic",
		Description: "Standard English cross with 32 pegs",
		Size:        MinBoardSize,
	}
	config.Messages.Welcome = "Jump pegs orthogonally over a neighbour into an empty hole. Leave one peg to win."
	config.Messages.Moved = "Peg removed. %d pegs left"
	config.Messages.Win = "Victory! A single peg remains."
	config.Messages.Stalled = "No moves left. %d pegs remain."
	config.Messages.Illegal = "That move is not allowed"
	return config
}
