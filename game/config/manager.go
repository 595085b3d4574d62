package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/wricardo/pegsolitaire/game/engine"
	"github.com/wricardo/pegsolitaire/game/service"
)

// DefaultConfigName is the preset used when a session names none
const DefaultConfigName = "classic"

var (
	ErrConfigNotFound = service.ErrConfigNotFound
	ErrInvalidConfig  = engine.ErrInvalidConfiguration
)

// supportedExts lists preset file extensions in lookup order
var supportedExts = []string{".yaml", ".yml", ".json"}

// Manager handles board preset loading and caching
type Manager struct {
	configDir     string
	defaultConfig *engine.BoardConfig
	configs       map[string]*engine.BoardConfig
	mu            sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(configDir string) (*Manager, error) {
	// Ensure config directory exists
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*engine.BoardConfig),
	}

	m.loadDefaultConfig()
	return m, nil
}

// LoadConfig loads a preset by ID. The ID is the file name with or without
// its extension. Presets are cached under the name they were requested by,
// so "classic" and "classic.json" never share an entry.
func (m *Manager) LoadConfig(name string) (*engine.BoardConfig, error) {
	if _, err := configID(name); err != nil {
		return nil, err
	}

	m.mu.RLock()
	// Check cache first
	if config, exists := m.configs[name]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if config, exists := m.configs[name]; exists {
		return config, nil
	}

	config, err := m.readConfig(name)
	if err != nil {
		return nil, err
	}

	m.configs[name] = config
	return config, nil
}

// ListConfigs returns information about all valid presets in the directory.
// When several files share an ID only the one the bare ID resolves to is
// listed.
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var configs []*service.ConfigInfo
	seen := make(map[string]bool)

	for _, entry := range entries {
		if entry.IsDir() || !isPresetFile(entry.Name()) {
			continue
		}

		id := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if seen[id] {
			continue
		}
		seen[id] = true

		filename, err := m.presetFile(id)
		if err != nil {
			continue
		}
		config, err := m.LoadConfig(id)
		if err != nil {
			// Skip invalid configs
			continue
		}

		configs = append(configs, &service.ConfigInfo{
			Filename:    filename,
			ConfigID:    id,
			Name:        config.Name,
			Description: config.Description,
			Size:        config.Size,
			Pegs:        pegCount(config.Size),
		})
	}

	return configs, nil
}

// GetDefault returns the default preset
func (m *Manager) GetDefault() *engine.BoardConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault sets the default preset by ID
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = config
	return nil
}

// ReloadConfig drops a preset from the cache and reads it again from disk
func (m *Manager) ReloadConfig(name string) error {
	id, err := configID(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.forget(id)
	m.mu.Unlock()

	_, err = m.LoadConfig(name)
	return err
}

// RefreshCache clears all cached presets and reloads the default
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	m.configs = make(map[string]*engine.BoardConfig)
	m.mu.Unlock()

	m.loadDefaultConfig()
}

// ValidateConfig checks a preset without saving it
func (m *Manager) ValidateConfig(config *engine.BoardConfig) error {
	return engine.ValidateBoardConfig(config)
}

// Count returns the number of cached presets
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.configs)
}

// SaveConfig writes a preset to disk. The extension of name picks the
// format; without one the preset is written as YAML.
func (m *Manager) SaveConfig(name string, config *engine.BoardConfig) error {
	id, err := configID(name)
	if err != nil {
		return err
	}

	// Validate config before saving
	if err := engine.ValidateBoardConfig(config); err != nil {
		return err
	}

	filename := name
	if filepath.Ext(name) == "" {
		filename = name + ".yaml"
	}

	var data []byte
	if filepath.Ext(filename) == ".json" {
		data, err = json.MarshalIndent(config, "", "  ")
	} else {
		data, err = yaml.Marshal(config)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	configPath := filepath.Join(m.configDir, filename)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	// Update cache
	m.mu.Lock()
	m.forget(id)
	m.configs[filename] = config
	if resolved, err := m.presetFile(id); err == nil && resolved == filename {
		m.configs[id] = config
	}
	m.mu.Unlock()

	return nil
}

// readConfig finds the preset file for name and decodes it. Callers hold the
// write lock.
func (m *Manager) readConfig(name string) (*engine.BoardConfig, error) {
	filename, err := m.presetFile(name)
	if err != nil {
		return nil, err
	}

	config, err := engine.LoadBoardConfig(filepath.Join(m.configDir, filename))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", filename, err)
	}
	return config, nil
}

// presetFile maps a preset name to its file. A name without an extension
// resolves to the first existing file in supportedExts order.
func (m *Manager) presetFile(name string) (string, error) {
	if isPresetFile(name) {
		return name, nil
	}
	for _, ext := range supportedExts {
		info, err := os.Stat(filepath.Join(m.configDir, name+ext))
		if err == nil && !info.IsDir() {
			return name + ext, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrConfigNotFound, name)
}

// forget drops every cache entry for a preset ID. Callers hold the write lock.
func (m *Manager) forget(id string) {
	for key := range m.configs {
		if keyID, _ := configID(key); keyID == id {
			delete(m.configs, key)
		}
	}
}

// loadDefaultConfig loads classic.yaml, else the first valid preset, else the
// built-in board
func (m *Manager) loadDefaultConfig() {
	config, err := m.LoadConfig(DefaultConfigName)
	if err != nil {
		configs, listErr := m.ListConfigs()
		if listErr == nil && len(configs) > 0 {
			config, err = m.LoadConfig(configs[0].ConfigID)
		}
	}
	if err != nil || config == nil {
		config = engine.DefaultBoardConfig()
	}

	m.mu.Lock()
	m.defaultConfig = config
	m.mu.Unlock()
}

// configID strips the extension from a preset name and rejects names that
// would escape the config directory
func configID(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return "", fmt.Errorf("%w: invalid preset name %q", ErrInvalidConfig, name)
	}
	if isPresetFile(name) {
		return strings.TrimSuffix(name, filepath.Ext(name)), nil
	}
	return name, nil
}

func isPresetFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, supported := range supportedExts {
		if ext == supported {
			return true
		}
	}
	return false
}

// pegCount is the number of pegs on a fresh board of the given size
func pegCount(size int) int {
	board, err := engine.NewBoard(size)
	if err != nil {
		return 0
	}
	return board.PiecesLeft()
}
