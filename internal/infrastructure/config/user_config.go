package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// UserConfig represents user preferences stored in ~/.blueprints/config.json.
// It stores only preferences, never the session token.
type UserConfig struct {
	// Mode used by evaluate when --mode is not given
	DefaultMode string `json:"default_mode,omitempty"`

	// Input file used by evaluate when no file argument is given
	DefaultInput string `json:"default_input,omitempty"`
}

// UserConfigHandler manages loading and saving user configuration
type UserConfigHandler struct {
	configPath string
}

// NewUserConfigHandler creates a handler for ~/.blueprints/config.json
func NewUserConfigHandler() (*UserConfigHandler, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return NewUserConfigHandlerAt(filepath.Join(homeDir, ".blueprints"))
}

// NewUserConfigHandlerAt creates a handler storing config.json in dir
func NewUserConfigHandlerAt(dir string) (*UserConfigHandler, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	return &UserConfigHandler{
		configPath: filepath.Join(dir, "config.json"),
	}, nil
}

// Load reads the user config from disk. A missing file is an empty config.
func (h *UserConfigHandler) Load() (*UserConfig, error) {
	data, err := os.ReadFile(h.configPath)
	if os.IsNotExist(err) {
		return &UserConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read user config: %w", err)
	}

	var config UserConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse user config: %w", err)
	}

	return &config, nil
}

// Save writes the user config to disk
func (h *UserConfigHandler) Save(config *UserConfig) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}

	if err := os.WriteFile(h.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write user config: %w", err)
	}

	return nil
}

// SetDefaultMode stores the preferred evaluation mode
func (h *UserConfigHandler) SetDefaultMode(mode string) error {
	config, err := h.Load()
	if err != nil {
		return err
	}

	config.DefaultMode = mode
	return h.Save(config)
}

// SetDefaultInput stores the preferred input file
func (h *UserConfigHandler) SetDefaultInput(path string) error {
	config, err := h.Load()
	if err != nil {
		return err
	}

	config.DefaultInput = path
	return h.Save(config)
}

// Clear removes every preference
func (h *UserConfigHandler) Clear() error {
	return h.Save(&UserConfig{})
}

// GetConfigPath returns the path to the user config file
func (h *UserConfigHandler) GetConfigPath() string {
	return h.configPath
}
