package config

import (
	"encoding/json"
	"fmt"
	"neoshelf/log"
	"os"
	"path/filepath"
)

const ConfigFileName = "config.json"

// GetConfigDir returns the path to the application's configuration directory.
// NEOSHELF_HOME overrides the default of ~/.neoshelf.
func GetConfigDir() (string, error) {
	if dir := os.Getenv("NEOSHELF_HOME"); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".neoshelf"), nil
}

// Config represents the application configuration
type Config struct {
	// IconSize is the preferred button cell size, in pixels on a graphical
	// host and in character cells in the terminal UI.
	IconSize int `json:"icon_size"`
	// ShowLabels controls whether button overlay labels are drawn
	ShowLabels bool `json:"show_labels"`
	// DefaultLayout is the layout used for newly created shelves
	DefaultLayout string `json:"default_layout"`
	// HoldThresholdMs is how long the pointer must stay down before a press
	// counts as a hold, in milliseconds
	HoldThresholdMs int `json:"hold_threshold_ms"`
	// DoubleClickDelayMs is the window in which a second click upgrades a
	// single click to a double click, in milliseconds
	DoubleClickDelayMs int `json:"double_click_delay_ms"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		IconSize:           55,
		ShowLabels:         true,
		DefaultLayout:      "flow",
		HoldThresholdMs:    300,
		DoubleClickDelayMs: 200,
	}
}

// LoadConfig loads the configuration from disk. If it cannot be done, we return the default configuration.
func LoadConfig() *Config {
	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultConfig()
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			defaultCfg := DefaultConfig()
			if saveErr := SaveConfig(defaultCfg); saveErr != nil {
				log.WarningLog.Printf("failed to save default config: %v", saveErr)
			}
			return defaultCfg
		}

		log.WarningLog.Printf("failed to read config file: %v", err)
		return DefaultConfig()
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		log.ErrorLog.Printf("failed to parse config file: %v", err)
		return DefaultConfig()
	}

	// Guard against zero timings from hand-edited files
	if config.HoldThresholdMs <= 0 {
		config.HoldThresholdMs = DefaultConfig().HoldThresholdMs
	}
	if config.DoubleClickDelayMs <= 0 {
		config.DoubleClickDelayMs = DefaultConfig().DoubleClickDelayMs
	}

	return &config
}

// SaveConfig saves the configuration to disk
func SaveConfig(config *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}
