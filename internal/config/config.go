package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	SourceAPI      = "api"
	SourceSnapshot = "snapshot"

	DefaultAPIURL = "https://api.magicthegathering.io/v1/cards?random=true&pageSize=100&language=English"
)

// Config represents the application configuration
type Config struct {
	Source       string `toml:"source"`        // api or snapshot
	APIURL       string `toml:"api_url"`       // Cards API endpoint used by the api source
	SnapshotPath string `toml:"snapshot_path"` // Empty selects the bundled snapshot
	DefaultSort  string `toml:"default_sort"`  // asc, desc or empty
	ArtWidth     int    `toml:"art_width"`
	ArtHeight    int    `toml:"art_height"`
}

// Default returns the configuration written on first use
func Default() *Config {
	return &Config{
		Source:    SourceAPI,
		APIURL:    DefaultAPIURL,
		ArtWidth:  32,
		ArtHeight: 24,
	}
}

// configFileOverride is set by the --config flag
var configFileOverride string

// SetConfigFilePath overrides the config file location
func SetConfigFilePath(path string) {
	configFileOverride = path
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetXDGCacheHome returns XDG_CACHE_HOME or default path
func GetXDGCacheHome() string {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return xdgCache
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".cache")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	if configFileOverride != "" {
		return configFileOverride
	}
	return filepath.Join(GetXDGConfigHome(), "grimoire", "config.toml")
}

// GetStateFilePath returns the path to the file holding the display name
func GetStateFilePath() string {
	return filepath.Join(GetXDGDataHome(), "grimoire", "state.toml")
}

// GetCacheDir returns the directory for generated card art
func GetCacheDir() string {
	return filepath.Join(GetXDGCacheHome(), "grimoire")
}

// LoadConfig loads the config file
func LoadConfig() (*Config, error) {
	configPath := GetConfigFilePath()

	// Create default config if it doesn't exist
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig()
	}

	config := Default()
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the fields that have a closed set of values
func (c *Config) Validate() error {
	switch c.Source {
	case SourceAPI, SourceSnapshot:
	default:
		return fmt.Errorf("invalid source %q in config (expected %s or %s)", c.Source, SourceAPI, SourceSnapshot)
	}
	if c.Source == SourceAPI && c.APIURL == "" {
		return fmt.Errorf("api_url is required when source is %s", SourceAPI)
	}
	if c.ArtWidth <= 0 || c.ArtHeight <= 0 {
		return fmt.Errorf("art_width and art_height must be positive")
	}
	return nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig() (*Config, error) {
	config := Default()
	if err := SaveConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig writes config to the config file, creating its directory
func SaveConfig(config *Config) error {
	configPath := GetConfigFilePath()

	// Ensure the config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	return nil
}
