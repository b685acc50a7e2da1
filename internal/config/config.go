package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config is the persistent application configuration
type Config struct {
	// Server settings
	Server ServerConfig `json:"server"`

	// UI Preferences
	UI UIConfig `json:"ui"`
}

// ServerConfig holds Topic Analyzer service settings
type ServerConfig struct {
	BaseURL        string `json:"base_url"`
	SearchLimit    int    `json:"search_limit"`    // posts per search request
	TimeoutSeconds int    `json:"timeout_seconds"` // per-request HTTP timeout
}

// UIConfig holds UI preferences
type UIConfig struct {
	Theme       string `json:"theme"`
	ShowHints   bool   `json:"show_hints"`   // key hint bar at the bottom
	DensityMode string `json:"density_mode"` // "comfortable" or "compact"
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL:        "http://localhost:8000",
			SearchLimit:    10,
			TimeoutSeconds: 30,
		},
		UI: UIConfig{
			Theme:       "dark",
			ShowHints:   true,
			DensityMode: "comfortable",
		},
	}
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".redlens", "config.json")
}

// Load reads config from disk, or returns defaults
func Load() (*Config, error) {
	path := ConfigPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			cfg.AutoPopulateFromEnv()
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), nil
	}

	cfg.applyFloors()
	return &cfg, nil
}

// Save writes config to disk
func (c *Config) Save() error {
	path := ConfigPath()

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// AutoPopulateFromEnv fills in server settings from environment variables
func (c *Config) AutoPopulateFromEnv() {
	if url := os.Getenv("REDLENS_SERVER"); url != "" {
		c.Server.BaseURL = url
	}
}

// applyFloors resets out-of-range values to defaults so a hand-edited
// config file cannot produce a zero timeout or zero-post searches.
func (c *Config) applyFloors() {
	def := DefaultConfig()
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = def.Server.BaseURL
	}
	if c.Server.SearchLimit <= 0 {
		c.Server.SearchLimit = def.Server.SearchLimit
	}
	if c.Server.TimeoutSeconds <= 0 {
		c.Server.TimeoutSeconds = def.Server.TimeoutSeconds
	}
}
