package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	configDir  = ".config/canvas-tui"
	configFile = "config.json"
)

// rawConfig is the JSON-unmarshaling intermediary. Pointer and string
// fields distinguish "absent" from zero so partial config files only
// override what they mention.
type rawConfig struct {
	Server  rawServerConfig  `json:"server"`
	Plugins rawPluginsConfig `json:"plugins"`
	Keymap  KeymapConfig     `json:"keymap"`
	UI      rawUIConfig      `json:"ui"`
	Cache   rawCacheConfig   `json:"cache"`
}

type rawServerConfig struct {
	URL          string `json:"url"`
	Token        string `json:"token"`
	Context      string `json:"context"`
	FetchTimeout string `json:"fetchTimeout"`
}

type rawPluginsConfig struct {
	Browser rawBrowserConfig `json:"browser"`
	Events  rawEventsConfig  `json:"events"`
}

type rawBrowserConfig struct {
	Enabled            *bool    `json:"enabled"`
	ConfirmDestructive *bool    `json:"confirmDestructive"`
	AutoCreateLayers   *bool    `json:"autoCreateLayers"`
	DocumentFilters    []string `json:"documentFilters"`
}

type rawEventsConfig struct {
	Enabled  *bool `json:"enabled"`
	FeedSize *int  `json:"feedSize"`
}

type rawUIConfig struct {
	ShowFooter    *bool `json:"showFooter"`
	ShowClock     *bool `json:"showClock"`
	TreePaneWidth *int  `json:"treePaneWidth"`
}

type rawCacheConfig struct {
	Enabled *bool  `json:"enabled"`
	Path    string `json:"path"`
}

// Load loads configuration from the default location.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from a specific path.
// If path is empty, uses ~/.config/canvas-tui/config.json
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = ConfigPath()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	mergeConfig(cfg, &raw)

	cfg.Cache.Path = ExpandPath(cfg.Cache.Path)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// mergeConfig merges raw config values into the config.
func mergeConfig(cfg *Config, raw *rawConfig) {
	// Server
	if raw.Server.URL != "" {
		cfg.Server.URL = strings.TrimSuffix(raw.Server.URL, "/")
	}
	if raw.Server.Token != "" {
		cfg.Server.Token = raw.Server.Token
	}
	if raw.Server.Context != "" {
		cfg.Server.Context = raw.Server.Context
	}
	if raw.Server.FetchTimeout != "" {
		if d, err := time.ParseDuration(raw.Server.FetchTimeout); err == nil {
			cfg.Server.FetchTimeout = d
		}
	}

	// Browser
	if raw.Plugins.Browser.Enabled != nil {
		cfg.Plugins.Browser.Enabled = *raw.Plugins.Browser.Enabled
	}
	if raw.Plugins.Browser.ConfirmDestructive != nil {
		cfg.Plugins.Browser.ConfirmDestructive = *raw.Plugins.Browser.ConfirmDestructive
	}
	if raw.Plugins.Browser.AutoCreateLayers != nil {
		cfg.Plugins.Browser.AutoCreateLayers = *raw.Plugins.Browser.AutoCreateLayers
	}
	if raw.Plugins.Browser.DocumentFilters != nil {
		cfg.Plugins.Browser.DocumentFilters = raw.Plugins.Browser.DocumentFilters
	}

	// Events
	if raw.Plugins.Events.Enabled != nil {
		cfg.Plugins.Events.Enabled = *raw.Plugins.Events.Enabled
	}
	if raw.Plugins.Events.FeedSize != nil {
		cfg.Plugins.Events.FeedSize = *raw.Plugins.Events.FeedSize
	}

	// Keymap
	if raw.Keymap.Overrides != nil {
		for k, v := range raw.Keymap.Overrides {
			cfg.Keymap.Overrides[k] = v
		}
	}

	// UI
	if raw.UI.ShowFooter != nil {
		cfg.UI.ShowFooter = *raw.UI.ShowFooter
	}
	if raw.UI.ShowClock != nil {
		cfg.UI.ShowClock = *raw.UI.ShowClock
	}
	if raw.UI.TreePaneWidth != nil {
		cfg.UI.TreePaneWidth = *raw.UI.TreePaneWidth
	}

	// Cache
	if raw.Cache.Enabled != nil {
		cfg.Cache.Enabled = *raw.Cache.Enabled
	}
	if raw.Cache.Path != "" {
		cfg.Cache.Path = raw.Cache.Path
	}
}

// ExpandPath expands ~ to home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir, configFile)
}

// CachePath returns the effective cache database path for cfg.
func (c *Config) CachePath() string {
	if c.Cache.Path != "" {
		return c.Cache.Path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local/share/canvas-tui/snapshots.db")
}
