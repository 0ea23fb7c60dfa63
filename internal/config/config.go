package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config is the root configuration structure.
type Config struct {
	Server  ServerConfig  `json:"server"`
	Plugins PluginsConfig `json:"plugins"`
	Keymap  KeymapConfig  `json:"keymap"`
	UI      UIConfig      `json:"ui"`
	Cache   CacheConfig   `json:"cache"`
}

// ServerConfig points the client at a canvas server.
type ServerConfig struct {
	URL          string        `json:"url"`
	Token        string        `json:"token"`
	Context      string        `json:"context"` // context identifier, "default" if unset
	FetchTimeout time.Duration `json:"fetchTimeout"`
}

// PluginsConfig holds per-plugin configuration.
type PluginsConfig struct {
	Browser BrowserPluginConfig `json:"browser"`
	Events  EventsPluginConfig  `json:"events"`
}

// BrowserPluginConfig configures the context tree browser plugin.
type BrowserPluginConfig struct {
	Enabled bool `json:"enabled"`
	// ConfirmDestructive gates removals behind a confirmation dialog.
	ConfirmDestructive bool `json:"confirmDestructive"`
	// AutoCreateLayers asks the server to create missing intermediate
	// layers when inserting a deep path.
	AutoCreateLayers bool `json:"autoCreateLayers"`
	// DocumentFilters is the initial set of schema filters for the
	// documents pane. Empty means unfiltered.
	DocumentFilters []string `json:"documentFilters"`
}

// EventsPluginConfig configures the event feed plugin.
type EventsPluginConfig struct {
	Enabled bool `json:"enabled"`
	// FeedSize caps the number of events kept in the feed.
	FeedSize int `json:"feedSize"`
}

// KeymapConfig holds key binding overrides.
type KeymapConfig struct {
	Overrides map[string]string `json:"overrides"`
}

// UIConfig configures UI appearance.
type UIConfig struct {
	ShowFooter    bool `json:"showFooter"`
	ShowClock     bool `json:"showClock"`
	TreePaneWidth int  `json:"treePaneWidth"`
}

// CacheConfig configures the local snapshot cache.
type CacheConfig struct {
	Enabled bool `json:"enabled"`
	// Path to the sqlite database. Empty means
	// ~/.local/share/canvas-tui/snapshots.db.
	Path string `json:"path"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL:          "http://localhost:8001",
			Context:      "default",
			FetchTimeout: 30 * time.Second,
		},
		Plugins: PluginsConfig{
			Browser: BrowserPluginConfig{
				Enabled:            true,
				ConfirmDestructive: true,
				AutoCreateLayers:   true,
			},
			Events: EventsPluginConfig{
				Enabled:  true,
				FeedSize: 200,
			},
		},
		Keymap: KeymapConfig{
			Overrides: make(map[string]string),
		},
		UI: UIConfig{
			ShowFooter:    true,
			ShowClock:     true,
			TreePaneWidth: 40,
		},
		Cache: CacheConfig{
			Enabled: true,
		},
	}
}

// Validate checks the configuration for errors and repairs out-of-range
// values.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid server url %q", c.Server.URL)
	}
	if c.Server.Context == "" {
		c.Server.Context = "default"
	}
	if c.Server.FetchTimeout <= 0 {
		c.Server.FetchTimeout = 30 * time.Second
	}
	if c.Plugins.Events.FeedSize <= 0 {
		c.Plugins.Events.FeedSize = 200
	}
	if c.UI.TreePaneWidth < 20 {
		c.UI.TreePaneWidth = 20
	}
	return nil
}
