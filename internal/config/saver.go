package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// saveConfig is the JSON-marshaling intermediary that uses string durations.
type saveConfig struct {
	Server  saveServerConfig `json:"server"`
	Plugins PluginsConfig    `json:"plugins"`
	Keymap  KeymapConfig     `json:"keymap"`
	UI      UIConfig         `json:"ui"`
	Cache   CacheConfig      `json:"cache"`
}

type saveServerConfig struct {
	URL          string `json:"url"`
	Token        string `json:"token,omitempty"`
	Context      string `json:"context"`
	FetchTimeout string `json:"fetchTimeout"`
}

// Save writes the config to ~/.config/canvas-tui/config.json
func Save(cfg *Config) error {
	path := ConfigPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	sc := saveConfig{
		Server: saveServerConfig{
			URL:          cfg.Server.URL,
			Token:        cfg.Server.Token,
			Context:      cfg.Server.Context,
			FetchTimeout: cfg.Server.FetchTimeout.String(),
		},
		Plugins: cfg.Plugins,
		Keymap:  cfg.Keymap,
		UI:      cfg.UI,
		Cache:   cfg.Cache,
	}
	data, err := json.MarshalIndent(sc, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
