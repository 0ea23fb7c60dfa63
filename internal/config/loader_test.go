package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	def := Default()
	if cfg.Server.URL != def.Server.URL {
		t.Errorf("URL = %q, want default %q", cfg.Server.URL, def.Server.URL)
	}
	if !cfg.Plugins.Browser.ConfirmDestructive {
		t.Error("ConfirmDestructive default should be true")
	}
}

func TestLoadFromPartialOverride(t *testing.T) {
	path := writeConfig(t, `{
		"server": {"url": "https://canvas.example.com/", "token": "tok-1", "fetchTimeout": "5s"},
		"plugins": {"browser": {"confirmDestructive": false}},
		"ui": {"treePaneWidth": 55}
	}`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Server.URL != "https://canvas.example.com" {
		t.Errorf("URL = %q, trailing slash not trimmed", cfg.Server.URL)
	}
	if cfg.Server.Token != "tok-1" {
		t.Errorf("Token = %q", cfg.Server.Token)
	}
	if cfg.Server.FetchTimeout != 5*time.Second {
		t.Errorf("FetchTimeout = %v", cfg.Server.FetchTimeout)
	}
	if cfg.Plugins.Browser.ConfirmDestructive {
		t.Error("ConfirmDestructive override not applied")
	}
	// Untouched fields keep defaults.
	if !cfg.Plugins.Browser.Enabled {
		t.Error("Browser.Enabled default lost")
	}
	if cfg.Server.Context != "default" {
		t.Errorf("Context = %q, want default", cfg.Server.Context)
	}
	if cfg.UI.TreePaneWidth != 55 {
		t.Errorf("TreePaneWidth = %d", cfg.UI.TreePaneWidth)
	}
	if !cfg.UI.ShowFooter {
		t.Error("ShowFooter default lost")
	}
}

func TestLoadFromFalseOverridesSurvive(t *testing.T) {
	path := writeConfig(t, `{"ui": {"showFooter": false, "showClock": false}}`)
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.UI.ShowFooter || cfg.UI.ShowClock {
		t.Error("explicit false overrides were dropped")
	}
}

func TestLoadFromInvalidURL(t *testing.T) {
	path := writeConfig(t, `{"server": {"url": "not a url"}}`)
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected validation error for bad URL")
	}
}

func TestLoadFromBadJSON(t *testing.T) {
	path := writeConfig(t, `{`)
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestValidateRepairsRanges(t *testing.T) {
	cfg := Default()
	cfg.Server.FetchTimeout = -1
	cfg.UI.TreePaneWidth = 3
	cfg.Plugins.Events.FeedSize = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Server.FetchTimeout != 30*time.Second {
		t.Errorf("FetchTimeout = %v", cfg.Server.FetchTimeout)
	}
	if cfg.UI.TreePaneWidth != 20 {
		t.Errorf("TreePaneWidth = %d", cfg.UI.TreePaneWidth)
	}
	if cfg.Plugins.Events.FeedSize != 200 {
		t.Errorf("FeedSize = %d", cfg.Plugins.Events.FeedSize)
	}
}

func TestKeymapOverridesMerge(t *testing.T) {
	path := writeConfig(t, `{"keymap": {"overrides": {"browser.refetch": "ctrl+r"}}}`)
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Keymap.Overrides["browser.refetch"] != "ctrl+r" {
		t.Errorf("override not merged: %v", cfg.Keymap.Overrides)
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"ui": {"treePaneWidth": 30}}`), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := Watch(path, discardLogger())
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte(`{"ui": {"treePaneWidth": 66}}`), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-w.Reloads():
		if cfg.UI.TreePaneWidth != 66 {
			t.Errorf("reloaded TreePaneWidth = %d, want 66", cfg.UI.TreePaneWidth)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no reload delivered")
	}
}
