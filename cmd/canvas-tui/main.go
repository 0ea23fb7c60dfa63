package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/canvas-ai/canvas-tui/internal/api"
	"github.com/canvas-ai/canvas-tui/internal/app"
	"github.com/canvas-ai/canvas-tui/internal/cache"
	"github.com/canvas-ai/canvas-tui/internal/config"
	"github.com/canvas-ai/canvas-tui/internal/keymap"
	"github.com/canvas-ai/canvas-tui/internal/plugin"
	"github.com/canvas-ai/canvas-tui/internal/plugins/browser"
	"github.com/canvas-ai/canvas-tui/internal/plugins/events"
	"github.com/canvas-ai/canvas-tui/internal/state"
)

// Version is set at build time via ldflags
var Version = ""

var (
	configPath  = flag.String("config", "", "path to config file")
	debugFlag   = flag.Bool("debug", false, "enable debug logging")
	versionFlag = flag.Bool("version", false, "print version and exit")
)

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Printf("canvas-tui version %s\n", effectiveVersion(Version))
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *debugFlag {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// State persistence is optional; the session just starts fresh without it.
	_ = state.Init()

	client := api.New(cfg.Server.URL, cfg.Server.Token, logger)

	var store *cache.Store
	if cfg.Cache.Enabled {
		store, err = cache.Open(cfg.CachePath())
		if err != nil {
			logger.Warn("snapshot cache unavailable", "path", cfg.CachePath(), "error", err)
		} else {
			defer store.Close()
		}
	}

	km := keymap.NewRegistry()
	keymap.RegisterDefaults(km)
	km.ApplyOverrides(cfg.Keymap.Overrides)

	pluginCtx := &plugin.Context{
		Config: cfg,
		API:    client,
		Cache:  store,
		Keymap: km,
		Logger: logger,
	}

	// Registration order determines tab order.
	registry := plugin.NewRegistry()
	registry.Register(browser.New())
	if cfg.Plugins.Events.Enabled {
		registry.Register(events.New())
	}
	for _, p := range registry.All() {
		if err := p.Init(pluginCtx); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to init plugin %s: %v\n", p.ID(), err)
			os.Exit(1)
		}
	}

	var listener *api.Listener
	if cfg.Plugins.Events.Enabled {
		listener, err = api.NewListener(cfg.Server.URL, cfg.Server.Token, logger)
		if err != nil {
			logger.Warn("push channel unavailable", "error", err)
		}
	}

	watcher, err := config.Watch(configSource(*configPath), logger)
	if err != nil {
		logger.Warn("config hot reload unavailable", "error", err)
	}

	model := app.New(registry, km, cfg, listener, watcher, effectiveVersion(Version))
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func configSource(path string) string {
	if path != "" {
		return path
	}
	return config.ConfigPath()
}

// effectiveVersion resolves the version from ldflags or build info.
func effectiveVersion(v string) string {
	if v != "" {
		return v
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}
