package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/canvas-ai/canvas-tui/internal/api"
	"github.com/canvas-ai/canvas-tui/internal/config"
	"github.com/canvas-ai/canvas-tui/internal/plugin"
)

// TickMsg drives the clock and toast expiry.
type TickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// EventMsg wraps one push-channel event on its way into the update loop.
type EventMsg struct {
	Event api.Event
}

// EventChannelClosedMsg reports that the push channel shut down for good.
type EventChannelClosedMsg struct{}

// waitForEvent blocks on the listener until the next event arrives.
func waitForEvent(l *api.Listener) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-l.Events()
		if !ok {
			return EventChannelClosedMsg{}
		}
		return EventMsg{Event: e}
	}
}

// ConfigReloadedMsg carries a freshly reloaded configuration.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// waitForReload blocks on the config watcher until the file changes.
func waitForReload(w *config.Watcher) tea.Cmd {
	return func() tea.Msg {
		cfg, ok := <-w.Reloads()
		if !ok {
			return nil
		}
		return ConfigReloadedMsg{Config: cfg}
	}
}

func pluginFocused() tea.Cmd {
	return func() tea.Msg {
		return plugin.PluginFocusedMsg{}
	}
}
