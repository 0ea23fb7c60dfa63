// Package app is the root Bubble Tea model: it owns the plugin registry,
// routes input to the active plugin, and fans push-channel events out to the
// plugins that care.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/canvas-ai/canvas-tui/internal/api"
	"github.com/canvas-ai/canvas-tui/internal/config"
	"github.com/canvas-ai/canvas-tui/internal/keymap"
	"github.com/canvas-ai/canvas-tui/internal/plugin"
)

// TabBounds is the X range of one header tab, for mouse hit testing.
type TabBounds struct {
	Start, End int
}

// Model is the root model for the canvas-tui application.
type Model struct {
	cfg *config.Config

	registry     *plugin.Registry
	activePlugin int

	keymap *keymap.Registry

	listener *api.Listener
	watcher  *config.Watcher

	width, height int
	showFooter    bool
	ready         bool

	showQuitConfirm  bool
	quitConfirmFocus bool // true = quit button focused

	statusMsg     string
	statusIsError bool
	statusExpiry  time.Time

	version string
}

// New creates the application model. listener and watcher may be nil when
// the push channel or config hot reload are disabled.
func New(reg *plugin.Registry, km *keymap.Registry, cfg *config.Config, listener *api.Listener, watcher *config.Watcher, version string) Model {
	if len(reg.All()) > 0 {
		reg.All()[0].SetFocused(true)
	}
	return Model{
		cfg:        cfg,
		registry:   reg,
		keymap:     km,
		listener:   listener,
		watcher:    watcher,
		showFooter: cfg.UI.ShowFooter,
		version:    version,
	}
}

// Init starts the plugins and the background listeners.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd()}
	cmds = append(cmds, m.registry.Start()...)
	if m.listener != nil {
		m.listener.Start()
		cmds = append(cmds, waitForEvent(m.listener))
	}
	if m.watcher != nil {
		cmds = append(cmds, waitForReload(m.watcher))
	}
	return tea.Batch(cmds...)
}

// ActivePlugin returns the currently focused plugin, or nil.
func (m Model) ActivePlugin() plugin.Plugin {
	plugins := m.registry.All()
	if len(plugins) == 0 {
		return nil
	}
	if m.activePlugin >= len(plugins) {
		return plugins[0]
	}
	return plugins[m.activePlugin]
}

// SetActivePlugin moves focus to the plugin at idx.
func (m *Model) SetActivePlugin(idx int) tea.Cmd {
	plugins := m.registry.All()
	if idx < 0 || idx >= len(plugins) || idx == m.activePlugin {
		return nil
	}
	if cur := m.ActivePlugin(); cur != nil {
		cur.SetFocused(false)
	}
	m.activePlugin = idx
	plugins[idx].SetFocused(true)
	return pluginFocused()
}

// NextPlugin cycles focus forward.
func (m *Model) NextPlugin() tea.Cmd {
	n := m.registry.Len()
	if n == 0 {
		return nil
	}
	return m.SetActivePlugin((m.activePlugin + 1) % n)
}

// PrevPlugin cycles focus backward.
func (m *Model) PrevPlugin() tea.Cmd {
	n := m.registry.Len()
	if n == 0 {
		return nil
	}
	return m.SetActivePlugin((m.activePlugin - 1 + n) % n)
}

// ShowToast displays a transient status message in the footer.
func (m *Model) ShowToast(text string, duration time.Duration, isError bool) {
	m.statusMsg = text
	m.statusIsError = isError
	m.statusExpiry = time.Now().Add(duration)
}

// ClearExpiredToast drops the status message once its time is up.
func (m *Model) ClearExpiredToast() {
	if m.statusMsg != "" && time.Now().After(m.statusExpiry) {
		m.statusMsg = ""
		m.statusIsError = false
	}
}

// quit tears the application down in order: plugins first so they persist
// their session state, then the background listeners.
func (m *Model) quit() tea.Cmd {
	m.registry.Stop()
	if m.listener != nil {
		m.listener.Stop()
	}
	if m.watcher != nil {
		m.watcher.Stop()
	}
	return tea.Quit
}
