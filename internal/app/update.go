package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/canvas-ai/canvas-tui/internal/config"
	"github.com/canvas-ai/canvas-tui/internal/msg"
	"github.com/canvas-ai/canvas-tui/internal/plugin"
	"github.com/canvas-ai/canvas-tui/internal/plugins/browser"
	"github.com/canvas-ai/canvas-tui/internal/plugins/events"
)

const toastNoteDuration = 3 * time.Second

// Update handles all messages and returns the updated model and commands.
func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(message)

	case tea.MouseMsg:
		return m.handleMouseMsg(message)

	case tea.WindowSizeMsg:
		m.width = message.Width
		m.height = message.Height
		m.ready = true
		return m, nil

	case TickMsg:
		m.ClearExpiredToast()
		return m, tickCmd()

	case msg.ToastMsg:
		m.ShowToast(message.Message, message.Duration, message.IsError)
		return m, nil

	case EventMsg:
		var cmds []tea.Cmd
		if m.listener != nil {
			cmds = append(cmds, waitForEvent(m.listener))
		}
		cmds = append(cmds, m.broadcast(events.ReceivedMsg{Event: message.Event})...)
		if message.Event.IsStructural() {
			cmds = append(cmds, m.broadcast(browser.StructuralEventMsg{Event: message.Event})...)
		}
		return m, tea.Batch(cmds...)

	case EventChannelClosedMsg:
		return m, nil

	case ConfigReloadedMsg:
		return m.applyConfig(message.Config)
	}

	// Everything else goes to every plugin; async results must reach their
	// plugin even while another one is focused.
	return m, tea.Batch(m.broadcast(message)...)
}

// broadcast forwards a message to all plugins and keeps the registry's
// instances current.
func (m *Model) broadcast(message tea.Msg) []tea.Cmd {
	var cmds []tea.Cmd
	for i, p := range m.registry.All() {
		next, cmd := p.Update(message)
		m.registry.Replace(i, next)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

// forwardToActive sends a message to the focused plugin only.
func (m *Model) forwardToActive(message tea.Msg) tea.Cmd {
	p := m.ActivePlugin()
	if p == nil {
		return nil
	}
	next, cmd := p.Update(message)
	m.registry.Replace(m.activePlugin, next)
	return cmd
}

// applyConfig swaps in a hot-reloaded configuration. Server changes need a
// restart; everything else takes effect immediately.
func (m Model) applyConfig(cfg *config.Config) (tea.Model, tea.Cmd) {
	restartNeeded := cfg.Server.URL != m.cfg.Server.URL || cfg.Server.Token != m.cfg.Server.Token
	*m.cfg = *cfg
	m.showFooter = m.cfg.UI.ShowFooter
	m.keymap.ApplyOverrides(m.cfg.Keymap.Overrides)

	note := "configuration reloaded"
	if restartNeeded {
		note = "configuration reloaded (server change needs a restart)"
	}
	m.ShowToast(note, toastNoteDuration, false)
	return m, waitForReload(m.watcher)
}

func (m Model) handleKeyMsg(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := message.String()

	if m.showQuitConfirm {
		switch key {
		case "y":
			return m, m.quit()
		case "enter":
			if m.quitConfirmFocus {
				return m, m.quit()
			}
			m.showQuitConfirm = false
		case "n", "esc":
			m.showQuitConfirm = false
		case "left", "right", "tab":
			m.quitConfirmFocus = !m.quitConfirmFocus
		}
		return m, nil
	}

	// Text prompts get every key except the hard quit.
	if c, ok := m.ActivePlugin().(plugin.TextInputConsumer); ok && c.ConsumesTextInput() {
		if key == "ctrl+c" {
			m.showQuitConfirm = true
			m.quitConfirmFocus = false
			return m, nil
		}
		return m, m.forwardToActive(message)
	}

	active := m.ActivePlugin()
	context := "global"
	if active != nil {
		context = active.FocusContext()
	}
	if cmdName, ok := m.keymap.Resolve(context, key); ok {
		switch cmdName {
		case "quit":
			m.showQuitConfirm = true
			m.quitConfirmFocus = false
			return m, nil
		case "next-plugin":
			return m, m.NextPlugin()
		case "prev-plugin":
			return m, m.PrevPlugin()
		case "focus-plugin-1":
			return m, m.SetActivePlugin(0)
		case "focus-plugin-2":
			return m, m.SetActivePlugin(1)
		case "toggle-footer":
			m.showFooter = !m.showFooter
			return m, nil
		}
	}

	return m, m.forwardToActive(message)
}

func (m Model) handleMouseMsg(message tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showQuitConfirm {
		return m, nil
	}

	// Header row: tab switching.
	if message.Y == 0 {
		if message.Action == tea.MouseActionPress && message.Button == tea.MouseButtonLeft {
			for i, b := range m.computeTabBounds() {
				if message.X >= b.Start && message.X < b.End {
					return m, m.SetActivePlugin(i)
				}
			}
		}
		return m, nil
	}

	// Translate into plugin coordinates before forwarding.
	message.Y -= headerHeight
	return m, m.forwardToActive(message)
}
