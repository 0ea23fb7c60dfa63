package app

import (
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/canvas-ai/canvas-tui/internal/styles"
	"github.com/canvas-ai/canvas-tui/internal/ui"
)

const headerHeight = 1

// View renders the full application frame.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	footerHeight := 0
	if m.showFooter {
		footerHeight = 1
	}
	bodyHeight := m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	body := ""
	if p := m.ActivePlugin(); p != nil {
		body = p.View(m.width, bodyHeight)
	}

	parts := []string{m.renderHeader(), body}
	if m.showFooter {
		parts = append(parts, m.renderFooter())
	}
	view := lipgloss.JoinVertical(lipgloss.Top, parts...)

	if m.showQuitConfirm {
		view = ui.OverlayCentered(view, m.renderQuitConfirm(), m.width, m.height)
	}
	return view
}

// computeTabBounds derives the clickable X ranges of the header tabs. The
// same arithmetic drives both rendering and mouse hit testing.
func (m Model) computeTabBounds() []TabBounds {
	bounds := make([]TabBounds, 0, m.registry.Len())
	x := 0
	for _, p := range m.registry.All() {
		label := tabLabel(p.Icon(), p.Name())
		w := lipgloss.Width(label) + 2 // padding applied by the tab style
		bounds = append(bounds, TabBounds{Start: x, End: x + w})
		x += w + 1
	}
	return bounds
}

func tabLabel(icon, name string) string {
	return icon + " " + name
}

func (m Model) renderHeader() string {
	activeTab := lipgloss.NewStyle().
		Background(styles.Primary).
		Foreground(styles.TextPrimary).
		Bold(true).
		Padding(0, 1)
	inactiveTab := lipgloss.NewStyle().
		Background(styles.BgSecondary).
		Foreground(styles.TextSecondary).
		Padding(0, 1)

	var tabs []string
	for i, p := range m.registry.All() {
		style := inactiveTab
		if i == m.activePlugin {
			style = activeTab
		}
		tabs = append(tabs, style.Render(tabLabel(p.Icon(), p.Name())))
	}
	left := strings.Join(tabs, " ")

	right := styles.Subtle.Render(m.cfg.Server.URL)
	if m.cfg.UI.ShowClock {
		right += "  " + styles.Muted.Render(time.Now().Format("15:04"))
	}
	if m.version != "" {
		right = styles.Subtle.Render("v"+m.version) + "  " + right
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderFooter shows the toast when one is active, otherwise the focused
// plugin's highest-priority commands with their bound keys.
func (m Model) renderFooter() string {
	if m.statusMsg != "" {
		style := styles.ToastSuccess
		if m.statusIsError {
			style = styles.ToastError
		}
		return style.Render(m.statusMsg)
	}

	p := m.ActivePlugin()
	if p == nil {
		return ""
	}

	cmds := p.Commands()
	sort.SliceStable(cmds, func(i, j int) bool {
		pi, pj := cmds[i].Priority, cmds[j].Priority
		if pi == 0 {
			pi = 99
		}
		if pj == 0 {
			pj = 99
		}
		return pi < pj
	})

	var hints []string
	for _, c := range cmds {
		key, ok := m.keyFor(c.Context, c.ID)
		if !ok {
			continue
		}
		hints = append(hints, styles.KeyHint.Render(key)+" "+styles.Muted.Render(c.Name))
		if len(hints) >= 6 {
			break
		}
	}
	line := strings.Join(hints, "  ")
	if lipgloss.Width(line) > m.width {
		line = line[:0] // too narrow, drop the hints rather than wrap
	}
	return line
}

// keyFor finds the key bound to a command in a context.
func (m Model) keyFor(context, command string) (string, bool) {
	for _, b := range m.keymap.Bindings(context) {
		if b.Command == command {
			return b.Key, true
		}
	}
	return "", false
}

func (m Model) renderQuitConfirm() string {
	d := ui.NewConfirmDialog("Quit", "Quit canvas-tui?")
	d.ConfirmLabel = " Quit "
	if m.quitConfirmFocus {
		d.Toggle()
	}
	return d.View()
}
