// Package events is a scrolling feed of push-channel notifications, mostly
// useful to see what other clients are doing to the shared tree.
package events

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/canvas-ai/canvas-tui/internal/api"
	"github.com/canvas-ai/canvas-tui/internal/plugin"
	"github.com/canvas-ai/canvas-tui/internal/styles"
)

// ReceivedMsg is forwarded by the app for every push-channel event.
type ReceivedMsg struct {
	Event api.Event
}

// Plugin implements the event feed.
type Plugin struct {
	ctx     *plugin.Context
	focused bool

	feed   []api.Event // newest last
	limit  int
	scroll int
	follow bool // stick to the newest entry

	width, height int
}

// New creates the feed plugin.
func New() *Plugin {
	return &Plugin{follow: true}
}

func (p *Plugin) ID() string { return "events" }
func (p *Plugin) Name() string { return "events" }
func (p *Plugin) Icon() string { return "E" }

// Init initializes the plugin with context.
func (p *Plugin) Init(ctx *plugin.Context) error {
	p.ctx = ctx
	p.limit = ctx.Config.Plugins.Events.FeedSize
	if p.limit <= 0 {
		p.limit = 200
	}
	return nil
}

func (p *Plugin) Start() tea.Cmd { return nil }
func (p *Plugin) Stop()          {}

func (p *Plugin) IsFocused() bool { return p.focused }

func (p *Plugin) SetFocused(f bool) { p.focused = f }

func (p *Plugin) FocusContext() string { return "events" }

// Commands returns the commands surfaced in the footer.
func (p *Plugin) Commands() []plugin.Command {
	return []plugin.Command{
		{ID: "clear-feed", Name: "Clear", Description: "Clear the event feed", Category: plugin.CategoryActions, Context: "events", Priority: 1},
	}
}

// Update handles messages.
func (p *Plugin) Update(m tea.Msg) (plugin.Plugin, tea.Cmd) {
	switch m := m.(type) {
	case ReceivedMsg:
		p.append(m.Event)
	case tea.KeyMsg:
		return p.handleKey(m)
	case tea.MouseMsg:
		p.handleMouse(m)
	}
	return p, nil
}

func (p *Plugin) append(e api.Event) {
	p.feed = append(p.feed, e)
	if len(p.feed) > p.limit {
		p.feed = p.feed[len(p.feed)-p.limit:]
	}
	if p.follow {
		p.scrollToEnd()
	}
}

func (p *Plugin) handleKey(m tea.KeyMsg) (plugin.Plugin, tea.Cmd) {
	cmdName, ok := p.ctx.Keymap.Resolve("events", m.String())
	if !ok {
		return p, nil
	}
	switch cmdName {
	case "clear-feed":
		p.feed = nil
		p.scroll = 0
		p.follow = true
	case "cursor-down":
		p.scrollBy(1)
	case "cursor-up":
		p.scrollBy(-1)
	case "cursor-top":
		p.scroll = 0
		p.follow = false
	case "cursor-bottom":
		p.scrollToEnd()
		p.follow = true
	}
	return p, nil
}

func (p *Plugin) handleMouse(m tea.MouseMsg) {
	if m.Action != tea.MouseActionPress {
		return
	}
	switch m.Button {
	case tea.MouseButtonWheelUp:
		p.scrollBy(-3)
	case tea.MouseButtonWheelDown:
		p.scrollBy(3)
	}
}

func (p *Plugin) scrollBy(delta int) {
	p.scroll += delta
	max := len(p.feed) - p.visibleHeight()
	if max < 0 {
		max = 0
	}
	if p.scroll >= max {
		p.scroll = max
		p.follow = true
	} else {
		p.follow = false
	}
	if p.scroll < 0 {
		p.scroll = 0
	}
}

func (p *Plugin) scrollToEnd() {
	p.scroll = len(p.feed) - p.visibleHeight()
	if p.scroll < 0 {
		p.scroll = 0
	}
}

func (p *Plugin) visibleHeight() int {
	h := p.height - 3
	if h < 1 {
		h = 1
	}
	return h
}

// View renders the feed.
func (p *Plugin) View(width, height int) string {
	p.width = width
	p.height = height

	style := styles.PanelInactive
	if p.focused {
		style = styles.PanelActive
	}

	header := styles.PanelHeader.MarginBottom(0).
		Render(fmt.Sprintf("events (%d)", len(p.feed)))

	if len(p.feed) == 0 {
		return style.Width(width - 2).Height(height - 2).
			Render(header + "\n" + styles.Muted.Render("no events yet"))
	}

	visible := p.visibleHeight()
	end := p.scroll + visible
	if end > len(p.feed) {
		end = len(p.feed)
	}
	lines := make([]string, 0, end-p.scroll)
	for _, e := range p.feed[p.scroll:end] {
		lines = append(lines, p.renderEvent(e, width-4))
	}
	return style.Width(width - 2).Height(height - 2).
		Render(header + "\n" + strings.Join(lines, "\n"))
}

func (p *Plugin) renderEvent(e api.Event, width int) string {
	ts := styles.Muted.Render(e.Timestamp.Format("15:04:05"))

	kind := styles.Subtle.Render(e.Type)
	if e.IsStructural() {
		kind = lipgloss.NewStyle().Foreground(styles.Accent).Render(e.Type)
	}

	line := ts + " " + kind
	if e.Path != "" {
		pathWidth := width - runewidth.StringWidth(e.Type) - 10
		if pathWidth < 1 {
			pathWidth = 1
		}
		line += " " + styles.Body.Render(runewidth.Truncate(e.Path, pathWidth, "…"))
	}
	return line
}
