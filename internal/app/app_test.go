package app

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/canvas-ai/canvas-tui/internal/api"
	"github.com/canvas-ai/canvas-tui/internal/config"
	"github.com/canvas-ai/canvas-tui/internal/keymap"
	"github.com/canvas-ai/canvas-tui/internal/plugin"
	"github.com/canvas-ai/canvas-tui/internal/plugins/browser"
	"github.com/canvas-ai/canvas-tui/internal/plugins/events"
)

// fakePlugin records the messages routed to it.
type fakePlugin struct {
	id       string
	focused  bool
	received []tea.Msg
}

func (f *fakePlugin) ID() string                 { return f.id }
func (f *fakePlugin) Name() string               { return f.id }
func (f *fakePlugin) Icon() string               { return "F" }
func (f *fakePlugin) Init(*plugin.Context) error { return nil }
func (f *fakePlugin) Start() tea.Cmd             { return nil }
func (f *fakePlugin) Stop()                      {}
func (f *fakePlugin) View(w, h int) string       { return "" }
func (f *fakePlugin) IsFocused() bool            { return f.focused }
func (f *fakePlugin) SetFocused(v bool)          { f.focused = v }
func (f *fakePlugin) Commands() []plugin.Command { return nil }
func (f *fakePlugin) FocusContext() string       { return "global" }
func (f *fakePlugin) Update(m tea.Msg) (plugin.Plugin, tea.Cmd) {
	f.received = append(f.received, m)
	return f, nil
}

func newTestModel(t *testing.T, plugins ...plugin.Plugin) Model {
	t.Helper()
	reg := plugin.NewRegistry()
	for _, p := range plugins {
		reg.Register(p)
	}
	km := keymap.NewRegistry()
	keymap.RegisterDefaults(km)
	m := New(reg, km, config.Default(), nil, nil, "test")
	m.width, m.height = 80, 24
	m.ready = true
	return m
}

func TestPluginCyclingMovesFocus(t *testing.T) {
	a := &fakePlugin{id: "a"}
	b := &fakePlugin{id: "b"}
	m := newTestModel(t, a, b)

	if !a.focused || b.focused {
		t.Fatal("first plugin should start focused")
	}

	m.NextPlugin()
	if a.focused || !b.focused {
		t.Error("focus did not move to the second plugin")
	}

	m.NextPlugin()
	if !a.focused {
		t.Error("cycling past the end should wrap")
	}
}

func TestQuitKeyOpensConfirmation(t *testing.T) {
	m := newTestModel(t, &fakePlugin{id: "a"})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = next.(Model)

	if !m.showQuitConfirm {
		t.Fatal("q should open the quit confirmation")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	m = next.(Model)
	if m.showQuitConfirm {
		t.Error("n should dismiss the quit confirmation")
	}
}

func TestStructuralEventFansOut(t *testing.T) {
	a := &fakePlugin{id: "a"}
	b := &fakePlugin{id: "b"}
	m := newTestModel(t, a, b)

	next, _ := m.Update(EventMsg{Event: api.Event{Type: "tree.path.created", Path: "/x"}})
	m = next.(Model)

	var gotFeed, gotStructural bool
	for _, msg := range b.received {
		switch msg.(type) {
		case events.ReceivedMsg:
			gotFeed = true
		case browser.StructuralEventMsg:
			gotStructural = true
		}
	}
	if !gotFeed {
		t.Error("feed message did not reach the unfocused plugin")
	}
	if !gotStructural {
		t.Error("structural event did not fan out")
	}
}

func TestNonStructuralEventSkipsBrowser(t *testing.T) {
	a := &fakePlugin{id: "a"}
	m := newTestModel(t, a)

	next, _ := m.Update(EventMsg{Event: api.Event{Type: "session.ping"}})
	m = next.(Model)

	for _, msg := range a.received {
		if _, ok := msg.(browser.StructuralEventMsg); ok {
			t.Error("non-structural event must not trigger a tree refetch message")
		}
	}
}

func TestToastExpires(t *testing.T) {
	m := newTestModel(t, &fakePlugin{id: "a"})

	m.ShowToast("saved", 10*time.Millisecond, false)
	if m.statusMsg == "" {
		t.Fatal("toast not shown")
	}

	time.Sleep(20 * time.Millisecond)
	m.ClearExpiredToast()
	if m.statusMsg != "" {
		t.Error("expired toast not cleared")
	}
}

func TestConfigReloadAppliesOverrides(t *testing.T) {
	m := newTestModel(t, &fakePlugin{id: "a"})

	cfg := config.Default()
	cfg.UI.ShowFooter = false
	cfg.Keymap.Overrides = map[string]string{"browser-tree.refetch": "F5"}

	next, _ := m.Update(ConfigReloadedMsg{Config: cfg})
	m = next.(Model)

	if m.showFooter {
		t.Error("reload did not apply the footer setting")
	}
	if cmd, ok := m.keymap.Resolve("browser-tree", "F5"); !ok || cmd != "refetch" {
		t.Error("reload did not apply keymap overrides")
	}
}
