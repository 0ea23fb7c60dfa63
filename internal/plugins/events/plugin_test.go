package events

import (
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/canvas-ai/canvas-tui/internal/api"
	"github.com/canvas-ai/canvas-tui/internal/config"
	"github.com/canvas-ai/canvas-tui/internal/keymap"
	"github.com/canvas-ai/canvas-tui/internal/plugin"
)

func newTestPlugin(t *testing.T) *Plugin {
	t.Helper()
	reg := keymap.NewRegistry()
	keymap.RegisterDefaults(reg)
	cfg := config.Default()
	cfg.Plugins.Events.FeedSize = 5

	p := New()
	ctx := &plugin.Context{
		Config: cfg,
		Keymap: reg,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if err := p.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	return p
}

func TestFeedIsCapped(t *testing.T) {
	p := newTestPlugin(t)
	for i := 0; i < 12; i++ {
		p.Update(ReceivedMsg{Event: api.Event{
			Type:      "tree.path.created",
			Path:      fmt.Sprintf("/p%d", i),
			Timestamp: time.Now(),
		}})
	}
	if len(p.feed) != 5 {
		t.Fatalf("feed length = %d, want 5", len(p.feed))
	}
	if p.feed[len(p.feed)-1].Path != "/p11" {
		t.Errorf("newest entry = %q, want /p11", p.feed[len(p.feed)-1].Path)
	}
	if p.feed[0].Path != "/p7" {
		t.Errorf("oldest kept entry = %q, want /p7", p.feed[0].Path)
	}
}

func TestClearFeed(t *testing.T) {
	p := newTestPlugin(t)
	p.Update(ReceivedMsg{Event: api.Event{Type: "tree.path.removed", Path: "/x"}})

	p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})

	if len(p.feed) != 0 {
		t.Errorf("feed length after clear = %d, want 0", len(p.feed))
	}
}

func TestFollowSticksToNewest(t *testing.T) {
	p := newTestPlugin(t)
	p.height = 4 // one visible line
	for i := 0; i < 5; i++ {
		p.Update(ReceivedMsg{Event: api.Event{Type: "tree.path.created"}})
	}
	if !p.follow {
		t.Fatal("feed should follow by default")
	}
	if p.scroll != len(p.feed)-p.visibleHeight() {
		t.Errorf("scroll = %d, not pinned to the end", p.scroll)
	}

	p.scrollBy(-2)
	if p.follow {
		t.Error("scrolling back must stop following")
	}
}
