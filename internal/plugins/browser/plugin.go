// Package browser is the context tree browser: a two-pane view over the
// remote tree and the documents attached to the selected path.
//
// The plugin never edits the tree locally. Every mutation goes through the
// API client, and a success is followed by a full refetch that replaces the
// snapshot wholesale; selection is then re-resolved by path, falling back to
// the nearest surviving ancestor.
package browser

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/canvas-ai/canvas-tui/internal/api"
	"github.com/canvas-ai/canvas-tui/internal/clipboard"
	"github.com/canvas-ai/canvas-tui/internal/dragdrop"
	"github.com/canvas-ai/canvas-tui/internal/menu"
	"github.com/canvas-ai/canvas-tui/internal/mouse"
	"github.com/canvas-ai/canvas-tui/internal/plugin"
	"github.com/canvas-ai/canvas-tui/internal/selection"
	"github.com/canvas-ai/canvas-tui/internal/state"
	"github.com/canvas-ai/canvas-tui/internal/tree"
)

const (
	pluginID   = "browser"
	pluginName = "tree"
	pluginIcon = "T"
)

// FocusPane identifies which pane has keyboard focus.
type FocusPane int

const (
	PaneTree FocusPane = iota
	PaneDocuments
)

// InputMode is the active text prompt, if any.
type InputMode int

const (
	InputNone InputMode = iota
	InputCreateChild
	InputRename
)

// Message types
type (
	// TreeFetchedMsg carries a freshly built snapshot. Seq pairs the
	// response with the fetch that requested it; late responses from
	// superseded fetches are dropped.
	TreeFetchedMsg struct {
		Seq      uint64
		Snap     *tree.Snapshot
		Raw      []byte // raw payload, persisted to the snapshot cache
		Reselect string // path to select after the swap, "" keeps current
		Err      error
	}
	// CachedTreeMsg is the last known snapshot from the local cache,
	// painted while the first live fetch is in flight.
	CachedTreeMsg struct {
		Snap      *tree.Snapshot
		FetchedAt time.Time
	}
	// DocumentsFetchedMsg carries the document listing for one path.
	DocumentsFetchedMsg struct {
		Seq  uint64
		Path string
		Docs []api.Document
		Err  error
	}
	// PathOpDoneMsg reports a tree mutation result. OK false with a nil
	// Err is a remote rejection.
	PathOpDoneMsg struct {
		Op       string
		OK       bool
		Reselect string
		Err      error
	}
	// DocOpDoneMsg reports a document mutation result.
	DocOpDoneMsg struct {
		Op  string
		OK  bool
		Err error
	}
	// PathYankedMsg reports copying a path string to the system clipboard.
	PathYankedMsg struct {
		Path string
		Err  error
	}
	// StructuralEventMsg is forwarded by the app when the push channel
	// reports a tree change made elsewhere.
	StructuralEventMsg struct {
		Event api.Event
	}
)

// row is one visible line of the tree pane.
type row struct {
	node  *tree.Node
	depth int
}

// Plugin implements the context tree browser.
type Plugin struct {
	ctx     *plugin.Context
	focused bool

	snap  *tree.Snapshot
	stale bool // true while showing a cached snapshot

	// Monotonic fetch counters. Responses carry the value back; anything
	// that doesn't match the current counter is dropped.
	treeSeq uint64
	docSeq  uint64

	expanded   map[string]bool
	rows       []row
	treeCursor int
	treeScroll int

	pathSel *selection.Set // selected tree paths
	docSel  *selection.Set // selected document ids

	docs      []api.Document
	docsPath  string // path docs were fetched for
	docCursor int
	docScroll int
	filters   []string

	clip *clipboard.Slot
	drag *dragdrop.Coordinator

	// Drop feedback for the current drag-over target
	dropTarget string
	dropOK     bool

	// Context menu
	menuOpen    bool
	menuActions []menu.Action
	menuCursor  int
	menuX       int
	menuY       int
	menuTargets []string // paths or document ids the menu acts on
	menuForDocs bool

	// Text prompt (create child / rename)
	inputMode   InputMode
	inputTarget string // parent path for create, subject path for rename
	input       textinput.Model
	inputError  string

	// Confirmation state for destructive actions
	confirm       *confirmState
	pendingOps    int // mutations in flight, shown in the header
	lastSynced    time.Time
	lastFetchFail string

	// Document preview overlay
	previewDoc    *api.Document
	previewLines  []string
	previewScroll int

	activePane    FocusPane
	width, height int
	treeWidth     int

	mouseHandler *mouse.Handler
}

// confirmState holds a pending destructive action awaiting confirmation.
type confirmState struct {
	title   string
	message string
	run     func() tea.Cmd
	focused bool // confirm button focused
}

// New creates a new browser plugin.
func New() *Plugin {
	return &Plugin{
		expanded:     map[string]bool{"/": true},
		pathSel:      selection.New(),
		docSel:       selection.New(),
		clip:         clipboard.New(),
		drag:         dragdrop.New(),
		snap:         tree.Empty(),
		mouseHandler: mouse.NewHandler(),
	}
}

// ID returns the plugin identifier.
func (p *Plugin) ID() string { return pluginID }

// Name returns the plugin display name.
func (p *Plugin) Name() string { return pluginName }

// Icon returns the plugin icon character.
func (p *Plugin) Icon() string { return pluginIcon }

// Init initializes the plugin with context.
func (p *Plugin) Init(ctx *plugin.Context) error {
	p.ctx = ctx
	p.filters = append([]string(nil), ctx.Config.Plugins.Browser.DocumentFilters...)

	saved := state.GetBrowserState()
	for _, path := range saved.ExpandedPaths {
		p.expanded[path] = true
	}
	if saved.SelectedPath != "" {
		p.pathSel.Click(saved.SelectedPath)
	}
	if len(saved.DocumentFilters) > 0 {
		p.filters = saved.DocumentFilters
	}
	if saved.ActivePane == "documents" {
		p.activePane = PaneDocuments
	}
	p.treeScroll = saved.TreeScroll
	p.treeWidth = ctx.Config.UI.TreePaneWidth
	if w := state.GetTreePaneWidth(); w > 0 {
		p.treeWidth = w
	}
	p.rebuildRows()
	return nil
}

// Start begins plugin operation: paint the cached snapshot if there is one,
// then fetch live.
func (p *Plugin) Start() tea.Cmd {
	return tea.Batch(
		p.loadCachedTree(),
		p.fetchTree(p.selectedPath()),
	)
}

// Stop persists session state.
func (p *Plugin) Stop() {
	p.saveState()
}

// IsFocused reports keyboard focus.
func (p *Plugin) IsFocused() bool { return p.focused }

// SetFocused sets keyboard focus.
func (p *Plugin) SetFocused(f bool) { p.focused = f }

// ConsumesTextInput reports whether a text prompt is active, so app-level
// shortcuts stay out of the way.
func (p *Plugin) ConsumesTextInput() bool {
	return p.inputMode != InputNone
}

// FocusContext returns the keymap context for the current mode.
func (p *Plugin) FocusContext() string {
	switch {
	case p.inputMode != InputNone:
		return "browser-input"
	case p.confirm != nil:
		return "browser-input"
	case p.menuOpen:
		return "browser-menu"
	case p.previewDoc != nil:
		return "browser-preview"
	case p.activePane == PaneDocuments:
		return "browser-documents"
	default:
		return "browser-tree"
	}
}

// Commands returns the commands surfaced in the footer.
func (p *Plugin) Commands() []plugin.Command {
	return []plugin.Command{
		{ID: "create-child", Name: "New", Description: "Create a child layer", Category: plugin.CategoryActions, Context: "browser-tree", Priority: 1},
		{ID: "rename", Name: "Rename", Description: "Rename the selected layer", Category: plugin.CategoryActions, Context: "browser-tree", Priority: 2},
		{ID: "remove", Name: "Remove", Description: "Remove the selected layer", Category: plugin.CategoryActions, Context: "browser-tree", Priority: 3},
		{ID: "copy-path", Name: "Copy", Description: "Stage the selected layer for paste", Category: plugin.CategoryEdit, Context: "browser-tree"},
		{ID: "cut-path", Name: "Cut", Description: "Stage the selected layer for move", Category: plugin.CategoryEdit, Context: "browser-tree"},
		{ID: "paste", Name: "Paste", Description: "Paste the staged entry here", Category: plugin.CategoryEdit, Context: "browser-tree"},
		{ID: "refetch", Name: "Refetch", Description: "Reload the tree from the server", Category: plugin.CategoryView, Context: "browser-tree"},
		{ID: "cycle-filter", Name: "Filter", Description: "Cycle document schema filter", Category: plugin.CategoryView, Context: "browser-documents"},
	}
}

// selectedPath returns the primary selection: the last-selected path, or "/"
// when nothing is selected.
func (p *Plugin) selectedPath() string {
	ids := p.pathSel.IDs()
	if len(ids) == 0 {
		return "/"
	}
	return ids[len(ids)-1]
}

// cursorNode returns the node under the tree cursor.
func (p *Plugin) cursorNode() *tree.Node {
	if p.treeCursor < 0 || p.treeCursor >= len(p.rows) {
		return nil
	}
	return p.rows[p.treeCursor].node
}

// rebuildRows flattens the expanded portion of the snapshot into visible
// rows. Called after every snapshot swap or expand/collapse change.
func (p *Plugin) rebuildRows() {
	p.rows = p.rows[:0]
	if p.snap == nil || p.snap.Root == nil {
		return
	}
	p.appendRows(p.snap.Root, 0)
	if p.treeCursor >= len(p.rows) {
		p.treeCursor = len(p.rows) - 1
	}
	if p.treeCursor < 0 {
		p.treeCursor = 0
	}
}

func (p *Plugin) appendRows(n *tree.Node, depth int) {
	p.rows = append(p.rows, row{node: n, depth: depth})
	if !p.expanded[n.Path] {
		return
	}
	for _, c := range n.Children {
		p.appendRows(c, depth+1)
	}
}

// expandTo marks every ancestor of path expanded so the node is visible.
func (p *Plugin) expandTo(path string) {
	for cur := tree.Parent(path); ; cur = tree.Parent(cur) {
		p.expanded[cur] = true
		if cur == "/" {
			break
		}
	}
}

// moveCursorTo places the tree cursor on path if it is visible.
func (p *Plugin) moveCursorTo(path string) {
	for i, r := range p.rows {
		if r.node.Path == path {
			p.treeCursor = i
			p.ensureTreeCursorVisible()
			return
		}
	}
}

// selectPath replaces the selection with path and makes it visible.
func (p *Plugin) selectPath(path string) {
	p.pathSel.Click(path)
	p.expandTo(path)
	p.rebuildRows()
	p.moveCursorTo(path)
}

func (p *Plugin) ensureTreeCursorVisible() {
	visible := p.treeVisibleHeight()
	if visible <= 0 {
		return
	}
	if p.treeCursor < p.treeScroll {
		p.treeScroll = p.treeCursor
	} else if p.treeCursor >= p.treeScroll+visible {
		p.treeScroll = p.treeCursor - visible + 1
	}
	if p.treeScroll < 0 {
		p.treeScroll = 0
	}
}

// saveState persists the session to the state file.
func (p *Plugin) saveState() {
	var expanded []string
	for path, on := range p.expanded {
		if on {
			expanded = append(expanded, path)
		}
	}
	pane := "tree"
	if p.activePane == PaneDocuments {
		pane = "documents"
	}
	_ = state.SetBrowserState(state.BrowserState{
		SelectedPath:    p.selectedPath(),
		ExpandedPaths:   expanded,
		DocumentFilters: p.filters,
		ActivePane:      pane,
		TreeScroll:      p.treeScroll,
	})
}

// newTextInput builds the prompt input the way all browser prompts use it.
func newTextInput(placeholder, value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.SetValue(value)
	ti.CharLimit = 128
	ti.Width = 40
	ti.Focus()
	return ti
}
