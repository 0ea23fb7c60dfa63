package browser

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/canvas-ai/canvas-tui/internal/api"
	clip "github.com/canvas-ai/canvas-tui/internal/clipboard"
	"github.com/canvas-ai/canvas-tui/internal/menu"
	"github.com/canvas-ai/canvas-tui/internal/msg"
	"github.com/canvas-ai/canvas-tui/internal/plugin"
	"github.com/canvas-ai/canvas-tui/internal/tree"
)

const toastDuration = 2 * time.Second

// Update handles messages.
func (p *Plugin) Update(m tea.Msg) (plugin.Plugin, tea.Cmd) {
	switch m := m.(type) {
	case TreeFetchedMsg:
		return p.handleTreeFetched(m)
	case CachedTreeMsg:
		return p.handleCachedTree(m)
	case DocumentsFetchedMsg:
		return p.handleDocumentsFetched(m)
	case PathOpDoneMsg:
		return p.handlePathOpDone(m)
	case DocOpDoneMsg:
		return p.handleDocOpDone(m)
	case PathYankedMsg:
		if m.Err != nil {
			return p, msg.ShowError("clipboard unavailable", toastDuration)
		}
		return p, msg.ShowToast("copied "+m.Path, toastDuration)
	case StructuralEventMsg:
		p.ctx.Logger.Debug("structural change pushed", "type", m.Event.Type, "path", m.Event.Path)
		return p, p.fetchTree("")
	case plugin.PluginFocusedMsg:
		return p, p.fetchTree("")
	case tea.MouseMsg:
		return p.handleMouse(m)
	case tea.KeyMsg:
		return p.handleKey(m)
	}
	return p, nil
}

func (p *Plugin) handleTreeFetched(m TreeFetchedMsg) (plugin.Plugin, tea.Cmd) {
	if m.Seq != p.treeSeq {
		// A newer fetch is already in flight; this result lost the race.
		return p, nil
	}
	if m.Err != nil {
		p.lastFetchFail = m.Err.Error()
		p.ctx.Logger.Error("tree fetch failed", "error", m.Err)
		return p, msg.ShowError("tree fetch failed: "+m.Err.Error(), toastDuration)
	}
	p.lastFetchFail = ""
	prev := p.snap
	p.snap = m.Snap
	p.stale = false
	p.lastSynced = time.Now()

	var cmds []tea.Cmd
	if c := p.cacheSnapshot(m.Raw); c != nil {
		cmds = append(cmds, c)
	}

	// Identical content with no explicit target: nothing moved, keep
	// selection and cursor untouched.
	if prev != nil && prev.Version() == p.snap.Version() && m.Reselect == "" {
		p.rebuildRows()
		return p, tea.Batch(cmds...)
	}

	present := p.snap.PathSet()
	for path := range p.expanded {
		if _, ok := present[path]; !ok {
			delete(p.expanded, path)
		}
	}
	p.pathSel.Prune(present)

	if m.Reselect != "" {
		p.selectPath(p.snap.NearestExisting(m.Reselect))
	} else if p.pathSel.Len() > 0 {
		// Survivors keep their multi-selection; just make the primary
		// visible again.
		p.expandTo(p.selectedPath())
		p.rebuildRows()
		p.moveCursorTo(p.selectedPath())
	} else {
		p.selectPath(p.snap.NearestExisting(p.selectedPath()))
	}

	cmds = append(cmds, p.fetchDocuments(p.selectedPath()))
	return p, tea.Batch(cmds...)
}

func (p *Plugin) handleCachedTree(m CachedTreeMsg) (plugin.Plugin, tea.Cmd) {
	// Only paint the cache while nothing live has arrived.
	if !p.lastSynced.IsZero() {
		return p, nil
	}
	p.snap = m.Snap
	p.stale = true
	present := p.snap.PathSet()
	p.pathSel.Prune(present)
	p.expandTo(p.selectedPath())
	p.rebuildRows()
	p.moveCursorTo(p.selectedPath())
	return p, nil
}

func (p *Plugin) handleDocumentsFetched(m DocumentsFetchedMsg) (plugin.Plugin, tea.Cmd) {
	if m.Seq != p.docSeq {
		return p, nil
	}
	if m.Err != nil {
		p.ctx.Logger.Error("document fetch failed", "path", m.Path, "error", m.Err)
		return p, msg.ShowError("document fetch failed: "+m.Err.Error(), toastDuration)
	}
	// A new listing scope invalidates the selection outright; a multi-homed
	// document must not stay selected at a path it was never selected at.
	// Refetching the same scope only prunes what vanished.
	if m.Path != p.docsPath {
		p.docSel.Clear()
		p.docCursor = 0
	}
	p.docs = m.Docs
	p.docsPath = m.Path
	if p.docCursor >= len(p.docs) {
		p.docCursor = len(p.docs) - 1
	}
	if p.docCursor < 0 {
		p.docCursor = 0
	}
	present := make(map[string]struct{}, len(m.Docs))
	for _, d := range m.Docs {
		present[d.ID] = struct{}{}
	}
	p.docSel.Prune(present)
	return p, nil
}

func (p *Plugin) handlePathOpDone(m PathOpDoneMsg) (plugin.Plugin, tea.Cmd) {
	if p.pendingOps > 0 {
		p.pendingOps--
	}
	if m.Err != nil {
		p.ctx.Logger.Error("path operation failed", "op", m.Op, "error", m.Err)
		return p, msg.ShowError(m.Op+" failed: "+m.Err.Error(), toastDuration)
	}
	if !m.OK {
		return p, msg.ShowError("server rejected "+m.Op, toastDuration)
	}
	return p, tea.Batch(
		msg.ShowToast(m.Op+" done", toastDuration),
		p.fetchTree(m.Reselect),
	)
}

func (p *Plugin) handleDocOpDone(m DocOpDoneMsg) (plugin.Plugin, tea.Cmd) {
	if p.pendingOps > 0 {
		p.pendingOps--
	}
	if m.Err != nil {
		p.ctx.Logger.Error("document operation failed", "op", m.Op, "error", m.Err)
		return p, msg.ShowError(m.Op+" failed: "+m.Err.Error(), toastDuration)
	}
	if !m.OK {
		return p, msg.ShowError("server rejected "+m.Op, toastDuration)
	}
	return p, tea.Batch(
		msg.ShowToast(m.Op+" done", toastDuration),
		p.fetchDocuments(p.selectedPath()),
	)
}

// handleKey routes keyboard input through the keymap for the active context.
func (p *Plugin) handleKey(m tea.KeyMsg) (plugin.Plugin, tea.Cmd) {
	key := m.String()

	// Text prompts consume everything except their two control keys.
	if p.inputMode != InputNone {
		return p.handleInputKey(m, key)
	}
	if p.confirm != nil {
		return p.handleConfirmKey(key)
	}
	if p.menuOpen {
		return p.handleMenuKey(key)
	}
	if p.previewDoc != nil {
		return p.handlePreviewKey(key)
	}

	cmdName, ok := p.ctx.Keymap.Resolve(p.FocusContext(), key)
	if !ok {
		return p, nil
	}
	if p.activePane == PaneDocuments {
		return p.dispatchDocsCommand(cmdName)
	}
	return p.dispatchTreeCommand(cmdName)
}

func (p *Plugin) handleInputKey(m tea.KeyMsg, key string) (plugin.Plugin, tea.Cmd) {
	switch key {
	case "esc":
		p.inputMode = InputNone
		p.inputError = ""
		return p, nil
	case "enter":
		return p.confirmInput()
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(m)
	p.inputError = ""
	return p, cmd
}

// confirmInput validates and dispatches the pending prompt.
func (p *Plugin) confirmInput() (plugin.Plugin, tea.Cmd) {
	name := p.input.Value()
	if !tree.ValidateSegment(name) {
		p.inputError = "invalid layer name"
		return p, nil
	}

	switch p.inputMode {
	case InputCreateChild:
		parent := p.snap.Resolve(p.inputTarget)
		if parent != nil && parent.HasChildNamed(name) {
			p.inputError = "a sibling with that name already exists"
			return p, nil
		}
		p.inputMode = InputNone
		p.pendingOps++
		return p, p.createChild(p.inputTarget, name)

	case InputRename:
		if name == tree.Segment(p.inputTarget) {
			p.inputMode = InputNone
			return p, nil
		}
		parent := p.snap.Resolve(tree.Parent(p.inputTarget))
		if parent != nil && parent.HasChildNamed(name) {
			p.inputError = "a sibling with that name already exists"
			return p, nil
		}
		p.inputMode = InputNone
		p.pendingOps++
		return p, p.renamePath(p.inputTarget, name)
	}
	p.inputMode = InputNone
	return p, nil
}

func (p *Plugin) handleConfirmKey(key string) (plugin.Plugin, tea.Cmd) {
	c := p.confirm
	switch key {
	case "esc", "n":
		p.confirm = nil
		return p, nil
	case "left", "right", "tab", "h", "l":
		c.focused = !c.focused
		return p, nil
	case "y":
		p.confirm = nil
		return p, c.run()
	case "enter":
		p.confirm = nil
		if c.focused {
			return p, c.run()
		}
		return p, nil
	}
	return p, nil
}

func (p *Plugin) handleMenuKey(key string) (plugin.Plugin, tea.Cmd) {
	cmdName, _ := p.ctx.Keymap.Resolve("browser-menu", key)
	switch cmdName {
	case "cancel":
		p.closeMenu()
		return p, nil
	case "cursor-down":
		if p.menuCursor < len(p.menuActions)-1 {
			p.menuCursor++
		}
		return p, nil
	case "cursor-up":
		if p.menuCursor > 0 {
			p.menuCursor--
		}
		return p, nil
	case "confirm", "select":
		if p.menuCursor < len(p.menuActions) {
			return p.dispatchMenuAction(p.menuActions[p.menuCursor])
		}
		return p, nil
	}
	return p, nil
}

func (p *Plugin) handlePreviewKey(key string) (plugin.Plugin, tea.Cmd) {
	cmdName, _ := p.ctx.Keymap.Resolve("browser-preview", key)
	switch cmdName {
	case "back":
		p.previewDoc = nil
		p.previewLines = nil
		p.previewScroll = 0
	case "scroll-down", "cursor-down":
		p.scrollPreview(1)
	case "scroll-up", "cursor-up":
		p.scrollPreview(-1)
	case "page-down":
		p.scrollPreview(p.height / 2)
	case "page-up":
		p.scrollPreview(-p.height / 2)
	}
	return p, nil
}

func (p *Plugin) scrollPreview(delta int) {
	p.previewScroll += delta
	max := len(p.previewLines) - p.previewVisibleHeight()
	if max < 0 {
		max = 0
	}
	if p.previewScroll > max {
		p.previewScroll = max
	}
	if p.previewScroll < 0 {
		p.previewScroll = 0
	}
}

func (p *Plugin) dispatchTreeCommand(cmdName string) (plugin.Plugin, tea.Cmd) {
	node := p.cursorNode()
	switch cmdName {
	case "cursor-down":
		if p.treeCursor < len(p.rows)-1 {
			p.treeCursor++
			p.ensureTreeCursorVisible()
		}
	case "cursor-up":
		if p.treeCursor > 0 {
			p.treeCursor--
			p.ensureTreeCursorVisible()
		}
	case "cursor-top":
		p.treeCursor = 0
		p.ensureTreeCursorVisible()
	case "cursor-bottom":
		p.treeCursor = len(p.rows) - 1
		p.ensureTreeCursorVisible()
	case "select":
		if node == nil {
			return p, nil
		}
		p.pathSel.Click(node.Path)
		return p, p.fetchDocuments(node.Path)
	case "toggle-select":
		if node == nil {
			return p, nil
		}
		p.pathSel.CtrlClick(node.Path)
		return p, p.fetchDocuments(p.selectedPath())
	case "expand":
		if node != nil && len(node.Children) > 0 {
			p.expanded[node.Path] = true
			p.rebuildRows()
		}
	case "collapse":
		if node != nil {
			if p.expanded[node.Path] && len(node.Children) > 0 {
				delete(p.expanded, node.Path)
				p.rebuildRows()
			} else if !node.IsRoot() {
				p.selectPath(tree.Parent(node.Path))
			}
		}
	case "switch-pane":
		p.activePane = PaneDocuments
	case "create-child":
		if node == nil {
			return p, nil
		}
		p.openCreatePrompt(node.Path)
	case "rename":
		if node == nil || node.IsRoot() {
			return p, nil
		}
		p.openRenamePrompt(node.Path)
	case "remove":
		return p.confirmRemove(false)
	case "remove-recursive":
		return p.confirmRemove(true)
	case "copy-path":
		if node == nil || node.IsRoot() {
			return p, nil
		}
		p.clip.StagePath(node.Path, clip.OpCopy)
		return p, msg.ShowToast("staged copy of "+node.Path, toastDuration)
	case "cut-path":
		if node == nil || node.IsRoot() {
			return p, nil
		}
		p.clip.StagePath(node.Path, clip.OpCut)
		return p, msg.ShowToast("staged cut of "+node.Path, toastDuration)
	case "paste", "paste-recursive":
		if node == nil {
			return p, nil
		}
		if !p.clip.CanPasteAt(node.Path) {
			return p, msg.ShowError("nothing to paste here", toastDuration)
		}
		p.pendingOps++
		return p, p.pasteClipboard(node.Path, cmdName == "paste-recursive")
	case "yank-path":
		if node == nil {
			return p, nil
		}
		return p, p.yankPath(node.Path)
	case "refetch":
		return p, p.fetchTree("")
	case "cycle-filter":
		return p, p.cycleFilter()
	case "context-menu":
		if node == nil {
			return p, nil
		}
		p.openPathMenu(node.Path, 2, p.treeCursor-p.treeScroll+3)
	case "back":
		if p.drag.IsDragging() {
			p.drag.Cancel()
			p.dropTarget = ""
			return p, nil
		}
		p.pathSel.Clear()
	}
	return p, nil
}

func (p *Plugin) dispatchDocsCommand(cmdName string) (plugin.Plugin, tea.Cmd) {
	switch cmdName {
	case "cursor-down":
		if p.docCursor < len(p.docs)-1 {
			p.docCursor++
		}
	case "cursor-up":
		if p.docCursor > 0 {
			p.docCursor--
		}
	case "cursor-top":
		p.docCursor = 0
	case "cursor-bottom":
		p.docCursor = len(p.docs) - 1
	case "switch-pane":
		p.activePane = PaneTree
	case "toggle-select":
		if d := p.cursorDocument(); d != nil {
			p.docSel.CtrlClick(d.ID)
		}
	case "select", "preview":
		if d := p.cursorDocument(); d != nil {
			p.openPreview(d)
		}
	case "copy-documents":
		return p.stageDocs(clip.OpCopy)
	case "cut-documents":
		return p.stageDocs(clip.OpCut)
	case "remove-documents":
		return p.confirmRemoveDocs()
	case "cycle-filter":
		return p, p.cycleFilter()
	case "refetch":
		return p, p.fetchDocuments(p.selectedPath())
	case "context-menu":
		targets := p.docMenuTargets(p.cursorDocument())
		p.openDocMenu(targets, p.treeWidth+4, p.docCursor+3)
	case "back":
		p.docSel.Clear()
	}
	return p, nil
}

// cursorDocument returns the document under the documents pane cursor.
func (p *Plugin) cursorDocument() *api.Document {
	if p.docCursor < 0 || p.docCursor >= len(p.docs) {
		return nil
	}
	return &p.docs[p.docCursor]
}

// stageDocs stages the current document selection (or the cursor row when
// nothing is selected) in the clipboard slot.
func (p *Plugin) stageDocs(op clip.Op) (plugin.Plugin, tea.Cmd) {
	ids := p.docSel.IDs()
	if len(ids) == 0 {
		if d := p.cursorDocument(); d != nil {
			ids = []string{d.ID}
		}
	}
	if len(ids) == 0 {
		return p, nil
	}
	p.clip.StageDocuments(ids, p.docsPath, op)
	return p, msg.ShowToast(fmt.Sprintf("staged %s of %d document(s)", op, len(ids)), toastDuration)
}

// docMenuTargets applies right-click target resolution to the document
// selection.
func (p *Plugin) docMenuTargets(d *api.Document) []string {
	if d == nil {
		return p.docSel.IDs()
	}
	return p.docSel.RightClick(d.ID)
}

func (p *Plugin) confirmRemove(recursive bool) (plugin.Plugin, tea.Cmd) {
	node := p.cursorNode()
	if node == nil || node.IsRoot() {
		return p, nil
	}
	targets := p.pathSel.RightClick(node.Path)
	return p.confirmRemovePaths(targets, recursive)
}

func (p *Plugin) confirmRemovePaths(targets []string, recursive bool) (plugin.Plugin, tea.Cmd) {
	paths := make([]string, 0, len(targets))
	for _, t := range targets {
		if t != "/" {
			paths = append(paths, t)
		}
	}
	if len(paths) == 0 {
		return p, nil
	}
	label := paths[0]
	if len(paths) > 1 {
		label = fmt.Sprintf("%d layers", len(paths))
	}
	verb := "Remove"
	if recursive {
		verb = "Recursively remove"
	}
	run := func() tea.Cmd {
		cmds := make([]tea.Cmd, 0, len(paths))
		for _, path := range paths {
			p.pendingOps++
			cmds = append(cmds, p.removePath(path, recursive))
		}
		return tea.Batch(cmds...)
	}
	if !p.ctx.Config.Plugins.Browser.ConfirmDestructive {
		return p, run()
	}
	p.confirm = &confirmState{
		title:   verb + " layer",
		message: fmt.Sprintf("%s %s?", verb, label),
		run:     run,
	}
	return p, nil
}

func (p *Plugin) confirmRemoveDocs() (plugin.Plugin, tea.Cmd) {
	targets := p.docSel.IDs()
	if len(targets) == 0 {
		if d := p.cursorDocument(); d != nil {
			targets = []string{d.ID}
		}
	}
	return p.confirmRemoveDocTargets(targets)
}

func (p *Plugin) confirmRemoveDocTargets(targets []string) (plugin.Plugin, tea.Cmd) {
	if len(targets) == 0 {
		return p, nil
	}
	path := p.docsPath
	held := append([]string(nil), targets...)
	run := func() tea.Cmd {
		p.pendingOps++
		return p.removeDocuments(path, held)
	}
	if !p.ctx.Config.Plugins.Browser.ConfirmDestructive {
		return p, run()
	}
	p.confirm = &confirmState{
		title:   "Remove documents",
		message: fmt.Sprintf("Detach %d document(s) from %s? They stay attached elsewhere.", len(held), path),
		run:     run,
	}
	return p, nil
}

// cycleFilter steps through the known schema filters: unfiltered, then each
// schema on its own. Changing the filter invalidates the selection.
func (p *Plugin) cycleFilter() tea.Cmd {
	known := []string{"data/abstraction/tab", "data/abstraction/note", "data/abstraction/file", "data/abstraction/todo"}
	switch {
	case len(p.filters) == 0:
		p.filters = []string{known[0]}
	default:
		next := len(known)
		for i, s := range known {
			if s == p.filters[0] {
				next = i + 1
				break
			}
		}
		if next >= len(known) {
			p.filters = nil
		} else {
			p.filters = []string{known[next]}
		}
	}
	p.docSel.Clear()
	p.docCursor = 0
	return p.fetchDocuments(p.selectedPath())
}

func (p *Plugin) openCreatePrompt(parent string) {
	p.inputMode = InputCreateChild
	p.inputTarget = parent
	p.inputError = ""
	p.input = newTextInput("layer name", "")
}

func (p *Plugin) openRenamePrompt(path string) {
	p.inputMode = InputRename
	p.inputTarget = path
	p.inputError = ""
	p.input = newTextInput("new name", tree.Segment(path))
}

func (p *Plugin) openPathMenu(path string, x, y int) {
	p.menuTargets = p.pathSel.RightClick(path)
	p.menuActions = menu.ForPath(path, p.clip)
	p.menuForDocs = false
	p.menuCursor = 0
	p.menuX, p.menuY = x, y
	p.menuOpen = true
}

func (p *Plugin) openDocMenu(targets []string, x, y int) {
	if len(targets) == 0 {
		return
	}
	p.menuTargets = targets
	p.menuActions = menu.ForDocuments(targets)
	p.menuForDocs = true
	p.menuCursor = 0
	p.menuX, p.menuY = x, y
	p.menuOpen = true
}

func (p *Plugin) closeMenu() {
	p.menuOpen = false
	p.menuActions = nil
	p.menuTargets = nil
}

// dispatchMenuAction executes one context menu entry against the menu target
// set captured when the menu opened.
func (p *Plugin) dispatchMenuAction(a menu.Action) (plugin.Plugin, tea.Cmd) {
	if !a.Enabled {
		return p, nil
	}
	targets := p.menuTargets
	p.closeMenu()
	if len(targets) == 0 {
		return p, nil
	}
	primary := targets[0]

	switch a.ID {
	case menu.ActionCreateChild:
		p.openCreatePrompt(primary)
	case menu.ActionRename:
		p.openRenamePrompt(primary)
	case menu.ActionRemove:
		return p.confirmRemovePaths(targets, false)
	case menu.ActionRemoveRecursive:
		return p.confirmRemovePaths(targets, true)
	case menu.ActionCopyPath:
		p.clip.StagePath(primary, clip.OpCopy)
		return p, msg.ShowToast("staged copy of "+primary, toastDuration)
	case menu.ActionCutPath:
		p.clip.StagePath(primary, clip.OpCut)
		return p, msg.ShowToast("staged cut of "+primary, toastDuration)
	case menu.ActionPaste, menu.ActionPasteDocuments:
		p.pendingOps++
		return p, p.pasteClipboard(primary, false)
	case menu.ActionPasteRecursive:
		p.pendingOps++
		return p, p.pasteClipboard(primary, true)
	case menu.ActionMergeUp, menu.ActionMergeDown, menu.ActionSubtractUp, menu.ActionSubtractDown:
		p.pendingOps++
		return p, p.layerOp(string(a.ID), primary)
	case menu.ActionYankPath:
		return p, p.yankPath(primary)
	case menu.ActionDocCopy:
		p.clip.StageDocuments(targets, p.docsPath, clip.OpCopy)
		return p, msg.ShowToast(fmt.Sprintf("staged copy of %d document(s)", len(targets)), toastDuration)
	case menu.ActionDocCut:
		p.clip.StageDocuments(targets, p.docsPath, clip.OpCut)
		return p, msg.ShowToast(fmt.Sprintf("staged cut of %d document(s)", len(targets)), toastDuration)
	case menu.ActionDocRemove:
		return p.confirmRemoveDocTargets(targets)
	}
	return p, nil
}
