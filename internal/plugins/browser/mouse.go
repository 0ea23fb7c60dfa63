package browser

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/canvas-ai/canvas-tui/internal/dragdrop"
	"github.com/canvas-ai/canvas-tui/internal/mouse"
	"github.com/canvas-ai/canvas-tui/internal/plugin"
	"github.com/canvas-ai/canvas-tui/internal/state"
)

// Hit region IDs registered by View each frame.
const (
	regionTreePane = "browser-tree-pane"
	regionTreeRow  = "browser-tree-row"
	regionDocsPane = "browser-docs-pane"
	regionDocsRow  = "browser-docs-row"
	regionDivider  = "browser-divider"
	regionMenuItem = "browser-menu-item"
)

const minPaneWidth = 20

func (p *Plugin) handleMouse(m tea.MouseMsg) (plugin.Plugin, tea.Cmd) {
	action := p.mouseHandler.HandleMouse(m)

	switch action.Type {
	case mouse.ActionClick:
		return p.handleMouseClick(action)
	case mouse.ActionDoubleClick:
		return p.handleMouseDoubleClick(action)
	case mouse.ActionRightClick:
		return p.handleMouseRightClick(action)
	case mouse.ActionScrollUp, mouse.ActionScrollDown:
		p.handleMouseScroll(action)
	case mouse.ActionDrag:
		p.handleDragMotion(action)
	case mouse.ActionDragEnd:
		return p.handleDragEnd(action)
	case mouse.ActionHover:
		if p.menuOpen && action.Region != nil && action.Region.ID == regionMenuItem {
			if idx, ok := action.Region.Data.(int); ok {
				p.menuCursor = idx
			}
		}
	}
	return p, nil
}

func (p *Plugin) handleMouseClick(a mouse.MouseAction) (plugin.Plugin, tea.Cmd) {
	if p.menuOpen {
		if a.Region != nil && a.Region.ID == regionMenuItem {
			if idx, ok := a.Region.Data.(int); ok && idx < len(p.menuActions) {
				return p.dispatchMenuAction(p.menuActions[idx])
			}
		}
		// Clicking anywhere else dismisses the menu.
		p.closeMenu()
		return p, nil
	}
	if p.confirm != nil || p.inputMode != InputNone {
		return p, nil
	}
	if p.previewDoc != nil {
		p.previewDoc = nil
		p.previewLines = nil
		return p, nil
	}
	if a.Region == nil {
		return p, nil
	}

	switch a.Region.ID {
	case regionDivider:
		p.mouseHandler.StartDrag(a.X, a.Y, regionDivider, p.treeWidth)

	case regionTreeRow:
		idx, ok := a.Region.Data.(int)
		if !ok || idx >= len(p.rows) {
			return p, nil
		}
		p.activePane = PaneTree
		p.treeCursor = idx
		p.ensureTreeCursorVisible()
		path := p.rows[idx].node.Path
		// Arm a potential drag; the coordinator only engages once the
		// pointer actually moves.
		p.mouseHandler.StartDrag(a.X, a.Y, regionTreeRow, idx)
		if a.Mods.Ctrl {
			p.pathSel.CtrlClick(path)
		} else {
			p.pathSel.Click(path)
		}
		return p, p.fetchDocuments(p.selectedPath())

	case regionDocsRow:
		idx, ok := a.Region.Data.(int)
		if !ok || idx >= len(p.docs) {
			return p, nil
		}
		p.activePane = PaneDocuments
		p.docCursor = idx
		id := p.docs[idx].ID
		p.mouseHandler.StartDrag(a.X, a.Y, regionDocsRow, idx)
		if a.Mods.Ctrl {
			p.docSel.CtrlClick(id)
		} else {
			p.docSel.Click(id)
		}

	case regionTreePane:
		p.activePane = PaneTree
		p.pathSel.Clear()

	case regionDocsPane:
		p.activePane = PaneDocuments
		p.docSel.Clear()
	}
	return p, nil
}

func (p *Plugin) handleMouseDoubleClick(a mouse.MouseAction) (plugin.Plugin, tea.Cmd) {
	if a.Region == nil {
		return p, nil
	}
	switch a.Region.ID {
	case regionTreeRow:
		if idx, ok := a.Region.Data.(int); ok && idx < len(p.rows) {
			node := p.rows[idx].node
			if len(node.Children) > 0 {
				if p.expanded[node.Path] {
					delete(p.expanded, node.Path)
				} else {
					p.expanded[node.Path] = true
				}
				p.rebuildRows()
			}
		}
	case regionDocsRow:
		if idx, ok := a.Region.Data.(int); ok && idx < len(p.docs) {
			p.openPreview(&p.docs[idx])
		}
	}
	return p, nil
}

func (p *Plugin) handleMouseRightClick(a mouse.MouseAction) (plugin.Plugin, tea.Cmd) {
	if p.menuOpen {
		p.closeMenu()
	}
	if a.Region == nil {
		return p, nil
	}
	switch a.Region.ID {
	case regionTreeRow:
		if idx, ok := a.Region.Data.(int); ok && idx < len(p.rows) {
			p.activePane = PaneTree
			p.treeCursor = idx
			p.openPathMenu(p.rows[idx].node.Path, a.X, a.Y)
		}
	case regionDocsRow:
		if idx, ok := a.Region.Data.(int); ok && idx < len(p.docs) {
			p.activePane = PaneDocuments
			p.docCursor = idx
			targets := p.docSel.RightClick(p.docs[idx].ID)
			p.openDocMenu(targets, a.X, a.Y)
		}
	}
	return p, nil
}

func (p *Plugin) handleMouseScroll(a mouse.MouseAction) {
	if p.previewDoc != nil {
		p.scrollPreview(a.Delta)
		return
	}
	if a.Region == nil {
		return
	}
	switch a.Region.ID {
	case regionTreePane, regionTreeRow, regionDivider:
		p.treeScroll += a.Delta
		max := len(p.rows) - p.treeVisibleHeight()
		if max < 0 {
			max = 0
		}
		if p.treeScroll > max {
			p.treeScroll = max
		}
		if p.treeScroll < 0 {
			p.treeScroll = 0
		}
	case regionDocsPane, regionDocsRow:
		p.docScroll += a.Delta
		max := len(p.docs) - p.docsVisibleHeight()
		if max < 0 {
			max = 0
		}
		if p.docScroll > max {
			p.docScroll = max
		}
		if p.docScroll < 0 {
			p.docScroll = 0
		}
	}
}

// handleDragMotion feeds pointer motion into either the divider resize or the
// drag-drop coordinator. Modifiers come from this event, not from drag start.
func (p *Plugin) handleDragMotion(a mouse.MouseAction) {
	switch p.mouseHandler.DragRegion() {
	case regionDivider:
		w := p.mouseHandler.DragStartValue() + a.DragDX
		if w < minPaneWidth {
			w = minPaneWidth
		}
		if maxW := p.width - minPaneWidth; maxW >= minPaneWidth && w > maxW {
			w = maxW
		}
		p.treeWidth = w

	case regionTreeRow:
		if !p.drag.IsDragging() {
			if a.DragDX == 0 && a.DragDY == 0 {
				return
			}
			idx := p.mouseHandler.DragStartValue()
			if idx >= len(p.rows) {
				return
			}
			origin := p.rows[idx].node.Path
			if origin == "/" {
				return
			}
			p.drag.StartPath(origin)
		}
		p.trackDragOver(a)

	case regionDocsRow:
		if !p.drag.IsDragging() {
			if a.DragDX == 0 && a.DragDY == 0 {
				return
			}
			idx := p.mouseHandler.DragStartValue()
			if idx >= len(p.docs) {
				return
			}
			ids := p.docSel.IDs()
			if !p.docSel.Contains(p.docs[idx].ID) {
				ids = []string{p.docs[idx].ID}
			}
			p.drag.StartDocuments(ids, p.docsPath)
		}
		p.trackDragOver(a)
	}
}

// trackDragOver updates the coordinator and the drop highlight for the row
// currently under the pointer. Off the tree rows the coordinator target is
// reset too, so a release there resolves to no operation instead of firing
// at the last row hovered.
func (p *Plugin) trackDragOver(a mouse.MouseAction) {
	if a.Region == nil || a.Region.ID != regionTreeRow {
		p.drag.DragOver("", dragdrop.Modifiers{})
		p.dropTarget = ""
		return
	}
	idx, ok := a.Region.Data.(int)
	if !ok || idx >= len(p.rows) {
		p.drag.DragOver("", dragdrop.Modifiers{})
		p.dropTarget = ""
		return
	}
	target := p.rows[idx].node.Path
	p.drag.DragOver(target, dragdrop.Modifiers{Ctrl: a.Mods.Ctrl, Shift: a.Mods.Shift})
	p.dropTarget = target
	p.dropOK = p.drag.CanDropAt(target)
}

func (p *Plugin) handleDragEnd(a mouse.MouseAction) (plugin.Plugin, tea.Cmd) {
	if p.drag.IsDragging() {
		p.dropTarget = ""
		drop := p.drag.Resolve()
		if drop.Op == dragdrop.OpNone {
			return p, nil
		}
		p.pendingOps++
		return p, p.executeDrop(drop)
	}

	// A finished divider drag persists the new split.
	if p.treeWidth != state.GetTreePaneWidth() {
		_ = state.SetTreePaneWidth(p.treeWidth)
	}
	return p, nil
}
