package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/canvas-ai/canvas-tui/internal/api"
	"github.com/canvas-ai/canvas-tui/internal/clipboard"
	"github.com/canvas-ai/canvas-tui/internal/styles"
	"github.com/canvas-ai/canvas-tui/internal/ui"
)

const dividerWidth = 1

// View renders the two-pane browser and registers this frame's hit regions.
func (p *Plugin) View(width, height int) string {
	p.width = width
	p.height = height
	p.clampTreeWidth()
	p.mouseHandler.Clear()

	inputBarHeight := 0
	var inputBar string
	if p.inputMode != InputNone {
		inputBar = p.renderInputBar()
		inputBarHeight = 1
		if p.inputError != "" {
			inputBarHeight = 2
		}
	}

	view := p.renderPanes(inputBarHeight)
	if inputBar != "" {
		view = lipgloss.JoinVertical(lipgloss.Top, inputBar, view)
	}

	switch {
	case p.menuOpen:
		view = p.overlayMenu(view)
	case p.previewDoc != nil:
		view = ui.OverlayCentered(view, p.renderPreview(), width, height)
	case p.confirm != nil:
		view = ui.OverlayCentered(view, p.renderConfirm(), width, height)
	}
	return view
}

// clampTreeWidth keeps the split usable at any terminal size.
func (p *Plugin) clampTreeWidth() {
	available := p.width - dividerWidth
	maxW := available - minPaneWidth
	if maxW < minPaneWidth {
		maxW = minPaneWidth
	}
	if p.treeWidth < minPaneWidth {
		p.treeWidth = minPaneWidth
	}
	if p.treeWidth > maxW {
		p.treeWidth = maxW
	}
}

func (p *Plugin) treeVisibleHeight() int {
	// Pane borders plus the header row.
	h := p.height - 3
	if h < 1 {
		h = 1
	}
	return h
}

func (p *Plugin) docsVisibleHeight() int {
	h := p.height - 3
	if h < 1 {
		h = 1
	}
	return h
}

func (p *Plugin) previewVisibleHeight() int {
	h := p.height - 8
	if h < 3 {
		h = 3
	}
	return h
}

func (p *Plugin) renderPanes(inputBarHeight int) string {
	paneHeight := p.height - inputBarHeight
	if paneHeight < 3 {
		paneHeight = 3
	}
	innerHeight := paneHeight - 3 // borders + header
	if innerHeight < 1 {
		innerHeight = 1
	}
	docsWidth := p.width - p.treeWidth - dividerWidth

	treeStyle := styles.PanelInactive
	docsStyle := styles.PanelInactive
	if p.activePane == PaneTree {
		treeStyle = styles.PanelActive
	} else {
		docsStyle = styles.PanelActive
	}

	treePane := treeStyle.Width(p.treeWidth - 2).Height(paneHeight - 2).
		Render(p.renderTreeContent(p.treeWidth-4, innerHeight))
	docsPane := docsStyle.Width(docsWidth - 2).Height(paneHeight - 2).
		Render(p.renderDocsContent(docsWidth-4, innerHeight))

	divider := lipgloss.NewStyle().Foreground(styles.BorderNormal).
		Render(strings.TrimRight(strings.Repeat("│\n", paneHeight), "\n"))

	panes := lipgloss.JoinHorizontal(lipgloss.Top, treePane, divider, docsPane)

	// Pane regions first, divider on top of them, rows last so they win.
	paneY := inputBarHeight
	rowY := paneY + 2 // top border + header
	p.mouseHandler.HitMap.AddRect(regionTreePane, 0, paneY, p.treeWidth, paneHeight, nil)
	p.mouseHandler.HitMap.AddRect(regionDocsPane, p.treeWidth+dividerWidth, paneY, docsWidth, paneHeight, nil)
	p.mouseHandler.HitMap.AddRect(regionDivider, p.treeWidth-1, paneY, 3, paneHeight, nil)

	end := p.treeScroll + innerHeight
	if end > len(p.rows) {
		end = len(p.rows)
	}
	for i := p.treeScroll; i < end; i++ {
		p.mouseHandler.HitMap.AddRect(regionTreeRow, 1, rowY+(i-p.treeScroll), p.treeWidth-3, 1, i)
	}

	docEnd := p.docScroll + innerHeight
	if docEnd > len(p.docs) {
		docEnd = len(p.docs)
	}
	docsX := p.treeWidth + dividerWidth + 1
	for i := p.docScroll; i < docEnd; i++ {
		p.mouseHandler.HitMap.AddRect(regionDocsRow, docsX, rowY+(i-p.docScroll), docsWidth-3, 1, i)
	}

	return panes
}

func (p *Plugin) renderTreeContent(width, height int) string {
	var b strings.Builder
	b.WriteString(p.renderTreeHeader(width))
	b.WriteString("\n")

	if len(p.rows) == 0 {
		b.WriteString(styles.Muted.Render("no tree loaded"))
		return b.String()
	}

	end := p.treeScroll + height
	if end > len(p.rows) {
		end = len(p.rows)
	}
	lines := make([]string, 0, end-p.treeScroll)
	for i := p.treeScroll; i < end; i++ {
		lines = append(lines, p.renderTreeRow(p.rows[i], i, width))
	}
	b.WriteString(strings.Join(lines, "\n"))
	return b.String()
}

func (p *Plugin) renderTreeHeader(width int) string {
	var marks []string
	if p.stale {
		marks = append(marks, "cached")
	}
	if p.lastFetchFail != "" {
		marks = append(marks, "offline")
	}
	if p.pendingOps > 0 {
		marks = append(marks, fmt.Sprintf("%d pending", p.pendingOps))
	}
	if len(marks) == 0 {
		head := p.selectedPath()
		if n := p.cursorNode(); n != nil && n.Description != "" {
			head += "  " + n.Description
		}
		return styles.PanelHeader.MarginBottom(0).Render(runewidth.Truncate(head, width, "…"))
	}
	suffix := "[" + strings.Join(marks, " ") + "]"
	pathWidth := width - runewidth.StringWidth(suffix) - 2
	if pathWidth < 1 {
		pathWidth = 1
	}
	head := runewidth.Truncate(p.selectedPath(), pathWidth, "…") + "  " + styles.Muted.Render(suffix)
	return styles.PanelHeader.MarginBottom(0).Render(head)
}

func (p *Plugin) renderTreeRow(r row, idx, width int) string {
	node := r.node

	glyph := "  "
	if len(node.Children) > 0 {
		if p.expanded[node.Path] {
			glyph = styles.ExpandGlyph.Render("▾") + " "
		} else {
			glyph = styles.ExpandGlyph.Render("▸") + " "
		}
	}

	indent := strings.Repeat("  ", r.depth)
	name := node.DisplayName()
	entry := p.clip.Entry()
	isCut := entry.Kind == clipboard.KindPath && entry.Op == clipboard.OpCut && entry.Path == node.Path

	textWidth := width - r.depth*2 - 2
	if textWidth < 1 {
		textWidth = 1
	}
	name = runewidth.Truncate(name, textWidth, "…")

	isCursor := idx == p.treeCursor && p.activePane == PaneTree
	isSelected := p.pathSel.Contains(node.Path)

	var style lipgloss.Style
	switch {
	case p.dropTarget == node.Path && p.drag.IsDragging():
		if p.dropOK {
			style = styles.DropTargetRow
		} else {
			style = styles.DropRejectRow
		}
	case isCursor && isSelected:
		style = styles.SelectedCursorRow
	case isCursor:
		style = styles.CursorRow
	case isSelected:
		style = styles.SelectedRow
	case isCut:
		style = styles.CutRow
	case node.Color != "":
		style = styles.NodeColor(node.Color)
	default:
		style = styles.Body
	}

	return indent + glyph + style.Render(name)
}

func (p *Plugin) renderDocsContent(width, height int) string {
	var b strings.Builder
	header := p.docsPath
	if header == "" {
		header = "documents"
	}
	if len(p.filters) > 0 {
		header += "  " + styles.Muted.Render("[filter: "+shortSchema(p.filters[0])+"]")
	}
	b.WriteString(styles.PanelHeader.MarginBottom(0).Render(runewidth.Truncate(header, width, "…")))
	b.WriteString("\n")

	if len(p.docs) == 0 {
		b.WriteString(styles.Muted.Render("no documents"))
		return b.String()
	}

	end := p.docScroll + height
	if end > len(p.docs) {
		end = len(p.docs)
	}
	lines := make([]string, 0, end-p.docScroll)
	for i := p.docScroll; i < end; i++ {
		lines = append(lines, p.renderDocRow(p.docs[i], i, width))
	}
	b.WriteString(strings.Join(lines, "\n"))
	return b.String()
}

func (p *Plugin) renderDocRow(d api.Document, idx, width int) string {
	entry := p.clip.Entry()
	isCut := entry.Kind == clipboard.KindDocuments && entry.Op == clipboard.OpCut && containsID(entry.DocumentIDs, d.ID)
	isCursor := idx == p.docCursor && p.activePane == PaneDocuments
	isSelected := p.docSel.Contains(d.ID)

	title := d.Title
	if title == "" {
		title = d.ID
	}
	kind := styles.Subtle.Render(shortSchema(d.Schema))
	textWidth := width - runewidth.StringWidth(shortSchema(d.Schema)) - 2
	if textWidth < 1 {
		textWidth = 1
	}
	title = runewidth.Truncate(title, textWidth, "…")

	var style lipgloss.Style
	switch {
	case isCursor && isSelected:
		style = styles.SelectedCursorRow
	case isCursor:
		style = styles.CursorRow
	case isSelected:
		style = styles.SelectedRow
	case isCut:
		style = styles.CutRow
	default:
		style = styles.Body
	}
	return style.Render(title) + " " + kind
}

func shortSchema(schema string) string {
	if i := strings.LastIndex(schema, "/"); i >= 0 {
		return schema[i+1:]
	}
	return schema
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func (p *Plugin) renderInputBar() string {
	label := "new layer under " + p.inputTarget
	if p.inputMode == InputRename {
		label = "rename " + p.inputTarget
	}
	bar := styles.Muted.Render(label+": ") + p.input.View()
	if p.inputError != "" {
		bar += "\n" + styles.ToastError.Render(p.inputError)
	}
	return bar
}

// overlayMenu composites the context menu at its anchor and registers one hit
// region per visible item, using the same clamping the overlay applies.
func (p *Plugin) overlayMenu(background string) string {
	var lines []string
	for i, a := range p.menuActions {
		style := styles.MenuItem
		switch {
		case !a.Enabled:
			style = styles.MenuItemDisabled
		case i == p.menuCursor:
			style = styles.MenuItemActive
		case a.Destructive:
			style = styles.MenuItemDestructive
		}
		lines = append(lines, style.Render(a.Label))
	}
	body := strings.Join(lines, "\n")
	menuView := styles.MenuBorder.Render(body)

	mw := lipgloss.Width(menuView)
	mh := lipgloss.Height(menuView)
	mx, my := p.menuX, p.menuY
	if mx+mw > p.width {
		mx = p.width - mw
	}
	if my+mh > p.height {
		my = p.height - mh
	}
	if mx < 0 {
		mx = 0
	}
	if my < 0 {
		my = 0
	}
	for i := range p.menuActions {
		p.mouseHandler.HitMap.AddRect(regionMenuItem, mx+1, my+1+i, mw-2, 1, i)
	}

	return ui.OverlayAt(background, menuView, p.menuX, p.menuY, p.width, p.height)
}

func (p *Plugin) renderPreview() string {
	d := p.previewDoc
	title := d.Title
	if title == "" {
		title = d.ID
	}

	visible := p.previewVisibleHeight()
	end := p.previewScroll + visible
	if end > len(p.previewLines) {
		end = len(p.previewLines)
	}
	body := strings.Join(p.previewLines[p.previewScroll:end], "\n")

	w := p.width - 10
	if w > 100 {
		w = 100
	}
	if w < 20 {
		w = 20
	}
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BorderActive).
		Padding(0, 1).
		Width(w)

	head := styles.Title.Render(runewidth.Truncate(title, w-4, "…")) +
		"  " + styles.Subtle.Render(shortSchema(d.Schema))
	pos := ""
	if len(p.previewLines) > visible {
		pos = styles.Muted.Render(fmt.Sprintf("%d-%d/%d", p.previewScroll+1, end, len(p.previewLines)))
	}
	return frame.Render(lipgloss.JoinVertical(lipgloss.Left, head, "", body, "", pos))
}

func (p *Plugin) renderConfirm() string {
	d := ui.NewConfirmDialog(p.confirm.title, p.confirm.message)
	d.Destructive = true
	if p.confirm.focused {
		d.Toggle()
	}
	return d.View()
}

// openPreview opens the document preview overlay.
func (p *Plugin) openPreview(d *api.Document) {
	p.previewDoc = d
	p.previewScroll = 0
	p.previewLines = renderDocumentBody(d)
}
