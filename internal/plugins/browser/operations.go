package browser

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/canvas-ai/canvas-tui/internal/api"
	clip "github.com/canvas-ai/canvas-tui/internal/clipboard"
	"github.com/canvas-ai/canvas-tui/internal/dragdrop"
	"github.com/canvas-ai/canvas-tui/internal/tree"
)

// fetchTree starts a tree fetch. reselect names the path to select once the
// new snapshot is in place; the empty string keeps the current selection.
func (p *Plugin) fetchTree(reselect string) tea.Cmd {
	p.treeSeq++
	seq := p.treeSeq
	client := p.ctx.API
	timeout := p.ctx.Config.Server.FetchTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		snap, err := client.FetchTree(ctx)
		if err != nil {
			return TreeFetchedMsg{Seq: seq, Reselect: reselect, Err: err}
		}
		raw, _ := json.Marshal(snap)
		return TreeFetchedMsg{
			Seq:      seq,
			Snap:     tree.Build(snap.Tree),
			Raw:      raw,
			Reselect: reselect,
		}
	}
}

// loadCachedTree reads the last known snapshot from the local cache so the
// view has content before the first live fetch lands.
func (p *Plugin) loadCachedTree() tea.Cmd {
	store := p.ctx.Cache
	if store == nil {
		return nil
	}
	serverURL := p.ctx.Config.Server.URL
	logger := p.ctx.Logger
	return func() tea.Msg {
		payload, fetchedAt, ok, err := store.Get(serverURL)
		if err != nil {
			logger.Warn("snapshot cache read failed", "error", err)
			return nil
		}
		if !ok {
			return nil
		}
		var snap api.TreeSnapshot
		if err := json.Unmarshal(payload, &snap); err != nil {
			logger.Warn("snapshot cache entry corrupt", "error", err)
			return nil
		}
		return CachedTreeMsg{Snap: tree.Build(snap.Tree), FetchedAt: fetchedAt}
	}
}

// cacheSnapshot persists the raw snapshot payload in the background.
func (p *Plugin) cacheSnapshot(raw []byte) tea.Cmd {
	store := p.ctx.Cache
	if store == nil || len(raw) == 0 {
		return nil
	}
	serverURL := p.ctx.Config.Server.URL
	logger := p.ctx.Logger
	return func() tea.Msg {
		if err := store.Put(serverURL, raw); err != nil {
			logger.Warn("snapshot cache write failed", "error", err)
		}
		return nil
	}
}

// fetchDocuments lists the documents for path with the active filters.
func (p *Plugin) fetchDocuments(path string) tea.Cmd {
	p.docSeq++
	seq := p.docSeq
	client := p.ctx.API
	filters := append([]string(nil), p.filters...)
	timeout := p.ctx.Config.Server.FetchTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		docs, err := client.FetchDocuments(ctx, path, filters)
		return DocumentsFetchedMsg{Seq: seq, Path: path, Docs: docs, Err: err}
	}
}

// pathOp runs one gateway mutation and reports the outcome. reselect is the
// path the follow-up refetch should select on success.
func (p *Plugin) pathOp(op, reselect string, call func(context.Context) (bool, error)) tea.Cmd {
	timeout := p.ctx.Config.Server.FetchTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		ok, err := call(ctx)
		return PathOpDoneMsg{Op: op, OK: ok, Reselect: reselect, Err: err}
	}
}

func (p *Plugin) createChild(parent, name string) tea.Cmd {
	path := tree.Join(parent, name)
	auto := p.ctx.Config.Plugins.Browser.AutoCreateLayers
	client := p.ctx.API
	return p.pathOp("create "+path, path, func(ctx context.Context) (bool, error) {
		return client.InsertPath(ctx, path, auto)
	})
}

func (p *Plugin) renamePath(path, newName string) tea.Cmd {
	newPath := tree.Join(tree.Parent(path), newName)
	// The current selection follows the rename when it sits inside the
	// renamed subtree.
	reselect := tree.RemapPath(p.selectedPath(), path, newPath)
	client := p.ctx.API
	return p.pathOp("rename "+path, reselect, func(ctx context.Context) (bool, error) {
		return client.RenamePath(ctx, path, newName)
	})
}

func (p *Plugin) removePath(path string, recursive bool) tea.Cmd {
	client := p.ctx.API
	return p.pathOp("remove "+path, tree.Parent(path), func(ctx context.Context) (bool, error) {
		return client.RemovePath(ctx, path, recursive)
	})
}

func (p *Plugin) movePath(from, to string, recursive bool) tea.Cmd {
	newPath := tree.Join(to, tree.Segment(from))
	reselect := tree.RemapPath(p.selectedPath(), from, newPath)
	client := p.ctx.API
	return p.pathOp("move "+from, reselect, func(ctx context.Context) (bool, error) {
		return client.MovePath(ctx, from, to, recursive)
	})
}

func (p *Plugin) copyPath(from, to string, recursive bool) tea.Cmd {
	newPath := tree.Join(to, tree.Segment(from))
	client := p.ctx.API
	return p.pathOp("copy "+from, newPath, func(ctx context.Context) (bool, error) {
		return client.CopyPath(ctx, from, to, recursive)
	})
}

func (p *Plugin) layerOp(op, path string) tea.Cmd {
	client := p.ctx.API
	var call func(context.Context) (bool, error)
	switch op {
	case "merge-up":
		call = func(ctx context.Context) (bool, error) { return client.MergeUp(ctx, path) }
	case "merge-down":
		call = func(ctx context.Context) (bool, error) { return client.MergeDown(ctx, path) }
	case "subtract-up":
		call = func(ctx context.Context) (bool, error) { return client.SubtractUp(ctx, path) }
	case "subtract-down":
		call = func(ctx context.Context) (bool, error) { return client.SubtractDown(ctx, path) }
	default:
		return nil
	}
	return p.pathOp(op+" "+path, p.selectedPath(), call)
}

// docOp runs one document mutation.
func (p *Plugin) docOp(op string, call func(context.Context) (bool, error)) tea.Cmd {
	timeout := p.ctx.Config.Server.FetchTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		ok, err := call(ctx)
		return DocOpDoneMsg{Op: op, OK: ok, Err: err}
	}
}

func (p *Plugin) pasteDocuments(target string, ids []string) tea.Cmd {
	client := p.ctx.API
	held := append([]string(nil), ids...)
	return p.docOp(fmt.Sprintf("paste %d document(s)", len(held)), func(ctx context.Context) (bool, error) {
		return client.PasteDocuments(ctx, target, held)
	})
}

func (p *Plugin) removeDocuments(path string, ids []string) tea.Cmd {
	client := p.ctx.API
	held := append([]string(nil), ids...)
	return p.docOp(fmt.Sprintf("remove %d document(s)", len(held)), func(ctx context.Context) (bool, error) {
		return client.RemoveDocuments(ctx, path, held)
	})
}

// pasteClipboard dispatches the staged clipboard entry onto target. A cut
// path entry moves and clears the slot; a copy entry copies and stays staged.
// Document entries always place additively, whatever the op, and the slot
// stays staged either way. Moves and copies are shallow unless the caller
// escalates.
func (p *Plugin) pasteClipboard(target string, recursive bool) tea.Cmd {
	if !p.clip.CanPasteAt(target) {
		return nil
	}
	entry := p.clip.Entry()
	switch entry.Kind {
	case clip.KindPath:
		if entry.Op == clip.OpCut {
			p.clip.Clear()
			return p.movePath(entry.Path, target, recursive)
		}
		return p.copyPath(entry.Path, target, recursive)
	case clip.KindDocuments:
		return p.pasteDocuments(target, entry.DocumentIDs)
	}
	return nil
}

// executeDrop turns a resolved drag gesture into the matching gateway call.
func (p *Plugin) executeDrop(d dragdrop.Drop) tea.Cmd {
	switch d.Op {
	case dragdrop.OpMove:
		return p.movePath(d.FromPath, d.TargetPath, d.Recursive)
	case dragdrop.OpCopy:
		return p.copyPath(d.FromPath, d.TargetPath, d.Recursive)
	case dragdrop.OpPlaceDocuments:
		return p.pasteDocuments(d.TargetPath, d.DocumentIDs)
	}
	return nil
}

// yankPath copies the path string to the system clipboard.
func (p *Plugin) yankPath(path string) tea.Cmd {
	return func() tea.Msg {
		err := clipboard.WriteAll(path)
		return PathYankedMsg{Path: path, Err: err}
	}
}
