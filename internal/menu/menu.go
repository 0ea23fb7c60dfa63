// Package menu builds the context menu action set for a path or a document
// selection. It is pure presentation logic: given the target and the current
// clipboard/selection state it decides what is shown, what is enabled, and
// what needs a confirmation step. Dispatch stays with the caller.
package menu

import (
	"fmt"

	"github.com/canvas-ai/canvas-tui/internal/clipboard"
)

// ActionID identifies a menu action.
type ActionID string

const (
	ActionCreateChild     ActionID = "create-child"
	ActionRename          ActionID = "rename"
	ActionRemove          ActionID = "remove"
	ActionRemoveRecursive ActionID = "remove-recursive"
	ActionCopyPath        ActionID = "copy-path"
	ActionCutPath         ActionID = "cut-path"
	ActionPaste           ActionID = "paste"
	ActionPasteRecursive  ActionID = "paste-recursive"
	ActionPasteDocuments  ActionID = "paste-documents"
	ActionMergeUp         ActionID = "merge-up"
	ActionMergeDown       ActionID = "merge-down"
	ActionSubtractUp      ActionID = "subtract-up"
	ActionSubtractDown    ActionID = "subtract-down"
	ActionYankPath        ActionID = "yank-path"

	ActionDocCopy   ActionID = "doc-copy"
	ActionDocCut    ActionID = "doc-cut"
	ActionDocRemove ActionID = "doc-remove"
)

// Action is one entry of a context menu.
type Action struct {
	ID          ActionID
	Label       string
	Enabled     bool
	Destructive bool // requires an explicit confirmation before dispatch
}

// ForPath builds the action list for a right-click on the tree node at
// targetPath. Root is special: it cannot be renamed, removed, or merged.
func ForPath(targetPath string, clip *clipboard.Slot) []Action {
	isRoot := targetPath == "/"

	pasteEnabled := false
	pasteLabel := "Paste"
	if !clip.IsEmpty() && clip.Entry().Kind == clipboard.KindPath {
		pasteEnabled = clip.CanPasteAt(targetPath)
		pasteLabel = fmt.Sprintf("Paste (%s %s)", clip.Entry().Op, clip.Entry().Path)
	}

	pasteDocsEnabled := false
	pasteDocsLabel := "Paste documents"
	if !clip.IsEmpty() && clip.Entry().Kind == clipboard.KindDocuments {
		pasteDocsEnabled = true
		pasteDocsLabel = fmt.Sprintf("Paste %d document(s)", len(clip.Entry().DocumentIDs))
	}

	return []Action{
		{ID: ActionCreateChild, Label: "New layer…", Enabled: true},
		{ID: ActionRename, Label: "Rename…", Enabled: !isRoot},
		{ID: ActionRemove, Label: "Remove", Enabled: !isRoot, Destructive: true},
		{ID: ActionRemoveRecursive, Label: "Remove recursively", Enabled: !isRoot, Destructive: true},
		{ID: ActionCopyPath, Label: "Copy", Enabled: !isRoot},
		{ID: ActionCutPath, Label: "Cut", Enabled: !isRoot},
		{ID: ActionPaste, Label: pasteLabel, Enabled: pasteEnabled},
		{ID: ActionPasteRecursive, Label: "Paste recursively", Enabled: pasteEnabled},
		{ID: ActionPasteDocuments, Label: pasteDocsLabel, Enabled: pasteDocsEnabled},
		{ID: ActionMergeUp, Label: "Merge up", Enabled: !isRoot},
		{ID: ActionMergeDown, Label: "Merge down", Enabled: !isRoot},
		{ID: ActionSubtractUp, Label: "Subtract up", Enabled: !isRoot},
		{ID: ActionSubtractDown, Label: "Subtract down", Enabled: !isRoot},
		{ID: ActionYankPath, Label: "Copy path to clipboard", Enabled: true},
	}
}

// ForDocuments builds the action list for a right-click on a document
// selection. targets is the resolved menu target set (see selection.RightClick).
func ForDocuments(targets []string) []Action {
	n := len(targets)
	return []Action{
		{ID: ActionDocCopy, Label: fmt.Sprintf("Copy %d document(s)", n), Enabled: n > 0},
		{ID: ActionDocCut, Label: fmt.Sprintf("Cut %d document(s)", n), Enabled: n > 0},
		{ID: ActionDocRemove, Label: fmt.Sprintf("Remove %d from this path", n), Enabled: n > 0, Destructive: true},
	}
}

// Enabled filters a list down to its enabled entries.
func Enabled(actions []Action) []Action {
	out := make([]Action, 0, len(actions))
	for _, a := range actions {
		if a.Enabled {
			out = append(out, a)
		}
	}
	return out
}
