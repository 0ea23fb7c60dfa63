// Package clipboard holds the single staged copy/cut payload of the browser.
//
// The slot carries either one path or one set of document ids, never both;
// the tagged Entry type makes that structural rather than a convention. A new
// copy or cut silently overwrites whatever was staged before.
package clipboard

import "github.com/canvas-ai/canvas-tui/internal/tree"

// Kind tags what the slot holds.
type Kind int

const (
	KindNone Kind = iota
	KindPath
	KindDocuments
)

// Op tags how the payload was staged.
type Op int

const (
	OpCopy Op = iota
	OpCut
)

func (o Op) String() string {
	if o == OpCut {
		return "cut"
	}
	return "copy"
}

// Entry is the staged payload awaiting a paste target.
type Entry struct {
	Kind        Kind
	Op          Op
	Path        string   // set when Kind == KindPath
	DocumentIDs []string // set when Kind == KindDocuments
	SourcePath  string   // listing path the payload was staged from
}

// Slot is the per-editor clipboard. Not synchronized across instances.
type Slot struct {
	entry Entry
}

// New returns an empty slot.
func New() *Slot { return &Slot{} }

// StagePath stages a path with the given operation, replacing any previous
// entry.
func (s *Slot) StagePath(path string, op Op) {
	s.entry = Entry{Kind: KindPath, Op: op, Path: path, SourcePath: tree.Parent(path)}
}

// StageDocuments stages a document id set scoped to sourcePath, replacing any
// previous entry.
func (s *Slot) StageDocuments(ids []string, sourcePath string, op Op) {
	staged := make([]string, len(ids))
	copy(staged, ids)
	s.entry = Entry{Kind: KindDocuments, Op: op, DocumentIDs: staged, SourcePath: sourcePath}
}

// Entry returns the current entry; Kind is KindNone when empty.
func (s *Slot) Entry() Entry { return s.entry }

// IsEmpty reports whether nothing is staged.
func (s *Slot) IsEmpty() bool { return s.entry.Kind == KindNone }

// Clear empties the slot. Called after a successful cut-path paste, when the
// source no longer exists at its old path. A copy-path paste keeps the entry
// so it can be pasted repeatedly, and a document paste always keeps it: the
// backend treats document placement as additive membership regardless of the
// copy/cut tag, so the source documents still exist.
func (s *Slot) Clear() { s.entry = Entry{} }

// CanPasteAt reports whether the entry may be pasted at target, rejecting a
// path entry pasted onto itself or one of its own descendants. The remote
// authority may not reject that cleanly, so the cycle guard lives here.
func (s *Slot) CanPasteAt(target string) bool {
	switch s.entry.Kind {
	case KindPath:
		return s.entry.Path != target && !tree.IsDescendant(s.entry.Path, target)
	case KindDocuments:
		return len(s.entry.DocumentIDs) > 0
	default:
		return false
	}
}
