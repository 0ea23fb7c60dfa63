// Package dragdrop turns a pointer drag gesture into a single path operation.
//
// The coordinator is a three-state machine (idle, dragging, resolved) driven
// by generic pointer events so it stays decoupled from the terminal input
// layer. Modifier keys are re-read from every drag-over event rather than
// captured at drag start; input backends do not deliver key state uniformly.
package dragdrop

import "github.com/canvas-ai/canvas-tui/internal/tree"

// State of the coordinator.
type State int

const (
	StateIdle State = iota
	StateDragging
	StateResolved
)

// OriginKind tags what is being dragged.
type OriginKind int

const (
	OriginPath OriginKind = iota
	OriginDocuments
)

// Modifiers is the key snapshot of one drag-over event.
type Modifiers struct {
	Ctrl  bool
	Shift bool
}

// OpKind is the resolved gateway operation for a drop.
type OpKind int

const (
	OpNone OpKind = iota
	OpMove
	OpCopy
	OpPlaceDocuments
)

// Drop is the resolved outcome of a gesture.
type Drop struct {
	Op          OpKind
	FromPath    string
	TargetPath  string
	Recursive   bool
	DocumentIDs []string
}

// Coordinator holds the ephemeral state of one drag gesture. It is discarded,
// not recovered, if the owning view goes away mid-drag.
type Coordinator struct {
	state      State
	originKind OriginKind
	originPath string
	docIDs     []string
	sourcePath string

	overTarget string
	overMods   Modifiers
}

// New returns an idle coordinator.
func New() *Coordinator { return &Coordinator{} }

// State returns the current machine state.
func (c *Coordinator) State() State { return c.state }

// IsDragging reports whether a gesture is in flight.
func (c *Coordinator) IsDragging() bool { return c.state == StateDragging }

// StartPath begins a gesture dragging the subtree at path.
func (c *Coordinator) StartPath(path string) {
	*c = Coordinator{state: StateDragging, originKind: OriginPath, originPath: path}
}

// StartDocuments begins a gesture dragging the given document selection from
// sourcePath.
func (c *Coordinator) StartDocuments(ids []string, sourcePath string) {
	held := make([]string, len(ids))
	copy(held, ids)
	*c = Coordinator{
		state:      StateDragging,
		originKind: OriginDocuments,
		docIDs:     held,
		sourcePath: sourcePath,
	}
}

// DragOver records the current target and the modifier snapshot of this
// event, replacing whatever the previous drag-over recorded.
func (c *Coordinator) DragOver(targetPath string, mods Modifiers) {
	if c.state != StateDragging {
		return
	}
	c.overTarget = targetPath
	c.overMods = mods
}

// Origin returns the dragged path, or "" for a document gesture.
func (c *Coordinator) Origin() string { return c.originPath }

// OriginIsPath reports whether the gesture drags a path.
func (c *Coordinator) OriginIsPath() bool { return c.originKind == OriginPath }

// Target returns the last drag-over target.
func (c *Coordinator) Target() string { return c.overTarget }

// CanDropAt reports whether targetPath is a legal drop target for the current
// gesture. Dropping a path onto itself or its own descendant is rejected.
func (c *Coordinator) CanDropAt(targetPath string) bool {
	if c.state != StateDragging {
		return false
	}
	if c.originKind == OriginDocuments {
		return true
	}
	return targetPath != c.originPath && !tree.IsDescendant(c.originPath, targetPath)
}

// Resolve ends the gesture at the last drag-over target and returns the
// operation to hand to the gateway. A same-path drop or an illegal target
// resolves to OpNone with no gateway call. The coordinator returns to idle
// either way.
func (c *Coordinator) Resolve() Drop {
	defer c.Cancel()

	if c.state != StateDragging || c.overTarget == "" {
		return Drop{Op: OpNone}
	}

	if c.originKind == OriginDocuments {
		// Document drops are always additive placement; modifiers are not
		// consulted here.
		return Drop{
			Op:          OpPlaceDocuments,
			FromPath:    c.sourcePath,
			TargetPath:  c.overTarget,
			DocumentIDs: c.docIDs,
		}
	}

	if !c.CanDropAt(c.overTarget) {
		return Drop{Op: OpNone}
	}

	// Ctrl switches move to copy; Shift escalates either to recursive.
	op := OpMove
	if c.overMods.Ctrl {
		op = OpCopy
	}
	return Drop{
		Op:         op,
		FromPath:   c.originPath,
		TargetPath: c.overTarget,
		Recursive:  c.overMods.Shift,
	}
}

// Cancel discards the gesture and returns to idle. Used on drag-leave
// exhaustion, escape, or view teardown.
func (c *Coordinator) Cancel() {
	*c = Coordinator{}
}
