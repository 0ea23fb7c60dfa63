package dragdrop

import (
	"reflect"
	"testing"
)

func TestResolve_PlainDropMoves(t *testing.T) {
	c := New()
	c.StartPath("/work")
	c.DragOver("/", Modifiers{})

	drop := c.Resolve()

	want := Drop{Op: OpMove, FromPath: "/work", TargetPath: "/", Recursive: false}
	if !reflect.DeepEqual(drop, want) {
		t.Errorf("got %+v, want %+v", drop, want)
	}
	if c.State() != StateIdle {
		t.Error("coordinator should be idle after resolve")
	}
}

func TestResolve_ModifierMatrix(t *testing.T) {
	tests := []struct {
		name      string
		mods      Modifiers
		wantOp    OpKind
		recursive bool
	}{
		{"move shallow", Modifiers{}, OpMove, false},
		{"move recursive", Modifiers{Shift: true}, OpMove, true},
		{"copy shallow", Modifiers{Ctrl: true}, OpCopy, false},
		{"copy recursive", Modifiers{Ctrl: true, Shift: true}, OpCopy, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			c.StartPath("/a")
			c.DragOver("/b", tt.mods)
			drop := c.Resolve()
			if drop.Op != tt.wantOp || drop.Recursive != tt.recursive {
				t.Errorf("got op=%d recursive=%v, want op=%d recursive=%v",
					drop.Op, drop.Recursive, tt.wantOp, tt.recursive)
			}
		})
	}
}

func TestResolve_ModifiersReReadPerDragOver(t *testing.T) {
	// The snapshot of the last drag-over wins, not the first.
	c := New()
	c.StartPath("/a")
	c.DragOver("/b", Modifiers{Ctrl: true})
	c.DragOver("/b", Modifiers{})

	if drop := c.Resolve(); drop.Op != OpMove {
		t.Errorf("releasing ctrl before drop should move, got op=%d", drop.Op)
	}
}

func TestResolve_SamePathIsNoop(t *testing.T) {
	c := New()
	c.StartPath("/work")
	c.DragOver("/work", Modifiers{})

	if drop := c.Resolve(); drop.Op != OpNone {
		t.Errorf("drop onto origin must be a no-op, got op=%d", drop.Op)
	}
	if c.State() != StateIdle {
		t.Error("coordinator should be idle")
	}
}

func TestResolve_DescendantTargetRejected(t *testing.T) {
	c := New()
	c.StartPath("/work")
	c.DragOver("/work/reports", Modifiers{})

	if drop := c.Resolve(); drop.Op != OpNone {
		t.Errorf("drop into own descendant must be rejected, got op=%d", drop.Op)
	}
}

func TestCanDropAt(t *testing.T) {
	c := New()
	c.StartPath("/work")

	if c.CanDropAt("/work") || c.CanDropAt("/work/reports") {
		t.Error("origin and its descendants are not drop targets")
	}
	if !c.CanDropAt("/home") || !c.CanDropAt("/") {
		t.Error("unrelated paths should be drop targets")
	}
}

func TestResolve_DocumentDropIgnoresModifiers(t *testing.T) {
	c := New()
	c.StartDocuments([]string{"d1", "d2"}, "/a")
	c.DragOver("/b", Modifiers{Ctrl: true, Shift: true})

	drop := c.Resolve()

	if drop.Op != OpPlaceDocuments {
		t.Fatalf("expected document placement, got op=%d", drop.Op)
	}
	if drop.TargetPath != "/b" || drop.FromPath != "/a" {
		t.Errorf("unexpected drop %+v", drop)
	}
	if !reflect.DeepEqual(drop.DocumentIDs, []string{"d1", "d2"}) {
		t.Errorf("unexpected ids %v", drop.DocumentIDs)
	}
	if drop.Recursive {
		t.Error("document drops have no recursive flag")
	}
}

func TestResolve_WithoutDragOver(t *testing.T) {
	c := New()
	c.StartPath("/work")

	if drop := c.Resolve(); drop.Op != OpNone {
		t.Error("resolve without a drag-over target must be a no-op")
	}
}

func TestCancel(t *testing.T) {
	c := New()
	c.StartPath("/work")
	c.DragOver("/home", Modifiers{})
	c.Cancel()

	if c.State() != StateIdle || c.IsDragging() {
		t.Error("expected idle after cancel")
	}
	if drop := c.Resolve(); drop.Op != OpNone {
		t.Error("resolve after cancel must be a no-op")
	}
}

func TestResolve_EmptyDragOverResetsTarget(t *testing.T) {
	c := New()
	c.StartPath("/work/project")
	c.DragOver("/home", Modifiers{})
	c.DragOver("", Modifiers{})

	if drop := c.Resolve(); drop.Op != OpNone {
		t.Errorf("drop = %+v, want no-op after the pointer left all targets", drop)
	}
}
