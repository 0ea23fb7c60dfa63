package clipboard

import (
	"reflect"
	"testing"
)

func TestStagePath_OverwritesPrevious(t *testing.T) {
	s := New()
	s.StagePath("/work", OpCopy)
	s.StagePath("/home", OpCopy)

	e := s.Entry()
	if e.Kind != KindPath || e.Path != "/home" {
		t.Errorf("second copy should overwrite the slot, got %+v", e)
	}
}

func TestStageDocuments_ReplacesPathEntry(t *testing.T) {
	s := New()
	s.StagePath("/work", OpCut)
	s.StageDocuments([]string{"d1", "d2"}, "/a", OpCut)

	e := s.Entry()
	if e.Kind != KindDocuments {
		t.Fatalf("expected document entry, got kind %d", e.Kind)
	}
	if e.Path != "" {
		t.Error("path field must be empty for a document entry")
	}
	if !reflect.DeepEqual(e.DocumentIDs, []string{"d1", "d2"}) || e.SourcePath != "/a" {
		t.Errorf("unexpected entry %+v", e)
	}
}

func TestStageDocuments_CopiesIDs(t *testing.T) {
	ids := []string{"d1"}
	s := New()
	s.StageDocuments(ids, "/a", OpCopy)
	ids[0] = "mutated"

	if s.Entry().DocumentIDs[0] != "d1" {
		t.Error("slot must not alias the caller's slice")
	}
}

func TestCanPasteAt_CycleGuard(t *testing.T) {
	s := New()
	s.StagePath("/work", OpCut)

	tests := []struct {
		target string
		want   bool
	}{
		{"/work", false},          // onto itself
		{"/work/reports", false},  // own descendant
		{"/workshop", true},       // sibling with shared name prefix
		{"/home", true},
		{"/", true},
	}
	for _, tt := range tests {
		if got := s.CanPasteAt(tt.target); got != tt.want {
			t.Errorf("CanPasteAt(%q) = %v, want %v", tt.target, got, tt.want)
		}
	}
}

func TestCanPasteAt_Empty(t *testing.T) {
	s := New()
	if s.CanPasteAt("/anywhere") {
		t.Error("empty slot must not be pasteable")
	}
}

func TestClear(t *testing.T) {
	s := New()
	s.StagePath("/work", OpCut)
	s.Clear()
	if !s.IsEmpty() {
		t.Error("expected empty slot after Clear")
	}
}

func TestOpString(t *testing.T) {
	if OpCopy.String() != "copy" || OpCut.String() != "cut" {
		t.Error("unexpected op labels")
	}
}
