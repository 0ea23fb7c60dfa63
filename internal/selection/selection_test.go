package selection

import (
	"reflect"
	"testing"
)

func TestClick_Replaces(t *testing.T) {
	s := New()
	s.CtrlClick("A")
	s.CtrlClick("B")

	s.Click("C")

	if !reflect.DeepEqual(s.IDs(), []string{"C"}) {
		t.Errorf("plain click on C with {A,B} selected should yield {C}, got %v", s.IDs())
	}
}

func TestCtrlClick_Toggles(t *testing.T) {
	s := New()
	s.CtrlClick("A")
	s.CtrlClick("B")
	if s.Len() != 2 {
		t.Fatalf("expected 2 selected, got %d", s.Len())
	}

	// Toggling an already selected member removes only it.
	s.CtrlClick("B")
	if !reflect.DeepEqual(s.IDs(), []string{"A"}) {
		t.Errorf("ctrl-click on selected B should yield {A}, got %v", s.IDs())
	}

	s.CtrlClick("B")
	if !reflect.DeepEqual(s.IDs(), []string{"A", "B"}) {
		t.Errorf("ctrl-click on B again should re-add it, got %v", s.IDs())
	}
}

func TestRightClick_SelectedKeepsSelection(t *testing.T) {
	s := New()
	s.CtrlClick("A")
	s.CtrlClick("B")

	targets := s.RightClick("A")

	if !reflect.DeepEqual(targets, []string{"A", "B"}) {
		t.Errorf("right-click on selected item should target whole selection, got %v", targets)
	}
	if s.Len() != 2 {
		t.Error("selection must be unchanged")
	}
}

func TestRightClick_UnselectedCollapses(t *testing.T) {
	s := New()
	s.CtrlClick("A")
	s.CtrlClick("B")

	targets := s.RightClick("C")

	if !reflect.DeepEqual(targets, []string{"C"}) {
		t.Errorf("right-click on unselected item should target only it, got %v", targets)
	}
	if !reflect.DeepEqual(s.IDs(), []string{"C"}) {
		t.Errorf("selection should collapse to {C}, got %v", s.IDs())
	}
}

func TestClear(t *testing.T) {
	s := New()
	s.CtrlClick("A")
	s.Clear()
	if s.Len() != 0 {
		t.Error("expected empty selection after scope change")
	}
}

func TestPrune(t *testing.T) {
	s := New()
	s.CtrlClick("A")
	s.CtrlClick("B")
	s.CtrlClick("C")

	s.Prune(map[string]struct{}{"A": {}, "C": {}})

	if !reflect.DeepEqual(s.IDs(), []string{"A", "C"}) {
		t.Errorf("prune should keep only present ids in order, got %v", s.IDs())
	}
	if s.Contains("B") {
		t.Error("B should be gone")
	}
}
