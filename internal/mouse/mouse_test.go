package mouse

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 30, H: 40}

	tests := []struct {
		name   string
		x, y   int
		expect bool
	}{
		{"inside", 15, 30, true},
		{"top-left corner", 10, 20, true},
		{"right edge exclusive", 40, 30, false},
		{"bottom edge exclusive", 15, 60, false},
		{"just inside", 39, 59, true},
		{"outside", 100, 100, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.expect {
				t.Errorf("Contains(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.expect)
			}
		})
	}

	zero := Rect{X: 5, Y: 5}
	if zero.Contains(5, 5) {
		t.Error("zero-size rect should not contain any point")
	}
}

func TestHitMap_OverlapPaintOrder(t *testing.T) {
	hm := NewHitMap()
	hm.Add("bottom", Rect{X: 0, Y: 0, W: 20, H: 20}, nil)
	hm.Add("top", Rect{X: 5, Y: 5, W: 10, H: 10}, "payload")

	r := hm.Test(7, 7)
	if r == nil || r.ID != "top" {
		t.Fatalf("overlap should resolve to the last-added region, got %v", r)
	}
	if r.Data != "payload" {
		t.Errorf("expected payload data, got %v", r.Data)
	}

	if r := hm.Test(2, 2); r == nil || r.ID != "bottom" {
		t.Fatalf("non-overlapping point should hit 'bottom', got %v", r)
	}

	hm.Clear()
	if hm.Test(7, 7) != nil {
		t.Error("expected nil after Clear")
	}
}

func TestHandler_DoubleClickCycle(t *testing.T) {
	h := NewHandler()
	h.HitMap.Add("row", Rect{X: 0, Y: 0, W: 10, H: 10}, 3)

	if h.HandleClick(5, 5).IsDoubleClick {
		t.Error("first click is not a double click")
	}
	if !h.HandleClick(5, 5).IsDoubleClick {
		t.Error("second immediate click on same spot is a double click")
	}
	if h.HandleClick(5, 5).IsDoubleClick {
		t.Error("third click starts a fresh cycle")
	}
}

func TestHandler_DragLifecycle(t *testing.T) {
	h := NewHandler()
	h.StartDrag(10, 20, "tree-node", 7)

	if !h.IsDragging() || h.DragRegion() != "tree-node" || h.DragStartValue() != 7 {
		t.Fatal("drag state not captured")
	}
	if dx, dy := h.DragDelta(15, 18); dx != 5 || dy != -2 {
		t.Errorf("DragDelta = (%d, %d), want (5, -2)", dx, dy)
	}

	h.EndDrag()
	if h.IsDragging() || h.DragRegion() != "" {
		t.Error("drag state should be cleared")
	}
}

func press(button tea.MouseButton, x, y int, mods Modifiers) tea.MouseMsg {
	return tea.MouseMsg{
		Action: tea.MouseActionPress,
		Button: button,
		X:      x, Y: y,
		Ctrl: mods.Ctrl, Shift: mods.Shift, Alt: mods.Alt,
	}
}

func TestHandleMouse_ClickCarriesModifiers(t *testing.T) {
	h := NewHandler()
	h.HitMap.Add("doc-row", Rect{X: 0, Y: 0, W: 40, H: 1}, "d1")

	action := h.HandleMouse(press(tea.MouseButtonLeft, 5, 0, Modifiers{Ctrl: true}))
	if action.Type != ActionClick {
		t.Fatalf("expected ActionClick, got %d", action.Type)
	}
	if !action.Mods.Ctrl || action.Mods.Shift {
		t.Errorf("modifier snapshot lost: %+v", action.Mods)
	}
	if action.Region == nil || action.Region.Data != "d1" {
		t.Error("expected hit on doc-row with its payload")
	}
}

func TestHandleMouse_RightClick(t *testing.T) {
	h := NewHandler()
	h.HitMap.Add("doc-row", Rect{X: 0, Y: 0, W: 40, H: 1}, "d1")

	action := h.HandleMouse(press(tea.MouseButtonRight, 5, 0, Modifiers{}))
	if action.Type != ActionRightClick {
		t.Fatalf("expected ActionRightClick, got %d", action.Type)
	}
	if action.Region == nil || action.Region.ID != "doc-row" {
		t.Error("right click should resolve its region")
	}

	miss := h.HandleMouse(press(tea.MouseButtonRight, 90, 0, Modifiers{}))
	if miss.Type != ActionRightClick || miss.Region != nil {
		t.Error("right click off any region still reports the action, with nil region")
	}
}

func TestHandleMouse_Scroll(t *testing.T) {
	h := NewHandler()

	up := h.HandleMouse(press(tea.MouseButtonWheelUp, 5, 5, Modifiers{}))
	if up.Type != ActionScrollUp || up.Delta != -3 {
		t.Errorf("wheel up: got type=%d delta=%d", up.Type, up.Delta)
	}

	down := h.HandleMouse(press(tea.MouseButtonWheelDown, 5, 5, Modifiers{}))
	if down.Type != ActionScrollDown || down.Delta != 3 {
		t.Errorf("wheel down: got type=%d delta=%d", down.Type, down.Delta)
	}

	horiz := h.HandleMouse(press(tea.MouseButtonWheelUp, 5, 5, Modifiers{Shift: true}))
	if horiz.Type != ActionScrollLeft {
		t.Errorf("shift+wheel up should scroll left, got %d", horiz.Type)
	}
}

func TestHandleMouse_DragMotionReadsModifiersPerEvent(t *testing.T) {
	h := NewHandler()
	h.HitMap.Add("tree-node", Rect{X: 0, Y: 2, W: 40, H: 1}, "/work")
	h.StartDrag(5, 0, "tree-node", 0)

	withCtrl := h.HandleMouse(tea.MouseMsg{
		Action: tea.MouseActionMotion, X: 5, Y: 2, Ctrl: true,
	})
	if withCtrl.Type != ActionDrag || !withCtrl.Mods.Ctrl {
		t.Error("drag motion should carry this event's ctrl state")
	}

	withoutCtrl := h.HandleMouse(tea.MouseMsg{
		Action: tea.MouseActionMotion, X: 6, Y: 2,
	})
	if withoutCtrl.Mods.Ctrl {
		t.Error("modifier state must not stick between motion events")
	}
	if withoutCtrl.DragDX != 1 || withoutCtrl.DragDY != 2 {
		t.Errorf("drag delta = (%d, %d), want (1, 2)", withoutCtrl.DragDX, withoutCtrl.DragDY)
	}
}

func TestHandleMouse_ReleaseEndsDrag(t *testing.T) {
	h := NewHandler()
	h.HitMap.Add("tree-node", Rect{X: 0, Y: 2, W: 40, H: 1}, "/home")
	h.StartDrag(5, 0, "tree-node", 0)

	action := h.HandleMouse(tea.MouseMsg{Action: tea.MouseActionRelease, X: 5, Y: 2})
	if action.Type != ActionDragEnd {
		t.Fatalf("expected ActionDragEnd, got %d", action.Type)
	}
	if action.Region == nil || action.Region.Data != "/home" {
		t.Error("release should resolve the drop region")
	}
	if h.IsDragging() {
		t.Error("handler should be idle after release")
	}

	idle := h.HandleMouse(tea.MouseMsg{Action: tea.MouseActionRelease})
	if idle.Type != ActionNone {
		t.Error("release without a drag is no action")
	}
}

func TestHandleMouse_HoverEvenOnMiss(t *testing.T) {
	h := NewHandler()
	h.HitMap.Add("row", Rect{X: 0, Y: 0, W: 10, H: 1}, nil)

	hit := h.HandleMouse(tea.MouseMsg{Action: tea.MouseActionMotion, X: 5, Y: 0})
	if hit.Type != ActionHover || hit.Region == nil {
		t.Error("expected hover with region")
	}

	miss := h.HandleMouse(tea.MouseMsg{Action: tea.MouseActionMotion, X: 50, Y: 5})
	if miss.Type != ActionHover || miss.Region != nil {
		t.Error("expected hover with nil region on miss")
	}
}
