// Package mouse maps terminal mouse events onto named screen regions.
//
// Views register hit regions each render; the handler resolves clicks,
// drags, scrolls, and hovers against them. Every resolved action carries the
// modifier-key snapshot of the event that produced it, so gesture logic can
// re-read modifiers per event instead of latching them at press time.
package mouse

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Rect is a screen-space rectangle. W/H are exclusive bounds.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a named hit area with optional payload data.
type Region struct {
	ID   string
	Rect Rect
	Data interface{}
}

// HitMap is the set of regions registered for the current frame. Later
// additions win on overlap, matching paint order.
type HitMap struct {
	regions []Region
}

// NewHitMap returns an empty hit map.
func NewHitMap() *HitMap { return &HitMap{} }

// Add registers a region.
func (h *HitMap) Add(id string, r Rect, data interface{}) {
	h.regions = append(h.regions, Region{ID: id, Rect: r, Data: data})
}

// AddRect registers a region from raw coordinates.
func (h *HitMap) AddRect(id string, x, y, w, hgt int, data interface{}) {
	h.Add(id, Rect{X: x, Y: y, W: w, H: hgt}, data)
}

// Test returns the topmost region containing the point, or nil.
func (h *HitMap) Test(x, y int) *Region {
	for i := len(h.regions) - 1; i >= 0; i-- {
		if h.regions[i].Rect.Contains(x, y) {
			r := h.regions[i]
			return &r
		}
	}
	return nil
}

// Clear removes all regions. Called at the start of each render.
func (h *HitMap) Clear() { h.regions = h.regions[:0] }

// Regions returns a copy of the registered regions.
func (h *HitMap) Regions() []Region {
	out := make([]Region, len(h.regions))
	copy(out, h.regions)
	return out
}

// ActionType classifies a resolved mouse action.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionClick
	ActionRightClick
	ActionDoubleClick
	ActionScrollUp
	ActionScrollDown
	ActionScrollLeft
	ActionScrollRight
	ActionDrag
	ActionDragEnd
	ActionHover
)

// Modifiers is the key state carried by a mouse event.
type Modifiers struct {
	Ctrl  bool
	Shift bool
	Alt   bool
}

// MouseAction is one resolved action against the hit map.
type MouseAction struct {
	Type           ActionType
	Region         *Region // nil on miss
	X, Y           int
	Delta          int // scroll lines, negative = up
	DragDX, DragDY int
	Mods           Modifiers
	IsDoubleClick  bool
}

const doubleClickWindow = 400 * time.Millisecond

// Handler resolves raw tea mouse messages into MouseActions and tracks one
// drag gesture at a time.
type Handler struct {
	HitMap *HitMap

	lastClickAt     time.Time
	lastClickRegion string
	lastClickX      int
	lastClickY      int

	dragging       bool
	dragRegion     string
	dragStartX     int
	dragStartY     int
	dragStartValue int
}

// NewHandler returns a handler with an empty hit map.
func NewHandler() *Handler {
	return &Handler{HitMap: NewHitMap()}
}

// Clear resets the hit map. Drag state survives: regions are re-registered
// every frame while a drag may span many frames.
func (h *Handler) Clear() { h.HitMap.Clear() }

// ClickResult is the outcome of HandleClick.
type ClickResult struct {
	Region        *Region
	IsDoubleClick bool
}

// HandleClick resolves a left press at (x, y) with double-click detection.
// A second press on the same region within the window reports a double
// click and resets, so a triple click is click, double, click.
func (h *Handler) HandleClick(x, y int) ClickResult {
	region := h.HitMap.Test(x, y)

	regionID := ""
	if region != nil {
		regionID = region.ID
	}

	now := time.Now()
	isDouble := h.lastClickRegion != "" &&
		regionID == h.lastClickRegion &&
		x == h.lastClickX && y == h.lastClickY &&
		now.Sub(h.lastClickAt) <= doubleClickWindow

	if isDouble {
		h.lastClickRegion = ""
	} else {
		h.lastClickAt = now
		h.lastClickRegion = regionID
		h.lastClickX = x
		h.lastClickY = y
	}

	return ClickResult{Region: region, IsDoubleClick: isDouble}
}

// StartDrag begins tracking a drag anchored at (x, y) in the named region,
// with an arbitrary caller value (pane width, item index) captured at start.
func (h *Handler) StartDrag(x, y int, region string, value int) {
	h.dragging = true
	h.dragRegion = region
	h.dragStartX = x
	h.dragStartY = y
	h.dragStartValue = value
}

// EndDrag stops drag tracking.
func (h *Handler) EndDrag() {
	h.dragging = false
	h.dragRegion = ""
}

// IsDragging reports whether a drag is in flight.
func (h *Handler) IsDragging() bool { return h.dragging }

// DragRegion returns the region the drag started in, or "".
func (h *Handler) DragRegion() string { return h.dragRegion }

// DragStartValue returns the value captured at StartDrag.
func (h *Handler) DragStartValue() int { return h.dragStartValue }

// DragDelta returns the displacement from the drag anchor.
func (h *Handler) DragDelta(x, y int) (dx, dy int) {
	return x - h.dragStartX, y - h.dragStartY
}

// HandleMouse resolves a raw mouse message into a MouseAction.
func (h *Handler) HandleMouse(msg tea.MouseMsg) MouseAction {
	mods := Modifiers{Ctrl: msg.Ctrl, Shift: msg.Shift, Alt: msg.Alt}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			result := h.HandleClick(msg.X, msg.Y)
			if result.Region == nil && !result.IsDoubleClick {
				return MouseAction{Type: ActionNone, X: msg.X, Y: msg.Y, Mods: mods}
			}
			t := ActionClick
			if result.IsDoubleClick {
				t = ActionDoubleClick
			}
			return MouseAction{
				Type: t, Region: result.Region,
				X: msg.X, Y: msg.Y, Mods: mods,
				IsDoubleClick: result.IsDoubleClick,
			}

		case tea.MouseButtonRight:
			return MouseAction{
				Type: ActionRightClick, Region: h.HitMap.Test(msg.X, msg.Y),
				X: msg.X, Y: msg.Y, Mods: mods,
			}

		case tea.MouseButtonWheelUp:
			if msg.Shift {
				return MouseAction{Type: ActionScrollLeft, X: msg.X, Y: msg.Y, Mods: mods}
			}
			return MouseAction{
				Type: ActionScrollUp, Region: h.HitMap.Test(msg.X, msg.Y),
				X: msg.X, Y: msg.Y, Delta: -3, Mods: mods,
			}

		case tea.MouseButtonWheelDown:
			if msg.Shift {
				return MouseAction{Type: ActionScrollRight, X: msg.X, Y: msg.Y, Mods: mods}
			}
			return MouseAction{
				Type: ActionScrollDown, Region: h.HitMap.Test(msg.X, msg.Y),
				X: msg.X, Y: msg.Y, Delta: 3, Mods: mods,
			}

		case tea.MouseButtonWheelLeft:
			return MouseAction{Type: ActionScrollRight, X: msg.X, Y: msg.Y, Mods: mods}

		case tea.MouseButtonWheelRight:
			return MouseAction{Type: ActionScrollLeft, X: msg.X, Y: msg.Y, Mods: mods}
		}

	case tea.MouseActionMotion:
		if h.dragging {
			dx, dy := h.DragDelta(msg.X, msg.Y)
			return MouseAction{
				Type: ActionDrag, Region: h.HitMap.Test(msg.X, msg.Y),
				X: msg.X, Y: msg.Y,
				DragDX: dx, DragDY: dy, Mods: mods,
			}
		}
		return MouseAction{
			Type: ActionHover, Region: h.HitMap.Test(msg.X, msg.Y),
			X: msg.X, Y: msg.Y, Mods: mods,
		}

	case tea.MouseActionRelease:
		if h.dragging {
			h.EndDrag()
			return MouseAction{
				Type: ActionDragEnd, Region: h.HitMap.Test(msg.X, msg.Y),
				X: msg.X, Y: msg.Y, Mods: mods,
			}
		}
	}

	return MouseAction{Type: ActionNone, X: msg.X, Y: msg.Y, Mods: mods}
}
