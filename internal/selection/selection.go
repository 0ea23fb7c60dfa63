// Package selection implements multi-select state for the document listing.
package selection

// Set tracks the selected document ids of the current listing scope. It is
// cleared whenever the scope (selected path, active filters) changes, so it
// can never reference a document that is not on screen.
type Set struct {
	ids   map[string]struct{}
	order []string // insertion order, for stable menu targets
}

// New returns an empty selection.
func New() *Set {
	return &Set{ids: make(map[string]struct{})}
}

// Click replaces the selection with exactly {id}. A plain click is also the
// only gesture that triggers the primary action; the caller decides that.
func (s *Set) Click(id string) {
	s.Clear()
	s.add(id)
}

// CtrlClick toggles membership of id, leaving other members alone.
func (s *Set) CtrlClick(id string) {
	if s.Contains(id) {
		s.remove(id)
		return
	}
	s.add(id)
}

// RightClick prepares the target set for a context menu. When id is already
// selected the menu covers the whole selection; otherwise the selection
// collapses to {id} first. The returned slice is the menu target set.
func (s *Set) RightClick(id string) []string {
	if !s.Contains(id) {
		s.Click(id)
	}
	return s.IDs()
}

// Contains reports membership.
func (s *Set) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// IDs returns the selected ids in insertion order.
func (s *Set) IDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the selection size.
func (s *Set) Len() int { return len(s.ids) }

// Clear empties the selection. Called unconditionally on every listing-scope
// change.
func (s *Set) Clear() {
	s.ids = make(map[string]struct{})
	s.order = s.order[:0]
}

// Prune drops ids that are no longer present in the listing.
func (s *Set) Prune(present map[string]struct{}) {
	kept := s.order[:0]
	for _, id := range s.order {
		if _, ok := present[id]; ok {
			kept = append(kept, id)
		} else {
			delete(s.ids, id)
		}
	}
	s.order = kept
}

func (s *Set) add(id string) {
	if s.Contains(id) {
		return
	}
	s.ids[id] = struct{}{}
	s.order = append(s.order, id)
}

func (s *Set) remove(id string) {
	delete(s.ids, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
