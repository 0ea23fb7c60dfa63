package plugin

import tea "github.com/charmbracelet/bubbletea"

// Registry keeps plugins in registration order.
type Registry struct {
	plugins []Plugin
	byID    map[string]Plugin
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]Plugin)}
}

// Register adds a plugin. Registering the same ID twice replaces the entry
// but keeps its original position.
func (r *Registry) Register(p Plugin) {
	if _, ok := r.byID[p.ID()]; ok {
		for i, existing := range r.plugins {
			if existing.ID() == p.ID() {
				r.plugins[i] = p
				break
			}
		}
	} else {
		r.plugins = append(r.plugins, p)
	}
	r.byID[p.ID()] = p
}

// Get returns the plugin with the given ID.
func (r *Registry) Get(id string) (Plugin, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// All returns the registered plugins in order.
func (r *Registry) All() []Plugin {
	out := make([]Plugin, len(r.plugins))
	copy(out, r.plugins)
	return out
}

// Len returns the number of registered plugins.
func (r *Registry) Len() int {
	return len(r.plugins)
}

// Replace swaps the plugin at index i with the instance returned by its
// Update. Out-of-range indexes are ignored.
func (r *Registry) Replace(i int, p Plugin) {
	if i < 0 || i >= len(r.plugins) {
		return
	}
	r.plugins[i] = p
	r.byID[p.ID()] = p
}

// Start starts every plugin and collects their initial commands.
func (r *Registry) Start() []tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(r.plugins))
	for _, p := range r.plugins {
		if cmd := p.Start(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

// Stop stops every plugin.
func (r *Registry) Stop() {
	for _, p := range r.plugins {
		p.Stop()
	}
}
