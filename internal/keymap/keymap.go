// Package keymap maps keys to commands per focus context. Plugins resolve
// keys through a Registry so user overrides from the config file apply
// uniformly.
package keymap

import (
	"sort"
	"sync"
)

// Binding ties a key to a command within a focus context.
type Binding struct {
	Key     string
	Command string
	Context string
}

// Registry holds bindings and resolves keys to commands.
type Registry struct {
	mu sync.RWMutex
	// context -> key -> command
	byContext map[string]map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byContext: make(map[string]map[string]string)}
}

// RegisterBinding adds or replaces a binding.
func (r *Registry) RegisterBinding(b Binding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := r.byContext[b.Context]
	if keys == nil {
		keys = make(map[string]string)
		r.byContext[b.Context] = keys
	}
	keys[b.Key] = b.Command
}

// Resolve returns the command bound to key in context, falling back to the
// global context.
func (r *Registry) Resolve(context, key string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if cmd, ok := r.byContext[context][key]; ok {
		return cmd, true
	}
	cmd, ok := r.byContext["global"][key]
	return cmd, ok
}

// ApplyOverrides rebinds commands per the config keymap overrides. Override
// keys take the form "context.command" and the value is the new key. The
// old key for that command is released.
func (r *Registry) ApplyOverrides(overrides map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for target, newKey := range overrides {
		ctx, cmd, ok := splitOverride(target)
		if !ok {
			continue
		}
		keys := r.byContext[ctx]
		if keys == nil {
			keys = make(map[string]string)
			r.byContext[ctx] = keys
		}
		for k, c := range keys {
			if c == cmd {
				delete(keys, k)
			}
		}
		keys[newKey] = cmd
	}
}

// Bindings returns the bindings registered for a context, sorted by key.
func (r *Registry) Bindings(context string) []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Binding
	for k, cmd := range r.byContext[context] {
		out = append(out, Binding{Key: k, Command: cmd, Context: context})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func splitOverride(target string) (context, command string, ok bool) {
	for i := 0; i < len(target); i++ {
		if target[i] == '.' {
			if i == 0 || i == len(target)-1 {
				return "", "", false
			}
			return target[:i], target[i+1:], true
		}
	}
	return "", "", false
}
