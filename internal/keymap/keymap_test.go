package keymap

import "testing"

func TestResolveContextBeforeGlobal(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	// "d" is remove in the tree context.
	cmd, ok := r.Resolve("browser-tree", "d")
	if !ok || cmd != "remove" {
		t.Errorf("Resolve(browser-tree, d) = %q, %v", cmd, ok)
	}

	// Unbound key in context falls through to global.
	cmd, ok = r.Resolve("browser-tree", "ctrl+c")
	if !ok || cmd != "quit" {
		t.Errorf("Resolve(browser-tree, ctrl+c) = %q, %v", cmd, ok)
	}

	// Completely unbound key resolves to nothing.
	if _, ok := r.Resolve("browser-tree", "ctrl+alt+z"); ok {
		t.Error("unbound key resolved")
	}
}

func TestApplyOverridesRebinds(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	r.ApplyOverrides(map[string]string{"browser-tree.refetch": "ctrl+r"})

	cmd, ok := r.Resolve("browser-tree", "ctrl+r")
	if !ok || cmd != "refetch" {
		t.Errorf("override key = %q, %v", cmd, ok)
	}
	// The old key is released.
	if cmd, ok := r.Resolve("browser-tree", "R"); ok && cmd == "refetch" {
		t.Error("old binding still resolves to refetch")
	}
}

func TestApplyOverridesIgnoresMalformed(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)
	r.ApplyOverrides(map[string]string{
		"no-dot":    "x",
		".leading":  "x",
		"trailing.": "x",
	})
	// Nothing should have changed for real bindings.
	if cmd, _ := r.Resolve("browser-tree", "d"); cmd != "remove" {
		t.Errorf("Resolve after malformed overrides = %q", cmd)
	}
}

func TestBindingsSorted(t *testing.T) {
	r := NewRegistry()
	r.RegisterBinding(Binding{Key: "z", Command: "c1", Context: "x"})
	r.RegisterBinding(Binding{Key: "a", Command: "c2", Context: "x"})
	bs := r.Bindings("x")
	if len(bs) != 2 || bs[0].Key != "a" || bs[1].Key != "z" {
		t.Errorf("Bindings = %+v", bs)
	}
}

func TestRegisterBindingReplaces(t *testing.T) {
	r := NewRegistry()
	r.RegisterBinding(Binding{Key: "a", Command: "old", Context: "x"})
	r.RegisterBinding(Binding{Key: "a", Command: "new", Context: "x"})
	if cmd, _ := r.Resolve("x", "a"); cmd != "new" {
		t.Errorf("Resolve = %q, want new", cmd)
	}
}
