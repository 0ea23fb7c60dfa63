package keymap

// DefaultBindings returns the default key bindings.
func DefaultBindings() []Binding {
	return []Binding{
		// Global bindings
		{Key: "q", Command: "quit", Context: "global"},
		{Key: "ctrl+c", Command: "quit", Context: "global"},
		{Key: "`", Command: "next-plugin", Context: "global"},
		{Key: "~", Command: "prev-plugin", Context: "global"},
		{Key: "1", Command: "focus-plugin-1", Context: "global"},
		{Key: "2", Command: "focus-plugin-2", Context: "global"},
		{Key: "ctrl+h", Command: "toggle-footer", Context: "global"},
		{Key: "j", Command: "cursor-down", Context: "global"},
		{Key: "down", Command: "cursor-down", Context: "global"},
		{Key: "k", Command: "cursor-up", Context: "global"},
		{Key: "up", Command: "cursor-up", Context: "global"},
		{Key: "g", Command: "cursor-top", Context: "global"},
		{Key: "G", Command: "cursor-bottom", Context: "global"},
		{Key: "enter", Command: "select", Context: "global"},
		{Key: "esc", Command: "back", Context: "global"},

		// Browser tree context
		{Key: "tab", Command: "switch-pane", Context: "browser-tree"},
		{Key: "shift+tab", Command: "switch-pane", Context: "browser-tree"},
		{Key: "l", Command: "expand", Context: "browser-tree"},
		{Key: "right", Command: "expand", Context: "browser-tree"},
		{Key: "h", Command: "collapse", Context: "browser-tree"},
		{Key: "left", Command: "collapse", Context: "browser-tree"},
		{Key: "space", Command: "toggle-select", Context: "browser-tree"},
		{Key: "a", Command: "create-child", Context: "browser-tree"},
		{Key: "r", Command: "rename", Context: "browser-tree"},
		{Key: "d", Command: "remove", Context: "browser-tree"},
		{Key: "D", Command: "remove-recursive", Context: "browser-tree"},
		{Key: "y", Command: "copy-path", Context: "browser-tree"},
		{Key: "x", Command: "cut-path", Context: "browser-tree"},
		{Key: "p", Command: "paste", Context: "browser-tree"},
		{Key: "P", Command: "paste-recursive", Context: "browser-tree"},
		{Key: "Y", Command: "yank-path", Context: "browser-tree"},
		{Key: "R", Command: "refetch", Context: "browser-tree"},
		{Key: "f", Command: "cycle-filter", Context: "browser-tree"},
		{Key: "m", Command: "context-menu", Context: "browser-tree"},

		// Browser documents context
		{Key: "tab", Command: "switch-pane", Context: "browser-documents"},
		{Key: "shift+tab", Command: "switch-pane", Context: "browser-documents"},
		{Key: "space", Command: "toggle-select", Context: "browser-documents"},
		{Key: "y", Command: "copy-documents", Context: "browser-documents"},
		{Key: "x", Command: "cut-documents", Context: "browser-documents"},
		{Key: "d", Command: "remove-documents", Context: "browser-documents"},
		{Key: "enter", Command: "preview", Context: "browser-documents"},
		{Key: "f", Command: "cycle-filter", Context: "browser-documents"},
		{Key: "R", Command: "refetch", Context: "browser-documents"},
		{Key: "m", Command: "context-menu", Context: "browser-documents"},

		// Browser document preview context
		{Key: "esc", Command: "back", Context: "browser-preview"},
		{Key: "q", Command: "back", Context: "browser-preview"},
		{Key: "j", Command: "scroll-down", Context: "browser-preview"},
		{Key: "k", Command: "scroll-up", Context: "browser-preview"},
		{Key: "down", Command: "scroll-down", Context: "browser-preview"},
		{Key: "up", Command: "scroll-up", Context: "browser-preview"},
		{Key: "ctrl+d", Command: "page-down", Context: "browser-preview"},
		{Key: "ctrl+u", Command: "page-up", Context: "browser-preview"},

		// Browser text input context (create/rename prompts)
		{Key: "esc", Command: "cancel", Context: "browser-input"},
		{Key: "enter", Command: "confirm", Context: "browser-input"},

		// Browser context menu
		{Key: "esc", Command: "cancel", Context: "browser-menu"},
		{Key: "enter", Command: "confirm", Context: "browser-menu"},
		{Key: "j", Command: "cursor-down", Context: "browser-menu"},
		{Key: "k", Command: "cursor-up", Context: "browser-menu"},
		{Key: "down", Command: "cursor-down", Context: "browser-menu"},
		{Key: "up", Command: "cursor-up", Context: "browser-menu"},

		// Events feed context
		{Key: "c", Command: "clear-feed", Context: "events"},
	}
}

// RegisterDefaults registers all default bindings with the registry.
func RegisterDefaults(r *Registry) {
	for _, b := range DefaultBindings() {
		r.RegisterBinding(b)
	}
}
