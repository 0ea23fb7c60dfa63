// Package state persists lightweight session preferences between runs:
// which path was selected, which layers were expanded, pane sizing. None of
// it is authoritative; a restored path that no longer exists is resolved
// against the next snapshot like any other stale selection.
package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// State holds persistent user preferences.
type State struct {
	// Pane width preference (columns, 0 = use config default)
	TreePaneWidth int `json:"treePaneWidth,omitempty"`

	Browser BrowserState `json:"browser,omitempty"`
}

// BrowserState holds persistent context browser state.
type BrowserState struct {
	SelectedPath    string   `json:"selectedPath,omitempty"`    // last selected tree path
	ExpandedPaths   []string `json:"expandedPaths,omitempty"`   // paths expanded in the tree pane
	DocumentFilters []string `json:"documentFilters,omitempty"` // active schema filters
	ActivePane      string   `json:"activePane,omitempty"`      // "tree" or "documents"
	TreeScroll      int      `json:"treeScroll,omitempty"`
}

var (
	current *State
	mu      sync.RWMutex
	path    string
)

// Init loads state from the default location.
func Init() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	return InitWithDir(filepath.Join(home, ".config", "canvas-tui"))
}

// InitWithDir loads state from a specified directory.
// This is primarily for testing to avoid reading real user state.
func InitWithDir(dir string) error {
	path = filepath.Join(dir, "state.json")
	return Load()
}

// Load reads state from disk.
func Load() error {
	mu.Lock()
	defer mu.Unlock()

	current = &State{}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil // no state file yet, use defaults
	}
	if err != nil {
		return err
	}

	return json.Unmarshal(data, current)
}

// Save writes state to disk.
func Save() error {
	mu.RLock()
	defer mu.RUnlock()

	if current == nil {
		return nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetTreePaneWidth returns the saved tree pane width.
// Returns 0 if no preference is saved (use default).
func GetTreePaneWidth() int {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return 0
	}
	return current.TreePaneWidth
}

// SetTreePaneWidth saves the tree pane width.
func SetTreePaneWidth(width int) error {
	mu.Lock()
	if current == nil {
		current = &State{}
	}
	current.TreePaneWidth = width
	mu.Unlock()
	return Save()
}

// GetBrowserState returns the saved browser state.
func GetBrowserState() BrowserState {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return BrowserState{}
	}
	return current.Browser
}

// SetBrowserState saves the browser state.
func SetBrowserState(state BrowserState) error {
	mu.Lock()
	if current == nil {
		current = &State{}
	}
	current.Browser = state
	mu.Unlock()
	return Save()
}
