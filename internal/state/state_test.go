package state

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestInitWithMissingFile(t *testing.T) {
	if err := InitWithDir(t.TempDir()); err != nil {
		t.Fatalf("InitWithDir: %v", err)
	}
	if got := GetBrowserState(); !reflect.DeepEqual(got, BrowserState{}) {
		t.Errorf("fresh state = %+v, want zero", got)
	}
	if GetTreePaneWidth() != 0 {
		t.Errorf("TreePaneWidth = %d, want 0", GetTreePaneWidth())
	}
}

func TestSetSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	if err := InitWithDir(dir); err != nil {
		t.Fatalf("InitWithDir: %v", err)
	}

	bs := BrowserState{
		SelectedPath:    "/work/reports",
		ExpandedPaths:   []string{"/", "/work"},
		DocumentFilters: []string{"data/abstraction/tab"},
		ActivePane:      "documents",
		TreeScroll:      4,
	}
	if err := SetBrowserState(bs); err != nil {
		t.Fatalf("SetBrowserState: %v", err)
	}
	if err := SetTreePaneWidth(48); err != nil {
		t.Fatalf("SetTreePaneWidth: %v", err)
	}

	// Reload from disk and verify everything survived.
	if err := InitWithDir(dir); err != nil {
		t.Fatalf("re-init: %v", err)
	}
	if got := GetBrowserState(); !reflect.DeepEqual(got, bs) {
		t.Errorf("reloaded browser state = %+v, want %+v", got, bs)
	}
	if GetTreePaneWidth() != 48 {
		t.Errorf("TreePaneWidth = %d, want 48", GetTreePaneWidth())
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "canvas-tui")
	if err := InitWithDir(dir); err != nil {
		t.Fatalf("InitWithDir: %v", err)
	}
	if err := SetTreePaneWidth(30); err != nil {
		t.Fatalf("SetTreePaneWidth: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "state.json")); err != nil {
		t.Errorf("state file not written: %v", err)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "state.json"), []byte("{nope"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := InitWithDir(dir); err == nil {
		t.Fatal("expected error for corrupt state file")
	}
}
