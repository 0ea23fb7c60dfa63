package tree

import "testing"

func sampleRaw() RawNode {
	return RawNode{
		ID:   "root",
		Name: "",
		Children: []RawNode{
			{
				ID:   "n1",
				Name: "work",
				Children: []RawNode{
					{ID: "n2", Name: "reports"},
					{ID: "n3", Name: "drafts", Label: "Drafts"},
				},
			},
			{ID: "n4", Name: "home", Color: "#10B981"},
		},
	}
}

func TestBuild_DerivesPaths(t *testing.T) {
	s := Build(sampleRaw())

	tests := []struct {
		path string
		id   string
	}{
		{"/", "root"},
		{"/work", "n1"},
		{"/work/reports", "n2"},
		{"/work/drafts", "n3"},
		{"/home", "n4"},
	}
	for _, tt := range tests {
		n := s.Resolve(tt.path)
		if n == nil {
			t.Fatalf("Resolve(%q) = nil, want node %s", tt.path, tt.id)
		}
		if n.ID != tt.id {
			t.Errorf("Resolve(%q).ID = %s, want %s", tt.path, n.ID, tt.id)
		}
		if n.Path != tt.path {
			t.Errorf("node %s has Path %q, want %q", n.ID, n.Path, tt.path)
		}
	}

	if s.Resolve("/nope") != nil {
		t.Error("Resolve of missing path should be nil")
	}
	if s.Len() != 5 {
		t.Errorf("Len = %d, want 5", s.Len())
	}
}

func TestBuild_RenameReresolves(t *testing.T) {
	// Simulates the refetch after renaming /work -> /projects: the old path
	// must stop resolving and the new one must resolve.
	raw := sampleRaw()
	raw.Children[0].Name = "projects"
	s := Build(raw)

	if s.Resolve("/work") != nil {
		t.Error("old path should not resolve after rename")
	}
	if s.Resolve("/projects") == nil {
		t.Error("renamed path should resolve")
	}
	if s.Resolve("/projects/reports") == nil {
		t.Error("descendant of renamed path should resolve under new prefix")
	}
}

func TestIsDescendant(t *testing.T) {
	tests := []struct {
		ancestor, path string
		want           bool
	}{
		{"/", "/work", true},
		{"/", "/", false},
		{"/work", "/work", false},
		{"/work", "/work/reports", true},
		{"/work", "/workshop", false},
		{"/work", "/home", false},
		{"/work/reports", "/work", false},
	}
	for _, tt := range tests {
		if got := IsDescendant(tt.ancestor, tt.path); got != tt.want {
			t.Errorf("IsDescendant(%q, %q) = %v, want %v", tt.ancestor, tt.path, got, tt.want)
		}
	}
}

func TestDepthParentSegment(t *testing.T) {
	if Depth("/") != 0 || Depth("/work") != 1 || Depth("/work/reports") != 2 {
		t.Error("unexpected depths")
	}
	if Parent("/work/reports") != "/work" {
		t.Errorf("Parent(/work/reports) = %q", Parent("/work/reports"))
	}
	if Parent("/work") != "/" || Parent("/") != "/" {
		t.Error("top-level and root parents should be /")
	}
	if Segment("/work/reports") != "reports" || Segment("/") != "" {
		t.Error("unexpected segments")
	}
	if Join("/", "a") != "/a" || Join("/a", "b") != "/a/b" {
		t.Error("unexpected joins")
	}
}

func TestRemapPath(t *testing.T) {
	tests := []struct {
		path, oldPrefix, newPrefix, want string
	}{
		{"/work", "/work", "/projects", "/projects"},
		{"/work/reports/q1", "/work", "/projects", "/projects/reports/q1"},
		{"/home", "/work", "/projects", "/home"},
		{"/workshop", "/work", "/projects", "/workshop"},
	}
	for _, tt := range tests {
		if got := RemapPath(tt.path, tt.oldPrefix, tt.newPrefix); got != tt.want {
			t.Errorf("RemapPath(%q, %q, %q) = %q, want %q",
				tt.path, tt.oldPrefix, tt.newPrefix, got, tt.want)
		}
	}
}

func TestNearestExisting(t *testing.T) {
	s := Build(sampleRaw())

	if got := s.NearestExisting("/work/reports"); got != "/work/reports" {
		t.Errorf("existing path should return itself, got %q", got)
	}
	if got := s.NearestExisting("/work/reports/q1/jan"); got != "/work/reports" {
		t.Errorf("want nearest ancestor /work/reports, got %q", got)
	}
	if got := s.NearestExisting("/gone/deeper"); got != "/" {
		t.Errorf("fully missing path should fall back to /, got %q", got)
	}
}

func TestVersion_StableAcrossIdenticalFetches(t *testing.T) {
	a := Build(sampleRaw())
	b := Build(sampleRaw())
	if a.Version() != b.Version() {
		t.Error("identical trees should hash identically")
	}

	raw := sampleRaw()
	raw.Children = append(raw.Children, RawNode{ID: "n5", Name: "inbox"})
	c := Build(raw)
	if c.Version() == a.Version() {
		t.Error("structurally different trees should hash differently")
	}
}

func TestValidateSegment(t *testing.T) {
	valid := []string{"work", "q1-2026", "a b", "δοκιμή"}
	for _, name := range valid {
		if !ValidateSegment(name) {
			t.Errorf("ValidateSegment(%q) = false, want true", name)
		}
	}
	invalid := []string{"", ".", "..", "a/b", "a\x00b", "a\tb"}
	for _, name := range invalid {
		if ValidateSegment(name) {
			t.Errorf("ValidateSegment(%q) = true, want false", name)
		}
	}
}

func TestHasChildNamed(t *testing.T) {
	s := Build(sampleRaw())
	work := s.Resolve("/work")
	if !work.HasChildNamed("reports") {
		t.Error("expected child named reports")
	}
	if work.HasChildNamed("nope") {
		t.Error("unexpected child named nope")
	}
}
