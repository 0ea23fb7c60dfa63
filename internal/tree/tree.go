// Package tree holds the immutable snapshot of the remote context tree.
//
// The server is the only authority over tree structure: every mutation is
// followed by a full refetch, and the result replaces the previous snapshot
// wholesale. Identity across snapshots is the path string, never the node id
// (ids are only stable within one fetch).
package tree

import (
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Node is a single layer in the context tree.
type Node struct {
	ID          string
	Name        string // path segment, unique among siblings
	Label       string // display name
	Color       string // optional swatch, e.g. "#ffaa00"
	Description string
	Path        string // full path, derived at snapshot build time
	Children    []*Node
}

// IsRoot reports whether the node is the implicit root layer.
func (n *Node) IsRoot() bool { return n.Path == "/" }

// DisplayName returns the label, falling back to the segment name.
func (n *Node) DisplayName() string {
	if n.Label != "" {
		return n.Label
	}
	if n.IsRoot() {
		return "/"
	}
	return n.Name
}

// Snapshot is one fetched tree with all paths pre-derived. It is never
// mutated; a new snapshot replaces it after every remote change.
type Snapshot struct {
	Root    *Node
	byPath  map[string]*Node
	version uint64
}

// RawNode is the wire shape of a tree node as returned by the server.
type RawNode struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Label       string    `json:"label,omitempty"`
	Color       string    `json:"color,omitempty"`
	Description string    `json:"description,omitempty"`
	Children    []RawNode `json:"children,omitempty"`
}

// Build derives a snapshot from a raw server tree. The raw root's own name is
// ignored; its path is always "/".
func Build(raw RawNode) *Snapshot {
	s := &Snapshot{byPath: make(map[string]*Node)}
	s.Root = buildNode(raw, "/", s.byPath)
	s.Root.Path = "/"
	s.byPath["/"] = s.Root
	s.version = s.hash()
	return s
}

// Empty returns a snapshot holding only the root layer. Used before the first
// fetch completes so the view always has something to render.
func Empty() *Snapshot {
	return Build(RawNode{Name: ""})
}

func buildNode(raw RawNode, path string, index map[string]*Node) *Node {
	n := &Node{
		ID:          raw.ID,
		Name:        raw.Name,
		Label:       raw.Label,
		Color:       raw.Color,
		Description: raw.Description,
		Path:        path,
	}
	index[path] = n
	for _, rc := range raw.Children {
		childPath := Join(path, rc.Name)
		n.Children = append(n.Children, buildNode(rc, childPath, index))
	}
	return n
}

// Join appends a segment to a parent path.
func Join(parent, segment string) string {
	if parent == "/" {
		return "/" + segment
	}
	return parent + "/" + segment
}

// Parent returns the parent path of p, or "/" when p is root or a top-level
// layer.
func Parent(p string) string {
	if p == "/" {
		return "/"
	}
	idx := strings.LastIndex(p, "/")
	if idx <= 0 {
		return "/"
	}
	return p[:idx]
}

// Segment returns the final path segment, or "" for root.
func Segment(p string) string {
	if p == "/" {
		return ""
	}
	return p[strings.LastIndex(p, "/")+1:]
}

// Depth returns the number of segments in p; root is depth 0.
func Depth(p string) int {
	if p == "/" {
		return 0
	}
	return strings.Count(p, "/")
}

// IsDescendant reports whether path lies strictly below ancestor.
func IsDescendant(ancestor, path string) bool {
	if ancestor == path {
		return false
	}
	if ancestor == "/" {
		return strings.HasPrefix(path, "/") && path != "/"
	}
	return strings.HasPrefix(path, ancestor+"/")
}

// Resolve looks up a node by its full path. Returns nil when the path does
// not exist in this snapshot.
func (s *Snapshot) Resolve(path string) *Node {
	return s.byPath[path]
}

// NearestExisting walks up from path until it finds a node present in the
// snapshot. Root always exists.
func (s *Snapshot) NearestExisting(path string) string {
	for path != "/" {
		if s.byPath[path] != nil {
			return path
		}
		path = Parent(path)
	}
	return "/"
}

// Len returns the number of nodes, root included.
func (s *Snapshot) Len() int { return len(s.byPath) }

// PathSet returns the set of paths present in the snapshot, in the shape
// selection pruning wants.
func (s *Snapshot) PathSet() map[string]struct{} {
	out := make(map[string]struct{}, len(s.byPath))
	for p := range s.byPath {
		out[p] = struct{}{}
	}
	return out
}

// Version is a content hash of the snapshot. Two fetches that return the same
// structure hash identically, which lets callers skip reselection work when a
// refetch changed nothing.
func (s *Snapshot) Version() uint64 { return s.version }

func (s *Snapshot) hash() uint64 {
	paths := make([]string, 0, len(s.byPath))
	for p := range s.byPath {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	h := xxhash.New()
	for _, p := range paths {
		n := s.byPath[p]
		_, _ = h.WriteString(p)
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(n.Label)
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(n.Color)
		_, _ = h.WriteString("\x1e")
	}
	return h.Sum64()
}

// RemapPath recomputes a path after the prefix oldPrefix was moved or renamed
// to newPrefix. Paths outside the old prefix are returned unchanged.
func RemapPath(path, oldPrefix, newPrefix string) string {
	if path == oldPrefix {
		return newPrefix
	}
	if IsDescendant(oldPrefix, path) {
		return newPrefix + path[len(oldPrefix):]
	}
	return path
}

// ValidateSegment rejects names that cannot be a path segment.
func ValidateSegment(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, "/\x00") {
		return false
	}
	for _, r := range name {
		if r < 32 {
			return false
		}
	}
	return true
}

// HasChildNamed reports whether node already has a child with the given
// segment name. Sibling names are unique within one snapshot.
func (n *Node) HasChildNamed(name string) bool {
	for _, c := range n.Children {
		if c.Name == name {
			return true
		}
	}
	return false
}
