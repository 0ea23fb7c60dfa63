package api

import (
	"encoding/json"
	"time"

	"github.com/canvas-ai/canvas-tui/internal/tree"
)

// envelope is the server's uniform response wrapper.
type envelope struct {
	Status  string          `json:"status"` // "success" or "error"
	Message string          `json:"message,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func (e envelope) ok() bool { return e.Status == "success" }

// Document is a leaf item attached to one or more tree paths. Placement is
// additive membership: attaching a document to a path does not detach it
// elsewhere.
type Document struct {
	ID        string          `json:"id"`
	Schema    string          `json:"schema"` // e.g. "data/abstraction/tab"
	Title     string          `json:"title"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// TreeSnapshot is the payload of a full tree fetch.
type TreeSnapshot struct {
	Tree tree.RawNode `json:"tree"`
}

// Event is one push-channel notification. Structural kinds are advisory
// hints that the tree changed elsewhere; handling them is the same full
// refetch a local mutation triggers.
type Event struct {
	Type      string    `json:"type"` // e.g. "tree.path.created"
	Path      string    `json:"path,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// IsStructural reports whether the event indicates a tree change.
func (e Event) IsStructural() bool {
	switch e.Type {
	case "tree.path.created", "tree.path.removed", "tree.path.moved",
		"tree.path.copied", "tree.path.renamed", "tree.layer.merged",
		"tree.layer.subtracted":
		return true
	}
	return false
}

// request bodies

type insertPathReq struct {
	Path             string `json:"path"`
	AutoCreateLayers bool   `json:"autoCreateLayers"`
}

type removePathReq struct {
	Path      string `json:"path"`
	Recursive bool   `json:"recursive"`
}

type renamePathReq struct {
	Path    string `json:"path"`
	NewName string `json:"newName"`
}

type movePathReq struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Recursive bool   `json:"recursive"`
}

type layerOpReq struct {
	Path string `json:"path"`
}

type documentsReq struct {
	Path        string   `json:"path"`
	DocumentIDs []string `json:"documentIds"`
}
