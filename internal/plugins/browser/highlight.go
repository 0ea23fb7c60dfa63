package browser

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"

	"github.com/canvas-ai/canvas-tui/internal/api"
	"github.com/canvas-ai/canvas-tui/internal/styles"
)

// renderDocumentBody turns a document into preview lines: a short metadata
// block followed by the syntax-highlighted payload.
func renderDocumentBody(d *api.Document) []string {
	lines := []string{
		styles.Muted.Render("id      ") + d.ID,
		styles.Muted.Render("schema  ") + d.Schema,
	}
	if !d.UpdatedAt.IsZero() {
		lines = append(lines, styles.Muted.Render("updated ")+d.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	lines = append(lines, "")

	if len(d.Data) == 0 {
		return append(lines, styles.Muted.Render("(no payload)"))
	}
	return append(lines, highlightJSON(d.Data)...)
}

// highlightJSON pretty-prints and colorizes a JSON payload, falling back to
// the raw text when it does not parse or the highlighter fails.
func highlightJSON(raw json.RawMessage) []string {
	pretty := raw
	var v interface{}
	if err := json.Unmarshal(raw, &v); err == nil {
		if out, err := json.MarshalIndent(v, "", "  "); err == nil {
			pretty = out
		}
	}

	var buf bytes.Buffer
	if err := quick.Highlight(&buf, string(pretty), "json", "terminal256", "monokai"); err != nil {
		return strings.Split(string(pretty), "\n")
	}
	return strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
}
