// Package api is the façade over the remote tree authority.
//
// Every mutating call returns (bool, error): false with a nil error is a
// remote rejection the caller surfaces as a failed operation, a non-nil
// error is a transport or protocol failure. The client never patches local
// state; callers follow each success with FetchTree and swap the snapshot
// wholesale, because the server may normalize names and structure in ways
// the client must not guess.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Client talks to one canvas context over REST.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
	logger  *slog.Logger
}

// New creates a client for the given server base URL and API token.
func New(baseURL, token string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpc:   &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

// FetchTree retrieves the full tree. There is no incremental diff contract;
// the result replaces the previous snapshot entirely.
func (c *Client) FetchTree(ctx context.Context) (TreeSnapshot, error) {
	var snap TreeSnapshot
	env, err := c.do(ctx, http.MethodGet, "/api/tree", nil)
	if err != nil {
		return snap, err
	}
	if !env.ok() {
		return snap, fmt.Errorf("fetch tree: %s", env.Message)
	}
	if err := json.Unmarshal(env.Payload, &snap); err != nil {
		return snap, fmt.Errorf("fetch tree: decode payload: %w", err)
	}
	return snap, nil
}

// FetchDocuments lists the documents attached to path, optionally narrowed
// by schema filters.
func (c *Client) FetchDocuments(ctx context.Context, path string, filters []string) ([]Document, error) {
	q := url.Values{}
	q.Set("path", path)
	for _, f := range filters {
		q.Add("filter", f)
	}
	env, err := c.do(ctx, http.MethodGet, "/api/documents?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	if !env.ok() {
		return nil, fmt.Errorf("fetch documents: %s", env.Message)
	}
	var docs []Document
	if err := json.Unmarshal(env.Payload, &docs); err != nil {
		return nil, fmt.Errorf("fetch documents: decode payload: %w", err)
	}
	return docs, nil
}

// InsertPath creates a path. With autoCreateLayers the server creates any
// missing intermediate layers.
func (c *Client) InsertPath(ctx context.Context, path string, autoCreateLayers bool) (bool, error) {
	return c.mutate(ctx, http.MethodPost, "/api/tree/paths",
		insertPathReq{Path: path, AutoCreateLayers: autoCreateLayers})
}

// RemovePath removes a path, recursively when asked.
func (c *Client) RemovePath(ctx context.Context, path string, recursive bool) (bool, error) {
	return c.mutate(ctx, http.MethodDelete, "/api/tree/paths",
		removePathReq{Path: path, Recursive: recursive})
}

// RenamePath changes the final segment of path to newName.
func (c *Client) RenamePath(ctx context.Context, path, newName string) (bool, error) {
	return c.mutate(ctx, http.MethodPost, "/api/tree/paths/rename",
		renamePathReq{Path: path, NewName: newName})
}

// MovePath moves the layer at from under to.
func (c *Client) MovePath(ctx context.Context, from, to string, recursive bool) (bool, error) {
	return c.mutate(ctx, http.MethodPost, "/api/tree/paths/move",
		movePathReq{From: from, To: to, Recursive: recursive})
}

// CopyPath copies the layer at from under to.
func (c *Client) CopyPath(ctx context.Context, from, to string, recursive bool) (bool, error) {
	return c.mutate(ctx, http.MethodPost, "/api/tree/paths/copy",
		movePathReq{From: from, To: to, Recursive: recursive})
}

// MergeUp merges the layer's bitmap into its parent. The semantics are the
// server's; this client only reports success or failure.
func (c *Client) MergeUp(ctx context.Context, path string) (bool, error) {
	return c.mutate(ctx, http.MethodPost, "/api/tree/layers/merge-up", layerOpReq{Path: path})
}

// MergeDown merges the parent's bitmap into the layer.
func (c *Client) MergeDown(ctx context.Context, path string) (bool, error) {
	return c.mutate(ctx, http.MethodPost, "/api/tree/layers/merge-down", layerOpReq{Path: path})
}

// SubtractUp subtracts the layer's bitmap from its parent.
func (c *Client) SubtractUp(ctx context.Context, path string) (bool, error) {
	return c.mutate(ctx, http.MethodPost, "/api/tree/layers/subtract-up", layerOpReq{Path: path})
}

// SubtractDown subtracts the parent's bitmap from the layer.
func (c *Client) SubtractDown(ctx context.Context, path string) (bool, error) {
	return c.mutate(ctx, http.MethodPost, "/api/tree/layers/subtract-down", layerOpReq{Path: path})
}

// PasteDocuments attaches documents to path. Membership is additive; the
// documents stay attached wherever else they already live.
func (c *Client) PasteDocuments(ctx context.Context, path string, documentIDs []string) (bool, error) {
	return c.mutate(ctx, http.MethodPost, "/api/paths/documents",
		documentsReq{Path: path, DocumentIDs: documentIDs})
}

// RemoveDocuments detaches documents from path only.
func (c *Client) RemoveDocuments(ctx context.Context, path string, documentIDs []string) (bool, error) {
	return c.mutate(ctx, http.MethodDelete, "/api/paths/documents",
		documentsReq{Path: path, DocumentIDs: documentIDs})
}

// mutate performs a mutating call. A well-formed error envelope (any status
// code) is a remote rejection, not an error.
func (c *Client) mutate(ctx context.Context, method, path string, body interface{}) (bool, error) {
	env, err := c.do(ctx, method, path, body)
	if err != nil {
		return false, err
	}
	if !env.ok() {
		c.logger.Debug("remote rejected operation", "path", path, "message", env.Message)
		return false, nil
	}
	return true, nil
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (envelope, error) {
	var env envelope

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return env, fmt.Errorf("%s %s: encode body: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return env, fmt.Errorf("%s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return env, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return env, fmt.Errorf("%s %s: read response: %w", method, path, err)
	}

	if err := json.Unmarshal(data, &env); err != nil {
		// No envelope at all: treat as a protocol failure, not a rejection.
		return env, fmt.Errorf("%s %s: unexpected response (status %d)", method, path, resp.StatusCode)
	}
	if resp.StatusCode >= 500 {
		return env, fmt.Errorf("%s %s: server error: %s", method, path, env.Message)
	}
	return env, nil
}
