package plugin

import (
	"log/slog"

	"github.com/canvas-ai/canvas-tui/internal/api"
	"github.com/canvas-ai/canvas-tui/internal/cache"
	"github.com/canvas-ai/canvas-tui/internal/config"
	"github.com/canvas-ai/canvas-tui/internal/keymap"
)

// Context carries the shared dependencies plugins need. One Context is
// built at startup and handed to every plugin's Init.
type Context struct {
	Config *config.Config
	API    *api.Client
	Cache  *cache.Store // nil when the snapshot cache is disabled
	Keymap *keymap.Registry
	Logger *slog.Logger
}
