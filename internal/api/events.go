package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	eventBuffer    = 64
	reconnectDelay = 5 * time.Second
)

// Listener subscribes to the server's push channel and delivers events on a
// buffered channel. Slow consumers drop events rather than block the reader;
// a dropped structural event only costs an extra refetch on the next one.
type Listener struct {
	wsURL  string
	token  string
	logger *slog.Logger

	events chan Event

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewListener builds a listener for the given HTTP base URL. The websocket
// endpoint is derived from it.
func NewListener(baseURL, token string, logger *slog.Logger) (*Listener, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("events: parse base URL: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return nil, fmt.Errorf("events: unsupported scheme %q", u.Scheme)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/api/events"

	return &Listener{
		wsURL:  u.String(),
		token:  token,
		logger: logger,
		events: make(chan Event, eventBuffer),
	}, nil
}

// Events returns the channel events arrive on. The channel is closed when
// the listener stops.
func (l *Listener) Events() <-chan Event {
	return l.events
}

// Start connects and begins delivering events. Lost connections are retried
// until Stop is called.
func (l *Listener) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.done = make(chan struct{})
	go l.run(ctx)
}

// Stop tears down the connection and closes the event channel.
func (l *Listener) Stop() {
	l.mu.Lock()
	cancel, done := l.cancel, l.done
	l.cancel = nil
	l.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (l *Listener) run(ctx context.Context) {
	defer close(l.done)
	defer close(l.events)

	for {
		if err := l.listen(ctx); err != nil && ctx.Err() == nil {
			l.logger.Warn("event channel dropped", "error", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func (l *Listener) listen(ctx context.Context) error {
	header := http.Header{}
	if l.token != "" {
		header.Set("Authorization", "Bearer "+l.token)
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, l.wsURL, header)
	if err != nil {
		return fmt.Errorf("dial %s: %w", l.wsURL, err)
	}
	defer conn.Close()

	// Unblock ReadMessage when the context is cancelled.
	readDone := make(chan struct{})
	defer close(readDone)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-readDone:
		}
	}()

	l.logger.Debug("event channel connected", "url", l.wsURL)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			l.logger.Debug("skipping malformed event", "error", err)
			continue
		}
		select {
		case l.events <- ev:
		default:
			l.logger.Debug("event buffer full, dropping", "type", ev.Type)
		}
	}
}
