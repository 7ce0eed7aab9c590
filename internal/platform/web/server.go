// Package web serves the game to browsers over WebSocket. Every connection
// plays its own game; all connections share the highscore store.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/vibe-snake/internal/core"
	"github.com/vovakirdan/vibe-snake/internal/highscore"
	"github.com/vovakirdan/vibe-snake/internal/input"
	"github.com/vovakirdan/vibe-snake/internal/session"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 4096
	inboxSize      = 16
)

//go:embed static
var staticFiles embed.FS

// Config holds configuration for the web server.
type Config struct {
	Address        string
	TickInterval   time.Duration
	GridSize       int
	SwipeThreshold float64
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:      ":8080",
		TickInterval: 100 * time.Millisecond,
		GridSize:     100,
	}
}

// Server runs one game per WebSocket connection.
type Server struct {
	config   Config
	deps     session.Deps
	logger   *log.Logger
	upgrader websocket.Upgrader
	http     *http.Server

	// newTicker drives every game loop; tests replace it with a manual clock.
	newTicker func(time.Duration) (<-chan time.Time, func())

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a web server. deps are shared by every connection.
func NewServer(cfg Config, deps session.Deps, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "vibesnake-web",
		})
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultConfig().TickInterval
	}
	deps.Logger = logger

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		config: cfg,
		deps:   deps,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		newTicker: func(d time.Duration) (<-chan time.Time, func()) {
			t := time.NewTicker(d)
			return t.C, t.Stop
		},
		ctx:    ctx,
		cancel: cancel,
	}
	s.http = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the HTTP routes: the static client, /ws and
// /api/highscores.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	static, err := fs.Sub(staticFiles, "static")
	if err == nil {
		mux.Handle("GET /", http.FileServer(http.FS(static)))
	}
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	mux.HandleFunc("GET /api/highscores", s.handleHighscores)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

// ListenAndServe starts the HTTP server and blocks until it is shut down.
func (s *Server) ListenAndServe() error {
	s.logger.Info("starting web server", "address", s.config.Address)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("web server: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections and ends every running game.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()
	return s.http.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *Server) Addr() string {
	return s.config.Address
}

func (s *Server) handleHighscores(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	table := s.deps.Scores.Load()
	if table == nil {
		table = highscore.Table{}
	}
	if err := json.NewEncoder(w).Encode(table); err != nil {
		s.logger.Warn("failed to write highscores", "error", err)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	id := uuid.NewString()
	sess := session.New(session.Options{
		ID:             id,
		GridSize:       s.config.GridSize,
		Seed:           time.Now().UnixNano(),
		SwipeThreshold: s.config.SwipeThreshold,
	}, s.deps)

	s.logger.Info("session started", "session", id, "remote", r.RemoteAddr)
	defer s.logger.Info("session ended", "session", id)

	ticks, stop := s.newTicker(s.config.TickInterval)
	defer stop()

	c := &client{conn: conn, sess: sess, logger: s.logger.With("session", id)}
	c.run(s.ctx, ticks)
}

// client owns one connection. Only run writes to conn; the read loop only
// reads.
type client struct {
	conn   *websocket.Conn
	sess   *session.Session
	logger *log.Logger
}

func (c *client) run(ctx context.Context, ticks <-chan time.Time) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.sess.StartSync(ctx)

	inbox := make(chan ClientMessage, inboxSize)
	go c.readLoop(ctx, inbox)

	if err := c.send(ServerMessage{Type: MsgHello, SessionID: c.sess.ID()}); err != nil {
		return
	}
	if c.sendHighscores() != nil || c.sendState() != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			//nolint:errcheck // Best-effort close frame
			c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			return

		case msg, ok := <-inbox:
			if !ok {
				return
			}
			if err := c.handle(ctx, msg); err != nil {
				return
			}

		case <-ticks:
			c.sess.Tick()
			if c.sess.PollSync() {
				if err := c.sendHighscores(); err != nil {
					return
				}
			}
			if err := c.sendState(); err != nil {
				return
			}
		}
	}
}

// readLoop decodes client messages until the connection fails.
func (c *client) readLoop(ctx context.Context, inbox chan<- ClientMessage) {
	defer close(inbox)

	c.conn.SetReadLimit(maxMessageSize)
	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("read error", "error", err)
			}
			return
		}
		select {
		case inbox <- msg:
		case <-ctx.Done():
			return
		}
	}
}

// handle applies one client message and answers with the new state.
func (c *client) handle(ctx context.Context, msg ClientMessage) error {
	var intent input.Intent
	switch msg.Type {
	case MsgKey:
		intent = c.sess.HandleKey(msg.Code)
	case MsgSwipe:
		intent = c.sess.HandleSwipe(msg.DX, msg.DY)
	case MsgTap:
		intent = c.sess.HandleTap()
	case MsgButton:
		d, ok := core.ParseDirection(msg.Direction)
		if !ok {
			return c.sendError(fmt.Sprintf("unknown direction %q", msg.Direction))
		}
		intent = c.sess.HandleButton(d)
	case MsgName:
		intent = input.Intent{Kind: input.KindSubmit}
	case MsgReset:
		c.sess.Reset()
		return c.sendState()
	default:
		return c.sendError(fmt.Sprintf("unknown message type %q", msg.Type))
	}

	if intent.Kind == input.KindSubmit && c.sess.Overlay() {
		// The push may outlive the connection.
		if _, ok := c.sess.SubmitName(context.WithoutCancel(ctx), msg.Name); ok {
			if err := c.sendHighscores(); err != nil {
				return err
			}
		}
	}
	return c.sendState()
}

func (c *client) sendState() error {
	return c.send(ServerMessage{
		Type:  MsgState,
		State: &Frame{Game: c.sess.Snapshot(), Overlay: c.sess.Overlay()},
	})
}

func (c *client) sendHighscores() error {
	msg := ServerMessage{Type: MsgHighscores, Highscores: c.sess.Highscores()}
	if e, ok := c.sess.LastEntry(); ok {
		msg.Entry = &e
	}
	return c.send(msg)
}

func (c *client) sendError(text string) error {
	return c.send(ServerMessage{Type: MsgError, Message: text})
}

func (c *client) send(msg ServerMessage) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	if err := c.conn.WriteJSON(msg); err != nil {
		c.logger.Debug("write error", "error", err)
		return err
	}
	return nil
}
