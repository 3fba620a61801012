package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/session"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

// Commands understood besides the directional ones.
const (
	CommandUndo  = "undo"
	CommandReset = "reset"
	CommandState = "state"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Request is a message from a client. Board names the debug board for the
// debug command and defaults to the ladder.
type Request struct {
	Command string `json:"command"`
	Board   string `json:"board,omitempty"`
}

// Response is sent after every request.
type Response struct {
	SessionID string          `json:"session_id"`
	Events    []session.Event `json:"events"`
	Board     engine.Board    `json:"board"`
	Score     int             `json:"score"`
	HighScore int             `json:"high_score"`
	Over      bool            `json:"over"`
	Error     string          `json:"error,omitempty"`
}

// Server upgrades HTTP requests and runs one game per connection.
type Server struct {
	store   session.HighScoreStore
	options []session.Option
	logger  *log.Logger

	mu      sync.Mutex
	clients map[string]*client
}

type client struct {
	id     string
	conn   *websocket.Conn
	send   chan []byte
	sess   *session.Session
	logger *log.Logger
}

// NewServer creates a server. opts are applied to every session.
func NewServer(store session.HighScoreStore, opts []session.Option, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		store:   store,
		options: opts,
		logger:  logger,
		clients: make(map[string]*client),
	}
}

// Handler returns the HTTP handler serving /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", s)
	return mux
}

// Sessions returns the number of connected clients.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// ServeHTTP upgrades the request and plays a game until the peer leaves.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	id := uuid.NewString()
	logger := s.logger.With("session", id)
	opts := append([]session.Option{session.WithLogger(logger)}, s.options...)

	c := &client{
		id:     id,
		conn:   conn,
		send:   make(chan []byte, 16),
		sess:   session.New(s.store, opts...),
		logger: logger,
	}

	s.register(c)
	logger.Info("client connected", "remote", r.RemoteAddr)

	go c.writePump()
	c.queue(c.respond(c.sess.Reset(), ""))
	c.readPump()

	s.unregister(c)
	if err := c.sess.Finish(); err != nil {
		logger.Warn("could not record game", "error", err)
	}
	logger.Info("client disconnected", "score", c.sess.State().Score)
}

func (s *Server) register(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c.id] = c
}

func (s *Server) unregister(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, c.id)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting websocket server", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("websocket: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down websocket server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// handle runs one request against the client's session.
func (c *client) handle(data []byte) Response {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return c.respond(nil, "invalid message")
	}

	switch req.Command {
	case CommandUndo:
		return c.respond(c.sess.Restore(), "")
	case CommandReset:
		return c.respond(c.sess.Reset(), "")
	case CommandState:
		return c.respond(nil, "")
	}

	cmd := session.ParseCommand(req.Command)
	if cmd == session.CommandDebug && req.Board != "" {
		return c.loadDebugBoard(req.Board)
	}

	res := c.sess.Handle(cmd)
	return c.respond(res.Events, "")
}

func (c *client) loadDebugBoard(name string) Response {
	if !c.sess.Debug() {
		return c.respond(nil, "")
	}

	boards := session.DebugBoards()
	if !slices.Contains(boards, name) {
		return c.respond(nil, fmt.Sprintf("unknown board %q, available: %s", name, strings.Join(boards, ", ")))
	}

	events, err := c.sess.LoadDebugBoard(name)
	if err != nil {
		return c.respond(nil, err.Error())
	}
	return c.respond(events, "")
}

func (c *client) respond(events []session.Event, errMsg string) Response {
	if events == nil {
		events = []session.Event{}
	}
	state := c.sess.State()
	return Response{
		SessionID: c.id,
		Events:    events,
		Board:     state.Board,
		Score:     state.Score,
		HighScore: state.HighScore,
		Over:      c.sess.Over(),
		Error:     errMsg,
	}
}

// queue hands resp to the write pump. It reports false when the client
// does not keep up with its responses and has to be dropped.
func (c *client) queue(resp Response) bool {
	data, err := json.Marshal(resp)
	if err != nil {
		c.logger.Error("failed to marshal response", "error", err)
		return true
	}

	select {
	case c.send <- data:
		return true
	default:
		c.logger.Warn("client send buffer full, closing connection")
		return false
	}
}

// readPump reads requests until the connection fails or the client falls
// behind. It is the only goroutine touching the session.
func (c *client) readPump() {
	defer func() {
		close(c.send)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("websocket error", "error", err)
			}
			return
		}
		if !c.queue(c.handle(data)) {
			return
		}
	}
}

// writePump sends queued responses and keeps the connection alive.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
