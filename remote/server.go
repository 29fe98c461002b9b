package remote

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/lixenwraith/termcalc/calc"
	"github.com/lixenwraith/termcalc/input"
	"golang.org/x/sync/errgroup"
)

// Sentinel errors
var (
	ErrNotListening = errors.New("remote: not listening")
	ErrEmptyRequest = errors.New("request has neither key nor paste")
)

// Server accepts websocket keypad clients
// Every connection owns an independent calculator session
type Server struct {
	cfg      *Config
	keys     *input.KeyTable
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[string]*websocket.Conn
	listener net.Listener
}

// NewServer creates a server; nil keys uses the default bindings
func NewServer(cfg *Config, keys *input.KeyTable) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if keys == nil {
		keys = input.DefaultKeyTable()
	}
	return &Server{
		cfg:  cfg,
		keys: keys,
		upgrader: websocket.Upgrader{
			// Keypad pages may be served from anywhere on the local network
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		sessions: make(map[string]*websocket.Conn),
	}
}

// Handler returns the HTTP handler serving the websocket endpoint
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.cfg.Path, s.handleWebSocket)
	return mux
}

// Listen binds the configured address
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return fmt.Errorf("remote listen %s: %w", s.cfg.Address, err)
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()
	return nil
}

// Addr returns the bound address, nil before Listen
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Close releases the listener without serving
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	err := s.listener.Close()
	s.listener = nil
	return err
}

// Serve handles connections on the bound listener until ctx is done
func (s *Server) Serve(ctx context.Context) error {
	s.mu.Lock()
	ln := s.listener
	s.mu.Unlock()
	if ln == nil {
		return ErrNotListening
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.cfg.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		// Hijacked websocket connections are not tracked by Shutdown
		s.closeSessions()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// SessionCount returns the number of connected clients
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) addSession(conn *websocket.Conn) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cfg.MaxSessions > 0 && len(s.sessions) >= s.cfg.MaxSessions {
		return "", false
	}
	id := uuid.NewString()
	s.sessions[id] = conn
	return id, true
}

func (s *Server) removeSession(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func (s *Server) closeSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, conn := range s.sessions {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		conn.Close()
		delete(s.sessions, id)
	}
}

func (s *Server) full() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.MaxSessions > 0 && len(s.sessions) >= s.cfg.MaxSessions
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.full() {
		http.Error(w, "too many sessions", http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("remote upgrade: %v", err)
		return
	}
	defer conn.Close()

	id, ok := s.addSession(conn)
	if !ok {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "too many sessions"),
			time.Now().Add(time.Second))
		return
	}
	defer s.removeSession(id)

	log.Printf("remote session %s connected from %s", id, r.RemoteAddr)
	s.runSession(conn, newSession(id, s.keys))
	log.Printf("remote session %s closed", id)
}

// runSession is the per-connection read loop; it owns the session
func (s *Server) runSession(conn *websocket.Conn, sess *session) {
	conn.SetReadLimit(s.cfg.ReadLimit)

	if err := s.write(conn, sess.response()); err != nil {
		return
	}

	for {
		if s.cfg.ReadTimeout > 0 {
			conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
		}

		var req Request
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("remote session %s: %v", sess.id, err)
			}
			return
		}

		if err := s.write(conn, sess.apply(req)); err != nil {
			log.Printf("remote session %s write: %v", sess.id, err)
			return
		}
	}
}

func (s *Server) write(conn *websocket.Conn, resp Response) error {
	if s.cfg.WriteTimeout > 0 {
		conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	}
	return conn.WriteJSON(resp)
}

// session pairs a router with the copy capture for one connection
type session struct {
	id     string
	router *input.Router
	copied *captureSink
}

func newSession(id string, keys *input.KeyTable) *session {
	sink := &captureSink{}
	return &session{
		id:     id,
		router: input.NewRouter(calc.NewBuffer(), input.WithKeyTable(keys), input.WithSink(sink)),
		copied: sink,
	}
}

func (s *session) apply(req Request) Response {
	s.copied.reset()

	var display string
	switch {
	case req.Paste != nil:
		display = s.router.PasteText(*req.Paste)
	case req.Key != "":
		display = s.router.Feed(req.Key)
	default:
		resp := s.response()
		resp.Error = ErrEmptyRequest.Error()
		return resp
	}

	resp := Response{Session: s.id, Display: display}
	if text, ok := s.copied.take(); ok {
		resp.Copy = text
	}
	return resp
}

func (s *session) response() Response {
	return Response{Session: s.id, Display: s.router.Display()}
}

// captureSink holds the last copied text so it can travel back to the client
type captureSink struct {
	text string
	set  bool
}

func (c *captureSink) Write(text string) error {
	c.text = text
	c.set = true
	return nil
}

func (c *captureSink) reset() {
	c.text, c.set = "", false
}

func (c *captureSink) take() (string, bool) {
	return c.text, c.set
}
