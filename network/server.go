package network

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/coder/websocket"
	"github.com/lixenwraith/julia-view/core"
	"github.com/lixenwraith/julia-view/engine"
	"github.com/lixenwraith/julia-view/viewport"
)

//go:embed static
var staticFiles embed.FS

// Server serves the canvas page and runs one viewport and frame driver per websocket
type Server struct {
	config *Config
	frame  engine.FrameConfig
	opts   []engine.Option

	httpSrv  *http.Server
	listener net.Listener

	mu       sync.Mutex
	sessions map[SessionID]*Session
	pending  int // Slots reserved by handshakes in progress
	nextID   SessionID
	stopped  bool

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewServer creates a stopped server. opts are applied to every session's frame driver.
func NewServer(cfg *Config, frame engine.FrameConfig, opts ...engine.Option) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		config:   cfg,
		frame:    frame,
		opts:     opts,
		sessions: make(map[SessionID]*Session),
		ctx:      ctx,
		cancel:   cancel,
	}
	s.httpSrv = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
	return s
}

// Handler returns the HTTP routes: the static page at / and the websocket at /ws
func (s *Server) Handler() http.Handler {
	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err) // embedded tree is fixed at build time
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebsocket)
	mux.Handle("/", http.FileServer(http.FS(static)))
	return mux
}

// Start binds the listener and serves in the background
func (s *Server) Start() error {
	if !s.running.CompareAndSwap(false, true) {
		return nil // Already running
	}

	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		s.running.Store(false)
		return fmt.Errorf("listen %s: %w", s.config.Address, err)
	}
	s.listener = ln

	s.wg.Add(1)
	core.Go(func() {
		defer s.wg.Done()
		if err := s.httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http serve: %v", err)
		}
	})

	log.Printf("listening on http://%s", ln.Addr())
	return nil
}

// Addr returns the bound address, nil before Start
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop closes every session, shuts the HTTP server down and waits for all
// session handlers and their frame drivers to exit
func (s *Server) Stop() error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()

	var closing sync.WaitGroup
	for _, sess := range s.snapshotSessions() {
		closing.Add(1)
		core.Go(func() {
			defer closing.Done()
			sess.Close(websocket.StatusGoingAway, "server shutting down")
		})
	}
	closing.Wait()
	s.cancel()

	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	err := s.httpSrv.Shutdown(ctx)

	s.wg.Wait()
	return err
}

// SessionCount returns connected session count
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) snapshotSessions() []*Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess)
	}
	return out
}

// handleWebsocket upgrades the request and blocks for the lifetime of the session
func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		http.Error(w, "server shutting down", http.StatusServiceUnavailable)
		return
	}
	if len(s.sessions)+s.pending >= s.config.MaxSessions {
		s.mu.Unlock()
		http.Error(w, "too many sessions", http.StatusServiceUnavailable)
		return
	}
	s.nextID++
	id := s.nextID
	s.pending++
	s.wg.Add(1)
	s.mu.Unlock()
	defer s.wg.Done()

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.config.OriginPatterns,
	})
	if err != nil {
		s.mu.Lock()
		s.pending--
		s.mu.Unlock()
		log.Printf("websocket accept: %v", err)
		return
	}

	sess := newSession(s.ctx, id, conn, s.config)
	if !s.addSession(sess) {
		sess.Close(websocket.StatusGoingAway, "server shutting down")
		return
	}
	defer s.removeSession(id)

	s.runSession(sess)
}

// addSession moves a reserved slot into the session table; false once Stop has begun
func (s *Server) addSession(sess *Session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending--
	if s.stopped {
		return false
	}
	s.sessions[sess.ID] = sess
	return true
}

func (s *Server) removeSession(id SessionID) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// runSession drives frames into sess until the browser leaves or a publish fails
func (s *Server) runSession(sess *Session) {
	view := viewport.New()
	driver := engine.NewFrameDriver(sess, view, s.frame, s.opts...)
	driver.Start()

	core.Go(func() {
		select {
		case <-driver.Done():
			if driver.Err() != nil {
				sess.Close(websocket.StatusInternalError, "frame publish failed")
			}
		case <-sess.Done():
		}
	})

	if err := sess.readLoop(); err != nil {
		log.Printf("%v", err)
	}

	driver.Stop()
	sess.Close(websocket.StatusNormalClosure, "")
	log.Printf("session %d closed after %d frames", sess.ID, driver.Frames())
}
