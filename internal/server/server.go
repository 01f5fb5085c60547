// Package server serves the GoMemory pages and runs the game sessions behind a WebSocket.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/janpfeifer/GoMemory/internal/config"
	"github.com/janpfeifer/GoMemory/internal/frontend"
	"github.com/janpfeifer/GoMemory/internal/game"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

// ServerState holds the running game sessions, keyed by game ID.
type ServerState struct {
	// Address the server is listening on, set once the listener is bound.
	Address string

	Config   config.Config
	Sessions map[string]*game.Session

	// conns counts the connections attached to each session:
	// a session is closed when its last connection leaves.
	conns map[string]int
	mu    sync.RWMutex
}

// NewServerState creates an empty server state.
func NewServerState(cfg config.Config) *ServerState {
	return &ServerState{
		Config:   cfg,
		Sessions: make(map[string]*game.Session),
		conns:    make(map[string]int),
	}
}

// attach returns the session for gameID, creating it (with a fresh deck) if needed.
// An empty gameID gets a new random ID.
func (s *ServerState) attach(gameID string) *game.Session {
	if gameID == "" {
		gameID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	session, found := s.Sessions[gameID]
	if !found {
		session = s.newSessionLocked(gameID)
		klog.Infof("Game %s: new session, deck=%v", gameID, session.Deck().Faces())
	}
	s.conns[gameID]++
	return session
}

// detach releases a connection from the game, closing the session if it was the last one.
func (s *ServerState) detach(gameID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conns[gameID]--
	if s.conns[gameID] > 0 {
		return
	}
	delete(s.conns, gameID)
	if session, found := s.Sessions[gameID]; found {
		session.Close()
		delete(s.Sessions, gameID)
		klog.Infof("Game %s: last player left, session closed", gameID)
	}
}

// restart replaces the session of gameID with a new one, with a freshly shuffled deck.
func (s *ServerState) restart(gameID string) *game.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, found := s.Sessions[gameID]; found {
		old.Close()
	}
	session := s.newSessionLocked(gameID)
	klog.Infof("Game %s: restarted, deck=%v", gameID, session.Deck().Faces())
	return session
}

func (s *ServerState) newSessionLocked(gameID string) *game.Session {
	session := game.NewSession(gameID, game.PickSymbols(s.Config.SymbolCount), s.Config.MismatchDelay)
	s.Sessions[gameID] = session
	return session
}

// Handler returns the HTTP handler with the pages and the WebSocket endpoint.
func (s *ServerState) Handler() http.Handler {
	// Register go-app routes so the server knows how to prerender them
	frontend.Routes()

	// The web assets and the compiled webassembly
	// are served natively by the go-app framework
	h := &app.Handler{
		Name:        "GoMemory",
		Title:       "GoMemory",
		Description: "A memory (pairs) game",
		Version:     game.Version,
		Styles: []string{
			"/web/css/pico.min.css", // Load pico.css
			"/web/css/main.css",     // Custom styles if any
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.HandleWS)
	mux.Handle("/", h)
	return mux
}

// Run starts the server and blocks until the context is canceled.
//
// If started is not nil, the server state is sent to it once the listener is
// bound, so callers can find out the actual address when cfg.Addr is empty.
func Run(ctx context.Context, cfg config.Config, started chan<- *ServerState) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	// Initialize global frontend state for server-side prerendering without panic
	frontend.InitState()

	serverState := NewServerState(cfg)

	addr := cfg.Addr
	if addr == "" {
		addr = "localhost:0"
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %q: %w", addr, err)
	}
	serverState.Address = listener.Addr().String()

	srv := &http.Server{
		Handler: serverState.Handler(),
	}

	serveErr := make(chan error, 1)
	go func() {
		klog.Infof("Server started on %s", serverState.Address)
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			klog.Errorf("Server error: %v", err)
			serveErr <- err
		}
		close(serveErr)
	}()
	if started != nil {
		started <- serverState
	}

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		return fmt.Errorf("server stopped: %w", err)
	}

	// Graceful shutdown with 5 second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	klog.Infof("Shutting down server...")
	return srv.Shutdown(shutdownCtx)
}
