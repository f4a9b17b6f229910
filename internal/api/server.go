package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/amterp/boardkit/internal/service"
)

// Server wraps the HTTP server and its live-update plumbing.
type Server struct {
	httpServer *http.Server
	watcher    *FileWatcher
	wsHub      *WebSocketHub
}

// NewServer creates a server for handler on port. Persisted changes from doc
// are pushed to WebSocket clients. If watchPath is non-empty, edits to that
// file made by other processes are pushed too.
func NewServer(handler *Handler, doc *service.Document, port int, watchPath string) *Server {
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	wsHub := NewWebSocketHub()
	mux.HandleFunc("GET /api/v1/ws", wsHub.ServeWS)
	doc.Subscribe(wsHub)

	var watcher *FileWatcher
	if watchPath != "" {
		var err error
		watcher, err = NewFileWatcher(watchPath)
		if err != nil {
			log.Warn().Err(err).Msg("failed to create file watcher")
		} else {
			watcher.Subscribe(wsHub)
			doc.Subscribe(watcher)
		}
	}

	wrapped := RequestID(Logging(Cors(mux)))

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      wrapped,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		watcher: watcher,
		wsHub:   wsHub,
	}
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for HTTP requests. Blocks until shutdown.
func (s *Server) Start() error {
	if s.watcher != nil {
		if err := s.watcher.Start(); err != nil {
			log.Warn().Err(err).Msg("failed to start file watcher")
		}
	}

	log.Info().Str("addr", s.httpServer.Addr).Msg("server listening")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.watcher != nil {
		if err := s.watcher.Stop(); err != nil {
			log.Warn().Err(err).Msg("failed to stop file watcher")
		}
	}
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the address the server is listening on.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}
