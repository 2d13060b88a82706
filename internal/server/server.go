// Package server provides the HTTP API for Exporo.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/langkah-ekspor/exporo/internal/chat"
	"github.com/langkah-ekspor/exporo/internal/store"
)

// TurnProcessor handles one conversation turn. *chat.Engine implements it.
type TurnProcessor interface {
	ProcessTurn(ctx context.Context, sess *chat.Session, userText string) (string, error)
}

// Server is the HTTP server for the Exporo API.
type Server struct {
	engine  TurnProcessor
	store   store.Store
	logger  *zap.Logger
	port    int
	server  *http.Server
	mu      sync.Mutex
	session map[string]*chat.Session
}

// NewServer creates a server with the given dependencies.
func NewServer(engine TurnProcessor, st store.Store, logger *zap.Logger, port int) *Server {
	return &Server{
		engine:  engine,
		store:   st,
		logger:  logger,
		port:    port,
		session: make(map[string]*chat.Session),
	}
}

// Router builds the chi router with all API routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)
	r.Post("/users", s.handleRegister)
	r.Post("/login", s.handleLogin)
	r.Post("/chat/{userID}", s.handleChat)
	r.Get("/profile/{userID}", s.handleGetProfile)
	r.Get("/profile/{userID}/export", s.handleExportProfile)
	r.Post("/profile/{userID}/reset", s.handleResetProfile)

	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// sessionFor returns the live session for a user, resuming from the stored
// profile on first contact.
func (s *Server) sessionFor(ctx context.Context, userID string) (*chat.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.session[userID]; ok {
		return sess, nil
	}

	profile, err := s.store.LoadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	sess := chat.Resume(userID, profile)
	s.session[userID] = sess
	return sess, nil
}
