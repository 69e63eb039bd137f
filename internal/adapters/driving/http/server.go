package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gomot-academy/bitacora-core/internal/core/ports/driven"
	"github.com/gomot-academy/bitacora-core/internal/core/ports/driving"
	"github.com/gomot-academy/bitacora-core/internal/runtime"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer     *http.Server
	router         *http.ServeMux
	version        string
	logger         *slog.Logger
	maxUploadBytes int64

	// Services
	articleService   driving.ArticleService
	ingestService    driving.IngestService
	tutorService     driving.TutorService
	problemService   driving.ProblemService
	retrievalService driving.RetrievalService

	// Infrastructure
	services     *runtime.Services
	payloadStore driven.PayloadStore
	taskQueue    driven.TaskQueue
	verifier     driven.TokenVerifier
	db           Pinger
}

// Config holds server configuration
type Config struct {
	Host    string
	Port    int
	Version string

	// MaxUploadBytes caps the accepted article payload size
	MaxUploadBytes int64
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:           "0.0.0.0",
		Port:           8080,
		Version:        "dev",
		MaxUploadBytes: 32 << 20, // 32 MB
	}
}

// Deps bundles everything the server needs
type Deps struct {
	ArticleService   driving.ArticleService
	IngestService    driving.IngestService
	TutorService     driving.TutorService
	ProblemService   driving.ProblemService
	RetrievalService driving.RetrievalService

	Services     *runtime.Services
	PayloadStore driven.PayloadStore
	TaskQueue    driven.TaskQueue
	Verifier     driven.TokenVerifier
	DB           Pinger
	Logger       *slog.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg Config, deps Deps) *Server {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultConfig().MaxUploadBytes
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	s := &Server{
		router:         http.NewServeMux(),
		version:        cfg.Version,
		logger:         deps.Logger,
		articleService:   deps.ArticleService,
		ingestService:    deps.IngestService,
		tutorService:     deps.TutorService,
		problemService:   deps.ProblemService,
		retrievalService: deps.RetrievalService,
		services:         deps.Services,
		payloadStore:     deps.PayloadStore,
		taskQueue:        deps.TaskQueue,
		verifier:         deps.Verifier,
		db:               deps.DB,
	}

	logging := NewLoggingMiddleware(deps.Logger)
	recovery := NewRecoveryMiddleware(deps.Logger)

	s.maxUploadBytes = cfg.MaxUploadBytes
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      recovery.Handler(logging.Handler(s.router)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	auth := NewAuthMiddleware(s.verifier)

	// Health endpoints (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)

	// Article endpoints
	s.router.Handle("POST /api/v1/articles",
		auth.Authenticate(http.HandlerFunc(s.handleCreateArticle)))
	s.router.Handle("GET /api/v1/articles",
		auth.Authenticate(http.HandlerFunc(s.handleListArticles)))
	s.router.Handle("GET /api/v1/articles/{id}",
		auth.Authenticate(http.HandlerFunc(s.handleGetArticle)))
	s.router.Handle("DELETE /api/v1/articles/{id}",
		auth.Authenticate(http.HandlerFunc(s.handleDeleteArticle)))
	s.router.Handle("POST /api/v1/articles/{id}/reingest",
		auth.Authenticate(http.HandlerFunc(s.handleReingestArticle)))
	s.router.Handle("GET /api/v1/articles/{id}/chunks",
		auth.Authenticate(http.HandlerFunc(s.handleGetArticleChunks)))
	s.router.Handle("POST /api/v1/articles/{id}/retrieve",
		auth.Authenticate(http.HandlerFunc(s.handleRetrieve)))

	// Attempt endpoints
	s.router.Handle("POST /api/v1/attempts/{id}/chat",
		auth.Authenticate(http.HandlerFunc(s.handleChat)))
	s.router.Handle("GET /api/v1/attempts/{id}/interactions",
		auth.Authenticate(http.HandlerFunc(s.handleListInteractions)))

	// Problem endpoints
	s.router.Handle("POST /api/v1/problems/generate",
		auth.Authenticate(http.HandlerFunc(s.handleGenerateProblem)))
	s.router.Handle("POST /api/v1/problems/hint",
		auth.Authenticate(http.HandlerFunc(s.handleGenerateHint)))
}

// Start begins listening for requests. Blocks until the server stops.
func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server error: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the routed handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
