package http

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/askpdf/askpdf-core/internal/core/ports/driven"
	"github.com/askpdf/askpdf-core/internal/core/ports/driving"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string
	logger     zerolog.Logger

	// Services
	ingestService driving.IngestService
	chatService   driving.ChatService

	// Infrastructure
	extractors driven.ExtractorRegistry
	embedder   driven.EmbeddingService
	index      driven.VectorIndex
}

// Config holds server configuration
type Config struct {
	Host           string
	Port           int
	Version        string
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:           "0.0.0.0",
		Port:           8080,
		Version:        "dev",
		AllowedOrigins: []string{"*"},
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	ingestService driving.IngestService,
	chatService driving.ChatService,
	extractors driven.ExtractorRegistry,
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	logger zerolog.Logger,
) *Server {
	s := &Server{
		router:        http.NewServeMux(),
		version:       cfg.Version,
		logger:        logger,
		ingestService: ingestService,
		chatService:   chatService,
		extractors:    extractors,
		embedder:      embedder,
		index:         index,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      Recover(logger)(RequestLogger(logger)(CORS(cfg.AllowedOrigins)(s.router))),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Health endpoints
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)

	// Document endpoints
	s.router.HandleFunc("POST /api/v1/documents", s.handleUploadDocument)
	s.router.HandleFunc("GET /api/v1/uploads", s.handleListUploads)

	// Chat endpoint
	s.router.HandleFunc("POST /api/v1/chat", s.handleChat)
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.logger.Info().Str("addr", s.httpServer.Addr).Msg("starting server")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal().Err(err).Msg("server error")
		}
	}()

	<-stop
	s.logger.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info().Msg("server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
