// Package server exposes parsing over HTTP.
package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tsawler/textable/command"
	"github.com/tsawler/textable/internal/config"
	"github.com/tsawler/textable/store"
)

// Server is the HTTP API over the command registry and, optionally, a store.
type Server struct {
	router   *gin.Engine
	config   *config.Config
	registry *command.Registry
	store    *store.Store
}

// New creates a server. st may be nil, in which case parsed documents are
// not saved and the document routes are not registered.
func New(cfg *config.Config, st *store.Store) *Server {
	gin.SetMode(cfg.Server.Mode)

	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Server.Mode == gin.DebugMode {
		router.Use(gin.Logger())
	}

	s := &Server{
		router:   router,
		config:   cfg,
		registry: command.Default(),
		store:    st,
	}
	s.setupRoutes()

	return s
}

// setupRoutes registers the API routes
func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)

	v1 := s.router.Group("/v1")
	{
		v1.GET("/commands", s.handleCommands)
		v1.POST("/parse", s.handleParse)
		v1.POST("/export", s.handleExport)

		if s.store != nil {
			v1.GET("/documents", s.handleListDocuments)
			v1.GET("/documents/:id", s.handleGetDocument)
			v1.DELETE("/documents/:id", s.handleDeleteDocument)
		}
	}
}

// Handler returns the server's http.Handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Server.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
