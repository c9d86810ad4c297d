// Package server exposes the design engine over HTTP+JSON.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"biodesigner/pkg/biodesigner"
)

const shutdownTimeout = 10 * time.Second

type Options struct {
	Debug  bool
	Logger *slog.Logger
}

type Server struct {
	client *biodesigner.Client
	logger *slog.Logger
	engine *gin.Engine
}

func New(client *biodesigner.Client, opts Options) (*Server, error) {
	if client == nil {
		return nil, errors.New("client is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if err := registerValidators(); err != nil {
		return nil, err
	}
	if !opts.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{client: client, logger: logger, engine: gin.New()}
	s.engine.Use(gin.Recovery(), requestID(), s.accessLog(), observeRequests())
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.engine.Group("/api")
	{
		api.GET("/health", s.handleHealth)

		optimization := api.Group("/optimization")
		{
			optimization.POST("/circuit", s.handleOptimizeCircuit)
			optimization.POST("/expression", s.handleOptimizeExpression)
		}
		sequences := api.Group("/sequences")
		{
			sequences.POST("/validate", s.handleValidateSequence)
			sequences.POST("/optimize", s.handleOptimizeCodons)
			sequences.POST("/translate", s.handleTranslate)
		}
		api.POST("/simulation/expression", s.handleSimulate)
		api.GET("/codon-tables", s.handleListTables)
		api.GET("/codon-tables/:organism", s.handleGetTable)
	}
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("http server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
