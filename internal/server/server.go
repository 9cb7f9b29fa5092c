// Package server exposes the extraction and synthesis pipeline as a
// single synchronous HTTP endpoint, plus a liveness probe. The core
// stays pure; this layer owns transport concerns and the one
// precondition check the core assumes (a top-level paths map).
package server

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Server struct {
	cfg     Config
	log     *slog.Logger
	engine  *gin.Engine
	httpsrv *http.Server
}

// New assembles the gin engine and routes. The logger must not be nil.
func New(cfg Config, log *slog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	e := gin.New()

	s := &Server{
		cfg:    cfg,
		log:    log,
		engine: e,
		httpsrv: &http.Server{
			Handler:           e,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		},
	}

	e.Use(
		s.requestLogger(),
		gin.CustomRecovery(func(c *gin.Context, err any) {
			log.Error("panic in handler", "err", err, "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{
				Message: http.StatusText(http.StatusInternalServerError),
			})
		}),
	)
	e.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorResponse{Message: "route not found"})
	})

	e.GET("/health", s.handleHealth)
	e.POST("/generate", s.handleGenerate)

	return s
}

// Handler returns the underlying HTTP handler, for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// Start begins serving on the configured address and returns without
// blocking once the listener is bound.
func (s *Server) Start(ctx context.Context) error {
	l, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	s.log.InfoContext(ctx, "starting HTTP server", "addr", s.cfg.Addr)
	go func() {
		if err := s.httpsrv.Serve(l); err != nil && err != http.ErrServerClosed {
			s.log.Error("HTTP server terminated", "err", err)
		}
	}()
	return nil
}

// Stop drains in-flight requests and shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	s.log.InfoContext(ctx, "shutting down HTTP server", "addr", s.cfg.Addr)
	return s.httpsrv.Shutdown(ctx)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

type errorResponse struct {
	Message string `json:"message"`
}
