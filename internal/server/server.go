// SPDX-License-Identifier: EPL-2.0

// Package server exposes the estimator over HTTP.
//
//	POST /api/health/analyze   multipart upload, field "audio"
//	GET  /health               liveness
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ik5/heartbpm"
	"github.com/ik5/heartbpm/audio"
	"github.com/ik5/heartbpm/formats"
	"github.com/ik5/heartbpm/heartrate"
	"go.uber.org/zap"
)

const (
	limiterIdle     = 10 * time.Minute
	limiterSweepGap = 5 * time.Minute
)

// Config holds the listener and request limits.
type Config struct {
	Host            string
	Port            int
	MaxUploadBytes  int64
	RateLimit       float64 // requests per second per client
	RateBurst       int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	Load heartbpm.LoadOptions
}

type Server struct {
	cfg      Config
	est      *heartrate.Estimator
	reg      *audio.Registry
	log      *zap.Logger
	engine   *gin.Engine
	limiters *limiterStore
	started  time.Time
}

// New wires the routes. A nil logger disables logging.
func New(cfg Config, est *heartrate.Estimator, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	s := &Server{
		cfg:      cfg,
		est:      est,
		reg:      formats.NewRegistry(),
		log:      log,
		engine:   gin.New(),
		limiters: newLimiterStore(cfg.RateLimit, cfg.RateBurst),
		started:  time.Now(),
	}

	s.engine.Use(RequestID(), Logger(log), Recovery(log))

	s.engine.GET("/health", s.health)

	api := s.engine.Group("/api/health")
	api.Use(s.limiters.Middleware(), BodyLimit(cfg.MaxUploadBytes))
	api.POST("/analyze", s.analyze)

	return s
}

// Handler returns the gin engine, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Addr() string {
	return net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
}

// Run serves until ctx is canceled, then shuts down gracefully within
// ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr(),
		Handler:           s.engine,
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.cfg.WriteTimeout,
		MaxHeaderBytes:    1 << 20,
	}

	go s.limiters.sweepEvery(ctx, limiterSweepGap, limiterIdle)

	serveErr := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	s.log.Info("server stopped")

	return nil
}
