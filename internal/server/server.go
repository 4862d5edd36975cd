// Package server serves the navigable report over HTTP with echo.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/chart"
	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/dataset"
	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/insight"
)

const shutdownTimeout = 10 * time.Second

// Options configures a Server.
type Options struct {
	Addr  string
	Chart chart.Options
	Log   zerolog.Logger
}

// Server wraps an echo instance bound to one loaded bundle.
type Server struct {
	echo *echo.Echo
	addr string
	log  zerolog.Logger
}

// New wires middleware and routes. The bundle is shared read-only by every request.
func New(b *dataset.Bundle, e *insight.Engine, opts Options) (*Server, error) {
	r, err := newRenderer()
	if err != nil {
		return nil, err
	}
	ec := echo.New()
	ec.HideBanner = true
	ec.HidePort = true
	ec.Renderer = r

	log := opts.Log
	ec.Use(middleware.Recover())
	ec.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	ec.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	}))

	NewHandler(b, e, opts.Chart, log).RegisterRoutes(ec)
	return &Server{echo: ec, addr: opts.Addr, log: log}, nil
}

// Handler exposes the echo instance, mainly for tests.
func (s *Server) Handler() http.Handler { return s.echo }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.addr).Msg("serving report")
		if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	s.log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.echo.Shutdown(sctx)
}
