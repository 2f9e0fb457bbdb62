package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/cvforge/pkg/health"
)

const (
	defaultAddress           = ":8080"
	defaultShutdownTimeout   = 30 * time.Second
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20
)

// Handler mounts a group of routes on the router.
type Handler interface {
	Routes(r chi.Router)
}

// ShutdownHook releases a resource after the HTTP server has stopped.
type ShutdownHook func(ctx context.Context) error

// Server owns the router and the process lifecycle.
type Server struct {
	router          chi.Router
	address         string
	logger          *slog.Logger
	shutdownTimeout time.Duration
	shutdownHooks   []ShutdownHook
}

// New builds the router: request id, real ip, access log and panic
// recovery, then health and metrics endpoints, then the handlers.
func New(opts ...Option) *Server {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(o.logger))
	r.Use(recoverer(o.logger))

	r.Get("/health/live", health.LivenessHandler())
	r.Get("/health/ready", health.ReadinessHandler(o.checks, health.WithLogger(o.logger)))
	if o.metrics != nil {
		r.Handle("/metrics", o.metrics)
	}

	for _, h := range o.handlers {
		h.Routes(r)
	}

	return &Server{
		router:          r,
		address:         o.address,
		logger:          o.logger,
		shutdownTimeout: o.shutdownTimeout,
		shutdownHooks:   o.shutdownHooks,
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run serves until ctx is cancelled or the process receives SIGINT or
// SIGTERM, then shuts the server down and runs the hooks in order.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadTimeout:       defaultReadTimeout,
		WriteTimeout:      defaultWriteTimeout,
		IdleTimeout:       defaultIdleTimeout,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		MaxHeaderBytes:    defaultMaxHeaderBytes,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", slog.String("address", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return errors.Join(err, s.runHooks(context.Background()))
		}
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer shutdownCancel()

	var errs []error
	if err := srv.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, err)
	}
	if err := s.runHooks(shutdownCtx); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		s.logger.Error("shutdown completed with errors")
		return errors.Join(errs...)
	}

	s.logger.Info("shutdown completed")
	return nil
}

func (s *Server) runHooks(ctx context.Context) error {
	var errs []error
	for _, hook := range s.shutdownHooks {
		if err := hook(ctx); err != nil {
			errs = append(errs, err)
			s.logger.Error("shutdown hook failed", slog.Any("error", err))
		}
	}
	return errors.Join(errs...)
}
