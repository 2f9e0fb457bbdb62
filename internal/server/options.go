package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/cvforge/pkg/health"
	"github.com/dmitrymomot/cvforge/pkg/logger"
)

// Option configures a Server.
type Option func(*options)

type options struct {
	address         string
	logger          *slog.Logger
	handlers        []Handler
	checks          health.Checks
	metrics         http.Handler
	shutdownTimeout time.Duration
	shutdownHooks   []ShutdownHook
}

func defaultOptions() *options {
	return &options{
		address:         defaultAddress,
		logger:          logger.NewNope(),
		checks:          health.Checks{},
		shutdownTimeout: defaultShutdownTimeout,
	}
}

// WithAddress sets the listen address. Default: ":8080".
func WithAddress(addr string) Option {
	return func(o *options) {
		if addr != "" {
			o.address = addr
		}
	}
}

// WithLogger sets the logger used for access logs and lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithHandlers mounts route groups.
func WithHandlers(h ...Handler) Option {
	return func(o *options) {
		o.handlers = append(o.handlers, h...)
	}
}

// WithHealthCheck adds a named readiness check.
func WithHealthCheck(name string, fn health.CheckFunc) Option {
	return func(o *options) {
		o.checks[name] = fn
	}
}

// WithMetricsHandler serves h on /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(o *options) {
		o.metrics = h
	}
}

// WithShutdownTimeout bounds graceful shutdown. Default: 30 seconds.
func WithShutdownTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.shutdownTimeout = d
		}
	}
}

// WithShutdownHook registers a hook run after the server stops.
// Hooks run in registration order.
func WithShutdownHook(hook ShutdownHook) Option {
	return func(o *options) {
		o.shutdownHooks = append(o.shutdownHooks, hook)
	}
}
