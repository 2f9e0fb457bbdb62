package login

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/cvforge/pkg/logger"
)

// Option configures an Initiator or a Callback.
type Option func(*options)

type options struct {
	logger     *slog.Logger
	metrics    *Metrics
	sessionTTL time.Duration
}

func newOptions(opts ...Option) *options {
	o := &options{
		logger:     logger.NewNope(),
		sessionTTL: 10 * time.Minute,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger. Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics records callback outcomes. Default: none.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithSessionTTL sets how long an authorization session stays valid.
// Default: 10 minutes.
func WithSessionTTL(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.sessionTTL = d
		}
	}
}
