package oauth

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/cvforge/pkg/logger"
)

const (
	defaultHTTPTimeout = 10 * time.Second
	defaultSecretTTL   = 5 * time.Minute
)

// Option configures a Gateway.
type Option func(*options)

type options struct {
	httpClient *http.Client
	logger     *slog.Logger
	secretTTL  time.Duration
}

func defaultOptions() *options {
	return &options{
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		logger:     logger.NewNope(),
		secretTTL:  defaultSecretTTL,
	}
}

// WithHTTPClient sets the HTTP client used for provider requests.
// This is useful for testing with httptest servers or injecting
// custom transports. The client timeout bounds every provider call.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		if client != nil {
			o.httpClient = client
		}
	}
}

// WithLogger sets the logger for transport failures.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithSecretCacheTTL sets how long parsed client credentials are reused.
// A negative duration caches them for the process lifetime.
// Default: 5 minutes.
func WithSecretCacheTTL(d time.Duration) Option {
	return func(o *options) {
		if d != 0 {
			o.secretTTL = d
		}
	}
}
