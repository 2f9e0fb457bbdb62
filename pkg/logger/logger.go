package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// Config selects the output format, level and optional Sentry sink.
type Config struct {
	Level             string `env:"LOG_LEVEL" envDefault:"info"`
	Format            string `env:"LOG_FORMAT" envDefault:"json"`
	SentryDSN         string `env:"SENTRY_DSN"`
	SentryEnvironment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
}

// ContextExtractor extracts a slog attribute from context.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// New creates a logger writing to stdout.
// When cfg.SentryDSN is set, warnings are also shipped to Sentry as logs
// and errors as issues. A failed Sentry init falls back to stdout only.
func New(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	return newLogger(os.Stdout, cfg, extractors...)
}

func newLogger(w io.Writer, cfg Config, extractors ...ContextExtractor) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var out slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		out = slog.NewTextHandler(w, opts)
	} else {
		out = slog.NewJSONHandler(w, opts)
	}

	if cfg.SentryDSN == "" {
		return slog.New(WithExtractors(out, extractors...))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(out).Error("failed to initialize sentry", slog.String("error", err.Error()))
		return slog.New(WithExtractors(out, extractors...))
	}

	sink := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
	}.NewSentryHandler(context.Background())

	return slog.New(WithExtractors(fanout{out, sink}, extractors...))
}

// NewNope creates a logger that discards all output.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps debug, info, warn and error to slog levels.
// Anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// FlushSentry returns a shutdown hook that drains buffered Sentry events.
func FlushSentry(timeout time.Duration) func(context.Context) error {
	return func(context.Context) error {
		sentry.Flush(timeout)
		return nil
	}
}
