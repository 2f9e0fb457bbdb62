// Package logger builds slog loggers with context extraction and optional Sentry reporting.
//
// Extractors pull request-scoped values out of the context on every call:
//
//	requestID := func(ctx context.Context) (slog.Attr, bool) {
//	    if id := middleware.GetReqID(ctx); id != "" {
//	        return slog.String("request_id", id), true
//	    }
//	    return slog.Attr{}, false
//	}
//	log := logger.New(logger.Config{Level: "info"}, requestID)
//	log.InfoContext(ctx, "login succeeded", slog.String("provider", "google"))
//
// With Config.SentryDSN set, records go to stdout and Sentry. An empty DSN
// keeps the same code path usable in development.
//
// [NewNope] returns a logger that discards everything; packages use it as
// their default when no logger is injected.
package logger
