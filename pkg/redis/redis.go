package redis

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Option configures a Redis connection.
type Option func(*options)

type options struct {
	poolSize      int
	minIdleConns  int
	retryAttempts int
	retryInterval time.Duration
	ioTimeout     time.Duration
	dialTimeout   time.Duration
}

func defaultOptions() *options {
	return &options{
		poolSize:      10,
		minIdleConns:  2,
		retryAttempts: 3,
		retryInterval: 2 * time.Second,
		ioTimeout:     3 * time.Second,
		dialTimeout:   5 * time.Second,
	}
}

// WithPoolSize sets the maximum number of connections in the pool.
// Default: 10
func WithPoolSize(n int) Option {
	return func(o *options) {
		o.poolSize = n
	}
}

// WithRetry configures connection retry behavior.
// The wait before attempt n is n*interval.
// Default: 3 attempts, 2 seconds.
func WithRetry(attempts int, interval time.Duration) Option {
	return func(o *options) {
		o.retryAttempts = attempts
		o.retryInterval = interval
	}
}

// WithTimeouts sets the dial timeout and the read/write timeout.
// Default: 5 seconds dial, 3 seconds read/write.
func WithTimeouts(dial, io time.Duration) Option {
	return func(o *options) {
		o.dialTimeout = dial
		o.ioTimeout = io
	}
}

// Open parses a redis:// or rediss:// URL and returns a client
// that answered PING.
func Open(ctx context.Context, url string, opts ...Option) (redis.UniversalClient, error) {
	if url == "" {
		return nil, ErrEmptyURL
	}
	if !strings.HasPrefix(url, "redis://") && !strings.HasPrefix(url, "rediss://") {
		return nil, ErrInvalidURL
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	ro, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Join(ErrInvalidURL, err)
	}

	ro.PoolSize = o.poolSize
	ro.MinIdleConns = o.minIdleConns
	ro.DialTimeout = o.dialTimeout
	ro.ReadTimeout = o.ioTimeout
	ro.WriteTimeout = o.ioTimeout

	return connect(ctx, ro, max(o.retryAttempts, 1), o.retryInterval)
}

func connect(ctx context.Context, ro *redis.Options, attempts int, interval time.Duration) (redis.UniversalClient, error) {
	var lastErr error
	for i := range attempts {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, errors.Join(ErrConnect, ctx.Err())
			case <-time.After(time.Duration(i) * interval):
			}
		}

		client := redis.NewClient(ro)
		if lastErr = client.Ping(ctx).Err(); lastErr == nil {
			return client, nil
		}
		_ = client.Close()
	}

	return nil, errors.Join(ErrConnect, lastErr)
}

// Healthcheck returns a readiness check that pings the server.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if client == nil {
			return ErrHealthcheckFailed
		}
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// Shutdown returns a shutdown hook that closes the client.
func Shutdown(client io.Closer) func(context.Context) error {
	return func(context.Context) error {
		return client.Close()
	}
}
