package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cvforge/pkg/redis"
)

func TestOpen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("empty URL", func(t *testing.T) {
		t.Parallel()

		client, err := redis.Open(ctx, "")
		require.ErrorIs(t, err, redis.ErrEmptyURL)
		require.Nil(t, client)
	})

	t.Run("invalid scheme", func(t *testing.T) {
		t.Parallel()

		for _, url := range []string{"http://localhost:6379", "localhost:6379", "postgres://localhost"} {
			_, err := redis.Open(ctx, url)
			require.ErrorIs(t, err, redis.ErrInvalidURL, url)
		}
	})

	t.Run("connects and pings", func(t *testing.T) {
		t.Parallel()

		mr := miniredis.RunT(t)
		client, err := redis.Open(ctx, "redis://"+mr.Addr()+"/0")
		require.NoError(t, err)
		t.Cleanup(func() { _ = client.Close() })

		require.NoError(t, client.Set(ctx, "k", "v", 0).Err())
		require.NoError(t, redis.Healthcheck(client)(ctx))
	})

	t.Run("gives up after retries", func(t *testing.T) {
		t.Parallel()

		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		_, err := redis.Open(ctx, "redis://"+addr, redis.WithRetry(2, 10*time.Millisecond), redis.WithTimeouts(100*time.Millisecond, 100*time.Millisecond))
		require.ErrorIs(t, err, redis.ErrConnect)
	})

	t.Run("honors context cancellation between attempts", func(t *testing.T) {
		t.Parallel()

		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		ctx, cancel := context.WithTimeout(ctx, 200*time.Millisecond)
		defer cancel()

		start := time.Now()
		_, err := redis.Open(ctx, "redis://"+addr, redis.WithRetry(5, time.Minute), redis.WithTimeouts(50*time.Millisecond, 50*time.Millisecond))
		require.ErrorIs(t, err, redis.ErrConnect)
		require.Less(t, time.Since(start), 10*time.Second)
	})
}

func TestHealthcheck(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	require.ErrorIs(t, redis.Healthcheck(nil)(ctx), redis.ErrHealthcheckFailed)

	mr := miniredis.RunT(t)
	client, err := redis.Open(ctx, "redis://"+mr.Addr())
	require.NoError(t, err)

	require.NoError(t, redis.Healthcheck(client)(ctx))

	require.NoError(t, redis.Shutdown(client)(ctx))
	require.ErrorIs(t, redis.Healthcheck(client)(ctx), redis.ErrHealthcheckFailed)
}
