// Package redis opens go-redis clients for the authorization-session store.
//
// [Open] accepts redis:// and rediss:// URLs, applies pool and timeout
// settings and retries the initial PING with linear backoff:
//
//	client, err := redis.Open(ctx, cfg.RedisURL, redis.WithRetry(5, time.Second))
//	if err != nil {
//	    return err
//	}
//
// [Healthcheck] plugs into the readiness endpoint and [Shutdown] into the
// server's shutdown hooks.
package redis
