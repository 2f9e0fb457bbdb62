package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis keeps encoded values in Redis and lets key TTLs handle expiry.
// The client is shared; closing the cache leaves it open.
type Redis[V any] struct {
	client redis.UniversalClient
	codec  Codec[V]
	opts   *redisOptions
}

// NewRedis creates a Redis cache. A nil codec selects JSONCodec.
//
//	c := cache.NewRedis[authsession.Record](client, nil, cache.WithPrefix("oauth:state"))
func NewRedis[V any](client redis.UniversalClient, codec Codec[V], opts ...RedisOption) *Redis[V] {
	o := defaultRedisOptions()
	for _, opt := range opts {
		opt(o)
	}
	if codec == nil {
		codec = JSONCodec[V]{}
	}
	return &Redis[V]{client: client, codec: codec, opts: o}
}

func (r *Redis[V]) Get(ctx context.Context, key string) (V, error) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		var zero V
		return zero, ErrNotFound
	case err != nil:
		var zero V
		return zero, err
	}
	return r.codec.Decode(data)
}

func (r *Redis[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	data, err := r.codec.Encode(value)
	if err != nil {
		return err
	}
	switch {
	case ttl == 0:
		ttl = r.opts.defaultTTL
	case ttl < 0:
		ttl = 0 // no expiry in Redis terms
	}
	return r.client.Set(ctx, r.key(key), data, ttl).Err()
}

func (r *Redis[V]) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

// Close is a no-op; pkg/redis.Shutdown owns the client.
func (r *Redis[V]) Close() error { return nil }

func (r *Redis[V]) key(k string) string {
	if r.opts.prefix == "" {
		return k
	}
	return r.opts.prefix + ":" + k
}

var _ Cache[any] = (*Redis[any])(nil)
