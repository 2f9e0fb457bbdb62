package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache stores values of one type under string keys.
//
// The ttl passed to Set means: positive, expire after ttl; zero, use the
// backend default; negative, keep until deleted.
type Cache[V any] interface {
	// Get returns ErrNotFound for missing and expired keys.
	Get(ctx context.Context, key string) (V, error)
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
	// Delete is idempotent.
	Delete(ctx context.Context, key string) error
	Close() error
}

// Codec turns values into bytes for backends that store bytes.
type Codec[V any] interface {
	Encode(v V) ([]byte, error)
	Decode(data []byte) (V, error)
}

// JSONCodec is the default Codec.
type JSONCodec[V any] struct{}

func (JSONCodec[V]) Encode(v V) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Join(ErrEncode, err)
	}
	return data, nil
}

func (JSONCodec[V]) Decode(data []byte) (V, error) {
	var v V
	if err := json.Unmarshal(data, &v); err != nil {
		return v, errors.Join(ErrDecode, err)
	}
	return v, nil
}

// LoadFunc computes a missing value and how long to keep it.
type LoadFunc[V any] func(ctx context.Context) (V, time.Duration, error)

// Loader is a read-through front for a Cache. Concurrent misses on the
// same key share one LoadFunc call. Failed loads are not cached.
type Loader[V any] struct {
	cache  Cache[V]
	flight singleflight.Group
}

// NewLoader wraps c.
func NewLoader[V any](c Cache[V]) *Loader[V] {
	return &Loader[V]{cache: c}
}

// loaded boxes V so a nil interface value survives the round trip through any.
type loaded[V any] struct {
	value V
}

// Load returns the cached value for key, calling fn on a miss.
// fn gets ctx without its cancellation; bound it with its own timeout.
func (l *Loader[V]) Load(ctx context.Context, key string, fn LoadFunc[V]) (V, error) {
	if v, err := l.cache.Get(ctx, key); err == nil {
		return v, nil
	}

	res, err, _ := l.flight.Do(key, func() (any, error) {
		// Shared by every waiter, so one caller's cancellation must not fail the rest.
		ctx := context.WithoutCancel(ctx)
		v, ttl, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		// A failed write only means the next miss loads again.
		_ = l.cache.Set(ctx, key, v, ttl)
		return loaded[V]{value: v}, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return res.(loaded[V]).value, nil
}

// Close closes the underlying cache.
func (l *Loader[V]) Close() error {
	return l.cache.Close()
}
