package cache

import "time"

const defaultEntryTTL = time.Hour

// MemoryOption configures a Memory cache.
type MemoryOption func(*memoryOptions)

type memoryOptions struct {
	defaultTTL      time.Duration
	cleanupInterval time.Duration
	maxEntries      int // 0 means unbounded
	rejectWhenFull  bool
}

func defaultMemoryOptions() *memoryOptions {
	return &memoryOptions{
		defaultTTL:      defaultEntryTTL,
		cleanupInterval: time.Minute,
	}
}

// WithDefaultTTL is the lifetime of entries stored with a zero ttl. Default: 1 hour.
func WithDefaultTTL(d time.Duration) MemoryOption {
	return func(o *memoryOptions) {
		o.defaultTTL = d
	}
}

// WithCleanupInterval sets the janitor period. Zero disables the janitor;
// expired entries are then dropped lazily on read. Default: 1 minute.
func WithCleanupInterval(d time.Duration) MemoryOption {
	return func(o *memoryOptions) {
		o.cleanupInterval = d
	}
}

// WithMaxEntries bounds the cache; the least recently used entry goes first.
func WithMaxEntries(n int) MemoryOption {
	return func(o *memoryOptions) {
		o.maxEntries = n
	}
}

// WithRejectWhenFull makes Set fail with ErrFull for a new key once
// WithMaxEntries is reached and no expired entry can be reclaimed.
// Existing entries are never evicted to make room.
func WithRejectWhenFull() MemoryOption {
	return func(o *memoryOptions) {
		o.rejectWhenFull = true
	}
}

// RedisOption configures a Redis cache.
type RedisOption func(*redisOptions)

type redisOptions struct {
	prefix     string
	defaultTTL time.Duration
}

func defaultRedisOptions() *redisOptions {
	return &redisOptions{defaultTTL: defaultEntryTTL}
}

// WithRedisDefaultTTL is the lifetime of entries stored with a zero ttl. Default: 1 hour.
func WithRedisDefaultTTL(d time.Duration) RedisOption {
	return func(o *redisOptions) {
		o.defaultTTL = d
	}
}

// WithPrefix namespaces keys as "{prefix}:{key}".
func WithPrefix(prefix string) RedisOption {
	return func(o *redisOptions) {
		o.prefix = prefix
	}
}
