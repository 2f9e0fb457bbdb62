package authsession

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/cvforge/pkg/cache"
)

// DefaultTTL bounds how long a user may take to come back from the provider.
const DefaultTTL = 10 * time.Minute

// DefaultMemoryCapacity bounds the pending logins NewMemory holds.
const DefaultMemoryCapacity = 100_000

const redisPrefix = "oauth:state"

// Session is the server-side half of one authorization request.
type Session struct {
	State        string
	Provider     string
	CodeVerifier string
}

// Record is the stored value. The state is the key, not part of the record.
type Record struct {
	Provider     string `json:"provider"`
	CodeVerifier string `json:"code_verifier"`
}

func (r Record) complete() bool {
	return r.Provider != "" && r.CodeVerifier != ""
}

// Store keeps authorization sessions under their state for a bounded time.
// Expiry is delegated to the backing cache.
type Store struct {
	backend    cache.Cache[Record]
	defaultTTL time.Duration
}

// New creates a store over any cache backend.
func New(backend cache.Cache[Record], defaultTTL time.Duration) *Store {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &Store{backend: backend, defaultTTL: defaultTTL}
}

// NewMemory creates a process-local store holding at most
// DefaultMemoryCapacity pending logins. It is a fallback for local
// development: sessions do not survive restarts and are not shared
// between instances. Use NewRedis in production.
func NewMemory(defaultTTL time.Duration) *Store {
	return NewMemoryWithCapacity(defaultTTL, DefaultMemoryCapacity)
}

// NewMemoryWithCapacity is NewMemory with an explicit bound. When full,
// Save fails with ErrCapacity instead of evicting sessions whose users
// are still at the provider; expired sessions are reclaimed first.
func NewMemoryWithCapacity(defaultTTL time.Duration, capacity int) *Store {
	return New(cache.NewMemory[Record](
		cache.WithCleanupInterval(time.Minute),
		cache.WithMaxEntries(capacity),
		cache.WithRejectWhenFull(),
	), defaultTTL)
}

// NewRedis creates a store whose sessions live in Redis under "oauth:state:{state}".
func NewRedis(client redis.UniversalClient, defaultTTL time.Duration) *Store {
	return New(cache.NewRedis[Record](client, nil, cache.WithPrefix(redisPrefix)), defaultTTL)
}

// Save writes the session as one record. A ttl <= 0 uses the store default.
func (s *Store) Save(ctx context.Context, sess Session, ttl time.Duration) error {
	if sess.State == "" {
		return errors.Join(ErrInvalidSession, errors.New("state is empty"))
	}
	rec := Record{Provider: sess.Provider, CodeVerifier: sess.CodeVerifier}
	if !rec.complete() {
		return errors.Join(ErrInvalidSession, errors.New("provider and code verifier are required"))
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	switch err := s.backend.Set(ctx, sess.State, rec, ttl); {
	case errors.Is(err, cache.ErrFull):
		return errors.Join(ErrCapacity, err)
	case err != nil:
		return errors.Join(ErrBackend, err)
	}
	return nil
}

// Find returns the session stored under state.
// Missing, expired, undecodable and incomplete records all yield ErrNotFound.
// Other backend failures are wrapped in ErrBackend.
func (s *Store) Find(ctx context.Context, state string) (Session, error) {
	if state == "" {
		return Session{}, ErrNotFound
	}

	rec, err := s.backend.Get(ctx, state)
	switch {
	case errors.Is(err, cache.ErrNotFound), errors.Is(err, cache.ErrDecode):
		return Session{}, ErrNotFound
	case err != nil:
		return Session{}, errors.Join(ErrBackend, err)
	case !rec.complete():
		return Session{}, ErrNotFound
	}

	return Session{State: state, Provider: rec.Provider, CodeVerifier: rec.CodeVerifier}, nil
}

// Remove deletes the session. Removing a missing session is not an error.
func (s *Store) Remove(ctx context.Context, state string) error {
	if state == "" {
		return nil
	}
	if err := s.backend.Delete(ctx, state); err != nil {
		return errors.Join(ErrBackend, err)
	}
	return nil
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}
