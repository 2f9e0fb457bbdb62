package account

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type linkKey struct {
	providerType   string
	providerUserID string
}

type user struct {
	email    *string
	username *string
}

// Memory is a process-local Store. WithTx holds a lock for the whole
// transaction and discards staged writes when fn fails.
type Memory struct {
	mu      sync.Mutex
	users   map[uuid.UUID]user
	byEmail map[string]uuid.UUID
	links   map[linkKey]uuid.UUID
}

// NewMemory creates an empty in-memory account store.
func NewMemory() *Memory {
	return &Memory{
		users:   make(map[uuid.UUID]user),
		byEmail: make(map[string]uuid.UUID),
		links:   make(map[linkKey]uuid.UUID),
	}
}

func (m *Memory) WithTx(ctx context.Context, fn func(q Queries) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &memoryTx{
		m:       m,
		users:   make(map[uuid.UUID]user),
		byEmail: make(map[string]uuid.UUID),
		links:   make(map[linkKey]uuid.UUID),
	}
	if err := fn(tx); err != nil {
		return err
	}

	for id, u := range tx.users {
		m.users[id] = u
	}
	for e, id := range tx.byEmail {
		m.byEmail[e] = id
	}
	for k, id := range tx.links {
		m.links[k] = id
	}
	return nil
}

// Count returns the number of accounts and provider links.
func (m *Memory) Count() (users, links int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users), len(m.links)
}

// memoryTx stages writes on top of the committed maps.
type memoryTx struct {
	m       *Memory
	users   map[uuid.UUID]user
	byEmail map[string]uuid.UUID
	links   map[linkKey]uuid.UUID
}

func (tx *memoryTx) UserIDByProvider(_ context.Context, providerType, providerUserID string) (uuid.UUID, error) {
	k := linkKey{providerType, providerUserID}
	if id, ok := tx.links[k]; ok {
		return id, nil
	}
	if id, ok := tx.m.links[k]; ok {
		return id, nil
	}
	return uuid.Nil, ErrNotFound
}

func (tx *memoryTx) UserIDByEmail(_ context.Context, email string) (uuid.UUID, error) {
	if id, ok := tx.byEmail[email]; ok {
		return id, nil
	}
	if id, ok := tx.m.byEmail[email]; ok {
		return id, nil
	}
	return uuid.Nil, ErrNotFound
}

func (tx *memoryTx) CreateUser(ctx context.Context, u NewUser) (uuid.UUID, error) {
	if u.Email != nil {
		if _, err := tx.UserIDByEmail(ctx, *u.Email); err == nil {
			return uuid.Nil, ErrEmailTaken
		}
	}

	id := uuid.New()
	tx.users[id] = user{email: u.Email, username: u.Username}
	if u.Email != nil {
		tx.byEmail[*u.Email] = id
	}
	return id, nil
}

func (tx *memoryTx) LinkProvider(ctx context.Context, userID uuid.UUID, providerType, providerUserID string) error {
	if _, err := tx.UserIDByProvider(ctx, providerType, providerUserID); err == nil {
		return nil
	}
	_, staged := tx.users[userID]
	_, committed := tx.m.users[userID]
	if !staged && !committed {
		return ErrNotFound
	}
	tx.links[linkKey{providerType, providerUserID}] = userID
	return nil
}

var _ Store = (*Memory)(nil)
