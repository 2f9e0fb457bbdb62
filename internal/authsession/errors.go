package authsession

import "errors"

var (
	// ErrNotFound covers missing, expired and unreadable sessions alike.
	ErrNotFound = errors.New("authsession: session not found")

	ErrInvalidSession = errors.New("authsession: invalid session")
	ErrBackend        = errors.New("authsession: backend failure")

	// ErrCapacity means a bounded store is full of unexpired sessions.
	ErrCapacity = errors.New("authsession: too many pending sessions")
)
