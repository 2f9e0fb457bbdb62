package cache

import "errors"

var (
	// ErrNotFound covers both missing and expired keys.
	ErrNotFound = errors.New("cache: key not found")

	ErrClosed = errors.New("cache: use of closed cache")

	// ErrFull is returned by a bounded Memory cache created WithRejectWhenFull.
	ErrFull = errors.New("cache: capacity reached")

	// ErrEncode and ErrDecode wrap Codec failures in byte-oriented backends.
	ErrEncode = errors.New("cache: cannot encode value")
	ErrDecode = errors.New("cache: cannot decode value")
)
