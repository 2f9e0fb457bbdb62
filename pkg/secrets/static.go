package secrets

import (
	"context"
	"errors"
	"maps"
)

// Static serves secrets from a fixed map.
// It backs local development and tests.
type Static struct {
	values map[string]string
}

// NewStatic copies values into a read-only store.
func NewStatic(values map[string]string) *Static {
	return &Static{values: maps.Clone(values)}
}

func (s *Static) SecretJSON(_ context.Context, name string) ([]byte, error) {
	v, ok := s.values[name]
	if !ok {
		return nil, errors.Join(ErrNotFound, errors.New(name))
	}
	return []byte(v), nil
}
