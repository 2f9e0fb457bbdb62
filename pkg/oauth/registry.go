package oauth

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Registry resolves provider names to adapters.
// It is built once at startup and is read-only afterward,
// so it is safe for concurrent use without locking.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry builds a registry from adapters keyed by lower-cased name.
func NewRegistry(providers ...Provider) (*Registry, error) {
	m := make(map[string]Provider, len(providers))
	for _, p := range providers {
		key := strings.ToLower(p.Name())
		if _, ok := m[key]; ok {
			return nil, errors.Join(ErrDuplicateProvider, fmt.Errorf("provider %q", p.Name()))
		}
		m[key] = p
	}
	return &Registry{providers: m}, nil
}

// NewRegistryFromConfigs builds an adapter for every record and registers it.
func NewRegistryFromConfigs(configs ...ProviderConfig) (*Registry, error) {
	providers := make([]Provider, 0, len(configs))
	for _, cfg := range configs {
		p, err := NewProvider(cfg)
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	return NewRegistry(providers...)
}

// Resolve returns the adapter for name, ignoring case.
// An unknown name yields ErrUnknownProvider.
func (r *Registry) Resolve(name string) (Provider, error) {
	p, ok := r.providers[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, errors.Join(ErrUnknownProvider, fmt.Errorf("provider %q", name))
	}
	return p, nil
}

// Names returns the registered provider names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
