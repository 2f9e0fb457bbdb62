package secrets

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Store returns the raw payload of a named secret.
type Store interface {
	SecretJSON(ctx context.Context, name string) ([]byte, error)
}

// Backend names accepted by New.
const (
	BackendEnv    = "env"
	BackendAWS    = "aws"
	BackendStatic = "static"
)

// Config selects and configures a backend.
type Config struct {
	Backend   string
	EnvPrefix string
	AWS       AWSConfig
	Static    map[string]string
}

// New builds the store named by cfg.Backend. An empty backend selects env.
func New(cfg Config) (Store, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", BackendEnv:
		return NewEnv(cfg.EnvPrefix), nil
	case BackendAWS:
		return NewAWS(cfg.AWS)
	case BackendStatic:
		return NewStatic(cfg.Static), nil
	default:
		return nil, errors.Join(ErrUnknownBackend, fmt.Errorf("backend %q", cfg.Backend))
	}
}

var (
	_ Store = (*AWS)(nil)
	_ Store = (*Env)(nil)
	_ Store = (*Static)(nil)
)
