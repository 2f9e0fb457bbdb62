package secrets

import (
	"context"
	"errors"
	"os"
	"strings"
)

// DefaultEnvPrefix is prepended to derived variable names.
const DefaultEnvPrefix = "SECRET_"

// Env reads secrets from environment variables.
// The name "oauth/google" maps to SECRET_OAUTH_GOOGLE.
type Env struct {
	prefix string
	lookup func(string) (string, bool)
}

// NewEnv creates an environment backed store. An empty prefix uses DefaultEnvPrefix.
func NewEnv(prefix string) *Env {
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}
	return &Env{prefix: prefix, lookup: os.LookupEnv}
}

// VarName returns the environment variable consulted for name.
func (s *Env) VarName(name string) string {
	r := strings.NewReplacer("/", "_", "-", "_", ".", "_")
	return s.prefix + strings.ToUpper(r.Replace(name))
}

// SecretJSON returns the value of the variable mapped from name.
func (s *Env) SecretJSON(_ context.Context, name string) ([]byte, error) {
	if name == "" {
		return nil, errors.Join(ErrNotFound, errors.New("secret name is empty"))
	}

	v, ok := s.lookup(s.VarName(name))
	if !ok {
		return nil, errors.Join(ErrNotFound, errors.New(s.VarName(name)))
	}
	if v == "" {
		return nil, errors.Join(ErrEmpty, errors.New(s.VarName(name)))
	}
	return []byte(v), nil
}
