package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/cvforge/pkg/oauth"
)

//go:embed providers.yaml
var defaultProviders []byte

type providersFile struct {
	Providers []oauth.ProviderConfig `yaml:"providers"`
}

// LoadProviders reads provider records from path, or the built-in
// records when path is empty.
func LoadProviders(path string) ([]oauth.ProviderConfig, error) {
	data := defaultProviders
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read providers file: %w", err)
		}
	}
	return ParseProviders(data)
}

// ParseProviders decodes a providers document.
func ParseProviders(data []byte) ([]oauth.ProviderConfig, error) {
	var f providersFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Join(ErrInvalidConfig, fmt.Errorf("decode providers: %w", err))
	}
	if len(f.Providers) == 0 {
		return nil, errors.Join(ErrInvalidConfig, errors.New("no providers configured"))
	}
	return f.Providers, nil
}
