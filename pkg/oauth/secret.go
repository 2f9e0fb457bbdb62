package oauth

import (
	"context"
	"encoding/json"
	"errors"
)

// SecretResolver supplies the raw client credentials payload for a provider
// from a secret store. The payload is a JSON object holding at least
// client_id and client_secret.
type SecretResolver interface {
	SecretJSON(ctx context.Context, name string) ([]byte, error)
}

// Secret holds a provider's client credentials.
type Secret struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// ParseSecret decodes a credentials payload.
// Any decoding problem or missing field yields ErrInvalidSecret.
func ParseSecret(data []byte) (Secret, error) {
	var s Secret
	if err := json.Unmarshal(data, &s); err != nil {
		return Secret{}, errors.Join(ErrInvalidSecret, err)
	}
	if s.ClientID == "" {
		return Secret{}, errors.Join(ErrInvalidSecret, errors.New("client_id is empty"))
	}
	if s.ClientSecret == "" {
		return Secret{}, errors.Join(ErrInvalidSecret, errors.New("client_secret is empty"))
	}
	return s, nil
}
