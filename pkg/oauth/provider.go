package oauth

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/tidwall/gjson"
)

// UserInfo is the provider-agnostic identity every adapter produces
// from its provider's raw user-info payload.
type UserInfo struct {
	Email          *string // nil when the provider exposes no usable address
	Username       *string
	ProviderType   string
	ProviderUserID string
}

// FetchFunc performs an authenticated GET against a provider endpoint
// and returns the raw response body.
type FetchFunc func(ctx context.Context, endpoint string) ([]byte, error)

// Provider adapts one identity provider to the login flow.
// Implementations are pure configuration plus a few behavioral overrides.
type Provider interface {
	// Name returns the provider identifier (e.g., "google", "github").
	Name() string

	// Config returns the static provider record.
	Config() ProviderConfig

	// AuthorizationParams returns extra query parameters for the authorization URL.
	AuthorizationParams() url.Values

	// UserInfoHeaders returns the headers sent with user-info requests.
	UserInfoHeaders(accessToken string) http.Header

	// NormalizeUserInfo maps a raw user-info payload to UserInfo.
	// It returns nil, nil when the payload is null.
	// fetch may be used for secondary lookups against the same provider.
	NormalizeUserInfo(ctx context.Context, raw []byte, fetch FetchFunc) (*UserInfo, error)

	// SecretFormFields returns the client credential fields for the token request.
	SecretFormFields(secret Secret) url.Values
}

// NewProvider builds the adapter matching cfg.Type.
// Empty fields are filled from the built-in defaults for that type.
func NewProvider(cfg ProviderConfig) (Provider, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Type {
	case GoogleProviderName:
		return NewGoogleProvider(cfg), nil
	case GitHubProviderName:
		return NewGitHubProvider(cfg), nil
	default:
		return nil, errors.Join(ErrUnsupportedProviderType, fmt.Errorf("type %q", cfg.Type))
	}
}

// base carries the default adapter behavior. Concrete adapters embed it.
type base struct {
	cfg ProviderConfig
}

func (b base) Name() string {
	return b.cfg.Type
}

func (b base) Config() ProviderConfig {
	return b.cfg
}

func (base) AuthorizationParams() url.Values {
	return nil
}

func (base) UserInfoHeaders(accessToken string) http.Header {
	h := make(http.Header)
	h.Set("Authorization", "Bearer "+accessToken)
	h.Set("Accept", "application/json")
	return h
}

func (base) SecretFormFields(secret Secret) url.Values {
	return url.Values{
		"client_id":     {secret.ClientID},
		"client_secret": {secret.ClientSecret},
	}
}

// isNullPayload reports whether raw carries no user-info object at all.
func isNullPayload(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// parsePayload validates raw as a JSON object.
func parsePayload(raw []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, errors.Join(ErrDecodeFailed, errors.New("user info is not valid JSON"))
	}
	res := gjson.ParseBytes(raw)
	if !res.IsObject() {
		return gjson.Result{}, errors.Join(ErrDecodeFailed, errors.New("user info is not a JSON object"))
	}
	return res, nil
}

// optionalString returns nil for missing, null or blank values.
func optionalString(r gjson.Result) *string {
	if !r.Exists() || r.Type == gjson.Null {
		return nil
	}
	s := strings.TrimSpace(r.String())
	if s == "" {
		return nil
	}
	return &s
}

var (
	strictPolicy     *bluemonday.Policy
	strictPolicyOnce sync.Once
)

// plainText strips any markup from a provider-supplied display value.
func plainText(s *string) *string {
	if s == nil {
		return nil
	}
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	clean := strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(*s)))
	if clean == "" {
		return nil
	}
	return &clean
}
