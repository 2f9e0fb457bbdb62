package oauth

import (
	"context"
	"errors"
	"net/url"
)

// GoogleProviderName is the identifier for the Google provider.
const GoogleProviderName = "google"

// GoogleProvider adapts Google's OpenID Connect user-info endpoint.
type GoogleProvider struct {
	base
}

// NewGoogleProvider creates a Google adapter for cfg.
func NewGoogleProvider(cfg ProviderConfig) *GoogleProvider {
	return &GoogleProvider{base: base{cfg: cfg}}
}

// AuthorizationParams asks Google to show the account chooser,
// so a user signed into several accounts picks one explicitly.
func (p *GoogleProvider) AuthorizationParams() url.Values {
	return url.Values{"prompt": {"select_account"}}
}

// NormalizeUserInfo maps the OIDC claims sub, email and name.
// An address Google explicitly reports as unverified is dropped.
func (p *GoogleProvider) NormalizeUserInfo(_ context.Context, raw []byte, _ FetchFunc) (*UserInfo, error) {
	if isNullPayload(raw) {
		return nil, nil
	}

	payload, err := parsePayload(raw)
	if err != nil {
		return nil, err
	}

	sub := optionalString(payload.Get("sub"))
	if sub == nil {
		return nil, errors.Join(ErrMissingSubject, errors.New("google: sub claim is empty"))
	}

	email := optionalString(payload.Get("email"))
	if verified := payload.Get("email_verified"); verified.Exists() && !verified.Bool() {
		email = nil
	}

	return &UserInfo{
		ProviderType:   p.Name(),
		ProviderUserID: *sub,
		Email:          email,
		Username:       plainText(optionalString(payload.Get("name"))),
	}, nil
}
