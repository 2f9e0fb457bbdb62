package oauth

import (
	"context"
	"errors"
	"net/http"

	"github.com/tidwall/gjson"
)

const (
	// GitHubProviderName is the identifier for the GitHub provider.
	GitHubProviderName = "github"

	githubAPIVersion = "2022-11-28"
)

// GitHubProvider adapts the GitHub REST API.
// GitHub omits private addresses from /user, so the email may be
// resolved through a secondary /user/emails lookup.
type GitHubProvider struct {
	base
}

// NewGitHubProvider creates a GitHub adapter for cfg.
func NewGitHubProvider(cfg ProviderConfig) *GitHubProvider {
	return &GitHubProvider{base: base{cfg: cfg}}
}

// UserInfoHeaders adds the media type and API version GitHub expects.
func (p *GitHubProvider) UserInfoHeaders(accessToken string) http.Header {
	h := p.base.UserInfoHeaders(accessToken)
	h.Set("Accept", "application/vnd.github+json")
	h.Set("X-GitHub-Api-Version", githubAPIVersion)
	return h
}

// NormalizeUserInfo maps id, email and login.
// When email is absent the primary verified address from the emails
// endpoint is used; a failed or empty lookup leaves email nil.
func (p *GitHubProvider) NormalizeUserInfo(ctx context.Context, raw []byte, fetch FetchFunc) (*UserInfo, error) {
	if isNullPayload(raw) {
		return nil, nil
	}

	payload, err := parsePayload(raw)
	if err != nil {
		return nil, err
	}

	id := optionalString(payload.Get("id"))
	if id == nil {
		return nil, errors.Join(ErrMissingSubject, errors.New("github: id field is empty"))
	}

	email := optionalString(payload.Get("email"))
	if email == nil && fetch != nil && p.cfg.EmailsEndpoint != "" {
		email = p.primaryVerifiedEmail(ctx, fetch)
	}

	return &UserInfo{
		ProviderType:   p.Name(),
		ProviderUserID: *id,
		Email:          email,
		Username:       plainText(optionalString(payload.Get("login"))),
	}, nil
}

func (p *GitHubProvider) primaryVerifiedEmail(ctx context.Context, fetch FetchFunc) *string {
	raw, err := fetch(ctx, p.cfg.EmailsEndpoint)
	if err != nil || !gjson.ValidBytes(raw) {
		return nil
	}

	var found *string
	gjson.ParseBytes(raw).ForEach(func(_, e gjson.Result) bool {
		if e.Get("primary").Bool() && e.Get("verified").Bool() {
			found = optionalString(e.Get("email"))
			return found == nil
		}
		return true
	})
	return found
}
