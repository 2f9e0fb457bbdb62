package oauth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/dmitrymomot/cvforge/pkg/cache"
)

// maxResponseBytes caps how much of a user-info response is read.
const maxResponseBytes = 1 << 20

// AuthorizationRequest carries the per-flow values placed in the authorization URL.
type AuthorizationRequest struct {
	RedirectURI   string
	State         string
	CodeChallenge string
}

// Gateway talks HTTP to identity providers: it builds authorization URLs,
// exchanges codes for tokens and fetches normalized user info.
type Gateway struct {
	registry    *Registry
	secrets     SecretResolver
	client      *http.Client
	logger      *slog.Logger
	secretCache *cache.Loader[Secret]
	secretTTL   time.Duration
}

// NewGateway creates a gateway resolving adapters from registry and
// client credentials from secrets.
func NewGateway(registry *Registry, secrets SecretResolver, opts ...Option) *Gateway {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return &Gateway{
		registry:    registry,
		secrets:     secrets,
		client:      o.httpClient,
		logger:      o.logger,
		secretCache: cache.NewLoader[Secret](cache.NewMemory[Secret](cache.WithCleanupInterval(0))),
		secretTTL:   o.secretTTL,
	}
}

// AuthorizationURL builds the provider's authorization URL for the
// authorization code flow with an S256 PKCE challenge.
func (g *Gateway) AuthorizationURL(ctx context.Context, provider string, req AuthorizationRequest) (string, error) {
	p, err := g.registry.Resolve(provider)
	if err != nil {
		return "", err
	}

	secret, err := g.credentials(ctx, p)
	if err != nil {
		return "", err
	}

	opts := []oauth2.AuthCodeOption{
		oauth2.SetAuthURLParam("code_challenge", req.CodeChallenge),
		oauth2.SetAuthURLParam("code_challenge_method", CodeChallengeMethodS256),
	}
	extra := p.AuthorizationParams()
	for k := range extra {
		opts = append(opts, oauth2.SetAuthURLParam(k, extra.Get(k)))
	}

	return oauthConfig(p, secret, req.RedirectURI).AuthCodeURL(req.State, opts...), nil
}

// ExchangeToken trades an authorization code for an access token.
//
// Transport problems, provider error payloads, non-2xx answers and
// undecodable bodies never surface as errors: they come back as a Token
// with Error set to ServerError and the detail in ErrorDescription.
// The returned error is reserved for configuration faults
// (unknown provider, unusable client secret).
func (g *Gateway) ExchangeToken(ctx context.Context, provider, code, redirectURI, codeVerifier string) (Token, error) {
	p, err := g.registry.Resolve(provider)
	if err != nil {
		return Token{}, err
	}

	secret, err := g.credentials(ctx, p)
	if err != nil {
		return Token{}, err
	}

	opts := []oauth2.AuthCodeOption{oauth2.VerifierOption(codeVerifier)}
	fields := p.SecretFormFields(secret)
	for k := range fields {
		opts = append(opts, oauth2.SetAuthURLParam(k, fields.Get(k)))
	}

	tok, err := oauthConfig(p, secret, redirectURI).Exchange(g.clientContext(ctx), code, opts...)
	if err != nil {
		g.logger.WarnContext(ctx, "token exchange failed",
			slog.String("provider", p.Name()),
			slog.String("error", err.Error()),
		)
		return exchangeFailure(err), nil
	}

	return Token{AccessToken: tok.AccessToken, TokenType: tok.Type()}, nil
}

// FetchUserInfo retrieves the user-info payload with the provider's headers
// and normalizes it through the adapter.
func (g *Gateway) FetchUserInfo(ctx context.Context, provider, accessToken string) (*UserInfo, error) {
	p, err := g.registry.Resolve(provider)
	if err != nil {
		return nil, err
	}

	// The bearer header is set by the oauth2 transport; client credentials are not needed here.
	client := oauthConfig(p, Secret{}, "").Client(g.clientContext(ctx), &oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	})
	headers := p.UserInfoHeaders(accessToken)
	headers.Del("Authorization")

	fetch := func(ctx context.Context, endpoint string) ([]byte, error) {
		return get(ctx, client, endpoint, headers)
	}

	raw, err := fetch(ctx, p.Config().UserInfoEndpoint)
	if err != nil {
		return nil, err
	}

	info, err := p.NormalizeUserInfo(ctx, raw, fetch)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, ErrEmptyUserInfo
	}

	return info, nil
}

// credentials returns the provider's parsed client secret,
// sharing concurrent lookups and caching the result.
func (g *Gateway) credentials(ctx context.Context, p Provider) (Secret, error) {
	name := p.Config().SecretName
	return g.secretCache.Load(ctx, name, func(ctx context.Context) (Secret, time.Duration, error) {
		raw, err := g.secrets.SecretJSON(ctx, name)
		if err != nil {
			return Secret{}, 0, errors.Join(ErrSecretUnavailable, fmt.Errorf("secret %q: %w", name, err))
		}
		s, err := ParseSecret(raw)
		if err != nil {
			return Secret{}, 0, errors.Join(err, fmt.Errorf("secret %q", name))
		}
		return s, g.secretTTL, nil
	})
}

// clientContext hands the configured HTTP client to x/oauth2.
func (g *Gateway) clientContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, g.client)
}

func oauthConfig(p Provider, secret Secret, redirectURI string) *oauth2.Config {
	cfg := p.Config()
	return &oauth2.Config{
		ClientID:     secret.ClientID,
		ClientSecret: secret.ClientSecret,
		RedirectURL:  redirectURI,
		Scopes:       cfg.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   cfg.AuthorizationEndpoint,
			TokenURL:  cfg.TokenEndpoint,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// exchangeFailure folds any exchange error into a server_error token.
func exchangeFailure(err error) Token {
	var re *oauth2.RetrieveError
	if !errors.As(err, &re) {
		return serverErrorToken(err.Error())
	}

	parts := []string{"token endpoint"}
	if re.Response != nil && (re.Response.StatusCode < 200 || re.Response.StatusCode > 299) {
		parts = append(parts, fmt.Sprintf("status %d", re.Response.StatusCode))
	}
	if re.ErrorCode != "" {
		parts = append(parts, re.ErrorCode)
	}
	if re.ErrorDescription != "" {
		parts = append(parts, re.ErrorDescription)
	}
	return serverErrorToken(strings.Join(parts, ": "))
}

func get(ctx context.Context, client *http.Client, endpoint string, headers http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Join(ErrFetchFailed, fmt.Errorf("build request: %w", err))
	}
	req.Header = headers.Clone()

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Join(ErrFetchFailed, fmt.Errorf("fetch %s: %w", endpoint, err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, errors.Join(ErrFetchFailed, fmt.Errorf("read %s: %w", endpoint, err))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Join(ErrRequestFailed, fmt.Errorf("%s: status=%d", endpoint, resp.StatusCode))
	}

	return body, nil
}
