package login

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/cvforge/pkg/oauth"
)

// CallbackParams are the values the provider sent back, plus the redirect
// URI used when the flow started.
type CallbackParams struct {
	// Provider is the provider named by the callback route. Optional; when
	// set it must match the provider the state was issued for.
	Provider    string
	Code        string
	State       string
	Error       string
	RedirectURI string
}

// Callback completes the authorization code flow.
type Callback struct {
	sessions Sessions
	gateway  Gateway
	accounts AccountResolver
	logger   *slog.Logger
	metrics  *Metrics
}

// NewCallback creates a Callback.
func NewCallback(sessions Sessions, gateway Gateway, accounts AccountResolver, opts ...Option) *Callback {
	o := newOptions(opts...)
	return &Callback{
		sessions: sessions,
		gateway:  gateway,
		accounts: accounts,
		logger:   o.logger,
		metrics:  o.metrics,
	}
}

// Handle runs the callback steps in order and stops at the first failure.
// A failure is always a *CallbackError. Once the state resolves to a
// session, that session is removed whatever happens next.
func (c *Callback) Handle(ctx context.Context, p CallbackParams) (userID uuid.UUID, err error) {
	provider := p.Provider
	defer func() {
		c.record(ctx, provider, err)
	}()

	if p.Error != "" {
		return uuid.Nil, fail(KindProviderErrorParameter, fmt.Errorf("provider returned error %q", p.Error))
	}
	if p.Code == "" || p.State == "" {
		return uuid.Nil, fail(KindMissingRequiredParameter, errors.New("code and state are required"))
	}

	sess, err := c.sessions.Find(ctx, p.State)
	if err != nil {
		return uuid.Nil, fail(KindInvalidOrExpiredState, err)
	}
	defer c.remove(ctx, sess.State)

	if p.Provider != "" && !strings.EqualFold(p.Provider, sess.Provider) {
		return uuid.Nil, fail(KindInvalidOrExpiredState, ErrStateMismatch)
	}
	provider = sess.Provider

	tok, err := c.gateway.ExchangeToken(ctx, sess.Provider, p.Code, p.RedirectURI, sess.CodeVerifier)
	switch {
	case err != nil:
		return uuid.Nil, fail(KindTokenExchangeFailed, err)
	case tok.HasError():
		return uuid.Nil, fail(KindTokenExchangeFailed, fmt.Errorf("token endpoint: %s: %s", tok.Error, tok.ErrorDescription))
	case tok.AccessToken == "":
		return uuid.Nil, fail(KindTokenExchangeFailed, ErrEmptyToken)
	}

	info, err := c.gateway.FetchUserInfo(ctx, sess.Provider, tok.AccessToken)
	if err != nil {
		return uuid.Nil, fail(KindUserInfoFetchFailed, err)
	}
	if info == nil {
		return uuid.Nil, fail(KindUserInfoFetchFailed, oauth.ErrEmptyUserInfo)
	}

	userID, err = c.resolve(ctx, *info)
	if err != nil {
		return uuid.Nil, fail(KindLoginFailed, err)
	}

	return userID, nil
}

// resolve turns a panic in account resolution into an error.
func (c *Callback) resolve(ctx context.Context, info oauth.UserInfo) (id uuid.UUID, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Join(ErrResolverPanic, fmt.Errorf("%v", r))
		}
	}()
	return c.accounts.Resolve(ctx, info)
}

func (c *Callback) remove(ctx context.Context, state string) {
	if err := c.sessions.Remove(context.WithoutCancel(ctx), state); err != nil {
		c.logger.ErrorContext(ctx, "failed to remove authorization session", slog.String("error", err.Error()))
	}
}

func (c *Callback) record(ctx context.Context, provider string, err error) {
	if err == nil {
		c.metrics.observe(provider, OutcomeSuccess)
		c.logger.InfoContext(ctx, "login callback succeeded", slog.String("provider", provider))
		return
	}

	kind := KindOf(err)
	c.metrics.observe(provider, string(kind))

	level := slog.LevelWarn
	if kind == KindLoginFailed || oauth.IsConfigFault(err) {
		level = slog.LevelError
	}
	c.logger.Log(ctx, level, "login callback failed",
		slog.String("provider", provider),
		slog.String("kind", string(kind)),
		slog.String("error", err.Error()),
	)
}
