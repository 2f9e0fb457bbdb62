package login

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/cvforge/internal/authsession"
	"github.com/dmitrymomot/cvforge/pkg/oauth"
)

// Initiator starts the authorization code flow.
type Initiator struct {
	sessions Sessions
	gateway  Gateway
	ttl      time.Duration
	logger   *slog.Logger
}

// NewInitiator creates an Initiator.
func NewInitiator(sessions Sessions, gateway Gateway, opts ...Option) *Initiator {
	o := newOptions(opts...)
	return &Initiator{
		sessions: sessions,
		gateway:  gateway,
		ttl:      o.sessionTTL,
		logger:   o.logger,
	}
}

// Start generates a PKCE verifier and state, stores them and returns the
// provider authorization URL. Every call creates an independent session.
func (i *Initiator) Start(ctx context.Context, provider, redirectURI string) (string, error) {
	verifier := oauth.GenerateCodeVerifier()
	state, err := oauth.GenerateState()
	if err != nil {
		return "", err
	}

	sess := authsession.Session{State: state, Provider: provider, CodeVerifier: verifier}
	if err := i.sessions.Save(ctx, sess, i.ttl); err != nil {
		return "", err
	}

	authURL, err := i.gateway.AuthorizationURL(ctx, provider, oauth.AuthorizationRequest{
		RedirectURI:   redirectURI,
		State:         state,
		CodeChallenge: oauth.CodeChallenge(verifier),
	})
	if err != nil {
		// The session can never be redeemed; drop it instead of waiting for expiry.
		if rmErr := i.sessions.Remove(context.WithoutCancel(ctx), state); rmErr != nil {
			err = errors.Join(err, rmErr)
		}
		return "", err
	}

	i.logger.DebugContext(ctx, "authorization started", slog.String("provider", provider))
	return authURL, nil
}
