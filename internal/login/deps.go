package login

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/cvforge/internal/authsession"
	"github.com/dmitrymomot/cvforge/pkg/oauth"
)

// Sessions is the authorization-session store used by the flow.
// *authsession.Store satisfies it.
type Sessions interface {
	Save(ctx context.Context, sess authsession.Session, ttl time.Duration) error
	Find(ctx context.Context, state string) (authsession.Session, error)
	Remove(ctx context.Context, state string) error
}

// Gateway talks to identity providers. *oauth.Gateway satisfies it.
type Gateway interface {
	AuthorizationURL(ctx context.Context, provider string, req oauth.AuthorizationRequest) (string, error)
	ExchangeToken(ctx context.Context, provider, code, redirectURI, codeVerifier string) (oauth.Token, error)
	FetchUserInfo(ctx context.Context, provider, accessToken string) (*oauth.UserInfo, error)
}

// AccountResolver maps an external identity to a local user id.
type AccountResolver interface {
	Resolve(ctx context.Context, info oauth.UserInfo) (uuid.UUID, error)
}

var (
	_ Sessions        = (*authsession.Store)(nil)
	_ Gateway         = (*oauth.Gateway)(nil)
	_ AccountResolver = (*Resolver)(nil)
)
