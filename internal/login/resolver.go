package login

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/cvforge/internal/account"
	"github.com/dmitrymomot/cvforge/pkg/logger"
	"github.com/dmitrymomot/cvforge/pkg/oauth"
)

// Resolver finds or creates the local account for an external identity.
type Resolver struct {
	store  account.Store
	logger *slog.Logger
}

// NewResolver creates a Resolver over store.
func NewResolver(store account.Store, log *slog.Logger) *Resolver {
	if log == nil {
		log = logger.NewNope()
	}
	return &Resolver{store: store, logger: log}
}

// Resolve runs in one transaction:
//
//  1. an existing link for (provider, provider user id) wins, with no writes;
//  2. otherwise an account with the same folded email gets the link;
//  3. otherwise a new password-less account is created and linked.
//
// Accounts are never merged on a missing email.
func (r *Resolver) Resolve(ctx context.Context, info oauth.UserInfo) (uuid.UUID, error) {
	if info.ProviderType == "" || info.ProviderUserID == "" {
		return uuid.Nil, ErrInvalidUserInfo
	}
	email := account.NormalizeEmail(info.Email)

	var (
		userID  uuid.UUID
		outcome string
	)
	err := r.store.WithTx(ctx, func(q account.Queries) error {
		id, err := q.UserIDByProvider(ctx, info.ProviderType, info.ProviderUserID)
		if err == nil {
			userID, outcome = id, "existing_link"
			return nil
		}
		if !errors.Is(err, account.ErrNotFound) {
			return err
		}

		if email != nil {
			id, err := q.UserIDByEmail(ctx, *email)
			switch {
			case err == nil:
				userID, outcome = id, "linked_by_email"
				return q.LinkProvider(ctx, id, info.ProviderType, info.ProviderUserID)
			case !errors.Is(err, account.ErrNotFound):
				return err
			}
		}

		id, err = q.CreateUser(ctx, account.NewUser{Email: email, Username: info.Username})
		if err != nil {
			return err
		}
		userID, outcome = id, "created"
		return q.LinkProvider(ctx, id, info.ProviderType, info.ProviderUserID)
	})
	if err != nil {
		return uuid.Nil, err
	}

	r.logger.InfoContext(ctx, "account resolved",
		slog.String("provider", info.ProviderType),
		slog.String("user_id", userID.String()),
		slog.String("outcome", outcome),
	)
	return userID, nil
}
