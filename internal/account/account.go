package account

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// Queries are the account operations available inside a transaction.
type Queries interface {
	// UserIDByProvider returns the owner of a provider identity, or ErrNotFound.
	UserIDByProvider(ctx context.Context, providerType, providerUserID string) (uuid.UUID, error)

	// UserIDByEmail returns the account holding the folded email, or ErrNotFound.
	UserIDByEmail(ctx context.Context, email string) (uuid.UUID, error)

	// CreateUser inserts a password-less account.
	// A second account with the same email fails with ErrEmailTaken.
	CreateUser(ctx context.Context, u NewUser) (uuid.UUID, error)

	// LinkProvider attaches a provider identity to a user.
	// Linking an identity that is already linked is a no-op.
	LinkProvider(ctx context.Context, userID uuid.UUID, providerType, providerUserID string) error
}

// Store runs fn atomically: all of its writes commit together or not at all.
type Store interface {
	WithTx(ctx context.Context, fn func(q Queries) error) error
}

// NewUser describes an account created from a federated login.
type NewUser struct {
	Email    *string
	Username *string
}

var folder = cases.Fold()

// NormalizeEmail trims and case-folds an address for lookup and storage.
// Blank input yields nil.
func NormalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}
	s := strings.TrimSpace(*email)
	if s == "" {
		return nil
	}
	s = folder.String(s)
	return &s
}
