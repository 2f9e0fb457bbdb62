package account_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cvforge/internal/account"
)

func ptr(s string) *string { return &s }

func TestMemory_CreateAndLink(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := account.NewMemory()

	var created uuid.UUID
	err := store.WithTx(ctx, func(q account.Queries) error {
		id, err := q.CreateUser(ctx, account.NewUser{Email: ptr("a@example.com"), Username: ptr("Alice")})
		if err != nil {
			return err
		}
		created = id
		return q.LinkProvider(ctx, id, "google", "U1")
	})
	require.NoError(t, err)

	err = store.WithTx(ctx, func(q account.Queries) error {
		id, err := q.UserIDByProvider(ctx, "google", "U1")
		require.NoError(t, err)
		require.Equal(t, created, id)

		id, err = q.UserIDByEmail(ctx, "a@example.com")
		require.NoError(t, err)
		require.Equal(t, created, id)

		_, err = q.UserIDByProvider(ctx, "github", "U1")
		require.ErrorIs(t, err, account.ErrNotFound)
		return nil
	})
	require.NoError(t, err)

	users, links := store.Count()
	require.Equal(t, 1, users)
	require.Equal(t, 1, links)
}

func TestMemory_DuplicateEmail(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := account.NewMemory()

	create := func(q account.Queries) error {
		_, err := q.CreateUser(ctx, account.NewUser{Email: ptr("a@example.com")})
		return err
	}
	require.NoError(t, store.WithTx(ctx, create))
	require.ErrorIs(t, store.WithTx(ctx, create), account.ErrEmailTaken)

	users, _ := store.Count()
	require.Equal(t, 1, users)
}

func TestMemory_UsersWithoutEmail(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := account.NewMemory()

	for range 2 {
		require.NoError(t, store.WithTx(ctx, func(q account.Queries) error {
			_, err := q.CreateUser(ctx, account.NewUser{})
			return err
		}))
	}

	users, _ := store.Count()
	require.Equal(t, 2, users)
}

func TestMemory_RollbackOnError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := account.NewMemory()
	boom := errors.New("boom")

	err := store.WithTx(ctx, func(q account.Queries) error {
		id, err := q.CreateUser(ctx, account.NewUser{Email: ptr("a@example.com")})
		require.NoError(t, err)
		require.NoError(t, q.LinkProvider(ctx, id, "github", "42"))
		return boom
	})
	require.ErrorIs(t, err, boom)

	users, links := store.Count()
	require.Zero(t, users)
	require.Zero(t, links)
}

func TestMemory_LinkProvider(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := account.NewMemory()

	var first, second uuid.UUID
	require.NoError(t, store.WithTx(ctx, func(q account.Queries) error {
		var err error
		first, err = q.CreateUser(ctx, account.NewUser{Email: ptr("a@example.com")})
		require.NoError(t, err)
		second, err = q.CreateUser(ctx, account.NewUser{Email: ptr("b@example.com")})
		require.NoError(t, err)
		return q.LinkProvider(ctx, first, "github", "42")
	}))

	t.Run("re-link is a no-op", func(t *testing.T) {
		require.NoError(t, store.WithTx(ctx, func(q account.Queries) error {
			require.NoError(t, q.LinkProvider(ctx, first, "github", "42"))
			require.NoError(t, q.LinkProvider(ctx, second, "github", "42"))

			owner, err := q.UserIDByProvider(ctx, "github", "42")
			require.NoError(t, err)
			require.Equal(t, first, owner)
			return nil
		}))

		_, links := store.Count()
		require.Equal(t, 1, links)
	})

	t.Run("unknown user", func(t *testing.T) {
		err := store.WithTx(ctx, func(q account.Queries) error {
			return q.LinkProvider(ctx, uuid.New(), "google", "G")
		})
		require.ErrorIs(t, err, account.ErrNotFound)
	})
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	require.Nil(t, account.NormalizeEmail(nil))
	require.Nil(t, account.NormalizeEmail(ptr("   ")))
	require.Equal(t, "alice@example.com", *account.NormalizeEmail(ptr("  Alice@Example.COM ")))
}
