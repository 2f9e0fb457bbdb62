//go:build integration

package account_test

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cvforge/internal/account"
	"github.com/dmitrymomot/cvforge/internal/account/migrations"
	"github.com/dmitrymomot/cvforge/pkg/db"
	"github.com/dmitrymomot/cvforge/pkg/logger"
)

func newPostgres(t *testing.T) *account.Postgres {
	t.Helper()

	url := os.Getenv("DATABASE_TEST_URL")
	if url == "" {
		t.Skip("DATABASE_TEST_URL not set")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, db.Config{ConnectionString: url, RetryAttempts: 1, MaxOpenConns: 5})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, db.Migrate(ctx, pool, migrations.FS, ".", "schema_migrations", logger.NewNope()))

	_, err = pool.Exec(ctx, "TRUNCATE users CASCADE")
	require.NoError(t, err)

	return account.NewPostgres(pool)
}

func TestPostgres_CreateAndLink(t *testing.T) {
	store := newPostgres(t)
	ctx := context.Background()

	var created uuid.UUID
	require.NoError(t, store.WithTx(ctx, func(q account.Queries) error {
		id, err := q.CreateUser(ctx, account.NewUser{Email: ptr("a@example.com"), Username: ptr("Alice")})
		if err != nil {
			return err
		}
		created = id
		if err := q.LinkProvider(ctx, id, "google", "U1"); err != nil {
			return err
		}
		return q.LinkProvider(ctx, id, "google", "U1")
	}))

	require.NoError(t, store.WithTx(ctx, func(q account.Queries) error {
		id, err := q.UserIDByProvider(ctx, "google", "U1")
		require.NoError(t, err)
		require.Equal(t, created, id)

		_, err = q.UserIDByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, account.ErrNotFound)
		return nil
	}))
}

func TestPostgres_ConcurrentSameEmail(t *testing.T) {
	store := newPostgres(t)
	ctx := context.Background()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.WithTx(ctx, func(q account.Queries) error {
				_, err := q.CreateUser(ctx, account.NewUser{Email: ptr("race@example.com")})
				return err
			})
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}()
	}
	wg.Wait()

	var ok int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		require.ErrorIs(t, err, account.ErrEmailTaken)
	}
	require.Equal(t, 1, ok)
}
