package account

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/cvforge/pkg/db"
)

const uniqueViolation = "23505"

// Postgres stores accounts in the users and user_providers tables.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a Store over pool. Apply Migrations first.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) WithTx(ctx context.Context, fn func(q Queries) error) error {
	return db.WithTx(ctx, p.pool, func(tx pgx.Tx) error {
		return fn(pgQueries{tx: tx})
	})
}

type pgQueries struct {
	tx pgx.Tx
}

func (q pgQueries) UserIDByProvider(ctx context.Context, providerType, providerUserID string) (uuid.UUID, error) {
	var id uuid.UUID
	err := q.tx.QueryRow(ctx,
		`SELECT user_id FROM user_providers WHERE provider_type = $1 AND provider_user_id = $2`,
		providerType, providerUserID,
	).Scan(&id)
	return id, mapErr(err)
}

func (q pgQueries) UserIDByEmail(ctx context.Context, email string) (uuid.UUID, error) {
	var id uuid.UUID
	err := q.tx.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, email).Scan(&id)
	return id, mapErr(err)
}

func (q pgQueries) CreateUser(ctx context.Context, u NewUser) (uuid.UUID, error) {
	id := uuid.New()
	_, err := q.tx.Exec(ctx,
		`INSERT INTO users (id, email, username) VALUES ($1, $2, $3)`,
		id, u.Email, u.Username,
	)
	if err != nil {
		return uuid.Nil, mapErr(err)
	}
	return id, nil
}

func (q pgQueries) LinkProvider(ctx context.Context, userID uuid.UUID, providerType, providerUserID string) error {
	_, err := q.tx.Exec(ctx,
		`INSERT INTO user_providers (id, user_id, provider_type, provider_user_id)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (provider_type, provider_user_id) DO NOTHING`,
		uuid.New(), userID, providerType, providerUserID,
	)
	return mapErr(err)
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == "users_email_key" {
		return errors.Join(ErrEmailTaken, err)
	}
	return errors.Join(ErrStorage, err)
}

var _ Store = (*Postgres)(nil)
