// Package db wraps pgxpool with retrying connects, goose migrations and
// transaction helpers.
//
//	pool, err := db.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	if err := db.Migrate(ctx, pool, migrations.FS, ".", cfg.MigrationsTable, log); err != nil {
//	    return err
//	}
//
//	err = db.WithTx(ctx, pool, func(tx pgx.Tx) error {
//	    _, err := tx.Exec(ctx, "INSERT INTO users (id, email) VALUES ($1, $2)", id, email)
//	    return err
//	})
//
// Settings come from DATABASE_* environment variables through the env tags
// on [Config].
package db
