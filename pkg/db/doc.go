// Package db opens the PostgreSQL pool used by the override source and runs
// its schema migrations with goose.
//
//	pool, err := db.Open(ctx, db.Config{URL: os.Getenv("DATABASE_URL")})
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := postgres.Migrate(ctx, pool, "transync_migrations", log); err != nil {
//		return err
//	}
//
// Config carries caarlos0/env tags (DATABASE_URL, DATABASE_MAX_CONNS, ...)
// so it can be embedded in the daemon's environment config.
package db
