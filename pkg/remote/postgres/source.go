package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/transync/pkg/remote"
)

// DefaultTable is the table created by the bundled migrations.
const DefaultTable = "translation_overrides"

// Querier is the subset of pgxpool.Pool (or pgx.Conn, or pgx.Tx) the source uses.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Source reads overrides from a PostgreSQL table.
type Source struct {
	db        Querier
	rowsSQL   string
	latestSQL string
	upsertSQL string
	deleteSQL string
}

// Option configures a Source.
type Option func(*Source)

// WithTable reads from a table other than DefaultTable.
// The name may be schema-qualified ("i18n.overrides").
func WithTable(name string) Option {
	return func(s *Source) {
		if name != "" {
			s.setTable(name)
		}
	}
}

// New creates a Source on db, usually a *pgxpool.Pool.
func New(db Querier, opts ...Option) *Source {
	s := &Source{db: db}
	s.setTable(DefaultTable)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Source) setTable(name string) {
	table := sanitize(name)
	s.rowsSQL = fmt.Sprintf(`SELECT key, locale, value, updated_at FROM %s WHERE locale = $1`, table)
	s.latestSQL = fmt.Sprintf(`SELECT max(updated_at) FROM %s WHERE locale = $1`, table)
	s.upsertSQL = fmt.Sprintf(`INSERT INTO %s (key, locale, value, updated_at) VALUES ($1, $2, $3, $4)
ON CONFLICT (locale, key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`, table)
	s.deleteSQL = fmt.Sprintf(`DELETE FROM %s WHERE locale = $1 AND key = $2`, table)
}

func (s *Source) Rows(ctx context.Context, locale string) ([]remote.Row, error) {
	rows, err := s.db.Query(ctx, s.rowsSQL, locale)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []remote.Row
	for rows.Next() {
		var (
			r     remote.Row
			value *string
		)
		if err := rows.Scan(&r.Key, &r.Locale, &value, &r.UpdatedAt); err != nil {
			return nil, err
		}
		// NULL values reach the client as empty and are skipped there.
		if value != nil {
			r.Value = *value
		}
		out = append(out, r)
	}

	return out, rows.Err()
}

func (s *Source) LatestUpdate(ctx context.Context, locale string) (time.Time, bool, error) {
	var at *time.Time
	if err := s.db.QueryRow(ctx, s.latestSQL, locale).Scan(&at); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}
	if at == nil {
		return time.Time{}, false, nil
	}
	return *at, true, nil
}

// Ping checks connectivity when the underlying Querier supports it.
func (s *Source) Ping(ctx context.Context) error {
	if p, ok := s.db.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Upsert writes rows in a single transaction. Rows without a timestamp are
// stamped with now. It exists for seeding and admin tooling; the cache
// itself only reads.
func (s *Source) Upsert(ctx context.Context, rows ...remote.Row) error {
	b, ok := s.db.(interface {
		Begin(ctx context.Context) (pgx.Tx, error)
	})
	if !ok {
		return errors.New("postgres: querier does not support transactions")
	}

	return withTx(ctx, b, func(tx pgx.Tx) error {
		now := time.Now().UTC()
		batch := &pgx.Batch{}
		for _, r := range rows {
			at := r.UpdatedAt
			if at.IsZero() {
				at = now
			}
			batch.Queue(s.upsertSQL, r.Key, r.Locale, r.Value, at)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
}

// Delete removes a single override.
func (s *Source) Delete(ctx context.Context, locale, key string) error {
	e, ok := s.db.(interface {
		Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	})
	if !ok {
		return errors.New("postgres: querier does not support exec")
	}
	_, err := e.Exec(ctx, s.deleteSQL, locale, key)
	return err
}

func withTx(ctx context.Context, db interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}, fn func(tx pgx.Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

func sanitize(name string) string {
	return pgx.Identifier(strings.Split(name, ".")).Sanitize()
}

var (
	_ remote.Source = (*Source)(nil)
	_ remote.Pinger = (*Source)(nil)
)
