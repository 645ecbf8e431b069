package store

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"
)

type rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// backend hides the difference between a pgx pool and database/sql.
type backend interface {
	Exec(ctx context.Context, query string, args ...any) error
	Query(ctx context.Context, query string, args ...any) (rows, error)
	Close()
}

type pgBackend struct {
	pool *pgxpool.Pool
}

func (b *pgBackend) Exec(ctx context.Context, query string, args ...any) error {
	_, err := b.pool.Exec(ctx, query, args...)
	return err
}

func (b *pgBackend) Query(ctx context.Context, query string, args ...any) (rows, error) {
	return b.pool.Query(ctx, query, args...)
}

func (b *pgBackend) Close() { b.pool.Close() }

type sqlBackend struct {
	db *sql.DB
}

func (b *sqlBackend) Exec(ctx context.Context, query string, args ...any) error {
	_, err := b.db.ExecContext(ctx, query, args...)
	return err
}

func (b *sqlBackend) Query(ctx context.Context, query string, args ...any) (rows, error) {
	r, err := b.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return sqlRows{r}, nil
}

func (b *sqlBackend) Close() { _ = b.db.Close() }

type sqlRows struct {
	*sql.Rows
}

func (r sqlRows) Close() { _ = r.Rows.Close() }
