package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the persistence gateway used by every repository. Each call checks a
// connection out of the pool, runs one statement and releases the connection;
// no transaction spans multiple calls, so multi-statement operations are not
// atomic.
type DB struct {
	pool *pgxpool.Pool
}

// New creates a gateway over an initialized connection pool
func New(pool *pgxpool.Pool) *DB {
	return &DB{pool: pool}
}

// Insert runs an INSERT ... RETURNING id statement and returns the
// newly-assigned row id
func (d *DB) Insert(ctx context.Context, query string, args ...any) (int64, error) {
	var id int64
	if err := d.pool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// Exec runs a statement and returns the number of rows affected
func (d *DB) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	tag, err := d.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// QueryRow fetches at most one row
func (d *DB) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	return d.pool.QueryRow(ctx, query, args...)
}

// Query fetches an ordered sequence of rows
func (d *DB) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	return d.pool.Query(ctx, query, args...)
}

// IsNoRows reports whether err means the statement matched no row
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation on the named constraint. Duplicate keys are detected here, at the
// storage layer, rather than by a check-then-act pre-read.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "23505" && pgErr.ConstraintName == constraint
}
