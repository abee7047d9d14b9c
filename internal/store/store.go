// Package store holds the sqlx-backed data access for the biogas_server schema.
// Every statement is parameterized through db.Bindings.
package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/joestump/biogas/internal/db"
)

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials is returned when a user ID and password do not match.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

func execNamed(ctx context.Context, x *sqlx.DB, query string, b *db.Bindings) (sql.Result, error) {
	q, args, err := b.Apply(x, query)
	if err != nil {
		return nil, err
	}
	return x.ExecContext(ctx, q, args...)
}

func getNamed(ctx context.Context, x *sqlx.DB, dest any, query string, b *db.Bindings) error {
	q, args, err := b.Apply(x, query)
	if err != nil {
		return err
	}
	err = x.GetContext(ctx, dest, q, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func selectNamed(ctx context.Context, x *sqlx.DB, dest any, query string, b *db.Bindings) error {
	q, args, err := b.Apply(x, query)
	if err != nil {
		return err
	}
	return x.SelectContext(ctx, dest, q, args...)
}

// affected maps a zero-row update or delete to ErrNotFound.
func affected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
