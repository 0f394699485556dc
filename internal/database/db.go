package database

import (
	"context"
	"database/sql"
)

// Querier is the statement surface shared by a pooled handle and an open
// transaction.
type Querier interface {
	QueryRow(ctx context.Context, query string, args ...any) Row
}

// DB hands out a pooled connection per call. Begin pins one connection
// until the returned Tx commits or rolls back.
type DB interface {
	Querier

	Ping(ctx context.Context) error
	Begin(ctx context.Context) (Tx, error)
	Close() error

	// SQLDB exposes the pool through database/sql for tooling such as
	// migrations.
	SQLDB() *sql.DB
}

type Tx interface {
	Querier

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type Row interface {
	Scan(dest ...any) error
}
