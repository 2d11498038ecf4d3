package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of pgx used by the repositories. Both *pgxpool.Pool
// and a pinned *pgxpool.Conn satisfy it.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// RunScope pins one pool connection for the duration of a reconciliation
// run. Every catalogue and vendor lookup within the run goes through the
// same connection, and the connection is returned to the pool exactly once
// when the scope closes.
type RunScope struct {
	Conn *pgxpool.Conn
}

// Close releases the pinned connection back to the pool. Safe to call on a
// nil or already-closed scope.
func (s *RunScope) Close() {
	if s == nil || s.Conn == nil {
		return
	}
	s.Conn.Release()
	s.Conn = nil
}

// AcquireRunScope pins a connection for one run. The returned scope MUST be
// closed with defer scope.Close() so the connection is released on every
// exit path.
func (db *DB) AcquireRunScope(ctx context.Context) (*RunScope, error) {
	conn, err := db.Pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return &RunScope{Conn: conn}, nil
}

type contextKey string

// runScopeKey is the context key for storing the run-scoped connection.
const runScopeKey contextKey = "runScope"

// SetRunScope stores the run-scoped connection in the context.
func SetRunScope(ctx context.Context, scope *RunScope) context.Context {
	return context.WithValue(ctx, runScopeKey, scope)
}

// GetRunScope retrieves the run-scoped connection from the context.
// Returns nil and false if not present.
func GetRunScope(ctx context.Context) (*RunScope, bool) {
	scope, ok := ctx.Value(runScopeKey).(*RunScope)
	return scope, ok
}

// QuerierFrom returns the run-scoped connection when the context carries
// one, otherwise the shared pool. Repository methods route all queries
// through this so single-row lookups and full runs share one code path.
func (db *DB) QuerierFrom(ctx context.Context) Querier {
	if scope, ok := GetRunScope(ctx); ok && scope.Conn != nil {
		return scope.Conn
	}
	return db.Pool
}
