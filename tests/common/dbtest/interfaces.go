//go:build unit || e2e

package dbtest

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RowQuerier is satisfied by both a pool and a transaction so fixture
// counts can be taken inside or outside a unit of work.
type RowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var (
	_ RowQuerier = (*pgxpool.Pool)(nil)
	_ RowQuerier = (pgx.Tx)(nil)
)
