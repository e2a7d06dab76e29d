//go:build unit || e2e

package dbtest

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// tables in dependency order; TRUNCATE ... CASCADE handles the rest
var tables = []string{
	"promotion_offers",
	"waitlist_entries",
	"bookings",
	"amenity_blackout_dates",
	"amenities",
}

// ResetDB empties every table and restarts the waitlist sequence.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sql := "TRUNCATE "
	for i, t := range tables {
		if i > 0 {
			sql += ", "
		}
		sql += t
	}
	_, err := pool.Exec(ctx, sql+" RESTART IDENTITY CASCADE")
	return err
}

// CountRows returns the row count of a fixture table.
func CountRows(ctx context.Context, db RowQuerier, table string) (int, error) {
	var n int
	err := db.QueryRow(ctx, "SELECT count(*) FROM "+table).Scan(&n)
	return n, err
}
