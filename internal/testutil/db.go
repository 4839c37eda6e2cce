// AngelaMos | 2026
// db.go

package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/carterperez-dev/surveys/internal/config"
	"github.com/carterperez-dev/surveys/internal/core"
)

var dbCounter atomic.Int64

// NewDatabase opens a private in-memory sqlite database with the schema
// applied. It is closed when the test ends.
func NewDatabase(t testing.TB) *core.Database {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	url := fmt.Sprintf(
		"file:testdb%d?mode=memory&cache=shared&_time_format=sqlite",
		dbCounter.Add(1),
	)

	db, err := core.NewDatabase(ctx, config.DatabaseConfig{
		Driver: config.DriverSQLite,
		URL:    url,
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close() //nolint:errcheck // test cleanup
	})

	if err := db.RunMigrations(ctx); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	return db
}

// MustExec runs a statement written with '?' placeholders.
func MustExec(t testing.TB, db *core.Database, query string, args ...any) int64 {
	t.Helper()

	res, err := db.DB.ExecContext(context.Background(), db.DB.Rebind(query), args...)
	if err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("last insert id: %v", err)
	}
	return id
}

// Count returns the number of rows in table matching an optional where clause.
func Count(t testing.TB, db *core.Database, table, where string, args ...any) int {
	t.Helper()

	query := "SELECT COUNT(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}

	var n int
	if err := db.DB.GetContext(context.Background(), &n, db.DB.Rebind(query), args...); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
