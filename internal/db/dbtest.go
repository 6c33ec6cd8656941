package db

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// NewTestDB returns a migrated in-memory SQLite database that is closed
// when the test ends.
func NewTestDB(t testing.TB) *sqlx.DB {
	t.Helper()

	conn, err := Init(context.Background(), DriverSQLite, "file::memory:?_foreign_keys=on")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, Migrate(conn))
	return conn
}

// NewTestStore is NewTestDB wrapped in a Store.
func NewTestStore(t testing.TB) Store {
	t.Helper()
	return NewStore(NewTestDB(t))
}
