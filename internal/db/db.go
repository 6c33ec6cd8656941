package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

// Supported values for the driver argument of Init.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

const (
	maxRetries    = 10
	retryInterval = 2 * time.Second
)

// Init opens a connection pool for the given driver, retrying while the
// database comes up. Cancelling ctx stops the retry loop.
func Init(ctx context.Context, driver, databaseURL string) (*sqlx.DB, error) {
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		var conn *sqlx.DB
		conn, err = sqlx.ConnectContext(ctx, driver, databaseURL)
		if err == nil {
			if driver == DriverSQLite {
				// in-memory databases live and die with their connection
				conn.SetMaxOpenConns(1)
			}
			log.Info().Str("driver", driver).Msg("connected to database")
			return conn, nil
		}

		log.Error().Err(err).
			Int("attempt", attempt).
			Msgf("failed to connect to database, retrying in %s", retryInterval)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("could not connect to database: %w", ctx.Err())
		case <-time.After(retryInterval):
		}
	}

	return nil, fmt.Errorf("could not connect to database after %d attempts: %w", maxRetries, err)
}
