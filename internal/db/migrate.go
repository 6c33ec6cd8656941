package db

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/GuiaBolso/darwin"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

//go:embed migrations
var migrationFS embed.FS

// Migrate applies the embedded schema for the connection's dialect.
// Applied versions are recorded by darwin, so running it twice is a no-op.
func Migrate(conn *sqlx.DB) error {
	var dialect darwin.Dialect
	switch conn.DriverName() {
	case DriverPostgres:
		dialect = darwin.PostgresDialect{}
	case DriverSQLite:
		dialect = darwin.SqliteDialect{}
	default:
		return fmt.Errorf("no migrations for driver %q", conn.DriverName())
	}

	migrations, err := loadMigrations(conn.DriverName())
	if err != nil {
		return err
	}

	driver := darwin.NewGenericDriver(conn.DB, dialect)
	if err := darwin.New(driver, migrations, nil).Migrate(); err != nil {
		log.Error().Err(err).Msg("failed to run migrations")
		return fmt.Errorf("run migrations: %w", err)
	}

	log.Info().Int("count", len(migrations)).Msg("database schema up to date")
	return nil
}

// loadMigrations reads migrations/<dir>/*.sql in file name order. The
// numeric file prefix is the darwin version.
func loadMigrations(dir string) ([]darwin.Migration, error) {
	if dir == DriverSQLite {
		dir = "sqlite"
	}
	root := path.Join("migrations", dir)

	entries, err := fs.ReadDir(migrationFS, root)
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	migrations := make([]darwin.Migration, 0, len(names))
	for _, name := range names {
		prefix, description, ok := strings.Cut(name, "_")
		if !ok {
			return nil, fmt.Errorf("migration %q: file name has no version prefix", name)
		}
		version, err := strconv.ParseFloat(prefix, 64)
		if err != nil {
			return nil, fmt.Errorf("migration %q: bad version: %w", name, err)
		}

		script, err := fs.ReadFile(migrationFS, path.Join(root, name))
		if err != nil {
			return nil, fmt.Errorf("read migration %q: %w", name, err)
		}

		migrations = append(migrations, darwin.Migration{
			Version:     version,
			Description: strings.TrimSuffix(description, ".sql"),
			Script:      string(script),
		})
	}
	return migrations, nil
}
