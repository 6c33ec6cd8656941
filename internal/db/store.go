// exposes a Store interface that is passed to API handlers
package db

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/Nixie-Tech-LLC/mosque-rota/internal/model"
)

// ErrNotFound is returned when a lookup by id matches no row.
var ErrNotFound = errors.New("record not found")

type Store interface {
	// worker functions
	ListWorkers(ctx context.Context) ([]model.Worker, error)
	CreateWorker(ctx context.Context, name, feedURL string) (model.Worker, error)
	GetWorker(ctx context.Context, id string) (model.Worker, error)

	// prayer status functions
	UpsertPrayerStatus(ctx context.Context, workerID, date, prayerName string, hasPrayed bool) error
	ListPrayerStatuses(ctx context.Context, date, prayerName string, workerIDs []string) (map[string]bool, error)

	// break functions
	UpsertBreak(ctx context.Context, workerID, date, start, end string) (model.Break, error)
	ListBreaks(ctx context.Context, date string) ([]model.Break, error)
	DeleteBreak(ctx context.Context, id string) error
}

type sqlStore struct {
	db *sqlx.DB
}

// compile-time check that sqlStore implements Store
var _ Store = (*sqlStore)(nil)

func NewStore(conn *sqlx.DB) Store {
	return &sqlStore{db: conn}
}

// q rewrites ?-style placeholders into the driver's bind type.
func (s *sqlStore) q(query string) string {
	return s.db.Rebind(query)
}
