package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/mosque-rota/internal/model"
)

func (s *sqlStore) UpsertPrayerStatus(ctx context.Context, workerID, date, prayerName string, hasPrayed bool) error {
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO prayer_statuses (worker_id, prayer_date, prayer_name, has_prayed, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (worker_id, prayer_date, prayer_name)
		DO UPDATE SET has_prayed = excluded.has_prayed, updated_at = excluded.updated_at
		`), workerID, date, prayerName, hasPrayed, time.Now().UTC())
	if err != nil {
		log.Error().Err(err).
			Str("worker_id", workerID).
			Str("prayer", prayerName).
			Msg("failed to upsert prayer status")
		return fmt.Errorf("upsert prayer status: %w", err)
	}
	return nil
}

// ListPrayerStatuses returns has_prayed keyed by worker id. Workers with no
// saved status are absent from the map.
func (s *sqlStore) ListPrayerStatuses(ctx context.Context, date, prayerName string, workerIDs []string) (map[string]bool, error) {
	statuses := make(map[string]bool, len(workerIDs))
	if len(workerIDs) == 0 {
		return statuses, nil
	}

	query, args, err := sqlx.In(`
		SELECT CAST(worker_id AS TEXT) AS worker_id, has_prayed
		FROM prayer_statuses
		WHERE prayer_date = ? AND prayer_name = ? AND worker_id IN (?)
		`, date, prayerName, workerIDs)
	if err != nil {
		return nil, fmt.Errorf("build prayer status query: %w", err)
	}

	var rows []model.PrayerStatus
	if err := s.db.SelectContext(ctx, &rows, s.q(query), args...); err != nil {
		log.Error().Err(err).Str("date", date).Str("prayer", prayerName).Msg("failed to list prayer statuses")
		return nil, fmt.Errorf("list prayer statuses: %w", err)
	}

	for _, r := range rows {
		statuses[r.WorkerID] = r.HasPrayed
	}
	return statuses, nil
}
