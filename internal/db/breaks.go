package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/mosque-rota/internal/model"
)

// UpsertBreak saves the worker's break for date. A worker has at most one
// break per day, so a second save overwrites times and keeps the original id.
func (s *sqlStore) UpsertBreak(ctx context.Context, workerID, date, start, end string) (model.Break, error) {
	var id string
	err := s.db.GetContext(ctx, &id, s.q(`
		INSERT INTO breaks (id, worker_id, break_date, start_time, end_time)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (worker_id, break_date)
		DO UPDATE SET start_time = excluded.start_time, end_time = excluded.end_time
		RETURNING CAST(id AS TEXT)
		`), uuid.NewString(), workerID, date, start, end)
	if err != nil {
		log.Error().Err(err).Str("worker_id", workerID).Msg("failed to upsert break")
		return model.Break{}, fmt.Errorf("upsert break: %w", err)
	}

	return model.Break{
		ID:        id,
		WorkerID:  workerID,
		BreakDate: date,
		StartTime: start,
		EndTime:   end,
	}, nil
}

func (s *sqlStore) ListBreaks(ctx context.Context, date string) ([]model.Break, error) {
	breaks := []model.Break{}
	err := s.db.SelectContext(ctx, &breaks, s.q(`
		SELECT CAST(b.id AS TEXT)         AS id,
		       CAST(b.worker_id AS TEXT)  AS worker_id,
		       COALESCE(w.display_name, '') AS worker_name,
		       CAST(b.break_date AS TEXT) AS break_date,
		       CAST(b.start_time AS TEXT) AS start_time,
		       CAST(b.end_time AS TEXT)   AS end_time
		FROM breaks b
		LEFT JOIN workers w ON w.id = b.worker_id
		WHERE b.break_date = ?
		ORDER BY b.start_time, b.id
		`), date)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("failed to list breaks")
		return nil, fmt.Errorf("list breaks: %w", err)
	}
	return breaks, nil
}

// DeleteBreak removes a break by id. Deleting an unknown id is not an error.
func (s *sqlStore) DeleteBreak(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, s.q(`DELETE FROM breaks WHERE id = ?`), id); err != nil {
		log.Error().Err(err).Str("break_id", id).Msg("failed to delete break")
		return fmt.Errorf("delete break: %w", err)
	}
	return nil
}
