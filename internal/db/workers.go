package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/mosque-rota/internal/model"
)

const workerColumns = `CAST(id AS TEXT) AS id, display_name, ical_url, created_at`

func (s *sqlStore) ListWorkers(ctx context.Context) ([]model.Worker, error) {
	workers := []model.Worker{}
	err := s.db.SelectContext(ctx, &workers, s.q(`
		SELECT `+workerColumns+`
		FROM workers
		ORDER BY created_at, id
		`))
	if err != nil {
		log.Error().Err(err).Msg("failed to list workers")
		return nil, fmt.Errorf("list workers: %w", err)
	}
	return workers, nil
}

func (s *sqlStore) CreateWorker(ctx context.Context, name, feedURL string) (model.Worker, error) {
	w := model.Worker{
		ID:          uuid.NewString(),
		DisplayName: name,
		FeedURL:     feedURL,
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO workers (id, display_name, ical_url, created_at)
		VALUES (?, ?, ?, ?)
		`), w.ID, w.DisplayName, w.FeedURL, w.CreatedAt)
	if err != nil {
		log.Error().Err(err).Msg("failed to create worker")
		return model.Worker{}, fmt.Errorf("create worker: %w", err)
	}
	return w, nil
}

func (s *sqlStore) GetWorker(ctx context.Context, id string) (model.Worker, error) {
	var w model.Worker
	err := s.db.GetContext(ctx, &w, s.q(`
		SELECT `+workerColumns+`
		FROM workers
		WHERE id = ?
		`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Worker{}, ErrNotFound
	}
	if err != nil {
		log.Error().Err(err).Str("worker_id", id).Msg("failed to get worker by id")
		return model.Worker{}, fmt.Errorf("get worker %s: %w", id, err)
	}
	return w, nil
}
