// Package roster combines registered workers with their shift feeds to
// answer who is working at a moment or during a window.
package roster

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/Nixie-Tech-LLC/mosque-rota/internal/ics"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/interval"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/model"
)

// DefaultConcurrency bounds simultaneous feed fetches when none is configured.
const DefaultConcurrency = 8

type WorkerLister interface {
	ListWorkers(ctx context.Context) ([]model.Worker, error)
}

type ShiftReader interface {
	Shifts(ctx context.Context, feedURL string, from, to time.Time) ([]interval.Interval, error)
}

type Service struct {
	workers     WorkerLister
	shifts      ShiftReader
	concurrency int
}

func NewService(workers WorkerLister, shifts ShiftReader, concurrency int) *Service {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Service{workers: workers, shifts: shifts, concurrency: concurrency}
}

// OnShiftAt lists workers with a shift covering at, endpoints included,
// in registration order.
func (s *Service) OnShiftAt(ctx context.Context, at time.Time) ([]model.Worker, error) {
	return s.collect(ctx, at, at, func(shift interval.Interval) bool {
		return shift.ContainsInclusive(at)
	})
}

// OnShiftDuring lists workers with a shift overlapping window, sorted by
// display name.
func (s *Service) OnShiftDuring(ctx context.Context, window interval.Interval) ([]model.Worker, error) {
	workers, err := s.collect(ctx, window.Start, window.End, func(shift interval.Interval) bool {
		return interval.Overlaps(shift, window)
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(workers, func(i, j int) bool {
		return strings.ToLower(workers[i].DisplayName) < strings.ToLower(workers[j].DisplayName)
	})
	return workers, nil
}

// collect reads every worker's feed concurrently and keeps the workers
// with at least one shift accepted by match. A feed that cannot be read
// counts as no shifts.
func (s *Service) collect(ctx context.Context, from, to time.Time, match func(interval.Interval) bool) ([]model.Worker, error) {
	workers, err := s.workers.ListWorkers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}

	onShift := make([]bool, len(workers))
	var g errgroup.Group
	g.SetLimit(s.concurrency)

	for i, w := range workers {
		g.Go(func() error {
			shifts, err := s.shifts.Shifts(ctx, w.FeedURL, from, to)
			if err != nil {
				log.Warn().Err(err).
					Str("worker_id", w.ID).
					Str("feed", ics.RedactURL(w.FeedURL)).
					Msg("failed to read shift feed")
				return nil
			}
			for _, shift := range shifts {
				if match(shift) {
					onShift[i] = true
					break
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	out := make([]model.Worker, 0, len(workers))
	for i, w := range workers {
		if onShift[i] {
			out = append(out, w)
		}
	}
	return out, nil
}
