package endpoints

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/mosque-rota/internal/db"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/http/api"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/http/api/packets"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/interval"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/notify"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/prayer"
)

const msgPrayerFieldsRequired = "workerId, prayerKey and hasPrayed are required"

type PrayerController struct {
	store    db.Store
	source   prayer.Source
	roster   Roster
	notifier notify.Notifier
	venue    Venue
}

// PrayerModule mounts /prayer.
func PrayerModule(store db.Store, source prayer.Source, roster Roster, notifier notify.Notifier, venue Venue) api.Module {
	ctl := &PrayerController{store: store, source: source, roster: roster, notifier: notifier, venue: venue}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/prayer", ctl.currentPrayer)
		c.POST("/prayer", ctl.setPrayerStatus)
	})
}

// GET /api/prayer
func (p *PrayerController) currentPrayer(ctx *gin.Context) (any, *api.APIError) {
	snap, apiErr := p.snapshot(ctx.Request.Context())
	if apiErr != nil {
		return nil, apiErr
	}
	return snap, nil
}

// snapshot resolves the current prayer window and who is on shift in it.
func (p *PrayerController) snapshot(reqCtx context.Context) (packets.PrayerResponse, *api.APIError) {
	now := p.venue.Now()
	date := now.Format(time.DateOnly)

	times, err := p.source.Today(reqCtx, now)
	if err != nil {
		return packets.PrayerResponse{}, api.InternalError("Failed to load prayer times")
	}
	windows, err := prayer.Windows(times)
	if err != nil {
		log.Error().Err(err).Str("provider", p.source.Name()).Msg("prayer timetable is unusable")
		return packets.PrayerResponse{}, api.InternalError("Failed to load prayer times")
	}

	current := prayer.Resolve(windows, interval.MinuteOfDay(now))
	bounds := current.Bounds(now, now.Location())

	workers, err := p.roster.OnShiftDuring(reqCtx, bounds)
	if err != nil {
		return packets.PrayerResponse{}, api.InternalError("Failed to load workers")
	}

	ids := make([]string, 0, len(workers))
	for _, w := range workers {
		ids = append(ids, w.ID)
	}
	statuses, err := p.store.ListPrayerStatuses(reqCtx, date, string(current.Key), ids)
	if err != nil {
		return packets.PrayerResponse{}, api.InternalError("Failed to load prayer statuses")
	}

	onShift := make([]packets.PrayerWorker, 0, len(workers))
	for _, w := range workers {
		onShift = append(onShift, packets.PrayerWorker{
			ID:        w.ID,
			Name:      w.DisplayName,
			HasPrayed: statuses[w.ID],
		})
	}

	return packets.PrayerResponse{
		At:    formatInstant(now),
		Date:  date,
		Times: times,
		CurrentPrayer: packets.CurrentPrayer{
			Key:         current.Key,
			Label:       current.Label,
			Time:        times.Start(current.Key),
			WindowStart: current.DisplayStart(),
			WindowEnd:   current.DisplayEnd(),
		},
		OnShift: onShift,
	}, nil
}

// POST /api/prayer
func (p *PrayerController) setPrayerStatus(ctx *gin.Context) (any, *api.APIError) {
	var request packets.SetPrayerStatusRequest
	if apiErr := bindJSON(ctx, &request, msgPrayerFieldsRequired); apiErr != nil {
		return nil, apiErr
	}

	key := prayer.Key(strings.ToLower(strings.TrimSpace(request.PrayerKey)))
	if !key.Valid() {
		return nil, api.BadRequest("prayerKey must be one of fajr, dhuhr, asr, maghrib, isha")
	}
	if !validUUID(request.WorkerID) {
		return nil, api.BadRequest("unknown workerId")
	}

	reqCtx := ctx.Request.Context()
	if _, err := p.store.GetWorker(reqCtx, request.WorkerID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, api.BadRequest("unknown workerId")
		}
		return nil, api.InternalError("Failed to save prayer status")
	}

	now := p.venue.Now()
	date := now.Format(time.DateOnly)
	if err := p.store.UpsertPrayerStatus(reqCtx, request.WorkerID, date, string(key), *request.HasPrayed); err != nil {
		return nil, api.InternalError("Failed to save prayer status")
	}

	p.notifier.PrayerStatusChanged(notify.PrayerStatusEvent{
		WorkerID:   request.WorkerID,
		PrayerDate: date,
		PrayerName: string(key),
		HasPrayed:  *request.HasPrayed,
		At:         now.UTC(),
	})
	return packets.OKResponse{OK: true}, nil
}
