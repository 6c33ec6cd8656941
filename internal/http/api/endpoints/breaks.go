package endpoints

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/mosque-rota/internal/db"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/http/api"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/http/api/packets"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/interval"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/notify"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/roster"
)

const msgBreakFieldsRequired = "workerId, breakDate, startTime and endTime are required"

type BreakController struct {
	store    db.Store
	notifier notify.Notifier
	venue    Venue
}

// BreakModule mounts /breaks.
func BreakModule(store db.Store, notifier notify.Notifier, venue Venue) api.Module {
	ctl := &BreakController{store: store, notifier: notifier, venue: venue}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/breaks", ctl.listBreaks)
		c.POST("/breaks", ctl.saveBreak)
		c.DELETE("/breaks", ctl.deleteBreak)
	})
}

// GET /api/breaks?date=YYYY-MM-DD
func (b *BreakController) listBreaks(ctx *gin.Context) (any, *api.APIError) {
	date := strings.TrimSpace(ctx.Query("date"))
	if date == "" || !validDate(date) {
		return nil, api.BadRequest("Missing date parameter (YYYY-MM-DD)")
	}

	breaks, err := b.store.ListBreaks(ctx.Request.Context(), date)
	if err != nil {
		return nil, api.InternalError("Failed to load breaks")
	}

	overlaps := roster.BreakOverlaps(breaks)
	out := make([]packets.BreakResponse, 0, len(breaks))
	for _, br := range breaks {
		refs := make([]packets.BreakRef, 0, len(overlaps[br.ID]))
		for _, o := range overlaps[br.ID] {
			refs = append(refs, packets.BreakRef{ID: o.ID, WorkerID: o.WorkerID, WorkerName: o.WorkerName})
		}
		out = append(out, packets.BreakResponse{Break: br, OverlapsWith: refs})
	}
	return packets.BreaksResponse{Breaks: out}, nil
}

// POST /api/breaks
func (b *BreakController) saveBreak(ctx *gin.Context) (any, *api.APIError) {
	var request packets.SaveBreakRequest
	if apiErr := bindJSON(ctx, &request, msgBreakFieldsRequired); apiErr != nil {
		return nil, apiErr
	}

	if !validDate(request.BreakDate) {
		return nil, api.BadRequest("breakDate must be YYYY-MM-DD")
	}
	start, err := interval.NormalizeClock(request.StartTime)
	if err != nil {
		return nil, api.BadRequest("startTime must be HH:MM")
	}
	end, err := interval.NormalizeClock(request.EndTime)
	if err != nil {
		return nil, api.BadRequest("endTime must be HH:MM")
	}
	// HH:MM:SS compares correctly as text
	if end <= start {
		return nil, api.BadRequest("endTime must be after startTime")
	}
	if !validUUID(request.WorkerID) {
		return nil, api.BadRequest("unknown workerId")
	}

	reqCtx := ctx.Request.Context()
	worker, err := b.store.GetWorker(reqCtx, request.WorkerID)
	if errors.Is(err, db.ErrNotFound) {
		return nil, api.BadRequest("unknown workerId")
	}
	if err != nil {
		return nil, api.InternalError("Failed to save break")
	}

	saved, err := b.store.UpsertBreak(reqCtx, worker.ID, request.BreakDate, start, end)
	if err != nil {
		return nil, api.InternalError("Failed to save break")
	}
	saved.WorkerName = worker.DisplayName

	b.notifier.BreaksChanged(notify.BreakEvent{
		Action: notify.BreakSaved,
		ID:     saved.ID,
		Break:  &saved,
		At:     b.venue.Now().UTC(),
	})
	return api.Created(packets.SavedBreakResponse{Break: saved}), nil
}

// DELETE /api/breaks?id=ID
func (b *BreakController) deleteBreak(ctx *gin.Context) (any, *api.APIError) {
	id := strings.TrimSpace(ctx.Query("id"))
	if id == "" {
		return nil, api.BadRequest("id query parameter is required")
	}
	if !validUUID(id) {
		return nil, api.BadRequest("id must be a break id")
	}

	if err := b.store.DeleteBreak(ctx.Request.Context(), id); err != nil {
		return nil, api.InternalError("Failed to delete break")
	}

	b.notifier.BreaksChanged(notify.BreakEvent{
		Action: notify.BreakDeleted,
		ID:     id,
		At:     b.venue.Now().UTC(),
	})
	return packets.OKResponse{OK: true}, nil
}

