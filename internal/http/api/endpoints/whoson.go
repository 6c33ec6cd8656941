package endpoints

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/mosque-rota/internal/http/api"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/http/api/packets"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/model"
)

type WhosOnController struct {
	roster Roster
	venue  Venue
}

// WhosOnModule mounts /whos-on.
func WhosOnModule(roster Roster, venue Venue) api.Module {
	ctl := &WhosOnController{roster: roster, venue: venue}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/whos-on", ctl.whosOn)
	})
}

// GET /api/whos-on?at=ISO8601
// A missing or unreadable "at" means now.
func (w *WhosOnController) whosOn(ctx *gin.Context) (any, *api.APIError) {
	at := w.venue.Now()
	if raw := strings.TrimSpace(ctx.Query("at")); raw != "" {
		if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			at = parsed
		}
	}

	workers, err := w.roster.OnShiftAt(ctx.Request.Context(), at)
	if err != nil {
		return nil, api.InternalError("Failed to load workers")
	}

	onShift := make([]model.OnShift, 0, len(workers))
	for _, wk := range workers {
		onShift = append(onShift, model.OnShift{ID: wk.ID, Name: wk.DisplayName})
	}
	return packets.WhosOnResponse{OnShift: onShift, At: formatInstant(at)}, nil
}
