package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/mosque-rota/internal/db"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/http/api"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/http/api/packets"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/notify"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/prayer"
)

// DisplayTemplate is the template name the engine must have loaded.
const DisplayTemplate = "display.html"

type DisplayPrayer struct {
	Label   string
	Time    string
	Current bool
}

type DisplayPageData struct {
	Date    string
	Current packets.CurrentPrayer
	Prayers []DisplayPrayer
	Sunrise string
	OnShift []packets.PrayerWorker
}

// DisplayModule mounts the venue screen page. It renders the same data as
// GET /api/prayer through the engine's HTML templates.
func DisplayModule(store db.Store, source prayer.Source, roster Roster, venue Venue) api.Module {
	ctl := &PrayerController{store: store, source: source, roster: roster, notifier: notify.Nop{}, venue: venue}
	return api.ModuleFunc(func(c *api.Controller) {
		c.Group.GET("/display", ctl.display)
	})
}

// GET /display
func (p *PrayerController) display(ctx *gin.Context) {
	snap, apiErr := p.snapshot(ctx.Request.Context())
	if apiErr != nil {
		ctx.String(apiErr.Code, apiErr.Message)
		return
	}

	prayers := make([]DisplayPrayer, 0, len(prayer.Keys))
	for _, k := range prayer.Keys {
		prayers = append(prayers, DisplayPrayer{
			Label:   k.Label(),
			Time:    snap.Times.Start(k),
			Current: k == snap.CurrentPrayer.Key,
		})
	}

	ctx.HTML(http.StatusOK, DisplayTemplate, DisplayPageData{
		Date:    snap.Date,
		Current: snap.CurrentPrayer,
		Prayers: prayers,
		Sunrise: snap.Times.Sunrise,
		OnShift: snap.OnShift,
	})
}
