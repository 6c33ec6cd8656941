package endpoints

import (
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/mosque-rota/internal/db"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/http/api"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/http/api/packets"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/ics"
)

type WorkerController struct {
	store db.Store
}

// WorkerModule mounts /workers.
func WorkerModule(store db.Store) api.Module {
	ctl := &WorkerController{store: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/workers", ctl.listWorkers)
		c.POST("/workers", ctl.createWorker)
	})
}

// GET /api/workers
func (w *WorkerController) listWorkers(ctx *gin.Context) (any, *api.APIError) {
	workers, err := w.store.ListWorkers(ctx.Request.Context())
	if err != nil {
		return nil, api.InternalError("Failed to load workers")
	}
	return packets.WorkersResponse{Workers: workers}, nil
}

// POST /api/workers
func (w *WorkerController) createWorker(ctx *gin.Context) (any, *api.APIError) {
	var request packets.CreateWorkerRequest
	if apiErr := bindJSON(ctx, &request, "name and icalUrl are required"); apiErr != nil {
		return nil, apiErr
	}

	name := strings.TrimSpace(request.Name)
	feedURL := strings.TrimSpace(request.ICalURL)
	if name == "" || feedURL == "" {
		return nil, api.BadRequest("name and icalUrl are required")
	}
	if !validFeedURL(feedURL) {
		return nil, api.BadRequest("icalUrl must be an http, https or webcal URL")
	}

	worker, err := w.store.CreateWorker(ctx.Request.Context(), name, feedURL)
	if err != nil {
		return nil, api.InternalError("Failed to add worker")
	}

	log.Info().
		Str("worker_id", worker.ID).
		Str("feed", ics.RedactURL(feedURL)).
		Msg("worker added")
	return api.Created(packets.WorkerResponse{Worker: worker}), nil
}

func validFeedURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "webcal":
		return true
	}
	return false
}
