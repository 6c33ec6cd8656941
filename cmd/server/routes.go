package main

import (
	"html/template"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/mosque-rota/internal/config"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/db"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/http/api"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/http/api/endpoints"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/notify"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/prayer"
)

// Services are the dependencies handed to the endpoint modules.
type Services struct {
	Store    db.Store
	Prayer   prayer.Source
	Roster   endpoints.Roster
	Notifier notify.Notifier
	Venue    endpoints.Venue
}

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, cfg *config.Config, svc Services, tmpl *template.Template) {
	r.SetHTMLTemplate(tmpl)
	// CORS
	r.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	api.MountGroup(r, api.GroupConfig{},
		endpoints.HealthModule(),
		endpoints.DisplayModule(svc.Store, svc.Prayer, svc.Roster, svc.Venue),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api",
	},
		endpoints.WorkerModule(svc.Store),
		endpoints.BreakModule(svc.Store, svc.Notifier, svc.Venue),
		endpoints.PrayerModule(svc.Store, svc.Prayer, svc.Roster, svc.Notifier, svc.Venue),
		endpoints.WhosOnModule(svc.Roster, svc.Venue),
	)
}

func corsConfig(origins []string) cors.Config {
	allowAll := len(origins) == 0 || slices.Contains(origins, "*")
	return cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return allowAll || slices.Contains(origins, origin)
		},
		AllowMethods: []string{
			"GET",
			"POST",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
		},
		ExposeHeaders: []string{
			"Content-Length",
		},
		AllowCredentials: false,
	}
}
