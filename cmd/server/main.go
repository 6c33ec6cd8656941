package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/mosque-rota/internal/config"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/db"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/http/api/endpoints"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/ics"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/roster"
	"github.com/Nixie-Tech-LLC/mosque-rota/internal/scheduler"
)

const shutdownTimeout = 15 * time.Second

func main() {
	loadDotEnv()

	// load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	configureLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// initialize database and run pending migrations
	conn, err := db.Init(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db init")
	}
	defer conn.Close()

	if err := db.Migrate(conn); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}
	store := db.NewStore(conn)

	source, rdb := InitPrayerSource(ctx, cfg)
	if rdb != nil {
		defer rdb.Close()
	}

	notifier := InitNotifier(cfg)
	defer notifier.Close()

	reader := ics.NewReader(ics.NewFetcher(cfg.FeedTimeout), cfg.Location)
	rota := roster.NewService(store, reader, cfg.FeedConcurrency)

	sched := scheduler.New(cfg.Location)
	if rdb != nil {
		if err := sched.AddPrayerWarmup(cfg.Prayer.WarmupCron, source); err != nil {
			log.Fatal().Err(err).Msg("scheduler")
		}
		if err := sched.WarmPrayerTimes(ctx, source); err != nil {
			log.Warn().Err(err).Msg("initial prayer times warm-up failed")
		}
	}
	sched.Start()

	tmpl, err := LoadTemplates()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse templates")
	}

	// set up gin router
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.RequestLogger())
	RegisterRoutes(r, cfg, Services{
		Store:    store,
		Prayer:   source,
		Roster:   rota,
		Notifier: notifier,
		Venue:    endpoints.Venue{Location: cfg.Location},
	}, tmpl)

	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("address", cfg.ServerAddress).Str("timezone", cfg.Location.String()).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	sched.Stop(shutdownCtx)
}
