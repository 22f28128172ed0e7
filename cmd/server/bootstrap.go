package main

import (
	"context"
	"time"

	"github.com/adwyte/synergysphere-web/internal/board"
	"github.com/adwyte/synergysphere-web/internal/config"
	"github.com/adwyte/synergysphere-web/internal/middleware"
	"github.com/adwyte/synergysphere-web/internal/models"
	"github.com/adwyte/synergysphere-web/internal/session"
	"github.com/adwyte/synergysphere-web/internal/upstream"
	"github.com/adwyte/synergysphere-web/pkg/logger"
	"github.com/robfig/cron/v3"
)

// appServices holds the initialized dependencies the routes need.
type appServices struct {
	api          *upstream.Client
	sessions     *session.Manager
	boards       *board.Registry
	loginLimiter *middleware.RateLimiter
	cron         *cron.Cron
}

// bootstrap initializes the session store, backend client, board registry
// and the purge scheduler.
func bootstrap(cfg *config.Config) *appServices {
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	api := upstream.NewClient(&cfg.Upstream)
	store := session.NewGormStore(models.GetDB())
	ttl := time.Duration(cfg.Session.TTLHours) * time.Hour
	sessions := session.NewManager(api, store, ttl)
	boards := board.NewRegistry(api, 15*time.Minute)

	c := cron.New()
	if _, err := c.AddFunc(cfg.Session.PurgeSchedule, func() {
		sessions.PurgeExpired(context.Background())
	}); err != nil {
		logger.Fatalf("Invalid purge schedule %q: %v", cfg.Session.PurgeSchedule, err)
	}
	c.Start()

	return &appServices{
		api:      api,
		sessions: sessions,
		boards:   boards,
		// credential endpoints get a tighter limiter than the rest
		loginLimiter: middleware.NewRateLimiter(2, 5),
		cron:         c,
	}
}

// shutdown stops background work.
func (s *appServices) shutdown() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.boards.Close()
	s.loginLimiter.Stop()
	logger.Info().Msg("Schedulers stopped")
}
