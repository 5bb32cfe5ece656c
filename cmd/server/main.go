package main // Entry point package

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tdmsuite/insights/internal/audit"
	"github.com/tdmsuite/insights/internal/config"
	"github.com/tdmsuite/insights/internal/database"
	"github.com/tdmsuite/insights/internal/handler"
	"github.com/tdmsuite/insights/internal/middleware"
	"github.com/tdmsuite/insights/internal/repository"
	"github.com/tdmsuite/insights/internal/router"
	"github.com/tdmsuite/insights/internal/session"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly

	cfg := config.Load()
	setupLogging(cfg)

	// Audit storage is best-effort: without MySQL the consumer still logs
	// every event, it just cannot persist them.
	var auditRepo *repository.AuditRepo
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Warn().Err(err).Msg("audit database unavailable; running log-only")
	} else {
		auditRepo = repository.NewAuditRepo(db)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := auditRepo.EnsureSchema(ctx); err != nil {
			log.Warn().Err(err).Msg("audit schema setup failed; running log-only")
			auditRepo = nil
		}
		cancel()
	}

	// Drain the audit queue in the background for the life of the process.
	go func() {
		if err := audit.StartConsumer(auditRepo); err != nil {
			log.Error().Err(err).Msg("audit consumer stopped")
		}
	}()

	store := session.NewStore()
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn().Msg("redis unavailable; rate limiting and response cache disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestLogger())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterSession(e, handler.NewSessionHandler(cfg, store), cfg.JWTSecret)
	router.RegisterInsights(e, handler.NewInsightsHandler(cfg), cfg.JWTSecret, store)
	router.RegisterPlans(e, handler.NewPlanHandler(), config.LoadCacheConfig(), rdb)
	router.RegisterAdmin(e, handler.NewAdminHandler(cfg, auditRepo), cfg)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")

	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// setupLogging configures the global zerolog logger: JSON in prod, console
// for everything else.
func setupLogging(cfg config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Env != "prod" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
