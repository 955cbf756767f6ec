package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/safestep/safestep-api/internal/db"
	"github.com/safestep/safestep-api/internal/handler"
	internalmiddleware "github.com/safestep/safestep-api/internal/middleware"
	"github.com/safestep/safestep-api/internal/repository"
	"github.com/safestep/safestep-api/internal/service"
	"github.com/safestep/safestep-api/internal/session"
	"github.com/safestep/safestep-api/pkg/cache"
	"github.com/safestep/safestep-api/pkg/config"
	"github.com/safestep/safestep-api/pkg/database"
	"github.com/safestep/safestep-api/pkg/logger"
	corsmiddleware "github.com/safestep/safestep-api/pkg/middleware/cors"
	reqidmiddleware "github.com/safestep/safestep-api/pkg/middleware/requestid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	pg, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("postgres connect failed", "error", err)
	}
	defer pg.Close()

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.RunMigrations(migrateCtx, pg); err != nil {
		logr.Sugar().Fatalw("migrations failed", "error", err)
	}

	rdb, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("redis connect failed", "error", err)
	}
	defer rdb.Close()

	users := repository.NewUserRepository(pg)
	sessions := repository.NewSessionRepository(pg)
	trainings := repository.NewTrainingRepository(pg)
	enrollments := repository.NewEnrollmentRepository(pg)

	tokenStore := session.NewRedisStore(rdb)

	authSvc := service.NewAuthService(users, sessions, tokenStore, nil, logr, service.AuthConfig{SessionTTL: cfg.Session.TTL})
	trainingSvc := service.NewTrainingService(trainings, nil, logr)
	enrollmentSvc := service.NewEnrollmentService(enrollments, logr)
	dashboardSvc := service.NewDashboardService(trainings, logr, service.DashboardConfig{
		StatesCovered: cfg.Stats.StatesCovered,
		ActiveAlerts:  cfg.Stats.ActiveAlerts,
	})
	metricsSvc := service.NewMetricsService()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(internalmiddleware.Metrics(metricsSvc))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	guards := handler.Guards{
		Require:  internalmiddleware.RequireSession(authSvc, cfg.Session.CookieName),
		Optional: internalmiddleware.OptionalSession(authSvc, cfg.Session.CookieName),
	}
	handler.RegisterRoutes(r, cfg, guards,
		handler.NewAuthHandler(authSvc, cfg.Session),
		handler.NewTrainingHandler(trainingSvc),
		handler.NewEnrollmentHandler(enrollmentSvc),
		handler.NewDashboardHandler(dashboardSvc),
	)

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
