package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Jain-Tirth/OpportuneX/api/swagger"
	"github.com/Jain-Tirth/OpportuneX/internal/handler"
	appMiddleware "github.com/Jain-Tirth/OpportuneX/internal/middleware"
	"github.com/Jain-Tirth/OpportuneX/internal/repository"
	"github.com/Jain-Tirth/OpportuneX/internal/scraper"
	"github.com/Jain-Tirth/OpportuneX/internal/service"
	"github.com/Jain-Tirth/OpportuneX/pkg/cache"
	"github.com/Jain-Tirth/OpportuneX/pkg/config"
	"github.com/Jain-Tirth/OpportuneX/pkg/database"
	"github.com/Jain-Tirth/OpportuneX/pkg/jobs"
	"github.com/Jain-Tirth/OpportuneX/pkg/logger"
	corsmiddleware "github.com/Jain-Tirth/OpportuneX/pkg/middleware/cors"
	reqidmiddleware "github.com/Jain-Tirth/OpportuneX/pkg/middleware/requestid"
)

// @title OpportuneX API
// @version 1.0.0
// @description Hackathon and competition listings aggregator
// @BasePath /api
// @schemes http

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect postgres", "error", err)
	}
	defer db.Close()

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		}
	}

	// Repositories.
	eventRepo := repository.NewEventRepository(db)
	savedRepo := repository.NewSavedEventRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	// Services.
	metricsSvc := service.NewMetricsService()
	eventSvc := service.NewEventService(eventRepo, cacheRepo, cfg.Cache.TTL, nil, logr)
	savedSvc := service.NewSavedEventService(savedRepo, nil, logr)
	authSvc := service.NewAuthService(cfg.Auth.JWTSecret, logr)
	exportSvc := service.NewExportService(eventSvc, logr)

	scrapers := []scraper.Scraper{
		scraper.NewDevfolioScraper(cfg.Scraper, logr),
		scraper.NewUnstopScraper(cfg.Scraper, logr),
		scraper.NewDevpostScraper(cfg.Scraper, logr),
	}
	if cfg.Scraper.EventbriteEnable {
		scrapers = append(scrapers, scraper.NewEventbriteScraper(cfg.Scraper, logr))
	}
	aggregator := scraper.NewAggregator(logr, scrapers...)

	schedulerSvc := service.NewSchedulerService(aggregator, eventSvc, metricsSvc, cfg.Scheduler.CronSpec, logr)

	scrapeQueue := jobs.NewQueue("scrape", func(jobCtx context.Context, job jobs.Job) error {
		_, err := schedulerSvc.Trigger(jobCtx)
		return err
	}, jobs.QueueConfig{BufferSize: cfg.Jobs.BufferSize, Logger: logr})
	scrapeQueue.Start(ctx)
	defer scrapeQueue.Stop()

	if cfg.Scheduler.Enabled {
		if err := schedulerSvc.Start(); err != nil {
			logr.Sugar().Fatalw("failed to start scheduler", "error", err)
		}
		defer schedulerSvc.Stop()
	}

	// Handlers.
	eventHandler := handler.NewEventHandler(eventSvc, exportSvc, scrapeQueue)
	schedulerHandler := handler.NewSchedulerHandler(schedulerSvc)
	savedHandler := handler.NewSavedEventHandler(savedSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(appMiddleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	handler.Routes(api, eventHandler, schedulerHandler, savedHandler, appMiddleware.JWT(authSvc))

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Warnw("graceful shutdown failed", "error", err)
	}
}
