package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/admission-planner-api/api/swagger"
	"github.com/noah-isme/admission-planner-api/internal/handler"
	internalmiddleware "github.com/noah-isme/admission-planner-api/internal/middleware"
	"github.com/noah-isme/admission-planner-api/internal/repository"
	"github.com/noah-isme/admission-planner-api/internal/service"
	"github.com/noah-isme/admission-planner-api/pkg/cache"
	"github.com/noah-isme/admission-planner-api/pkg/config"
	"github.com/noah-isme/admission-planner-api/pkg/database"
	"github.com/noah-isme/admission-planner-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/admission-planner-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/admission-planner-api/pkg/middleware/requestid"
)

// @title Admission Planner API
// @version 1.0.0
// @description Program matching, eligibility, document and timeline planning for prospective students
// @BasePath /api/v1
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

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Search.CacheEnabled {
		redisClient, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, search cache disabled", zap.Error(err))
		} else if redisClient != nil {
			store := repository.NewRedisCache(redisClient, cfg.Redis.Namespace, logr)
			defer store.Close() //nolint:errcheck
			cacheRepo = store
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Search.CacheTTL, logr, cfg.Search.CacheEnabled)
	if cfg.Search.FlushOnStart && cacheSvc.Enabled() {
		if err := cacheSvc.InvalidateSearches(ctx); err != nil {
			logr.Warn("search cache flush failed", zap.Error(err))
		} else {
			logr.Info("search cache flushed")
		}
	}

	validate := service.NewValidator()
	programRepo := repository.NewProgramRepository(db)
	requirementRepo := repository.NewRequirementRepository(db)
	documentRepo := repository.NewDocumentRepository(db)

	programSvc := service.NewProgramService(programRepo, cacheSvc, metricsSvc, validate, logr, service.ProgramServiceConfig{
		VerificationWindowMonths: cfg.Verification.WindowMonths,
		CacheTTL:                 cfg.Search.CacheTTL,
	})
	eligibilitySvc := service.NewEligibilityService(programRepo, requirementRepo, metricsSvc, validate, logr)
	documentSvc := service.NewDocumentService(programRepo, documentRepo, validate, logr)
	timelineSvc := service.NewTimelineService(programRepo, documentSvc, validate, service.TimelinePolicy{
		TotalWeeks:             cfg.Timeline.TotalWeeks,
		TranslationBufferDays:  cfg.Timeline.TranslationBufferDays,
		NotarizationBufferDays: cfg.Timeline.NotarizationBufferDays,
		DefaultDocumentDays:    cfg.Timeline.DefaultDocumentDays,
		CriticalRatio:          cfg.Timeline.CriticalRatio,
		DefaultIntake:          cfg.Timeline.DefaultIntake,
	}, logr)
	exportSvc := service.NewExportService(documentSvc, timelineSvc, service.ExportConfig{Enabled: cfg.Exports.Enabled}, logr, nil, nil)

	programHandler := handler.NewProgramHandler(programSvc)
	plannerHandler := handler.NewPlannerHandler(eligibilitySvc, documentSvc, timelineSvc, exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, db)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr, "/health", "/ready", "/metrics"))
	r.Use(corsmiddleware.WithOptions(corsmiddleware.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		ExposedHeaders: []string{"Content-Disposition", "X-Request-ID"},
	}))
	r.Use(internalmiddleware.Metrics(metricsSvc, "/metrics"))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(internalmiddleware.WithResponseMeta())
	api.GET("/metrics/summary", metricsHandler.Summary)
	api.POST("/search/expand", programHandler.Expand)

	programs := api.Group("/programs")
	programs.POST("/search", programHandler.Search)
	programs.GET("/:id", programHandler.Get)
	programs.POST("/:id/eligibility", plannerHandler.Eligibility)
	programs.POST("/:id/documents", plannerHandler.Documents)
	programs.POST("/:id/documents/export", plannerHandler.ExportDocuments)
	programs.POST("/:id/timeline", plannerHandler.Timeline)
	programs.POST("/:id/timeline/export", plannerHandler.ExportTimeline)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}
