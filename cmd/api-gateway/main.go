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
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/gradetrack-api/api/swagger"
	"github.com/noah-isme/gradetrack-api/internal/grading"
	"github.com/noah-isme/gradetrack-api/internal/handler"
	"github.com/noah-isme/gradetrack-api/internal/middleware"
	"github.com/noah-isme/gradetrack-api/internal/repository"
	"github.com/noah-isme/gradetrack-api/internal/service"
	"github.com/noah-isme/gradetrack-api/pkg/cache"
	"github.com/noah-isme/gradetrack-api/pkg/config"
	"github.com/noah-isme/gradetrack-api/pkg/database"
	"github.com/noah-isme/gradetrack-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/gradetrack-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/gradetrack-api/pkg/middleware/requestid"
	"github.com/noah-isme/gradetrack-api/pkg/storage"
)

// @title GradeTrack API
// @version 1.0.0
// @description Student grade tracker: subjects, assessments, todos and computed grade reports
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	var redisClient *redis.Client
	if cfg.Reports.CacheEnabled {
		redisClient, err = cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, serving grade reports uncached", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	validate := validator.New()
	metrics := service.NewMetricsService()

	userRepo := repository.NewUserRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)
	todoRepo := repository.NewTodoRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Reports.CacheTTL, logr, cfg.Reports.CacheEnabled && redisClient != nil)
	engine := grading.NewEngine(
		grading.WithModeWeights(grading.ModeWeights{F2F: cfg.Grading.F2FWeight, Online: cfg.Grading.OnlineWeight}),
		grading.WithPassingGrade(cfg.Grading.PassingGrade),
	)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             cfg.JWT.Issuer,
	})
	reportSvc := service.NewGradeReportService(subjectRepo, assessmentRepo, engine, cacheSvc, metrics, cfg.Reports.CacheTTL, logr)
	subjectSvc := service.NewSubjectService(subjectRepo, reportSvc, validate, logr)
	assessmentSvc := service.NewAssessmentService(assessmentRepo, subjectRepo, reportSvc, validate, logr)
	todoSvc := service.NewTodoService(todoRepo, subjectRepo, validate, logr)

	var exportStore *storage.LocalStorage
	var signer *storage.SignedURLSigner
	if cfg.Exports.Enabled {
		exportStore, err = storage.NewLocalStorage(cfg.Exports.Dir)
		if err != nil {
			logr.Warn("export storage unavailable, share links disabled", zap.Error(err))
		} else {
			signer = storage.NewSignedURLSigner(cfg.Exports.SigningSecret, cfg.Exports.LinkTTL)
		}
	}
	exportSvc := newExportService(reportSvc, exportStore, signer, cfg, logr)
	if exportStore != nil {
		go exportSvc.RunCleanup(ctx, cfg.Exports.LinkTTL)
	}

	checks := map[string]handler.ReadinessCheck{"database": db.PingContext}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	registerRoutes(r.Group(cfg.APIPrefix), routes{
		auth:        handler.NewAuthHandler(authSvc),
		subjects:    handler.NewSubjectHandler(subjectSvc),
		assessments: handler.NewAssessmentHandler(assessmentSvc),
		todos:       handler.NewTodoHandler(todoSvc),
		grades:      handler.NewGradeHandler(reportSvc),
		exports:     handler.NewExportHandler(exportSvc),
		metrics:     handler.NewMetricsHandler(metrics, checks),
		jwt:         middleware.JWT(authSvc),
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "prefix", cfg.APIPrefix)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

// newExportService avoids handing typed nil pointers to the service's optional dependencies.
func newExportService(reports *service.GradeReportService, store *storage.LocalStorage, signer *storage.SignedURLSigner, cfg *config.Config, logr *zap.Logger) *service.ExportService {
	exportCfg := service.ExportConfig{Enabled: cfg.Exports.Enabled, Title: cfg.Exports.Title, APIPrefix: cfg.APIPrefix}
	if store == nil || signer == nil {
		return service.NewExportService(reports, nil, nil, exportCfg, logr)
	}
	return service.NewExportService(reports, store, signer, exportCfg, logr)
}
