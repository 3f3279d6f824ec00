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
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/class-scheduler-api/api/swagger"
	"github.com/noah-isme/class-scheduler-api/internal/handler"
	"github.com/noah-isme/class-scheduler-api/internal/middleware"
	"github.com/noah-isme/class-scheduler-api/internal/models"
	"github.com/noah-isme/class-scheduler-api/internal/repository"
	"github.com/noah-isme/class-scheduler-api/internal/scheduler"
	"github.com/noah-isme/class-scheduler-api/internal/service"
	"github.com/noah-isme/class-scheduler-api/pkg/cache"
	"github.com/noah-isme/class-scheduler-api/pkg/config"
	"github.com/noah-isme/class-scheduler-api/pkg/database"
	"github.com/noah-isme/class-scheduler-api/pkg/jobs"
	"github.com/noah-isme/class-scheduler-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/class-scheduler-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/class-scheduler-api/pkg/middleware/requestid"
	"github.com/noah-isme/class-scheduler-api/pkg/storage"
)

// @title Class Scheduler API
// @version 1.0.0
// @description Generates weekly class timetables from a teaching dataset
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const cacheNamespace = "class-scheduler"

type datasetLoader interface {
	Load(ctx context.Context) (*models.Dataset, error)
	Source() string
}

type handlers struct {
	auth      *handler.AuthHandler
	users     *handler.UserHandler
	dashboard *handler.DashboardHandler
	schedules *handler.ScheduleHandler
	datasets  *handler.DatasetHandler
	probes    *handler.MetricsHandler
}

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

	if err := run(ctx, cfg, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logr *zap.Logger) error {
	db, err := database.New(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, schedule cache disabled", zap.Error(err))
		redisClient = nil
	}

	validate := validator.New()
	metrics := service.NewMetricsService()

	cacheRepo := repository.NewCacheRepository(redisClient, cacheNamespace)
	defer cacheRepo.Close() //nolint:errcheck
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Scheduler.CacheTTL, logr, redisClient != nil)

	userRepo := repository.NewUserRepository(db)
	if err := userRepo.EnsureSchema(ctx); err != nil {
		return err
	}
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})
	if err := authSvc.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		return err
	}
	userSvc := service.NewUserService(userRepo, validate, logr)

	var source datasetLoader
	switch cfg.Dataset.Source {
	case config.DatasetSourceDatabase:
		source = repository.NewSQLDatasetRepository(db, metrics)
	case config.DatasetSourceCSV, "":
		source = repository.NewCSVDatasetRepository(cfg.Dataset.CSVDir)
	default:
		return fmt.Errorf("unsupported dataset source %q", cfg.Dataset.Source)
	}
	datasetSvc := service.NewDatasetService(source, cacheSvc, metrics, logr)

	windows, err := scheduler.ParseWindows(cfg.Scheduler.PeriodWindows)
	if err != nil {
		return fmt.Errorf("parse period windows: %w", err)
	}
	sched, err := scheduler.New(scheduler.Policy{Windows: windows, Strategy: scheduler.Strategy(cfg.Scheduler.Policy)})
	if err != nil {
		return err
	}
	scheduleSvc := service.NewScheduleService(datasetSvc, sched, cacheSvc, metrics, logr, cfg.Scheduler.CacheTTL)

	store, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		return fmt.Errorf("init export storage: %w", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
	exportSvc := service.NewExportService(scheduleSvc, store, signer, validate, logr, service.ExportConfig{
		APIPrefix: cfg.APIPrefix,
		ResultTTL: cfg.Exports.SignedURLTTL,
	})
	dashboardSvc := service.NewDashboardService(datasetSvc, metrics, logr)

	queue := jobs.NewQueue("background", jobs.QueueConfig{
		Workers:    cfg.Jobs.Workers,
		MaxRetries: cfg.Jobs.MaxRetries,
		Logger:     logr,
	})
	jobSvc := service.NewJobService(queue, scheduleSvc, exportSvc, logr)
	queue.Start(ctx)
	defer queue.Stop()
	if cfg.Jobs.WarmupOnReload {
		datasetSvc.OnReload(jobSvc.EnqueueWarmup)
	}
	go jobSvc.RunCleanup(ctx, cfg.Jobs.CleanupInterval)

	// The server starts even without a dataset; /ready reports 503 until a reload succeeds.
	if _, err := datasetSvc.Reload(ctx); err != nil {
		logr.Error("initial dataset load failed", zap.Error(err))
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := newRouter(cfg, logr, metrics, authSvc, handlers{
		auth:      handler.NewAuthHandler(authSvc),
		users:     handler.NewUserHandler(userSvc),
		dashboard: handler.NewDashboardHandler(dashboardSvc),
		schedules: handler.NewScheduleHandler(scheduleSvc, exportSvc),
		datasets:  handler.NewDatasetHandler(datasetSvc),
		probes:    handler.NewMetricsHandler(metrics.Handler(), datasetSvc),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newRouter(cfg *config.Config, logr *zap.Logger, metrics *service.MetricsService, tokens middleware.TokenValidator, h handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", h.probes.Health)
	r.GET("/ready", h.probes.Ready)
	r.GET("/metrics", h.probes.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", h.auth.Login)
	api.GET("/schedules/exports/:token", h.schedules.Download)

	protected := api.Group("", middleware.JWT(tokens))
	protected.POST("/auth/logout", h.auth.Logout)
	protected.GET("/auth/me", h.auth.Me)
	protected.GET("/dashboard", h.dashboard.Summary)
	protected.GET("/schedules/generate", h.schedules.Generate)
	protected.POST("/schedules/export", h.schedules.Export)

	admin := protected.Group("", middleware.RequireRoles(models.RoleAdmin))
	admin.POST("/datasets/reload", h.datasets.Reload)
	admin.GET("/users", h.users.List)
	admin.POST("/users", h.users.Create)
	admin.DELETE("/users/:id", h.users.Delete)

	return r
}
