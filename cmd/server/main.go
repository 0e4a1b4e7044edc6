package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/academy-api/api/swagger"
	"github.com/noah-isme/academy-api/internal/handler"
	"github.com/noah-isme/academy-api/internal/middleware"
	"github.com/noah-isme/academy-api/internal/repository"
	"github.com/noah-isme/academy-api/internal/service"
	"github.com/noah-isme/academy-api/pkg/cache"
	"github.com/noah-isme/academy-api/pkg/config"
	"github.com/noah-isme/academy-api/pkg/database"
	"github.com/noah-isme/academy-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/academy-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/academy-api/pkg/middleware/requestid"
	"github.com/noah-isme/academy-api/pkg/migrate"
)

// @title Academy API
// @version 1.0.0
// @description Course catalog and enrollment service with a Redis-backed listing cache
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

	if err := run(cfg, logr); err != nil {
		logr.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logr *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logr.Warn("close database", zap.Error(err))
		}
	}()

	if cfg.Database.AutoMigrate {
		if err := migrate.Up(ctx, db.DB); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	// Redis is optional; without it every lookup is a miss.
	var redisClient redis.UniversalClient
	cacheEnabled := cfg.Cache.Enabled
	if cacheEnabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, cache disabled", zap.Error(err))
			cacheEnabled = false
		} else {
			redisClient = client
		}
	}
	cacheRepo := repository.NewCacheRepository(redisClient)
	// Deferred after the database close, so Redis is released first.
	defer func() {
		if err := cacheRepo.Close(); err != nil {
			logr.Warn("close redis", zap.Error(err))
		}
	}()

	validate := validator.New()
	metrics := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.DefaultTTL, logr, cacheEnabled)

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)

	userSvc := service.NewUserService(userRepo, cacheSvc, cfg.Cache.UserProfileTTL, validate, logr)
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            "academy-api",
	})
	courseSvc := service.NewCourseService(courseRepo, cacheSvc, cfg.Cache.CourseListTTL, validate, logr).WithMetrics(metrics)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, logr)
	joinedSvc := service.NewCourseEnrollmentService(courseRepo, enrollmentSvc, courseSvc)
	transcriptSvc := service.NewTranscriptService(joinedSvc)

	checks := map[string]handler.ReadinessCheck{
		handler.CheckDatabase: db.PingContext,
	}
	if redisClient != nil {
		checks[handler.CheckCache] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}
	metricsHandler := handler.NewMetricsHandler(metrics, checks)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))
	r.Use(middleware.WithResponseMeta())

	handler.RegisterSystemRoutes(r, metricsHandler)
	api := r.Group(cfg.APIPrefix)
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(middleware.NewIPRateLimiter(cfg.RateLimit.Max, cfg.RateLimit.Window)))
	}
	handler.RegisterRoutes(api, handler.Handlers{
		Auth:        handler.NewAuthHandler(authSvc, userSvc),
		Users:       handler.NewUserHandler(userSvc),
		Courses:     handler.NewCourseHandler(courseSvc, joinedSvc),
		Enrollments: handler.NewEnrollmentHandler(enrollmentSvc, joinedSvc, transcriptSvc, userSvc),
		Metrics:     metricsHandler,
		Cache:       handler.NewCacheHandler(cacheSvc),
	}, authSvc, userSvc)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
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

	logr.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
