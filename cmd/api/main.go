package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avpavlenko/jobboard/internal/config"
	"github.com/avpavlenko/jobboard/internal/platform/auth"
	"github.com/avpavlenko/jobboard/internal/platform/cache"
	"github.com/avpavlenko/jobboard/internal/platform/counter"
	httpPlatform "github.com/avpavlenko/jobboard/internal/platform/http"
	"github.com/avpavlenko/jobboard/internal/platform/logger"
	"github.com/avpavlenko/jobboard/internal/platform/postgres"
	"github.com/avpavlenko/jobboard/internal/platform/redis"
	"github.com/avpavlenko/jobboard/internal/platform/storage"

	authHandler "github.com/avpavlenko/jobboard/modules/auth/handler"
	authRepo "github.com/avpavlenko/jobboard/modules/auth/repository"
	authService "github.com/avpavlenko/jobboard/modules/auth/service"

	userRepo "github.com/avpavlenko/jobboard/modules/users/repository"
	userService "github.com/avpavlenko/jobboard/modules/users/service"

	appHandler "github.com/avpavlenko/jobboard/modules/applications/handler"
	appRepo "github.com/avpavlenko/jobboard/modules/applications/repository"
	appService "github.com/avpavlenko/jobboard/modules/applications/service"

	candidateHandler "github.com/avpavlenko/jobboard/modules/candidates/handler"
	candidateRepo "github.com/avpavlenko/jobboard/modules/candidates/repository"
	candidateService "github.com/avpavlenko/jobboard/modules/candidates/service"

	companyHandler "github.com/avpavlenko/jobboard/modules/companies/handler"
	companyRepo "github.com/avpavlenko/jobboard/modules/companies/repository"
	companyService "github.com/avpavlenko/jobboard/modules/companies/service"

	favoriteHandler "github.com/avpavlenko/jobboard/modules/favorites/handler"
	favoriteRepo "github.com/avpavlenko/jobboard/modules/favorites/repository"
	favoriteService "github.com/avpavlenko/jobboard/modules/favorites/service"

	featuredHandler "github.com/avpavlenko/jobboard/modules/featuredcompanies/handler"
	featuredRepo "github.com/avpavlenko/jobboard/modules/featuredcompanies/repository"
	featuredService "github.com/avpavlenko/jobboard/modules/featuredcompanies/service"

	jobHandler "github.com/avpavlenko/jobboard/modules/jobs/handler"
	jobRepo "github.com/avpavlenko/jobboard/modules/jobs/repository"
	jobService "github.com/avpavlenko/jobboard/modules/jobs/service"

	locationHandler "github.com/avpavlenko/jobboard/modules/locations/handler"
	locationRepo "github.com/avpavlenko/jobboard/modules/locations/repository"
	locationService "github.com/avpavlenko/jobboard/modules/locations/service"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env file if exists
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logg, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logg.Sync()

	logg.Info("Starting Jobboard API server",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
	)

	ctx := context.Background()

	// Initialize PostgreSQL
	pgClient, err := postgres.New(ctx, cfg.Database)
	if err != nil {
		logg.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer pgClient.Close()
	logg.Info("Connected to PostgreSQL")

	// Run database migrations (MANDATORY: must run before HTTP server starts)
	migrationsPath := "./migrations"
	if err := postgres.RunMigrations(ctx, cfg.Database, logg, migrationsPath); err != nil {
		logg.Fatal("Failed to run database migrations",
			zap.Error(err),
			zap.String("migrations_path", migrationsPath),
		)
	}

	// Initialize Redis
	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		logg.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	logg.Info("Connected to Redis")

	// Initialize S3 client (optional - gracefully handle missing config)
	var s3Client *storage.S3Client
	if cfg.S3.Endpoint != "" && cfg.S3.Bucket != "" {
		s3Client, err = storage.NewS3Client(cfg.S3)
		if err != nil {
			logg.Warn("Failed to initialize S3 client, S3 mirroring of logos and CVs will be disabled", zap.Error(err))
		} else {
			logg.Info("S3 client initialized", zap.String("bucket", cfg.S3.Bucket))
		}
	} else {
		logg.Info("S3 configuration not provided, S3 mirroring of logos and CVs will be disabled")
	}
	logoStore := storage.NewLogoStore(cfg.Storage, s3Client, logg)
	cvStore := storage.NewCVStore(cfg.Storage, s3Client, logg)

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Sentry (optional - no DSN means calls below are no-ops)
	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
		}); err != nil {
			logg.Warn("Failed to initialize Sentry, error capture will be disabled", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
			logg.Info("Sentry initialized", zap.String("environment", cfg.Sentry.Environment))
		}
	}

	// Initialize Gin router
	router := gin.New()
	router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	router.Use(gin.Recovery())
	router.Use(httpPlatform.RequestIDMiddleware())
	router.Use(httpPlatform.LoggerMiddleware(logg))
	router.Use(httpPlatform.CORSMiddleware())

	// Health check endpoint
	router.GET("/health", healthCheckHandler(ctx, pgClient, redisClient))

	// Ping endpoint
	router.GET("/ping", pingHandler)

	// Initialize JWT manager and auth middleware
	jwtManager := auth.NewJWTManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)
	authMiddleware := auth.AuthMiddleware(jwtManager)

	// Shared id minter
	ctr := counter.New(pgClient.Pool)

	// Shared caches (Redis-backed, fall back to an in-process map)
	featuredCache := cache.New(redisClient.Client, "featured_companies")
	jobFilterOptionsCache := cache.New(redisClient.Client, "job_filter_options")

	// Initialize repositories
	userRepository := userRepo.NewUserRepository(pgClient.Pool)
	tokenRepository := authRepo.NewRefreshTokenRepository(pgClient.Pool)
	companyRepository := companyRepo.NewCompanyRepository(pgClient.Pool)
	jobRepository := jobRepo.NewJobRepository(pgClient.Pool)
	candidateRepository := candidateRepo.NewCandidateRepository(pgClient.Pool)
	applicationRepository := appRepo.NewApplicationRepository(pgClient.Pool)
	favoriteRepository := favoriteRepo.NewFavoriteRepository(pgClient.Pool)
	featuredRepository := featuredRepo.NewFeaturedCompanyRepository(pgClient.Pool)
	locationsRepository := locationRepo.NewTreeRepository(cfg.Locations.TreePath)

	// Initialize services, wiring the narrow cross-module seams
	companySvc := companyService.NewCompanyService(companyRepository, ctr)
	companyLookup := jobService.NewJobCompanyLookup(companySvc)
	jobSvc := jobService.NewJobServiceWithCache(jobRepository, ctr, companyLookup, jobFilterOptionsCache)
	candidateSvc := candidateService.NewCandidateService(candidateRepository, ctr)
	applicationSvc := appService.NewApplicationService(applicationRepository, jobSvc, ctr)
	favoriteSvc := favoriteService.NewFavoriteService(favoriteRepository, ctr)
	featuredSvc := featuredService.NewFeaturedCompanyService(featuredRepository, featuredCache)
	locationSvc := locationService.NewLocationService(locationsRepository)
	userSvc := userService.NewUserService(userRepository, ctr)
	authSvc := authService.NewAuthService(
		userSvc,
		candidateSvc,
		tokenRepository,
		jwtManager,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize handlers
	authHdl := authHandler.NewAuthHandler(authSvc)
	companyHdl := companyHandler.NewCompanyHandler(companySvc, jobSvc, logoStore)
	jobHdl := jobHandler.NewJobHandler(jobSvc)
	candidateHdl := candidateHandler.NewCandidateHandler(candidateSvc, cvStore)
	applicationHdl := appHandler.NewApplicationHandler(applicationSvc)
	favoriteHdl := favoriteHandler.NewFavoriteHandler(favoriteSvc)
	featuredHdl := featuredHandler.NewFeaturedCompanyHandler(featuredSvc)
	locationHdl := locationHandler.NewLocationHandler(locationSvc)

	// Periodically check the location tree fixture for a changed country
	// count; ordinary reads never touch disk after first use.
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			if err := locationSvc.Refresh(ctx); err != nil {
				logg.Warn("location index refresh failed", zap.Error(err))
			}
		}
	}()

	// API routes
	api := router.Group("/api")
	{
		authHdl.RegisterRoutes(api, authMiddleware)
		companyHdl.RegisterRoutes(api, authMiddleware)
		jobHdl.RegisterRoutes(api, authMiddleware)
		candidateHdl.RegisterRoutes(api, authMiddleware)
		applicationHdl.RegisterRoutes(api, authMiddleware)
		favoriteHdl.RegisterRoutes(api, authMiddleware)
		featuredHdl.RegisterRoutes(api, authMiddleware)
		locationHdl.RegisterRoutes(api)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logg.Info("Server listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logg.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logg.Info("Server exited")
}

func healthCheckHandler(ctx context.Context, pgClient *postgres.Client, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		services := make(map[string]string)

		if err := pgClient.Health(ctx); err != nil {
			services["postgres"] = "down"
		} else {
			services["postgres"] = "up"
		}

		if err := redisClient.Health(ctx); err != nil {
			services["redis"] = "down"
		} else {
			services["redis"] = "up"
		}

		httpPlatform.RespondWithHealth(c, services)
	}
}

func pingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
