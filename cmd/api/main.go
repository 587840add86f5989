package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/peterayad-eng/nexus-job-board-api/internal/app"
	"github.com/peterayad-eng/nexus-job-board-api/internal/config"
	"github.com/peterayad-eng/nexus-job-board-api/internal/database"
	apphttp "github.com/peterayad-eng/nexus-job-board-api/internal/http"
	"github.com/peterayad-eng/nexus-job-board-api/internal/http/handlers"
	"github.com/peterayad-eng/nexus-job-board-api/internal/http/metrics"
	httpmw "github.com/peterayad-eng/nexus-job-board-api/internal/http/middleware"
	"github.com/peterayad-eng/nexus-job-board-api/internal/http/response"
	"github.com/peterayad-eng/nexus-job-board-api/internal/observability"
	"github.com/peterayad-eng/nexus-job-board-api/internal/repository/postgres"
	"github.com/peterayad-eng/nexus-job-board-api/internal/security"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger()
	db := database.NewPostgres(database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	userRepo := postgres.NewUserRepository(db)
	companyRepo := postgres.NewCompanyRepository(db)
	jobRepo := postgres.NewJobRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)
	taxonomyRepo := postgres.NewTaxonomyRepository(db)

	jwtProvider := security.NewJWTProvider(cfg.JWTSecret)

	authService := app.NewAuthService(userRepo, jwtProvider, logger, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	userService := app.NewUserService(userRepo)
	companyService := app.NewCompanyService(companyRepo, userRepo)
	jobService := app.NewJobService(jobRepo, companyRepo, taxonomyRepo)
	applicationService := app.NewApplicationService(applicationRepo, jobRepo, companyRepo)
	taxonomyService := app.NewTaxonomyService(taxonomyRepo)

	var limiter httpmw.Limiter
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		limiter = httpmw.NewRedisLimiter(client)
		logger.Info("rate limiting backed by redis", "addr", cfg.RedisAddr)
	} else {
		limiter = httpmw.NewRateLimiter()
	}

	authHandler := handlers.NewAuthHandler(authService, limiter)
	userHandler := handlers.NewUserHandler(userService)
	companyHandler := handlers.NewCompanyHandler(companyService, jobService, applicationService)
	jobHandler := handlers.NewJobHandler(jobService)
	applicationHandler := handlers.NewApplicationHandler(applicationService, limiter)
	categoryHandler := handlers.NewCategoryHandler(taxonomyService)
	skillHandler := handlers.NewSkillHandler(taxonomyService)
	authMiddleware := httpmw.NewAuthMiddleware(jwtProvider)

	collector := metrics.NewCollector()
	response.SetErrorCollector(collector)

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		AuthHandler:        authHandler,
		UserHandler:        userHandler,
		CompanyHandler:     companyHandler,
		JobHandler:         jobHandler,
		ApplicationHandler: applicationHandler,
		CategoryHandler:    categoryHandler,
		SkillHandler:       skillHandler,
		MetricsHandler:     handlers.NewMetricsHandler(collector),
		AuthMiddleware:     authMiddleware,
		Metrics:            collector,
		Logger:             logger,
		RequestTimeout:     cfg.RequestTimeout,
	})
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("API started on :" + cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
