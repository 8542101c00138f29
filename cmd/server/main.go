package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitplan/training-planner/internal/api"
	"fitplan/training-planner/internal/config"
	"fitplan/training-planner/internal/repository"
	"fitplan/training-planner/internal/repository/memory"
	"fitplan/training-planner/internal/repository/postgres"
	"fitplan/training-planner/internal/service"
	"fitplan/training-planner/internal/storage"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	log.Info("starting training planner server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.WithError(err).Fatal("could not load config")
	}
	if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
		log.SetLevel(level)
	}
	if cfg.JWT.Secret == "" {
		// a placeholder secret keeps local development running but is
		// called out loudly in the logs
		cfg.JWT.Secret = "insecure-dev-secret"
		log.Warn("jwt.secret is not set, using an insecure development secret")
	}

	// --- Data Source ---
	// One boolean decides mock vs live once; every service downstream
	// receives the same Repositories bundle either way.
	var repos *repository.Repositories
	if cfg.Database.UseMock {
		log.Warn("running against the seeded in-memory mock provider, nothing will be persisted")
		store := memory.NewStore()
		if err := memory.Seed(store); err != nil {
			log.WithError(err).Fatal("could not seed mock data")
		}
		repos = memory.NewRepositories(store)
		log.WithFields(log.Fields{
			"owner":    memory.SeedOwnerEmail,
			"password": memory.SeedPassword,
		}).Info("mock workspace seeded")
	} else {
		if cfg.Database.URL == config.DefaultDatabaseURL {
			log.Warn("database.url is not set, connecting to the built-in development default")
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		pool, err := postgres.Connect(ctx, cfg.Database.URL)
		cancel()
		if err != nil {
			log.WithError(err).Fatal("could not connect to postgres")
		}
		defer pool.Close()
		repos = postgres.NewRepositories(pool)
		log.Info("database connection established")
	}

	// --- Export Archive (optional) ---
	var archive storage.FileStorage
	if cfg.Archive.Enabled() {
		archive, err = storage.NewS3Storage(cfg.Archive)
		if err != nil {
			log.WithError(err).Fatal("could not initialize export archive storage")
		}
	} else {
		log.Info("export archiving disabled, exports are served inline only")
	}

	// --- Services ---
	authService := service.NewAuthService(repos.Accounts, repos.Users, cfg.JWT.Secret, cfg.JWT.Expiration)
	userService := service.NewUserService(repos.Accounts, repos.Users)
	plannerService := service.NewPlannerService(repos.Weeks, repos.Trainings, repos.Focuses, repos.Exercises)
	exerciseService := service.NewExerciseService(repos.Exercises, repos.Patterns)
	shareService := service.NewShareService(plannerService, repos.Trainings)
	exportService := service.NewExportService(plannerService, archive)

	// --- Router ---
	router := gin.Default()
	api.SetupRoutes(router, authService, userService, plannerService, exerciseService, shareService, exportService)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.WithField("address", cfg.Server.Address).Info("server starting")

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("listen and serve error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server exiting")
}
