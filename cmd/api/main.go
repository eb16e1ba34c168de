// Package main is the entry point for the Money Saver API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/money-saver/backend/config"
	"github.com/money-saver/backend/internal/application/adapter"
	"github.com/money-saver/backend/internal/application/usecase/reminder"
	"github.com/money-saver/backend/internal/application/usecase/savings"
	"github.com/money-saver/backend/internal/application/usecase/user"
	"github.com/money-saver/backend/internal/infra/db"
	"github.com/money-saver/backend/internal/infra/server/router"
	"github.com/money-saver/backend/internal/integration/adapters"
	"github.com/money-saver/backend/internal/integration/email"
	"github.com/money-saver/backend/internal/integration/entrypoint/controller"
	"github.com/money-saver/backend/internal/integration/entrypoint/middleware"
	"github.com/money-saver/backend/internal/integration/persistence"
	"github.com/money-saver/backend/internal/integration/persistence/model"
	"github.com/money-saver/backend/internal/integration/scheduler"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting Money Saver API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Initialize database connection
	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	// Run database migrations
	if err := database.AutoMigrate(
		&model.UserModel{},
		&model.SavingPlanModel{},
		&model.WeeklyAmountModel{},
		&model.ReminderLogModel{},
	); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	healthController := controller.NewHealthController(database.HealthCheck)

	// Repositories
	userRepo := persistence.NewUserRepository(database.DB())
	planRepo := persistence.NewSavingPlanRepository(database.DB())
	logRepo := persistence.NewReminderLogRepository(database.DB())

	// Adapters
	clock := adapter.SystemClock{}
	tokenVerifier := adapters.NewTokenVerifier(cfg.Auth.JWTSecret)
	tipService := adapters.NewGeminiTipService(cfg.AI.GeminiAPIKey)

	var cycleLock adapter.CycleLock
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		cycleLock = adapters.NewRedisCycleLock(redisClient)
		slog.Info("Reminder cycle lock backed by Redis", "addr", cfg.Redis.Addr)
	} else {
		cycleLock = adapters.NewInProcessCycleLock()
		slog.Info("Reminder cycle lock running in-process")
	}

	// Email: real sender when configured, mock otherwise so development
	// works without an API key.
	var sender adapter.EmailSender
	if cfg.Email.Enabled && cfg.Email.ResendAPIKey != "" {
		sender = email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	} else {
		slog.Warn("Email sending disabled, using mock sender")
		sender = email.NewMockEmailSender()
	}
	mailer, err := email.NewService(sender)
	if err != nil {
		slog.Error("Failed to initialize email templates", "error", err)
		os.Exit(1)
	}

	// User use cases
	syncUseCase := user.NewSyncUserUseCase(userRepo, clock)
	profileUseCase := user.NewGetProfileUseCase(userRepo)
	preferencesUseCase := user.NewUpdatePreferencesUseCase(userRepo, clock)

	// Savings use cases
	createUseCase := savings.NewCreatePlanUseCase(planRepo, clock)
	listUseCase := savings.NewListPlansUseCase(planRepo)
	getUseCase := savings.NewGetPlanUseCase(planRepo)
	updateUseCase := savings.NewUpdatePlanUseCase(planRepo, clock)
	deleteUseCase := savings.NewDeletePlanUseCase(planRepo)
	addWeeksUseCase := savings.NewAddWeeklyAmountsUseCase(planRepo, clock)
	updateWeekUseCase := savings.NewUpdateWeeklyAmountUseCase(planRepo, clock)
	planStatsUseCase := savings.NewGetPlanStatsUseCase(planRepo, clock)
	userStatsUseCase := savings.NewGetUserStatsUseCase(planRepo)

	// Reminder cycle and scheduler
	runCycleUseCase := reminder.NewRunCycleUseCase(
		userRepo, planRepo, logRepo, mailer, tipService, cycleLock, clock, logger,
	)
	schedConfig := scheduler.Config{
		Weekday: time.Weekday(cfg.Reminder.Weekday),
		Hour:    cfg.Reminder.Hour,
		Minute:  cfg.Reminder.Minute,
	}
	sched := scheduler.New(schedConfig, runCycleUseCase, logger)
	if cfg.Reminder.Enabled {
		sched.Start()
		defer sched.Stop()
	}

	// Controllers and middleware
	userController := controller.NewUserController(syncUseCase, profileUseCase, preferencesUseCase)
	savingsController := controller.NewSavingsController(
		createUseCase, listUseCase, getUseCase, updateUseCase, deleteUseCase,
		addWeeksUseCase, updateWeekUseCase, planStatsUseCase, userStatsUseCase,
	)
	adminController := controller.NewAdminController(sched)
	syncRateLimiter := middleware.NewRateLimiter(cfg.RateLimit.SyncMaxAttempts, cfg.RateLimit.SyncWindow)
	authMiddleware := middleware.NewAuthMiddleware(tokenVerifier)

	// Setup router
	r := router.NewRouter(
		healthController, userController, savingsController, adminController,
		syncRateLimiter, authMiddleware,
	)
	engine := r.Setup(cfg.Server.Environment)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}
