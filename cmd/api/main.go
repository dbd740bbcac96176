// Package main is the entry point for the PocketWatch API server.
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

	"github.com/pocketwatch/backend/config"
	"github.com/pocketwatch/backend/internal/application/session"
	"github.com/pocketwatch/backend/internal/application/usecase/dashboard"
	"github.com/pocketwatch/backend/internal/application/usecase/identity"
	"github.com/pocketwatch/backend/internal/application/usecase/settings"
	"github.com/pocketwatch/backend/internal/application/usecase/transaction"
	"github.com/pocketwatch/backend/internal/infra/db"
	"github.com/pocketwatch/backend/internal/infra/server/router"
	"github.com/pocketwatch/backend/internal/integration/adapters"
	identityprovider "github.com/pocketwatch/backend/internal/integration/identity"
	"github.com/pocketwatch/backend/internal/integration/entrypoint/controller"
	"github.com/pocketwatch/backend/internal/integration/entrypoint/middleware"
	"github.com/pocketwatch/backend/internal/integration/persistence/localstore"
	"github.com/pocketwatch/backend/internal/integration/persistence/remotestore"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()

	slog.Info("Starting PocketWatch API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Local store is always available; the remote store is optional and the
	// application degrades to local-only mode without it.
	local := localstore.New(cfg.LocalStore.Path)

	var database *db.Database
	var remote *remotestore.Store
	var dbHealthChecker func() bool

	if cfg.Database.URL != "" {
		var err error
		database, err = db.NewPostgresConnection(&cfg.Database)
		if err != nil {
			slog.Warn("Database connection failed, running in local-only mode",
				"error", err,
			)
		} else {
			remote = remotestore.New(database.DB())
			if err := remote.Migrate(); err != nil {
				slog.Error("Failed to run database migrations", "error", err)
				os.Exit(1)
			}
			slog.Info("Database migrations completed successfully")

			dbHealthChecker = database.HealthCheck
			defer func() {
				if err := database.Close(); err != nil {
					slog.Error("Failed to close database connection", "error", err)
				}
			}()
		}
	} else {
		slog.Info("No database configured, running in local-only mode")
	}

	provider := identityprovider.NewTokenProvider(cfg.Session.Secret, cfg.Session.TokenPath)

	var scoper session.RemoteScoper
	if remote != nil {
		scoper = remote
	}
	coordinator := session.NewCoordinator(local, scoper, provider,
		session.WithStartupWait(cfg.Session.StartupWait),
	)
	coordinator.Start(context.Background())
	defer coordinator.Stop()

	suggester := adapters.NewGeminiService(cfg.AI.GeminiAPIKey)
	if suggester.IsAvailable() {
		slog.Info("Category suggestion service enabled")
	}

	// Use cases
	listUseCase := transaction.NewListTransactionsUseCase(coordinator)
	createUseCase := transaction.NewCreateTransactionUseCase(coordinator, suggester)
	updateUseCase := transaction.NewUpdateTransactionUseCase(coordinator)
	deleteUseCase := transaction.NewDeleteTransactionUseCase(coordinator)

	getSettingsUseCase := settings.NewGetSettingsUseCase(coordinator)
	updateSettingsUseCase := settings.NewUpdateSettingsUseCase(coordinator)

	summaryUseCase := dashboard.NewGetYearSummaryUseCase(coordinator)
	breakdownUseCase := dashboard.NewGetCategoryBreakdownUseCase(coordinator)
	budgetUseCase := dashboard.NewGetBudgetStatusUseCase(coordinator)

	getSessionUseCase := identity.NewGetSessionUseCase(coordinator)
	signInUseCase := identity.NewSignInUseCase(provider)
	signOutUseCase := identity.NewSignOutUseCase(provider)

	// Controllers and middleware
	healthController := controller.NewHealthController(dbHealthChecker)
	transactionController := controller.NewTransactionController(listUseCase, createUseCase, updateUseCase, deleteUseCase)
	settingsController := controller.NewSettingsController(getSettingsUseCase, updateSettingsUseCase)
	dashboardController := controller.NewDashboardController(summaryUseCase, breakdownUseCase, budgetUseCase)
	sessionController := controller.NewSessionController(getSessionUseCase, signInUseCase, signOutUseCase)
	signInRateLimiter := middleware.NewRateLimiterWithConfig(cfg.Session.RateLimit, cfg.Session.RateWindow)

	r := router.NewRouter(
		healthController,
		sessionController,
		transactionController,
		settingsController,
		dashboardController,
		signInRateLimiter,
	)
	engine := r.Setup(cfg.Server.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

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
