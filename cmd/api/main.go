// @title Cloud Cost Optimizer API
// @version 1.0
// @description Multi-cloud cost tracking, savings recommendations, budgets and deletion tracking.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pratik-mahalle/cloudcost/internal/api/handlers"
	"github.com/pratik-mahalle/cloudcost/internal/api/router"
	"github.com/pratik-mahalle/cloudcost/internal/auth"
	"github.com/pratik-mahalle/cloudcost/internal/config"
	"github.com/pratik-mahalle/cloudcost/internal/mockdata"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/logger"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/validator"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/vault"
	"github.com/pratik-mahalle/cloudcost/internal/providers"
	"github.com/pratik-mahalle/cloudcost/internal/repository/postgres"
	"github.com/pratik-mahalle/cloudcost/internal/services"
	"github.com/pratik-mahalle/cloudcost/internal/storage"
	"github.com/pratik-mahalle/cloudcost/internal/worker"
	"github.com/pratik-mahalle/cloudcost/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	logger.SetGlobal(log)

	if err := run(cfg, log); err != nil {
		log.ErrorWithErr(err, "Server exited with error")
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.New(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := postgres.RunMigrations(ctx, db, cfg.Database.Driver, migrations.GetFS()); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	log.WithFields(map[string]interface{}{
		"driver": cfg.Database.Driver,
	}).Info("Database ready")

	credentialVault, err := vault.New(cfg.Vault.CredentialsKey)
	if err != nil {
		return fmt.Errorf("init credential vault: %w", err)
	}

	archiver, err := storage.New(ctx, cfg.Export, log)
	if err != nil {
		return fmt.Errorf("init export archive: %w", err)
	}
	if closer, ok := archiver.(io.Closer); ok {
		defer closer.Close()
	}

	tokens := auth.NewTokenManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.JWTRefreshSecret,
		cfg.Auth.AccessTokenExpiry,
		cfg.Auth.RefreshTokenExpiry,
	)
	generator := mockdata.New()
	val := validator.New()

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	accountRepo := postgres.NewAccountRepository(db)
	costRepo := postgres.NewCostRepository(db)
	recRepo := postgres.NewRecommendationRepository(db)
	deletionRepo := postgres.NewDeletionRepository(db)
	budgetRepo := postgres.NewBudgetRepository(db)

	// Services
	userService := services.NewUserService(userRepo, tokens, cfg.Auth.BCryptCost, log)
	accountService := services.NewAccountService(accountRepo, costRepo, generator, credentialVault, providers.NewFetchers(), log)
	costService := services.NewCostService(costRepo, accountRepo, log)
	recService := services.NewRecommendationService(recRepo, accountRepo, generator, log)
	deletionService := services.NewDeletionService(deletionRepo, accountRepo, log)
	budgetService := services.NewBudgetService(budgetRepo, accountRepo, costRepo, log)
	exportService := services.NewExportService(costRepo, recRepo, deletionRepo, archiver, log)

	if cfg.Scheduler.Enabled {
		scheduler := worker.NewScheduler(accountService, budgetService, cfg.Scheduler, log)
		if err := scheduler.Start(ctx); err != nil {
			return fmt.Errorf("start scheduler: %w", err)
		}
		defer scheduler.Stop()
	}

	handler := router.New(cfg, log, tokens, &router.Handlers{
		Health:         handlers.NewHealthHandler(db, log),
		Auth:           handlers.NewAuthHandler(userService, cfg, log, val),
		Account:        handlers.NewAccountHandler(accountService, log, val),
		Cost:           handlers.NewCostHandler(costService, log),
		Recommendation: handlers.NewRecommendationHandler(recService, log, val),
		Deletion:       handlers.NewDeletionHandler(deletionService, log, val),
		Budget:         handlers.NewBudgetHandler(budgetService, log, val),
		Export:         handlers.NewExportHandler(exportService, log),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(map[string]interface{}{
			"addr":        srv.Addr,
			"environment": cfg.Server.Environment,
		}).Info("Server listening")
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

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("Server stopped")
	return nil
}
