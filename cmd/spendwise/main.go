package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spendwise/internal/api"
	"spendwise/internal/api/handlers"
	"spendwise/internal/repository"
	"spendwise/internal/service"
	"spendwise/pkg/auth"
	"spendwise/pkg/config"
	"spendwise/pkg/logger"
	"spendwise/pkg/postgres"

	"go.uber.org/zap"
)

// @title Spendwise API
// @version 1.0
// @description Expense tracking and monthly spending analysis
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@spendwise.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting spendwise service")

	if cfg.Database.MigrateOnBoot {
		if err := postgres.RunMigrations(&cfg.Database, appLogger); err != nil {
			appLogger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	expenseRepo := repository.NewExpenseRepository(db, appLogger)
	budgetRepo := repository.NewBudgetRepository(db, appLogger)
	reportRepo := repository.NewReportRepository(db, appLogger)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, appLogger)
	expenseService := service.NewExpenseService(expenseRepo, appLogger)
	budgetService := service.NewBudgetService(budgetRepo, appLogger)
	analysisService := service.NewAnalysisService(expenseRepo, budgetRepo, cfg.Analysis.CurrencySymbol, appLogger)
	reportService := service.NewReportService(expenseRepo, budgetRepo, reportRepo, appLogger)

	advisor, err := service.NewAdvisorService(ctx, &cfg.GigaChat, analysisService, cfg.Analysis.CurrencySymbol, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize advisor", zap.Error(err))
	}
	defer advisor.Close()

	// Setup router
	app := api.SetupRouter(api.Handlers{
		Auth:     handlers.NewAuthHandler(authService, appLogger),
		Expense:  handlers.NewExpenseHandler(expenseService, appLogger),
		Budget:   handlers.NewBudgetHandler(budgetService, appLogger),
		Analysis: handlers.NewAnalysisHandler(analysisService, advisor, appLogger),
		Report:   handlers.NewReportHandler(reportService, appLogger),
	}, jwtManager, &cfg.Server, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting",
			zap.String("address", addr),
			zap.Bool("advisor_enabled", advisor.Enabled()))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
