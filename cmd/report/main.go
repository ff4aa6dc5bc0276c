package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"spendwise/internal/repository"
	"spendwise/internal/service"
	"spendwise/pkg/config"
	"spendwise/pkg/logger"
	"spendwise/pkg/postgres"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate and inspect monthly spending reports",
	Long: `report snapshots a user's monthly totals, top category and overbudget
categories into the monthly_reports table, the same way POST /api/v1/reports/{month} does.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("user", "", "user ID (UUID)")
	_ = rootCmd.MarkPersistentFlagRequired("user")

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(listCmd())
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// env holds what every subcommand needs. Call close when done.
type env struct {
	reports *service.ReportService
	userID  uuid.UUID
	pool    *pgxpool.Pool
}

func (e *env) close() {
	e.pool.Close()
	logger.Sync()
}

func setup(cmd *cobra.Command) (*env, error) {
	raw, err := cmd.Flags().GetString("user")
	if err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid --user %q: %w", raw, err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(cfg.Logger.Level); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	appLogger := logger.Component("report-cli")

	pool, err := postgres.NewPool(cmd.Context(), &cfg.Database, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	reports := service.NewReportService(
		repository.NewExpenseRepository(pool, appLogger),
		repository.NewBudgetRepository(pool, appLogger),
		repository.NewReportRepository(pool, appLogger),
		appLogger,
	)

	return &env{reports: reports, userID: userID, pool: pool}, nil
}
