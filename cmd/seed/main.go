package main

import (
	"context"
	"errors"
	"log"
	"time"

	"spendwise/internal/analysis"
	"spendwise/internal/models"
	"spendwise/internal/repository"
	"spendwise/pkg/auth"
	"spendwise/pkg/config"
	"spendwise/pkg/logger"
	"spendwise/pkg/postgres"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	demoUsername = "demo"
	demoEmail    = "demo@spendwise.dev"
	demoPassword = "demo1234"
)

// sampleExpense is placed daysAgo days before the seeding day.
type sampleExpense struct {
	daysAgo  int
	amount   string
	category models.Category
	method   models.PaymentMethod
	notes    string
}

var sampleExpenses = []sampleExpense{
	{0, "320.00", models.CategoryFood, models.PaymentUPI, "Groceries"},
	{1, "1499.00", models.CategoryShopping, models.PaymentCreditCard, "Running shoes"},
	{1, "180.50", models.CategoryTransportation, models.PaymentUPI, "Cab to office"},
	{2, "650.00", models.CategoryEntertainment, models.PaymentDebitCard, "Movie night"},
	{3, "15000.00", models.CategoryRent, models.PaymentNetBanking, "Monthly rent"},
	{4, "240.00", models.CategoryFood, models.PaymentCash, "Street food"},
	{6, "2100.00", models.CategoryUtilities, models.PaymentNetBanking, "Electricity and internet"},
	{8, "899.99", models.CategoryHealthcare, models.PaymentCreditCard, "Pharmacy"},
	{10, "1200.00", models.CategoryEducation, models.PaymentUPI, "Online course"},
	{12, "450.00", models.CategoryFood, models.PaymentUPI, "Dinner"},
	{15, "3200.00", models.CategoryShopping, models.PaymentCreditCard, "Winter jacket"},
	{19, "95.00", models.CategoryTransportation, models.PaymentCash, "Bus pass top-up"},
	{24, "780.00", models.CategoryFood, models.PaymentDebitCard, "Weekend brunch"},
	{33, "15000.00", models.CategoryRent, models.PaymentNetBanking, "Monthly rent"},
	{37, "2600.00", models.CategoryShopping, models.PaymentCreditCard, "Headphones"},
	{41, "300.00", models.CategoryOther, models.PaymentCash, "Gift wrap"},
}

var sampleBudgets = map[models.Category]string{
	models.CategoryFood:          "3000",
	models.CategoryShopping:      "4000",
	models.CategoryEntertainment: "800",
	models.CategoryRent:          "15000",
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	if err := postgres.RunMigrations(&cfg.Database, appLogger); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Connect to database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db, appLogger)
	expenseRepo := repository.NewExpenseRepository(db, appLogger)
	budgetRepo := repository.NewBudgetRepository(db, appLogger)

	appLogger.Info("Starting database seeding...")

	now := time.Now().UTC()
	user, created, err := seedUser(ctx, userRepo, now)
	if err != nil {
		appLogger.Fatal("Failed to seed demo user", zap.Error(err))
	}

	// Expenses are only inserted alongside a fresh user so reruns stay idempotent.
	if created {
		if err := expenseRepo.CreateBatch(ctx, buildExpenses(user.ID, now)); err != nil {
			appLogger.Fatal("Failed to seed expenses", zap.Error(err))
		}
	} else {
		appLogger.Info("Demo user already present, skipping expenses")
	}

	month := analysis.CurrentMonth(now)
	for category, limit := range sampleBudgets {
		b := &models.Budget{
			ID:           uuid.New(),
			UserID:       user.ID,
			Category:     category,
			MonthlyLimit: decimal.RequireFromString(limit),
			Month:        month,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		err := budgetRepo.Create(ctx, b)
		if errors.Is(err, repository.ErrConflict) {
			appLogger.Info("Budget already present", zap.String("category", string(category)))
			continue
		}
		if err != nil {
			appLogger.Fatal("Failed to seed budget", zap.String("category", string(category)), zap.Error(err))
		}
	}

	appLogger.Info("Database seeding completed successfully!",
		zap.String("email", demoEmail),
		zap.Int("expenses", len(sampleExpenses)),
		zap.Int("budgets", len(sampleBudgets)))
}

// seedUser returns the demo user, creating it on first run.
func seedUser(ctx context.Context, repo *repository.UserRepository, now time.Time) (*models.User, bool, error) {
	existing, err := repo.GetByEmail(ctx, demoEmail)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, err
	}

	hash, err := auth.HashPassword(demoPassword)
	if err != nil {
		return nil, false, err
	}
	user := &models.User{
		ID:        uuid.New(),
		Username:  demoUsername,
		Email:     demoEmail,
		Password:  hash,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func buildExpenses(userID uuid.UUID, now time.Time) []*models.Expense {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	out := make([]*models.Expense, 0, len(sampleExpenses))
	for _, s := range sampleExpenses {
		notes := s.notes
		out = append(out, &models.Expense{
			ID:            uuid.New(),
			UserID:        userID,
			Amount:        decimal.RequireFromString(s.amount),
			Category:      s.category,
			Date:          today.AddDate(0, 0, -s.daysAgo),
			PaymentMethod: s.method,
			Notes:         &notes,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}
	return out
}
