package service

import (
	"context"
	"fmt"
	"time"

	"spendwise/internal/analysis"
	"spendwise/internal/dto"
	"spendwise/internal/models"
	"spendwise/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type AnalysisService struct {
	expenseRepo ExpenseStore
	budgetRepo  BudgetStore
	currency    string
	logger      *zap.Logger
	now         func() time.Time
}

func NewAnalysisService(expenseRepo ExpenseStore, budgetRepo BudgetStore, currency string, logger *zap.Logger) *AnalysisService {
	if currency == "" {
		currency = analysis.DefaultCurrencySymbol
	}
	return &AnalysisService{
		expenseRepo: expenseRepo,
		budgetRepo:  budgetRepo,
		currency:    currency,
		logger:      logger,
		now:         time.Now,
	}
}

// Analyze evaluates the user's current month and derives suggestions.
func (s *AnalysisService) Analyze(ctx context.Context, userID uuid.UUID) (*dto.AnalysisResponse, error) {
	now := s.now()
	month := analysis.CurrentMonth(now)
	windowStart, _ := analysis.Last30Days(now)

	// The trailing window always reaches back to at least the first of the month.
	filter := repository.ExpenseFilter{From: utcDay(windowStart)}

	expenses, budgets, err := loadInputs(ctx, s.expenseRepo, s.budgetRepo, userID, filter, month)
	if err != nil {
		return nil, err
	}

	result := analysis.Analyze(expenses, budgets, now)
	suggestions := analysis.SuggestWithCurrency(result, s.currency)

	s.logger.Debug("Analysis computed",
		zap.String("user_id", userID.String()),
		zap.String("month", month),
		zap.Int("expenses", len(expenses)),
		zap.Int("alerts", len(result.BudgetAlerts)),
	)

	return &dto.AnalysisResponse{
		Analysis:    result,
		Suggestions: suggestions,
	}, nil
}

// Insights runs the heuristic report over the user's full history.
func (s *AnalysisService) Insights(ctx context.Context, userID uuid.UUID) (*analysis.InsightReport, error) {
	expenses, err := s.expenseRepo.ListByUser(ctx, userID, repository.ExpenseFilter{})
	if err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}
	return analysis.Insights(expenses, s.now(), nil), nil
}

// loadInputs fetches expenses and the month's budgets concurrently.
func loadInputs(
	ctx context.Context,
	expenseRepo ExpenseStore,
	budgetRepo BudgetStore,
	userID uuid.UUID,
	filter repository.ExpenseFilter,
	month string,
) ([]models.Expense, []models.Budget, error) {
	var (
		expenses []models.Expense
		budgets  []models.Budget
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = expenseRepo.ListByUser(gctx, userID, filter)
		if err != nil {
			return fmt.Errorf("load expenses: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		budgets, err = budgetRepo.ListByUser(gctx, userID, month)
		if err != nil {
			return fmt.Errorf("load budgets: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return expenses, budgets, nil
}
