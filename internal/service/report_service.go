package service

import (
	"context"
	"fmt"
	"time"

	"spendwise/internal/analysis"
	"spendwise/internal/dto"
	"spendwise/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReportService struct {
	expenseRepo ExpenseStore
	budgetRepo  BudgetStore
	reportRepo  ReportStore
	logger      *zap.Logger
	now         func() time.Time
}

func NewReportService(expenseRepo ExpenseStore, budgetRepo BudgetStore, reportRepo ReportStore, logger *zap.Logger) *ReportService {
	return &ReportService{
		expenseRepo: expenseRepo,
		budgetRepo:  budgetRepo,
		reportRepo:  reportRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// Generate snapshots month as if it were the current month and stores it,
// replacing any earlier snapshot. Danger-level budget alerts become the
// overbudget categories.
func (s *ReportService) Generate(ctx context.Context, userID uuid.UUID, month string) (*models.MonthlyReport, error) {
	if month == "" {
		return nil, &dto.ValidationError{Field: "month", Message: "is required"}
	}
	if err := dto.ValidateMonth(month); err != nil {
		return nil, err
	}

	now := s.now()
	evaluateAt, err := analysis.MonthEnd(month, now.Location())
	if err != nil {
		return nil, err
	}
	filter, err := monthFilter(month)
	if err != nil {
		return nil, err
	}

	expenses, budgets, err := loadInputs(ctx, s.expenseRepo, s.budgetRepo, userID, filter, month)
	if err != nil {
		return nil, err
	}

	result := analysis.Analyze(expenses, budgets, evaluateAt)

	overbudget := make([]string, 0)
	for _, alert := range result.BudgetAlerts {
		if alert.Level == analysis.AlertDanger {
			overbudget = append(overbudget, string(alert.Category))
		}
	}

	report := &models.MonthlyReport{
		ID:                   uuid.New(),
		UserID:               userID,
		Month:                month,
		TotalSpent:           result.TotalSpent,
		TopCategory:          result.TopCategory,
		OverbudgetCategories: overbudget,
		CreatedAt:            now,
	}

	if err := s.reportRepo.Upsert(ctx, report); err != nil {
		return nil, fmt.Errorf("store report: %w", err)
	}

	s.logger.Info("Monthly report generated",
		zap.String("user_id", userID.String()),
		zap.String("month", month),
		zap.String("total_spent", report.TotalSpent.String()),
		zap.Strings("overbudget", overbudget),
	)
	return report, nil
}

func (s *ReportService) List(ctx context.Context, userID uuid.UUID) ([]models.MonthlyReport, error) {
	reports, err := s.reportRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}
