package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"spendwise/internal/dto"
	"spendwise/internal/models"
	"spendwise/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrBudgetNotFound = errors.New("budget not found")
	ErrBudgetExists   = errors.New("budget already exists for this category and month")
)

type BudgetService struct {
	budgetRepo BudgetStore
	logger     *zap.Logger
	now        func() time.Time
}

func NewBudgetService(budgetRepo BudgetStore, logger *zap.Logger) *BudgetService {
	return &BudgetService{
		budgetRepo: budgetRepo,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *BudgetService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateBudgetRequest) (*models.Budget, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	b := &models.Budget{
		ID:           uuid.New(),
		UserID:       userID,
		Category:     models.Category(req.Category),
		MonthlyLimit: req.MonthlyLimit,
		Month:        req.Month,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.budgetRepo.Create(ctx, b); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrBudgetExists
		}
		return nil, fmt.Errorf("create budget: %w", err)
	}

	s.logger.Info("Budget created",
		zap.String("user_id", userID.String()),
		zap.String("category", string(b.Category)),
		zap.String("month", b.Month),
	)
	return b, nil
}

func (s *BudgetService) List(ctx context.Context, userID uuid.UUID, month string) ([]models.Budget, error) {
	if err := dto.ValidateMonth(month); err != nil {
		return nil, err
	}
	return s.budgetRepo.ListByUser(ctx, userID, month)
}

func (s *BudgetService) Get(ctx context.Context, userID, id uuid.UUID) (*models.Budget, error) {
	b, err := s.budgetRepo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, fmt.Errorf("get budget: %w", err)
	}
	return b, nil
}

func (s *BudgetService) Update(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateBudgetRequest) (*models.Budget, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	b, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Category != nil {
		b.Category = models.Category(*req.Category)
	}
	if req.MonthlyLimit != nil {
		b.MonthlyLimit = *req.MonthlyLimit
	}
	if req.Month != nil {
		b.Month = *req.Month
	}
	b.UpdatedAt = s.now()

	if err := s.budgetRepo.Update(ctx, b); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrBudgetNotFound
		case errors.Is(err, repository.ErrConflict):
			return nil, ErrBudgetExists
		}
		return nil, fmt.Errorf("update budget: %w", err)
	}
	return b, nil
}

func (s *BudgetService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.budgetRepo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBudgetNotFound
		}
		return fmt.Errorf("delete budget: %w", err)
	}
	return nil
}
