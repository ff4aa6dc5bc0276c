package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"spendwise/internal/analysis"
	"spendwise/internal/dto"
	"spendwise/internal/models"
	"spendwise/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrExpenseNotFound = errors.New("expense not found")

type ExpenseService struct {
	expenseRepo ExpenseStore
	logger      *zap.Logger
	now         func() time.Time
}

func NewExpenseService(expenseRepo ExpenseStore, logger *zap.Logger) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *ExpenseService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateExpenseRequest) (*models.Expense, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	e := &models.Expense{
		ID:            uuid.New(),
		UserID:        userID,
		Amount:        req.Amount,
		Category:      models.Category(req.Category),
		Date:          req.ParsedDate(),
		PaymentMethod: models.PaymentMethod(req.PaymentMethod),
		Notes:         cleanNotes(req.Notes),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.expenseRepo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}

	s.logger.Info("Expense created",
		zap.String("user_id", userID.String()),
		zap.String("expense_id", e.ID.String()),
		zap.String("category", string(e.Category)),
	)
	return e, nil
}

// List returns the user's expenses newest first, narrowed by q.
func (s *ExpenseService) List(ctx context.Context, userID uuid.UUID, q *dto.ExpenseListQuery) ([]models.Expense, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	filter, err := monthFilter(q.Month)
	if err != nil {
		return nil, err
	}
	filter.Category = models.Category(q.Category)
	filter.PaymentMethod = models.PaymentMethod(q.PaymentMethod)
	filter.Search = q.Search

	return s.expenseRepo.ListByUser(ctx, userID, filter)
}

func (s *ExpenseService) Get(ctx context.Context, userID, id uuid.UUID) (*models.Expense, error) {
	e, err := s.expenseRepo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return e, nil
}

// Update applies the non-nil fields of req to the stored expense.
func (s *ExpenseService) Update(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateExpenseRequest) (*models.Expense, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	e, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Amount != nil {
		e.Amount = *req.Amount
	}
	if req.Category != nil {
		e.Category = models.Category(*req.Category)
	}
	if req.Date != nil {
		e.Date, _ = analysis.ParseDate(*req.Date)
	}
	if req.PaymentMethod != nil {
		e.PaymentMethod = models.PaymentMethod(*req.PaymentMethod)
	}
	if req.Notes != nil {
		e.Notes = cleanNotes(req.Notes)
	}
	e.UpdatedAt = s.now()

	if err := s.expenseRepo.Update(ctx, e); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("update expense: %w", err)
	}
	return e, nil
}

func (s *ExpenseService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.expenseRepo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExpenseNotFound
		}
		return fmt.Errorf("delete expense: %w", err)
	}

	s.logger.Info("Expense deleted",
		zap.String("user_id", userID.String()),
		zap.String("expense_id", id.String()),
	)
	return nil
}
