package service

import (
	"context"

	"spendwise/internal/models"
	"spendwise/internal/repository"

	"github.com/google/uuid"
)

// The store interfaces are satisfied by the postgres repositories.

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type ExpenseStore interface {
	Create(ctx context.Context, e *models.Expense) error
	CreateBatch(ctx context.Context, expenses []*models.Expense) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Expense, error)
	ListByUser(ctx context.Context, userID uuid.UUID, filter repository.ExpenseFilter) ([]models.Expense, error)
	Update(ctx context.Context, e *models.Expense) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type BudgetStore interface {
	Create(ctx context.Context, b *models.Budget) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Budget, error)
	ListByUser(ctx context.Context, userID uuid.UUID, month string) ([]models.Budget, error)
	Update(ctx context.Context, b *models.Budget) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type ReportStore interface {
	Upsert(ctx context.Context, rep *models.MonthlyReport) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.MonthlyReport, error)
}

var (
	_ UserStore    = (*repository.UserRepository)(nil)
	_ ExpenseStore = (*repository.ExpenseRepository)(nil)
	_ BudgetStore  = (*repository.BudgetRepository)(nil)
	_ ReportStore  = (*repository.ReportRepository)(nil)
)
