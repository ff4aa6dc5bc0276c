package repository

import (
	"context"
	"fmt"

	"spendwise/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var budgetColumns = []string{"id", "user_id", "category", "monthly_limit", "month", "created_at", "updated_at"}

type BudgetRepository struct {
	db     DB
	logger *zap.Logger
}

func NewBudgetRepository(db DB, logger *zap.Logger) *BudgetRepository {
	return &BudgetRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts b. A second budget for the same category and month
// yields ErrConflict.
func (r *BudgetRepository) Create(ctx context.Context, b *models.Budget) error {
	query := psql.Insert("budgets").
		Columns(budgetColumns...).
		Values(b.ID, b.UserID, b.Category, b.MonthlyLimit, b.Month, b.CreatedAt, b.UpdatedAt)

	_, err := exec(ctx, r.db, query)
	return err
}

func (r *BudgetRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Budget, error) {
	sql, args, err := psql.Select(budgetColumns...).
		From("budgets").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	b, err := scanBudget(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, translate(err)
	}
	return b, nil
}

// ListByUser returns the user's budgets, newest month first. An empty
// month lists every month.
func (r *BudgetRepository) ListByUser(ctx context.Context, userID uuid.UUID, month string) ([]models.Budget, error) {
	sql, args, err := listBudgetsQuery(userID, month).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	budgets := make([]models.Budget, 0)
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, *b)
	}
	return budgets, rows.Err()
}

func (r *BudgetRepository) Update(ctx context.Context, b *models.Budget) error {
	query := psql.Update("budgets").
		Set("category", b.Category).
		Set("monthly_limit", b.MonthlyLimit).
		Set("month", b.Month).
		Set("updated_at", b.UpdatedAt).
		Where(squirrel.Eq{"id": b.ID, "user_id": b.UserID})

	return execOne(ctx, r.db, query)
}

func (r *BudgetRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := psql.Delete("budgets").Where(squirrel.Eq{"id": id, "user_id": userID})
	return execOne(ctx, r.db, query)
}

func listBudgetsQuery(userID uuid.UUID, month string) squirrel.SelectBuilder {
	query := psql.Select(budgetColumns...).
		From("budgets").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("month DESC", "category ASC")

	if month != "" {
		query = query.Where(squirrel.Eq{"month": month})
	}
	return query
}

func scanBudget(row rowScanner) (*models.Budget, error) {
	var b models.Budget
	if err := row.Scan(
		&b.ID, &b.UserID, &b.Category, &b.MonthlyLimit, &b.Month, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &b, nil
}
