package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"spendwise/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var expenseColumns = []string{
	"id", "user_id", "amount", "category", "date", "payment_method", "notes", "created_at", "updated_at",
}

// ExpenseFilter narrows a listing. Zero values mean unbounded.
type ExpenseFilter struct {
	From          time.Time // inclusive
	To            time.Time // exclusive
	Category      models.Category
	PaymentMethod models.PaymentMethod
	// Search matches notes or category as a case-insensitive substring.
	Search string
}

type ExpenseRepository struct {
	db     DB
	logger *zap.Logger
}

func NewExpenseRepository(db DB, logger *zap.Logger) *ExpenseRepository {
	return &ExpenseRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ExpenseRepository) Create(ctx context.Context, e *models.Expense) error {
	_, err := exec(ctx, r.db, insertExpenseQuery(e))
	return err
}

// CreateBatch inserts every expense in a single statement.
func (r *ExpenseRepository) CreateBatch(ctx context.Context, expenses []*models.Expense) error {
	if len(expenses) == 0 {
		return nil
	}

	_, err := exec(ctx, r.db, insertExpenseQuery(expenses...))
	return err
}

// GetByID returns the expense only when it belongs to userID.
func (r *ExpenseRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Expense, error) {
	sql, args, err := psql.Select(expenseColumns...).
		From("expenses").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	e, err := scanExpense(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, translate(err)
	}
	return e, nil
}

// ListByUser returns the user's expenses newest first.
func (r *ExpenseRepository) ListByUser(ctx context.Context, userID uuid.UUID, filter ExpenseFilter) ([]models.Expense, error) {
	sql, args, err := listExpensesQuery(userID, filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	expenses := make([]models.Expense, 0)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	r.logger.Debug("Listed expenses",
		zap.String("user_id", userID.String()),
		zap.Int("count", len(expenses)),
	)
	return expenses, nil
}

// Update writes every mutable column of e. A row owned by someone else
// is reported as ErrNotFound.
func (r *ExpenseRepository) Update(ctx context.Context, e *models.Expense) error {
	query := psql.Update("expenses").
		Set("amount", e.Amount).
		Set("category", e.Category).
		Set("date", e.Date).
		Set("payment_method", e.PaymentMethod).
		Set("notes", e.Notes).
		Set("updated_at", e.UpdatedAt).
		Where(squirrel.Eq{"id": e.ID, "user_id": e.UserID})

	return execOne(ctx, r.db, query)
}

func (r *ExpenseRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := psql.Delete("expenses").Where(squirrel.Eq{"id": id, "user_id": userID})
	return execOne(ctx, r.db, query)
}

func insertExpenseQuery(expenses ...*models.Expense) squirrel.InsertBuilder {
	builder := psql.Insert("expenses").Columns(expenseColumns...)
	for _, e := range expenses {
		builder = builder.Values(
			e.ID, e.UserID, e.Amount, e.Category, e.Date, e.PaymentMethod, e.Notes, e.CreatedAt, e.UpdatedAt,
		)
	}
	return builder
}

func listExpensesQuery(userID uuid.UUID, filter ExpenseFilter) squirrel.SelectBuilder {
	query := psql.Select(expenseColumns...).
		From("expenses").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("date DESC", "created_at DESC")

	if !filter.From.IsZero() {
		query = query.Where(squirrel.GtOrEq{"date": filter.From})
	}
	if !filter.To.IsZero() {
		query = query.Where(squirrel.Lt{"date": filter.To})
	}
	if filter.Category != "" {
		query = query.Where(squirrel.Eq{"category": filter.Category})
	}
	if filter.PaymentMethod != "" {
		query = query.Where(squirrel.Eq{"payment_method": filter.PaymentMethod})
	}
	if filter.Search != "" {
		pattern := "%" + likeEscaper.Replace(filter.Search) + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"notes": pattern},
			squirrel.ILike{"category": pattern},
		})
	}
	return query
}

// likeEscaper quotes LIKE wildcards using Postgres' default escape character.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (*models.Expense, error) {
	var e models.Expense
	if err := row.Scan(
		&e.ID, &e.UserID, &e.Amount, &e.Category, &e.Date, &e.PaymentMethod, &e.Notes, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &e, nil
}
