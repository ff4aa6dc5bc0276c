package repository

import (
	"context"
	"fmt"

	"spendwise/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var reportColumns = []string{"id", "user_id", "month", "total_spent", "top_category", "overbudget_categories", "created_at"}

type ReportRepository struct {
	db     DB
	logger *zap.Logger
}

func NewReportRepository(db DB, logger *zap.Logger) *ReportRepository {
	return &ReportRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert stores rep, replacing any earlier snapshot for the same user and
// month. rep.ID and rep.CreatedAt are overwritten with the stored values.
func (r *ReportRepository) Upsert(ctx context.Context, rep *models.MonthlyReport) error {
	sql, args, err := upsertReportQuery(rep).ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&rep.ID, &rep.CreatedAt); err != nil {
		return translate(err)
	}
	return nil
}

// ListByUser returns the user's reports, newest month first.
func (r *ReportRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.MonthlyReport, error) {
	sql, args, err := psql.Select(reportColumns...).
		From("monthly_reports").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("month DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	reports := make([]models.MonthlyReport, 0)
	for rows.Next() {
		var rep models.MonthlyReport
		if err := rows.Scan(
			&rep.ID, &rep.UserID, &rep.Month, &rep.TotalSpent, &rep.TopCategory, &rep.OverbudgetCategories, &rep.CreatedAt,
		); err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}

func upsertReportQuery(rep *models.MonthlyReport) squirrel.InsertBuilder {
	categories := rep.OverbudgetCategories
	if categories == nil {
		categories = []string{}
	}
	return psql.Insert("monthly_reports").
		Columns(reportColumns...).
		Values(rep.ID, rep.UserID, rep.Month, rep.TotalSpent, rep.TopCategory, categories, rep.CreatedAt).
		Suffix("ON CONFLICT (user_id, month) DO UPDATE SET " +
			"total_spent = EXCLUDED.total_spent, " +
			"top_category = EXCLUDED.top_category, " +
			"overbudget_categories = EXCLUDED.overbudget_categories, " +
			"created_at = EXCLUDED.created_at " +
			"RETURNING id, created_at")
}
