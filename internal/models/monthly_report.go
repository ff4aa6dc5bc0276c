package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MonthlyReport is a stored snapshot of one month's analysis.
type MonthlyReport struct {
	ID                   uuid.UUID       `db:"id"`
	UserID               uuid.UUID       `db:"user_id"`
	Month                string          `db:"month"`
	TotalSpent           decimal.Decimal `db:"total_spent"`
	TopCategory          string          `db:"top_category"`
	OverbudgetCategories []string        `db:"overbudget_categories"`
	CreatedAt            time.Time       `db:"created_at"`
}
