package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget is a monthly spending limit for one category. Month is "YYYY-MM".
type Budget struct {
	ID           uuid.UUID       `db:"id"`
	UserID       uuid.UUID       `db:"user_id"`
	Category     Category        `db:"category"`
	MonthlyLimit decimal.Decimal `db:"monthly_limit"`
	Month        string          `db:"month"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}
