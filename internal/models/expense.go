package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is a single recorded spend. Date carries only a calendar day;
// its time-of-day and location are not meaningful.
type Expense struct {
	ID            uuid.UUID       `db:"id"`
	UserID        uuid.UUID       `db:"user_id"`
	Amount        decimal.Decimal `db:"amount"`
	Category      Category        `db:"category"`
	Date          time.Time       `db:"date"`
	PaymentMethod PaymentMethod   `db:"payment_method"`
	Notes         *string         `db:"notes"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}
