package dto

import (
	"strings"
	"time"

	"spendwise/internal/analysis"
	"spendwise/internal/models"

	"github.com/shopspring/decimal"
)

type CreateExpenseRequest struct {
	Amount        decimal.Decimal `json:"amount" validate:"positive,cents" swaggertype:"number" example:"249.50"`
	Category      string          `json:"category" validate:"required,oneof=Food Rent Shopping Transportation Entertainment Healthcare Education Utilities Other" example:"Food"`
	Date          string          `json:"date" validate:"required,datetime=2006-01-02" example:"2024-03-05"`
	PaymentMethod string          `json:"payment_method" validate:"required,oneof=UPI 'Credit Card' 'Debit Card' Cash 'Net Banking' Other" example:"UPI"`
	Notes         *string         `json:"notes,omitempty" validate:"omitempty,max=500" example:"Lunch"`
}

func (r *CreateExpenseRequest) Validate() error {
	return validateStruct(r)
}

// ParsedDate returns Date as a calendar day. Call after Validate.
func (r *CreateExpenseRequest) ParsedDate() time.Time {
	d, _ := analysis.ParseDate(r.Date)
	return d
}

// UpdateExpenseRequest is a partial update: nil fields are left unchanged.
// An empty notes string clears the notes.
type UpdateExpenseRequest struct {
	Amount        *decimal.Decimal `json:"amount,omitempty" validate:"omitnil,positive,cents" swaggertype:"number"`
	Category      *string          `json:"category,omitempty" validate:"omitnil,oneof=Food Rent Shopping Transportation Entertainment Healthcare Education Utilities Other"`
	Date          *string          `json:"date,omitempty" validate:"omitnil,datetime=2006-01-02"`
	PaymentMethod *string          `json:"payment_method,omitempty" validate:"omitnil,oneof=UPI 'Credit Card' 'Debit Card' Cash 'Net Banking' Other"`
	Notes         *string          `json:"notes,omitempty" validate:"omitempty,max=500"`
}

func (r *UpdateExpenseRequest) IsEmpty() bool {
	return r.Amount == nil && r.Category == nil && r.Date == nil && r.PaymentMethod == nil && r.Notes == nil
}

func (r *UpdateExpenseRequest) Validate() error {
	if r.IsEmpty() {
		return invalid("body", "must contain at least one field")
	}
	return validateStruct(r)
}

// ExpenseListQuery holds the optional filters of GET /expenses.
// Search matches notes and category case-insensitively.
type ExpenseListQuery struct {
	Month         string `query:"month" json:"month" validate:"omitempty,datetime=2006-01"`
	Category      string `query:"category" json:"category" validate:"omitempty,oneof=Food Rent Shopping Transportation Entertainment Healthcare Education Utilities Other"`
	PaymentMethod string `query:"payment_method" json:"payment_method" validate:"omitempty,oneof=UPI 'Credit Card' 'Debit Card' Cash 'Net Banking' Other"`
	Search        string `query:"search" json:"search" validate:"max=100"`
}

func (q *ExpenseListQuery) Validate() error {
	q.Search = strings.TrimSpace(q.Search)
	return validateStruct(q)
}

type ExpenseResponse struct {
	ID            string          `json:"id"`
	Amount        decimal.Decimal `json:"amount" swaggertype:"string" example:"249.5"`
	Category      string          `json:"category"`
	Date          string          `json:"date"`
	PaymentMethod string          `json:"payment_method"`
	Notes         *string         `json:"notes,omitempty"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
}

func NewExpenseResponse(e *models.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:            e.ID.String(),
		Amount:        e.Amount,
		Category:      string(e.Category),
		Date:          analysis.FormatDate(e.Date),
		PaymentMethod: string(e.PaymentMethod),
		Notes:         e.Notes,
		CreatedAt:     e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     e.UpdatedAt.Format(time.RFC3339),
	}
}

func NewExpenseResponses(expenses []models.Expense) []ExpenseResponse {
	out := make([]ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		out = append(out, NewExpenseResponse(&expenses[i]))
	}
	return out
}

// ValidateMonth checks an optional "YYYY-MM" value.
func ValidateMonth(month string) error {
	return validateVar("month", month, "omitempty,datetime=2006-01")
}
