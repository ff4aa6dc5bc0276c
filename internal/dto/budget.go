package dto

import (
	"time"

	"spendwise/internal/models"

	"github.com/shopspring/decimal"
)

type CreateBudgetRequest struct {
	Category     string          `json:"category" validate:"required,oneof=Food Rent Shopping Transportation Entertainment Healthcare Education Utilities Other" example:"Food"`
	MonthlyLimit decimal.Decimal `json:"monthly_limit" validate:"positive,cents" swaggertype:"number" example:"8000"`
	Month        string          `json:"month" validate:"required,datetime=2006-01" example:"2024-03"`
}

func (r *CreateBudgetRequest) Validate() error {
	return validateStruct(r)
}

// UpdateBudgetRequest is a partial update: nil fields are left unchanged.
type UpdateBudgetRequest struct {
	Category     *string          `json:"category,omitempty" validate:"omitnil,oneof=Food Rent Shopping Transportation Entertainment Healthcare Education Utilities Other"`
	MonthlyLimit *decimal.Decimal `json:"monthly_limit,omitempty" validate:"omitnil,positive,cents" swaggertype:"number"`
	Month        *string          `json:"month,omitempty" validate:"omitnil,required,datetime=2006-01"`
}

func (r *UpdateBudgetRequest) IsEmpty() bool {
	return r.Category == nil && r.MonthlyLimit == nil && r.Month == nil
}

func (r *UpdateBudgetRequest) Validate() error {
	if r.IsEmpty() {
		return invalid("body", "must contain at least one field")
	}
	return validateStruct(r)
}

type BudgetResponse struct {
	ID           string          `json:"id"`
	Category     string          `json:"category"`
	MonthlyLimit decimal.Decimal `json:"monthly_limit" swaggertype:"string" example:"8000"`
	Month        string          `json:"month"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
}

func NewBudgetResponse(b *models.Budget) BudgetResponse {
	return BudgetResponse{
		ID:           b.ID.String(),
		Category:     string(b.Category),
		MonthlyLimit: b.MonthlyLimit,
		Month:        b.Month,
		CreatedAt:    b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    b.UpdatedAt.Format(time.RFC3339),
	}
}

func NewBudgetResponses(budgets []models.Budget) []BudgetResponse {
	out := make([]BudgetResponse, 0, len(budgets))
	for i := range budgets {
		out = append(out, NewBudgetResponse(&budgets[i]))
	}
	return out
}
