package dto

import (
	"time"

	"spendwise/internal/analysis"
	"spendwise/internal/models"
)

type AnalysisResponse struct {
	Analysis    *analysis.ExpenseAnalysis `json:"analysis"`
	Suggestions []string                  `json:"suggestions"`
}

type AdviceResponse struct {
	Month       string `json:"month" example:"2024-03"`
	Advice      string `json:"advice"`
	GeneratedAt string `json:"generated_at"`
}

type ReportResponse struct {
	ID                   string   `json:"id"`
	Month                string   `json:"month"`
	TotalSpent           string   `json:"total_spent" example:"15230.5"`
	TopCategory          string   `json:"top_category"`
	OverbudgetCategories []string `json:"overbudget_categories"`
	CreatedAt            string   `json:"created_at"`
}

func NewReportResponse(r *models.MonthlyReport) ReportResponse {
	categories := r.OverbudgetCategories
	if categories == nil {
		categories = []string{}
	}
	return ReportResponse{
		ID:                   r.ID.String(),
		Month:                r.Month,
		TotalSpent:           r.TotalSpent.String(),
		TopCategory:          r.TopCategory,
		OverbudgetCategories: categories,
		CreatedAt:            r.CreatedAt.Format(time.RFC3339),
	}
}

func NewReportResponses(reports []models.MonthlyReport) []ReportResponse {
	out := make([]ReportResponse, 0, len(reports))
	for i := range reports {
		out = append(out, NewReportResponse(&reports[i]))
	}
	return out
}
