package analysis

import (
	"fmt"
	"testing"

	"spendwise/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSuggest_Empty(t *testing.T) {
	got := Suggest(Analyze(nil, nil, testNow))
	assert.Equal(t, []string{fallbackSuggestion}, got)
}

func TestSuggest_OverBudgetScenario(t *testing.T) {
	expenses := []models.Expense{
		expense(1000, models.CategoryFood, day(2024, 3, 1), models.PaymentUPI),
		expense(500, models.CategoryRent, day(2024, 3, 2), models.PaymentUPI),
	}
	budgets := []models.Budget{budget(models.CategoryFood, 1000, "2024-03")}

	got := Suggest(Analyze(expenses, budgets, testNow))

	assert.Equal(t, []string{
		"You're spending a lot on Food (66.7% of total). Consider reducing by 15%.",
		"You've exceeded your Food budget by ₹0. Consider reviewing your food expenses.",
		"Your spending has increased recently. Try to reduce daily expenses by ₹164.",
	}, got)
}

func TestSuggest_WarningAlert(t *testing.T) {
	a := &ExpenseAnalysis{
		TotalSpent: decimal.NewFromInt(850),
		BudgetAlerts: []BudgetAlert{{
			Category:   models.CategoryShopping,
			Spent:      decimal.NewFromInt(850),
			Budget:     decimal.NewFromInt(1000),
			Percentage: 85,
			Level:      AlertWarning,
		}},
	}

	got := SuggestWithCurrency(a, "$")

	assert.Equal(t, []string{
		"You're close to your Shopping budget limit (85.0%). Try to limit further spending in this category.",
	}, got)
}

func TestSuggest_DangerUsesCurrency(t *testing.T) {
	a := &ExpenseAnalysis{
		BudgetAlerts: []BudgetAlert{{
			Category: models.CategoryEntertainment,
			Spent:    decimal.RequireFromString("1250.60"),
			Budget:   decimal.NewFromInt(1000),
			Level:    AlertDanger,
		}},
	}

	got := SuggestWithCurrency(a, "$")

	assert.Equal(t, []string{
		"You've exceeded your Entertainment budget by $251. Consider reviewing your entertainment expenses.",
	}, got)
}

func TestSuggest_BalancedCategoriesStayQuiet(t *testing.T) {
	a := &ExpenseAnalysis{
		TotalSpent: decimal.NewFromInt(1000),
		CategoryBreakdown: []CategoryShare{
			{Category: models.CategoryFood, Amount: decimal.NewFromInt(400), Percentage: 40},
			{Category: models.CategoryRent, Amount: decimal.NewFromInt(300), Percentage: 30},
		},
	}

	assert.Equal(t, []string{fallbackSuggestion}, Suggest(a))
}

func TestSuggest_RecentTrendUsesLastSevenDays(t *testing.T) {
	daily := []DailyTotal{{Date: "2024-03-01", Amount: decimal.NewFromInt(2000)}}
	for i := 2; i <= 8; i++ {
		daily = append(daily, DailyTotal{Date: fmt.Sprintf("2024-03-%02d", i), Amount: decimal.NewFromInt(100)})
	}
	a := &ExpenseAnalysis{
		TotalSpent:    decimal.NewFromInt(3000),
		DailySpending: daily,
	}

	// 700/7 = 100 against an average of 3000/30 = 100.
	assert.Equal(t, []string{fallbackSuggestion}, Suggest(a))

	a.DailySpending[len(daily)-1].Amount = decimal.NewFromInt(380)
	assert.Equal(t, []string{
		"Your spending has increased recently. Try to reduce daily expenses by ₹40.",
	}, Suggest(a))
}

func TestSuggest_RecentTrendFixedDivisor(t *testing.T) {
	a := &ExpenseAnalysis{
		TotalSpent:    decimal.NewFromInt(300),
		DailySpending: []DailyTotal{{Date: "2024-03-01", Amount: decimal.NewFromInt(70)}},
	}

	// 70/7 = 10 against an average of 10.
	assert.Equal(t, []string{fallbackSuggestion}, Suggest(a))
}
