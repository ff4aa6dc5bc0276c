package analysis

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrencySymbol prefixes amounts in generated messages.
const DefaultCurrencySymbol = "₹"

const (
	heavyCategoryPercent = 40.0
	recentWindowDays     = 7
)

var (
	averageDays        = decimal.NewFromInt(trailingWindowDays)
	recentDays         = decimal.NewFromInt(recentWindowDays)
	recentSpikeFactor  = decimal.NewFromFloat(1.3)
	fallbackSuggestion = "Great job managing your expenses! Consider setting budgets for your top spending categories."
)

// Suggest derives suggestions from an analysis using DefaultCurrencySymbol.
func Suggest(a *ExpenseAnalysis) []string {
	return SuggestWithCurrency(a, DefaultCurrencySymbol)
}

// SuggestWithCurrency derives suggestions from an analysis. Rules run in a
// fixed order: dominant category, one line per budget alert, then recent
// daily trend. When none fires a single encouragement is returned.
func SuggestWithCurrency(a *ExpenseAnalysis, currency string) []string {
	suggestions := make([]string, 0)

	if len(a.CategoryBreakdown) > 0 {
		top := a.CategoryBreakdown[0]
		if top.Percentage > heavyCategoryPercent {
			suggestions = append(suggestions, fmt.Sprintf(
				"You're spending a lot on %s (%.1f%% of total). Consider reducing by 15%%.",
				top.Category, top.Percentage,
			))
		}
	}

	for _, alert := range a.BudgetAlerts {
		if alert.Level == AlertDanger {
			suggestions = append(suggestions, fmt.Sprintf(
				"You've exceeded your %s budget by %s%s. Consider reviewing your %s expenses.",
				alert.Category, currency, alert.Spent.Sub(alert.Budget).StringFixed(0),
				strings.ToLower(string(alert.Category)),
			))
			continue
		}
		suggestions = append(suggestions, fmt.Sprintf(
			"You're close to your %s budget limit (%.1f%%). Try to limit further spending in this category.",
			alert.Category, alert.Percentage,
		))
	}

	if len(a.DailySpending) > 0 {
		avgDaily := a.TotalSpent.Div(averageDays)

		recent := a.DailySpending
		if len(recent) > recentWindowDays {
			recent = recent[len(recent)-recentWindowDays:]
		}
		recentSum := decimal.Zero
		for _, d := range recent {
			recentSum = recentSum.Add(d.Amount)
		}
		// Divisor stays at seven even when fewer days are present.
		recentAvg := recentSum.Div(recentDays)

		if recentAvg.GreaterThan(avgDaily.Mul(recentSpikeFactor)) {
			suggestions = append(suggestions, fmt.Sprintf(
				"Your spending has increased recently. Try to reduce daily expenses by %s%s.",
				currency, recentAvg.Sub(avgDaily).StringFixed(0),
			))
		}
	}

	if len(suggestions) == 0 {
		suggestions = append(suggestions, fallbackSuggestion)
	}
	return suggestions
}
