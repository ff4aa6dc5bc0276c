package analysis

import (
	"fmt"
	"math/rand"
	"time"

	"spendwise/internal/models"

	"github.com/shopspring/decimal"
)

const (
	maxInsights = 5

	highDailyAverage = 1000
	busyRecentCount  = 60
	quietRecentCount = 10
)

var generalTips = []string{
	"Set up automatic transfers to savings to build an emergency fund.",
	"Review and compare prices before making major purchases.",
	"Consider using budgeting apps to track your spending in real-time.",
	"Look for subscription services you're not using and cancel them.",
	"Try the 50/30/20 rule: 50% needs, 30% wants, 20% savings.",
}

// topCategoryTips fire only when the keyed category is the largest one and
// its share of total spend exceeds the threshold.
var topCategoryTips = map[models.Category]struct {
	threshold float64
	tip       string
}{
	models.CategoryFood: {
		35, "Consider meal planning and cooking at home more often to reduce food expenses.",
	},
	models.CategoryShopping: {
		25, "Review your shopping habits. Consider waiting 24 hours before making non-essential purchases.",
	},
	models.CategoryEntertainment: {
		20, "Look for free or low-cost entertainment options like parks, free events, or streaming services.",
	},
}

type InsightSummary struct {
	TotalSpent        decimal.Decimal                     `json:"total_spent"`
	CategoryBreakdown map[models.Category]decimal.Decimal `json:"category_breakdown"`
	DailyAverage      decimal.Decimal                     `json:"daily_average"`
	RecentExpenses    int                                 `json:"recent_expenses"`
}

type InsightReport struct {
	Suggestions []string       `json:"suggestions"`
	Analysis    InsightSummary `json:"analysis"`
	Timestamp   time.Time      `json:"timestamp"`
}

// Insights runs the heuristic rule set over every expense given, not just
// the current month. rng picks the general tips used when no rule fires;
// a nil rng is seeded from now.
func Insights(expenses []models.Expense, now time.Time, rng *rand.Rand) *InsightReport {
	if rng == nil {
		rng = rand.New(rand.NewSource(now.UnixNano()))
	}

	summary, categories := summarize(expenses, now)
	report := &InsightReport{
		Analysis:  summary,
		Timestamp: now,
	}

	if len(expenses) == 0 {
		report.Suggestions = []string{"Start tracking your expenses to get personalized suggestions!"}
		return report
	}

	suggestions := make([]string, 0, maxInsights)
	suggestions = append(suggestions, categoryInsights(summary.TotalSpent, categories)...)
	suggestions = append(suggestions, patternInsights(summary)...)
	suggestions = append(suggestions, paymentInsights(expenses)...)

	if len(suggestions) == 0 {
		for _, i := range rng.Perm(len(generalTips))[:2] {
			suggestions = append(suggestions, generalTips[i])
		}
	}

	if len(suggestions) > maxInsights {
		suggestions = suggestions[:maxInsights]
	}
	report.Suggestions = suggestions
	return report
}

func summarize(expenses []models.Expense, now time.Time) (InsightSummary, *categoryTotals) {
	categories := newCategoryTotals()
	total := decimal.Zero
	recentSum := decimal.Zero
	recentCount := 0
	since := now.AddDate(0, 0, -trailingWindowDays)

	for _, e := range expenses {
		category := e.Category
		if category == "" {
			category = models.CategoryOther
		}
		total = total.Add(e.Amount)
		categories.add(category, e.Amount)

		if !calendarDay(e.Date, now.Location()).Before(since) {
			recentSum = recentSum.Add(e.Amount)
			recentCount++
		}
	}

	dailyAvg := decimal.Zero
	if recentCount > 0 {
		dailyAvg = recentSum.Div(averageDays)
	}

	breakdown := make(map[models.Category]decimal.Decimal, len(categories.order))
	for c, sum := range categories.sums {
		breakdown[c] = sum
	}

	return InsightSummary{
		TotalSpent:        total,
		CategoryBreakdown: breakdown,
		DailyAverage:      dailyAvg,
		RecentExpenses:    recentCount,
	}, categories
}

func categoryInsights(total decimal.Decimal, categories *categoryTotals) []string {
	if total.IsZero() {
		return []string{"Start tracking your expenses to get personalized suggestions!"}
	}
	if len(categories.order) == 0 {
		return nil
	}

	top := categories.order[0]
	for _, c := range categories.order[1:] {
		if categories.sums[c].GreaterThan(categories.sums[top]) {
			top = c
		}
	}
	amount := categories.sums[top]
	share := percentOf(amount, total).InexactFloat64()

	var out []string
	if share > heavyCategoryPercent {
		reduction := amount.Mul(decimal.NewFromFloat(0.15))
		out = append(out, fmt.Sprintf(
			"You're spending a lot on %s (%.1f%% of total). Try to reduce it by %s%s (15%%).",
			top, share, DefaultCurrencySymbol, reduction.StringFixedBank(0),
		))
	}
	if rule, ok := topCategoryTips[top]; ok && share > rule.threshold {
		out = append(out, rule.tip)
	}
	return out
}

func patternInsights(s InsightSummary) []string {
	var out []string
	if s.DailyAverage.GreaterThan(decimal.NewFromInt(highDailyAverage)) {
		out = append(out, fmt.Sprintf(
			"Your daily spending average is %s%s. Try to reduce daily expenses by %s%s to improve your budget.",
			DefaultCurrencySymbol, s.DailyAverage.StringFixedBank(0),
			DefaultCurrencySymbol, s.DailyAverage.Mul(decimal.NewFromFloat(0.2)).StringFixedBank(0),
		))
	}

	switch {
	case s.RecentExpenses > busyRecentCount:
		out = append(out, "You have many small transactions. Consider consolidating purchases to reduce impulse spending.")
	case s.RecentExpenses < quietRecentCount:
		out = append(out, "Great job keeping your expenses minimal! Consider setting aside the savings for future goals.")
	}
	return out
}

func paymentInsights(expenses []models.Expense) []string {
	if len(expenses) == 0 {
		return nil
	}

	counts := make(map[models.PaymentMethod]int)
	for _, e := range expenses {
		counts[e.PaymentMethod]++
	}
	n := float64(len(expenses))

	var out []string
	if float64(counts[models.PaymentCash])/n > 0.5 {
		out = append(out, "You use cash frequently. Consider using digital payments for better expense tracking and rewards.")
	}
	if float64(counts[models.PaymentCreditCard])/n > 0.7 {
		out = append(out, "High credit card usage detected. Make sure to pay your credit card bills on time to avoid interest charges.")
	}
	return out
}
