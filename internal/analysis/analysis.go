// Package analysis turns a user's expenses and budgets into spending
// analytics and plain-language suggestions. Everything here is a pure
// function of its arguments; the caller supplies "now".
package analysis

import (
	"sort"
	"time"

	"spendwise/internal/models"

	"github.com/shopspring/decimal"
)

// NoExpenses is reported as the top category when the month has no spend.
const NoExpenses = "No expenses"

const topPaymentMethodsLimit = 3

var (
	hundred          = decimal.NewFromInt(100)
	warningThreshold = decimal.NewFromInt(80)
)

type AlertLevel string

const (
	AlertWarning AlertLevel = "warning"
	AlertDanger  AlertLevel = "danger"
)

type PaymentMethodTotal struct {
	Method models.PaymentMethod `json:"method"`
	Amount decimal.Decimal      `json:"amount"`
	Count  int                  `json:"count"`
}

type CategoryShare struct {
	Category   models.Category `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage float64         `json:"percentage"`
}

type DailyTotal struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

type BudgetAlert struct {
	Category   models.Category `json:"category"`
	Spent      decimal.Decimal `json:"spent"`
	Budget     decimal.Decimal `json:"budget"`
	Percentage float64         `json:"percentage"`
	Level      AlertLevel      `json:"level"`
}

// ExpenseAnalysis is recomputed on every call and never persisted.
type ExpenseAnalysis struct {
	Month             string               `json:"month"`
	TotalSpent        decimal.Decimal      `json:"totalSpent"`
	TopCategory       string               `json:"topCategory"`
	TopPaymentMethods []PaymentMethodTotal `json:"topPaymentMethods"`
	CategoryBreakdown []CategoryShare      `json:"categoryBreakdown"`
	DailySpending     []DailyTotal         `json:"dailySpending"`
	BudgetAlerts      []BudgetAlert        `json:"budgetAlerts"`
}

// Analyze computes the analysis for the calendar month containing now.
//
// Category, payment-method and daily groupings keep the order in which each
// key is first seen in expenses, so equal totals rank by first appearance.
// The daily series covers the 30 days before now across all months.
func Analyze(expenses []models.Expense, budgets []models.Budget, now time.Time) *ExpenseAnalysis {
	loc := now.Location()
	month := CurrentMonth(now)
	monthStart, monthEnd := monthBoundsOf(now)

	total := decimal.Zero
	categories := newCategoryTotals()
	methods := newMethodTotals()

	for _, e := range expenses {
		if !within(calendarDay(e.Date, loc), monthStart, monthEnd) {
			continue
		}
		total = total.Add(e.Amount)
		categories.add(e.Category, e.Amount)
		methods.add(e.PaymentMethod, e.Amount)
	}

	breakdown := make([]CategoryShare, 0, len(categories.order))
	for _, c := range categories.order {
		amount := categories.sums[c]
		breakdown = append(breakdown, CategoryShare{
			Category:   c,
			Amount:     amount,
			Percentage: percentOf(amount, total).InexactFloat64(),
		})
	}
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Amount.GreaterThan(breakdown[j].Amount)
	})

	topCategory := NoExpenses
	if len(breakdown) > 0 {
		topCategory = string(breakdown[0].Category)
	}

	return &ExpenseAnalysis{
		Month:             month,
		TotalSpent:        total,
		TopCategory:       topCategory,
		TopPaymentMethods: methods.top(topPaymentMethodsLimit),
		CategoryBreakdown: breakdown,
		DailySpending:     dailySpending(expenses, now),
		BudgetAlerts:      budgetAlerts(budgets, month, categories.sums),
	}
}

func dailySpending(expenses []models.Expense, now time.Time) []DailyTotal {
	start, end := Last30Days(now)

	index := make(map[string]int)
	daily := make([]DailyTotal, 0)
	for _, e := range expenses {
		day := calendarDay(e.Date, now.Location())
		if !within(day, start, end) {
			continue
		}
		key := FormatDate(day)
		if i, ok := index[key]; ok {
			daily[i].Amount = daily[i].Amount.Add(e.Amount)
			continue
		}
		index[key] = len(daily)
		daily = append(daily, DailyTotal{Date: key, Amount: e.Amount})
	}

	sort.SliceStable(daily, func(i, j int) bool {
		return daily[i].Date < daily[j].Date
	})
	return daily
}

func budgetAlerts(budgets []models.Budget, month string, spentByCategory map[models.Category]decimal.Decimal) []BudgetAlert {
	alerts := make([]BudgetAlert, 0)
	for _, b := range budgets {
		if b.Month != month {
			continue
		}

		spent := spentByCategory[b.Category]
		pct := decimal.Zero
		if b.MonthlyLimit.IsPositive() {
			pct = spent.Mul(hundred).Div(b.MonthlyLimit)
		}

		var level AlertLevel
		switch {
		case pct.GreaterThanOrEqual(hundred):
			level = AlertDanger
		case pct.GreaterThanOrEqual(warningThreshold):
			level = AlertWarning
		default:
			continue
		}

		alerts = append(alerts, BudgetAlert{
			Category:   b.Category,
			Spent:      spent,
			Budget:     b.MonthlyLimit,
			Percentage: pct.InexactFloat64(),
			Level:      level,
		})
	}
	return alerts
}

func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(whole)
}

type categoryTotals struct {
	order []models.Category
	sums  map[models.Category]decimal.Decimal
}

func newCategoryTotals() *categoryTotals {
	return &categoryTotals{sums: make(map[models.Category]decimal.Decimal)}
}

func (t *categoryTotals) add(c models.Category, amount decimal.Decimal) {
	sum, seen := t.sums[c]
	if !seen {
		t.order = append(t.order, c)
	}
	t.sums[c] = sum.Add(amount)
}

type methodTotals struct {
	index  map[models.PaymentMethod]int
	totals []PaymentMethodTotal
}

func newMethodTotals() *methodTotals {
	return &methodTotals{index: make(map[models.PaymentMethod]int)}
}

func (t *methodTotals) add(m models.PaymentMethod, amount decimal.Decimal) {
	i, ok := t.index[m]
	if !ok {
		i = len(t.totals)
		t.index[m] = i
		t.totals = append(t.totals, PaymentMethodTotal{Method: m, Amount: decimal.Zero})
	}
	t.totals[i].Amount = t.totals[i].Amount.Add(amount)
	t.totals[i].Count++
}

func (t *methodTotals) top(n int) []PaymentMethodTotal {
	ranked := make([]PaymentMethodTotal, len(t.totals))
	copy(ranked, t.totals)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Amount.GreaterThan(ranked[j].Amount)
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
