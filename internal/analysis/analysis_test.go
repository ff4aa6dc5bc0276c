package analysis

import (
	"testing"
	"time"

	"spendwise/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func expense(amount int64, c models.Category, date time.Time, pm models.PaymentMethod) models.Expense {
	return models.Expense{
		Amount:        decimal.NewFromInt(amount),
		Category:      c,
		Date:          date,
		PaymentMethod: pm,
	}
}

func budget(c models.Category, limit int64, month string) models.Budget {
	return models.Budget{Category: c, MonthlyLimit: decimal.NewFromInt(limit), Month: month}
}

func requireDecimal(t *testing.T, want int64, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, decimal.NewFromInt(want).Equal(got), "want %d, got %s", want, got)
}

func TestAnalyze_Empty(t *testing.T) {
	a := Analyze(nil, nil, testNow)

	assert.Equal(t, "2024-03", a.Month)
	assert.True(t, a.TotalSpent.IsZero())
	assert.Equal(t, NoExpenses, a.TopCategory)
	assert.NotNil(t, a.TopPaymentMethods)
	assert.Empty(t, a.TopPaymentMethods)
	assert.NotNil(t, a.CategoryBreakdown)
	assert.Empty(t, a.CategoryBreakdown)
	assert.NotNil(t, a.DailySpending)
	assert.Empty(t, a.DailySpending)
	assert.NotNil(t, a.BudgetAlerts)
	assert.Empty(t, a.BudgetAlerts)
}

func TestAnalyze_OverBudget(t *testing.T) {
	expenses := []models.Expense{
		expense(1000, models.CategoryFood, day(2024, 3, 1), models.PaymentUPI),
		expense(500, models.CategoryRent, day(2024, 3, 2), models.PaymentUPI),
	}
	budgets := []models.Budget{budget(models.CategoryFood, 1000, "2024-03")}

	a := Analyze(expenses, budgets, testNow)

	requireDecimal(t, 1500, a.TotalSpent)
	assert.Equal(t, "Food", a.TopCategory)

	require.Len(t, a.BudgetAlerts, 1)
	alert := a.BudgetAlerts[0]
	assert.Equal(t, models.CategoryFood, alert.Category)
	assert.Equal(t, AlertDanger, alert.Level)
	assert.Equal(t, 100.0, alert.Percentage)
	requireDecimal(t, 1000, alert.Spent)
	requireDecimal(t, 1000, alert.Budget)

	require.Len(t, a.CategoryBreakdown, 2)
	assert.Equal(t, models.CategoryFood, a.CategoryBreakdown[0].Category)
	assert.InDelta(t, 66.6667, a.CategoryBreakdown[0].Percentage, 0.001)
	assert.Equal(t, models.CategoryRent, a.CategoryBreakdown[1].Category)
	assert.InDelta(t, 33.3333, a.CategoryBreakdown[1].Percentage, 0.001)

	require.Len(t, a.TopPaymentMethods, 1)
	assert.Equal(t, models.PaymentUPI, a.TopPaymentMethods[0].Method)
	assert.Equal(t, 2, a.TopPaymentMethods[0].Count)
	requireDecimal(t, 1500, a.TopPaymentMethods[0].Amount)

	require.Len(t, a.DailySpending, 2)
	assert.Equal(t, "2024-03-01", a.DailySpending[0].Date)
	assert.Equal(t, "2024-03-02", a.DailySpending[1].Date)
}

func TestAnalyze_BudgetAlertLevels(t *testing.T) {
	tests := []struct {
		name      string
		spent     int64
		limit     int64
		wantAlert bool
		wantLevel AlertLevel
		wantPct   float64
	}{
		{name: "half used", spent: 1000, limit: 2000},
		{name: "warning at 80", spent: 800, limit: 1000, wantAlert: true, wantLevel: AlertWarning, wantPct: 80},
		{name: "warning below 100", spent: 850, limit: 1000, wantAlert: true, wantLevel: AlertWarning, wantPct: 85},
		{name: "danger at 100", spent: 1000, limit: 1000, wantAlert: true, wantLevel: AlertDanger, wantPct: 100},
		{name: "danger over", spent: 1500, limit: 1000, wantAlert: true, wantLevel: AlertDanger, wantPct: 150},
		{name: "zero limit", spent: 500, limit: 0},
		{name: "nothing spent", spent: 0, limit: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var expenses []models.Expense
			if tt.spent > 0 {
				expenses = append(expenses, expense(tt.spent, models.CategoryFood, day(2024, 3, 3), models.PaymentCash))
			}
			budgets := []models.Budget{budget(models.CategoryFood, tt.limit, "2024-03")}

			a := Analyze(expenses, budgets, testNow)

			if !tt.wantAlert {
				assert.Empty(t, a.BudgetAlerts)
				return
			}
			require.Len(t, a.BudgetAlerts, 1)
			assert.Equal(t, tt.wantLevel, a.BudgetAlerts[0].Level)
			assert.InDelta(t, tt.wantPct, a.BudgetAlerts[0].Percentage, 1e-9)
		})
	}
}

func TestAnalyze_BudgetsKeepInputOrderAndMonth(t *testing.T) {
	expenses := []models.Expense{
		expense(900, models.CategoryFood, day(2024, 3, 3), models.PaymentCash),
		expense(300, models.CategoryUtilities, day(2024, 3, 4), models.PaymentCash),
	}
	budgets := []models.Budget{
		budget(models.CategoryUtilities, 200, "2024-03"),
		budget(models.CategoryFood, 100, "2024-02"),
		budget(models.CategoryFood, 1000, "2024-03"),
		budget(models.CategoryShopping, 100, "2024-03"),
	}

	a := Analyze(expenses, budgets, testNow)

	require.Len(t, a.BudgetAlerts, 2)
	assert.Equal(t, models.CategoryUtilities, a.BudgetAlerts[0].Category)
	assert.Equal(t, AlertDanger, a.BudgetAlerts[0].Level)
	assert.Equal(t, models.CategoryFood, a.BudgetAlerts[1].Category)
	assert.Equal(t, AlertWarning, a.BudgetAlerts[1].Level)
}

func TestAnalyze_MonthAndWindowFilters(t *testing.T) {
	expenses := []models.Expense{
		expense(100, models.CategoryFood, day(2024, 3, 15), models.PaymentUPI),
		expense(200, models.CategoryFood, day(2024, 2, 28), models.PaymentUPI),
		expense(400, models.CategoryRent, day(2024, 2, 10), models.PaymentUPI),
		expense(800, models.CategoryShopping, day(2024, 4, 1), models.PaymentUPI),
		expense(50, models.CategoryFood, day(2024, 3, 31), models.PaymentUPI),
	}

	a := Analyze(expenses, nil, testNow)

	requireDecimal(t, 150, a.TotalSpent)
	require.Len(t, a.CategoryBreakdown, 1)
	assert.Equal(t, models.CategoryFood, a.CategoryBreakdown[0].Category)

	dates := make([]string, 0, len(a.DailySpending))
	for _, d := range a.DailySpending {
		dates = append(dates, d.Date)
	}
	assert.Equal(t, []string{"2024-02-28", "2024-03-15"}, dates)
}

func TestAnalyze_WindowStartIsInclusive(t *testing.T) {
	midnight := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	expenses := []models.Expense{
		expense(10, models.CategoryFood, day(2024, 2, 14), models.PaymentUPI),
		expense(20, models.CategoryFood, day(2024, 2, 13), models.PaymentUPI),
	}

	a := Analyze(expenses, nil, midnight)
	require.Len(t, a.DailySpending, 1)
	assert.Equal(t, "2024-02-14", a.DailySpending[0].Date)

	a = Analyze(expenses, nil, testNow)
	assert.Empty(t, a.DailySpending)
}

func TestAnalyze_DailyTotalsGroupAndSort(t *testing.T) {
	expenses := []models.Expense{
		expense(30, models.CategoryFood, day(2024, 3, 10), models.PaymentUPI),
		expense(10, models.CategoryFood, day(2024, 3, 5), models.PaymentUPI),
		expense(20, models.CategoryRent, day(2024, 3, 10), models.PaymentCash),
	}

	a := Analyze(expenses, nil, testNow)

	require.Len(t, a.DailySpending, 2)
	assert.Equal(t, "2024-03-05", a.DailySpending[0].Date)
	requireDecimal(t, 10, a.DailySpending[0].Amount)
	assert.Equal(t, "2024-03-10", a.DailySpending[1].Date)
	requireDecimal(t, 50, a.DailySpending[1].Amount)
}

func TestAnalyze_TiesRankByFirstAppearance(t *testing.T) {
	rentFirst := []models.Expense{
		expense(500, models.CategoryRent, day(2024, 3, 1), models.PaymentCash),
		expense(500, models.CategoryFood, day(2024, 3, 2), models.PaymentUPI),
	}
	a := Analyze(rentFirst, nil, testNow)
	assert.Equal(t, "Rent", a.TopCategory)
	assert.Equal(t, models.PaymentCash, a.TopPaymentMethods[0].Method)

	foodFirst := []models.Expense{rentFirst[1], rentFirst[0]}
	a = Analyze(foodFirst, nil, testNow)
	assert.Equal(t, "Food", a.TopCategory)
	assert.Equal(t, models.PaymentUPI, a.TopPaymentMethods[0].Method)
}

func TestAnalyze_TopPaymentMethodsLimited(t *testing.T) {
	expenses := []models.Expense{
		expense(10, models.CategoryOther, day(2024, 3, 1), models.PaymentCash),
		expense(40, models.CategoryOther, day(2024, 3, 1), models.PaymentUPI),
		expense(30, models.CategoryOther, day(2024, 3, 1), models.PaymentDebitCard),
		expense(20, models.CategoryOther, day(2024, 3, 1), models.PaymentNetBanking),
		expense(15, models.CategoryOther, day(2024, 3, 2), models.PaymentUPI),
	}

	a := Analyze(expenses, nil, testNow)

	require.Len(t, a.TopPaymentMethods, 3)
	assert.Equal(t, models.PaymentUPI, a.TopPaymentMethods[0].Method)
	assert.Equal(t, 2, a.TopPaymentMethods[0].Count)
	requireDecimal(t, 55, a.TopPaymentMethods[0].Amount)
	assert.Equal(t, models.PaymentDebitCard, a.TopPaymentMethods[1].Method)
	assert.Equal(t, models.PaymentNetBanking, a.TopPaymentMethods[2].Method)
}

func TestAnalyze_BreakdownPercentagesSumTo100(t *testing.T) {
	expenses := []models.Expense{
		expense(100, models.CategoryFood, day(2024, 3, 1), models.PaymentUPI),
		expense(100, models.CategoryRent, day(2024, 3, 2), models.PaymentUPI),
		expense(100, models.CategoryShopping, day(2024, 3, 3), models.PaymentCash),
		expense(37, models.CategoryOther, day(2024, 3, 4), models.PaymentCash),
	}

	a := Analyze(expenses, nil, testNow)

	require.Len(t, a.CategoryBreakdown, 4)
	sum := 0.0
	for _, share := range a.CategoryBreakdown {
		sum += share.Percentage
	}
	assert.InDelta(t, 100.0, sum, 1e-9)
}

func TestAnalyze_MethodsOutsideTopThreeRankLower(t *testing.T) {
	expenses := []models.Expense{
		expense(5, models.CategoryOther, day(2024, 3, 1), models.PaymentOther),
		expense(25, models.CategoryOther, day(2024, 3, 1), models.PaymentCash),
		expense(60, models.CategoryOther, day(2024, 3, 2), models.PaymentCreditCard),
		expense(25, models.CategoryOther, day(2024, 3, 3), models.PaymentNetBanking),
		expense(10, models.CategoryOther, day(2024, 3, 4), models.PaymentDebitCard),
		expense(45, models.CategoryOther, day(2024, 3, 5), models.PaymentUPI),
	}

	a := Analyze(expenses, nil, testNow)

	require.Len(t, a.TopPaymentMethods, 3)
	third := a.TopPaymentMethods[2].Amount
	inTop := map[models.PaymentMethod]bool{}
	for _, m := range a.TopPaymentMethods {
		inTop[m.Method] = true
	}
	for _, e := range expenses {
		if !inTop[e.PaymentMethod] {
			assert.True(t, e.Amount.LessThanOrEqual(third), "%s ranks above %s", e.PaymentMethod, third)
		}
	}
	// Cash and Net Banking tie at 25; Cash was seen first.
	assert.Equal(t, models.PaymentCash, a.TopPaymentMethods[2].Method)
}

func TestAnalyze_DateLocationIgnored(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	expenses := []models.Expense{
		{
			Amount:        decimal.NewFromInt(70),
			Category:      models.CategoryFood,
			Date:          time.Date(2024, time.March, 1, 0, 0, 0, 0, est),
			PaymentMethod: models.PaymentUPI,
		},
	}

	a := Analyze(expenses, nil, testNow)

	requireDecimal(t, 70, a.TotalSpent)
	require.Len(t, a.DailySpending, 1)
	assert.Equal(t, "2024-03-01", a.DailySpending[0].Date)
}

func TestAnalyze_ExactDecimalSums(t *testing.T) {
	expenses := []models.Expense{
		{Amount: decimal.RequireFromString("0.10"), Category: models.CategoryFood, Date: day(2024, 3, 1), PaymentMethod: models.PaymentUPI},
		{Amount: decimal.RequireFromString("0.20"), Category: models.CategoryFood, Date: day(2024, 3, 1), PaymentMethod: models.PaymentUPI},
	}

	a := Analyze(expenses, nil, testNow)

	assert.True(t, decimal.RequireFromString("0.30").Equal(a.TotalSpent), a.TotalSpent.String())
}
