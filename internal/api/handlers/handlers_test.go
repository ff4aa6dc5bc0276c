package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"spendwise/internal/analysis"
	"spendwise/internal/dto"
	"spendwise/internal/models"
	"spendwise/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testUserID = uuid.MustParse("6f1c6a52-4d4e-4a5e-9d3b-8a3b1e0c2f10")

type stubExpenses struct {
	created  *dto.CreateExpenseRequest
	query    *dto.ExpenseListQuery
	list     []models.Expense
	err      error
	deleted  uuid.UUID
	updateID uuid.UUID
}

func (s *stubExpenses) Create(_ context.Context, userID uuid.UUID, req *dto.CreateExpenseRequest) (*models.Expense, error) {
	if s.err != nil {
		return nil, s.err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	s.created = req
	return &models.Expense{
		ID:            uuid.New(),
		UserID:        userID,
		Amount:        req.Amount,
		Category:      models.Category(req.Category),
		Date:          req.ParsedDate(),
		PaymentMethod: models.PaymentMethod(req.PaymentMethod),
	}, nil
}

func (s *stubExpenses) List(_ context.Context, _ uuid.UUID, q *dto.ExpenseListQuery) ([]models.Expense, error) {
	s.query = q
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return s.list, s.err
}

func (s *stubExpenses) Get(_ context.Context, _ uuid.UUID, id uuid.UUID) (*models.Expense, error) {
	for i := range s.list {
		if s.list[i].ID == id {
			return &s.list[i], nil
		}
	}
	return nil, service.ErrExpenseNotFound
}

func (s *stubExpenses) Update(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateExpenseRequest) (*models.Expense, error) {
	s.updateID = id
	if err := req.Validate(); err != nil {
		return nil, err
	}
	e, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if req.Amount != nil {
		e.Amount = *req.Amount
	}
	return e, nil
}

func (s *stubExpenses) Delete(_ context.Context, _ uuid.UUID, id uuid.UUID) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = id
	return nil
}

type stubBudgets struct {
	err error
}

func (s *stubBudgets) Create(_ context.Context, userID uuid.UUID, req *dto.CreateBudgetRequest) (*models.Budget, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	return &models.Budget{
		ID:           uuid.New(),
		UserID:       userID,
		Category:     models.Category(req.Category),
		MonthlyLimit: req.MonthlyLimit,
		Month:        req.Month,
	}, nil
}

func (s *stubBudgets) List(context.Context, uuid.UUID, string) ([]models.Budget, error) {
	return nil, s.err
}

func (s *stubBudgets) Get(context.Context, uuid.UUID, uuid.UUID) (*models.Budget, error) {
	return nil, service.ErrBudgetNotFound
}

func (s *stubBudgets) Update(context.Context, uuid.UUID, uuid.UUID, *dto.UpdateBudgetRequest) (*models.Budget, error) {
	return nil, service.ErrBudgetNotFound
}

func (s *stubBudgets) Delete(context.Context, uuid.UUID, uuid.UUID) error {
	return s.err
}

type stubAnalysis struct {
	resp *dto.AnalysisResponse
	err  error
}

func (s *stubAnalysis) Analyze(context.Context, uuid.UUID) (*dto.AnalysisResponse, error) {
	return s.resp, s.err
}

func (s *stubAnalysis) Insights(context.Context, uuid.UUID) (*analysis.InsightReport, error) {
	return &analysis.InsightReport{Suggestions: []string{"tip"}}, s.err
}

type stubAdvisor struct {
	err error
}

func (s *stubAdvisor) Advise(context.Context, uuid.UUID) (*dto.AdviceResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.AdviceResponse{Month: "2024-03", Advice: "Spend less on food."}, nil
}

type stubReports struct {
	month string
}

func (s *stubReports) Generate(_ context.Context, userID uuid.UUID, month string) (*models.MonthlyReport, error) {
	s.month = month
	if _, err := analysis.ParseMonth(month, time.UTC); err != nil {
		return nil, &dto.ValidationError{Field: "month", Message: "must be in YYYY-MM format"}
	}
	return &models.MonthlyReport{
		ID:          uuid.New(),
		UserID:      userID,
		Month:       month,
		TotalSpent:  decimal.RequireFromString("1500.50"),
		TopCategory: "Food",
	}, nil
}

func (s *stubReports) List(context.Context, uuid.UUID) ([]models.MonthlyReport, error) {
	return nil, nil
}

// authenticated stands in for the JWT middleware.
func authenticated(c *fiber.Ctx) error {
	c.Locals("userID", testUserID.String())
	return c.Next()
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func TestGetUserID(t *testing.T) {
	app := fiber.New()
	app.Get("/none", func(c *fiber.Ctx) error {
		_, err := getUserID(c)
		return err
	})
	app.Get("/bad", func(c *fiber.Ctx) error {
		c.Locals("userID", "not-a-uuid")
		_, err := getUserID(c)
		return err
	})

	for _, path := range []string{"/none", "/bad"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestExpenseHandler(t *testing.T) {
	existing := models.Expense{
		ID:            uuid.New(),
		UserID:        testUserID,
		Amount:        decimal.RequireFromString("120"),
		Category:      models.CategoryFood,
		Date:          time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
		PaymentMethod: models.PaymentUPI,
	}
	svc := &stubExpenses{list: []models.Expense{existing}}
	h := NewExpenseHandler(svc, zap.NewNop())

	app := fiber.New()
	app.Use(authenticated)
	app.Get("/expenses", h.ListExpenses)
	app.Post("/expenses", h.CreateExpense)
	app.Get("/expenses/:id", h.GetExpense)
	app.Put("/expenses/:id", h.UpdateExpense)
	app.Delete("/expenses/:id", h.DeleteExpense)

	t.Run("create", func(t *testing.T) {
		status, body := doJSON(t, app, "POST", "/expenses",
			`{"amount":249.5,"category":"Food","date":"2024-03-10","payment_method":"UPI"}`)
		assert.Equal(t, fiber.StatusCreated, status)
		assert.Equal(t, "249.5", body["amount"])
		assert.Equal(t, "2024-03-10", body["date"])
		require.NotNil(t, svc.created)
	})

	t.Run("create rejects unknown category", func(t *testing.T) {
		status, body := doJSON(t, app, "POST", "/expenses",
			`{"amount":10,"category":"Gadgets","date":"2024-03-10","payment_method":"UPI"}`)
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, "category is not a known category", body["error"])
	})

	t.Run("create rejects malformed body", func(t *testing.T) {
		status, body := doJSON(t, app, "POST", "/expenses", `{"amount":`)
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, "Invalid request body", body["error"])
	})

	t.Run("list passes month through", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/expenses?month=2024-03", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "2024-03", svc.query.Month)

		var list []dto.ExpenseResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
		require.Len(t, list, 1)
		assert.Equal(t, existing.ID.String(), list[0].ID)
	})

	t.Run("list rejects bad month", func(t *testing.T) {
		status, _ := doJSON(t, app, "GET", "/expenses?month=March", "")
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("list passes filters through", func(t *testing.T) {
		status, _ := doJSON(t, app, "GET",
			"/expenses?category=Food&payment_method=Credit%20Card&search=%20dinner%20", "")
		assert.Equal(t, fiber.StatusOK, status)
		require.NotNil(t, svc.query)
		assert.Equal(t, "Food", svc.query.Category)
		assert.Equal(t, "Credit Card", svc.query.PaymentMethod)
		assert.Equal(t, "dinner", svc.query.Search)
	})

	t.Run("list rejects unknown payment method", func(t *testing.T) {
		status, body := doJSON(t, app, "GET", "/expenses?payment_method=Cheque", "")
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, "payment_method is not a known payment method", body["error"])
	})

	t.Run("get", func(t *testing.T) {
		status, body := doJSON(t, app, "GET", "/expenses/"+existing.ID.String(), "")
		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "Food", body["category"])
	})

	t.Run("get unknown and malformed ids are not found", func(t *testing.T) {
		for _, id := range []string{uuid.NewString(), "nope"} {
			status, body := doJSON(t, app, "GET", "/expenses/"+id, "")
			assert.Equal(t, fiber.StatusNotFound, status)
			assert.Equal(t, "Expense not found", body["error"])
		}
	})

	t.Run("update", func(t *testing.T) {
		status, body := doJSON(t, app, "PUT", "/expenses/"+existing.ID.String(), `{"amount":"99.99"}`)
		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "99.99", body["amount"])
		assert.Equal(t, existing.ID, svc.updateID)
	})

	t.Run("update with empty body", func(t *testing.T) {
		status, _ := doJSON(t, app, "PUT", "/expenses/"+existing.ID.String(), `{}`)
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("delete", func(t *testing.T) {
		status, _ := doJSON(t, app, "DELETE", "/expenses/"+existing.ID.String(), "")
		assert.Equal(t, fiber.StatusNoContent, status)
		assert.Equal(t, existing.ID, svc.deleted)
	})

	t.Run("storage failure is a 500", func(t *testing.T) {
		svc.err = errors.New("connection reset")
		defer func() { svc.err = nil }()

		status, body := doJSON(t, app, "DELETE", "/expenses/"+existing.ID.String(), "")
		assert.Equal(t, fiber.StatusInternalServerError, status)
		assert.Equal(t, "Failed to delete expense", body["error"])
	})
}

func TestBudgetHandler(t *testing.T) {
	svc := &stubBudgets{}
	h := NewBudgetHandler(svc, zap.NewNop())

	app := fiber.New()
	app.Use(authenticated)
	app.Post("/budgets", h.CreateBudget)
	app.Get("/budgets/:id", h.GetBudget)
	app.Put("/budgets/:id", h.UpdateBudget)

	status, body := doJSON(t, app, "POST", "/budgets", `{"category":"Rent","monthly_limit":"15000","month":"2024-03"}`)
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "2024-03", body["month"])

	status, _ = doJSON(t, app, "POST", "/budgets", `{"category":"Rent","monthly_limit":"15000"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	svc.err = service.ErrBudgetExists
	status, _ = doJSON(t, app, "POST", "/budgets", `{"category":"Rent","monthly_limit":"15000","month":"2024-03"}`)
	assert.Equal(t, fiber.StatusConflict, status)

	status, body = doJSON(t, app, "GET", "/budgets/"+uuid.NewString(), "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Budget not found", body["error"])

	status, _ = doJSON(t, app, "PUT", "/budgets/"+uuid.NewString(), `{"monthly_limit":"100"}`)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestAnalysisHandler(t *testing.T) {
	resp := &dto.AnalysisResponse{
		Analysis: &analysis.ExpenseAnalysis{
			Month:       "2024-03",
			TotalSpent:  decimal.NewFromInt(500),
			TopCategory: analysis.NoExpenses,
		},
		Suggestions: []string{"Great job"},
	}
	advisor := &stubAdvisor{}
	h := NewAnalysisHandler(&stubAnalysis{resp: resp}, advisor, zap.NewNop())

	app := fiber.New()
	app.Use(authenticated)
	app.Get("/analysis", h.GetAnalysis)
	app.Get("/insights", h.GetInsights)
	app.Get("/advice", h.GetAdvice)

	status, body := doJSON(t, app, "GET", "/analysis", "")
	require.Equal(t, fiber.StatusOK, status)
	a, ok := body["analysis"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "2024-03", a["month"])
	assert.Equal(t, "500", a["totalSpent"])

	status, body = doJSON(t, app, "GET", "/insights", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, []any{"tip"}, body["suggestions"])

	status, body = doJSON(t, app, "GET", "/advice", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Spend less on food.", body["advice"])

	advisor.err = service.ErrAdvisorDisabled
	status, body = doJSON(t, app, "GET", "/advice", "")
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Equal(t, "Advisor is not configured", body["error"])

	advisor.err = errors.New("upstream timeout")
	status, _ = doJSON(t, app, "GET", "/advice", "")
	assert.Equal(t, fiber.StatusBadGateway, status)
}

func TestReportHandler(t *testing.T) {
	svc := &stubReports{}
	h := NewReportHandler(svc, zap.NewNop())

	app := fiber.New()
	app.Use(authenticated)
	app.Post("/reports/:month", h.GenerateReport)
	app.Get("/reports", h.ListReports)

	status, body := doJSON(t, app, "POST", "/reports/2024-02", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "2024-02", svc.month)
	assert.Equal(t, "1500.5", body["total_spent"])
	assert.Equal(t, []any{}, body["overbudget_categories"])

	status, _ = doJSON(t, app, "POST", "/reports/2024-13", "")
	assert.Equal(t, fiber.StatusBadRequest, status)

	req := httptest.NewRequest("GET", "/reports", nil)
	res, err := app.Test(req)
	require.NoError(t, err)
	raw, _ := io.ReadAll(res.Body)
	assert.Equal(t, "[]", string(raw))
}
