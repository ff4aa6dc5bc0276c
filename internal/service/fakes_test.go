package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"spendwise/internal/models"
	"spendwise/internal/repository"

	"github.com/google/uuid"
)

type memUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]models.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[uuid.UUID]models.User)}
}

func (m *memUsers) Create(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrConflict
		}
	}
	m.users[user.ID] = *user
	return nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUsers) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

type memExpenses struct {
	mu       sync.Mutex
	expenses map[uuid.UUID]models.Expense
	listErr  error
}

func newMemExpenses() *memExpenses {
	return &memExpenses{expenses: make(map[uuid.UUID]models.Expense)}
}

func (m *memExpenses) Create(_ context.Context, e *models.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expenses[e.ID] = *e
	return nil
}

func (m *memExpenses) CreateBatch(ctx context.Context, expenses []*models.Expense) error {
	for _, e := range expenses {
		if err := m.Create(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (m *memExpenses) GetByID(_ context.Context, userID, id uuid.UUID) (*models.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.expenses[id]
	if !ok || e.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

func (m *memExpenses) ListByUser(_ context.Context, userID uuid.UUID, filter repository.ExpenseFilter) ([]models.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]models.Expense, 0)
	for _, e := range m.expenses {
		if e.UserID != userID {
			continue
		}
		if !filter.From.IsZero() && e.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && !e.Date.Before(filter.To) {
			continue
		}
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		if filter.PaymentMethod != "" && e.PaymentMethod != filter.PaymentMethod {
			continue
		}
		if filter.Search != "" && !matchesSearch(e, filter.Search) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func matchesSearch(e models.Expense, search string) bool {
	needle := strings.ToLower(search)
	if strings.Contains(strings.ToLower(string(e.Category)), needle) {
		return true
	}
	return e.Notes != nil && strings.Contains(strings.ToLower(*e.Notes), needle)
}

func (m *memExpenses) Update(_ context.Context, e *models.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.expenses[e.ID]
	if !ok || cur.UserID != e.UserID {
		return repository.ErrNotFound
	}
	m.expenses[e.ID] = *e
	return nil
}

func (m *memExpenses) Delete(_ context.Context, userID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.expenses[id]
	if !ok || cur.UserID != userID {
		return repository.ErrNotFound
	}
	delete(m.expenses, id)
	return nil
}

type memBudgets struct {
	mu      sync.Mutex
	budgets map[uuid.UUID]models.Budget
}

func newMemBudgets() *memBudgets {
	return &memBudgets{budgets: make(map[uuid.UUID]models.Budget)}
}

func (m *memBudgets) conflicts(b *models.Budget) bool {
	for _, cur := range m.budgets {
		if cur.ID != b.ID && cur.UserID == b.UserID && cur.Category == b.Category && cur.Month == b.Month {
			return true
		}
	}
	return false
}

func (m *memBudgets) Create(_ context.Context, b *models.Budget) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conflicts(b) {
		return repository.ErrConflict
	}
	m.budgets[b.ID] = *b
	return nil
}

func (m *memBudgets) GetByID(_ context.Context, userID, id uuid.UUID) (*models.Budget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.budgets[id]
	if !ok || b.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (m *memBudgets) ListByUser(_ context.Context, userID uuid.UUID, month string) ([]models.Budget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Budget, 0)
	for _, b := range m.budgets {
		if b.UserID == userID && (month == "" || b.Month == month) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func (m *memBudgets) Update(_ context.Context, b *models.Budget) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.budgets[b.ID]
	if !ok || cur.UserID != b.UserID {
		return repository.ErrNotFound
	}
	if m.conflicts(b) {
		return repository.ErrConflict
	}
	m.budgets[b.ID] = *b
	return nil
}

func (m *memBudgets) Delete(_ context.Context, userID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.budgets[id]
	if !ok || cur.UserID != userID {
		return repository.ErrNotFound
	}
	delete(m.budgets, id)
	return nil
}

type memReports struct {
	mu      sync.Mutex
	reports []models.MonthlyReport
}

func (m *memReports) Upsert(_ context.Context, rep *models.MonthlyReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, cur := range m.reports {
		if cur.UserID == rep.UserID && cur.Month == rep.Month {
			rep.ID = cur.ID
			m.reports[i] = *rep
			return nil
		}
	}
	m.reports = append(m.reports, *rep)
	return nil
}

func (m *memReports) ListByUser(_ context.Context, userID uuid.UUID) ([]models.MonthlyReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.MonthlyReport, 0)
	for _, r := range m.reports {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}
