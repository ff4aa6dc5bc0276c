package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"spendwise/internal/analysis"
	"spendwise/internal/models"
	"spendwise/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAdvisorService_DisabledWithoutKey(t *testing.T) {
	f := newFixture()
	s, err := NewAdvisorService(context.Background(), &config.GigaChatConfig{}, f.analysisService(), "", zap.NewNop())
	require.NoError(t, err)

	assert.False(t, s.Enabled())
	_, err = s.Advise(context.Background(), f.userID)
	assert.ErrorIs(t, err, ErrAdvisorDisabled)
	assert.NoError(t, s.Close())
}

func TestAdvisorService_Advise(t *testing.T) {
	f := newFixture()
	f.addExpense(900, models.CategoryFood, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC))
	f.addBudget(models.CategoryFood, 1000, "2024-03")

	var gotPrompt string
	s := &AdvisorService{
		analyzer: f.analysisService(),
		currency: "₹",
		logger:   zap.NewNop(),
		now:      func() time.Time { return fixedNow },
		generate: func(_ context.Context, prompt string) (string, error) {
			gotPrompt = prompt
			return "  Cook at home twice a week.\n", nil
		},
	}

	resp, err := s.Advise(context.Background(), f.userID)
	require.NoError(t, err)

	assert.Equal(t, "2024-03", resp.Month)
	assert.Equal(t, "Cook at home twice a week.", resp.Advice)
	assert.Equal(t, "2024-03-15T12:00:00Z", resp.GeneratedAt)
	assert.Contains(t, gotPrompt, "Total spent: ₹900.00")
	assert.Contains(t, gotPrompt, "- Food [warning]: spent ₹900.00 of ₹1000.00 (90.0%)")
}

func TestAdvisorService_GenerateError(t *testing.T) {
	f := newFixture()
	boom := errors.New("upstream 502")
	s := &AdvisorService{
		analyzer: f.analysisService(),
		logger:   zap.NewNop(),
		now:      time.Now,
		generate: func(context.Context, string) (string, error) { return "", boom },
	}

	_, err := s.Advise(context.Background(), f.userID)
	assert.ErrorIs(t, err, boom)
}

func TestBuildAdvicePromptEmptyMonth(t *testing.T) {
	a := analysis.Analyze(nil, nil, fixedNow)
	prompt := buildAdvicePrompt(a, []string{"Great job!"}, "$")

	assert.Contains(t, prompt, "Month: 2024-03")
	assert.Contains(t, prompt, "Top category: No expenses")
	assert.Contains(t, prompt, "- Great job!")
	assert.NotContains(t, prompt, "Budget alerts")
}
