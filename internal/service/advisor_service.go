package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"spendwise/internal/analysis"
	"spendwise/internal/dto"
	"spendwise/pkg/config"

	"github.com/Role1776/gigago"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrAdvisorDisabled = errors.New("advisor is not configured")

const advisorModel = "GigaChat"

// Analyzer produces the current-month analysis the advisor reasons about.
type Analyzer interface {
	Analyze(ctx context.Context, userID uuid.UUID) (*dto.AnalysisResponse, error)
}

type generateFunc func(ctx context.Context, prompt string) (string, error)

// AdvisorService asks GigaChat for free-form advice on top of the rule-based
// suggestions. Without an API key every call returns ErrAdvisorDisabled.
type AdvisorService struct {
	client   *gigago.Client
	generate generateFunc
	analyzer Analyzer
	currency string
	logger   *zap.Logger
	now      func() time.Time
}

func buildSystemInstruction() string {
	return `You are a careful personal finance coach. You receive a summary of one user's spending for the current month: totals by category and payment method, daily spend for the last 30 days, budget alerts and a list of rule-based suggestions.

Rules:
- Base every statement on the numbers given. Never invent transactions or amounts.
- Give 3 to 5 short, concrete actions, most impactful first.
- Mention a category by name when you reference it.
- Amounts use the currency symbol given in the summary.
- Plain text only, one action per line, no markdown headings.`
}

func NewAdvisorService(ctx context.Context, cfg *config.GigaChatConfig, analyzer Analyzer, currency string, logger *zap.Logger) (*AdvisorService, error) {
	s := &AdvisorService{
		analyzer: analyzer,
		currency: currency,
		logger:   logger,
		now:      time.Now,
	}
	if s.currency == "" {
		s.currency = analysis.DefaultCurrencySymbol
	}
	if !cfg.Enabled() {
		logger.Info("GigaChat API key not set, advisor disabled")
		return s, nil
	}

	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	model := client.GenerativeModel(advisorModel)
	model.SystemInstruction = buildSystemInstruction()
	model.Temperature = 0.3

	s.client = client
	s.generate = func(ctx context.Context, prompt string) (string, error) {
		messages := []gigago.Message{
			{Role: gigago.RoleUser, Content: prompt},
		}

		resp, err := model.Generate(ctx, messages)
		if err != nil {
			return "", fmt.Errorf("failed to generate response: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("no response from LLM")
		}
		return resp.Choices[0].Message.Content, nil
	}

	logger.Info("Using GigaChat model", zap.String("model", advisorModel))
	return s, nil
}

func (s *AdvisorService) Enabled() bool {
	return s.generate != nil
}

// Advise analyzes the user's month and asks the model for advice on it.
func (s *AdvisorService) Advise(ctx context.Context, userID uuid.UUID) (*dto.AdviceResponse, error) {
	if !s.Enabled() {
		return nil, ErrAdvisorDisabled
	}

	result, err := s.analyzer.Analyze(ctx, userID)
	if err != nil {
		return nil, err
	}

	prompt := buildAdvicePrompt(result.Analysis, result.Suggestions, s.currency)
	advice, err := s.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	advice = strings.TrimSpace(sanitizeUTF8(advice))

	s.logger.Info("Advice generated",
		zap.String("user_id", userID.String()),
		zap.Int("prompt_length", len(prompt)),
		zap.Int("advice_length", len(advice)),
	)

	return &dto.AdviceResponse{
		Month:       result.Analysis.Month,
		Advice:      advice,
		GeneratedAt: s.now().Format(time.RFC3339),
	}, nil
}

func (s *AdvisorService) Close() error {
	if s.client != nil {
		s.client.Close()
	}
	return nil
}

func buildAdvicePrompt(a *analysis.ExpenseAnalysis, suggestions []string, currency string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Month: %s\n", a.Month)
	fmt.Fprintf(&b, "Currency: %s\n", currency)
	fmt.Fprintf(&b, "Total spent: %s%s\n", currency, a.TotalSpent.StringFixed(2))
	fmt.Fprintf(&b, "Top category: %s\n", a.TopCategory)

	if len(a.CategoryBreakdown) > 0 {
		b.WriteString("\nSpending by category:\n")
		for _, c := range a.CategoryBreakdown {
			fmt.Fprintf(&b, "- %s: %s%s (%.1f%%)\n", c.Category, currency, c.Amount.StringFixed(2), c.Percentage)
		}
	}

	if len(a.TopPaymentMethods) > 0 {
		b.WriteString("\nTop payment methods:\n")
		for _, m := range a.TopPaymentMethods {
			fmt.Fprintf(&b, "- %s: %s%s over %d payments\n", m.Method, currency, m.Amount.StringFixed(2), m.Count)
		}
	}

	if len(a.BudgetAlerts) > 0 {
		b.WriteString("\nBudget alerts:\n")
		for _, alert := range a.BudgetAlerts {
			fmt.Fprintf(&b, "- %s [%s]: spent %s%s of %s%s (%.1f%%)\n",
				alert.Category, alert.Level,
				currency, alert.Spent.StringFixed(2),
				currency, alert.Budget.StringFixed(2),
				alert.Percentage,
			)
		}
	}

	if len(a.DailySpending) > 0 {
		b.WriteString("\nDaily spending, last 30 days:\n")
		for _, d := range a.DailySpending {
			fmt.Fprintf(&b, "- %s: %s%s\n", d.Date, currency, d.Amount.StringFixed(2))
		}
	}

	if len(suggestions) > 0 {
		b.WriteString("\nRule-based suggestions already shown to the user:\n")
		for _, s := range suggestions {
			fmt.Fprintf(&b, "- %s\n", s)
		}
	}

	b.WriteString("\nGive your advice for the rest of this month.")
	return b.String()
}
