package handlers

import (
	"context"
	"errors"

	"spendwise/internal/analysis"
	"spendwise/internal/dto"
	"spendwise/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AnalysisService interface {
	Analyze(ctx context.Context, userID uuid.UUID) (*dto.AnalysisResponse, error)
	Insights(ctx context.Context, userID uuid.UUID) (*analysis.InsightReport, error)
}

type Advisor interface {
	Advise(ctx context.Context, userID uuid.UUID) (*dto.AdviceResponse, error)
}

type AnalysisHandler struct {
	analysisService AnalysisService
	advisor         Advisor
	logger          *zap.Logger
}

func NewAnalysisHandler(analysisService AnalysisService, advisor Advisor, logger *zap.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		advisor:         advisor,
		logger:          logger,
	}
}

// GetAnalysis godoc
// @Summary Current month analysis
// @Description Totals, category breakdown, payment methods, last 30 days and budget alerts, with suggestions
// @Tags analysis
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.AnalysisResponse
// @Router /api/v1/analysis [get]
func (h *AnalysisHandler) GetAnalysis(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	resp, err := h.analysisService.Analyze(c.UserContext(), userID)
	if err != nil {
		h.logger.Error("Analysis failed", zap.String("user_id", userID.String()), zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Analysis failed")
	}

	return c.JSON(resp)
}

// GetInsights godoc
// @Summary Smart insights
// @Description Heuristic suggestions over the full expense history
// @Tags analysis
// @Produce json
// @Security Bearer
// @Success 200 {object} analysis.InsightReport
// @Router /api/v1/insights [get]
func (h *AnalysisHandler) GetInsights(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	report, err := h.analysisService.Insights(c.UserContext(), userID)
	if err != nil {
		h.logger.Error("Insights failed", zap.String("user_id", userID.String()), zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Insights failed")
	}

	return c.JSON(report)
}

// GetAdvice godoc
// @Summary LLM advice
// @Description Free-form advice from GigaChat on the current month
// @Tags analysis
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.AdviceResponse
// @Failure 502 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/v1/advice [get]
func (h *AnalysisHandler) GetAdvice(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	resp, err := h.advisor.Advise(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, service.ErrAdvisorDisabled) {
			return errorJSON(c, fiber.StatusServiceUnavailable, "Advisor is not configured")
		}
		h.logger.Error("Advice generation failed", zap.String("user_id", userID.String()), zap.Error(err))
		return errorJSON(c, fiber.StatusBadGateway, "Advice generation failed")
	}

	return c.JSON(resp)
}
