package handlers

import (
	"context"

	"spendwise/internal/dto"
	"spendwise/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReportService interface {
	Generate(ctx context.Context, userID uuid.UUID, month string) (*models.MonthlyReport, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.MonthlyReport, error)
}

type ReportHandler struct {
	reportService ReportService
	logger        *zap.Logger
}

func NewReportHandler(reportService ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// GenerateReport godoc
// @Summary Generate a monthly report
// @Description Snapshot a month's totals and overbudget categories, replacing any earlier snapshot
// @Tags reports
// @Produce json
// @Security Bearer
// @Param month path string true "Month (YYYY-MM)"
// @Success 200 {object} dto.ReportResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/reports/{month} [post]
func (h *ReportHandler) GenerateReport(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	report, err := h.reportService.Generate(c.UserContext(), userID, c.Params("month"))
	if err != nil {
		if ok, werr := validationFailed(c, err); ok {
			return werr
		}
		h.logger.Error("Report generation failed", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Report generation failed")
	}

	return c.JSON(dto.NewReportResponse(report))
}

// ListReports godoc
// @Summary List monthly reports
// @Tags reports
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.ReportResponse
// @Router /api/v1/reports [get]
func (h *ReportHandler) ListReports(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	reports, err := h.reportService.List(c.UserContext(), userID)
	if err != nil {
		h.logger.Error("Failed to list reports", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to list reports")
	}

	return c.JSON(dto.NewReportResponses(reports))
}
