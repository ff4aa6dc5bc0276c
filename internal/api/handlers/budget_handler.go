package handlers

import (
	"context"
	"errors"

	"spendwise/internal/dto"
	"spendwise/internal/models"
	"spendwise/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BudgetService interface {
	Create(ctx context.Context, userID uuid.UUID, req *dto.CreateBudgetRequest) (*models.Budget, error)
	List(ctx context.Context, userID uuid.UUID, month string) ([]models.Budget, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*models.Budget, error)
	Update(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateBudgetRequest) (*models.Budget, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type BudgetHandler struct {
	budgetService BudgetService
	logger        *zap.Logger
}

func NewBudgetHandler(budgetService BudgetService, logger *zap.Logger) *BudgetHandler {
	return &BudgetHandler{
		budgetService: budgetService,
		logger:        logger,
	}
}

// ListBudgets godoc
// @Summary List budgets
// @Tags budgets
// @Produce json
// @Security Bearer
// @Param month query string false "Month filter (YYYY-MM)"
// @Success 200 {array} dto.BudgetResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/budgets [get]
func (h *BudgetHandler) ListBudgets(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	budgets, err := h.budgetService.List(c.UserContext(), userID, c.Query("month"))
	if err != nil {
		return h.fail(c, err, "Failed to list budgets")
	}

	return c.JSON(dto.NewBudgetResponses(budgets))
}

// CreateBudget godoc
// @Summary Set a monthly budget
// @Tags budgets
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.CreateBudgetRequest true "Budget"
// @Success 201 {object} dto.BudgetResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/v1/budgets [post]
func (h *BudgetHandler) CreateBudget(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	var req dto.CreateBudgetRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	b, err := h.budgetService.Create(c.UserContext(), userID, &req)
	if err != nil {
		return h.fail(c, err, "Failed to create budget")
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewBudgetResponse(b))
}

// GetBudget godoc
// @Summary Get a budget
// @Tags budgets
// @Produce json
// @Security Bearer
// @Param id path string true "Budget ID"
// @Success 200 {object} dto.BudgetResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/budgets/{id} [get]
func (h *BudgetHandler) GetBudget(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	id, ok := getPathID(c)
	if !ok {
		return budgetNotFound(c)
	}

	b, err := h.budgetService.Get(c.UserContext(), userID, id)
	if err != nil {
		return h.fail(c, err, "Failed to load budget")
	}

	return c.JSON(dto.NewBudgetResponse(b))
}

// UpdateBudget godoc
// @Summary Update a budget
// @Description Partial update: omitted fields keep their value
// @Tags budgets
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Budget ID"
// @Param request body dto.UpdateBudgetRequest true "Fields to change"
// @Success 200 {object} dto.BudgetResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/v1/budgets/{id} [put]
func (h *BudgetHandler) UpdateBudget(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	id, ok := getPathID(c)
	if !ok {
		return budgetNotFound(c)
	}

	var req dto.UpdateBudgetRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	b, err := h.budgetService.Update(c.UserContext(), userID, id, &req)
	if err != nil {
		return h.fail(c, err, "Failed to update budget")
	}

	return c.JSON(dto.NewBudgetResponse(b))
}

// DeleteBudget godoc
// @Summary Delete a budget
// @Tags budgets
// @Security Bearer
// @Param id path string true "Budget ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/budgets/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	id, ok := getPathID(c)
	if !ok {
		return budgetNotFound(c)
	}

	if err := h.budgetService.Delete(c.UserContext(), userID, id); err != nil {
		return h.fail(c, err, "Failed to delete budget")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *BudgetHandler) fail(c *fiber.Ctx, err error, message string) error {
	if ok, werr := validationFailed(c, err); ok {
		return werr
	}
	switch {
	case errors.Is(err, service.ErrBudgetNotFound):
		return budgetNotFound(c)
	case errors.Is(err, service.ErrBudgetExists):
		return errorJSON(c, fiber.StatusConflict, "Budget already exists for this category and month")
	}
	h.logger.Error(message, zap.Error(err))
	return errorJSON(c, fiber.StatusInternalServerError, message)
}

func budgetNotFound(c *fiber.Ctx) error {
	return errorJSON(c, fiber.StatusNotFound, "Budget not found")
}
