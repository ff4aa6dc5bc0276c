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

type ExpenseService interface {
	Create(ctx context.Context, userID uuid.UUID, req *dto.CreateExpenseRequest) (*models.Expense, error)
	List(ctx context.Context, userID uuid.UUID, q *dto.ExpenseListQuery) ([]models.Expense, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*models.Expense, error)
	Update(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateExpenseRequest) (*models.Expense, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type ExpenseHandler struct {
	expenseService ExpenseService
	logger         *zap.Logger
}

func NewExpenseHandler(expenseService ExpenseService, logger *zap.Logger) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
		logger:         logger,
	}
}

// ListExpenses godoc
// @Summary List expenses
// @Description List the user's expenses, newest first
// @Tags expenses
// @Produce json
// @Security Bearer
// @Param month query string false "Month filter (YYYY-MM)"
// @Param category query string false "Category filter"
// @Param payment_method query string false "Payment method filter"
// @Param search query string false "Case-insensitive match on notes or category"
// @Success 200 {array} dto.ExpenseResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/expenses [get]
func (h *ExpenseHandler) ListExpenses(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	var q dto.ExpenseListQuery
	if err := c.QueryParser(&q); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid query parameters")
	}

	expenses, err := h.expenseService.List(c.UserContext(), userID, &q)
	if err != nil {
		if ok, werr := validationFailed(c, err); ok {
			return werr
		}
		h.logger.Error("Failed to list expenses", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to list expenses")
	}

	return c.JSON(dto.NewExpenseResponses(expenses))
}

// CreateExpense godoc
// @Summary Record an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.CreateExpenseRequest true "Expense"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/expenses [post]
func (h *ExpenseHandler) CreateExpense(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	var req dto.CreateExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	e, err := h.expenseService.Create(c.UserContext(), userID, &req)
	if err != nil {
		if ok, werr := validationFailed(c, err); ok {
			return werr
		}
		h.logger.Error("Failed to create expense", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to create expense")
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewExpenseResponse(e))
}

// GetExpense godoc
// @Summary Get an expense
// @Tags expenses
// @Produce json
// @Security Bearer
// @Param id path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	id, ok := getPathID(c)
	if !ok {
		return expenseNotFound(c)
	}

	e, err := h.expenseService.Get(c.UserContext(), userID, id)
	if err != nil {
		return h.fail(c, err, "Failed to load expense")
	}

	return c.JSON(dto.NewExpenseResponse(e))
}

// UpdateExpense godoc
// @Summary Update an expense
// @Description Partial update: omitted fields keep their value
// @Tags expenses
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Expense ID"
// @Param request body dto.UpdateExpenseRequest true "Fields to change"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	id, ok := getPathID(c)
	if !ok {
		return expenseNotFound(c)
	}

	var req dto.UpdateExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	e, err := h.expenseService.Update(c.UserContext(), userID, id, &req)
	if err != nil {
		return h.fail(c, err, "Failed to update expense")
	}

	return c.JSON(dto.NewExpenseResponse(e))
}

// DeleteExpense godoc
// @Summary Delete an expense
// @Tags expenses
// @Security Bearer
// @Param id path string true "Expense ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}
	id, ok := getPathID(c)
	if !ok {
		return expenseNotFound(c)
	}

	if err := h.expenseService.Delete(c.UserContext(), userID, id); err != nil {
		return h.fail(c, err, "Failed to delete expense")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ExpenseHandler) fail(c *fiber.Ctx, err error, message string) error {
	if ok, werr := validationFailed(c, err); ok {
		return werr
	}
	if errors.Is(err, service.ErrExpenseNotFound) {
		return expenseNotFound(c)
	}
	h.logger.Error(message, zap.Error(err))
	return errorJSON(c, fiber.StatusInternalServerError, message)
}

func expenseNotFound(c *fiber.Ctx) error {
	return errorJSON(c, fiber.StatusNotFound, "Expense not found")
}
