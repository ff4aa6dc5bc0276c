package handlers

import (
	"errors"

	"spendwise/internal/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func getUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userIDStr, ok := c.Locals("userID").(string)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, fiber.ErrUnauthorized
	}

	return userID, nil
}

// getPathID parses the ":id" route parameter. Malformed IDs are reported
// as not found, like IDs that belong to another user.
func getPathID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: message})
}

func invalidBody(c *fiber.Ctx) error {
	return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
}

// validationFailed writes a 400 when err is a validation error.
func validationFailed(c *fiber.Ctx, err error) (bool, error) {
	var verr *dto.ValidationError
	if !errors.As(err, &verr) {
		return false, nil
	}
	return true, errorJSON(c, fiber.StatusBadRequest, verr.Error())
}
