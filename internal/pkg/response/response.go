package response

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorBody is the error JSON shape every endpoint shares.
type ErrorBody struct {
	Error string `json:"error"`
}

// JSON sends v with the given status code.
func JSON(c *fiber.Ctx, statusCode int, v interface{}) error {
	return c.Status(statusCode).JSON(v)
}

// OK sends a 200 with v as the body.
func OK(c *fiber.Ctx, v interface{}) error {
	return JSON(c, fiber.StatusOK, v)
}

// Error sends {"error": message} with the given status code.
func Error(c *fiber.Ctx, message string, statusCode int) error {
	return JSON(c, statusCode, ErrorBody{Error: message})
}

// Forbidden sends 403 with the same shape as other errors.
func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, message, fiber.StatusForbidden)
}
