package utils

import "github.com/gofiber/fiber/v2"

// ErrorResponse creates a standardized error response
func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	response := fiber.Map{
		"success": false,
		"error":   message,
	}
	if err != nil {
		response["details"] = err.Error()
	}
	return c.Status(status).JSON(response)
}

// MessageResponse creates a standardized success message response
func MessageResponse(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{
		"message": message,
	})
}
