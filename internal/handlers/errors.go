package handlers

import (
	"log"
	"net/http"

	"marketplace/internal/apperrors"

	"github.com/gofiber/fiber/v2"
)

// respondError maps a service error to the JSON error response. Known
// AppErrors keep their stable code and message; anything else is reported
// as uncategorized without leaking internal detail, but logged for
// operator visibility.
func respondError(c *fiber.Ctx, err error) error {
	appErr := apperrors.From(err)
	if appErr == apperrors.ErrUncategorized {
		log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	}
	status := appErr.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return c.Status(status).JSON(fiber.Map{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}
