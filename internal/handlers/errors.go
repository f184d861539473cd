// Package handlers exposes the entity services over HTTP with fiber.
package handlers

import (
	"errors"
	"fmt"

	"comercio/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// respondError maps service errors to status codes: validation 400, not
// found 404, duplicate 409, anything else 500.
func respondError(c *fiber.Ctx, err error, entity string) error {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"field":   ve.Field,
			"error":   ve.Message,
		})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("%s not found", entity),
		})
	case errors.Is(err, services.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": fmt.Sprintf("%s already exists", entity),
			"error":   err.Error(),
		})
	default:
		log.Error().Err(err).Str("entity", entity).Str("path", c.Path()).Msg("Request failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": fmt.Sprintf("Could not process %s", entity),
			"error":   err.Error(),
		})
	}
}

func badBody(c *fiber.Ctx, err error) error {
	log.Debug().Err(err).Str("path", c.Path()).Msg("Error parsing request body")
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}

// recordID reads the :id route parameter. ok is false after a 400 has
// been written.
func recordID(c *fiber.Ctx) (uint, bool, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": fmt.Sprintf("Invalid ID %q", c.Params("id")),
		})
	}
	return uint(id), true, nil
}

// guarded returns guards followed by h in a fresh slice.
func guarded(guards []fiber.Handler, h fiber.Handler) []fiber.Handler {
	out := make([]fiber.Handler, 0, len(guards)+1)
	out = append(out, guards...)
	return append(out, h)
}
