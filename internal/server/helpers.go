package server

import (
	"errors"
	"log/slog"

	"readable/internal/middleware"
	"readable/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// statusForError maps an AppError code to its HTTP status.
func statusForError(err error) int {
	switch models.ErrorCode(err) {
	case models.CodeValidation, models.CodeInvalidCategory:
		return fiber.StatusBadRequest
	case models.CodeParentNotFound, models.CodeParentDeleted:
		return fiber.StatusForbidden
	case models.CodeDuplicateKey:
		return fiber.StatusConflict
	case models.CodeNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes err as a JSON error body with the matching status.
func respondError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, statusForError(err), err)
}

// paramCopy returns route param key detached from the request buffer, so it
// stays valid in spans and logs exported after the handler returns.
func paramCopy(c *fiber.Ctx, key string) string {
	return utils.CopyString(c.Params(key))
}

// parseBody decodes the JSON request body into out.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return models.NewValidationError("Invalid request body")
	}
	return nil
}

// errorHandler renders errors returned from handlers and middleware.
func errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(models.ErrorResponse{Error: fiberErr.Message})
	}

	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return respondError(c, err)
	}

	middleware.Logger.ErrorContext(c.UserContext(), "unhandled request error",
		slog.String("path", c.Path()),
		slog.String("error", err.Error()),
	)
	return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
}
