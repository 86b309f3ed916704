package serverutils

import (
	"errors"

	"noter-be/internal/pkg/apperror"
	"noter-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler maps typed errors onto the response envelope.
// Unknown errors are logged and reported as a generic 500.
func ErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			if appErr.Kind == apperror.KindValidation && len(appErr.Fields) > 0 {
				return ctx.Status(fiber.StatusBadRequest).JSON(ValidationErrorResponse(appErr.Message, appErr.Fields))
			}
			return ctx.Status(appErr.Status()).JSON(ErrorResponse(appErr.Status(), appErr.Message))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		log.Error("HTTP", "Unhandled error", map[string]interface{}{
			"method": ctx.Method(),
			"path":   ctx.Path(),
			"error":  err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, "Internal server error"))
	}
}
