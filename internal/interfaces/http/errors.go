package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/medisupply-api/internal/application/dto"
	"github.com/jhoicas/medisupply-api/internal/domain"
	"github.com/jhoicas/medisupply-api/pkg/logger"
)

// statusFor traduce la categoría de un error de dominio a status HTTP y código.
func statusFor(kind error) (int, string) {
	switch {
	case errors.Is(kind, domain.ErrBadRequest):
		return fiber.StatusBadRequest, "BAD_REQUEST"
	case errors.Is(kind, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(kind, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(kind, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(kind, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(kind, domain.ErrUnprocessable):
		return fiber.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY"
	case errors.Is(kind, domain.ErrTooManyRequests):
		return fiber.StatusTooManyRequests, "TOO_MANY_REQUESTS"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	}
	if status >= 500 {
		return "INTERNAL"
	}
	return "BAD_REQUEST"
}

// ErrorHandler único punto donde los errores se convierten en respuesta HTTP.
// Los errores no tipados se registran y se responden como 500 sin exponer el detalle.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ValidationErrorResponse{
				Code:    "VALIDATION_ERROR",
				Message: "Validation Error",
				Detail:  verr.Details,
			})
		}
		if derr, ok := domain.AsError(err); ok {
			status, code := statusFor(derr.Kind)
			if status == fiber.StatusUnauthorized {
				c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
			}
			return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: derr.Message})
		}
		var ferr *fiber.Error
		if errors.As(err, &ferr) {
			return c.Status(ferr.Code).JSON(dto.ErrorResponse{Code: codeForStatus(ferr.Code), Message: ferr.Message})
		}

		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("request_id", requestID(c)).
			Msg("error no controlado")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "Internal Server Error"})
	}
}

// statusForError status que el ErrorHandler usará para err.
func statusForError(err error) (int, string) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return fiber.StatusUnprocessableEntity, "VALIDATION_ERROR"
	}
	if derr, ok := domain.AsError(err); ok {
		return statusFor(derr.Kind)
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}
