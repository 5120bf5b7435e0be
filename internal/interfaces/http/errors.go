package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/borgia-ae/borgia-api/internal/application/dto"
	"github.com/borgia-ae/borgia-api/internal/domain"
	"github.com/borgia-ae/borgia-api/internal/domain/authz"
	"github.com/borgia-ae/borgia-api/pkg/logger"
)

// ContextBuilder reconstruye la navegación de las respuestas de error.
// Lo implementa *workboard.ErrorContextBuilder.
type ContextBuilder interface {
	Build(sub authz.Subject, path string) *dto.ErrorContext
}

type errorMapping struct {
	err    error
	status int
	code   string
}

// El orden importa: los errores más específicos primero.
var errorMappings = []errorMapping{
	{domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{domain.ErrSessionRevoked, fiber.StatusUnauthorized, "SESSION_REVOKED"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrUsernameExists, fiber.StatusConflict, "USERNAME_EXISTS"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrInsufficientBalance, fiber.StatusConflict, "INSUFFICIENT_BALANCE"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
}

// statusFor traduce un error a (status, código). Los errores no mapeados son 500.
func statusFor(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return m.status, m.code
		}
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		switch fe.Code {
		case fiber.StatusNotFound:
			return fe.Code, "NOT_FOUND"
		case fiber.StatusMethodNotAllowed:
			return fe.Code, "METHOD_NOT_ALLOWED"
		case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
			return fe.Code, "INVALID_BODY"
		}
		return fe.Code, "HTTP_ERROR"
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// ErrorHandler handler global de Fiber: mapea errores de dominio a ErrorResponse y añade
// el contexto de navegación en 403, 404 y 500. builder puede ser nil.
func ErrorHandler(builder ContextBuilder, log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, code := statusFor(err)
		body := dto.ErrorResponse{Code: code, Message: err.Error()}

		switch status {
		case fiber.StatusInternalServerError:
			log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
			body.Message = "error interno"
			fallthrough
		case fiber.StatusForbidden, fiber.StatusNotFound:
			if builder != nil {
				body.Context = builder.Build(GetSubject(c), c.Path())
			}
		}
		return c.Status(status).JSON(body)
	}
}
