package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/pkg/logger"
	"github.com/jhoicas/Tienda-api/pkg/validate"
)

// Códigos de error expuestos en dto.ErrorResponse.
const (
	CodeMissingToken       = "MISSING_TOKEN"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeEmailExists        = "EMAIL_EXISTS"
	CodeConflict           = "CONFLICT"
	CodeNotFound           = "NOT_FOUND"
	CodeInvalidBody        = "INVALID_BODY"
	CodeValidation         = "VALIDATION"
	CodeStoreTimeout       = "STORE_TIMEOUT"
	CodeInternal           = "INTERNAL"
)

func errorJSON(c *fiber.Ctx, status int, code, msg string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// respondError traduce errores de dominio a HTTP. El detalle interno solo va al log.
func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	var fields validate.Errors
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &fields):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    CodeValidation,
			Message: fields.Error(),
			Fields:  fields,
		})
	case errors.As(err, &verr):
		return errorJSON(c, fiber.StatusBadRequest, CodeValidation, verr.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		return errorJSON(c, fiber.StatusUnauthorized, CodeInvalidCredentials, "email o password incorrectos")
	case errors.Is(err, domain.ErrUnauthorized):
		return errorJSON(c, fiber.StatusUnauthorized, CodeUnauthorized, "no autorizado")
	case errors.Is(err, domain.ErrForbidden):
		return errorJSON(c, fiber.StatusForbidden, CodeForbidden, "acceso denegado")
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return errorJSON(c, fiber.StatusConflict, CodeEmailExists, "el email ya está registrado")
	case errors.Is(err, domain.ErrConflict):
		return errorJSON(c, fiber.StatusConflict, CodeConflict, conflictMessage(err))
	case errors.Is(err, domain.ErrNotFound):
		return errorJSON(c, fiber.StatusNotFound, CodeNotFound, notFoundMessage(err))
	case errors.Is(err, domain.ErrStoreTimeout):
		log.Error().Err(err).Str("path", c.Path()).Msg("timeout del almacén")
		return errorJSON(c, fiber.StatusInternalServerError, CodeStoreTimeout, "el almacén de datos no respondió a tiempo")
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("error interno")
		return errorJSON(c, fiber.StatusInternalServerError, CodeInternal, "error interno")
	}
}

func conflictMessage(err error) string {
	if errors.Is(err, domain.ErrRoleAlreadyExists) {
		return "el rol ya existe"
	}
	return "el recurso ya existe"
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return "usuario no encontrado"
	case errors.Is(err, domain.ErrRoleNotFound):
		return "rol no encontrado"
	default:
		return "recurso no encontrado"
	}
}

// parseBody decodifica el JSON y aplica las reglas `validate` del DTO.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return errBadBody
	}
	return validate.Struct(out)
}

var errBadBody = errors.New("cuerpo inválido")

// respondBodyError variante de respondError para errores de parseBody.
func respondBodyError(c *fiber.Ctx, log *logger.Logger, err error) error {
	if errors.Is(err, errBadBody) {
		return errorJSON(c, fiber.StatusBadRequest, CodeInvalidBody, "cuerpo JSON inválido")
	}
	return respondError(c, log, err)
}
