package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// permissionChecker es el contrato que necesitan los middlewares de autorización.
// Lo implementa *authz.PermissionService; el uso de interfaz evita el import circular.
type permissionChecker interface {
	EnsureUser(ctx context.Context, userID string) (*entity.User, error)
	Authorize(ctx context.Context, userID, resource string, action entity.Action) error
}

// RequireUser exige que el usuario del token siga existiendo. Debe usarse DESPUÉS de AuthMiddleware.
//
//   - 401 → sin identidad o usuario inexistente.
//   - 500 → fallo del almacén.
func RequireUser(checker permissionChecker, log *logger.Logger, opts ...MiddlewareOption) fiber.Handler {
	cfg := buildConfig(opts)
	return func(c *fiber.Ctx) error {
		id, ok := IdentityFrom(c)
		if !ok {
			cfg.metrics.AuthDecision("user", "no_identity")
			return errorJSON(c, fiber.StatusUnauthorized, CodeUnauthorized, "no autenticado")
		}
		if _, err := checker.EnsureUser(c.UserContext(), id.UserID); err != nil {
			return denyOrFail(c, log, cfg, "user", id.UserID, err)
		}
		cfg.metrics.AuthDecision("user", "ok")
		return c.Next()
	}
}

// RequirePermission exige que algún rol del usuario conceda action sobre resource.
// Debe usarse DESPUÉS de AuthMiddleware.
//
//   - 401 → sin identidad o usuario inexistente.
//   - 403 → ningún rol concede el permiso.
//   - 500 → fallo del almacén (nunca se traduce a 401/403).
func RequirePermission(checker permissionChecker, log *logger.Logger, resource string, action entity.Action, opts ...MiddlewareOption) fiber.Handler {
	cfg := buildConfig(opts)
	return func(c *fiber.Ctx) error {
		id, ok := IdentityFrom(c)
		if !ok {
			cfg.metrics.AuthDecision("permission", "no_identity")
			return errorJSON(c, fiber.StatusUnauthorized, CodeUnauthorized, "no autenticado")
		}
		if err := checker.Authorize(c.UserContext(), id.UserID, resource, action); err != nil {
			return denyOrFail(c, log, cfg, "permission", id.UserID, err)
		}
		cfg.metrics.AuthDecision("permission", "ok")
		return c.Next()
	}
}

func denyOrFail(c *fiber.Ctx, log *logger.Logger, cfg middlewareConfig, stage, userID string, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		cfg.metrics.AuthDecision(stage, "unknown_user")
		log.Warn().Str("user_id", userID).Msg("token válido de un usuario inexistente")
		return errorJSON(c, fiber.StatusUnauthorized, CodeUnauthorized, "usuario no encontrado")
	case errors.Is(err, domain.ErrForbidden):
		cfg.metrics.AuthDecision(stage, "forbidden")
		log.Debug().Err(err).Str("user_id", userID).Msg("permiso denegado")
		return errorJSON(c, fiber.StatusForbidden, CodeForbidden, "acceso denegado")
	default:
		cfg.metrics.AuthDecision(stage, "error")
		return respondError(c, log, err)
	}
}
