package http

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/pkg/jwt"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

const bearerPrefix = "Bearer "

// identityKey tipo privado: ningún otro paquete puede leer ni pisar la identidad en Locals.
type identityKey struct{}

// Identity identidad autenticada del request. Vive solo mientras dura el request.
type Identity struct {
	UserID    string
	Username  string
	ExpiresAt time.Time
}

// tokenValidator es el contrato mínimo que necesita el middleware. Lo implementa *jwt.Service.
type tokenValidator interface {
	Validate(token string) (*jwt.Claims, error)
}

// MiddlewareOption configura los middlewares de identidad y permisos.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	metrics *Metrics
}

// WithMetrics cuenta las decisiones en m.
func WithMetrics(m *Metrics) MiddlewareOption {
	return func(cfg *middlewareConfig) { cfg.metrics = m }
}

func buildConfig(opts []MiddlewareOption) middlewareConfig {
	var cfg middlewareConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// AuthMiddleware exige "Authorization: Bearer <token>", valida el token y guarda la Identity.
// Cualquier fallo responde 401 y corta la cadena.
func AuthMiddleware(tokens tokenValidator, log *logger.Logger, opts ...MiddlewareOption) fiber.Handler {
	cfg := buildConfig(opts)
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			cfg.metrics.AuthDecision("identity", "missing")
			return errorJSON(c, fiber.StatusUnauthorized, CodeMissingToken, "Authorization header requerido")
		}
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			cfg.metrics.AuthDecision("identity", "bad_scheme")
			return invalidToken(c, CodeInvalidToken, "formato: Bearer <token>")
		}
		tokenString := strings.TrimSpace(authHeader[len(bearerPrefix):])
		if tokenString == "" {
			cfg.metrics.AuthDecision("identity", "empty")
			return invalidToken(c, CodeInvalidToken, "token vacío")
		}

		claims, err := tokens.Validate(tokenString)
		if err != nil {
			log.Debug().Err(err).Str("path", c.Path()).Msg("token rechazado")
			if errors.Is(err, jwt.ErrTokenExpired) {
				cfg.metrics.AuthDecision("identity", "expired")
				return invalidToken(c, CodeTokenExpired, "token expirado")
			}
			cfg.metrics.AuthDecision("identity", "invalid")
			return invalidToken(c, CodeInvalidToken, "token inválido")
		}

		id := Identity{UserID: claims.UserID(), Username: claims.Username}
		if claims.ExpiresAt != nil {
			id.ExpiresAt = claims.ExpiresAt.Time
		}
		c.Locals(identityKey{}, id)
		cfg.metrics.AuthDecision("identity", "ok")
		return c.Next()
	}
}

func invalidToken(c *fiber.Ctx, code, msg string) error {
	c.Set(fiber.HeaderWWWAuthenticate, `Bearer error="invalid_token"`)
	return errorJSON(c, fiber.StatusUnauthorized, code, msg)
}

// IdentityFrom devuelve la identidad cargada por AuthMiddleware.
func IdentityFrom(c *fiber.Ctx) (Identity, bool) {
	id, ok := c.Locals(identityKey{}).(Identity)
	return id, ok
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	id, _ := IdentityFrom(c)
	return id.UserID
}
