package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/auth"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// pinger verifica la conexión al almacén para /health.
type pinger interface {
	Ping(ctx context.Context) error
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	RoleUC      *usecase.RoleUseCase
	ProductUC   *usecase.ProductUseCase
	Permissions permissionChecker
	Tokens      tokenValidator
	Store       pinger   // opcional
	Metrics     *Metrics // opcional
	Logger      *logger.Logger
	ServiceName string
}

// Router registra las rutas de la API. Las rutas públicas no pasan por AuthMiddleware.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	mw := []MiddlewareOption{WithMetrics(deps.Metrics)}
	identity := AuthMiddleware(deps.Tokens, log, mw...)

	app.Get("/health", healthHandler(deps.Store, deps.ServiceName))
	if deps.Metrics != nil {
		app.Get("/metrics", deps.Metrics.Handler())
	}

	// Users
	users := app.Group("/users")
	authHandler := NewAuthHandler(deps.AuthUC, log)
	users.Post("/register", authHandler.Register)
	users.Post("/login", authHandler.Login)
	users.Get("/me", identity, RequireUser(deps.Permissions, log, mw...), authHandler.Me)

	// Roles
	roles := app.Group("/roles")
	roleHandler := NewRoleHandler(deps.RoleUC, log)
	roles.Get("/create-admin", roleHandler.CreateAdmin)
	roles.Post("/create",
		identity,
		RequirePermission(deps.Permissions, log, entity.ResourceRoles, entity.ActionCreate, mw...),
		roleHandler.Create,
	)
	roles.Post("/assign",
		identity,
		RequirePermission(deps.Permissions, log, entity.ResourceRoles, entity.ActionUpdate, mw...),
		roleHandler.Assign,
	)

	// Products (público)
	products := app.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, log)
	products.Post("/create", productHandler.Create)
}

func healthHandler(store pinger, service string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if store != nil {
			if err := store.Ping(c.UserContext()); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.HealthResponse{Status: "unavailable", Service: service})
			}
		}
		return c.JSON(dto.HealthResponse{Status: "ok", Service: service})
	}
}
