package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/jhoicas/Tienda-api/internal/application/auth"
	"github.com/jhoicas/Tienda-api/internal/application/authz"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/mongodb"
	httpRouter "github.com/jhoicas/Tienda-api/internal/interfaces/http"
	"github.com/jhoicas/Tienda-api/pkg/config"
	"github.com/jhoicas/Tienda-api/pkg/jwt"
	"github.com/jhoicas/Tienda-api/pkg/logger"
	"github.com/jhoicas/Tienda-api/pkg/password"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().Str("env", cfg.App.Env).Str("app", cfg.App.Name).Msg("iniciando aplicación")

	tokens, err := jwt.NewService([]byte(cfg.JWT.Secret), jwt.WithIssuer(cfg.JWT.Issuer))
	if err != nil {
		log.Fatal().Err(err).Msg("servicio de tokens")
	}

	store := connectStore(cfg, log)
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("cerrar MongoDB")
		}
	}()

	userRepo := mongodb.NewUserRepository(store)
	roleRepo := mongodb.NewRoleRepository(store)
	productRepo := mongodb.NewProductRepository(store)

	hashPool := auth.NewHashPool(password.NewHasher(password.DefaultParams), cfg.Hashing.Concurrency)
	authUC := auth.NewAuthUseCase(userRepo, hashPool, tokens, log)
	roleUC := usecase.NewRoleUseCase(roleRepo, userRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	permissions := authz.NewPermissionService(userRepo, roleRepo)
	metrics := httpRouter.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(httpRouter.RequestLogger(log))
	app.Use(metrics.Middleware())

	// Swagger UI: http://localhost:8000/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Tienda API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger no disponible")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		RoleUC:      roleUC,
		ProductUC:   productUC,
		Permissions: permissions,
		Tokens:      tokens,
		Store:       store,
		Metrics:     metrics,
		Logger:      log,
		ServiceName: cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// connectStore abre la conexión y crea los índices únicos. Cualquier fallo es fatal.
func connectStore(cfg *config.Config, log *logger.Logger) *mongodb.Store {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	store, err := mongodb.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a MongoDB")
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("índices de MongoDB")
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("MongoDB conectado")
	return store
}
