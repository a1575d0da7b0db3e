package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/kardex-api/internal/application/auth"
	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/application/usecase"
	"github.com/jhoicas/kardex-api/internal/domain/kardex"
	infrapdf "github.com/jhoicas/kardex-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/kardex-api/internal/interfaces/http"
	"github.com/jhoicas/kardex-api/pkg/config"
	"github.com/jhoicas/kardex-api/pkg/logger"
	"github.com/jhoicas/kardex-api/pkg/metrics"
)

const devJWTSecret = "kardex-dev-secret"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío, se usa un secreto de desarrollo")
		cfg.JWT.Secret = devJWTSecret
	}

	defaultMethod, err := kardex.ParseMethod(cfg.Valuation.DefaultMethod)
	if err != nil {
		log.Fatal().Str("method", cfg.Valuation.DefaultMethod).Msg("DEFAULT_METHOD inválido")
	}

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén")
	}
	defer store.close()

	m := metrics.New(cfg.App.Name)

	authUC := auth.NewAuthUseCase(store.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	created, err := authUC.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password)
	if err != nil {
		log.Fatal().Err(err).Msg("crear administrador inicial")
	}
	if created {
		log.Info().Str("email", cfg.Admin.Email).Msg("administrador inicial creado")
	}

	queryUC := inventory.NewQueryUseCase(store.transactions, store.products, m)
	registerUC := inventory.NewRegisterTransactionUseCase(store.txRunner, store.products, log, m)
	replenishmentUC := inventory.NewReplenishmentUseCase(store.transactions, store.products)
	reportUC := inventory.NewReportUseCase(queryUC, store.products, store.categories, infrapdf.NewMarotoValuationGenerator())
	categoryUC := usecase.NewCategoryUseCase(store.categories, store.products)
	productUC := usecase.NewProductUseCase(store.products, store.categories, store.transactions)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.HTTP.CORSOrigins}))
	app.Use(m.Middleware())
	app.Use(httpRouter.RequestLogger(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Driver})
	})
	app.Get("/metrics", m.FiberHandler())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:              authUC,
		UserUC:              usecase.NewUserUseCase(store.users),
		CategoryUC:          categoryUC,
		ProductUC:           productUC,
		RegisterTransaction: registerUC,
		Query:               queryUC,
		Replenishment:       replenishmentUC,
		Report:              reportUC,
		DefaultMethod:       defaultMethod,
		JWTSecret:           cfg.JWT.Secret,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
