package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/taller-pro/taller-api/internal/application/inventario"
	"github.com/taller-pro/taller-api/internal/application/usecase"
	"github.com/taller-pro/taller-api/internal/infrastructure/postgres"
	httpRouter "github.com/taller-pro/taller-api/internal/interfaces/http"
	"github.com/taller-pro/taller-api/pkg/config"
	"github.com/taller-pro/taller-api/pkg/logger"
)

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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(cfg.DB); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	productoRepo := postgres.NewProductoRepository(pool)
	bodegaRepo := postgres.NewBodegaRepository(pool)
	invRepo := postgres.NewInventarioRepository(pool)
	movRepo := postgres.NewMovimientoRepository(pool)
	reservaRepo := postgres.NewReservaRepository(pool)
	transferRepo := postgres.NewTransferenciaRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	movimientoUC := inventario.NewMovimientoUseCase(txRunner, productoRepo, bodegaRepo)
	reservaUC := inventario.NewReservaUseCase(txRunner, productoRepo, bodegaRepo)
	transferenciaUC := inventario.NewTransferenciaUseCase(txRunner, productoRepo, bodegaRepo)
	consultaUC := inventario.NewConsultaUseCase(invRepo, movRepo, reservaRepo, transferRepo)
	productoUC := usecase.NewProductoUseCase(productoRepo)
	bodegaUC := usecase.NewBodegaUseCase(bodegaRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		MovimientoUC:    movimientoUC,
		ReservaUC:       reservaUC,
		TransferenciaUC: transferenciaUC,
		ConsultaUC:      consultaUC,
		ProductoUC:      productoUC,
		BodegaUC:        bodegaUC,
		JWTSecret:       cfg.JWT.Secret,
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
