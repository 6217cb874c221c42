package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/warehouse-monitor/internal/application/usecase"
	"github.com/jhoicas/warehouse-monitor/internal/infrastructure/kafka"
	"github.com/jhoicas/warehouse-monitor/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/warehouse-monitor/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/warehouse-monitor/internal/interfaces/http"
	"github.com/jhoicas/warehouse-monitor/pkg/config"
	"github.com/jhoicas/warehouse-monitor/pkg/logger"
)

// apiPoolConns conexiones del pool para la API de lectura.
const apiPoolConns = 10

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando API")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB, apiPoolConns)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.CreateSchema {
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("preparar esquema")
		}
		log.Warn().Msg("esquema sincronizado desde el código; en producción lo gestionan las migraciones")
	}

	cache := infraredis.NewCacheStore(cfg.Redis)
	defer func() {
		if err := cache.Close(); err != nil {
			log.Warn().Err(err).Msg("cerrar redis")
		}
	}()

	producer := kafka.NewProducer(cfg.Kafka, log)
	if err := producer.Connect(ctx); err != nil {
		log.Fatal().Err(err).Msg("conexión al broker")
	}
	defer producer.Disconnect()

	eventRepo := postgres.NewMovementEventRepository(pool)
	stockUC := usecase.NewStockUseCase(eventRepo, log)
	movementUC := usecase.NewMovementUseCase(eventRepo)
	ingestUC := usecase.NewIngestUseCase(eventRepo, cache, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StockUC:    stockUC,
		MovementUC: movementUC,
		IngestUC:   ingestUC,
		Publisher:  producer,
		Cache:      cache,
		CacheTTL:   cfg.Redis.TTL,
		Topic:      cfg.Kafka.Topic,
		Log:        log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP detenido")
			stop()
		}
	}()
	log.Info().Str("addr", cfg.HTTP.Addr()).Msg("API escuchando")

	<-ctx.Done()
	log.Info().Msg("apagando API")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Warn().Err(err).Msg("apagado del servidor HTTP")
	}
	log.Info().Msg("apagado completo")
}
