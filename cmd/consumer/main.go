package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/jhoicas/warehouse-monitor/internal/application/usecase"
	"github.com/jhoicas/warehouse-monitor/internal/infrastructure/kafka"
	"github.com/jhoicas/warehouse-monitor/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/warehouse-monitor/internal/infrastructure/redis"
	"github.com/jhoicas/warehouse-monitor/pkg/config"
	"github.com/jhoicas/warehouse-monitor/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	log.Info().
		Str("env", cfg.App.Env).
		Str("topic", cfg.Kafka.Topic).
		Str("group_id", cfg.Kafka.GroupID).
		Msg("iniciando consumer")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// El pool se dimensiona al máximo de despachos en vuelo: cada ingesta concurrente
	// puede necesitar una conexión a la vez.
	pool, err := postgres.NewPool(ctx, cfg.DB, int32(cfg.Kafka.MaxInflight))
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

	eventRepo := postgres.NewMovementEventRepository(pool)
	ingestUC := usecase.NewIngestUseCase(eventRepo, cache, log)

	consumer := kafka.NewConsumer(cfg.Kafka, log, ingestUC)
	if err := consumer.Run(ctx); err != nil && ctx.Err() == nil {
		// Broker inalcanzable o fallo de lectura: fail-fast, reinicia el supervisor.
		log.Fatal().Err(err).Msg("loop de ingesta terminado con error")
	}

	log.Info().Msg("apagado completo")
}
