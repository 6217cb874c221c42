package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/warehouse-monitor/internal/application/dto"
	"github.com/jhoicas/warehouse-monitor/internal/domain"
	"github.com/jhoicas/warehouse-monitor/internal/domain/repository"
	"github.com/jhoicas/warehouse-monitor/pkg/logger"
)

// IngestUseCase es el event handler de la ingesta: escribe el evento en el log y, solo
// si la escritura entró, invalida las claves de caché de las dos vistas que el evento
// pudo tocar. No tiene estado propio: su única transición es el Append del store, que
// es todo-o-nada.
type IngestUseCase struct {
	events repository.MovementEventRepository
	cache  repository.CacheStore
	log    *logger.Logger
}

// NewIngestUseCase construye el caso de uso.
func NewIngestUseCase(events repository.MovementEventRepository, cache repository.CacheStore, log *logger.Logger) *IngestUseCase {
	return &IngestUseCase{events: events, cache: cache, log: log}
}

// HandleEnvelope persiste el evento del envelope (ya validado) de forma idempotente.
// Un duplicado devuelve un error que envuelve domain.ErrDuplicateMessageID o
// domain.ErrDuplicateMovementEvent con los identificadores ofensores; nunca crea fila.
// Un fallo de invalidación se degrada a warn: no falla la ingesta, no revierte la
// escritura y no se reintenta (el TTL acota la ventana de staleness).
func (uc *IngestUseCase) HandleEnvelope(ctx context.Context, env dto.Envelope) error {
	if err := uc.events.Append(ctx, env.ToEntity()); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateMessageID):
			return fmt.Errorf("mensaje %s ya ingerido: %w", env.ID, domain.ErrDuplicateMessageID)
		case errors.Is(err, domain.ErrDuplicateMovementEvent):
			return fmt.Errorf("evento %q para movement_id=%s ya registrado: %w",
				env.Data.Event, env.Data.MovementID, domain.ErrDuplicateMovementEvent)
		}
		return fmt.Errorf("persistir evento %s: %w", env.ID, err)
	}

	uc.invalidate(ctx, domain.StockCacheKey(env.Data.WarehouseID, env.Data.ProductID))
	uc.invalidate(ctx, domain.MovementCacheKey(env.Data.MovementID))
	return nil
}

func (uc *IngestUseCase) invalidate(ctx context.Context, key string) {
	if err := uc.cache.Clear(ctx, key); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("no se pudo invalidar la caché")
	}
}
