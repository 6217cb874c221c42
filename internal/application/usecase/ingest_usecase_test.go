package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-monitor/internal/application/dto"
	"github.com/jhoicas/warehouse-monitor/internal/application/usecase"
	"github.com/jhoicas/warehouse-monitor/internal/domain"
	"github.com/jhoicas/warehouse-monitor/pkg/logger"
)

func testEnvelope() dto.Envelope {
	return dto.Envelope{
		ID: uuid.New(),
		Data: dto.EventData{
			MovementID:  uuid.New(),
			WarehouseID: uuid.New(),
			ProductID:   uuid.New(),
			Timestamp:   time.Date(2025, 2, 18, 12, 0, 0, 0, time.UTC),
			Event:       "arrival",
			Quantity:    50,
		},
	}
}

// Ingesta exitosa: una fila escrita y las dos claves derivadas invalidadas.
func TestHandleEnvelope_EscribeEInvalida(t *testing.T) {
	repo := &fakeEventRepo{}
	cache := newFakeCache()
	uc := usecase.NewIngestUseCase(repo, cache, logger.Nop())

	env := testEnvelope()
	require.NoError(t, uc.HandleEnvelope(context.Background(), env))

	require.Len(t, repo.appended, 1)
	assert.Equal(t, env.ID, repo.appended[0].MessageID)
	assert.Equal(t, int64(50), repo.appended[0].Quantity)

	assert.ElementsMatch(t, []string{
		domain.StockCacheKey(env.Data.WarehouseID, env.Data.ProductID),
		domain.MovementCacheKey(env.Data.MovementID),
	}, cache.cleared)
}

// Entrega duplicada: se rechaza sin fila nueva y sin invalidar nada.
func TestHandleEnvelope_MessageIDDuplicado(t *testing.T) {
	repo := &fakeEventRepo{appendErr: domain.ErrDuplicateMessageID}
	cache := newFakeCache()
	uc := usecase.NewIngestUseCase(repo, cache, logger.Nop())

	env := testEnvelope()
	err := uc.HandleEnvelope(context.Background(), env)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicateMessageID)
	// El mensaje identifica al ofensor para poder diagnosticar a posteriori.
	assert.Contains(t, err.Error(), env.ID.String())
	assert.Empty(t, repo.appended)
	assert.Empty(t, cache.cleared)
}

func TestHandleEnvelope_EventoDuplicado(t *testing.T) {
	repo := &fakeEventRepo{appendErr: domain.ErrDuplicateMovementEvent}
	cache := newFakeCache()
	uc := usecase.NewIngestUseCase(repo, cache, logger.Nop())

	env := testEnvelope()
	err := uc.HandleEnvelope(context.Background(), env)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicateMovementEvent)
	assert.Contains(t, err.Error(), env.Data.MovementID.String())
	assert.Contains(t, err.Error(), env.Data.Event)
	assert.Empty(t, cache.cleared)
}

// Un fallo de invalidación se degrada a warning: la ingesta nunca falla por la caché.
func TestHandleEnvelope_FalloDeInvalidacionNoFallaLaIngesta(t *testing.T) {
	repo := &fakeEventRepo{}
	cache := newFakeCache()
	cache.clearErr = errors.New("redis caído")
	uc := usecase.NewIngestUseCase(repo, cache, logger.Nop())

	require.NoError(t, uc.HandleEnvelope(context.Background(), testEnvelope()))
	require.Len(t, repo.appended, 1)
	// Se intentaron ambas claves aunque la primera falló.
	assert.Len(t, cache.cleared, 2)
}

func TestHandleEnvelope_ErrorDelStoreSePropaga(t *testing.T) {
	repo := &fakeEventRepo{appendErr: errors.New("conexión perdida")}
	uc := usecase.NewIngestUseCase(repo, newFakeCache(), logger.Nop())

	err := uc.HandleEnvelope(context.Background(), testEnvelope())
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrDuplicateMessageID)
	assert.NotErrorIs(t, err, domain.ErrDuplicateMovementEvent)
}
