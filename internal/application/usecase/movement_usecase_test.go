package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-monitor/internal/application/usecase"
	"github.com/jhoicas/warehouse-monitor/internal/domain"
	"github.com/jhoicas/warehouse-monitor/internal/domain/entity"
)

func movementEvent(movementID, warehouseID uuid.UUID, event string, qty int64, ts time.Time) entity.MovementEvent {
	return entity.MovementEvent{
		MessageID:   uuid.New(),
		MovementID:  movementID,
		WarehouseID: warehouseID,
		ProductID:   uuid.New(),
		Timestamp:   ts,
		Event:       event,
		Quantity:    qty,
	}
}

func TestMovement_SinEventosEsIncompleto(t *testing.T) {
	uc := usecase.NewMovementUseCase(&fakeEventRepo{})

	_, err := uc.Movement(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrMovementIncomplete)
}

// Mercancía en tránsito: solo hay departure. Estado legítimo, no un error del store.
func TestMovement_SoloDepartureEsIncompleto(t *testing.T) {
	movementID := uuid.New()
	repo := &fakeEventRepo{events: []entity.MovementEvent{
		movementEvent(movementID, uuid.New(), entity.EventDeparture, 100, time.Now()),
	}}
	uc := usecase.NewMovementUseCase(repo)

	_, err := uc.Movement(context.Background(), movementID)
	assert.ErrorIs(t, err, domain.ErrMovementIncomplete)
}

func TestMovement_SoloArrivalEsIncompleto(t *testing.T) {
	movementID := uuid.New()
	repo := &fakeEventRepo{events: []entity.MovementEvent{
		movementEvent(movementID, uuid.New(), entity.EventArrival, 100, time.Now()),
	}}
	uc := usecase.NewMovementUseCase(repo)

	_, err := uc.Movement(context.Background(), movementID)
	assert.ErrorIs(t, err, domain.ErrMovementIncomplete)
}

// Movimiento completo sin pérdidas: 50 salen de S, 50 llegan a R un minuto después.
func TestMovement_CompletoSinDiferencia(t *testing.T) {
	movementID := uuid.New()
	sender := uuid.New()
	receiver := uuid.New()
	t0 := time.Date(2025, 2, 18, 12, 0, 0, 0, time.UTC)

	repo := &fakeEventRepo{events: []entity.MovementEvent{
		movementEvent(movementID, sender, entity.EventDeparture, 50, t0),
		movementEvent(movementID, receiver, entity.EventArrival, 50, t0.Add(60*time.Second)),
	}}
	uc := usecase.NewMovementUseCase(repo)

	rec, err := uc.Movement(context.Background(), movementID)
	require.NoError(t, err)
	assert.Equal(t, sender, rec.SenderWarehouse)
	assert.Equal(t, receiver, rec.ReceiverWarehouse)
	assert.Equal(t, int64(0), rec.QuantityDifference)
	assert.Equal(t, int64(60), rec.TransitSeconds)
}

// Salen 100 a las 12:00, llegan 95 a las 14:30: diferencia -5 (pérdida) y 9000s.
func TestMovement_PerdidaEnTransito(t *testing.T) {
	movementID := uuid.New()
	dep := time.Date(2025, 2, 18, 12, 0, 0, 0, time.UTC)
	arr := time.Date(2025, 2, 18, 14, 30, 0, 0, time.UTC)

	repo := &fakeEventRepo{events: []entity.MovementEvent{
		movementEvent(movementID, uuid.New(), entity.EventDeparture, 100, dep),
		movementEvent(movementID, uuid.New(), entity.EventArrival, 95, arr),
	}}
	uc := usecase.NewMovementUseCase(repo)

	rec, err := uc.Movement(context.Background(), movementID)
	require.NoError(t, err)
	assert.Equal(t, int64(-5), rec.QuantityDifference)
	assert.Equal(t, int64(9000), rec.TransitSeconds)
	assert.Equal(t, int64(100), rec.QuantityDeparted)
	assert.Equal(t, int64(95), rec.QuantityArrived)
}

// Timestamps desordenados: el tránsito negativo se expone tal cual, sin corregir.
func TestMovement_TransitoNegativoSeExpone(t *testing.T) {
	movementID := uuid.New()
	t0 := time.Date(2025, 2, 18, 12, 0, 0, 0, time.UTC)

	repo := &fakeEventRepo{events: []entity.MovementEvent{
		movementEvent(movementID, uuid.New(), entity.EventDeparture, 10, t0),
		movementEvent(movementID, uuid.New(), entity.EventArrival, 10, t0.Add(-30*time.Second)),
	}}
	uc := usecase.NewMovementUseCase(repo)

	rec, err := uc.Movement(context.Background(), movementID)
	require.NoError(t, err)
	assert.Equal(t, int64(-30), rec.TransitSeconds)
}

// El orden de llegada de los eventos al log no afecta el registro derivado.
func TestMovement_OrdenDeEventosIrrelevante(t *testing.T) {
	movementID := uuid.New()
	sender := uuid.New()
	receiver := uuid.New()
	t0 := time.Date(2025, 2, 18, 12, 0, 0, 0, time.UTC)

	repo := &fakeEventRepo{events: []entity.MovementEvent{
		movementEvent(movementID, receiver, entity.EventArrival, 45, t0.Add(2*time.Hour)),
		movementEvent(movementID, sender, entity.EventDeparture, 50, t0),
	}}
	uc := usecase.NewMovementUseCase(repo)

	rec, err := uc.Movement(context.Background(), movementID)
	require.NoError(t, err)
	assert.Equal(t, sender, rec.SenderWarehouse)
	assert.Equal(t, receiver, rec.ReceiverWarehouse)
	assert.Equal(t, int64(-5), rec.QuantityDifference)
	assert.Equal(t, int64(7200), rec.TransitSeconds)
}
