package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/warehouse-monitor/internal/domain"
	"github.com/jhoicas/warehouse-monitor/internal/domain/entity"
	"github.com/jhoicas/warehouse-monitor/internal/domain/repository"
)

// MovementUseCase empareja departure y arrival de un movimiento en un registro derivado.
type MovementUseCase struct {
	events repository.MovementEventRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(events repository.MovementEventRepository) *MovementUseCase {
	return &MovementUseCase{events: events}
}

// Movement devuelve el registro emparejado de un movement_id. Si falta cualquiera de
// los dos eventos devuelve domain.ErrMovementIncomplete: es el estado normal de una
// mercancía en tránsito, no un error del store. TransitSeconds puede ser negativo si
// los timestamps llegaron desordenados; se expone tal cual, sin corregir.
func (uc *MovementUseCase) Movement(ctx context.Context, movementID uuid.UUID) (*entity.MovementRecord, error) {
	events, err := uc.events.ListByMovement(ctx, movementID)
	if err != nil {
		return nil, fmt.Errorf("consultar movimiento %s: %w", movementID, err)
	}

	var dep, arr *entity.MovementEvent
	for i := range events {
		switch events[i].Event {
		case entity.EventDeparture:
			dep = &events[i]
		case entity.EventArrival:
			arr = &events[i]
		}
	}
	if dep == nil || arr == nil {
		return nil, domain.ErrMovementIncomplete
	}

	return &entity.MovementRecord{
		MovementID:         movementID,
		SenderWarehouse:    dep.WarehouseID,
		ReceiverWarehouse:  arr.WarehouseID,
		DepartureTime:      dep.Timestamp,
		ArrivalTime:        arr.Timestamp,
		QuantityDeparted:   dep.Quantity,
		QuantityArrived:    arr.Quantity,
		QuantityDifference: arr.Quantity - dep.Quantity,
		TransitSeconds:     int64(arr.Timestamp.Sub(dep.Timestamp) / time.Second),
	}, nil
}
