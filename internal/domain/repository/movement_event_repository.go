package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/warehouse-monitor/internal/domain/entity"
)

// MovementEventRepository define el puerto de persistencia del log de eventos (DIP).
//
// Append hace un único INSERT atómico; ambos invariantes de unicidad los resuelve el
// constraint de la base (nunca un check-then-act en el caller), así que dos inserciones
// concurrentes sobre el mismo message_id o (movement_id, event) se serializan en el
// store: una entra, la otra recibe domain.ErrDuplicateMessageID o
// domain.ErrDuplicateMovementEvent de forma determinista.
type MovementEventRepository interface {
	Append(ctx context.Context, ev *entity.MovementEvent) error
	// ListByMovement devuelve los eventos de un movement_id (orden irrelevante).
	ListByMovement(ctx context.Context, movementID uuid.UUID) ([]entity.MovementEvent, error)
	// SignedQuantitySum devuelve Σ(quantity si arrival, −quantity si departure)
	// para una bodega+producto. Puede ser negativa.
	SignedQuantitySum(ctx context.Context, warehouseID, productID uuid.UUID) (int64, error)
}
