package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/warehouse-monitor/internal/domain"
	"github.com/jhoicas/warehouse-monitor/internal/domain/entity"
	"github.com/jhoicas/warehouse-monitor/internal/domain/repository"
)

var _ repository.MovementEventRepository = (*MovementEventRepo)(nil)

// uniqueViolation código SQLSTATE de unique_violation.
const uniqueViolation = "23505"

// constraintErrors traduce la identidad estructural del constraint violado al error de
// dominio. Tabla explícita: un constraint que no esté aquí NO cae en silencio a un
// duplicado conocido sino a domain.ErrUnrecognizedConstraint.
var constraintErrors = map[string]error{
	"movement_events_message_id_key": domain.ErrDuplicateMessageID,
	"uix_movement_id_event_type":     domain.ErrDuplicateMovementEvent,
}

// MovementEventRepo implementación del log de eventos sobre PostgreSQL (usable con pool o tx).
type MovementEventRepo struct {
	q Querier
}

// NewMovementEventRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementEventRepository(q Querier) *MovementEventRepo {
	return &MovementEventRepo{q: q}
}

// Append inserta el evento en un único INSERT atómico. Los dos invariantes de unicidad
// los resuelven los constraints de la tabla, de modo que inserciones concurrentes sobre
// el mismo message_id o (movement_id, event) las serializa la base: exactamente una
// entra y la otra recibe el error de duplicado correspondiente.
func (r *MovementEventRepo) Append(ctx context.Context, ev *entity.MovementEvent) error {
	query := `
		INSERT INTO movement_events (message_id, movement_id, warehouse_id, product_id, timestamp, event, quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		ev.MessageID, ev.MovementID, ev.WarehouseID, ev.ProductID,
		ev.Timestamp, ev.Event, ev.Quantity,
	).Scan(&ev.ID)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("append movement event: %w", err)
	}
	return nil
}

// mapUniqueViolation devuelve el error de dominio para una violación de unicidad, o nil
// si err no es un 23505. Identifica el constraint por pgconn.PgError.ConstraintName
// (nunca por el texto del mensaje).
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return nil
	}
	if domErr, ok := constraintErrors[pgErr.ConstraintName]; ok {
		return domErr
	}
	return fmt.Errorf("%w: %s", domain.ErrUnrecognizedConstraint, pgErr.ConstraintName)
}

// ListByMovement devuelve los eventos de un movement_id. El orden es irrelevante para
// el caller; ambos invariantes valen llegue primero arrival o departure.
func (r *MovementEventRepo) ListByMovement(ctx context.Context, movementID uuid.UUID) ([]entity.MovementEvent, error) {
	query := `
		SELECT id, message_id, movement_id, warehouse_id, product_id, timestamp, event, quantity
		FROM movement_events WHERE movement_id = $1`
	rows, err := r.q.Query(ctx, query, movementID)
	if err != nil {
		return nil, fmt.Errorf("list by movement: %w", err)
	}
	defer rows.Close()

	var list []entity.MovementEvent
	for rows.Next() {
		var ev entity.MovementEvent
		if err := rows.Scan(&ev.ID, &ev.MessageID, &ev.MovementID, &ev.WarehouseID,
			&ev.ProductID, &ev.Timestamp, &ev.Event, &ev.Quantity); err != nil {
			return nil, fmt.Errorf("scan movement event: %w", err)
		}
		list = append(list, ev)
	}
	return list, rows.Err()
}

// SignedQuantitySum calcula Σ(quantity si arrival, −quantity si departure) para una
// bodega+producto. COALESCE para que sin filas devuelva 0.
func (r *MovementEventRepo) SignedQuantitySum(ctx context.Context, warehouseID, productID uuid.UUID) (int64, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN event = 'arrival' THEN quantity ELSE -quantity END), 0)
		FROM movement_events
		WHERE warehouse_id = $1 AND product_id = $2`
	var sum int64
	if err := r.q.QueryRow(ctx, query, warehouseID, productID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("signed quantity sum: %w", err)
	}
	return sum, nil
}
