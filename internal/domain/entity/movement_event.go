package entity

import (
	"time"

	"github.com/google/uuid"
)

// Tipos de evento de movimiento. No hay otros valores válidos.
const (
	EventArrival   = "arrival"   // entrada a bodega: suma stock
	EventDeparture = "departure" // salida de bodega: resta stock
)

// ValidEventType indica si s es uno de los dos tipos del enum.
func ValidEventType(s string) bool {
	return s == EventArrival || s == EventDeparture
}

// MovementEvent es la única entidad persistida: una fila inmutable del log de
// movimientos. Se crea una sola vez en la ingesta y nunca se actualiza ni borra.
//
// Invariantes (los garantiza el store, no el caller):
//   - MessageID es único entre todas las filas.
//   - (MovementID, Event) es único: a lo sumo un arrival y un departure por movimiento.
type MovementEvent struct {
	ID          int64
	MessageID   uuid.UUID
	MovementID  uuid.UUID
	WarehouseID uuid.UUID
	ProductID   uuid.UUID
	Timestamp   time.Time // hora del evento (no de la ingesta), con zona horaria
	Event       string    // arrival | departure
	Quantity    int64     // no negativa
}

// MovementRecord es la vista derivada que empareja departure y arrival de un movimiento.
type MovementRecord struct {
	MovementID        uuid.UUID
	SenderWarehouse   uuid.UUID
	ReceiverWarehouse uuid.UUID
	DepartureTime     time.Time
	ArrivalTime       time.Time
	QuantityDeparted  int64
	QuantityArrived   int64
	// QuantityDifference = arrival − departure. Negativo: pérdida en tránsito;
	// positivo: excedente sin explicar.
	QuantityDifference int64
	// TransitSeconds en segundos enteros; puede ser negativo si los timestamps
	// llegaron desordenados y se expone tal cual.
	TransitSeconds int64
}
