package dto

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/warehouse-monitor/internal/domain"
	"github.com/jhoicas/warehouse-monitor/internal/domain/entity"
)

// EventData payload de un evento de movimiento dentro del envelope.
type EventData struct {
	MovementID  uuid.UUID `json:"movement_id"`
	WarehouseID uuid.UUID `json:"warehouse_id"`
	ProductID   uuid.UUID `json:"product_id"`
	Timestamp   time.Time `json:"timestamp"` // RFC3339 con zona horaria
	Event       string    `json:"event"`     // arrival | departure
	Quantity    int64     `json:"quantity"`
}

// Envelope es el mensaje tal como viaja por el tópico de ingesta (y como lo acepta el
// endpoint de simulación). El id del envelope es el message_id global del productor.
type Envelope struct {
	ID              uuid.UUID `json:"id"`
	Source          string    `json:"source"`
	SpecVersion     string    `json:"specversion"`
	Type            string    `json:"type"`
	DataContentType string    `json:"datacontenttype"`
	DataSchema      string    `json:"dataschema"`
	Time            int64     `json:"time"`
	Subject         string    `json:"subject"`
	Destination     string    `json:"destination"`
	Data            EventData `json:"data"`
}

// ParseEnvelope decodifica y valida un envelope crudo. Cualquier incumplimiento del
// esquema (UUID malformado, event fuera del enum, quantity no entera o negativa)
// devuelve un error que envuelve domain.ErrInvalidEnvelope.
func ParseEnvelope(raw []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", domain.ErrInvalidEnvelope, err)
	}
	if err := env.Validate(); err != nil {
		return Envelope{}, err
	}
	return env, nil
}

// Validate verifica los campos obligatorios del envelope y del payload.
func (e Envelope) Validate() error {
	if e.ID == uuid.Nil {
		return fmt.Errorf("%w: falta id", domain.ErrInvalidEnvelope)
	}
	if e.Data.MovementID == uuid.Nil {
		return fmt.Errorf("%w: falta data.movement_id", domain.ErrInvalidEnvelope)
	}
	if e.Data.WarehouseID == uuid.Nil {
		return fmt.Errorf("%w: falta data.warehouse_id", domain.ErrInvalidEnvelope)
	}
	if e.Data.ProductID == uuid.Nil {
		return fmt.Errorf("%w: falta data.product_id", domain.ErrInvalidEnvelope)
	}
	if e.Data.Timestamp.IsZero() {
		return fmt.Errorf("%w: falta data.timestamp", domain.ErrInvalidEnvelope)
	}
	if !entity.ValidEventType(e.Data.Event) {
		return fmt.Errorf("%w: event %q fuera del enum arrival|departure", domain.ErrInvalidEnvelope, e.Data.Event)
	}
	if e.Data.Quantity < 0 {
		return fmt.Errorf("%w: quantity negativa (%d)", domain.ErrInvalidEnvelope, e.Data.Quantity)
	}
	return nil
}

// ToEntity construye la entidad persistible a partir del envelope validado.
func (e Envelope) ToEntity() *entity.MovementEvent {
	return &entity.MovementEvent{
		MessageID:   e.ID,
		MovementID:  e.Data.MovementID,
		WarehouseID: e.Data.WarehouseID,
		ProductID:   e.Data.ProductID,
		Timestamp:   e.Data.Timestamp,
		Event:       e.Data.Event,
		Quantity:    e.Data.Quantity,
	}
}
