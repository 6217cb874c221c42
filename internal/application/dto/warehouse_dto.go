package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/warehouse-monitor/internal/domain/entity"
)

// StockResponse respuesta de GET /warehouses/:warehouse_id/products/:product_id.
type StockResponse struct {
	WarehouseID uuid.UUID `json:"warehouse_id"`
	ProductID   uuid.UUID `json:"product_id"`
	Quantity    int64     `json:"quantity"` // siempre >= 0
}

// MovementResponse respuesta de GET /movements/:movement_id.
type MovementResponse struct {
	MovementID         uuid.UUID `json:"movement_id"`
	SenderWarehouse    uuid.UUID `json:"sender_warehouse"`
	ReceiverWarehouse  uuid.UUID `json:"receiver_warehouse"`
	DepartureTime      time.Time `json:"departure_time"`
	ArrivalTime        time.Time `json:"arrival_time"`
	QuantityDeparted   int64     `json:"quantity_departed"`
	QuantityArrived    int64     `json:"quantity_arrived"`
	QuantityDifference int64     `json:"quantity_difference"`
	TransitSeconds     int64     `json:"transit_seconds"`
}

// NewMovementResponse mapea la vista derivada a la respuesta HTTP.
func NewMovementResponse(rec *entity.MovementRecord) MovementResponse {
	return MovementResponse{
		MovementID:         rec.MovementID,
		SenderWarehouse:    rec.SenderWarehouse,
		ReceiverWarehouse:  rec.ReceiverWarehouse,
		DepartureTime:      rec.DepartureTime,
		ArrivalTime:        rec.ArrivalTime,
		QuantityDeparted:   rec.QuantityDeparted,
		QuantityArrived:    rec.QuantityArrived,
		QuantityDifference: rec.QuantityDifference,
		TransitSeconds:     rec.TransitSeconds,
	}
}

// ErrorResponse cuerpo de error de la API.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// StatusResponse cuerpo de confirmación simple.
type StatusResponse struct {
	Status string `json:"status"`
}
