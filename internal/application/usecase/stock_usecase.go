package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/warehouse-monitor/internal/domain/repository"
	"github.com/jhoicas/warehouse-monitor/pkg/logger"
)

// StockUseCase calcula el stock actual de bodega+producto como proyección pura del log.
type StockUseCase struct {
	events repository.MovementEventRepository
	log    *logger.Logger
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(events repository.MovementEventRepository, log *logger.Logger) *StockUseCase {
	return &StockUseCase{events: events, log: log}
}

// Stock devuelve max(Σarrivals − Σdepartures, 0). Un balance crudo negativo (más
// salidas registradas que entradas) se trunca a cero y se loguea como señal de calidad
// de datos; la lectura siempre devuelve un valor.
func (uc *StockUseCase) Stock(ctx context.Context, warehouseID, productID uuid.UUID) (int64, error) {
	sum, err := uc.events.SignedQuantitySum(ctx, warehouseID, productID)
	if err != nil {
		return 0, fmt.Errorf("calcular stock: %w", err)
	}
	if sum < 0 {
		uc.log.Warn().
			Str("warehouse_id", warehouseID.String()).
			Str("product_id", productID.String()).
			Int64("raw_sum", sum).
			Msg("balance crudo negativo, truncado a cero")
		return 0, nil
	}
	return sum, nil
}
