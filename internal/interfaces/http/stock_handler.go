package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jhoicas/warehouse-monitor/internal/application/dto"
	"github.com/jhoicas/warehouse-monitor/internal/application/usecase"
)

// StockHandler maneja las peticiones HTTP de stock por bodega+producto.
type StockHandler struct {
	uc *usecase.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *usecase.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// GetStock godoc
// @Summary      Stock actual de un producto en una bodega
// @Tags         stock
// @Produce      json
// @Param        warehouse_id  path  string  true  "UUID de la bodega"
// @Param        product_id    path  string  true  "UUID del producto"
// @Success      200  {object}  dto.StockResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /warehouses/{warehouse_id}/products/{product_id} [get]
func (h *StockHandler) GetStock(c *fiber.Ctx) error {
	warehouseID, err := uuid.Parse(c.Params("warehouse_id"))
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Detail: "warehouse_id inválido"})
	}
	productID, err := uuid.Parse(c.Params("product_id"))
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Detail: "product_id inválido"})
	}

	quantity, err := h.uc.Stock(c.Context(), warehouseID, productID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Detail: err.Error()})
	}
	return c.JSON(dto.StockResponse{
		WarehouseID: warehouseID,
		ProductID:   productID,
		Quantity:    quantity,
	})
}
