package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jhoicas/warehouse-monitor/internal/application/dto"
	"github.com/jhoicas/warehouse-monitor/internal/application/usecase"
	"github.com/jhoicas/warehouse-monitor/internal/domain"
)

// MovementHandler maneja las peticiones HTTP de movimientos emparejados.
type MovementHandler struct {
	uc *usecase.MovementUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *usecase.MovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// GetMovement godoc
// @Summary      Información de un movimiento (salida y llegada emparejadas)
// @Tags         movements
// @Produce      json
// @Param        movement_id  path  string  true  "UUID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /movements/{movement_id} [get]
func (h *MovementHandler) GetMovement(c *fiber.Ctx) error {
	movementID, err := uuid.Parse(c.Params("movement_id"))
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Detail: "movement_id inválido"})
	}

	rec, err := h.uc.Movement(c.Context(), movementID)
	if err != nil {
		if errors.Is(err, domain.ErrMovementIncomplete) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Detail: "Movement incomplete or not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Detail: err.Error()})
	}
	return c.JSON(dto.NewMovementResponse(rec))
}
