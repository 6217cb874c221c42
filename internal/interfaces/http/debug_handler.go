package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/warehouse-monitor/internal/application/dto"
	"github.com/jhoicas/warehouse-monitor/internal/application/usecase"
	"github.com/jhoicas/warehouse-monitor/internal/domain"
	"github.com/jhoicas/warehouse-monitor/pkg/logger"
)

// Publisher publica un envelope en el tópico de ingesta. Lo implementa kafka.Producer.
type Publisher interface {
	Send(ctx context.Context, topic string, payload any) error
}

// DebugHandler endpoints de desarrollo: publicar un envelope al tópico real o
// simular la ingesta en línea sin pasar por el broker.
type DebugHandler struct {
	ingest    *usecase.IngestUseCase
	publisher Publisher
	topic     string
	log       *logger.Logger
}

// NewDebugHandler construye el handler.
func NewDebugHandler(ingest *usecase.IngestUseCase, publisher Publisher, topic string, log *logger.Logger) *DebugHandler {
	return &DebugHandler{ingest: ingest, publisher: publisher, topic: topic, log: log}
}

// Publish godoc
// @Summary      Publicar un envelope en el tópico de ingesta
// @Tags         debug
// @Accept       json
// @Produce      json
// @Param        body  body  dto.Envelope  true  "Envelope del evento"
// @Success      200  {object}  dto.StatusResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /debug/publish [post]
func (h *DebugHandler) Publish(c *fiber.Ctx) error {
	env, err := dto.ParseEnvelope(c.Body())
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Detail: err.Error()})
	}
	if err := h.publisher.Send(c.Context(), h.topic, env); err != nil {
		h.log.Error().Err(err).Str("message_id", env.ID.String()).Msg("fallo publicando en el broker")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Detail: "Kafka send failed"})
	}
	return c.JSON(dto.StatusResponse{Status: "sent to Kafka"})
}

// Simulate godoc
// @Summary      Ingerir un envelope en línea (sin broker)
// @Tags         debug
// @Accept       json
// @Produce      json
// @Param        body  body  dto.Envelope  true  "Envelope del evento"
// @Success      200  {object}  dto.StatusResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /debug/simulate [post]
func (h *DebugHandler) Simulate(c *fiber.Ctx) error {
	env, err := dto.ParseEnvelope(c.Body())
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Detail: err.Error()})
	}
	if err := h.ingest.HandleEnvelope(c.Context(), env); err != nil {
		if errors.Is(err, domain.ErrDuplicateMessageID) || errors.Is(err, domain.ErrDuplicateMovementEvent) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Detail: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Detail: err.Error()})
	}
	return c.JSON(dto.StatusResponse{Status: "ok"})
}
