package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/warehouse-monitor/internal/domain"
	"github.com/jhoicas/warehouse-monitor/internal/domain/repository"
	"github.com/jhoicas/warehouse-monitor/pkg/logger"
)

// NewResponseCache devuelve un middleware que cachea las respuestas 200 de las vistas
// derivadas. La clave se deriva del path con la misma función pura que usa el event
// handler para invalidar, así que una ingesta exitosa garantiza que la siguiente
// lectura recomputa desde el store. Un error de la caché degrada a recomputar, nunca a
// fallar la petición.
func NewResponseCache(cache repository.CacheStore, ttl time.Duration, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodGet {
			return c.Next()
		}
		key := domain.CacheKeyFromPath(c.Path())

		val, err := cache.Get(c.Context(), key)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("error leyendo la caché")
		} else if val != nil {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Send(val)
		}

		if err := c.Next(); err != nil {
			return err
		}

		if c.Response().StatusCode() == fiber.StatusOK {
			// fasthttp reutiliza el buffer de la respuesta: copiar antes de guardar.
			body := make([]byte, len(c.Response().Body()))
			copy(body, c.Response().Body())
			if err := cache.Set(c.Context(), key, body, ttl); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("error guardando en la caché")
			}
		}
		return nil
	}
}
