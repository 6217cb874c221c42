package repository

import (
	"context"
	"time"
)

// CacheStore define el puerto de la caché de respuestas. La caché es advisory: una
// entrada ausente o expulsada solo provoca recomputar, nunca un resultado incorrecto.
// Clear es conmutativo e idempotente (limpiar una clave ya limpia es un no-op), por lo
// que es seguro invocarlo desde muchas ingestas concurrentes.
type CacheStore interface {
	// Get devuelve (nil, nil) en un miss.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Clear(ctx context.Context, key string) error
}
