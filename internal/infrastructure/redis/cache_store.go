package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/jhoicas/warehouse-monitor/internal/domain/repository"
	"github.com/jhoicas/warehouse-monitor/pkg/config"
)

var _ repository.CacheStore = (*CacheStore)(nil)

// CacheStore caché de respuestas sobre Redis. Nunca es autoritativa: todo valor tiene
// TTL y cualquier clave puede desaparecer sin afectar la corrección, solo el costo.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore construye el adaptador con su propio cliente.
func NewCacheStore(cfg config.RedisConfig) *CacheStore {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr(),
		DB:   cfg.DB,
	})
	return &CacheStore{client: client}
}

// Get devuelve el valor de la clave, o (nil, nil) en un miss.
func (s *CacheStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get %s: %w", key, err)
	}
	return val, nil
}

// Set guarda el valor con el TTL indicado.
func (s *CacheStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// Clear elimina la clave. Borrar una clave inexistente es un no-op, no un error.
func (s *CacheStore) Clear(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("cache clear %s: %w", key, err)
	}
	return nil
}

// Close cierra la conexión con Redis.
func (s *CacheStore) Close() error {
	return s.client.Close()
}
