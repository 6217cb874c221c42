package domain_test

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/warehouse-monitor/internal/domain"
)

// La clave que el middleware deriva del path debe ser exactamente la que el event
// handler invalida; si divergen, la invalidación deja de surtir efecto.
func TestCacheKeys_CoherenciaConElPath(t *testing.T) {
	warehouseID := uuid.New()
	productID := uuid.New()
	movementID := uuid.New()

	stockPath := fmt.Sprintf("/warehouses/%s/products/%s", warehouseID, productID)
	assert.Equal(t, domain.CacheKeyFromPath(stockPath), domain.StockCacheKey(warehouseID, productID))

	movementPath := fmt.Sprintf("/movements/%s", movementID)
	assert.Equal(t, domain.CacheKeyFromPath(movementPath), domain.MovementCacheKey(movementID))
}
