package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Claves de caché: función pura de la ruta y sus parámetros. Las mismas claves que
// construye el middleware de caché a partir del path las invalida el event handler a
// partir de los identificadores, así que ambos lados deben coincidir byte a byte.

// StockCacheKey clave para la vista de stock de bodega+producto.
// Ej: ":warehouses:<warehouse_id>:products:<product_id>".
func StockCacheKey(warehouseID, productID uuid.UUID) string {
	return ":warehouses:" + warehouseID.String() + ":products:" + productID.String()
}

// MovementCacheKey clave para la vista de un movimiento.
// Ej: ":movements:<movement_id>".
func MovementCacheKey(movementID uuid.UUID) string {
	return ":movements:" + movementID.String()
}

// CacheKeyFromPath deriva la clave desde el path de la petición reemplazando '/' por ':'.
func CacheKeyFromPath(path string) string {
	return strings.ReplaceAll(path, "/", ":")
}
