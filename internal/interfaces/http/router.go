package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/warehouse-monitor/internal/application/usecase"
	"github.com/jhoicas/warehouse-monitor/internal/domain/repository"
	"github.com/jhoicas/warehouse-monitor/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockUC    *usecase.StockUseCase
	MovementUC *usecase.MovementUseCase
	IngestUC   *usecase.IngestUseCase
	Publisher  Publisher
	Cache      repository.CacheStore
	CacheTTL   time.Duration
	Topic      string
	Log        *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	cached := NewResponseCache(deps.Cache, deps.CacheTTL, deps.Log)

	// Vistas derivadas (cacheadas)
	stockHandler := NewStockHandler(deps.StockUC)
	app.Get("/warehouses/:warehouse_id/products/:product_id", cached, stockHandler.GetStock)

	movementHandler := NewMovementHandler(deps.MovementUC)
	app.Get("/movements/:movement_id", cached, movementHandler.GetMovement)

	// Herramientas de desarrollo (sin caché)
	debugHandler := NewDebugHandler(deps.IngestUC, deps.Publisher, deps.Topic, deps.Log)
	debug := app.Group("/debug")
	debug.Post("/publish", debugHandler.Publish)
	debug.Post("/simulate", debugHandler.Simulate)
}
