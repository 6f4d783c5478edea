package http

import (
	"github.com/gofiber/fiber/v2"
	appcosting "github.com/jhoicas/Costos-api/internal/application/costing"
	"github.com/jhoicas/Costos-api/internal/application/stock"
	"github.com/jhoicas/Costos-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ComputeCost    *appcosting.ComputeCostUseCase
	PricingAdvisor *appcosting.PricingAdvisor
	CostSheet      *appcosting.CostSheetUseCase
	ApplyMovement  *stock.ApplyMovementUseCase
	Reservation    *stock.ReservationUseCase
	History        *stock.MovementHistoryUseCase
	Reorder        *stock.ReorderUseCase
	LowStock       *stock.LowStockUseCase
	StockRepo      repository.StockedEntityRepository
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Motor de costeo y asesor de precios
	costingGroup := api.Group("/costing")
	costingHandler := NewCostingHandler(deps.ComputeCost, deps.PricingAdvisor, deps.CostSheet)
	costingGroup.Post("/bulk-apply", costingHandler.BulkApplyCost)
	costingGroup.Get("/:id", costingHandler.ComputeCost)
	costingGroup.Get("/:id/suggest-price", costingHandler.SuggestPrice)
	costingGroup.Post("/:id/apply", costingHandler.ApplyCost)
	costingGroup.Get("/:id/sheet.pdf", costingHandler.CostSheetPDF)

	// Libro de stock
	stockGroup := api.Group("/stock")
	stockHandler := NewStockHandler(
		deps.ApplyMovement, deps.Reservation, deps.History,
		deps.Reorder, deps.LowStock, deps.StockRepo,
	)
	stockGroup.Get("/low", stockHandler.LowStock)
	stockGroup.Get("/:id", stockHandler.GetStock)
	stockGroup.Post("/:id/movements", stockHandler.ApplyMovement)
	stockGroup.Get("/:id/movements", stockHandler.MovementHistory)
	stockGroup.Put("/:id/reorder-level", stockHandler.SetReorderLevel)
	stockGroup.Post("/:id/reserve", stockHandler.Reserve)
	stockGroup.Post("/:id/release", stockHandler.Release)
}
