package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/tu-usuario/libreria-stock/internal/application/analytics"
	"github.com/tu-usuario/libreria-stock/internal/application/ledger"
	"github.com/tu-usuario/libreria-stock/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LedgerUC         *ledger.UseCase
	ReportUC         *appanalytics.ReportUseCase
	ReplenishmentUC  *appanalytics.ReplenishmentUseCase
	StockRepo        repository.StockRepository
	BookRepo         repository.BookRepository
	OverstockCeiling int
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Inventario: lecturas para inventario y reportes, mutaciones solo inventario
	inv := protected.Group("/inventory")
	invHandler := NewInventoryHandler(deps.LedgerUC, deps.StockRepo, deps.OverstockCeiling)
	inv.Get("/", RequireRole(RoleInventario, RoleReportes), invHandler.List)
	inv.Get("/alerts", RequireRole(RoleInventario, RoleReportes), invHandler.Alerts)
	inv.Get("/out-of-stock", RequireRole(RoleInventario, RoleReportes), invHandler.OutOfStock)
	inv.Get("/:bookId", RequireRole(RoleInventario, RoleReportes), invHandler.Get)
	inv.Get("/:bookId/movements", RequireRole(RoleInventario, RoleReportes), invHandler.Movements)
	inv.Post("/:bookId/receive", RequireRole(RoleInventario), invHandler.Receive)
	inv.Post("/:bookId/sell", RequireRole(RoleInventario), invHandler.Sell)
	inv.Post("/:bookId/adjust", RequireRole(RoleInventario), invHandler.Adjust)

	// Reportes (protegido, solo lectura)
	reports := protected.Group("/reports", RequireRole(RoleInventario, RoleReportes))
	reportHandler := NewReportHandler(deps.ReportUC, deps.ReplenishmentUC, deps.BookRepo)
	reports.Get("/inventory", reportHandler.InventoryReport)
	reports.Get("/turnover", reportHandler.TurnoverReport)
	reports.Get("/reorder", reportHandler.ReorderReport)
	reports.Get("/filters", reportHandler.FilterOptions)
}
