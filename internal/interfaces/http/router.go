package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Bodega-api/internal/application/auth"
	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/application/usecase"
	"github.com/jhoicas/Bodega-api/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	LocationUC  *usecase.LocationUseCase
	SupplierUC  *usecase.SupplierUseCase
	ReceivingUC *inventory.ReceivingUseCase
	AllocUC     *inventory.AllocationUseCase
	OrderUC     *inventory.OrderUseCase
	StockTakeUC *inventory.StockTakeUseCase
	QueryUC     *inventory.QueryUseCase
	AuthUC      *auth.AuthUseCase
	ReportGen   *pdf.StockTakeReportGenerator
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Solo admin y bodeguero mutan catálogo y documentos; el operario
	// consulta y registra conteos.
	warehouseRoles := RequireRole("admin", "bodeguero")

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", warehouseRoles, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", warehouseRoles, productHandler.Update)

	// Locations y suppliers (protegido)
	warehouseHandler := NewWarehouseHandler(deps.LocationUC, deps.SupplierUC)
	locations := protected.Group("/locations")
	locations.Post("/", warehouseRoles, warehouseHandler.CreateLocation)
	locations.Get("/", warehouseHandler.ListLocations)
	locations.Get("/:id", warehouseHandler.GetLocation)
	locations.Put("/:id", warehouseRoles, warehouseHandler.UpdateLocation)

	suppliers := protected.Group("/suppliers")
	suppliers.Post("/", warehouseRoles, warehouseHandler.CreateSupplier)
	suppliers.Get("/", warehouseHandler.ListSuppliers)
	suppliers.Get("/:id", warehouseHandler.GetSupplier)
	suppliers.Put("/:id", warehouseRoles, warehouseHandler.UpdateSupplier)

	// Receipts (protegido)
	receipts := protected.Group("/receipts")
	receivingHandler := NewReceivingHandler(deps.ReceivingUC)
	receipts.Post("/", warehouseRoles, receivingHandler.Create)
	receipts.Get("/", receivingHandler.List)
	receipts.Get("/:id", receivingHandler.GetByID)
	receipts.Post("/:id/lines", warehouseRoles, receivingHandler.AddLine)
	receipts.Post("/:id/receive", warehouseRoles, receivingHandler.Receive)
	receipts.Post("/:id/cancel", warehouseRoles, receivingHandler.Cancel)

	// Inventory: saldos, movimientos, reservas y traslados (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.QueryUC, deps.AllocUC)
	invGroup.Get("/balances", inventoryHandler.ListBalances)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Post("/allocations", warehouseRoles, inventoryHandler.Allocate)
	invGroup.Post("/deallocations", warehouseRoles, inventoryHandler.Deallocate)
	invGroup.Post("/transfers", warehouseRoles, inventoryHandler.Transfer)

	// Outbound orders (protegido)
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Post("/", warehouseRoles, orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Post("/:id/lines", warehouseRoles, orderHandler.AddLine)
	orders.Post("/:id/allocate", warehouseRoles, orderHandler.Allocate)
	orders.Post("/:id/ship", warehouseRoles, orderHandler.Ship)

	// Stock takes (protegido; cualquier rol registra conteos)
	stockTakes := protected.Group("/stock-takes")
	stockTakeHandler := NewStockTakeHandler(deps.StockTakeUC, deps.ReportGen)
	stockTakes.Post("/", warehouseRoles, stockTakeHandler.Initiate)
	stockTakes.Get("/", stockTakeHandler.List)
	stockTakes.Get("/:id", stockTakeHandler.GetByID)
	stockTakes.Get("/:id/report", stockTakeHandler.Report)
	stockTakes.Post("/:id/start", warehouseRoles, stockTakeHandler.Start)
	stockTakes.Post("/:id/items/:itemId/count", stockTakeHandler.SubmitCount)
	stockTakes.Post("/:id/process", warehouseRoles, stockTakeHandler.Process)
	stockTakes.Post("/:id/verify", RequireRole("admin"), stockTakeHandler.Verify)
	stockTakes.Post("/:id/cancel", warehouseRoles, stockTakeHandler.Cancel)
}
