package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kardex-api/internal/application/auth"
	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/application/usecase"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/kardex"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC              *auth.AuthUseCase
	UserUC              *usecase.UserUseCase
	CategoryUC          *usecase.CategoryUseCase
	ProductUC           *usecase.ProductUseCase
	RegisterTransaction *inventory.RegisterTransactionUseCase
	Query               *inventory.QueryUseCase
	Replenishment       *inventory.ReplenishmentUseCase
	Report              *inventory.ReportUseCase
	DefaultMethod       kardex.Method
	JWTSecret           string
}

// Router registra las rutas de la API.
//
// Roles: las lecturas están abiertas a cualquier usuario autenticado; crear y editar catálogo
// requiere admin o bodeguero; eliminar y registrar usuarios solo admin. Transacciones:
// admin y bodeguero registran entradas y salidas, vendedor solo salidas.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	adminOnly := RequireRole(entity.RoleAdmin)
	catalogWriters := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleBodeguero, entity.RoleVendedor)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Post("/auth/register", adminOnly, authHandler.Register)
	protected.Get("/auth/me", anyRole, authHandler.Me)

	// Categories
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC, deps.Query)
	categories.Get("/", anyRole, categoryHandler.List)
	categories.Post("/", catalogWriters, categoryHandler.Create)
	categories.Get("/:id", anyRole, categoryHandler.GetByID)
	categories.Put("/:id", catalogWriters, categoryHandler.Update)
	categories.Delete("/:id", adminOnly, categoryHandler.Delete)
	categories.Get("/:id/stock", anyRole, categoryHandler.Stock)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Query)
	products.Get("/", anyRole, productHandler.List)
	products.Post("/", catalogWriters, productHandler.Create)
	products.Get("/:id", anyRole, productHandler.GetByID)
	products.Put("/:id", catalogWriters, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)
	products.Get("/:id/stock", anyRole, productHandler.Stock)
	products.Get("/:id/transactions", anyRole, productHandler.Transactions)

	// Transactions
	transactionHandler := NewTransactionHandler(deps.RegisterTransaction)
	protected.Post("/transactions", anyRole, transactionHandler.Create)

	// Inventory
	inv := protected.Group("/inventory", anyRole)
	inventoryHandler := NewInventoryHandler(deps.Query, deps.Replenishment, deps.Report, deps.ProductUC, deps.DefaultMethod)
	inv.Get("/low-stock", inventoryHandler.LowStock)
	inv.Get("/replenishment-list", inventoryHandler.GetReplenishmentList)
	inv.Get("/summary", inventoryHandler.Summary)
	inv.Get("/valuation/:productId", inventoryHandler.Valuation)
	inv.Get("/valuation/:productId/pdf", inventoryHandler.ValuationPDF)
}
