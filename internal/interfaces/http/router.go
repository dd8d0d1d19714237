package http

import (
	"github.com/gofiber/fiber/v2"

	appaccess "github.com/jhoicas/Almacen-api/internal/application/access"
	"github.com/jhoicas/Almacen-api/internal/application/audit"
	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/application/reports"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.UseCase
	LedgerUC  *ledger.UseCase
	LedgerQ   *ledger.Queries
	AccessUC  *appaccess.UseCase
	ProductUC *usecase.ProductUseCase
	UserUC    *usecase.UserUseCase
	AuditQ    *audit.Queries
	ReportUC  *reports.UseCase
	JWTSecret string
}

// Router registra las rutas de la API. Los nombres de ruta conservan la
// convención PascalCase de los clientes existentes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login público; cambio de contraseña autenticado)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/Auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/change-password", AuthMiddleware(deps.JWTSecret), authHandler.ChangePassword)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Inventario: lecturas para todo rol autenticado (el filtro de acceso
	// decide qué bodegas son visibles); el ajuste excluye al Viewer.
	inventoryHandler := NewInventoryHandler(deps.LedgerUC, deps.LedgerQ)
	inventory := protected.Group("/Inventory")
	inventory.Get("/", inventoryHandler.List)
	inventory.Get("/warehouse/:id", inventoryHandler.ListByWarehouse)
	inventory.Get("/warehouses-with-stock/:productId", inventoryHandler.WarehousesWithStock)
	inventory.Post("/adjust",
		RequireRole(entity.RoleAdmin, entity.RoleSeniorUser, entity.RoleSeniorStorekeeper, entity.RoleStorekeeper),
		inventoryHandler.Adjust)

	// Operaciones de stock
	opHandler := NewStockOperationHandler(deps.LedgerUC, deps.LedgerQ)
	operations := protected.Group("/StockOperations")
	operations.Get("/", opHandler.List)
	operations.Post("/issue",
		RequireRole(entity.RoleAdmin, entity.RoleSeniorUser, entity.RoleSeniorStorekeeper, entity.RoleStorekeeper),
		opHandler.Issue)
	operations.Post("/receive",
		RequireRole(entity.RoleAdmin, entity.RoleSeniorUser, entity.RoleSeniorStorekeeper, entity.RoleStorekeeper),
		opHandler.Receive)

	// Accesos por bodega (administración restringida; my-access para todos)
	accessHandler := NewWarehouseAccessHandler(deps.AccessUC)
	warehouseAccess := protected.Group("/WarehouseAccess")
	warehouseAccess.Get("/my-access", accessHandler.MyAccess)
	warehouseAccess.Get("/user/:userId",
		RequireRole(entity.RoleAdmin, entity.RoleSeniorUser, entity.RoleSeniorStorekeeper),
		accessHandler.ListByUser)
	warehouseAccess.Post("/",
		RequireRole(entity.RoleAdmin, entity.RoleSeniorUser, entity.RoleSeniorStorekeeper),
		accessHandler.Create)
	warehouseAccess.Put("/:id",
		RequireRole(entity.RoleAdmin, entity.RoleSeniorUser, entity.RoleSeniorStorekeeper),
		accessHandler.Update)
	warehouseAccess.Delete("/:id",
		RequireRole(entity.RoleAdmin, entity.RoleSeniorUser, entity.RoleSeniorStorekeeper),
		accessHandler.Delete)

	// Productos: lectura para todos los autenticados, mutación restringida
	productHandler := NewProductHandler(deps.ProductUC)
	products := protected.Group("/Products")
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", RequireRole(entity.RoleAdmin, entity.RoleSeniorUser), productHandler.Create)
	products.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleSeniorUser), productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin, entity.RoleSeniorUser), productHandler.Delete)

	// Usuarios: administración solo Admin, lectura también SeniorUser
	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/Users")
	users.Get("/", RequireRole(entity.RoleAdmin, entity.RoleSeniorUser), userHandler.List)
	users.Get("/:id", RequireRole(entity.RoleAdmin, entity.RoleSeniorUser), userHandler.GetByID)
	users.Post("/", RequireRole(entity.RoleAdmin), userHandler.Create)
	users.Put("/:id", RequireRole(entity.RoleAdmin), userHandler.Update)
	users.Delete("/:id", RequireRole(entity.RoleAdmin), userHandler.Delete)

	// Audit trail
	auditHandler := NewAuditHandler(deps.AuditQ)
	protected.Get("/Audit", RequireRole(entity.RoleAdmin, entity.RoleSeniorUser), auditHandler.List)

	// Reportes gerenciales
	reportHandler := NewReportHandler(deps.ReportUC)
	reportsGroup := protected.Group("/Reports", RequireRole(entity.RoleAdmin, entity.RoleSeniorUser))
	reportsGroup.Get("/inventory-summary", reportHandler.InventorySummary)
	reportsGroup.Get("/inventory-summary/pdf", reportHandler.InventorySummaryPDF)
	reportsGroup.Get("/warehouse-inventory", reportHandler.WarehouseInventory)
	reportsGroup.Get("/low-stock-alerts", reportHandler.LowStockAlerts)
	reportsGroup.Get("/user-activity", reportHandler.UserActivity)
}
