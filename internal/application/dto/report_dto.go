package dto

import "time"

// InventorySummaryResponse reporte general del almacén.
type InventorySummaryResponse struct {
	TotalProducts     int64     `json:"total_products"`
	TotalWarehouses   int64     `json:"total_warehouses"`
	TotalUsers        int64     `json:"total_users"`
	LowStockProducts  int64     `json:"low_stock_products"`
	TotalInventoryQty int64     `json:"total_inventory_qty"`
	GeneratedAt       time.Time `json:"generated_at"`
}

// WarehouseInventoryReportRow totales por bodega.
type WarehouseInventoryReportRow struct {
	WarehouseID   int64     `json:"warehouse_id"`
	WarehouseName string    `json:"warehouse_name"`
	TotalProducts int64     `json:"total_products"`
	TotalQuantity int64     `json:"total_quantity"`
	LastUpdated   time.Time `json:"last_updated"`
}

// Niveles de alerta de stock bajo.
const (
	AlertLevelCritical = "CRITICAL" // en o por debajo del stock de seguridad
	AlertLevelWarning  = "WARNING"  // en o por debajo del punto de reorden
)

// LowStockAlertRow producto en o por debajo de su punto de reorden.
type LowStockAlertRow struct {
	ProductID       int64  `json:"product_id"`
	ProductName     string `json:"product_name"`
	MainCode        string `json:"main_code"`
	CurrentQuantity int64  `json:"current_quantity"`
	ReorderPoint    int64  `json:"reorder_point"`
	SafetyStock     int64  `json:"safety_stock"`
	ShortageAmount  int64  `json:"shortage_amount"`
	AlertLevel      string `json:"alert_level"`
}

// UserActivityRow actividad de un usuario según el audit trail.
type UserActivityRow struct {
	UserID       int64      `json:"user_id"`
	UserName     string     `json:"user_name"`
	RoleName     string     `json:"role_name"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	LoginCount   int64      `json:"login_count"`
	ActionsCount int64      `json:"actions_count"`
}
