package dto

import "time"

// AdjustInventoryRequest body para POST /api/Inventory/adjust.
// NewQuantity fija la cantidad resultante de la tripleta; los valores
// negativos se rechazan antes de tocar el ledger.
type AdjustInventoryRequest struct {
	ProductID   int64  `json:"product_id" validate:"required,gt=0"`
	WarehouseID int64  `json:"warehouse_id" validate:"required,gt=0"`
	BrandID     int64  `json:"brand_id" validate:"required,gt=0"`
	NewQuantity int64  `json:"new_quantity" validate:"min=0"`
	Reason      string `json:"reason" validate:"max=500"`
}

// InventoryRecordResponse vista de una fila de inventario.
type InventoryRecordResponse struct {
	ID            int64     `json:"id"`
	ProductID     int64     `json:"product_id"`
	ProductName   string    `json:"product_name"`
	ProductCode   string    `json:"product_code,omitempty"`
	WarehouseID   int64     `json:"warehouse_id"`
	WarehouseName string    `json:"warehouse_name"`
	BrandID       int64     `json:"brand_id"`
	BrandName     string    `json:"brand_name"`
	Quantity      int64     `json:"quantity"`
	LastUpdated   time.Time `json:"last_updated"`
}

// WarehouseStockInfoResponse bodega con stock positivo de un producto.
type WarehouseStockInfoResponse struct {
	WarehouseID   int64  `json:"warehouse_id"`
	WarehouseName string `json:"warehouse_name"`
	Quantity      int64  `json:"quantity"`
}
