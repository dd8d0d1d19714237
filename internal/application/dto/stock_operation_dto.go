package dto

import "time"

// IssueStockRequest body para POST /api/StockOperations/issue.
type IssueStockRequest struct {
	ProductID    int64  `json:"product_id" validate:"required,gt=0"`
	WarehouseID  int64  `json:"warehouse_id" validate:"required,gt=0"`
	BrandID      int64  `json:"brand_id" validate:"required,gt=0"`
	Quantity     int64  `json:"quantity" validate:"required,gt=0"`
	CostCenterID int64  `json:"cost_center_id" validate:"required,gt=0"`
	Reason       string `json:"reason" validate:"max=500"`
}

// ReceiveStockRequest body para POST /api/StockOperations/receive.
type ReceiveStockRequest struct {
	ProductID   int64  `json:"product_id" validate:"required,gt=0"`
	WarehouseID int64  `json:"warehouse_id" validate:"required,gt=0"`
	BrandID     int64  `json:"brand_id" validate:"required,gt=0"`
	Quantity    int64  `json:"quantity" validate:"required,gt=0"`
	Reason      string `json:"reason" validate:"max=500"`
}

// StockOperationResponse vista de una operación del historial.
type StockOperationResponse struct {
	ID             int64     `json:"id"`
	ProductID      int64     `json:"product_id"`
	ProductName    string    `json:"product_name"`
	ProductCode    string    `json:"product_code,omitempty"`
	WarehouseID    int64     `json:"warehouse_id"`
	WarehouseName  string    `json:"warehouse_name"`
	BrandID        int64     `json:"brand_id"`
	BrandName      string    `json:"brand_name"`
	Quantity       int64     `json:"quantity"`
	OperationType  string    `json:"operation_type"`
	CostCenterID   *int64    `json:"cost_center_id,omitempty"`
	CostCenterName string    `json:"cost_center_name,omitempty"`
	Reason         string    `json:"reason,omitempty"`
	OperationDate  time.Time `json:"operation_date"`
	CreatedBy      int64     `json:"created_by"`
	CreatedByName  string    `json:"created_by_name"`
}

// OperationHistoryQuery filtros de GET /api/StockOperations.
type OperationHistoryQuery struct {
	FromDate      *time.Time `query:"fromDate"`
	ToDate        *time.Time `query:"toDate"`
	OperationType string     `query:"operationType" validate:"omitempty,oneof=ISSUE RECEIVE ADJUST"`
}
