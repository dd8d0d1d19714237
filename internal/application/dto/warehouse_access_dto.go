package dto

// CreateWarehouseAccessRequest body para POST /api/WarehouseAccess.
type CreateWarehouseAccessRequest struct {
	UserID      int64 `json:"user_id" validate:"required,gt=0"`
	WarehouseID int64 `json:"warehouse_id" validate:"required,gt=0"`
	CanView     bool  `json:"can_view"`
	CanEdit     bool  `json:"can_edit"`
}

// UpdateWarehouseAccessRequest body para PUT /api/WarehouseAccess/:id.
type UpdateWarehouseAccessRequest struct {
	CanView bool `json:"can_view"`
	CanEdit bool `json:"can_edit"`
}

// WarehouseAccessResponse vista de un acceso con nombres resueltos.
type WarehouseAccessResponse struct {
	ID            int64  `json:"id"`
	UserID        int64  `json:"user_id"`
	UserName      string `json:"user_name,omitempty"`
	WarehouseID   int64  `json:"warehouse_id"`
	WarehouseName string `json:"warehouse_name,omitempty"`
	CanView       bool   `json:"can_view"`
	CanEdit       bool   `json:"can_edit"`
}
