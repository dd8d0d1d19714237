package dto

import "time"

// CreateProductRequest body para POST /api/Products.
type CreateProductRequest struct {
	Name         string  `json:"name" validate:"required,max=200"`
	Name2        string  `json:"name2" validate:"max=200"`
	MainCode     string  `json:"main_code" validate:"required,max=100"`
	Code2        string  `json:"code2" validate:"max=100"`
	Code3        string  `json:"code3" validate:"max=100"`
	ReorderPoint int64   `json:"reorder_point" validate:"min=0"`
	SafetyStock  int64   `json:"safety_stock" validate:"min=0"`
	BrandIDs     []int64 `json:"brand_ids" validate:"omitempty,dive,gt=0"`
}

// UpdateProductRequest body para PUT /api/Products/:id (campos opcionales).
type UpdateProductRequest struct {
	Name         *string `json:"name" validate:"omitempty,max=200"`
	Name2        *string `json:"name2" validate:"omitempty,max=200"`
	Code2        *string `json:"code2" validate:"omitempty,max=100"`
	Code3        *string `json:"code3" validate:"omitempty,max=100"`
	ReorderPoint *int64  `json:"reorder_point" validate:"omitempty,min=0"`
	SafetyStock  *int64  `json:"safety_stock" validate:"omitempty,min=0"`
}

// ProductResponse vista de un producto.
type ProductResponse struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Name2         string     `json:"name2,omitempty"`
	MainCode      string     `json:"main_code"`
	Code2         string     `json:"code2,omitempty"`
	Code3         string     `json:"code3,omitempty"`
	TotalQuantity int64      `json:"total_quantity"`
	ReorderPoint  int64      `json:"reorder_point"`
	SafetyStock   int64      `json:"safety_stock"`
	IsActive      bool       `json:"is_active"`
	CreatedDate   time.Time  `json:"created_date"`
	ModifiedDate  *time.Time `json:"modified_date,omitempty"`
}
