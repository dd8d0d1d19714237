package repository

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// StockOperationRow es la proyección de lectura de una operación con nombres resueltos.
type StockOperationRow struct {
	ID             int64
	ProductID      int64
	ProductName    string
	ProductCode    string
	WarehouseID    int64
	WarehouseName  string
	BrandID        int64
	BrandName      string
	Quantity       int64
	OperationType  string
	CostCenterID   *int64
	CostCenterName string
	Reason         string
	OperationDate  time.Time
	CreatedBy      int64
	CreatedByName  string
}

// OperationFilter filtros del historial de operaciones.
// WarehouseIDs nil = sin filtro de bodega; vacío = ninguna visible.
type OperationFilter struct {
	WarehouseIDs  []int64
	FromDate      *time.Time
	ToDate        *time.Time
	OperationType string
}

// StockOperationRepository define el puerto del historial append-only del ledger.
type StockOperationRepository interface {
	// Create persiste la operación y asigna op.ID (autoincremental).
	Create(op *entity.StockOperation) error
	GetRow(id int64) (*StockOperationRow, error)
	// List devuelve operaciones ordenadas por fecha descendente.
	List(filter OperationFilter) ([]StockOperationRow, error)
	// ListByTriple devuelve las operaciones de una tripleta en orden de creación
	// (para reconstrucción/verificación del ledger).
	ListByTriple(productID, warehouseID, brandID int64) ([]*entity.StockOperation, error)
}
