package repository

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// InventoryRow es la proyección de lectura de un InventoryRecord con los
// nombres resueltos de producto, bodega y marca (para listados).
type InventoryRow struct {
	ID            int64
	ProductID     int64
	ProductName   string
	ProductCode   string
	WarehouseID   int64
	WarehouseName string
	BrandID       int64
	BrandName     string
	Quantity      int64
	LastUpdated   time.Time
}

// WarehouseStockRow es la proyección "bodegas con stock de un producto".
type WarehouseStockRow struct {
	WarehouseID   int64
	WarehouseName string
	Quantity      int64
}

// InventoryRepository define el puerto para el estado actual del ledger
// (una fila por tripleta producto+bodega+marca).
type InventoryRepository interface {
	Get(productID, warehouseID, brandID int64) (*entity.InventoryRecord, error)
	// GetForUpdate bloquea la fila de la tripleta (SELECT FOR UPDATE) para
	// serializar el check-then-write de Issue. Si no existe fila, devuelve
	// un registro con Quantity=0 sin bloquear nada.
	GetForUpdate(productID, warehouseID, brandID int64) (*entity.InventoryRecord, error)
	// Upsert inserta o fija la cantidad absoluta de la tripleta. Solo para
	// mutaciones que ya serializaron la fila con GetForUpdate (Issue, Adjust).
	Upsert(record *entity.InventoryRecord) error
	// AddQuantity suma delta a la cantidad de la tripleta en una sola
	// sentencia, creando la fila si no existe. El incremento se resuelve en
	// el UPDATE del conflicto, así dos primeras entradas concurrentes sobre
	// la misma tripleta se acumulan en vez de pisarse.
	AddQuantity(productID, warehouseID, brandID, delta int64) (*entity.InventoryRecord, error)
	// List devuelve filas de inventario. warehouseIDs nil = sin filtro;
	// slice vacío = ninguna bodega visible (lista vacía).
	List(warehouseIDs []int64) ([]InventoryRow, error)
	ListByWarehouse(warehouseID int64) ([]InventoryRow, error)
	// WarehousesWithStock devuelve bodegas activas con cantidad > 0 del
	// producto, restringidas a warehouseIDs si no es nil.
	WarehousesWithStock(productID int64, warehouseIDs []int64) ([]WarehouseStockRow, error)
}
