package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// WarehouseRepository define el puerto de consulta para Warehouse.
// Sin CRUD propio: las bodegas se consultan para validación y reportes.
type WarehouseRepository interface {
	GetActiveByID(id int64) (*entity.Warehouse, error)
	ListActive() ([]*entity.Warehouse, error)
}
