package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// AccessRow es la proyección de un WarehouseAccess con nombres resueltos.
type AccessRow struct {
	ID            int64
	UserID        int64
	UserName      string
	WarehouseID   int64
	WarehouseName string
	CanView       bool
	CanEdit       bool
}

// WarehouseAccessRepository define el puerto de persistencia para WarehouseAccess.
type WarehouseAccessRepository interface {
	// Create persiste el acceso; devuelve domain.ErrDuplicateAccess si ya
	// existe fila para (UserID, WarehouseID).
	Create(access *entity.WarehouseAccess) error
	GetByID(id int64) (*entity.WarehouseAccess, error)
	GetByUserAndWarehouse(userID, warehouseID int64) (*entity.WarehouseAccess, error)
	Update(access *entity.WarehouseAccess) error
	Delete(id int64) error
	ListByUser(userID int64) ([]*entity.WarehouseAccess, error)
	ListRowsByUser(userID int64) ([]AccessRow, error)
}
