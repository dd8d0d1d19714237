package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id int64) (*entity.Product, error)
	GetActiveByID(id int64) (*entity.Product, error)
	Update(product *entity.Product) error
	// List lista productos activos; search filtra por nombre o código
	// (insensible a mayúsculas y acentos).
	List(search string, limit, offset int) ([]*entity.Product, error)
	// SoftDelete marca IsActive=false sin borrar la fila.
	SoftDelete(id int64) error
	// RecomputeTotalQuantity re-suma InventoryRecord.Quantity del producto
	// y persiste el rollup (dentro de la transacción del ledger).
	RecomputeTotalQuantity(productID int64) error
	// ListBelowReorderPoint devuelve productos activos con rollup <= punto de reorden.
	ListBelowReorderPoint() ([]*entity.Product, error)
}
