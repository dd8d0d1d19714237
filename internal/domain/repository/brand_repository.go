package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// BrandRepository define el puerto de consulta para Brand.
// Las marcas no tienen superficie CRUD propia: son lookups del ledger.
type BrandRepository interface {
	GetActiveByID(id int64) (*entity.Brand, error)
	ListActive() ([]*entity.Brand, error)
	LinkProduct(productID, brandID int64) error
	ListByProduct(productID int64) ([]*entity.Brand, error)
}
