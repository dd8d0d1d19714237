package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// CostCenterRepository define el puerto de consulta para CostCenter.
type CostCenterRepository interface {
	GetActiveByID(id int64) (*entity.CostCenter, error)
	ListActive() ([]*entity.CostCenter, error)
}
