// Package access implementa el filtro de acceso por rol y bodega: un único
// predicado que reemplaza los chequeos por nombre de rol dispersos en cada
// handler. Se evalúa en cada petición contra el store de WarehouseAccess,
// sin caché (las listas por usuario son pequeñas).
package access

import (
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Capability es la capacidad solicitada sobre una bodega.
type Capability int

const (
	View Capability = iota
	Edit
	// ViewOrEdit se usa en el historial de operaciones: una bodega es visible
	// si el usuario puede verla o editarla.
	ViewOrEdit
)

// Actor identifica al usuario autenticado que ejecuta la petición.
type Actor struct {
	UserID int64
	Role   entity.Role
	IP     string
}

// Grants evalúa la capacidad contra una fila de WarehouseAccess (nil = sin fila).
func Grants(row *entity.WarehouseAccess, cap Capability) bool {
	if row == nil {
		return false
	}
	switch cap {
	case View:
		return row.CanView
	case Edit:
		return row.CanEdit
	case ViewOrEdit:
		return row.CanView || row.CanEdit
	}
	return false
}

// Filter decide, para un actor y una bodega, si la operación está permitida.
type Filter struct {
	accessRepo repository.WarehouseAccessRepository
}

// NewFilter construye el filtro sobre el store de accesos.
func NewFilter(accessRepo repository.WarehouseAccessRepository) *Filter {
	return &Filter{accessRepo: accessRepo}
}

// Can indica si el actor tiene la capacidad sobre la bodega.
// Admin/SeniorUser/SeniorStorekeeper: siempre. Storekeeper: según su fila de
// WarehouseAccess. Viewer: solo View, y únicamente a nivel de listado general
// (nunca Edit).
func (f *Filter) Can(actor Actor, warehouseID int64, cap Capability) (bool, error) {
	if actor.Role.HasImplicitAccess() {
		return true, nil
	}
	if actor.Role == entity.RoleViewer {
		return cap == View || cap == ViewOrEdit, nil
	}
	row, err := f.accessRepo.GetByUserAndWarehouse(actor.UserID, warehouseID)
	if err != nil {
		return false, err
	}
	return Grants(row, cap), nil
}

// VisibleWarehouses devuelve las bodegas sobre las que el actor tiene la
// capacidad. nil significa "todas" (roles con acceso implícito y Viewer en
// lectura); un slice vacío significa "ninguna".
func (f *Filter) VisibleWarehouses(actor Actor, cap Capability) ([]int64, error) {
	if actor.Role.HasImplicitAccess() {
		return nil, nil
	}
	if actor.Role == entity.RoleViewer {
		if cap == View || cap == ViewOrEdit {
			return nil, nil
		}
		return []int64{}, nil
	}
	rows, err := f.accessRepo.ListByUser(actor.UserID)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		if Grants(row, cap) {
			ids = append(ids, row.WarehouseID)
		}
	}
	return ids, nil
}
