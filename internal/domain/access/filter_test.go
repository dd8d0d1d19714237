package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/domain/access"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// fakeAccessRepo implementación en memoria de WarehouseAccessRepository para tests.
type fakeAccessRepo struct {
	rows []*entity.WarehouseAccess
}

func (f *fakeAccessRepo) Create(a *entity.WarehouseAccess) error {
	for _, row := range f.rows {
		if row.UserID == a.UserID && row.WarehouseID == a.WarehouseID {
			return nil
		}
	}
	f.rows = append(f.rows, a)
	return nil
}

func (f *fakeAccessRepo) GetByID(id int64) (*entity.WarehouseAccess, error) {
	for _, row := range f.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return nil, nil
}

func (f *fakeAccessRepo) GetByUserAndWarehouse(userID, warehouseID int64) (*entity.WarehouseAccess, error) {
	for _, row := range f.rows {
		if row.UserID == userID && row.WarehouseID == warehouseID {
			return row, nil
		}
	}
	return nil, nil
}

func (f *fakeAccessRepo) Update(a *entity.WarehouseAccess) error { return nil }
func (f *fakeAccessRepo) Delete(id int64) error                  { return nil }

func (f *fakeAccessRepo) ListByUser(userID int64) ([]*entity.WarehouseAccess, error) {
	var out []*entity.WarehouseAccess
	for _, row := range f.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeAccessRepo) ListRowsByUser(userID int64) ([]repository.AccessRow, error) {
	return nil, nil
}

const (
	userStorekeeper = int64(10)
	warehouseA      = int64(1)
	warehouseB      = int64(2)
)

func newFilterWith(rows ...*entity.WarehouseAccess) *access.Filter {
	return access.NewFilter(&fakeAccessRepo{rows: rows})
}

// Los roles superiores tienen acceso implícito a toda bodega, sin filas de acceso.
func TestCan_RolesSuperioresAccesoImplicito(t *testing.T) {
	f := newFilterWith() // sin filas

	for _, role := range []entity.Role{entity.RoleAdmin, entity.RoleSeniorUser, entity.RoleSeniorStorekeeper} {
		actor := access.Actor{UserID: 99, Role: role}
		for _, cap := range []access.Capability{access.View, access.Edit, access.ViewOrEdit} {
			ok, err := f.Can(actor, warehouseA, cap)
			require.NoError(t, err)
			assert.True(t, ok, "rol %s debe tener acceso implícito", role)
		}
	}
}

// Storekeeper sin fila de acceso: todo denegado.
func TestCan_StorekeeperSinFila_Denegado(t *testing.T) {
	f := newFilterWith()
	actor := access.Actor{UserID: userStorekeeper, Role: entity.RoleStorekeeper}

	for _, cap := range []access.Capability{access.View, access.Edit, access.ViewOrEdit} {
		ok, err := f.Can(actor, warehouseA, cap)
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

// Storekeeper con CanView pero sin CanEdit: puede ver, no editar.
func TestCan_StorekeeperSoloVista(t *testing.T) {
	f := newFilterWith(&entity.WarehouseAccess{
		ID: 1, UserID: userStorekeeper, WarehouseID: warehouseA, CanView: true, CanEdit: false,
	})
	actor := access.Actor{UserID: userStorekeeper, Role: entity.RoleStorekeeper}

	ok, err := f.Can(actor, warehouseA, access.View)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.Can(actor, warehouseA, access.Edit)
	require.NoError(t, err)
	assert.False(t, ok, "CanView no implica CanEdit")

	// Otra bodega sin fila: denegado
	ok, err = f.Can(actor, warehouseB, access.View)
	require.NoError(t, err)
	assert.False(t, ok)
}

// Las banderas no están anidadas: CanEdit=true con CanView=false es una fila válida.
func TestCan_BanderasNoAnidadas(t *testing.T) {
	f := newFilterWith(&entity.WarehouseAccess{
		ID: 1, UserID: userStorekeeper, WarehouseID: warehouseA, CanView: false, CanEdit: true,
	})
	actor := access.Actor{UserID: userStorekeeper, Role: entity.RoleStorekeeper}

	ok, err := f.Can(actor, warehouseA, access.Edit)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.Can(actor, warehouseA, access.View)
	require.NoError(t, err)
	assert.False(t, ok, "CanEdit no implica CanView")

	ok, err = f.Can(actor, warehouseA, access.ViewOrEdit)
	require.NoError(t, err)
	assert.True(t, ok, "el historial considera visible una bodega editable")
}

// Viewer: solo lectura a nivel de listado, nunca Edit.
func TestCan_ViewerSoloLectura(t *testing.T) {
	f := newFilterWith()
	actor := access.Actor{UserID: 50, Role: entity.RoleViewer}

	ok, err := f.Can(actor, warehouseA, access.View)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.Can(actor, warehouseA, access.Edit)
	require.NoError(t, err)
	assert.False(t, ok)
}

// VisibleWarehouses: nil = todas para roles superiores; lista filtrada para Storekeeper.
func TestVisibleWarehouses(t *testing.T) {
	f := newFilterWith(
		&entity.WarehouseAccess{ID: 1, UserID: userStorekeeper, WarehouseID: warehouseA, CanView: true, CanEdit: false},
		&entity.WarehouseAccess{ID: 2, UserID: userStorekeeper, WarehouseID: warehouseB, CanView: true, CanEdit: true},
	)

	admin := access.Actor{UserID: 1, Role: entity.RoleAdmin}
	ids, err := f.VisibleWarehouses(admin, access.View)
	require.NoError(t, err)
	assert.Nil(t, ids, "nil significa todas las bodegas")

	storekeeper := access.Actor{UserID: userStorekeeper, Role: entity.RoleStorekeeper}

	ids, err = f.VisibleWarehouses(storekeeper, access.View)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{warehouseA, warehouseB}, ids)

	ids, err = f.VisibleWarehouses(storekeeper, access.Edit)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{warehouseB}, ids, "solo la bodega con CanEdit")

	// Storekeeper sin filas: slice vacío (ninguna bodega), no nil
	other := access.Actor{UserID: 77, Role: entity.RoleStorekeeper}
	ids, err = f.VisibleWarehouses(other, access.View)
	require.NoError(t, err)
	require.NotNil(t, ids)
	assert.Empty(t, ids)
}

func TestRole_OrdenYAccesoImplicito(t *testing.T) {
	assert.True(t, entity.RoleAdmin.AtLeast(entity.RoleViewer))
	assert.True(t, entity.RoleSeniorUser.AtLeast(entity.RoleStorekeeper))
	assert.False(t, entity.RoleViewer.AtLeast(entity.RoleStorekeeper))

	assert.True(t, entity.RoleAdmin.HasImplicitAccess())
	assert.True(t, entity.RoleSeniorStorekeeper.HasImplicitAccess())
	assert.False(t, entity.RoleStorekeeper.HasImplicitAccess())
	assert.False(t, entity.RoleViewer.HasImplicitAccess())

	// IDs desconocidos degradan a Viewer
	assert.Equal(t, entity.RoleViewer, entity.RoleFromID(0))
	assert.Equal(t, entity.RoleViewer, entity.RoleFromID(42))
	assert.Equal(t, entity.RoleStorekeeper, entity.RoleFromID(4))
}
