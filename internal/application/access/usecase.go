// Package access (capa de aplicación) administra las filas de WarehouseAccess:
// altas, cambios y bajas de permisos por bodega para el rol almacenista.
package access

import (
	"github.com/jhoicas/Almacen-api/internal/application/audit"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	domaccess "github.com/jhoicas/Almacen-api/internal/domain/access"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// UseCase administra los accesos por bodega.
type UseCase struct {
	accesses   repository.WarehouseAccessRepository
	users      repository.UserRepository
	warehouses repository.WarehouseRepository
	recorder   audit.Recorder
	log        *logger.Logger
}

// NewUseCase construye el caso de uso de accesos.
func NewUseCase(
	accesses repository.WarehouseAccessRepository,
	users repository.UserRepository,
	warehouses repository.WarehouseRepository,
	recorder audit.Recorder,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		accesses:   accesses,
		users:      users,
		warehouses: warehouses,
		recorder:   recorder,
		log:        log,
	}
}

// Create da de alta un acceso. Rechaza duplicados por (usuario, bodega) y
// valida que el usuario y la bodega existan.
func (uc *UseCase) Create(actor domaccess.Actor, req dto.CreateWarehouseAccessRequest) (*dto.WarehouseAccessResponse, error) {
	user, err := uc.users.GetByID(req.UserID)
	if err != nil {
		return nil, err
	}
	warehouse, err := uc.warehouses.GetActiveByID(req.WarehouseID)
	if err != nil {
		return nil, err
	}

	row := &entity.WarehouseAccess{
		UserID:      req.UserID,
		WarehouseID: req.WarehouseID,
		CanView:     req.CanView,
		CanEdit:     req.CanEdit,
	}
	if err := uc.accesses.Create(row); err != nil {
		return nil, err
	}

	uc.log.Info().
		Int64("user_id", req.UserID).
		Int64("warehouse_id", req.WarehouseID).
		Bool("can_view", req.CanView).
		Bool("can_edit", req.CanEdit).
		Msg("Acceso a bodega creado")
	uc.recorder.Record(audit.Entry{
		TableName: "WarehouseAccesses",
		RecordID:  row.ID,
		Action:    entity.AuditActionCreate,
		NewValues: row,
		UserID:    actor.UserID,
		IPAddress: actor.IP,
	})

	return &dto.WarehouseAccessResponse{
		ID:            row.ID,
		UserID:        row.UserID,
		UserName:      user.FullName(),
		WarehouseID:   row.WarehouseID,
		WarehouseName: warehouse.Name,
		CanView:       row.CanView,
		CanEdit:       row.CanEdit,
	}, nil
}

// Update cambia los flags de un acceso existente.
func (uc *UseCase) Update(actor domaccess.Actor, id int64, req dto.UpdateWarehouseAccessRequest) (*dto.WarehouseAccessResponse, error) {
	row, err := uc.accesses.GetByID(id)
	if err != nil {
		return nil, err
	}
	old := *row
	row.CanView = req.CanView
	row.CanEdit = req.CanEdit
	if err := uc.accesses.Update(row); err != nil {
		return nil, err
	}

	uc.recorder.Record(audit.Entry{
		TableName: "WarehouseAccesses",
		RecordID:  row.ID,
		Action:    entity.AuditActionUpdate,
		OldValues: old,
		NewValues: row,
		UserID:    actor.UserID,
		IPAddress: actor.IP,
	})

	return &dto.WarehouseAccessResponse{
		ID:          row.ID,
		UserID:      row.UserID,
		WarehouseID: row.WarehouseID,
		CanView:     row.CanView,
		CanEdit:     row.CanEdit,
	}, nil
}

// Delete elimina un acceso. El usuario afectado pierde la bodega de inmediato:
// el filtro evalúa contra el store en cada petición.
func (uc *UseCase) Delete(actor domaccess.Actor, id int64) error {
	row, err := uc.accesses.GetByID(id)
	if err != nil {
		return err
	}
	if err := uc.accesses.Delete(id); err != nil {
		return err
	}
	uc.recorder.Record(audit.Entry{
		TableName: "WarehouseAccesses",
		RecordID:  id,
		Action:    entity.AuditActionDelete,
		OldValues: row,
		UserID:    actor.UserID,
		IPAddress: actor.IP,
	})
	return nil
}

// ListByUser devuelve los accesos de un usuario con nombres resueltos.
func (uc *UseCase) ListByUser(userID int64) ([]dto.WarehouseAccessResponse, error) {
	if _, err := uc.users.GetByID(userID); err != nil {
		return nil, err
	}
	rows, err := uc.accesses.ListRowsByUser(userID)
	if err != nil {
		return nil, err
	}
	return toAccessResponses(rows), nil
}

// MyAccess devuelve los accesos del propio actor. Para los roles con acceso
// implícito devuelve todas las bodegas activas con ambos flags.
func (uc *UseCase) MyAccess(actor domaccess.Actor) ([]dto.WarehouseAccessResponse, error) {
	if actor.Role.HasImplicitAccess() {
		warehouses, err := uc.warehouses.ListActive()
		if err != nil {
			return nil, err
		}
		out := make([]dto.WarehouseAccessResponse, 0, len(warehouses))
		for _, w := range warehouses {
			out = append(out, dto.WarehouseAccessResponse{
				UserID:        actor.UserID,
				WarehouseID:   w.ID,
				WarehouseName: w.Name,
				CanView:       true,
				CanEdit:       true,
			})
		}
		return out, nil
	}
	rows, err := uc.accesses.ListRowsByUser(actor.UserID)
	if err != nil {
		return nil, err
	}
	return toAccessResponses(rows), nil
}

func toAccessResponses(rows []repository.AccessRow) []dto.WarehouseAccessResponse {
	out := make([]dto.WarehouseAccessResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.WarehouseAccessResponse{
			ID:            row.ID,
			UserID:        row.UserID,
			UserName:      row.UserName,
			WarehouseID:   row.WarehouseID,
			WarehouseName: row.WarehouseName,
			CanView:       row.CanView,
			CanEdit:       row.CanEdit,
		})
	}
	return out
}
