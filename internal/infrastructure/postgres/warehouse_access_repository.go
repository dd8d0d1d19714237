package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.WarehouseAccessRepository = (*WarehouseAccessRepo)(nil)

// WarehouseAccessRepo implementación de WarehouseAccessRepository sobre PostgreSQL.
type WarehouseAccessRepo struct {
	q Querier
}

// NewWarehouseAccessRepository construye el adaptador de accesos por bodega.
func NewWarehouseAccessRepository(q Querier) *WarehouseAccessRepo {
	return &WarehouseAccessRepo{q: q}
}

// Create inserta el acceso. El par (user_id, warehouse_id) es único: una
// violación se traduce a ErrDuplicateAccess.
func (r *WarehouseAccessRepo) Create(access *entity.WarehouseAccess) error {
	query := `
		INSERT INTO warehouse_accesses (user_id, warehouse_id, can_view, can_edit)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		access.UserID, access.WarehouseID, access.CanView, access.CanEdit,
	).Scan(&access.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateAccess
		}
		return fmt.Errorf("create warehouse access: %w", err)
	}
	return nil
}

// GetByID obtiene un acceso por ID.
func (r *WarehouseAccessRepo) GetByID(id int64) (*entity.WarehouseAccess, error) {
	query := `
		SELECT id, user_id, warehouse_id, can_view, can_edit
		FROM warehouse_accesses WHERE id = $1`
	var a entity.WarehouseAccess
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.UserID, &a.WarehouseID, &a.CanView, &a.CanEdit,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get warehouse access: %w", err)
	}
	return &a, nil
}

// GetByUserAndWarehouse obtiene el acceso de un usuario a una bodega.
// Sin fila devuelve (nil, nil): para el filtro de acceso la ausencia
// significa "sin permiso", no un error.
func (r *WarehouseAccessRepo) GetByUserAndWarehouse(userID, warehouseID int64) (*entity.WarehouseAccess, error) {
	query := `
		SELECT id, user_id, warehouse_id, can_view, can_edit
		FROM warehouse_accesses WHERE user_id = $1 AND warehouse_id = $2`
	var a entity.WarehouseAccess
	err := r.q.QueryRow(context.Background(), query, userID, warehouseID).Scan(
		&a.ID, &a.UserID, &a.WarehouseID, &a.CanView, &a.CanEdit,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get access by user and warehouse: %w", err)
	}
	return &a, nil
}

// Update persiste los flags del acceso.
func (r *WarehouseAccessRepo) Update(access *entity.WarehouseAccess) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE warehouse_accesses SET can_view = $2, can_edit = $3 WHERE id = $1`,
		access.ID, access.CanView, access.CanEdit,
	)
	if err != nil {
		return fmt.Errorf("update warehouse access: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el acceso (borrado físico: es una fila de permisos, no de negocio).
func (r *WarehouseAccessRepo) Delete(id int64) error {
	tag, err := r.q.Exec(context.Background(),
		`DELETE FROM warehouse_accesses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete warehouse access: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByUser devuelve los accesos de un usuario.
func (r *WarehouseAccessRepo) ListByUser(userID int64) ([]*entity.WarehouseAccess, error) {
	query := `
		SELECT id, user_id, warehouse_id, can_view, can_edit
		FROM warehouse_accesses WHERE user_id = $1`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list accesses by user: %w", err)
	}
	defer rows.Close()

	var out []*entity.WarehouseAccess
	for rows.Next() {
		var a entity.WarehouseAccess
		if err := rows.Scan(&a.ID, &a.UserID, &a.WarehouseID, &a.CanView, &a.CanEdit); err != nil {
			return nil, fmt.Errorf("scan warehouse access: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

// ListRowsByUser devuelve los accesos de un usuario con nombres resueltos.
func (r *WarehouseAccessRepo) ListRowsByUser(userID int64) ([]repository.AccessRow, error) {
	query := `
		SELECT wa.id, wa.user_id, u.first_name || ' ' || u.last_name,
		       wa.warehouse_id, w.name, wa.can_view, wa.can_edit
		FROM warehouse_accesses wa
		JOIN users u ON u.id = wa.user_id
		JOIN warehouses w ON w.id = wa.warehouse_id
		WHERE wa.user_id = $1
		ORDER BY w.name`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list access rows by user: %w", err)
	}
	defer rows.Close()

	var out []repository.AccessRow
	for rows.Next() {
		var row repository.AccessRow
		if err := rows.Scan(
			&row.ID, &row.UserID, &row.UserName,
			&row.WarehouseID, &row.WarehouseName, &row.CanView, &row.CanEdit,
		); err != nil {
			return nil, fmt.Errorf("scan access row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
