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

var _ repository.CostCenterRepository = (*CostCenterRepo)(nil)

// CostCenterRepo implementación de CostCenterRepository sobre PostgreSQL.
type CostCenterRepo struct {
	q Querier
}

// NewCostCenterRepository construye el adaptador de centros de costo.
func NewCostCenterRepository(q Querier) *CostCenterRepo {
	return &CostCenterRepo{q: q}
}

// GetActiveByID obtiene un centro de costo activo por ID.
func (r *CostCenterRepo) GetActiveByID(id int64) (*entity.CostCenter, error) {
	query := `
		SELECT id, name, description, is_active, created_date
		FROM cost_centers WHERE id = $1 AND is_active = true`
	var c entity.CostCenter
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Name, &c.Description, &c.IsActive, &c.CreatedDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get cost center: %w", err)
	}
	return &c, nil
}

// ListActive lista los centros de costo activos.
func (r *CostCenterRepo) ListActive() ([]*entity.CostCenter, error) {
	query := `
		SELECT id, name, description, is_active, created_date
		FROM cost_centers WHERE is_active = true ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list cost centers: %w", err)
	}
	defer rows.Close()

	var out []*entity.CostCenter
	for rows.Next() {
		var c entity.CostCenter
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.IsActive, &c.CreatedDate); err != nil {
			return nil, fmt.Errorf("scan cost center: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}
