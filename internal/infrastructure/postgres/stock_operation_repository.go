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

var _ repository.StockOperationRepository = (*StockOperationRepo)(nil)

// StockOperationRepo implementación del historial append-only sobre PostgreSQL.
type StockOperationRepo struct {
	q Querier
}

// NewStockOperationRepository construye el adaptador del historial. Pasar pool o tx (Querier).
func NewStockOperationRepository(q Querier) *StockOperationRepo {
	return &StockOperationRepo{q: q}
}

// Create inserta la operación y asigna op.ID. No hay Update ni Delete:
// el historial solo crece.
func (r *StockOperationRepo) Create(op *entity.StockOperation) error {
	query := `
		INSERT INTO stock_operations
			(product_id, warehouse_id, brand_id, quantity, operation_type,
			 cost_center_id, reason, operation_date, created_by, created_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
		RETURNING id, created_date`
	err := r.q.QueryRow(context.Background(), query,
		op.ProductID, op.WarehouseID, op.BrandID, op.Quantity, op.OperationType,
		op.CostCenterID, op.Reason, op.OperationDate, op.CreatedBy,
	).Scan(&op.ID, &op.CreatedDate)
	if err != nil {
		return fmt.Errorf("create stock operation: %w", err)
	}
	return nil
}

const operationRowSelect = `
	SELECT so.id, so.product_id, p.name, p.main_code,
	       so.warehouse_id, w.name, so.brand_id, b.name,
	       so.quantity, so.operation_type, so.cost_center_id,
	       COALESCE(cc.name, ''), so.reason, so.operation_date,
	       so.created_by, u.first_name || ' ' || u.last_name
	FROM stock_operations so
	JOIN products p ON p.id = so.product_id
	JOIN warehouses w ON w.id = so.warehouse_id
	JOIN brands b ON b.id = so.brand_id
	JOIN users u ON u.id = so.created_by
	LEFT JOIN cost_centers cc ON cc.id = so.cost_center_id`

// GetRow obtiene una operación con los nombres resueltos.
func (r *StockOperationRepo) GetRow(id int64) (*repository.StockOperationRow, error) {
	query := operationRowSelect + `
	WHERE so.id = $1`
	row, err := scanOperationRow(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get stock operation: %w", err)
	}
	return row, nil
}

// List devuelve operaciones según el filtro, más recientes primero.
// WarehouseIDs nil = sin filtro de bodega; vacío = resultado vacío.
func (r *StockOperationRepo) List(filter repository.OperationFilter) ([]repository.StockOperationRow, error) {
	if filter.WarehouseIDs != nil && len(filter.WarehouseIDs) == 0 {
		return []repository.StockOperationRow{}, nil
	}
	query := operationRowSelect + `
	WHERE 1=1`
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.WarehouseIDs != nil {
		query += ` AND so.warehouse_id = ANY(` + arg(filter.WarehouseIDs) + `)`
	}
	if filter.FromDate != nil {
		query += ` AND so.operation_date >= ` + arg(*filter.FromDate)
	}
	if filter.ToDate != nil {
		query += ` AND so.operation_date <= ` + arg(*filter.ToDate)
	}
	if filter.OperationType != "" {
		query += ` AND so.operation_type = ` + arg(filter.OperationType)
	}
	query += `
	ORDER BY so.operation_date DESC, so.id DESC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock operations: %w", err)
	}
	defer rows.Close()

	var out []repository.StockOperationRow
	for rows.Next() {
		row, err := scanOperationRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock operation: %w", err)
		}
		out = append(out, *row)
	}
	return out, rows.Err()
}

// ListByTriple devuelve las operaciones de la tripleta en orden de creación.
func (r *StockOperationRepo) ListByTriple(productID, warehouseID, brandID int64) ([]*entity.StockOperation, error) {
	query := `
		SELECT id, product_id, warehouse_id, brand_id, quantity, operation_type,
		       cost_center_id, reason, operation_date, created_by, created_date
		FROM stock_operations
		WHERE product_id = $1 AND warehouse_id = $2 AND brand_id = $3
		ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, productID, warehouseID, brandID)
	if err != nil {
		return nil, fmt.Errorf("list operations by triple: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockOperation
	for rows.Next() {
		var op entity.StockOperation
		if err := rows.Scan(
			&op.ID, &op.ProductID, &op.WarehouseID, &op.BrandID, &op.Quantity,
			&op.OperationType, &op.CostCenterID, &op.Reason, &op.OperationDate,
			&op.CreatedBy, &op.CreatedDate,
		); err != nil {
			return nil, fmt.Errorf("scan operation: %w", err)
		}
		out = append(out, &op)
	}
	return out, rows.Err()
}

func scanOperationRow(row pgx.Row) (*repository.StockOperationRow, error) {
	var out repository.StockOperationRow
	err := row.Scan(
		&out.ID, &out.ProductID, &out.ProductName, &out.ProductCode,
		&out.WarehouseID, &out.WarehouseName, &out.BrandID, &out.BrandName,
		&out.Quantity, &out.OperationType, &out.CostCenterID,
		&out.CostCenterName, &out.Reason, &out.OperationDate,
		&out.CreatedBy, &out.CreatedByName,
	)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
