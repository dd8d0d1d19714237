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

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de inventario. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Get obtiene la fila de inventario de la tripleta.
func (r *InventoryRepo) Get(productID, warehouseID, brandID int64) (*entity.InventoryRecord, error) {
	query := `
		SELECT id, product_id, warehouse_id, brand_id, quantity, last_updated
		FROM inventory_records
		WHERE product_id = $1 AND warehouse_id = $2 AND brand_id = $3`
	var rec entity.InventoryRecord
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID, brandID).Scan(
		&rec.ID, &rec.ProductID, &rec.WarehouseID, &rec.BrandID, &rec.Quantity, &rec.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get inventory record: %w", err)
	}
	return &rec, nil
}

// GetForUpdate obtiene la fila y la bloquea (SELECT FOR UPDATE) para serializar
// el check-then-write de las mutaciones. Si no existe fila todavía, devuelve
// un registro con cantidad cero sin bloquear nada.
func (r *InventoryRepo) GetForUpdate(productID, warehouseID, brandID int64) (*entity.InventoryRecord, error) {
	query := `
		SELECT id, product_id, warehouse_id, brand_id, quantity, last_updated
		FROM inventory_records
		WHERE product_id = $1 AND warehouse_id = $2 AND brand_id = $3
		FOR UPDATE`
	var rec entity.InventoryRecord
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID, brandID).Scan(
		&rec.ID, &rec.ProductID, &rec.WarehouseID, &rec.BrandID, &rec.Quantity, &rec.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.InventoryRecord{ProductID: productID, WarehouseID: warehouseID, BrandID: brandID}, nil
		}
		return nil, fmt.Errorf("get inventory record for update: %w", err)
	}
	return &rec, nil
}

// Upsert inserta o fija la cantidad absoluta de la tripleta. La fila debe
// estar bloqueada por GetForUpdate; para sumas sin fila previa usar AddQuantity.
func (r *InventoryRepo) Upsert(record *entity.InventoryRecord) error {
	query := `
		INSERT INTO inventory_records (product_id, warehouse_id, brand_id, quantity, last_updated)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (product_id, warehouse_id, brand_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, last_updated = now()
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		record.ProductID, record.WarehouseID, record.BrandID, record.Quantity,
	).Scan(&record.ID)
	if err != nil {
		return fmt.Errorf("upsert inventory record: %w", err)
	}
	return nil
}

// AddQuantity suma delta de forma atómica, creando la fila si no existe.
// El incremento vive en el UPDATE del conflicto: si dos transacciones insertan
// la misma tripleta a la vez, la segunda espera el commit de la primera y suma
// sobre la cantidad ya confirmada en lugar de sobrescribirla.
func (r *InventoryRepo) AddQuantity(productID, warehouseID, brandID, delta int64) (*entity.InventoryRecord, error) {
	query := `
		INSERT INTO inventory_records (product_id, warehouse_id, brand_id, quantity, last_updated)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (product_id, warehouse_id, brand_id)
		DO UPDATE SET quantity = inventory_records.quantity + EXCLUDED.quantity, last_updated = now()
		RETURNING id, product_id, warehouse_id, brand_id, quantity, last_updated`
	var rec entity.InventoryRecord
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID, brandID, delta).Scan(
		&rec.ID, &rec.ProductID, &rec.WarehouseID, &rec.BrandID, &rec.Quantity, &rec.LastUpdated,
	)
	if err != nil {
		return nil, fmt.Errorf("add inventory quantity: %w", err)
	}
	return &rec, nil
}

const inventoryRowSelect = `
	SELECT ir.id, ir.product_id, p.name, p.main_code,
	       ir.warehouse_id, w.name, ir.brand_id, b.name,
	       ir.quantity, ir.last_updated
	FROM inventory_records ir
	JOIN products p ON p.id = ir.product_id
	JOIN warehouses w ON w.id = ir.warehouse_id
	JOIN brands b ON b.id = ir.brand_id`

// List devuelve las filas de inventario de productos activos.
// warehouseIDs nil = sin filtro; slice vacío = resultado vacío.
func (r *InventoryRepo) List(warehouseIDs []int64) ([]repository.InventoryRow, error) {
	if warehouseIDs != nil && len(warehouseIDs) == 0 {
		return []repository.InventoryRow{}, nil
	}
	query := inventoryRowSelect + `
	WHERE p.is_active = true`
	args := []any{}
	if warehouseIDs != nil {
		query += ` AND ir.warehouse_id = ANY($1)`
		args = append(args, warehouseIDs)
	}
	query += `
	ORDER BY p.name, w.name, b.name`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	return scanInventoryRows(rows)
}

// ListByWarehouse devuelve las filas de inventario de una bodega.
func (r *InventoryRepo) ListByWarehouse(warehouseID int64) ([]repository.InventoryRow, error) {
	query := inventoryRowSelect + `
	WHERE p.is_active = true AND ir.warehouse_id = $1
	ORDER BY p.name, b.name`
	rows, err := r.q.Query(context.Background(), query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list inventory by warehouse: %w", err)
	}
	defer rows.Close()
	return scanInventoryRows(rows)
}

// WarehousesWithStock devuelve las bodegas activas con cantidad positiva del
// producto, restringidas a warehouseIDs si no es nil.
func (r *InventoryRepo) WarehousesWithStock(productID int64, warehouseIDs []int64) ([]repository.WarehouseStockRow, error) {
	if warehouseIDs != nil && len(warehouseIDs) == 0 {
		return []repository.WarehouseStockRow{}, nil
	}
	query := `
		SELECT ir.warehouse_id, w.name, SUM(ir.quantity)
		FROM inventory_records ir
		JOIN warehouses w ON w.id = ir.warehouse_id
		WHERE ir.product_id = $1 AND ir.quantity > 0 AND w.is_active = true`
	args := []any{productID}
	if warehouseIDs != nil {
		query += ` AND ir.warehouse_id = ANY($2)`
		args = append(args, warehouseIDs)
	}
	query += `
		GROUP BY ir.warehouse_id, w.name
		ORDER BY w.name`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("warehouses with stock: %w", err)
	}
	defer rows.Close()

	var out []repository.WarehouseStockRow
	for rows.Next() {
		var row repository.WarehouseStockRow
		if err := rows.Scan(&row.WarehouseID, &row.WarehouseName, &row.Quantity); err != nil {
			return nil, fmt.Errorf("scan warehouse stock: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func scanInventoryRows(rows pgx.Rows) ([]repository.InventoryRow, error) {
	var out []repository.InventoryRow
	for rows.Next() {
		var row repository.InventoryRow
		if err := rows.Scan(
			&row.ID, &row.ProductID, &row.ProductName, &row.ProductCode,
			&row.WarehouseID, &row.WarehouseName, &row.BrandID, &row.BrandName,
			&row.Quantity, &row.LastUpdated,
		); err != nil {
			return nil, fmt.Errorf("scan inventory row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
