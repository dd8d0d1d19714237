package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo resuelve las consultas agregadas de reportes en SQL.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// SummaryCounts devuelve los agregados globales del almacén.
func (r *ReportRepo) SummaryCounts() (repository.SummaryCounts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM products WHERE is_active = true),
			(SELECT COUNT(*) FROM warehouses WHERE is_active = true),
			(SELECT COUNT(*) FROM users WHERE is_active = true),
			(SELECT COALESCE(SUM(quantity), 0) FROM inventory_records)`
	var c repository.SummaryCounts
	err := r.q.QueryRow(context.Background(), query).Scan(
		&c.TotalProducts, &c.TotalWarehouses, &c.TotalUsers, &c.TotalInventoryQty,
	)
	if err != nil {
		return repository.SummaryCounts{}, fmt.Errorf("summary counts: %w", err)
	}
	return c, nil
}

// WarehouseTotals devuelve los totales de inventario por bodega activa.
func (r *ReportRepo) WarehouseTotals() ([]repository.WarehouseTotalsRow, error) {
	query := `
		SELECT w.id, w.name,
		       COUNT(DISTINCT ir.product_id),
		       COALESCE(SUM(ir.quantity), 0),
		       COALESCE(MAX(ir.last_updated), w.created_date)
		FROM warehouses w
		LEFT JOIN inventory_records ir ON ir.warehouse_id = w.id
		WHERE w.is_active = true
		GROUP BY w.id, w.name, w.created_date
		ORDER BY w.name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("warehouse totals: %w", err)
	}
	defer rows.Close()

	var out []repository.WarehouseTotalsRow
	for rows.Next() {
		var row repository.WarehouseTotalsRow
		if err := rows.Scan(
			&row.WarehouseID, &row.WarehouseName,
			&row.TotalProducts, &row.TotalQuantity, &row.LastUpdated,
		); err != nil {
			return nil, fmt.Errorf("scan warehouse totals: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// UserActivity agrega logins y acciones por usuario activo en el rango.
func (r *ReportRepo) UserActivity(from, to time.Time) ([]repository.UserActivityRow, error) {
	query := `
		SELECT u.id, u.first_name || ' ' || u.last_name, u.role_id, u.last_login,
		       COUNT(al.id) FILTER (WHERE al.action = $3),
		       COUNT(al.id)
		FROM users u
		LEFT JOIN audit_logs al
			ON al.user_id = u.id AND al.timestamp >= $1 AND al.timestamp <= $2
		WHERE u.is_active = true
		GROUP BY u.id, u.first_name, u.last_name, u.role_id, u.last_login
		ORDER BY COUNT(al.id) DESC, u.last_name`
	rows, err := r.q.Query(context.Background(), query, from, to, entity.AuditActionLogin)
	if err != nil {
		return nil, fmt.Errorf("user activity: %w", err)
	}
	defer rows.Close()

	var out []repository.UserActivityRow
	for rows.Next() {
		var row repository.UserActivityRow
		if err := rows.Scan(
			&row.UserID, &row.UserName, &row.RoleID, &row.LastLogin,
			&row.LoginCount, &row.ActionsCount,
		); err != nil {
			return nil, fmt.Errorf("scan user activity: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
