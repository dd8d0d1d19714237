package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo implementación del audit trail sobre PostgreSQL (append-only).
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador del audit trail.
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Create inserta una entrada del audit trail.
func (r *AuditLogRepo) Create(log *entity.AuditLog) error {
	query := `
		INSERT INTO audit_logs
			(table_name, record_id, action, old_values, new_values,
			 description, user_id, timestamp, ip_address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		log.TableName, log.RecordID, log.Action, log.OldValues, log.NewValues,
		log.Description, log.UserID, log.Timestamp, log.IPAddress,
	).Scan(&log.ID)
	if err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}

// List devuelve entradas según el filtro, más recientes primero.
func (r *AuditLogRepo) List(filter repository.AuditFilter) ([]repository.AuditRow, error) {
	query := `
		SELECT al.id, al.table_name, al.record_id, al.action, al.old_values,
		       al.new_values, al.description, al.user_id,
		       u.first_name || ' ' || u.last_name, al.timestamp, al.ip_address
		FROM audit_logs al
		JOIN users u ON u.id = al.user_id
		WHERE 1=1`
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.TableName != "" {
		query += ` AND al.table_name = ` + arg(filter.TableName)
	}
	if filter.RecordID != nil {
		query += ` AND al.record_id = ` + arg(*filter.RecordID)
	}
	if filter.FromDate != nil {
		query += ` AND al.timestamp >= ` + arg(*filter.FromDate)
	}
	if filter.ToDate != nil {
		query += ` AND al.timestamp <= ` + arg(*filter.ToDate)
	}
	query += `
		ORDER BY al.timestamp DESC, al.id DESC
		LIMIT 500`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	var out []repository.AuditRow
	for rows.Next() {
		var row repository.AuditRow
		if err := rows.Scan(
			&row.ID, &row.TableName, &row.RecordID, &row.Action, &row.OldValues,
			&row.NewValues, &row.Description, &row.UserID,
			&row.UserName, &row.Timestamp, &row.IPAddress,
		); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// CountByUser cuenta entradas de un usuario en un rango, opcionalmente por acción.
func (r *AuditLogRepo) CountByUser(userID int64, action string, from, to time.Time) (int64, error) {
	query := `
		SELECT COUNT(*) FROM audit_logs
		WHERE user_id = $1 AND timestamp >= $2 AND timestamp <= $3`
	args := []any{userID, from, to}
	if action != "" {
		query += ` AND action = $4`
		args = append(args, action)
	}
	var count int64
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count audit logs by user: %w", err)
	}
	return count, nil
}
