package repository

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// AuditRow es la proyección de un AuditLog con el nombre del actor resuelto.
type AuditRow struct {
	ID          int64
	TableName   string
	RecordID    int64
	Action      string
	OldValues   string
	NewValues   string
	Description string
	UserID      int64
	UserName    string
	Timestamp   time.Time
	IPAddress   string
}

// AuditFilter filtros de consulta del audit trail.
type AuditFilter struct {
	TableName string
	RecordID  *int64
	FromDate  *time.Time
	ToDate    *time.Time
}

// AuditLogRepository define el puerto del audit trail genérico (append-only).
type AuditLogRepository interface {
	Create(log *entity.AuditLog) error
	List(filter AuditFilter) ([]AuditRow, error)
	// CountByUser cuenta entradas de un usuario en un rango, opcionalmente por acción.
	CountByUser(userID int64, action string, from, to time.Time) (int64, error)
}
