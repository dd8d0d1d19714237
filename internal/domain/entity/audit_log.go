package entity

import "time"

// Acciones registradas en el audit trail genérico.
const (
	AuditActionCreate = "CREATE"
	AuditActionUpdate = "UPDATE"
	AuditActionDelete = "DELETE"
	AuditActionLogin  = "LOGIN"
)

// AuditLog es el registro de cumplimiento de cambios sobre cualquier entidad.
// Distinto de StockOperation: este trail cubre CRUD genérico; el ledger de
// stock tiene su propio historial.
type AuditLog struct {
	ID          int64
	TableName   string
	RecordID    int64
	Action      string
	OldValues   string // JSON serializado, vacío si no aplica
	NewValues   string
	Description string
	UserID      int64
	Timestamp   time.Time
	IPAddress   string
}
