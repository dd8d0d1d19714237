package dto

import "time"

// AuditLogResponse vista de una entrada del audit trail.
type AuditLogResponse struct {
	ID          int64     `json:"id"`
	TableName   string    `json:"table_name"`
	RecordID    int64     `json:"record_id"`
	Action      string    `json:"action"`
	OldValues   string    `json:"old_values,omitempty"`
	NewValues   string    `json:"new_values,omitempty"`
	Description string    `json:"description,omitempty"`
	UserID      int64     `json:"user_id"`
	UserName    string    `json:"user_name"`
	Timestamp   time.Time `json:"timestamp"`
	IPAddress   string    `json:"ip_address,omitempty"`
}

// AuditQuery filtros de GET /api/Audit.
type AuditQuery struct {
	TableName string     `query:"tableName"`
	RecordID  *int64     `query:"recordId"`
	FromDate  *time.Time `query:"fromDate"`
	ToDate    *time.Time `query:"toDate"`
}
