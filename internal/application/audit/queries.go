package audit

import (
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Queries expone la consulta del audit trail (solo Admin).
type Queries struct {
	repo repository.AuditLogRepository
}

// NewQueries construye el lado de lectura del audit trail.
func NewQueries(repo repository.AuditLogRepository) *Queries {
	return &Queries{repo: repo}
}

// List devuelve las entradas que cumplen el filtro, más recientes primero.
func (q *Queries) List(query dto.AuditQuery) ([]dto.AuditLogResponse, error) {
	rows, err := q.repo.List(repository.AuditFilter{
		TableName: query.TableName,
		RecordID:  query.RecordID,
		FromDate:  query.FromDate,
		ToDate:    query.ToDate,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.AuditLogResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.AuditLogResponse{
			ID:          row.ID,
			TableName:   row.TableName,
			RecordID:    row.RecordID,
			Action:      row.Action,
			OldValues:   row.OldValues,
			NewValues:   row.NewValues,
			Description: row.Description,
			UserID:      row.UserID,
			UserName:    row.UserName,
			Timestamp:   row.Timestamp,
			IPAddress:   row.IPAddress,
		})
	}
	return out, nil
}
