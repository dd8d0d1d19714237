// Package audit implementa el registro y la consulta del audit trail genérico.
package audit

import (
	"encoding/json"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// Recorder registra entradas del audit trail. Las escrituras son best-effort:
// un fallo al auditar nunca revierte la operación de negocio ya confirmada.
type Recorder interface {
	Record(entry Entry)
}

// Entry es una entrada de auditoría pendiente de persistir.
type Entry struct {
	TableName   string
	RecordID    int64
	Action      string
	OldValues   interface{} // se serializa a JSON; nil omite el campo
	NewValues   interface{}
	Description string
	UserID      int64
	IPAddress   string
}

// RepoRecorder persiste entradas en el AuditLogRepository.
type RepoRecorder struct {
	repo repository.AuditLogRepository
	log  *logger.Logger
}

var _ Recorder = (*RepoRecorder)(nil)

// NewRecorder construye el recorder sobre el repositorio de auditoría.
func NewRecorder(repo repository.AuditLogRepository, log *logger.Logger) *RepoRecorder {
	return &RepoRecorder{repo: repo, log: log}
}

// Record serializa y persiste la entrada. Los errores solo se loguean.
func (r *RepoRecorder) Record(entry Entry) {
	logRow := &entity.AuditLog{
		TableName:   entry.TableName,
		RecordID:    entry.RecordID,
		Action:      entry.Action,
		OldValues:   marshalValues(entry.OldValues),
		NewValues:   marshalValues(entry.NewValues),
		Description: entry.Description,
		UserID:      entry.UserID,
		Timestamp:   time.Now().UTC(),
		IPAddress:   entry.IPAddress,
	}
	if err := r.repo.Create(logRow); err != nil {
		r.log.Error().Err(err).
			Str("table", entry.TableName).
			Int64("record_id", entry.RecordID).
			Str("action", entry.Action).
			Msg("No se pudo registrar la entrada de auditoría")
	}
}

func marshalValues(v interface{}) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
