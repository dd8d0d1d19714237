package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/audit"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
)

// AuditHandler maneja la consulta del audit trail.
type AuditHandler struct {
	queries *audit.Queries
}

// NewAuditHandler construye el handler.
func NewAuditHandler(queries *audit.Queries) *AuditHandler {
	return &AuditHandler{queries: queries}
}

// List godoc
// @Summary      Consultar el audit trail
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        tableName  query  string  false  "Filtrar por tabla"
// @Param        recordId   query  int     false  "Filtrar por registro"
// @Param        fromDate   query  string  false  "Fecha inicial (RFC 3339)"
// @Param        toDate     query  string  false  "Fecha final (RFC 3339)"
// @Success      200  {array}   dto.AuditLogResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/Audit [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	query := dto.AuditQuery{TableName: c.Query("tableName")}
	if id := c.QueryInt("recordId", 0); id > 0 {
		recordID := int64(id)
		query.RecordID = &recordID
	}
	if raw := c.Query("fromDate"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return respondBadBody(c)
		}
		query.FromDate = &t
	}
	if raw := c.Query("toDate"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return respondBadBody(c)
		}
		query.ToDate = &t
	}
	rows, err := h.queries.List(query)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}
