package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/reports"
)

// ReportHandler maneja los reportes gerenciales.
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// InventorySummary godoc
// @Summary      Resumen general de inventario
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventorySummaryResponse
// @Router       /api/Reports/inventory-summary [get]
func (h *ReportHandler) InventorySummary(c *fiber.Ctx) error {
	summary, err := h.uc.InventorySummary()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// WarehouseInventory godoc
// @Summary      Totales de inventario por bodega
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.WarehouseInventoryReportRow
// @Router       /api/Reports/warehouse-inventory [get]
func (h *ReportHandler) WarehouseInventory(c *fiber.Ctx) error {
	rows, err := h.uc.WarehouseInventory()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}

// LowStockAlerts godoc
// @Summary      Alertas de stock bajo
// @Description  Productos en o bajo su punto de reorden. CRITICAL si el stock
//
//	está en o bajo el stock de seguridad.
//
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockAlertRow
// @Router       /api/Reports/low-stock-alerts [get]
func (h *ReportHandler) LowStockAlerts(c *fiber.Ctx) error {
	rows, err := h.uc.LowStockAlerts()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}

// UserActivity godoc
// @Summary      Actividad de usuarios
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        fromDate  query  string  false  "Fecha inicial (RFC 3339); por defecto 30 días atrás"
// @Param        toDate    query  string  false  "Fecha final (RFC 3339); por defecto ahora"
// @Success      200  {array}  dto.UserActivityRow
// @Router       /api/Reports/user-activity [get]
func (h *ReportHandler) UserActivity(c *fiber.Ctx) error {
	var from, to *time.Time
	if raw := c.Query("fromDate"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return respondBadBody(c)
		}
		from = &t
	}
	if raw := c.Query("toDate"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return respondBadBody(c)
		}
		to = &t
	}
	rows, err := h.uc.UserActivity(from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}

// InventorySummaryPDF godoc
// @Summary      Resumen de inventario en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/Reports/inventory-summary/pdf [get]
func (h *ReportHandler) InventorySummaryPDF(c *fiber.Ctx) error {
	doc, err := h.uc.InventorySummaryPDF()
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="resumen-inventario.pdf"`)
	return c.Send(doc)
}
