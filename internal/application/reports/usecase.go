// Package reports genera los reportes gerenciales: resumen de inventario,
// totales por bodega, alertas de stock bajo y actividad de usuarios.
package reports

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// PDFGenerator renderiza el resumen de inventario como documento PDF.
type PDFGenerator interface {
	InventorySummary(summary dto.InventorySummaryResponse, warehouses []dto.WarehouseInventoryReportRow) ([]byte, error)
}

// UseCase arma los reportes a partir de las consultas agregadas.
type UseCase struct {
	reports  repository.ReportRepository
	products repository.ProductRepository
	pdf      PDFGenerator
	log      *logger.Logger
}

// NewUseCase construye el caso de uso de reportes.
func NewUseCase(reports repository.ReportRepository, products repository.ProductRepository, pdf PDFGenerator, log *logger.Logger) *UseCase {
	return &UseCase{reports: reports, products: products, pdf: pdf, log: log}
}

// InventorySummary devuelve los agregados globales del almacén.
func (uc *UseCase) InventorySummary() (*dto.InventorySummaryResponse, error) {
	counts, err := uc.reports.SummaryCounts()
	if err != nil {
		return nil, err
	}
	low, err := uc.products.ListBelowReorderPoint()
	if err != nil {
		return nil, err
	}
	return &dto.InventorySummaryResponse{
		TotalProducts:     counts.TotalProducts,
		TotalWarehouses:   counts.TotalWarehouses,
		TotalUsers:        counts.TotalUsers,
		LowStockProducts:  int64(len(low)),
		TotalInventoryQty: counts.TotalInventoryQty,
		GeneratedAt:       time.Now().UTC(),
	}, nil
}

// WarehouseInventory devuelve totales de inventario por bodega activa.
func (uc *UseCase) WarehouseInventory() ([]dto.WarehouseInventoryReportRow, error) {
	rows, err := uc.reports.WarehouseTotals()
	if err != nil {
		return nil, err
	}
	out := make([]dto.WarehouseInventoryReportRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.WarehouseInventoryReportRow{
			WarehouseID:   row.WarehouseID,
			WarehouseName: row.WarehouseName,
			TotalProducts: row.TotalProducts,
			TotalQuantity: row.TotalQuantity,
			LastUpdated:   row.LastUpdated,
		})
	}
	return out, nil
}

// LowStockAlerts devuelve los productos activos en o por debajo de su punto
// de reorden. CRITICAL si el rollup está en o bajo el stock de seguridad,
// WARNING en el resto del rango.
func (uc *UseCase) LowStockAlerts() ([]dto.LowStockAlertRow, error) {
	products, err := uc.products.ListBelowReorderPoint()
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockAlertRow, 0, len(products))
	for _, p := range products {
		level := dto.AlertLevelWarning
		if p.TotalQuantity <= p.SafetyStock {
			level = dto.AlertLevelCritical
		}
		out = append(out, dto.LowStockAlertRow{
			ProductID:       p.ID,
			ProductName:     p.Name,
			MainCode:        p.MainCode,
			CurrentQuantity: p.TotalQuantity,
			ReorderPoint:    p.ReorderPoint,
			SafetyStock:     p.SafetyStock,
			ShortageAmount:  p.ReorderPoint - p.TotalQuantity,
			AlertLevel:      level,
		})
	}
	return out, nil
}

// UserActivity devuelve la actividad agregada por usuario en el rango dado.
// Si el rango viene vacío se usan los últimos 30 días.
func (uc *UseCase) UserActivity(from, to *time.Time) ([]dto.UserActivityRow, error) {
	end := time.Now().UTC()
	if to != nil {
		end = *to
	}
	start := end.AddDate(0, 0, -30)
	if from != nil {
		start = *from
	}
	rows, err := uc.reports.UserActivity(start, end)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserActivityRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.UserActivityRow{
			UserID:       row.UserID,
			UserName:     row.UserName,
			RoleName:     entity.RoleFromID(row.RoleID).String(),
			LastLogin:    row.LastLogin,
			LoginCount:   row.LoginCount,
			ActionsCount: row.ActionsCount,
		})
	}
	return out, nil
}

// InventorySummaryPDF arma el resumen y lo renderiza como PDF.
func (uc *UseCase) InventorySummaryPDF() ([]byte, error) {
	summary, err := uc.InventorySummary()
	if err != nil {
		return nil, err
	}
	warehouses, err := uc.WarehouseInventory()
	if err != nil {
		return nil, err
	}
	doc, err := uc.pdf.InventorySummary(*summary, warehouses)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int("bytes", len(doc)).Msg("Reporte PDF de inventario generado")
	return doc, nil
}
