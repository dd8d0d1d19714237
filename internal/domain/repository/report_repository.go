package repository

import "time"

// SummaryCounts agregados globales para el reporte general.
type SummaryCounts struct {
	TotalProducts     int64
	TotalWarehouses   int64
	TotalUsers        int64
	TotalInventoryQty int64
}

// WarehouseTotalsRow totales de inventario por bodega.
type WarehouseTotalsRow struct {
	WarehouseID   int64
	WarehouseName string
	TotalProducts int64
	TotalQuantity int64
	LastUpdated   time.Time
}

// UserActivityRow actividad agregada de un usuario según el audit trail.
type UserActivityRow struct {
	UserID       int64
	UserName     string
	RoleID       int
	LastLogin    *time.Time
	LoginCount   int64
	ActionsCount int64
}

// ReportRepository define el puerto de consultas agregadas para reportes.
// Las agregaciones se resuelven en SQL; el caso de uso solo da formato.
type ReportRepository interface {
	SummaryCounts() (SummaryCounts, error)
	WarehouseTotals() ([]WarehouseTotalsRow, error)
	UserActivity(from, to time.Time) ([]UserActivityRow, error)
}
