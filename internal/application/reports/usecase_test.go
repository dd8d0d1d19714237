package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

type fakeReportRepo struct {
	counts   repository.SummaryCounts
	totals   []repository.WarehouseTotalsRow
	activity []repository.UserActivityRow
	from, to time.Time
}

func (r *fakeReportRepo) SummaryCounts() (repository.SummaryCounts, error) {
	return r.counts, nil
}

func (r *fakeReportRepo) WarehouseTotals() ([]repository.WarehouseTotalsRow, error) {
	return r.totals, nil
}

func (r *fakeReportRepo) UserActivity(from, to time.Time) ([]repository.UserActivityRow, error) {
	r.from, r.to = from, to
	return r.activity, nil
}

type fakeProductRepo struct {
	lowStock []*entity.Product
}

func (r *fakeProductRepo) Create(p *entity.Product) error            { return nil }
func (r *fakeProductRepo) GetByID(id int64) (*entity.Product, error) { return nil, domain.ErrNotFound }
func (r *fakeProductRepo) GetActiveByID(id int64) (*entity.Product, error) {
	return nil, domain.ErrNotFound
}
func (r *fakeProductRepo) Update(p *entity.Product) error { return nil }
func (r *fakeProductRepo) List(search string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) SoftDelete(id int64) error                    { return nil }
func (r *fakeProductRepo) RecomputeTotalQuantity(productID int64) error { return nil }
func (r *fakeProductRepo) ListBelowReorderPoint() ([]*entity.Product, error) {
	return r.lowStock, nil
}

type fakePDF struct {
	called bool
}

func (p *fakePDF) InventorySummary(summary dto.InventorySummaryResponse, warehouses []dto.WarehouseInventoryReportRow) ([]byte, error) {
	p.called = true
	return []byte("%PDF-1.4"), nil
}

func newReportsFixture() (*UseCase, *fakeReportRepo, *fakeProductRepo, *fakePDF) {
	reports := &fakeReportRepo{
		counts: repository.SummaryCounts{
			TotalProducts:     12,
			TotalWarehouses:   3,
			TotalUsers:        7,
			TotalInventoryQty: 480,
		},
		totals: []repository.WarehouseTotalsRow{
			{WarehouseID: 1, WarehouseName: "Bodega Central", TotalProducts: 8, TotalQuantity: 300},
			{WarehouseID: 2, WarehouseName: "Bodega Norte", TotalProducts: 4, TotalQuantity: 180},
		},
	}
	products := &fakeProductRepo{
		lowStock: []*entity.Product{
			{ID: 1, Name: "Tornillo M8", MainCode: "TOR-M8", TotalQuantity: 2, ReorderPoint: 10, SafetyStock: 5, IsActive: true},
			{ID: 2, Name: "Tuerca M8", MainCode: "TUE-M8", TotalQuantity: 8, ReorderPoint: 10, SafetyStock: 5, IsActive: true},
		},
	}
	pdf := &fakePDF{}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return NewUseCase(reports, products, pdf, log), reports, products, pdf
}

func TestInventorySummary(t *testing.T) {
	uc, _, _, _ := newReportsFixture()

	summary, err := uc.InventorySummary()
	require.NoError(t, err)
	assert.EqualValues(t, 12, summary.TotalProducts)
	assert.EqualValues(t, 3, summary.TotalWarehouses)
	assert.EqualValues(t, 480, summary.TotalInventoryQty)
	assert.EqualValues(t, 2, summary.LowStockProducts, "Los productos bajo punto de reorden cuentan en el resumen")
	assert.False(t, summary.GeneratedAt.IsZero())
}

func TestLowStockAlertLevels(t *testing.T) {
	uc, _, _, _ := newReportsFixture()

	alerts, err := uc.LowStockAlerts()
	require.NoError(t, err)
	require.Len(t, alerts, 2)

	// 2 <= SafetyStock(5): crítico. 8 > 5 pero <= ReorderPoint(10): advertencia.
	assert.Equal(t, dto.AlertLevelCritical, alerts[0].AlertLevel)
	assert.EqualValues(t, 8, alerts[0].ShortageAmount)
	assert.Equal(t, dto.AlertLevelWarning, alerts[1].AlertLevel)
	assert.EqualValues(t, 2, alerts[1].ShortageAmount)
}

func TestUserActivityDefaultsRange(t *testing.T) {
	uc, reports, _, _ := newReportsFixture()
	reports.activity = []repository.UserActivityRow{
		{UserID: 1, UserName: "Ana Gómez", RoleID: int(entity.RoleAdmin), LoginCount: 4, ActionsCount: 20},
	}

	rows, err := uc.UserActivity(nil, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Admin", rows[0].RoleName)
	assert.WithinDuration(t, time.Now().UTC(), reports.to, time.Minute)
	assert.WithinDuration(t, reports.to.AddDate(0, 0, -30), reports.from, time.Minute,
		"Sin rango explícito se consultan los últimos 30 días")
}

func TestInventorySummaryPDF(t *testing.T) {
	uc, _, _, pdf := newReportsFixture()

	doc, err := uc.InventorySummaryPDF()
	require.NoError(t, err)
	assert.True(t, pdf.called, "El generador PDF debe invocarse")
	assert.NotEmpty(t, doc)
}
