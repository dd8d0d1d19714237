// Package pdf implementa la generación del reporte de inventario en PDF
// usando Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + Fecha de generación                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Productos | Bodegas | Usuarios | Unidades          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Bodega | Productos | Unidades | Última actualización │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/reports"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ reports.PDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa reports.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// InventorySummary genera el PDF del resumen de inventario y devuelve sus bytes.
func (g *MarotoPDFGenerator) InventorySummary(
	summary dto.InventorySummaryResponse,
	warehouses []dto.WarehouseInventoryReportRow,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Resumen de Inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, w := range warehouses {
		m.AddRows(warehouseRow(w))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y fecha de generación (der).
func headerRow(summary dto.InventorySummaryResponse) core.Row {
	fecha := summary.GeneratedAt.Format("02/01/2006 15:04")
	return row.New(14).Add(
		col.New(7).Add(
			text.New("RESUMEN DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("Generado: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

// summaryRow: agregados globales en una fila de cuatro columnas.
func summaryRow(summary dto.InventorySummaryResponse) core.Row {
	cell := func(label string, value int64) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 8, Color: colorGray, Top: 1}),
			text.New(fmt.Sprintf("%d", value), props.Text{
				Style: fontstyle.Bold, Size: 12, Top: 6, Color: colorPrimary,
			}),
		)
	}
	return row.New(14).Add(
		cell("Productos activos", summary.TotalProducts),
		cell("Bodegas activas", summary.TotalWarehouses),
		cell("Unidades en stock", summary.TotalInventoryQty),
		cell("Bajo punto de reorden", summary.LowStockProducts),
	)
}

func tableHeaderRow() core.Row {
	header := func(size int, label string, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 1,
		}))
	}
	return row.New(7).Add(
		header(5, "Bodega", align.Left),
		header(2, "Productos", align.Right),
		header(2, "Unidades", align.Right),
		header(3, "Última actualización", align.Right),
	)
}

func warehouseRow(w dto.WarehouseInventoryReportRow) core.Row {
	cell := func(size int, value string, a align.Type) core.Col {
		return col.New(size).Add(text.New(value, props.Text{Size: 8, Align: a, Top: 1}))
	}
	return row.New(6).Add(
		cell(5, w.WarehouseName, align.Left),
		cell(2, fmt.Sprintf("%d", w.TotalProducts), align.Right),
		cell(2, fmt.Sprintf("%d", w.TotalQuantity), align.Right),
		cell(3, w.LastUpdated.Format("02/01/2006"), align.Right),
	)
}
