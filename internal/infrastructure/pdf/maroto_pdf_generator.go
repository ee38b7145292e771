// Package pdf implementa la generación del reporte de inventario en PDF
// usando Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Reporte de Inventario │ Dueño + Fecha              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Producto | Stock | Umbral | Costo | Precio │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: productos, unidades, valor del inventario         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

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
	"github.com/shopspring/decimal"

	"github.com/kitakita/inventory-api/internal/application/usecase"
	"github.com/kitakita/inventory-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 180, Green: 30, Blue: 30}
)

var _ usecase.InventoryPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa usecase.InventoryPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInventoryReport genera el PDF del inventario y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInventoryReport(ownerName string, products []*entity.Product) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Inventario", true).
		WithAuthor(ownerName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(ownerName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, p := range products {
		m.AddRows(productRow(p))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(products))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y dueño + fecha de generación (der).
func headerRow(ownerName string) core.Row {
	fecha := time.Now().Format("02/01/2006 15:04")
	return row.New(16).Add(
		col.New(7).Add(
			text.New("Reporte de Inventario", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New(ownerName, props.Text{
				Size: 10, Align: align.Right, Top: 1,
			}),
			text.New("Generado: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := func(size int, label string, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary,
		}))
	}
	return row.New(7).Add(
		header(2, "Código", align.Left),
		header(4, "Producto", align.Left),
		header(1, "Stock", align.Right),
		header(1, "Umbral", align.Right),
		header(2, "Costo", align.Right),
		header(2, "Precio", align.Right),
	)
}

func productRow(p *entity.Product) core.Row {
	cell := func(size int, value string, a align.Type, color *props.Color) core.Col {
		return col.New(size).Add(text.New(value, props.Text{Size: 8, Align: a, Color: color}))
	}
	stockColor := (*props.Color)(nil)
	if p.IsLowStock() {
		stockColor = colorDanger
	}
	return row.New(6).Add(
		cell(2, p.Code, align.Left, nil),
		cell(4, p.Name, align.Left, nil),
		cell(1, fmt.Sprintf("%d", p.Quantity), align.Right, stockColor),
		cell(1, fmt.Sprintf("%d", p.ThresholdValue), align.Right, nil),
		cell(2, "$"+p.BuyingPrice.StringFixed(2), align.Right, nil),
		cell(2, "$"+p.SellingPrice.StringFixed(2), align.Right, nil),
	)
}

func totalsRow(products []*entity.Product) core.Row {
	var units int64
	value := decimal.Zero
	for _, p := range products {
		units += int64(p.Quantity)
		value = value.Add(p.SellingPrice.Mul(decimal.NewFromInt(int64(p.Quantity))))
	}
	resumen := fmt.Sprintf("%d productos · %d unidades · valor $%s",
		len(products), units, value.StringFixed(2))
	return row.New(10).Add(
		col.New(12).Add(
			text.New(resumen, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
			}),
		),
	)
}
