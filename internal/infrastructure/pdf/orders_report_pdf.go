// Package pdf genera el reporte de pedidos en PDF.
//
// Layout de la página A4 horizontal:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: MediSupply + título  │  Fecha de generación         │
//	│  FILTROS: vendedor / estado / rango                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Por pedido: cabecera (id, estado, vendedor, entrega)        │
//	│    TABLA: Producto | Lote | Cant | P.Unit | Subtotal         │
//	│    Total del pedido                                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: pedidos / valor total                              │
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
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/medisupply-api/internal/application/dto"
	"github.com/jhoicas/medisupply-api/internal/application/report"
)

var _ report.PDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa report.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	printer *message.Printer
	now     func() time.Time
}

// NewMarotoPDFGenerator construye el generador; los montos se formatean en es-419.
func NewMarotoPDFGenerator() *MarotoPDFGenerator {
	return &MarotoPDFGenerator{
		printer: message.NewPrinter(language.LatinAmericanSpanish),
		now:     time.Now,
	}
}

// OrdersReport genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) OrdersReport(rep *dto.OrdersReportResponse, q dto.OrdersReportQuery) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de pedidos", true).
		WithAuthor("MediSupply", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow())
	m.AddRows(filtersRow(q))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	grand := decimal.Zero
	for _, o := range rep.Orders {
		m.AddRows(orderHeaderRow(o))
		m.AddRows(tableHeaderRow())
		for _, r := range g.tableDetailRows(o.Products) {
			m.AddRows(r)
		}
		m.AddRows(g.orderTotalRow(o.Total))
		m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.2}))
		grand = grand.Add(o.Total)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(rep.TotalCount, grand))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoPDFGenerator) headerRow() core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("MediSupply", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("REPORTE DE PEDIDOS POR VENDEDOR", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+g.now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func filtersRow(q dto.OrdersReportQuery) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Vendedor: %s   |   Estado: %s   |   Desde: %s   |   Hasta: %s",
				nonEmpty(q.SellerID, "Todos"),
				nonEmpty(q.OrderStatus, "Todos"),
				nonEmpty(q.StartDate, "-"),
				nonEmpty(q.EndDate, "-"),
			), props.Text{Size: 8, Top: 2, Color: colorGray}),
		),
	)
}

func orderHeaderRow(o dto.OrderReportItem) core.Row {
	return row.New(10).Add(
		col.New(5).Add(text.New("Pedido "+o.ID, props.Text{
			Style: fontstyle.Bold, Size: 9, Top: 3, Color: colorPrimary,
		})),
		col.New(3).Add(text.New("Vendedor: "+nonEmpty(o.Seller.FullName, "-"), props.Text{
			Size: 8, Top: 3,
		})),
		col.New(2).Add(text.New("Estado: "+o.Status, props.Text{
			Size: 8, Top: 3,
		})),
		col.New(2).Add(text.New("Entrega: "+o.DeliveryDate.Format("02/01/2006"), props.Text{
			Size: 8, Top: 3, Align: align.Right,
		})),
	)
}

// tableHeaderRow: cabecera de la tabla de productos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		h("Producto", 5, align.Left),
		h("Lote", 2, align.Left),
		h("Cant.", 1, align.Center),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableDetailRows: una fila por producto del pedido.
func (g *MarotoPDFGenerator) tableDetailRows(products []dto.OrderProductDetail) []core.Row {
	result := make([]core.Row, 0, len(products))
	for _, p := range products {
		subtotal := p.PricePerUnit.Mul(decimal.NewFromInt(int64(p.Quantity)))
		result = append(result, row.New(6).Add(
			col.New(5).Add(text.New(p.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(p.Batch, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(g.printer.Sprint(p.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New("$"+g.money(p.PricePerUnit), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New("$"+g.money(subtotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func (g *MarotoPDFGenerator) orderTotalRow(total decimal.Decimal) core.Row {
	return row.New(7).Add(
		col.New(8),
		col.New(2).Add(text.New("Total pedido:", props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 2,
		})),
		col.New(2).Add(text.New("$"+g.money(total), props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1,
		})),
	)
}

// totalsRow: bloque de totales alineado a la derecha.
func (g *MarotoPDFGenerator) totalsRow(count int, grand decimal.Decimal) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(14).Add(
		col.New(6),
		col.New(3).Add(
			label("Pedidos:"),
			text.New("VALOR TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 2, Top: 6,
			}),
		),
		col.New(3).Add(
			value(g.printer.Sprint(count), 0),
			value("$"+g.money(grand), 6),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// money formatea con separador de miles y dos decimales según el locale del printer.
func (g *MarotoPDFGenerator) money(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return g.printer.Sprint(number.Decimal(f, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
