// Package pdf genera el reporte de valuación de inventario (kardex valorizado) con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Producto + SKU + Categoría │ Método + Rango         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Stock / Costo total / Costo promedio / C. ventas   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ENTRADAS: Fecha | Cantidad | Costo unit. | Total            │
//	│  SALIDAS:  Fecha | Cantidad | Consumido | Costo              │
//	│  LOTES RESTANTES (solo PEPS/UEPS)                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
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
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/domain/kardex"
)

var _ inventory.ValuationPDFGenerator = (*MarotoValuationGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoValuationGenerator implementa inventory.ValuationPDFGenerator usando Maroto v2.
// Los números se formatean con separadores del idioma configurado (español por defecto).
type MarotoValuationGenerator struct {
	printer *message.Printer
}

// NewMarotoValuationGenerator construye el generador.
func NewMarotoValuationGenerator() *MarotoValuationGenerator {
	return &MarotoValuationGenerator{printer: message.NewPrinter(language.Spanish)}
}

// GenerateValuationPDF genera el PDF y devuelve sus bytes.
func (g *MarotoValuationGenerator) GenerateValuationPDF(ctx context.Context, report inventory.ValuationReport) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Kardex valorizado "+report.SKU, true).
		Build()

	m := maroto.New(cfg)
	b := report.Breakdown

	m.AddRows(g.headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.summaryRow(b))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle(fmt.Sprintf("ENTRADAS (%d)", len(b.Entries))))
	m.AddRows(tableHeader("Fecha", "Cantidad", "Costo unit.", "Total"))
	for _, e := range b.Entries {
		m.AddRows(g.tableRow(e.Date, g.qty(e.Quantity), g.money(e.UnitCost), g.money(e.Quantity.Mul(e.UnitCost))))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle(fmt.Sprintf("SALIDAS (%d)", len(b.ExitCosts))))
	m.AddRows(tableHeader("Fecha", "Cantidad", "Consumido", "Costo"))
	for _, c := range b.ExitCosts {
		m.AddRows(g.tableRow(c.Date, g.qty(c.Quantity), g.qty(c.Consumed), g.money(c.Cost)))
	}

	if b.Method.UsesLayers() {
		m.AddRows(line.NewRow(3))
		m.AddRows(sectionTitle(fmt.Sprintf("LOTES RESTANTES (%d)", len(b.Lots))))
		m.AddRows(tableHeader("Fecha", "Cantidad", "Costo unit.", "Total"))
		for _, l := range b.Lots {
			m.AddRows(g.tableRow(l.Date, g.qty(l.Quantity), g.money(l.UnitCost), g.money(l.Total())))
		}
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("Generado el "+time.Now().Format("02/01/2006 15:04"), props.Text{Size: 7, Color: colorGray, Top: 2}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: producto (izq) y método + rango (der).
func (g *MarotoValuationGenerator) headerRow(r inventory.ValuationReport) core.Row {
	return row.New(20).Add(
		col.New(7).Add(
			text.New(r.ProductName, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("SKU: "+nonEmpty(r.SKU, r.ProductID), props.Text{Size: 9, Top: 9, Color: colorGray}),
			text.New("Categoría: "+nonEmpty(r.Category, "—"), props.Text{Size: 8, Top: 14, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("KARDEX VALORIZADO", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(methodLabel(r.Breakdown.Method), props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7}),
			text.New(rangeLabel(r.Range), props.Text{Size: 8, Align: align.Right, Top: 14, Color: colorGray}),
		),
	)
}

// summaryRow: totales del desglose.
func (g *MarotoValuationGenerator) summaryRow(b kardex.CostBreakdown) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Size: 10, Top: 7, Align: align.Center}),
		)
	}
	return row.New(16).Add(
		cell("Stock restante", g.qty(b.RemainingStock)),
		cell("Costo total", g.money(b.TotalCost)),
		cell("Costo promedio", g.money(b.AverageCost)),
		cell("Costo de ventas", g.money(b.CostOfSales)),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

func tableHeader(labels ...string) core.Row {
	cols := make([]core.Col, 0, len(labels))
	for i, l := range labels {
		a := align.Right
		if i == 0 {
			a = align.Left
		}
		cols = append(cols, col.New(3).Add(text.New(l, props.Text{Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1})))
	}
	return row.New(6).Add(cols...)
}

func (g *MarotoValuationGenerator) tableRow(date time.Time, values ...string) core.Row {
	cols := []core.Col{col.New(3).Add(text.New(date.Format("02/01/2006"), props.Text{Size: 8, Top: 1, Left: 1}))}
	for _, v := range values {
		cols = append(cols, col.New(3).Add(text.New(v, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})))
	}
	return row.New(5).Add(cols...)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (g *MarotoValuationGenerator) money(d decimal.Decimal) string {
	return g.printer.Sprintf("$%.2f", d.Round(2).InexactFloat64())
}

func (g *MarotoValuationGenerator) qty(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return g.printer.Sprintf("%d", d.IntPart())
	}
	return g.printer.Sprintf("%.4f", d.InexactFloat64())
}

func methodLabel(m kardex.Method) string {
	if d := m.Description(); d != "" {
		return d
	}
	return m.String()
}

func rangeLabel(r inventory.DateRange) string {
	switch {
	case r.Start.IsZero() && r.End.IsZero():
		return "Todo el historial"
	case r.Start.IsZero():
		return "Hasta " + r.End.Format("02/01/2006")
	case r.End.IsZero():
		return "Desde " + r.Start.Format("02/01/2006")
	}
	return r.Start.Format("02/01/2006") + " – " + r.End.Format("02/01/2006")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
