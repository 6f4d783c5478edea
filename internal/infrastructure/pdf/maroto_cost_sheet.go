// Package pdf implementa la Hoja de Costos (HPP) imprimible de una entidad
// compuesta: el rollup con su desglose por componente, en A4.
//
// Layout de la página:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la entidad  │  Política + Fecha de corte │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Componente | Cant | Unidad | Costo Unit | Total      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: COSTO DE PRODUCCIÓN POR UNIDAD                     │
//	│  FOOTER: método de costeo y nota de reproducibilidad         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
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

	appcosting "github.com/jhoicas/Costos-api/internal/application/costing"
	"github.com/jhoicas/Costos-api/internal/domain/costing"
	"github.com/jhoicas/Costos-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appcosting.CostSheetPDFGenerator = (*MarotoCostSheetGenerator)(nil)

// MarotoCostSheetGenerator implementa costing.CostSheetPDFGenerator usando Maroto v2.
type MarotoCostSheetGenerator struct{}

// NewMarotoCostSheetGenerator construye el generador.
func NewMarotoCostSheetGenerator() *MarotoCostSheetGenerator { return &MarotoCostSheetGenerator{} }

// GenerateCostSheet genera el PDF de la hoja de costos y devuelve sus bytes.
func (g *MarotoCostSheetGenerator) GenerateCostSheet(
	_ context.Context,
	root *entity.CompositeEntity,
	result *appcosting.CostResult,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Hoja de Costos", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(root, result))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(result.Breakdown) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(result))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(result))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar hoja de costos: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la entidad (izq), política y fecha de corte (der).
func headerRow(root *entity.CompositeEntity, result *appcosting.CostResult) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(root.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("ID: "+root.ID, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("HOJA DE COSTOS DE PRODUCCIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Política: "+result.Policy.String(), props.Text{
				Size: 9, Align: align.Right, Top: 8,
			}),
			text.New("Corte: "+result.AsOf.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de componentes.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Componente", 5, align.Left),
		h("Cant.", 2, align.Right),
		h("Unidad", 1, align.Center),
		h("Costo Unit.", 2, align.Right),
		h("Total línea", 2, align.Right),
	)
}

// tableLineRows: una fila por hijo directo de la raíz.
func tableLineRows(breakdown []costing.BreakdownLine) []core.Row {
	result := make([]core.Row, 0, len(breakdown))
	for _, b := range breakdown {
		name := b.NodeID
		if b.NoCostData {
			name += "  (sin datos de costo)"
		}
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(
				name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				b.Quantity.String(),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				b.Unit,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				b.UnitCost.StringFixed(4),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				b.LineTotal.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalRow: costo total de producción por unidad.
func totalRow(result *appcosting.CostResult) core.Row {
	return row.New(12).Add(
		col.New(6),
		col.New(4).Add(text.New("COSTO DE PRODUCCIÓN POR UNIDAD:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 3, Right: 2,
		})),
		col.New(2).Add(text.New(result.TotalCost.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 3, Right: 1,
		})),
	)
}

// footerRow: nota de método y reproducibilidad.
func footerRow(result *appcosting.CostResult) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			fmt.Sprintf("Costeo bajo política %q con historial de compras al %s. "+
				"El cálculo es reproducible: el mismo grafo, historial y corte producen el mismo resultado.",
				result.Policy.String(), result.AsOf.Format("2006-01-02 15:04:05")),
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}
