// Package pdf genera el acta de conteo físico en PDF: encabezado del conteo,
// tabla de ítems con esperado/contado/discrepancia y el resumen de ajustes.
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// StockTakeReportGenerator genera el acta de conteo usando Maroto v2.
type StockTakeReportGenerator struct{}

// NewStockTakeReportGenerator construye el generador.
func NewStockTakeReportGenerator() *StockTakeReportGenerator { return &StockTakeReportGenerator{} }

// Generate genera el PDF del acta y devuelve sus bytes.
func (g *StockTakeReportGenerator) Generate(_ context.Context, stockTake *entity.StockTake) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Acta de conteo físico "+stockTake.Number, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(stockTake))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range itemRows(stockTake.Items) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(stockTake))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar acta: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(st *entity.StockTake) core.Row {
	fecha := st.StartedAt.Format("02/01/2006 15:04")
	return row.New(16).Add(
		col.New(7).Add(
			text.New("ACTA DE CONTEO FÍSICO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Iniciado: "+fecha, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(st.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Estado: "+st.Status, props.Text{
				Size: 9, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary,
		}))
	}
	return row.New(6).Add(
		header("Producto", 3),
		header("Lote", 2),
		header("Ubicación", 3),
		header("Esperado", 1),
		header("Contado", 1),
		header("Diferencia", 2),
	)
}

func itemRows(items []*entity.StockTakeItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		lot := "-"
		if it.LotID != nil {
			lot = *it.LotID
		}
		counted := "sin contar"
		if it.CountedQuantity != nil {
			counted = strconv.FormatInt(*it.CountedQuantity, 10)
		}
		diff := -it.Discrepancy() // positivo = sobrante, negativo = faltante
		diffColor := colorGray
		if diff != 0 {
			diffColor = colorRed
		}
		rows = append(rows, row.New(5).Add(
			col.New(3).Add(text.New(it.ProductID, props.Text{Size: 7})),
			col.New(2).Add(text.New(lot, props.Text{Size: 7})),
			col.New(3).Add(text.New(it.LocationID, props.Text{Size: 7})),
			col.New(1).Add(text.New(strconv.FormatInt(it.ExpectedQuantity, 10), props.Text{Size: 8})),
			col.New(1).Add(text.New(counted, props.Text{Size: 8})),
			col.New(2).Add(text.New(fmt.Sprintf("%+d", diff), props.Text{Size: 8, Color: diffColor})),
		))
	}
	return rows
}

func summaryRow(st *entity.StockTake) core.Row {
	var counted, discrepant int
	for _, it := range st.Items {
		if it.CountedQuantity != nil {
			counted++
			if it.Discrepancy() != 0 {
				discrepant++
			}
		}
	}
	resumen := fmt.Sprintf("Ítems: %d   Contados: %d   Con discrepancia: %d",
		len(st.Items), counted, discrepant)
	return row.New(8).Add(
		col.New(12).Add(text.New(resumen, props.Text{
			Style: fontstyle.Bold, Size: 9, Top: 2,
		})),
	)
}
