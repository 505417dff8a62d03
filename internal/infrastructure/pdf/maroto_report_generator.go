// Package pdf genera la versión imprimible del reporte de faltantes.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + semana as-of │ fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Sub Group | Brand | Desc | Loc | Unit | Stock | Uso  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de productos marcados                         │
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

	"github.com/kaimfung/InventoryDashboard/internal/application/dto"
	"github.com/kaimfung/InventoryDashboard/internal/application/report"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 96, Blue: 72}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 40, Blue: 40}
)

var _ report.LowStockPDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa report.LowStockPDFGenerator con Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateLowStockPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateLowStockPDF(_ context.Context, rep *dto.LowStockReportDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Reporte de Faltantes", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow(rep))
	for _, r := range rep.Rows {
		m.AddRows(itemRow(r))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(rep))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(rep *dto.LowStockReportDTO) core.Row {
	asOf := ""
	if len(rep.Periods) > 0 {
		asOf = rep.Periods[0].AsOf
	}
	return row.New(14).Add(
		col.New(8).Add(
			text.New("Reporte de Faltantes", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Stock al "+asOf+" vs consumo de la última semana", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+time.Now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Top: 2, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow(rep *dto.LowStockReportDTO) core.Row {
	asOf := "Stock"
	if len(rep.Periods) > 0 {
		asOf = "Stock " + rep.Periods[0].AsOf
	}
	bold := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary}
	boldRight := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Align: align.Right}
	return row.New(7).Add(
		col.New(2).Add(text.New("Sub Group", bold)),
		col.New(2).Add(text.New("Brand", bold)),
		col.New(3).Add(text.New("Desc", bold)),
		col.New(1).Add(text.New("Loc", bold)),
		col.New(1).Add(text.New("Unit", bold)),
		col.New(2).Add(text.New(asOf, boldRight)),
		col.New(1).Add(text.New("Uso", boldRight)),
	)
}

func itemRow(r dto.LowStockRowDTO) core.Row {
	cell := props.Text{Size: 8}
	right := props.Text{Size: 8, Align: align.Right}
	alert := props.Text{Size: 8, Align: align.Right, Style: fontstyle.Bold, Color: colorAlert}

	latest := ""
	if len(r.Quantities) > 0 {
		latest = r.Quantities[0]
	}
	return row.New(6).Add(
		col.New(2).Add(text.New(r.SubGroup, cell)),
		col.New(2).Add(text.New(r.Brand, cell)),
		col.New(3).Add(text.New(r.Desc, cell)),
		col.New(1).Add(text.New(r.Location, cell)),
		col.New(1).Add(text.New(r.Unit, cell)),
		col.New(2).Add(text.New(latest, alert)),
		col.New(1).Add(text.New(r.Usage, right)),
	)
}

func footerRow(rep *dto.LowStockReportDTO) core.Row {
	msg := fmt.Sprintf("%d producto(s) con stock por debajo del consumo de la última semana", len(rep.Rows))
	if len(rep.Rows) == 0 {
		msg = "Sin faltantes: todo el stock cubre el consumo de la última semana"
	}
	return row.New(8).Add(
		col.New(12).Add(text.New(msg, props.Text{Size: 8, Top: 2, Color: colorGray})),
	)
}
