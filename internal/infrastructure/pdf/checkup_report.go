// Package pdf genera el informe de checkup de una tienda.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tienda + descripción  │  Fecha de emisión          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: N° ventas | Importe total | N° productos          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Cant. | Importe                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  MENSUAL: Mes | Importe (12 meses)                          │
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

	"github.com/borgia-ae/borgia-api/internal/application/dto"
	"github.com/borgia-ae/borgia-api/internal/application/workboard"
)

var _ workboard.CheckupRenderer = (*CheckupReport)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 122, Green: 0, Blue: 38}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// CheckupReport implementa workboard.CheckupRenderer usando Maroto v2.
type CheckupReport struct {
	now func() time.Time
}

// NewCheckupReport construye el generador.
func NewCheckupReport() *CheckupReport { return &CheckupReport{now: time.Now} }

// RenderCheckup genera el PDF y devuelve sus bytes.
func (g *CheckupReport) RenderCheckup(c *dto.CheckupResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Checkup "+c.Shop.Name, true).
		WithAuthor("Borgia", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(c, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(c))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow("Produit", "Quantité", "Montant"))
	for _, p := range c.TopProducts {
		m.AddRows(tableRow(p.Name, fmt.Sprintf("%d", p.Quantity), p.Amount.StringFixed(2)+" €"))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(tableHeaderRow("Mois", "", "Montant"))
	for _, p := range c.Monthly {
		m.AddRows(tableRow(p.Label, "", p.Amount.StringFixed(2)+" €"))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar checkup: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(c *dto.CheckupResponse, now time.Time) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New("Checkup "+c.Shop.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(c.Shop.Description, "-"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Émis le "+now.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 1, Color: colorGray,
			}),
		),
	)
}

func summaryRow(c *dto.CheckupResponse) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(value, props.Text{Size: 11, Top: 6}),
		)
	}
	return row.New(14).Add(
		cell("VENTES", fmt.Sprintf("%d", c.SalesCount)),
		cell("MONTANT TOTAL", c.SalesAmount.StringFixed(2)+" €"),
		cell("PRODUITS", fmt.Sprintf("%d", c.ProductsCount)),
	)
}

func tableHeaderRow(first, second, third string) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(h(first, 6, align.Left), h(second, 2, align.Center), h(third, 4, align.Right))
}

func tableRow(first, second, third string) core.Row {
	return row.New(7).Add(
		col.New(6).Add(text.New(first, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(2).Add(text.New(second, props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(4).Add(text.New(third, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
