// Package pdf rendu du reçu de commande avec Maroto v2 : en-tête restaurant,
// lignes, total en F CFA et QR du lien de paiement Wave.
package pdf

import (
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/famadiop1025/Bokkdej/internal/application/billing"
)

var (
	colorPrimary = &props.Color{Red: 230, Green: 126, Blue: 34}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ billing.ReceiptGenerator = (*ReceiptGenerator)(nil)

// ReceiptGenerator implémente billing.ReceiptGenerator avec Maroto v2.
type ReceiptGenerator struct{}

// NewReceiptGenerator construit le générateur.
func NewReceiptGenerator() *ReceiptGenerator { return &ReceiptGenerator{} }

// Generate rend le reçu et retourne ses octets.
func (g *ReceiptGenerator) Generate(data billing.ReceiptData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reçu de commande", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRows(data)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, l := range data.Lines {
		m.AddRows(lineRow(l))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(totalRow(data))
	if data.WaveLink != "" {
		m.AddRows(waveRows(data.WaveLink)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: générer le reçu: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRows(data billing.ReceiptData) []core.Row {
	nom := data.RestaurantNom
	if nom == "" {
		nom = "Bokkdej"
	}
	return []core.Row{
		row.New(14).Add(
			col.New(8).Add(
				text.New(nom, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
				text.New("Reçu de commande", props.Text{Size: 9, Top: 9, Color: colorGray}),
			),
			col.New(4).Add(
				text.New("N° "+shortID(data.OrderID), props.Text{Size: 9, Align: align.Right, Top: 1}),
				text.New(data.CreatedAt.Format("02/01/2006 15:04"), props.Text{Size: 8, Align: align.Right, Top: 7, Color: colorGray}),
			),
		),
	}
}

func tableHeaderRow() core.Row {
	return row.New(7).Add(
		col.New(7).Add(text.New("Plat", props.Text{Style: fontstyle.Bold, Size: 9, Top: 1})),
		col.New(2).Add(text.New("Qté", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Center, Top: 1})),
		col.New(3).Add(text.New("Prix", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1})),
	)
}

func lineRow(l billing.ReceiptLine) core.Row {
	return row.New(6).Add(
		col.New(7).Add(text.New(l.Libelle, props.Text{Size: 9, Top: 1})),
		col.New(2).Add(text.New(strconv.Itoa(l.Quantity), props.Text{Size: 9, Align: align.Center, Top: 1})),
		col.New(3).Add(text.New(l.Prix.StringFixed(0)+" F", props.Text{Size: 9, Align: align.Right, Top: 1})),
	)
}

func totalRow(data billing.ReceiptData) core.Row {
	return row.New(9).Add(
		col.New(7).Add(text.New("TOTAL", props.Text{Style: fontstyle.Bold, Size: 11, Top: 1})),
		col.New(5).Add(text.New(data.PrixTotal.StringFixed(0)+" F CFA", props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1, Color: colorPrimary,
		})),
	)
}

// waveRows QR du lien de paiement Wave du restaurant.
func waveRows(link string) []core.Row {
	return []core.Row{
		row.New(4),
		row.New(40).Add(
			col.New(5).Add(code.NewQr(link, props.Rect{Percent: 90, Center: true})),
			col.New(7).Add(
				text.New("Scannez le QR code pour payer\navec Wave.", props.Text{Size: 9, Top: 6, Left: 2, Color: colorGray}),
				text.New("Merci et bon appétit !", props.Text{Style: fontstyle.Bold, Size: 10, Top: 22, Left: 2, Color: colorPrimary}),
			),
		),
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
