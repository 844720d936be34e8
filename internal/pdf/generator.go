// Package pdf turns a layout.Document into PDF bytes with gofpdf. It does
// no pagination or styling decisions of its own; it replays the draw
// operations the layout engine produced.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/nurpe/outvoice/internal/layout"
)

const fontFamily = "Helvetica"

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(doc layout.Document) ([]byte, error) {
	geom := doc.Geometry

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "mm",
		Size:    gofpdf.SizeType{Wd: geom.PageWidth, Ht: geom.PageHeight},
	})
	pdf.SetMargins(geom.Margin, geom.Margin, geom.Margin)
	pdf.SetAutoPageBreak(false, 0)
	translate := pdf.UnicodeTranslatorFromDescriptor("")

	for _, page := range doc.Pages {
		pdf.AddPage()
		for _, op := range page.Ops {
			drawOp(pdf, translate, op)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func drawOp(pdf *gofpdf.Fpdf, translate func(string) string, op layout.Op) {
	switch o := op.(type) {
	case layout.RectOp:
		pdf.SetFillColor(int(o.Color.R), int(o.Color.G), int(o.Color.B))
		pdf.Rect(o.X, o.Y, o.W, o.H, "F")

	case layout.LineOp:
		pdf.SetDrawColor(int(o.Color.R), int(o.Color.G), int(o.Color.B))
		pdf.SetLineWidth(o.Width)
		pdf.Line(o.X1, o.Y1, o.X2, o.Y2)

	case layout.TextOp:
		pdf.SetFont(fontFamily, string(o.Style), o.Size)
		pdf.SetTextColor(int(o.Color.R), int(o.Color.G), int(o.Color.B))

		text := translate(o.Text)
		x := o.X
		switch o.Align {
		case layout.AlignCenter:
			x -= pdf.GetStringWidth(text) / 2
		case layout.AlignRight:
			x -= pdf.GetStringWidth(text)
		}
		pdf.Text(x, o.Y, text)
	}
}
