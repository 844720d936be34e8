// Package layout paginates a proposal into an ordered stream of draw
// operations. The engine is pure: one proposal snapshot in, one Document
// out, no I/O. A backend (internal/pdf) replays the operations.
package layout

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/nurpe/outvoice/internal/htmltext"
	"github.com/nurpe/outvoice/internal/model"
	"github.com/nurpe/outvoice/internal/pricing"
)

type Engine struct {
	geom Geometry
}

func NewEngine(geom Geometry) *Engine {
	return &Engine{geom: geom}
}

// Layout renders the title page followed by one fresh page per section, in
// ascending section order. Content never overflows a page edge: every line
// and table row is height-checked and triggers a page break when needed.
func (e *Engine) Layout(proposal model.Proposal) Document {
	b := newBuilder(e.geom)

	e.titlePage(b, proposal)

	sections := proposal.SortedSections()
	b.breakPage()
	for i, section := range sections {
		if i > 0 {
			b.breakPage()
		}
		e.renderSection(b, section)
	}

	return b.done()
}

func (e *Engine) renderSection(b *builder, section model.ProposalSection) {
	lh := e.geom.LineHeight
	maxWidth := e.geom.ContentWidth()

	for _, line := range wrapText(section.Title, 18, maxWidth) {
		b.ensure(lh * 1.5)
		b.text(line, e.geom.Margin, b.y, 18, StyleBold, colorPrimary, AlignLeft)
		b.y += lh * 1.5
	}

	if section.Type == model.SectionTypePricing && section.PricingData != nil {
		e.renderPricing(b, *section.PricingData)
		return
	}
	e.renderText(b, section.Content)
}

// headingPattern matches a line that starts with a capital letter and
// carries no sentence punctuation.
var headingPattern = regexp.MustCompile(`^[A-Z][^.!?]*$`)

// mightBeHeading is the lossy heading heuristic for flattened HTML: short
// lines that are fully uppercase or capitalized without sentence punctuation
// get heading treatment. False positives are acceptable; the original tag
// structure is gone by the time this runs.
func mightBeHeading(line string) bool {
	if utf8.RuneCountInString(line) >= 60 {
		return false
	}
	return line == strings.ToUpper(line) || headingPattern.MatchString(strings.TrimSpace(line))
}

func (e *Engine) renderText(b *builder, content string) {
	lh := e.geom.LineHeight
	margin := e.geom.Margin
	maxWidth := e.geom.ContentWidth()

	b.y += 3

	if strings.TrimSpace(content) == "" {
		b.ensure(lh)
		b.text("(No content)", margin, b.y, 12, StyleItalic, colorMuted, AlignLeft)
		b.y += lh
		return
	}

	if !htmltext.ContainsMarkup(content) {
		for _, line := range wrapText(content, 12, maxWidth) {
			b.ensure(lh)
			b.text(line, margin, b.y, 12, StyleNormal, colorBlack, AlignLeft)
			b.y += lh
		}
		return
	}

	plain := htmltext.Flatten(content)
	isHeading := false
	for _, line := range strings.Split(plain, "\n") {
		if strings.TrimSpace(line) == "" {
			b.y += lh * 0.5
			continue
		}

		heading := mightBeHeading(line)
		if heading && !isHeading {
			isHeading = true
		} else if isHeading && !heading {
			isHeading = false
			b.y += lh * 0.5
		}

		size, style := 12.0, StyleNormal
		if isHeading {
			size, style = 14.0, StyleBold
		}

		for _, wrapped := range wrapText(strings.TrimSpace(line), size, maxWidth) {
			b.ensure(lh)
			b.text(wrapped, margin, b.y, size, style, colorBlack, AlignLeft)
			b.y += lh
		}

		if isHeading {
			b.y += lh * 0.3
			isHeading = false
		}
	}
}

func (e *Engine) renderPricing(b *builder, data model.PricingSectionData) {
	lh := e.geom.LineHeight
	margin := e.geom.Margin
	maxWidth := e.geom.ContentWidth()

	b.y += 5

	if len(data.Items) == 0 {
		b.ensure(lh)
		b.text("(No pricing items added)", margin, b.y, 10, StyleItalic, colorMuted, AlignLeft)
		b.y += lh
		return
	}

	colWidths := []float64{
		maxWidth * 0.35, // Description
		maxWidth * 0.12, // Quantity
		maxWidth * 0.18, // Unit Price
		maxWidth * 0.15, // Discount
		maxWidth * 0.20, // Subtotal
	}
	colX := make([]float64, len(colWidths))
	x := margin
	for i, w := range colWidths {
		colX[i] = x
		x += w
	}

	b.ensure(lh * 2)
	headers := []string{"Description", "Qty", "Unit Price", "Discount", "Subtotal"}
	for i, header := range headers {
		b.text(header, colX[i], b.y, 9, StyleBold, colorBlack, AlignLeft)
	}
	b.y += lh
	b.line(margin, b.y, margin+maxWidth, b.y, 0.3, colorRule)
	b.y += 3

	for _, item := range data.Items {
		if b.y > e.geom.PageHeight-40 {
			b.breakPage()
			b.y = margin + 10
		}

		desc := item.Description
		if desc == "" {
			desc = "(No description)"
		}
		descLines := wrapText(desc, 9, colWidths[0])
		for i, line := range descLines {
			if i > 0 {
				b.y += lh * 0.8
			}
			b.text(line, colX[0], b.y, 9, StyleNormal, colorBlack, AlignLeft)
		}

		b.text(formatQuantity(item.Quantity), colX[1]+colWidths[1]-2, b.y, 9, StyleNormal, colorBlack, AlignRight)
		b.text(pricing.FormatCurrency(item.UnitPrice, data.Currency), colX[2]+colWidths[2]-2, b.y, 9, StyleNormal, colorBlack, AlignRight)
		b.text(discountCell(item.Discount, data.Currency), colX[3], b.y, 9, StyleNormal, colorBlack, AlignLeft)
		b.text(pricing.FormatCurrency(item.Subtotal, data.Currency), colX[4]+colWidths[4]-2, b.y, 9, StyleBold, colorBlack, AlignRight)

		rowAdvance := lh * 1.2
		if wrapped := float64(len(descLines)) * lh * 0.8; wrapped > rowAdvance {
			rowAdvance = wrapped
		}
		b.y += rowAdvance
	}

	b.y += 8
	b.ensure(lh * 6)

	b.line(margin, b.y, margin+maxWidth, b.y, 0.3, colorRule)
	b.y += 5

	valueX := margin + maxWidth - 60

	b.text("Subtotal:", margin, b.y, 10, StyleNormal, colorBlack, AlignLeft)
	b.text(pricing.FormatCurrency(data.Subtotal, data.Currency), valueX, b.y, 10, StyleNormal, colorBlack, AlignRight)
	b.y += lh * 1.2

	if data.DiscountAmount != nil && *data.DiscountAmount > 0 {
		b.text("Discount:", margin, b.y, 10, StyleNormal, colorRed, AlignLeft)
		b.text("-"+pricing.FormatCurrency(*data.DiscountAmount, data.Currency), valueX, b.y, 10, StyleNormal, colorRed, AlignRight)
		b.y += lh * 1.2
	}

	if data.TaxAmount != nil && *data.TaxAmount > 0 {
		b.text("Tax:", margin, b.y, 10, StyleNormal, colorBlack, AlignLeft)
		b.text("+"+pricing.FormatCurrency(*data.TaxAmount, data.Currency), valueX, b.y, 10, StyleNormal, colorBlack, AlignRight)
		b.y += lh * 1.2
	}

	b.y += 3
	b.line(margin, b.y, margin+maxWidth, b.y, 0.5, colorAccent)
	b.y += 5

	b.text("Total:", margin, b.y, 12, StyleBold, colorPrimary, AlignLeft)
	b.text(pricing.FormatCurrency(data.Total, data.Currency), valueX, b.y, 12, StyleBold, colorPrimary, AlignRight)
	b.y += lh * 1.5

	if data.Notes != "" {
		for _, line := range wrapText(data.Notes, 9, maxWidth) {
			b.ensure(lh)
			b.text(line, margin, b.y, 9, StyleItalic, colorGray, AlignLeft)
			b.y += lh * 0.9
		}
	}
}

// formatQuantity mirrors plain numeric display: no trailing zeros, no
// forced decimals.
func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

func discountCell(discount *float64, currency string) string {
	if discount == nil || *discount == 0 {
		return "-"
	}
	if *discount < 100 {
		return strconv.FormatFloat(*discount, 'f', -1, 64) + "%"
	}
	return pricing.FormatCurrency(*discount, currency)
}

// builder accumulates draw ops for the current page and tracks the vertical
// cursor.
type builder struct {
	geom  Geometry
	pages []Page
	ops   []Op
	y     float64
}

func newBuilder(geom Geometry) *builder {
	return &builder{geom: geom, y: geom.Margin}
}

// ensure breaks the page when the next emission of the given height would
// cross the bottom margin. It reports whether a break happened.
func (b *builder) ensure(height float64) bool {
	if b.y+height > b.geom.PageHeight-b.geom.Margin {
		b.breakPage()
		return true
	}
	return false
}

func (b *builder) breakPage() {
	b.pages = append(b.pages, Page{Ops: b.ops})
	b.ops = nil
	b.y = b.geom.Margin
}

func (b *builder) done() Document {
	pages := append(b.pages, Page{Ops: b.ops})
	return Document{Geometry: b.geom, Pages: pages}
}

func (b *builder) text(s string, x, y, size float64, style FontStyle, color Color, align Align) {
	b.ops = append(b.ops, TextOp{Text: s, X: x, Y: y, Size: size, Style: style, Color: color, Align: align})
}

func (b *builder) line(x1, y1, x2, y2, width float64, color Color) {
	b.ops = append(b.ops, LineOp{X1: x1, Y1: y1, X2: x2, Y2: y2, Width: width, Color: color})
}

func (b *builder) rect(x, y, w, h float64, color Color) {
	b.ops = append(b.ops, RectOp{X: x, Y: y, W: w, H: h, Color: color})
}
