package layout

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/outvoice/internal/model"
	"github.com/nurpe/outvoice/internal/pricing"
)

func f(v float64) *float64 { return &v }

func testProposal(sections ...model.ProposalSection) model.Proposal {
	return model.Proposal{
		Title:       "Website Redesign",
		Sections:    sections,
		Orientation: model.OrientationPortrait,
		TitlePageStyle: model.TitlePageStyle{
			Theme:  model.TitleThemeLight,
			Layout: model.TitleLayoutCentered,
		},
		CreatedAt: time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
	}
}

func pageTexts(page Page) []string {
	var texts []string
	for _, op := range page.Ops {
		if t, ok := op.(TextOp); ok {
			texts = append(texts, t.Text)
		}
	}
	return texts
}

func findText(t *testing.T, page Page, text string) TextOp {
	t.Helper()
	for _, op := range page.Ops {
		if textOp, ok := op.(TextOp); ok && textOp.Text == text {
			return textOp
		}
	}
	t.Fatalf("text %q not found on page", text)
	return TextOp{}
}

// textAfter returns the first text op emitted after the given label, i.e.
// the value cell of a "Label:" line.
func textAfter(t *testing.T, page Page, label string) TextOp {
	t.Helper()
	seen := false
	for _, op := range page.Ops {
		textOp, ok := op.(TextOp)
		if !ok {
			continue
		}
		if seen {
			return textOp
		}
		if textOp.Text == label {
			seen = true
		}
	}
	t.Fatalf("no text op after %q", label)
	return TextOp{}
}

func TestLayoutTitlePageIsIsolated(t *testing.T) {
	proposal := testProposal(model.ProposalSection{
		Type: model.SectionTypeAbout, Title: "About Us", Content: "We build things.", Order: 0,
	})

	doc := NewEngine(NewGeometry(FormatA4, model.OrientationPortrait)).Layout(proposal)

	require.Len(t, doc.Pages, 2)
	assert.Contains(t, pageTexts(doc.Pages[0]), "Website Redesign")
	assert.NotContains(t, pageTexts(doc.Pages[0]), "About Us")
	assert.Contains(t, pageTexts(doc.Pages[1]), "About Us")
}

func TestLayoutSectionsEachStartFreshPage(t *testing.T) {
	proposal := testProposal(
		model.ProposalSection{Type: model.SectionTypeHero, Title: "Intro", Content: "Hi", Order: 0},
		model.ProposalSection{Type: model.SectionTypeServices, Title: "Services", Content: "Things", Order: 1},
		model.ProposalSection{Type: model.SectionTypeContact, Title: "Contact", Content: "Mail us", Order: 2},
	)

	doc := NewEngine(NewGeometry(FormatA4, model.OrientationPortrait)).Layout(proposal)

	require.Len(t, doc.Pages, 4)
	assert.Contains(t, pageTexts(doc.Pages[1]), "Intro")
	assert.Contains(t, pageTexts(doc.Pages[2]), "Services")
	assert.Contains(t, pageTexts(doc.Pages[3]), "Contact")
}

func TestLayoutSectionsSortedByOrderField(t *testing.T) {
	proposal := testProposal(
		model.ProposalSection{Type: model.SectionTypeContact, Title: "Last", Content: "z", Order: 5},
		model.ProposalSection{Type: model.SectionTypeHero, Title: "First", Content: "a", Order: 1},
	)

	doc := NewEngine(NewGeometry(FormatA4, model.OrientationPortrait)).Layout(proposal)

	require.Len(t, doc.Pages, 3)
	assert.Contains(t, pageTexts(doc.Pages[1]), "First")
	assert.Contains(t, pageTexts(doc.Pages[2]), "Last")
}

func TestLayoutEmptySectionPlaceholder(t *testing.T) {
	proposal := testProposal(model.ProposalSection{
		Type: model.SectionTypeCustom, Title: "Empty", Content: "   ", Order: 0,
	})

	doc := NewEngine(NewGeometry(FormatA4, model.OrientationPortrait)).Layout(proposal)

	op := findText(t, doc.Pages[1], "(No content)")
	assert.Equal(t, StyleItalic, op.Style)
}

func TestLayoutHTMLContentIsFlattened(t *testing.T) {
	proposal := testProposal(model.ProposalSection{
		Type:    model.SectionTypeServices,
		Title:   "Scope",
		Content: "<h1>Overview</h1><p>We deliver value.<br>Every sprint.</p>",
		Order:   0,
	})

	doc := NewEngine(NewGeometry(FormatA4, model.OrientationPortrait)).Layout(proposal)
	texts := pageTexts(doc.Pages[1])

	assert.Contains(t, texts, "Overview")
	assert.Contains(t, texts, "We deliver value.")
	assert.Contains(t, texts, "Every sprint.")
	for _, text := range texts {
		assert.NotContains(t, text, "<")
	}
}

func TestLayoutHeadingHeuristic(t *testing.T) {
	proposal := testProposal(model.ProposalSection{
		Type:    model.SectionTypeServices,
		Title:   "Scope",
		Content: "<h2>Key Deliverables</h2><p>We will ship the redesign in four weeks.</p>",
		Order:   0,
	})

	doc := NewEngine(NewGeometry(FormatA4, model.OrientationPortrait)).Layout(proposal)

	heading := findText(t, doc.Pages[1], "Key Deliverables")
	assert.Equal(t, StyleBold, heading.Style)
	assert.Equal(t, 14.0, heading.Size)

	body := findText(t, doc.Pages[1], "We will ship the redesign in four weeks.")
	assert.Equal(t, StyleNormal, body.Style)
	assert.Equal(t, 12.0, body.Size)
}

func TestLayoutLongContentPaginates(t *testing.T) {
	var lines []string
	for i := 0; i < 80; i++ {
		lines = append(lines, fmt.Sprintf("paragraph %d keeps the page filling up with words.", i))
	}
	proposal := testProposal(model.ProposalSection{
		Type: model.SectionTypeCustom, Title: "Long", Content: strings.Join(lines, " "), Order: 0,
	})

	geom := NewGeometry(FormatA4, model.OrientationPortrait)
	doc := NewEngine(geom).Layout(proposal)

	assert.Greater(t, len(doc.Pages), 2)
	for _, page := range doc.Pages {
		for _, op := range page.Ops {
			if textOp, ok := op.(TextOp); ok {
				assert.LessOrEqual(t, textOp.Y, geom.PageHeight-geom.Margin)
			}
		}
	}
}

func TestLayoutPricingTableTotals(t *testing.T) {
	data := pricing.ComputeSectionTotals(model.PricingSectionData{
		Items: []model.PricingItem{
			{Description: "Design", Quantity: 10, UnitPrice: 100},
			{Description: "Development", Quantity: 20, UnitPrice: 150},
		},
		Currency: "USD",
	})
	proposal := testProposal(model.ProposalSection{
		Type: model.SectionTypePricing, Title: "Investment", PricingData: &data, Order: 0,
	})

	doc := NewEngine(NewGeometry(FormatA4, model.OrientationPortrait)).Layout(proposal)
	page := doc.Pages[1]
	texts := pageTexts(page)

	assert.Contains(t, texts, "Description")
	assert.Contains(t, texts, "Qty")
	assert.Contains(t, texts, "Unit Price")
	assert.Contains(t, texts, "Subtotal")

	// No section discount/tax: the total equals the sum of item subtotals.
	total := textAfter(t, page, "Total:")
	assert.Equal(t, "$4,000.00", total.Text)
	assert.Equal(t, StyleBold, total.Style)
	assert.Equal(t, AlignRight, total.Align)
	assert.NotContains(t, texts, "Discount:")
	assert.NotContains(t, texts, "Tax:")
}

func TestLayoutPricingDiscountAndTaxLines(t *testing.T) {
	data := pricing.ComputeSectionTotals(model.PricingSectionData{
		Items:              []model.PricingItem{{Description: "Work", Quantity: 1, UnitPrice: 1000}},
		DiscountPercentage: f(10),
		TaxPercentage:      f(20),
		Currency:           "USD",
	})
	proposal := testProposal(model.ProposalSection{
		Type: model.SectionTypePricing, Title: "Pricing", PricingData: &data, Order: 0,
	})

	doc := NewEngine(NewGeometry(FormatA4, model.OrientationPortrait)).Layout(proposal)
	page := doc.Pages[1]

	discount := findText(t, page, "-$100.00")
	assert.Equal(t, colorRed, discount.Color)
	findText(t, page, "+$180.00")
	findText(t, page, "$1,080.00")
}

func TestLayoutPricingItemDiscountCell(t *testing.T) {
	data := pricing.ComputeSectionTotals(model.PricingSectionData{
		Items: []model.PricingItem{
			{Description: "Percent off", Quantity: 1, UnitPrice: 100, Discount: f(15)},
			{Description: "Fixed off", Quantity: 10, UnitPrice: 100, Discount: f(250)},
			{Description: "No discount", Quantity: 1, UnitPrice: 100},
		},
		Currency: "USD",
	})
	proposal := testProposal(model.ProposalSection{
		Type: model.SectionTypePricing, Title: "Pricing", PricingData: &data, Order: 0,
	})

	doc := NewEngine(NewGeometry(FormatA4, model.OrientationPortrait)).Layout(proposal)
	texts := pageTexts(doc.Pages[1])

	assert.Contains(t, texts, "15%")
	assert.Contains(t, texts, "$250.00")
	assert.Contains(t, texts, "-")
}

func TestLayoutEmptyPricingPlaceholder(t *testing.T) {
	data := model.PricingSectionData{Currency: "USD"}
	proposal := testProposal(model.ProposalSection{
		Type: model.SectionTypePricing, Title: "Pricing", PricingData: &data, Order: 0,
	})

	doc := NewEngine(NewGeometry(FormatA4, model.OrientationPortrait)).Layout(proposal)
	texts := pageTexts(doc.Pages[1])

	assert.Contains(t, texts, "(No pricing items added)")
	assert.NotContains(t, texts, "Description")
}

func TestLayoutPricingNotes(t *testing.T) {
	data := pricing.ComputeSectionTotals(model.PricingSectionData{
		Items:    []model.PricingItem{{Description: "Work", Quantity: 1, UnitPrice: 10}},
		Currency: "USD",
		Notes:    "Payment due within 30 days.",
	})
	proposal := testProposal(model.ProposalSection{
		Type: model.SectionTypePricing, Title: "Pricing", PricingData: &data, Order: 0,
	})

	doc := NewEngine(NewGeometry(FormatA4, model.OrientationPortrait)).Layout(proposal)

	notes := findText(t, doc.Pages[1], "Payment due within 30 days.")
	assert.Equal(t, StyleItalic, notes.Style)
	assert.Equal(t, colorGray, notes.Color)
}

func TestLayoutPricingSectionWithoutDataRendersAsText(t *testing.T) {
	proposal := testProposal(model.ProposalSection{
		Type: model.SectionTypePricing, Title: "Pricing", Content: "Custom quote on request.", Order: 0,
	})

	doc := NewEngine(NewGeometry(FormatA4, model.OrientationPortrait)).Layout(proposal)
	texts := pageTexts(doc.Pages[1])

	assert.Contains(t, texts, "Custom quote on request.")
	assert.NotContains(t, texts, "Qty")
}

func TestGeometry(t *testing.T) {
	portrait := NewGeometry(FormatA4, model.OrientationPortrait)
	assert.Equal(t, 210.0, portrait.PageWidth)
	assert.Equal(t, 297.0, portrait.PageHeight)
	assert.Equal(t, 170.0, portrait.ContentWidth())

	landscape := NewGeometry(FormatLetter, model.OrientationLandscape)
	assert.Equal(t, 279.4, landscape.PageWidth)
	assert.Equal(t, 215.9, landscape.PageHeight)

	assert.Equal(t, FormatLetter, ParseFormat("letter"))
	assert.Equal(t, FormatA4, ParseFormat(""))
	assert.Equal(t, FormatA4, ParseFormat("A4"))
}
