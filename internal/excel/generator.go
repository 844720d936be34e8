// Package excel renders a proposal's pricing data as an XLSX workbook: one
// summary sheet plus a detail sheet per structured pricing section.
package excel

import (
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nurpe/outvoice/internal/model"
	"github.com/nurpe/outvoice/internal/pricing"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(proposal model.Proposal) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Summary"
	file.SetSheetName("Sheet1", summarySheet)

	pricingSections := collectPricingSections(proposal)
	if err := g.writeSummary(file, summarySheet, proposal, pricingSections); err != nil {
		return nil, err
	}

	usedNames := map[string]struct{}{summarySheet: {}}
	for _, section := range pricingSections {
		sheetName := buildSheetName(section.Title, usedNames)
		usedNames[sheetName] = struct{}{}

		if _, err := file.NewSheet(sheetName); err != nil {
			return nil, err
		}
		if err := g.writeDetail(file, sheetName, section); err != nil {
			return nil, err
		}
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, proposal model.Proposal, sections []model.ProposalSection) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Proposal")
	set("B1", proposal.Title)
	set("A2", "Status")
	set("B2", string(proposal.Status))
	set("A3", "Created")
	set("B3", formatDate(proposal.CreatedAt))
	set("A4", "Updated")
	set("B4", formatDate(proposal.UpdatedAt))
	set("A5", "Pricing sections")
	set("B5", len(sections))

	tableRow := 7
	set(fmt.Sprintf("A%d", tableRow), "Section")
	set(fmt.Sprintf("B%d", tableRow), "Subtotal")
	set(fmt.Sprintf("C%d", tableRow), "Total")

	for i, section := range sections {
		data := section.PricingData
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), section.Title)
		set(fmt.Sprintf("B%d", row), pricing.FormatCurrency(data.Subtotal, data.Currency))
		set(fmt.Sprintf("C%d", row), pricing.FormatCurrency(data.Total, data.Currency))
	}

	_ = file.SetColWidth(sheet, "A", "A", 45)
	_ = file.SetColWidth(sheet, "B", "C", 18)
	return nil
}

func (g *Generator) writeDetail(file *excelize.File, sheet string, section model.ProposalSection) error {
	data := section.PricingData

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Description")
	set("B1", "Quantity")
	set("C1", "Unit Price")
	set("D1", "Discount")
	set("E1", "Subtotal")

	row := 2
	for _, item := range data.Items {
		set(fmt.Sprintf("A%d", row), item.Description)
		set(fmt.Sprintf("B%d", row), item.Quantity)
		set(fmt.Sprintf("C%d", row), pricing.FormatCurrency(item.UnitPrice, data.Currency))
		set(fmt.Sprintf("D%d", row), discountLabel(item.Discount, data.Currency))
		set(fmt.Sprintf("E%d", row), pricing.FormatCurrency(item.Subtotal, data.Currency))
		row++
	}

	row++
	set(fmt.Sprintf("A%d", row), "Subtotal")
	set(fmt.Sprintf("E%d", row), pricing.FormatCurrency(data.Subtotal, data.Currency))
	row++
	if data.DiscountAmount != nil {
		set(fmt.Sprintf("A%d", row), "Discount")
		set(fmt.Sprintf("E%d", row), "-"+pricing.FormatCurrency(*data.DiscountAmount, data.Currency))
		row++
	}
	if data.TaxAmount != nil {
		set(fmt.Sprintf("A%d", row), "Tax")
		set(fmt.Sprintf("E%d", row), "+"+pricing.FormatCurrency(*data.TaxAmount, data.Currency))
		row++
	}
	set(fmt.Sprintf("A%d", row), "Total")
	set(fmt.Sprintf("E%d", row), pricing.FormatCurrency(data.Total, data.Currency))

	if data.Notes != "" {
		row += 2
		set(fmt.Sprintf("A%d", row), "Notes")
		set(fmt.Sprintf("B%d", row), data.Notes)
	}

	_ = file.SetColWidth(sheet, "A", "A", 45)
	_ = file.SetColWidth(sheet, "B", "E", 16)
	return nil
}

// discountLabel mirrors the document body: values below 100 read as a
// percentage, anything else as a fixed amount.
func discountLabel(discount *float64, currency string) string {
	if discount == nil || *discount <= 0 {
		return "-"
	}
	if *discount < 100 {
		return fmt.Sprintf("%s%%", strconv.FormatFloat(*discount, 'f', -1, 64))
	}
	return pricing.FormatCurrency(*discount, currency)
}

func collectPricingSections(proposal model.Proposal) []model.ProposalSection {
	var sections []model.ProposalSection
	for _, section := range proposal.SortedSections() {
		if section.Type == model.SectionTypePricing && section.PricingData != nil {
			sections = append(sections, section)
		}
	}
	return sections
}

// buildSheetName derives a unique sheet name from a section title within
// excelize's 31-character limit.
func buildSheetName(title string, used map[string]struct{}) string {
	base := sanitizeSheetName(title)
	if base == "" {
		base = "Pricing"
	}
	if runes := []rune(base); len(runes) > 28 {
		base = string(runes[:28])
	}

	name := base
	for i := 2; ; i++ {
		if _, taken := used[name]; !taken {
			return name
		}
		name = fmt.Sprintf("%s %d", base, i)
	}
}

func sanitizeSheetName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			result = append(result, '-')
		default:
			result = append(result, r)
		}
	}
	return string(result)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("2006-01-02")
}
