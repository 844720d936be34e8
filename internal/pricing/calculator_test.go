package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/outvoice/internal/model"
)

func f(v float64) *float64 { return &v }

func TestItemSubtotal(t *testing.T) {
	tests := []struct {
		name string
		item model.PricingItem
		want float64
	}{
		{"no discount no tax", model.PricingItem{Quantity: 2, UnitPrice: 50}, 100},
		{"zero quantity", model.PricingItem{Quantity: 0, UnitPrice: 50}, 0},
		{"percentage discount", model.PricingItem{Quantity: 2, UnitPrice: 50, Discount: f(10)}, 90},
		{"fixed discount", model.PricingItem{Quantity: 10, UnitPrice: 50, Discount: f(150)}, 350},
		{"fixed discount capped at base", model.PricingItem{Quantity: 1, UnitPrice: 120, Discount: f(500)}, 0},
		{"zero discount ignored", model.PricingItem{Quantity: 2, UnitPrice: 50, Discount: f(0)}, 100},
		{"percentage tax", model.PricingItem{Quantity: 2, UnitPrice: 50, Tax: f(20)}, 120},
		{"fixed tax is not capped", model.PricingItem{Quantity: 1, UnitPrice: 10, Tax: f(500)}, 510},
		{"tax applies after discount", model.PricingItem{Quantity: 2, UnitPrice: 50, Discount: f(50), Tax: f(10)}, 55},
		{"discount of exactly 100 is a fixed amount", model.PricingItem{Quantity: 4, UnitPrice: 100, Discount: f(100)}, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ItemSubtotal(tt.item), 1e-9)
		})
	}
}

func TestItemSubtotalCoercesBadNumbers(t *testing.T) {
	item := model.PricingItem{Quantity: math.NaN(), UnitPrice: 50, Tax: f(math.Inf(1))}
	assert.Equal(t, 0.0, ItemSubtotal(item))
}

func TestComputeSectionTotals(t *testing.T) {
	data := model.PricingSectionData{
		Items: []model.PricingItem{
			{ID: "a", Description: "Design", Quantity: 10, UnitPrice: 100},
			{ID: "b", Description: "Development", Quantity: 1, UnitPrice: 500, Discount: f(10)},
		},
	}

	got := ComputeSectionTotals(data)

	require.Len(t, got.Items, 2)
	assert.InDelta(t, 1000, got.Items[0].Subtotal, 1e-9)
	assert.InDelta(t, 450, got.Items[1].Subtotal, 1e-9)
	assert.InDelta(t, 1450, got.Subtotal, 1e-9)
	assert.Nil(t, got.DiscountAmount)
	assert.Nil(t, got.TaxAmount)
	assert.InDelta(t, 1450, got.Total, 1e-9)
}

func TestComputeSectionTotalsPercentageWinsOverAmount(t *testing.T) {
	data := model.PricingSectionData{
		Items:              []model.PricingItem{{Quantity: 2, UnitPrice: 100}},
		DiscountPercentage: f(10),
		DiscountAmount:     f(50),
	}

	got := ComputeSectionTotals(data)

	require.NotNil(t, got.DiscountAmount)
	assert.InDelta(t, 20, *got.DiscountAmount, 1e-9)
	assert.InDelta(t, 180, got.Total, 1e-9)
}

func TestComputeSectionTotalsFixedDiscountCapped(t *testing.T) {
	data := model.PricingSectionData{
		Items:          []model.PricingItem{{Quantity: 1, UnitPrice: 100}},
		DiscountAmount: f(250),
	}

	got := ComputeSectionTotals(data)

	require.NotNil(t, got.DiscountAmount)
	assert.InDelta(t, 100, *got.DiscountAmount, 1e-9)
	assert.InDelta(t, 0, got.Total, 1e-9)
}

func TestComputeSectionTotalsFixedTaxNotCapped(t *testing.T) {
	data := model.PricingSectionData{
		Items:     []model.PricingItem{{Quantity: 1, UnitPrice: 10}},
		TaxAmount: f(500),
	}

	got := ComputeSectionTotals(data)

	require.NotNil(t, got.TaxAmount)
	assert.InDelta(t, 500, *got.TaxAmount, 1e-9)
	assert.InDelta(t, 510, got.Total, 1e-9)
}

func TestComputeSectionTotalsTaxOnPostDiscountAmount(t *testing.T) {
	data := model.PricingSectionData{
		Items:              []model.PricingItem{{Quantity: 1, UnitPrice: 200}},
		DiscountPercentage: f(50),
		TaxPercentage:      f(10),
	}

	got := ComputeSectionTotals(data)

	require.NotNil(t, got.TaxAmount)
	assert.InDelta(t, 10, *got.TaxAmount, 1e-9)
	assert.InDelta(t, 110, got.Total, 1e-9)
}

func TestComputeSectionTotalsIdempotent(t *testing.T) {
	data := model.PricingSectionData{
		Items: []model.PricingItem{
			{Quantity: 3, UnitPrice: 40, Discount: f(5)},
			{Quantity: 1, UnitPrice: 99.99, Tax: f(12.5)},
		},
		DiscountPercentage: f(10),
		TaxPercentage:      f(20),
	}

	once := ComputeSectionTotals(data)
	twice := ComputeSectionTotals(once)

	assert.InDelta(t, once.Subtotal, twice.Subtotal, 1e-9)
	assert.InDelta(t, once.Total, twice.Total, 1e-9)
	require.NotNil(t, twice.DiscountAmount)
	assert.InDelta(t, *once.DiscountAmount, *twice.DiscountAmount, 1e-9)
}

func TestComputeSectionTotalsEmptyItems(t *testing.T) {
	got := ComputeSectionTotals(model.PricingSectionData{})

	assert.Empty(t, got.Items)
	assert.Equal(t, 0.0, got.Subtotal)
	assert.Equal(t, 0.0, got.Total)
	assert.Nil(t, got.DiscountAmount)
	assert.Nil(t, got.TaxAmount)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		data      model.PricingSectionData
		valid     bool
		wantError string
	}{
		{
			"valid section",
			model.PricingSectionData{Items: []model.PricingItem{{Description: "Work", Quantity: 1, UnitPrice: 10}}},
			true, "",
		},
		{
			"missing description",
			model.PricingSectionData{Items: []model.PricingItem{{Description: "  ", Quantity: 1, UnitPrice: 10}}},
			false, "item 1: description is required",
		},
		{
			"negative quantity",
			model.PricingSectionData{Items: []model.PricingItem{{Description: "Work", Quantity: -1, UnitPrice: 10}}},
			false, "item 1: quantity cannot be negative",
		},
		{
			"negative unit price",
			model.PricingSectionData{Items: []model.PricingItem{{Description: "Work", Quantity: 1, UnitPrice: -10}}},
			false, "item 1: unit price cannot be negative",
		},
		{
			"discount percentage over 100",
			model.PricingSectionData{DiscountPercentage: f(150)},
			false, "discount percentage must be between 0 and 100",
		},
		{
			"negative tax amount",
			model.PricingSectionData{TaxAmount: f(-5)},
			false, "tax amount cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, errs := Validate(tt.data)
			assert.Equal(t, tt.valid, valid)
			if tt.wantError != "" {
				assert.Contains(t, errs, tt.wantError)
			} else {
				assert.Empty(t, errs)
			}
		})
	}
}

func TestValidateDoesNotBlockComputation(t *testing.T) {
	data := model.PricingSectionData{
		Items: []model.PricingItem{{Quantity: -2, UnitPrice: 50}},
	}

	valid, _ := Validate(data)
	assert.False(t, valid)

	got := ComputeSectionTotals(data)
	assert.InDelta(t, -100, got.Subtotal, 1e-9)
}
