// Package pricing implements the proposal pricing engine: item subtotals,
// section-level discount and tax aggregation, and currency formatting.
// All functions are pure and never fail; malformed numeric input is treated
// as zero.
package pricing

import (
	"fmt"
	"math"
	"strings"

	"github.com/nurpe/outvoice/internal/model"
)

// ItemSubtotal computes the subtotal for a single pricing item.
//
// Discount and tax are dual-purpose: a value below 100 is a percentage, a
// value of 100 or more is a fixed currency amount. The discount amount is
// capped at the item base; the fixed tax amount is not capped. Tax applies
// to the post-discount amount.
func ItemSubtotal(item model.PricingItem) float64 {
	base := sanitize(item.Quantity) * sanitize(item.UnitPrice)

	var discountAmount float64
	if discount := optional(item.Discount); discount > 0 {
		if discount < 100 {
			discountAmount = base * discount / 100
		} else {
			discountAmount = math.Min(discount, base)
		}
	}

	afterDiscount := base - discountAmount

	var taxAmount float64
	if tax := optional(item.Tax); tax > 0 {
		if tax < 100 {
			taxAmount = afterDiscount * tax / 100
		} else {
			taxAmount = tax
		}
	}

	return afterDiscount + taxAmount
}

// ComputeSectionTotals recomputes every derived field of a pricing section
// from its items and discount/tax settings. It returns a new value and is
// idempotent: feeding its output back in yields the same totals.
//
// Section-level discount: percentage wins when both percentage and amount
// are set; a fixed amount is capped at the subtotal. Section-level tax is
// computed on the post-discount amount; percentage wins, and a fixed amount
// is not capped. Computed discount/tax fields are left nil when the value
// is not positive, so renderers can key "show this line" off field presence.
func ComputeSectionTotals(data model.PricingSectionData) model.PricingSectionData {
	items := make([]model.PricingItem, len(data.Items))
	for i, item := range data.Items {
		item.Subtotal = ItemSubtotal(item)
		items[i] = item
	}

	var subtotal float64
	for _, item := range items {
		subtotal += item.Subtotal
	}

	var discountAmount float64
	if pct := optional(data.DiscountPercentage); pct > 0 {
		discountAmount = subtotal * pct / 100
	} else if amount := optional(data.DiscountAmount); amount > 0 {
		discountAmount = math.Min(amount, subtotal)
	}

	afterDiscount := subtotal - discountAmount

	var taxAmount float64
	if pct := optional(data.TaxPercentage); pct > 0 {
		taxAmount = afterDiscount * pct / 100
	} else if amount := optional(data.TaxAmount); amount > 0 {
		taxAmount = amount
	}

	out := data
	out.Items = items
	out.Subtotal = subtotal
	out.DiscountAmount = positiveOrNil(discountAmount)
	out.TaxAmount = positiveOrNil(taxAmount)
	out.Total = afterDiscount + taxAmount
	return out
}

/// Validate checks a pricing section for input problems. It is advisory only:
// the calculator still computes over invalid data.
func Validate(data model.PricingSectionData) (bool, []string) {
	var errs []string

	for i, item := range data.Items {
		if strings.TrimSpace(item.Description) == "" {
			errs = append(errs, fmt.Sprintf("item %d: description is required", i+1))
		}
		if item.Quantity < 0 {
			errs = append(errs, fmt.Sprintf("item %d: quantity cannot be negative", i+1))
		}
		if item.UnitPrice < 0 {
			errs = append(errs, fmt.Sprintf("item %d: unit price cannot be negative", i+1))
		}
	}

	if data.DiscountPercentage != nil && (*data.DiscountPercentage < 0 || *data.DiscountPercentage > 100) {
		errs = append(errs, "discount percentage must be between 0 and 100")
	}
	if data.DiscountAmount != nil && *data.DiscountAmount < 0 {
		errs = append(errs, "discount amount cannot be negative")
	}
	if data.TaxPercentage != nil && (*data.TaxPercentage < 0 || *data.TaxPercentage > 100) {
		errs = append(errs, "tax percentage must be between 0 and 100")
	}
	if data.TaxAmount != nil && *data.TaxAmount < 0 {
		errs = append(errs, "tax amount cannot be negative")
	}

	return len(errs) == 0, errs
}

func optional(v *float64) float64 {
	if v == nil {
		return 0
	}
	return sanitize(*v)
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func positiveOrNil(v float64) *float64 {
	if v > 0 {
		return &v
	}
	return nil
}
