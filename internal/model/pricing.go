package model

// PricingItem is one line of an itemized pricing table. Discount and Tax are
// dual-purpose: values below 100 are percentages, values of 100 and above are
// fixed currency amounts. Subtotal is always derived by the pricing engine,
// never taken from input.
type PricingItem struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Quantity    float64  `json:"quantity"`
	UnitPrice   float64  `json:"unitPrice"`
	Discount    *float64 `json:"discount,omitempty"`
	Tax         *float64 `json:"tax,omitempty"`
	Subtotal    float64  `json:"subtotal"`
}

// PricingSectionData holds the structured pricing payload of a section.
// Unlike item-level fields, section discount and tax use separate
// percentage/amount fields; the engine gives percentage priority when both
// are set. DiscountAmount and TaxAmount double as input (fixed amount) and
// output (computed value); the engine leaves them nil when the computed
// value is not positive, so renderers show a line only when the field is
// present.
type PricingSectionData struct {
	Items              []PricingItem `json:"items"`
	Subtotal           float64       `json:"subtotal"`
	DiscountAmount     *float64      `json:"discountAmount,omitempty"`
	DiscountPercentage *float64      `json:"discountPercentage,omitempty"`
	TaxAmount          *float64      `json:"taxAmount,omitempty"`
	TaxPercentage      *float64      `json:"taxPercentage,omitempty"`
	Total              float64       `json:"total"`
	Currency           string        `json:"currency,omitempty"`
	Notes              string        `json:"notes,omitempty"`
}
