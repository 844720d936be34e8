package layout

import (
	"strings"

	"github.com/nurpe/outvoice/internal/model"
)

// PageFormat selects the physical page size.
type PageFormat string

const (
	FormatA4     PageFormat = "A4"
	FormatLetter PageFormat = "Letter"
)

// ParseFormat maps a user-supplied format name to a PageFormat, defaulting
// to A4.
func ParseFormat(raw string) PageFormat {
	if strings.EqualFold(strings.TrimSpace(raw), string(FormatLetter)) {
		return FormatLetter
	}
	return FormatA4
}

// Geometry describes the page in millimetres. All vertical cursor movement
// in the engine is expressed in multiples of LineHeight.
type Geometry struct {
	PageWidth  float64
	PageHeight float64
	Margin     float64
	LineHeight float64
}

// ContentWidth is the usable width between the left and right margins.
func (g Geometry) ContentWidth() float64 {
	return g.PageWidth - 2*g.Margin
}

// NewGeometry derives page geometry from a format and orientation.
func NewGeometry(format PageFormat, orientation model.Orientation) Geometry {
	width, height := 210.0, 297.0
	if format == FormatLetter {
		width, height = 215.9, 279.4
	}
	if orientation == model.OrientationLandscape {
		width, height = height, width
	}
	return Geometry{
		PageWidth:  width,
		PageHeight: height,
		Margin:     20,
		LineHeight: 7,
	}
}
