package layout

// Document is the ordered sequence of draw operations the engine produces,
// partitioned into pages. It carries everything a backend needs to render
// the proposal to PDF or to an on-screen preview.
type Document struct {
	Geometry Geometry
	Pages    []Page
}

type Page struct {
	Ops []Op
}

// Op is a single draw instruction. Coordinates are in the same millimetre
// space as Geometry, measured from the top-left corner of the page.
type Op interface {
	op()
}

type Align string

const (
	AlignLeft   Align = "L"
	AlignCenter Align = "C"
	AlignRight  Align = "R"
)

// FontStyle follows the gofpdf style string convention.
type FontStyle string

const (
	StyleNormal FontStyle = ""
	StyleBold   FontStyle = "B"
	StyleItalic FontStyle = "I"
)

type Color struct {
	R, G, B uint8
}

var (
	colorBlack   = Color{0, 0, 0}
	colorWhite   = Color{255, 255, 255}
	colorPrimary = Color{30, 58, 138}
	colorAccent  = Color{37, 99, 235}
	colorRed     = Color{200, 0, 0}
	colorGray    = Color{100, 100, 100}
	colorMuted   = Color{128, 128, 128}
	colorRule    = Color{200, 200, 200}
)

// TextOp draws a single line of text. For AlignCenter and AlignRight the X
// coordinate is the anchor the text is centered on or ends at.
type TextOp struct {
	Text  string
	X, Y  float64
	Size  float64
	Style FontStyle
	Color Color
	Align Align
}

// LineOp draws a horizontal or vertical rule of the given stroke width.
type LineOp struct {
	X1, Y1 float64
	X2, Y2 float64
	Width  float64
	Color  Color
}

// RectOp draws a filled rectangle.
type RectOp struct {
	X, Y  float64
	W, H  float64
	Color Color
}

func (TextOp) op() {}
func (LineOp) op() {}
func (RectOp) op() {}
