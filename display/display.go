// Package display defines the paint instructions a page emits for one
// render pass: text runs and filled rectangles, with their styles.
package display

// Point is a position in pixels.
type Point struct {
	X, Y int
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Size is an extent in pixels.
type Size struct {
	Width, Height int
}

// FontSize is the page model's discrete font-size category.
type FontSize int

const (
	Medium FontSize = iota
	XLarge
	XXLarge
)

func (f FontSize) String() string {
	switch f {
	case Medium:
		return "medium"
	case XLarge:
		return "x-large"
	case XXLarge:
		return "xx-large"
	}
	return "unknown"
}

// TextDecoration is the decoration applied to a text run.
type TextDecoration int

const (
	DecorationNone TextDecoration = iota
	Underline
)

// Style holds the computed paint properties of an item.
type Style struct {
	Color           Color
	BackgroundColor Color
	FontSize        FontSize
	Decoration      TextDecoration
}

// DefaultStyle is black text on white at medium size.
func DefaultStyle() Style {
	return Style{Color: Black, BackgroundColor: White, FontSize: Medium}
}

// Item is a single immutable paint instruction.
type Item interface {
	isItem()
}

// Text is a run of text anchored at its top-left point.
type Text struct {
	Text  string
	Style Style
	Point Point
}

// Rect is a filled rectangle anchored at its top-left point.
type Rect struct {
	Style Style
	Point Point
	Size  Size
}

func (Text) isItem() {}
func (Rect) isItem() {}
