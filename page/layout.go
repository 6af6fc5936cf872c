package page

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"saba/display"
	"saba/dom"
	"saba/render"
)

// Layout metrics. Text is measured in fixed-size character cells, scaled
// up for the larger font sizes.
const (
	ContentWidth = 590
	CharWidth    = 8
	CharHeight   = 16

	// Inset is how far the host paints items from the content origin.
	Inset = 5
)

// box is a rectangle in layout coordinates.
type box struct {
	X, Y, W, H int
}

func (b box) contains(p display.Point) bool {
	return p.X >= b.X && p.X < b.X+b.W && p.Y >= b.Y && p.Y < b.Y+b.H
}

// linkBox is the area covered by one run of link text.
type linkBox struct {
	box
	href string
}

var blockElements = map[atom.Atom]bool{
	atom.Html: true, atom.Body: true, atom.Div: true, atom.P: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Ul: true, atom.Ol: true, atom.Li: true, atom.Blockquote: true, atom.Pre: true,
	atom.Section: true, atom.Article: true, atom.Main: true, atom.Header: true,
	atom.Footer: true, atom.Nav: true, atom.Aside: true, atom.Form: true, atom.Table: true,
	atom.Tr: true, atom.Hr: true, atom.Dl: true, atom.Dt: true, atom.Dd: true,
}

var skippedElements = map[atom.Atom]bool{
	atom.Head: true, atom.Title: true, atom.Style: true, atom.Script: true,
	atom.Meta: true, atom.Link: true, atom.Noscript: true, atom.Template: true,
}

func scale(fs display.FontSize) int {
	switch fs {
	case display.XLarge:
		return 2
	case display.XXLarge:
		return 3
	}
	return 1
}

// layout flows a document into display items.
type layout struct {
	rules []rule
	width int

	items []display.Item
	links []linkBox

	x, y         int
	lineHeight   int
	pendingSpace bool
}

func newLayout(rules []rule) *layout {
	return &layout{rules: rules, width: ContentWidth}
}

func (l *layout) run(root *html.Node) {
	start := dom.ElementByKind(root, atom.Body)
	if start == nil {
		start = root
	}
	l.children(start, style{Style: display.DefaultStyle()}, "")
	l.breakLine()
}

func (l *layout) children(n *html.Node, st style, href string) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		l.node(c, st, href)
	}
}

func (l *layout) node(n *html.Node, parent style, href string) {
	switch n.Type {
	case html.TextNode:
		l.text(n.Data, parent, href)
		return
	case html.ElementNode:
	default:
		return
	}

	if skippedElements[n.DataAtom] {
		return
	}
	st := computeStyle(n, parent, l.rules)
	if st.hidden {
		return
	}
	if n.DataAtom == atom.A {
		if h := dom.Attr(n, "href"); h != "" {
			href = h
		}
	}

	switch {
	case n.DataAtom == atom.Br:
		l.newline()
	case blockElements[n.DataAtom]:
		l.block(n, st, href)
	default:
		l.children(n, st, href)
	}
}

func (l *layout) block(n *html.Node, st style, href string) {
	l.breakLine()

	bg := -1
	top := l.y
	if st.hasBackground {
		bg = len(l.items)
		l.items = append(l.items, display.Rect{})
	}

	l.children(n, st, href)
	l.breakLine()

	if bg < 0 {
		return
	}
	if l.y == top {
		l.items = append(l.items[:bg], l.items[bg+1:]...)
		return
	}
	l.items[bg] = display.Rect{
		Style: st.Style,
		Point: display.Point{X: 0, Y: top},
		Size:  display.Size{Width: l.width, Height: l.y - top},
	}
}

// text places the words of s on the current line, wrapping as needed.
// Consecutive words on one line become a single text item.
func (l *layout) text(s string, st style, href string) {
	words := strings.Fields(s)
	if len(words) == 0 {
		if s != "" && l.x > 0 {
			l.pendingSpace = true
		}
		return
	}

	k := scale(st.FontSize)
	cw, ch := CharWidth*k, CharHeight*k
	leadingSpace := unicode.IsSpace([]rune(s)[0])

	var run strings.Builder
	runX := l.x
	flush := func() {
		if run.Len() == 0 {
			return
		}
		l.emit(run.String(), runX, st, href, cw, ch)
		run.Reset()
	}

	for i, word := range words {
		sp := 0
		if l.x > 0 && (i > 0 || leadingSpace || l.pendingSpace) {
			sp = cw
		}
		ww := render.StringWidth(word) * cw

		if l.x > 0 && l.x+sp+ww > l.width {
			flush()
			l.newline()
			sp = 0
		}

		if ww > l.width {
			flush()
			pieces := render.WrapText(word, l.width/cw)
			for j, piece := range pieces {
				if j > 0 {
					l.newline()
				}
				l.emit(piece, 0, st, href, cw, ch)
				l.x = render.StringWidth(piece) * cw
			}
			runX = l.x
			continue
		}

		if run.Len() == 0 {
			runX = l.x + sp
		} else if sp > 0 {
			run.WriteByte(' ')
		}
		run.WriteString(word)
		l.x += sp + ww
		if ch > l.lineHeight {
			l.lineHeight = ch
		}
	}
	flush()

	last := []rune(s)
	l.pendingSpace = unicode.IsSpace(last[len(last)-1])
}

func (l *layout) emit(text string, x int, st style, href string, cw, ch int) {
	l.items = append(l.items, display.Text{
		Text:  text,
		Style: st.Style,
		Point: display.Point{X: x, Y: l.y},
	})
	if ch > l.lineHeight {
		l.lineHeight = ch
	}
	if href != "" {
		l.links = append(l.links, linkBox{
			box:  box{X: x, Y: l.y, W: render.StringWidth(text) * cw, H: ch},
			href: href,
		})
	}
}

// newline ends the current line. An empty line still advances one row.
func (l *layout) newline() {
	h := l.lineHeight
	if h == 0 {
		h = CharHeight
	}
	l.y += h
	l.x = 0
	l.lineHeight = 0
	l.pendingSpace = false
}

// breakLine ends the current line only if something is on it.
func (l *layout) breakLine() {
	if l.x > 0 {
		l.newline()
	}
}
