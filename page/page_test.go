package page

import (
	"strings"
	"testing"

	"saba/display"
	"saba/fault"
	"saba/fetcher"
)

func load(t *testing.T, url, body string) *Page {
	t.Helper()
	b := New()
	p := b.CurrentPage()
	if err := p.ReceiveResponse(&fetcher.Response{URL: url, StatusCode: 200, Body: body}); err != nil {
		t.Fatalf("ReceiveResponse failed: %v", err)
	}
	return p
}

func texts(items []display.Item) []display.Text {
	var out []display.Text
	for _, it := range items {
		if tx, ok := it.(display.Text); ok {
			out = append(out, tx)
		}
	}
	return out
}

func TestReceiveResponseBlocks(t *testing.T) {
	p := load(t, "http://example.com/", `<html><head><title> Home </title></head>
<body>
<h1>Hello</h1>
<p>world</p>
</body></html>`)

	if p.Title() != "Home" {
		t.Errorf("Title() = %q", p.Title())
	}

	items := texts(p.DisplayItems())
	if len(items) != 2 {
		t.Fatalf("expected 2 text items, got %d: %+v", len(items), items)
	}
	if items[0].Text != "Hello" || items[0].Style.FontSize != display.XXLarge {
		t.Errorf("heading = %+v", items[0])
	}
	if items[0].Point != (display.Point{X: 0, Y: 0}) {
		t.Errorf("heading at %+v", items[0].Point)
	}
	if items[1].Text != "world" || items[1].Point != (display.Point{X: 0, Y: 3 * CharHeight}) {
		t.Errorf("paragraph = %+v", items[1])
	}
	if items[1].Style.Color != display.Black {
		t.Errorf("paragraph color = %s", items[1].Style.Color.Hex())
	}
}

func TestHeadingSizes(t *testing.T) {
	p := load(t, "http://example.com/", `<h2>two</h2><h3>three</h3>`)
	items := texts(p.DisplayItems())
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Style.FontSize != display.XLarge {
		t.Errorf("h2 size = %v", items[0].Style.FontSize)
	}
	if items[1].Style.FontSize != display.Medium {
		t.Errorf("h3 size = %v", items[1].Style.FontSize)
	}
	if items[1].Point.Y != 2*CharHeight {
		t.Errorf("h3 y = %d", items[1].Point.Y)
	}
}

func TestLinksAreStyledAndClickable(t *testing.T) {
	p := load(t, "http://example.com/dir/index.html", `<p>go <a href="next.html">here</a></p>`)

	items := texts(p.DisplayItems())
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d: %+v", len(items), items)
	}
	link := items[1]
	if link.Text != "here" || link.Point.X != 3*CharWidth {
		t.Errorf("link item = %+v", link)
	}
	if link.Style.Color != display.Blue || link.Style.Decoration != display.Underline {
		t.Errorf("link style = %+v", link.Style)
	}

	dest, ok := p.Clicked(display.Point{X: link.Point.X + Inset + 1, Y: Inset + 1})
	if !ok {
		t.Fatal("expected a link under the point")
	}
	if dest != "http://example.com/dir/next.html" {
		t.Errorf("Clicked = %q", dest)
	}

	if _, ok := p.Clicked(display.Point{X: Inset, Y: Inset}); ok {
		t.Error("plain text should not be a link")
	}
	if _, ok := p.Clicked(display.Point{X: 1, Y: -10}); ok {
		t.Error("negative coordinates should not hit anything")
	}
}

func TestClickedAbsoluteLink(t *testing.T) {
	p := load(t, "http://example.com/", `<a href="http://other.org/x">x</a>`)
	dest, ok := p.Clicked(display.Point{X: Inset, Y: Inset})
	if !ok || dest != "http://other.org/x" {
		t.Errorf("Clicked = %q, %v", dest, ok)
	}
}

func TestStylesheet(t *testing.T) {
	p := load(t, "http://example.com/", `<html><head><style>
/* comment */
p { color: red; }
.hide { display: none }
#big, .also { font-size: x-large; text-decoration: underline }
</style></head>
<body><p>red</p><div class="hide">gone</div><div id="big">big</div></body></html>`)

	items := texts(p.DisplayItems())
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d: %+v", len(items), items)
	}
	if items[0].Style.Color != display.Red {
		t.Errorf("p color = %s", items[0].Style.Color.Hex())
	}
	if items[1].Style.FontSize != display.XLarge || items[1].Style.Decoration != display.Underline {
		t.Errorf("#big style = %+v", items[1].Style)
	}
	for _, it := range items {
		if it.Text == "gone" {
			t.Error("display:none content was laid out")
		}
	}
}

func TestInlineStyleAttribute(t *testing.T) {
	p := load(t, "http://example.com/", `<p style="color: #00f">blue</p>`)
	items := texts(p.DisplayItems())
	if len(items) != 1 || items[0].Style.Color != display.Blue {
		t.Errorf("items = %+v", items)
	}
}

func TestBackgroundRect(t *testing.T) {
	p := load(t, "http://example.com/", `<div style="background-color: #ff0000"><p>x</p></div>`)
	items := p.DisplayItems()
	if len(items) != 2 {
		t.Fatalf("expected rect and text, got %d: %+v", len(items), items)
	}
	rect, ok := items[0].(display.Rect)
	if !ok {
		t.Fatalf("first item is %T, expected display.Rect", items[0])
	}
	want := display.Rect{
		Style: rect.Style,
		Point: display.Point{X: 0, Y: 0},
		Size:  display.Size{Width: ContentWidth, Height: CharHeight},
	}
	if rect != want {
		t.Errorf("rect = %+v", rect)
	}
	if rect.Style.BackgroundColor != display.Color(0xff0000) {
		t.Errorf("background = %s", rect.Style.BackgroundColor.Hex())
	}
}

func TestEmptyBackgroundBlockDropped(t *testing.T) {
	p := load(t, "http://example.com/", `<div style="background-color: red"></div><p>x</p>`)
	items := p.DisplayItems()
	if len(items) != 1 {
		t.Fatalf("expected only the text item, got %+v", items)
	}
}

func TestWrapping(t *testing.T) {
	p := load(t, "http://example.com/", "<p>"+strings.Repeat("word ", 30)+"</p>")
	items := texts(p.DisplayItems())
	if len(items) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(items))
	}
	for i, it := range items {
		if it.Point.X != 0 || it.Point.Y != i*CharHeight {
			t.Errorf("line %d at %+v", i, it.Point)
		}
		if w := len(it.Text) * CharWidth; w > ContentWidth {
			t.Errorf("line %d is %d px wide", i, w)
		}
	}
	if got := strings.Count(items[0].Text, "word"); got != 14 {
		t.Errorf("first line holds %d words, expected 14", got)
	}
}

func TestLongWordIsBroken(t *testing.T) {
	p := load(t, "http://example.com/", "<p>"+strings.Repeat("x", 100)+"</p>")
	items := texts(p.DisplayItems())
	if len(items) != 2 {
		t.Fatalf("expected 2 pieces, got %d", len(items))
	}
	if len(items[0].Text) != ContentWidth/CharWidth || items[1].Point.Y != CharHeight {
		t.Errorf("pieces = %+v", items)
	}
}

func TestLineBreak(t *testing.T) {
	p := load(t, "http://example.com/", `<p>a<br>b</p>`)
	items := texts(p.DisplayItems())
	if len(items) != 2 || items[1].Point != (display.Point{X: 0, Y: CharHeight}) {
		t.Errorf("items = %+v", items)
	}
}

func TestScriptAndHeadSkipped(t *testing.T) {
	p := load(t, "http://example.com/", `<html><head><script>var x = 1;</script></head><body><script>alert(1)</script>ok</body></html>`)
	items := texts(p.DisplayItems())
	if len(items) != 1 || items[0].Text != "ok" {
		t.Errorf("items = %+v", items)
	}
}

func TestErrorStatusStillRenders(t *testing.T) {
	b := New()
	p := b.CurrentPage()
	err := p.ReceiveResponse(&fetcher.Response{URL: "http://example.com/x", StatusCode: 404, Body: "<h1>Not Found</h1>"})
	if err != nil {
		t.Fatalf("ReceiveResponse failed: %v", err)
	}
	if p.StatusCode() != 404 || len(p.DisplayItems()) != 1 {
		t.Errorf("status %d, items %+v", p.StatusCode(), p.DisplayItems())
	}
}

func TestReceiveNilResponse(t *testing.T) {
	err := New().CurrentPage().ReceiveResponse(nil)
	if !fault.Is(err, fault.KindUnexpectedInput) {
		t.Errorf("expected unexpected-input fault, got %v", err)
	}
}

func TestDisplayItemsIsSnapshot(t *testing.T) {
	p := load(t, "http://example.com/", `<p>a</p>`)
	items := p.DisplayItems()
	items[0] = display.Rect{}
	if _, ok := p.DisplayItems()[0].(display.Text); !ok {
		t.Error("modifying the returned slice changed the page")
	}
}

func TestReceiveResponseReplacesContent(t *testing.T) {
	b := New()
	p := b.CurrentPage()
	p.ReceiveResponse(&fetcher.Response{URL: "http://a.com/", Body: `<a href="/x">first</a>`})
	p.ReceiveResponse(&fetcher.Response{URL: "http://b.com/", Body: `<p>second</p>`})

	items := texts(p.DisplayItems())
	if len(items) != 1 || items[0].Text != "second" {
		t.Errorf("items = %+v", items)
	}
	if _, ok := p.Clicked(display.Point{X: Inset, Y: Inset}); ok {
		t.Error("link boxes from the previous document survived")
	}
	if p.URL() != "http://b.com/" {
		t.Errorf("URL() = %q", p.URL())
	}
}

func TestHistory(t *testing.T) {
	b := New()
	p := b.CurrentPage()
	for _, u := range []string{"http://a.com/", "http://a.com/", "http://b.com/"} {
		if err := p.ReceiveResponse(&fetcher.Response{URL: u}); err != nil {
			t.Fatal(err)
		}
	}
	got := b.History()
	if len(got) != 2 || got[0] != "http://a.com/" || got[1] != "http://b.com/" {
		t.Errorf("History() = %v", got)
	}

	b.SetHistory([]string{"http://z.com/"})
	if h := b.History(); len(h) != 1 || h[0] != "http://z.com/" {
		t.Errorf("History() after SetHistory = %v", h)
	}
}

func TestParseStylesheetSkipsBadRules(t *testing.T) {
	rules := parseStylesheet(`@media print { p { color: red } } p:::bad { color: red } a { } b { color: blue }`)
	var ok bool
	for _, r := range rules {
		if len(r.decls) == 1 && r.decls[0] == (decl{prop: "color", value: "blue"}) {
			ok = true
		}
	}
	if !ok {
		t.Errorf("expected the b rule to survive, got %+v", rules)
	}
}
