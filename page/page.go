// Package page is the browser's document model: it turns a fetched
// response into display items and answers which link sits under a point.
package page

import (
	"strings"

	"golang.org/x/net/html"

	"saba/display"
	"saba/dom"
	"saba/fault"
	"saba/fetcher"
	"saba/weburl"
)

// Browser owns the page shown in the window and the list of visited URLs.
type Browser struct {
	pages   []*Page
	current int
	history []string
}

// New creates a browser holding one blank page.
func New() *Browser {
	b := &Browser{}
	b.pages = []*Page{{browser: b}}
	return b
}

// CurrentPage returns the page shown in the window.
func (b *Browser) CurrentPage() *Page {
	return b.pages[b.current]
}

// History returns the URLs loaded so far, oldest first.
func (b *Browser) History() []string {
	return append([]string(nil), b.history...)
}

// SetHistory replaces the history, e.g. with a restored session.
func (b *Browser) SetHistory(urls []string) {
	b.history = append([]string(nil), urls...)
}

func (b *Browser) record(url string) {
	if url == "" {
		return
	}
	if n := len(b.history); n > 0 && b.history[n-1] == url {
		return
	}
	b.history = append(b.history, url)
}

// Page is one loaded document.
type Page struct {
	browser *Browser

	url    string
	title  string
	status int
	items  []display.Item
	links  []linkBox
}

// URL returns the address the current document was loaded from.
func (p *Page) URL() string { return p.url }

// Title returns the document title, if any.
func (p *Page) Title() string { return p.title }

// StatusCode returns the HTTP status of the current document.
func (p *Page) StatusCode() int { return p.status }

// ReceiveResponse replaces the page contents with the laid-out response body.
// A non-success status is rendered like any other document.
func (p *Page) ReceiveResponse(resp *fetcher.Response) error {
	if resp == nil {
		return fault.UnexpectedInput("no response to display")
	}

	doc, err := html.Parse(strings.NewReader(resp.Body))
	if err != nil {
		return fault.Wrap(fault.KindUnexpectedInput, "parsing document", err)
	}

	l := newLayout(parseStylesheet(dom.StyleContent(doc)))
	l.run(doc)

	p.url = resp.URL
	p.title = dom.Title(doc)
	p.status = resp.StatusCode
	p.items = l.items
	p.links = l.links

	if p.browser != nil {
		p.browser.record(resp.URL)
	}
	return nil
}

// DisplayItems returns a snapshot of the paint instructions in paint order.
func (p *Page) DisplayItems() []display.Item {
	return append([]display.Item(nil), p.items...)
}

// Clicked returns the destination of the link under point, given in
// content-area coordinates. Relative links are resolved against the page URL.
func (p *Page) Clicked(point display.Point) (string, bool) {
	at := point.Sub(display.Point{X: Inset, Y: Inset})
	for _, link := range p.links {
		if link.contains(at) {
			return weburl.Resolve(p.url, link.href), true
		}
	}
	return "", false
}
