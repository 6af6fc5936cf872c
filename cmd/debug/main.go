// Debug tool to show how a page is laid out: its element tree and the
// display items the browser would paint.
//
// Usage: debug [url] [element-id]
package main

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"saba/display"
	"saba/dom"
	"saba/fetcher"
	"saba/page"
)

func main() {
	url := "http://example.com/"
	if len(os.Args) > 1 {
		url = os.Args[1]
	}
	id := ""
	if len(os.Args) > 2 {
		id = os.Args[2]
	}

	resp, err := fetcher.New(fetcher.DefaultOptions()).Fetch(url)
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	fmt.Printf("%s (%s)\n", resp.URL, resp.Status)

	doc, err := html.Parse(strings.NewReader(resp.Body))
	if err != nil {
		fmt.Println("Parse error:", err)
		os.Exit(1)
	}

	body := dom.ElementByKind(doc, atom.Body)
	if body == nil {
		fmt.Println("No body found!")
		return
	}

	fmt.Println("\nElements:")
	analyzeNode(body, 0, 3) // max depth 3

	if css := dom.StyleContent(doc); css != "" {
		fmt.Printf("\nStylesheet: %d bytes\n", len(css))
	}
	if js := dom.ScriptContent(doc); js != "" {
		fmt.Printf("Script: %d bytes (not run)\n", len(js))
	}

	if id != "" {
		el := dom.ElementByID(doc, id)
		if el == nil {
			fmt.Printf("\n#%s: not found\n", id)
		} else {
			fmt.Printf("\n#%s <%s>: %q\n", id, el.Data, strings.TrimSpace(dom.TextContent(el)))
		}
	}

	p := page.New().CurrentPage()
	if err := p.ReceiveResponse(resp); err != nil {
		fmt.Println("Layout error:", err)
		os.Exit(1)
	}
	fmt.Printf("\nTitle: %q, status %d\n", p.Title(), p.StatusCode())

	fmt.Println("\nDisplay items:")
	for _, item := range p.DisplayItems() {
		switch it := item.(type) {
		case display.Text:
			fmt.Printf("  text (%d,%d) %s %s %q\n", it.Point.X, it.Point.Y, it.Style.FontSize, it.Style.Color.Hex(), it.Text)
		case display.Rect:
			fmt.Printf("  rect (%d,%d) %dx%d %s\n", it.Point.X, it.Point.Y, it.Size.Width, it.Size.Height, it.Style.BackgroundColor.Hex())
		}
	}
}

func analyzeNode(n *html.Node, depth, maxDepth int) {
	if depth > maxDepth {
		return
	}

	indent := strings.Repeat("  ", depth+1)

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		attrs := ""
		for _, key := range []string{"id", "class", "href"} {
			if v := dom.Attr(c, key); v != "" {
				attrs += fmt.Sprintf(" %s=%q", key, v)
			}
		}
		fmt.Printf("%s<%s%s>\n", indent, c.Data, attrs)
		analyzeNode(c, depth+1, maxDepth)
	}
}
