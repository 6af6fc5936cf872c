// Package dom provides read-only queries over a parsed HTML tree.
// Lookups return nil or "" when nothing matches; they never fail.
package dom

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ElementByKind returns the first element of the given kind in document
// order, searching root and its descendants.
func ElementByKind(root *html.Node, kind atom.Atom) *html.Node {
	if root == nil {
		return nil
	}
	if root.Type == html.ElementNode && root.DataAtom == kind {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if found := ElementByKind(c, kind); found != nil {
			return found
		}
	}
	return nil
}

// ElementByID returns the first element whose id attribute equals id.
func ElementByID(root *html.Node, id string) *html.Node {
	if root == nil || id == "" {
		return nil
	}
	if root.Type == html.ElementNode && Attr(root, "id") == id {
		return root
	}
	sel := goquery.NewDocumentFromNode(root).Selection.
		Find("*").
		FilterFunction(func(_ int, s *goquery.Selection) bool {
			v, ok := s.Attr("id")
			return ok && v == id
		})
	if sel.Length() == 0 {
		return nil
	}
	return sel.Get(0)
}

// StyleContent returns the text of the first <style> element.
func StyleContent(root *html.Node) string {
	return firstChildText(ElementByKind(root, atom.Style))
}

// ScriptContent returns the text of the first <script> element.
func ScriptContent(root *html.Node) string {
	return firstChildText(ElementByKind(root, atom.Script))
}

// Title returns the trimmed text of the <title> element.
func Title(root *html.Node) string {
	return strings.TrimSpace(firstChildText(ElementByKind(root, atom.Title)))
}

func firstChildText(n *html.Node) string {
	if n == nil || n.FirstChild == nil || n.FirstChild.Type != html.TextNode {
		return ""
	}
	return n.FirstChild.Data
}

// TextContent concatenates all descendant text with whitespace collapsed.
func TextContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// Attr returns the value of the attribute key, or "".
func Attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
