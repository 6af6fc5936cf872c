package page

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"saba/display"
	"saba/dom"
)

// style is the computed style of an element during layout.
type style struct {
	display.Style
	hidden        bool
	hasBackground bool // background-color set on this element itself
}

type decl struct {
	prop, value string
}

type rule struct {
	sel   cascadia.Sel
	decls []decl
}

// parseStylesheet reads the rules of a <style> block. Rules whose selector
// does not compile are skipped, as are at-rules.
func parseStylesheet(css string) []rule {
	css = stripComments(css)

	var rules []rule
	for _, chunk := range strings.Split(css, "}") {
		selText, body, ok := strings.Cut(chunk, "{")
		if !ok {
			continue
		}
		selText = strings.TrimSpace(selText)
		if selText == "" || strings.HasPrefix(selText, "@") {
			continue
		}
		decls := parseDeclarations(body)
		if len(decls) == 0 {
			continue
		}
		for _, part := range strings.Split(selText, ",") {
			sel, err := cascadia.Parse(strings.TrimSpace(part))
			if err != nil {
				continue
			}
			rules = append(rules, rule{sel: sel, decls: decls})
		}
	}
	return rules
}

func stripComments(css string) string {
	var sb strings.Builder
	for {
		start := strings.Index(css, "/*")
		if start < 0 {
			break
		}
		sb.WriteString(css[:start])
		end := strings.Index(css[start+2:], "*/")
		if end < 0 {
			return sb.String()
		}
		css = css[start+2+end+2:]
	}
	sb.WriteString(css)
	return sb.String()
}

// parseDeclarations reads "prop: value; prop: value" pairs.
func parseDeclarations(s string) []decl {
	var decls []decl
	for _, part := range strings.Split(s, ";") {
		prop, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		value = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), "!important"))
		if prop == "" || value == "" {
			continue
		}
		decls = append(decls, decl{prop: prop, value: value})
	}
	return decls
}

// computeStyle derives n's style from its parent, the element defaults,
// matching stylesheet rules in source order and finally the style attribute.
func computeStyle(n *html.Node, parent style, rules []rule) style {
	s := style{Style: parent.Style}

	switch n.DataAtom {
	case atom.H1:
		s.FontSize = display.XXLarge
	case atom.H2:
		s.FontSize = display.XLarge
	case atom.A:
		if dom.Attr(n, "href") != "" {
			s.Color = display.Blue
			s.Decoration = display.Underline
		}
	}

	for _, r := range rules {
		if r.sel.Match(n) {
			s.apply(r.decls)
		}
	}
	if inline := dom.Attr(n, "style"); inline != "" {
		s.apply(parseDeclarations(inline))
	}
	return s
}

func (s *style) apply(decls []decl) {
	for _, d := range decls {
		value := strings.ToLower(d.value)
		switch d.prop {
		case "color":
			if c, err := display.ParseColor(value); err == nil {
				s.Color = c
			}
		case "background-color", "background":
			if c, err := display.ParseColor(value); err == nil {
				s.BackgroundColor = c
				s.hasBackground = true
			}
		case "font-size":
			switch value {
			case "medium":
				s.FontSize = display.Medium
			case "x-large":
				s.FontSize = display.XLarge
			case "xx-large":
				s.FontSize = display.XXLarge
			}
		case "text-decoration", "text-decoration-line":
			switch value {
			case "underline":
				s.Decoration = display.Underline
			case "none":
				s.Decoration = display.DecorationNone
			}
		case "display":
			s.hidden = value == "none"
		}
	}
}
