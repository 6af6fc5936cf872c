// Package omnibox turns whatever was typed into the address bar into a
// destination URL: direct addresses pass through, host-like input gets a
// scheme, anything else becomes a search.
package omnibox

import (
	"net/url"
	"strings"
)

// Result represents the parsed address-bar input.
type Result struct {
	URL      string // The destination to fetch
	Query    string // Search query (when IsSearch)
	IsSearch bool   // Whether the input was treated as a search
	Provider string // The search provider used (if IsSearch)
}

// Prefix represents a search prefix configuration.
type Prefix struct {
	Names   []string // Prefix names (e.g., "wp", "wiki")
	URLFmt  string   // URL format with %s for the escaped query
	Display string   // Display name (e.g., "Wikipedia")
}

// DefaultSearch is the search URL format used when none is configured.
const DefaultSearch = "https://html.duckduckgo.com/html/?q=%s"

// DefaultPrefixes returns the built-in search prefixes.
func DefaultPrefixes() []Prefix {
	return []Prefix{
		{
			Names:   []string{"ddg", "duckduckgo"},
			URLFmt:  DefaultSearch,
			Display: "DuckDuckGo",
		},
		{
			Names:   []string{"wp", "wiki", "wikipedia"},
			URLFmt:  "https://en.wikipedia.org/w/index.php?search=%s",
			Display: "Wikipedia",
		},
	}
}

// Parser handles address-bar input parsing.
type Parser struct {
	prefixes      []Prefix
	defaultSearch string
}

// NewParser creates a new parser with default configuration.
func NewParser() *Parser {
	return &Parser{
		prefixes:      DefaultPrefixes(),
		defaultSearch: DefaultSearch,
	}
}

// SetDefaultSearch sets the default search URL format. Empty keeps the current one.
func (p *Parser) SetDefaultSearch(urlFmt string) {
	if urlFmt != "" {
		p.defaultSearch = urlFmt
	}
}

// AddPrefix adds a custom search prefix.
func (p *Parser) AddPrefix(prefix Prefix) {
	p.prefixes = append(p.prefixes, prefix)
}

// Parse parses address-bar input and returns the result.
func (p *Parser) Parse(input string) Result {
	input = strings.TrimSpace(input)
	if input == "" {
		return Result{}
	}

	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		return Result{URL: input}
	}

	// Search prefixes (e.g., "wp cats")
	if idx := strings.Index(input, " "); idx > 0 {
		prefix := strings.ToLower(input[:idx])
		query := strings.TrimSpace(input[idx+1:])
		if query != "" {
			for _, pfx := range p.prefixes {
				for _, name := range pfx.Names {
					if prefix == name {
						return Result{
							URL:      format(pfx.URLFmt, query),
							Query:    query,
							IsSearch: true,
							Provider: pfx.Display,
						}
					}
				}
			}
		}
	}

	if looksLikeURL(input) {
		return Result{URL: "http://" + input}
	}

	return Result{
		URL:      format(p.defaultSearch, input),
		Query:    input,
		IsSearch: true,
		Provider: "Search",
	}
}

// Resolve returns the destination URL for input, or "" for blank input.
func (p *Parser) Resolve(input string) string {
	return p.Parse(input).URL
}

func format(urlFmt, query string) string {
	return strings.Replace(urlFmt, "%s", url.QueryEscape(query), 1)
}

// looksLikeURL checks if input looks like a host (domain.tld, localhost, IP).
func looksLikeURL(input string) bool {
	if strings.Contains(input, " ") {
		return false
	}

	lower := strings.ToLower(input)
	if strings.HasPrefix(lower, "localhost") || strings.HasPrefix(lower, "127.") {
		return true
	}

	host, _, _ := strings.Cut(lower, "/")
	host, _, _ = strings.Cut(host, ":")
	dot := strings.LastIndex(host, ".")
	if dot <= 0 || dot == len(host)-1 {
		return false
	}
	tld := host[dot+1:]
	for _, r := range tld {
		if r < 'a' || r > 'z' {
			// all-digit hosts are IPv4 addresses
			return isIPv4(host)
		}
	}
	return len(tld) >= 2
}

func isIPv4(host string) bool {
	parts := strings.Split(host, ".")
	if len(parts) != 4 {
		return false
	}
	for _, part := range parts {
		if part == "" || len(part) > 3 {
			return false
		}
		for _, r := range part {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}
