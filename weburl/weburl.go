// Package weburl splits http URLs into host, port, path and query.
package weburl

import (
	"net/url"
	"strings"

	"saba/fault"
)

const (
	scheme      = "http://"
	defaultPort = "80"
)

// URL is a decomposed http URL. Path carries no leading slash and Query
// no leading question mark.
type URL struct {
	Raw   string
	Host  string
	Port  string
	Path  string
	Query string
}

// Parse decomposes raw. Only the http scheme is supported.
func Parse(raw string) (URL, error) {
	if !strings.HasPrefix(raw, scheme) {
		return URL{}, fault.UnexpectedInput("only the http scheme is supported")
	}
	rest := strings.TrimPrefix(raw, scheme)
	hostPort, pathQuery, _ := strings.Cut(rest, "/")

	u := URL{Raw: raw, Host: hostPort, Port: defaultPort}
	if host, port, ok := strings.Cut(hostPort, ":"); ok {
		u.Host = host
		u.Port = port
	}
	u.Path, u.Query, _ = strings.Cut(pathQuery, "?")
	return u, nil
}

// String rebuilds the URL, omitting the default port.
func (u URL) String() string {
	var sb strings.Builder
	sb.WriteString(scheme)
	sb.WriteString(u.Host)
	if u.Port != "" && u.Port != defaultPort {
		sb.WriteString(":")
		sb.WriteString(u.Port)
	}
	sb.WriteString("/")
	sb.WriteString(u.Path)
	if u.Query != "" {
		sb.WriteString("?")
		sb.WriteString(u.Query)
	}
	return sb.String()
}

// Origin returns scheme, host and non-default port.
func (u URL) Origin() string {
	if u.Port == "" || u.Port == defaultPort {
		return scheme + u.Host
	}
	return scheme + u.Host + ":" + u.Port
}

// Resolve returns href made absolute against base. Absolute hrefs are
// returned unchanged; a base that is not http falls back to generic
// reference resolution.
func Resolve(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return base
	}
	if strings.Contains(href, "://") {
		return href
	}

	b, err := Parse(base)
	if err != nil {
		return resolveGeneric(base, href)
	}

	switch {
	case strings.HasPrefix(href, "//"):
		return "http:" + href
	case strings.HasPrefix(href, "#"):
		return base
	case strings.HasPrefix(href, "?"):
		b.Query = href[1:]
		return b.String()
	case strings.HasPrefix(href, "/"):
		return b.Origin() + href
	}

	dir := ""
	if i := strings.LastIndex(b.Path, "/"); i >= 0 {
		dir = b.Path[:i+1]
	}
	return b.Origin() + "/" + cleanPath(dir+href)
}

func resolveGeneric(base, href string) string {
	bu, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return bu.ResolveReference(ref).String()
}

// cleanPath collapses "." and ".." segments while keeping any query suffix.
func cleanPath(p string) string {
	p, query, hasQuery := strings.Cut(p, "?")
	var out []string
	for _, seg := range strings.Split(p, "/") {
		switch seg {
		case ".":
		case "..":
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		default:
			out = append(out, seg)
		}
	}
	cleaned := strings.Join(out, "/")
	if hasQuery {
		cleaned += "?" + query
	}
	return cleaned
}
