// Package fetcher turns a destination typed or clicked in the browser into
// a response: one HTTP GET, or one headless Chrome render when configured.
// Every failure is reported as a network fault; nothing is retried.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"golang.org/x/net/html/charset"

	"saba/fault"
	"saba/omnibox"
)

// Response is a fetched document with its body decoded to UTF-8.
type Response struct {
	URL        string // URL after following redirects
	StatusCode int
	Status     string
	Header     http.Header
	Body       string
}

// Options configures the fetcher behavior.
type Options struct {
	UserAgent  string
	Timeout    time.Duration
	ChromePath string           // Path to Chrome binary (empty = auto-detect)
	UseBrowser bool             // Render pages with headless Chrome instead of plain HTTP
	SearchURL  string           // Search URL format for input that is not an address
	Prefixes   []omnibox.Prefix // Extra search prefixes
	MaxBody    int64            // Largest body read, in bytes
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		UserAgent: "saba/0.1",
		Timeout:   30 * time.Second,
		SearchURL: omnibox.DefaultSearch,
		MaxBody:   8 << 20,
	}
}

// Fetcher retrieves destinations. It is safe to reuse across navigations.
type Fetcher struct {
	opts   Options
	client *http.Client
	parser *omnibox.Parser
}

// New creates a fetcher. Zero-valued options fall back to DefaultOptions.
func New(o Options) *Fetcher {
	def := DefaultOptions()
	if o.UserAgent == "" {
		o.UserAgent = def.UserAgent
	}
	if o.Timeout <= 0 {
		o.Timeout = def.Timeout
	}
	if o.MaxBody <= 0 {
		o.MaxBody = def.MaxBody
	}

	parser := omnibox.NewParser()
	parser.SetDefaultSearch(o.SearchURL)
	for _, p := range o.Prefixes {
		parser.AddPrefix(p)
	}

	return &Fetcher{
		opts:   o,
		client: &http.Client{Timeout: o.Timeout},
		parser: parser,
	}
}

// Options returns the effective options.
func (f *Fetcher) Options() Options {
	return f.opts
}

// Fetch resolves destination through the address-bar parser and retrieves it.
func (f *Fetcher) Fetch(destination string) (*Response, error) {
	target := f.parser.Resolve(destination)
	if target == "" {
		return nil, fault.Network("empty destination")
	}
	if f.opts.UseBrowser {
		return f.withBrowser(target)
	}
	return f.simple(target)
}

// simple fetches a URL using standard HTTP (fast, low bandwidth).
func (f *Fetcher) simple(target string) (*Response, error) {
	req, err := http.NewRequest(http.MethodGet, target, nil)
	if err != nil {
		return nil, fault.Wrap(fault.KindNetwork, "creating request", err)
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fault.Wrap(fault.KindNetwork, "fetching "+target, err)
	}
	defer resp.Body.Close()

	body, err := charset.NewReader(io.LimitReader(resp.Body, f.opts.MaxBody), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fault.Wrap(fault.KindNetwork, "decoding response", err)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fault.Wrap(fault.KindNetwork, "reading response", err)
	}

	return &Response{
		URL:        resp.Request.URL.String(),
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       string(data),
	}, nil
}

// userDataDir returns a persistent directory for Chrome user data.
func userDataDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "saba-chrome-profile"), nil
}

// withBrowser fetches a URL using headless Chrome so scripts run before the
// document is captured.
func (f *Fetcher) withBrowser(target string) (*Response, error) {
	profile, err := userDataDir()
	if err != nil {
		return nil, fault.Wrap(fault.KindOther, "locating chrome profile", err)
	}

	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoDefaultBrowserCheck,
		chromedp.NoFirstRun,
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("headless", "new"),
		chromedp.UserAgent(f.opts.UserAgent),
		chromedp.WindowSize(1280, 800),
		chromedp.UserDataDir(profile),
	}
	if f.opts.ChromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(f.opts.ChromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	defer allocCancel()

	// browser fetches need headroom for Chrome startup
	ctx, cancel := context.WithTimeout(allocCtx, f.opts.Timeout+15*time.Second)
	defer cancel()

	ctx, cancel = chromedp.NewContext(ctx)
	defer cancel()

	var html, finalURL string
	err = chromedp.Run(ctx,
		network.SetExtraHTTPHeaders(network.Headers(map[string]interface{}{
			"Accept-Language": "en-US,en;q=0.9",
		})),
		chromedp.Navigate(target),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
		chromedp.Location(&finalURL),
	)
	if err != nil {
		return nil, fault.Wrap(fault.KindNetwork, "browser fetch", err)
	}

	return &Response{
		URL:        finalURL,
		StatusCode: http.StatusOK,
		Status:     fmt.Sprintf("%d %s", http.StatusOK, http.StatusText(http.StatusOK)),
		Header:     http.Header{"Content-Type": []string{"text/html; charset=utf-8"}},
		Body:       html,
	}, nil
}
