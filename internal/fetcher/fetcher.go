package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html/charset"
)

// Fetch rejection errors. The crawler treats all of them identically
// (drop the page, move on); they are distinct so tests and debug logs can
// tell why a page yielded no content.
var (
	// ErrBadStatus is returned for any response status outside [200,400).
	ErrBadStatus = errors.New("unacceptable response status")

	// ErrNotHTML is returned when the response content type is not an
	// HTML-family type.
	ErrNotHTML = errors.New("response is not HTML")

	// ErrTooLarge is returned when the declared content length exceeds
	// the configured cap.
	ErrTooLarge = errors.New("response body exceeds size cap")
)

// Options configures a Fetcher. Zero values fall back to the defaults
// documented on each field.
type Options struct {
	// Timeout bounds the whole fetch including redirects. Default 12s.
	Timeout time.Duration

	// MaxRedirects bounds the redirect chain. Default 5.
	MaxRedirects int

	// MaxBodySize caps the bytes read per page. A response declaring a
	// larger Content-Length is rejected outright; undeclared bodies are
	// truncated at the cap. Default 2.5MB.
	MaxBodySize int64

	// UserAgent is sent with every request.
	UserAgent string
}

// Fetcher issues bounded, filtered HTTP GETs. It is safe for concurrent
// use by the worker pool; the underlying transport pools connections per
// host.
type Fetcher struct {
	client      *http.Client
	maxBodySize int64
	userAgent   string
}

// htmlContentTypes are the content types the parser can work with.
// An absent Content-Type header is allowed through: misconfigured servers
// frequently omit it on pages that are plainly HTML.
var htmlContentTypes = []string{"text/html", "application/xhtml+xml", "application/xml"}

// New creates a Fetcher.
//
// Design decision: The transport is tuned for repeated requests to one
// host (a single-site crawl hits the same server for every page), so idle
// connections per host are raised well above net/http's default of 2.
func New(opts Options) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 12 * time.Second
	}
	if opts.MaxRedirects <= 0 {
		opts.MaxRedirects = 5
	}
	if opts.MaxBodySize <= 0 {
		opts.MaxBodySize = int64(2.5 * 1024 * 1024)
	}

	transport := &http.Transport{
		MaxIdleConnsPerHost: 25,
		MaxConnsPerHost:     50,
		MaxIdleConns:        100,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 5 * time.Second,
		IdleConnTimeout:     90 * time.Second,
	}

	maxRedirects := opts.MaxRedirects
	client := &http.Client{
		Timeout:   opts.Timeout,
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}

	return &Fetcher{
		client:      client,
		maxBodySize: opts.MaxBodySize,
		userAgent:   opts.UserAgent,
	}
}

// Fetch GETs url and returns the decoded HTML body.
// Any failure means "no content for this URL": the caller drops the page
// and continues the crawl.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return "", fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !isHTMLContentType(contentType) {
		return "", fmt.Errorf("%w: %s", ErrNotHTML, contentType)
	}

	if resp.ContentLength > f.maxBodySize {
		return "", fmt.Errorf("%w: declared %d bytes", ErrTooLarge, resp.ContentLength)
	}

	// Decode whatever charset the server declared into UTF-8 before the
	// parser sees it; the limit applies to the raw bytes either way.
	limited := io.LimitReader(resp.Body, f.maxBodySize)
	decoded, err := charset.NewReader(limited, contentType)
	if err != nil {
		return "", err
	}

	body, err := io.ReadAll(decoded)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// isHTMLContentType reports whether ct is an HTML-family type. An empty
// value passes: the parser tolerates non-HTML input, and rejecting
// undeclared pages would lose real content.
func isHTMLContentType(ct string) bool {
	if ct == "" {
		return true
	}
	ct = strings.ToLower(ct)
	for _, want := range htmlContentTypes {
		if strings.Contains(ct, want) {
			return true
		}
	}
	return false
}
