package urlkit

import (
	"errors"
	"net/url"
	"strings"
)

// Canonicalization errors.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances at each failure site. This allows callers
// to use errors.Is() while keeping human-readable messages in one place.
var (
	// ErrInvalidURL is returned when input cannot be parsed as a URL at all.
	ErrInvalidURL = errors.New("invalid URL")

	// ErrUnsupportedScheme is returned when a URL uses a scheme other than
	// http or https. The crawler never follows other schemes.
	ErrUnsupportedScheme = errors.New("unsupported URL scheme: only http and https are allowed")
)

// ToBaseOrigin derives the crawl's fixed domain anchor from user input.
// Input is trimmed; when no scheme is present, https is assumed. The
// result is always "scheme://host[:port]/" with a trailing slash.
//
// This is the only construction-time failure point of a crawl: an input
// that cannot be resolved to a valid http(s) origin aborts before any
// crawling starts.
func ToBaseOrigin(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrInvalidURL
	}

	// Assume https for bare hostnames like "example.com".
	if !strings.Contains(input, "://") {
		input = "https://" + input
	}

	u, err := url.Parse(input)
	if err != nil {
		return "", ErrInvalidURL
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", ErrUnsupportedScheme
	}

	host := strings.ToLower(u.Host)
	if u.Hostname() == "" {
		return "", ErrInvalidURL
	}

	return scheme + "://" + host + "/", nil
}

// Normalize resolves raw against base (for relative links) and reduces the
// result to its canonical deduplication form:
//
//   - fragment removed
//   - host lower-cased
//   - default port (80 for http, 443 for https) stripped
//   - a single trailing slash stripped unless the path is exactly "/"
//
// Normalize is idempotent. It returns an error for unparseable input;
// callers drop the link and continue.
func Normalize(raw, base string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidURL
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", ErrInvalidURL
	}

	if base != "" {
		b, err := url.Parse(base)
		if err != nil {
			return "", ErrInvalidURL
		}
		u = b.ResolveReference(u)
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", ErrUnsupportedScheme
	}
	u.Scheme = scheme

	u.Fragment = ""
	u.Host = strings.ToLower(u.Host)

	// Strip the default port so http://host:80/ and http://host/ collapse
	// to the same key.
	if port := u.Port(); port != "" {
		if (scheme == "http" && port == "80") || (scheme == "https" && port == "443") {
			u.Host = u.Hostname()
		}
	}

	if u.Path == "" {
		u.Path = "/"
	}
	if u.Path != "/" && strings.HasSuffix(u.Path, "/") {
		u.Path = strings.TrimSuffix(u.Path, "/")
	}

	return u.String(), nil
}

// SameHost reports whether rawURL points at the same host as baseOrigin.
// The comparison is an exact hostname match: subdomains are different
// hosts and are out of crawl scope.
func SameHost(rawURL, baseOrigin string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	b, err := url.Parse(baseOrigin)
	if err != nil {
		return false
	}

	return u.Hostname() != "" && strings.EqualFold(u.Hostname(), b.Hostname())
}
