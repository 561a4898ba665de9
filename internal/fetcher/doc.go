// Package fetcher performs the bounded page fetches for the crawl.
//
// Every fetch is a single HTTP GET with a fixed timeout, a bounded
// redirect chain, and a custom User-Agent. Responses are filtered before
// they reach the parser: non-HTML content types and oversized bodies are
// rejected so per-page work and memory stay bounded on constrained hosts.
//
// Every failure - DNS, TLS, connection reset, timeout, bad status, wrong
// content type, oversized body - surfaces as an error the crawler treats
// as "no content for this URL". A single page failure never aborts the
// crawl, and nothing is retried.
//
// Connections are pooled and reused across requests to the same host for
// throughput.
package fetcher
