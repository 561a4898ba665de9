// Package webapi exposes the harvester over HTTP.
//
// The server publishes a small JSON API:
//   - POST /api/v1/harvest runs a crawl and returns the result
//   - GET /healthz reports liveness
//
// Design decision: We keep the HTTP layer as a thin shell over the
// crawler because:
//  1. The crawl semantics live in one place, shared with the CLI
//  2. Handlers only translate JSON to budgets and back
//  3. The crawler stays testable without any HTTP machinery
//
// Malformed request bodies (including numeric fields of the wrong type)
// are rejected with 400 before any crawl starts. A request body whose
// URL cannot be resolved to an http(s) origin is rejected with 422.
// Out-of-range budgets are not errors; they are clamped and the applied
// values are echoed back in the response.
package webapi
