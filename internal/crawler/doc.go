// Package crawler coordinates the crawl: a pool of workers drains the
// frontier, fetches and parses pages, feeds discoveries back, and stops
// when a budget is exhausted.
//
// # Worker loop
//
// Each worker repeats: check the stop condition; claim the next frontier
// URL (marking it visited before the fetch, so no URL is ever processed
// twice); fetch; parse, feeding candidates to the email set and links to
// the frontier; sleep a short randomized politeness interval. A worker
// terminates when the stop condition holds or the frontier is empty. The
// crawl completes when every worker has terminated.
//
// # Budgets and overshoot
//
// Page claims go through an atomic reservation, so the number of pages
// scanned never exceeds the page budget even under concurrent claiming.
// The email budget is polled cooperatively: a worker already inside a
// fetch when it fills is allowed to finish that one fetch, so at most
// `concurrency` extra fetches can complete past the nominal budget.
// In-flight requests are never hard-aborted.
//
// # Politeness
//
// Two mechanisms bound the load on the target site: a shared rate limiter
// capping the pool's aggregate request rate, and a per-worker randomized
// delay (120-240ms) between successive requests.
package crawler
