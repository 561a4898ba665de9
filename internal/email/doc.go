// Package email implements email-candidate extraction, cleaning, and
// aggregation for the harvester.
//
// # Components
//
//   - ExtractCandidates: a boundary-aware regex scan that finds
//     local@domain.tld shaped substrings in free text.
//   - Clean: an ordered pipeline of independent cleaning steps that turns
//     a raw candidate into a canonical address or rejects it.
//   - Set: the deduplicated, concurrency-safe collection of validated
//     addresses exposed at the end of a crawl.
//
// # Cleaning pipeline
//
// Real-world markup glues labels ("Email:info@..."), percent-encoded
// whitespace ("%20info@..."), and stray punctuation onto addresses.
// Each heuristic is implemented as its own step so it can be unit-tested
// and revised independently; every step may reject the candidate outright.
// Cleaning is idempotent: running Clean on its own output is a no-op.
package email
