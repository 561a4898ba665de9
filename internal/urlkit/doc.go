// Package urlkit provides URL canonicalization for crawl scoping and
// deduplication.
//
// The crawler anchors itself to a single base origin (scheme + host + port)
// and compares every discovered link against it. Two pure operations make
// that possible:
//
//   - ToBaseOrigin turns arbitrary user input into a fixed origin URL.
//   - Normalize turns arbitrary links into a canonical string form usable
//     as a deduplication key.
//
// Normalization is idempotent: Normalize(Normalize(u)) == Normalize(u) for
// any syntactically valid u. Callers treat normalization failures as "drop
// the link", never as a crawl-fatal error.
package urlkit
