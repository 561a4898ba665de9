// Package frontier owns the crawl's URL state: the ordered sequence of
// discovered-but-unvisited URLs, the set of URLs ever enqueued, and the
// set of URLs already visited.
//
// # Queueing discipline
//
// Pending URLs keep their discovery order; the queue is never re-ordered.
// Consumed slots are never physically removed - a cursor advances over the
// backing slice instead, which avoids O(n) compaction on a sequence that
// can grow into the thousands during a crawl.
//
// # Deduplication
//
// A URL is enqueued at most once for the lifetime of a crawl, and a URL in
// the visited set is never re-added to pending. A Bloom filter sits in
// front of the exact enqueued set as a fast negative path; the exact map
// stays authoritative, so deduplication is never probabilistic.
//
// All mutation is mutex-guarded: workers run as real goroutines, so every
// state transition must be atomic with respect to the others.
package frontier
