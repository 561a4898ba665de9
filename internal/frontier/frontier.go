package frontier

import (
	"strings"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"

	"github.com/mailsift/mailsift/internal/urlkit"
)

// Bloom filter sizing. A single-site crawl rarely discovers more than a
// few thousand URLs, but the filter is cheap enough to size for the worst
// case a 500-page budget can produce.
const (
	bloomExpectedElements  = 100_000
	bloomFalsePositiveRate = 0.01
)

// Frontier holds the URLs discovered during one crawl. It is seeded with
// the base origin (plus the fast-mode paths when enabled) and then fed by
// workers as they parse pages.
type Frontier struct {
	mu sync.Mutex

	// baseOrigin anchors domain membership; immutable once the crawl starts.
	baseOrigin string

	// pending is the discovery-ordered queue. Slots before cursor are
	// consumed but never compacted away.
	pending []string
	cursor  int

	// enqueued is the authoritative ever-enqueued set.
	enqueued map[string]struct{}

	// enqueuedBloom short-circuits the common "definitely new" case before
	// the map lookup.
	enqueuedBloom *bloom.BloomFilter

	// visited holds URLs a worker has claimed. Claimed URLs are never
	// re-added to pending.
	visited map[string]struct{}
}

// New creates a Frontier anchored to baseOrigin and enqueues the origin
// itself as the first pending URL. baseOrigin must already be a valid
// origin from urlkit.ToBaseOrigin.
func New(baseOrigin string) *Frontier {
	f := &Frontier{
		baseOrigin:    baseOrigin,
		pending:       make([]string, 0, 64),
		enqueued:      make(map[string]struct{}),
		enqueuedBloom: bloom.NewWithEstimates(bloomExpectedElements, bloomFalsePositiveRate),
		visited:       make(map[string]struct{}),
	}
	f.Enqueue(baseOrigin)
	return f
}

// SeedPaths enqueues the given relative paths ahead of organic discovery.
// This is the fast-mode seeding: likely contact pages jump the queue so a
// small page budget still reaches them.
func (f *Frontier) SeedPaths(paths []string) {
	for _, p := range paths {
		if !strings.HasPrefix(p, "/") {
			p = "/" + p
		}
		// Relative paths resolve against the base origin inside Enqueue.
		f.Enqueue(p)
	}
}

// Enqueue normalizes rawLink against the base origin and appends it to the
// pending sequence. Links that fail normalization, point off-domain, were
// already visited, or were already enqueued are dropped silently - a bad
// link is never a crawl error.
func (f *Frontier) Enqueue(rawLink string) {
	normalized, err := urlkit.Normalize(rawLink, f.baseOrigin)
	if err != nil {
		return
	}
	if !urlkit.SameHost(normalized, f.baseOrigin) {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.visited[normalized]; ok {
		return
	}
	// Bloom miss means definitely never enqueued; a hit still has to be
	// confirmed against the exact set.
	if f.enqueuedBloom.TestString(normalized) {
		if _, ok := f.enqueued[normalized]; ok {
			return
		}
	}

	f.enqueued[normalized] = struct{}{}
	f.enqueuedBloom.AddString(normalized)
	f.pending = append(f.pending, normalized)
}

// Next returns the next pending URL that has not been visited and advances
// the cursor past it. It returns false when the frontier is exhausted.
// Next does not mark the URL visited; the worker does that explicitly
// before fetching (mark-then-fetch).
func (f *Frontier) Next() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for f.cursor < len(f.pending) {
		candidate := f.pending[f.cursor]
		f.cursor++
		if _, ok := f.visited[candidate]; ok {
			continue
		}
		return candidate, true
	}
	return "", false
}

// MarkVisited records that a worker has claimed url. Called immediately
// upon claiming, before the fetch begins, so the URL can never be
// processed twice or re-enqueued.
func (f *Frontier) MarkVisited(url string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visited[url] = struct{}{}
}

// VisitedCount returns the number of URLs claimed so far.
func (f *Frontier) VisitedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.visited)
}

// PendingCount returns the number of URLs still awaiting a worker.
func (f *Frontier) PendingCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending) - f.cursor
}

// BaseOrigin returns the crawl's domain anchor.
func (f *Frontier) BaseOrigin() string {
	return f.baseOrigin
}
