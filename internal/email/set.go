package email

import "sync"

// Set is the deduplicated collection of validated addresses for one crawl.
// Workers on any goroutine feed it candidates; duplicates collapse
// silently. The set is torn down with the crawl, never persisted.
//
// Addresses are keyed by their exact validated string. Different casings
// of the same mailbox are stored separately: local parts are technically
// case-sensitive, and collapsing them would be a product decision, not a
// correctness fix.
type Set struct {
	mu    sync.Mutex
	seen  map[string]struct{}
	order []string
}

// NewSet creates an empty Set.
func NewSet() *Set {
	return &Set{seen: make(map[string]struct{})}
}

// Add cleans candidate and, on success, inserts the canonical address.
// It reports whether the address was newly added; rejected candidates and
// duplicates both return false. Rejections are not errors for the caller,
// they are simply not counted.
func (s *Set) Add(candidate string) bool {
	addr, err := Clean(candidate)
	if err != nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.seen[addr]; ok {
		return false
	}
	s.seen[addr] = struct{}{}
	s.order = append(s.order, addr)
	return true
}

// Len returns the number of validated addresses collected so far.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}

// Addresses returns the validated addresses in insertion order.
// The returned slice is a copy; callers may keep it after the crawl's
// state is discarded.
func (s *Set) Addresses() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
