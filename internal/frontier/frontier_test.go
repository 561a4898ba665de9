package frontier

import (
	"sync"
	"testing"
)

const origin = "https://example.com/"

// TestEnqueue tests deduplication and domain filtering.
func TestEnqueue(t *testing.T) {
	t.Parallel()

	t.Run("seeds the base origin", func(t *testing.T) {
		t.Parallel()

		f := New(origin)
		url, ok := f.Next()
		if !ok {
			t.Fatal("Next() returned false on a freshly seeded frontier")
		}
		if url != origin {
			t.Errorf("first URL = %q, want %q", url, origin)
		}
	})

	t.Run("drops duplicates", func(t *testing.T) {
		t.Parallel()

		f := New(origin)
		f.Enqueue("/contact")
		f.Enqueue("/contact")
		f.Enqueue("https://example.com/contact")
		f.Enqueue("https://EXAMPLE.com/contact/")
		// Seed + one unique link.
		if got := f.PendingCount(); got != 2 {
			t.Errorf("PendingCount() = %d, want 2", got)
		}
	})

	t.Run("drops off-domain links", func(t *testing.T) {
		t.Parallel()

		f := New(origin)
		f.Enqueue("https://other.com/page")
		f.Enqueue("https://blog.example.com/page")
		if got := f.PendingCount(); got != 1 {
			t.Errorf("PendingCount() = %d, want only the seed", got)
		}
	})

	t.Run("drops unparseable links silently", func(t *testing.T) {
		t.Parallel()

		f := New(origin)
		f.Enqueue("://broken")
		f.Enqueue("")
		if got := f.PendingCount(); got != 1 {
			t.Errorf("PendingCount() = %d, want only the seed", got)
		}
	})

	t.Run("never re-adds a visited URL", func(t *testing.T) {
		t.Parallel()

		f := New(origin)
		url, _ := f.Next()
		f.MarkVisited(url)
		f.Enqueue(origin)
		f.Enqueue("/")
		if _, ok := f.Next(); ok {
			t.Error("Next() returned a URL after the only URL was visited and re-enqueued")
		}
	})
}

// TestNext tests queue ordering and exhaustion.
func TestNext(t *testing.T) {
	t.Parallel()

	t.Run("preserves discovery order", func(t *testing.T) {
		t.Parallel()

		f := New(origin)
		f.Enqueue("/b")
		f.Enqueue("/a")
		f.Enqueue("/c")

		want := []string{
			origin,
			"https://example.com/b",
			"https://example.com/a",
			"https://example.com/c",
		}
		for i, w := range want {
			got, ok := f.Next()
			if !ok {
				t.Fatalf("Next() exhausted at index %d", i)
			}
			if got != w {
				t.Errorf("Next() #%d = %q, want %q", i, got, w)
			}
		}
		if _, ok := f.Next(); ok {
			t.Error("Next() returned a URL past the end of the queue")
		}
	})

	t.Run("skips URLs visited while pending", func(t *testing.T) {
		t.Parallel()

		f := New(origin)
		f.Enqueue("/a")
		f.Enqueue("/b")

		first, _ := f.Next()
		f.MarkVisited(first)
		f.MarkVisited("https://example.com/a")

		got, ok := f.Next()
		if !ok || got != "https://example.com/b" {
			t.Errorf("Next() = %q, %v; want /b", got, ok)
		}
	})

	t.Run("each URL is claimed exactly once under concurrency", func(t *testing.T) {
		t.Parallel()

		f := New(origin)
		for _, p := range []string{"/a", "/b", "/c", "/d", "/e", "/f", "/g"} {
			p := p
			f.Enqueue(p)
		}

		var mu sync.Mutex
		claimed := make(map[string]int)

		var wg sync.WaitGroup
		for g := 0; g < 8; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for {
					url, ok := f.Next()
					if !ok {
						return
					}
					f.MarkVisited(url)
					mu.Lock()
					claimed[url]++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		if len(claimed) != 8 { // seed + 7 paths
			t.Errorf("claimed %d distinct URLs, want 8", len(claimed))
		}
		for url, n := range claimed {
			if n != 1 {
				t.Errorf("URL %q claimed %d times, want 1", url, n)
			}
		}
	})
}

// TestSeedPaths tests fast-mode seeding.
func TestSeedPaths(t *testing.T) {
	t.Parallel()

	f := New(origin)
	f.SeedPaths([]string{"/contact", "about", "/contact"})

	want := []string{
		origin,
		"https://example.com/contact",
		"https://example.com/about",
	}
	for i, w := range want {
		got, ok := f.Next()
		if !ok {
			t.Fatalf("Next() exhausted at index %d", i)
		}
		if got != w {
			t.Errorf("Next() #%d = %q, want %q", i, got, w)
		}
	}
}

// TestVisitedCount tests the claim counter.
func TestVisitedCount(t *testing.T) {
	t.Parallel()

	f := New(origin)
	f.Enqueue("/a")
	if f.VisitedCount() != 0 {
		t.Errorf("VisitedCount() = %d before any claims, want 0", f.VisitedCount())
	}
	url, _ := f.Next()
	f.MarkVisited(url)
	if f.VisitedCount() != 1 {
		t.Errorf("VisitedCount() = %d, want 1", f.VisitedCount())
	}
}
