package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// TestFetch tests the happy path and every rejection class.
func TestFetch(t *testing.T) {
	t.Parallel()

	t.Run("returns HTML body", func(t *testing.T) {
		t.Parallel()

		const page = "<html><body>hello</body></html>"
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			fmt.Fprint(w, page)
		}))
		defer srv.Close()

		body, err := New(Options{}).Fetch(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("Fetch() returned error: %v", err)
		}
		if body != page {
			t.Errorf("Fetch() = %q, want %q", body, page)
		}
	})

	t.Run("sends the configured user agent", func(t *testing.T) {
		t.Parallel()

		var gotUA string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			w.Header().Set("Content-Type", "text/html")
			fmt.Fprint(w, "<html></html>")
		}))
		defer srv.Close()

		f := New(Options{UserAgent: "mailsift-test/1.0"})
		if _, err := f.Fetch(context.Background(), srv.URL); err != nil {
			t.Fatalf("Fetch() returned error: %v", err)
		}
		if gotUA != "mailsift-test/1.0" {
			t.Errorf("User-Agent = %q, want mailsift-test/1.0", gotUA)
		}
	})

	t.Run("rejects error statuses", func(t *testing.T) {
		t.Parallel()

		for _, status := range []int{404, 500, 403} {
			status := status
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(status)
			}))

			_, err := New(Options{}).Fetch(context.Background(), srv.URL)
			if !errors.Is(err, ErrBadStatus) {
				t.Errorf("status %d: Fetch() error = %v, want ErrBadStatus", status, err)
			}
			srv.Close()
		}
	})

	t.Run("rejects non-HTML content types", func(t *testing.T) {
		t.Parallel()

		for _, ct := range []string{"application/pdf", "image/png", "application/json"} {
			ct := ct
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", ct)
				fmt.Fprint(w, "not html")
			}))

			_, err := New(Options{}).Fetch(context.Background(), srv.URL)
			if !errors.Is(err, ErrNotHTML) {
				t.Errorf("content type %q: Fetch() error = %v, want ErrNotHTML", ct, err)
			}
			srv.Close()
		}
	})

	t.Run("missing content type passes through", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			// Suppress Go's content sniffing so no header is sent.
			w.Header()["Content-Type"] = nil
			fmt.Fprint(w, "<html><body>bare</body></html>")
		}))
		defer srv.Close()

		if _, err := New(Options{}).Fetch(context.Background(), srv.URL); err != nil {
			t.Errorf("Fetch() without Content-Type returned error: %v", err)
		}
	})

	t.Run("rejects oversized declared bodies", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.Header().Set("Content-Length", "1048576")
			fmt.Fprint(w, strings.Repeat("a", 1048576))
		}))
		defer srv.Close()

		f := New(Options{MaxBodySize: 1024})
		if _, err := f.Fetch(context.Background(), srv.URL); !errors.Is(err, ErrTooLarge) {
			t.Errorf("Fetch() error = %v, want ErrTooLarge", err)
		}
	})

	t.Run("truncates undeclared bodies at the cap", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			flusher := w.(http.Flusher)
			// Stream so no Content-Length is declared.
			for i := 0; i < 64; i++ {
				fmt.Fprint(w, strings.Repeat("b", 64))
				flusher.Flush()
			}
		}))
		defer srv.Close()

		f := New(Options{MaxBodySize: 256})
		body, err := f.Fetch(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("Fetch() returned error: %v", err)
		}
		if len(body) != 256 {
			t.Errorf("len(body) = %d, want 256 (truncated at cap)", len(body))
		}
	})

	t.Run("bounds redirect chains", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		srv := httptest.NewServer(mux)
		defer srv.Close()

		mux.HandleFunc("/hop/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, r.URL.Path+"x", http.StatusFound)
		})

		f := New(Options{MaxRedirects: 3})
		if _, err := f.Fetch(context.Background(), srv.URL+"/hop/"); err == nil {
			t.Error("Fetch() through an endless redirect chain succeeded, want error")
		}
	})

	t.Run("follows redirects within the bound", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		srv := httptest.NewServer(mux)
		defer srv.Close()

		mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/end", http.StatusMovedPermanently)
		})
		mux.HandleFunc("/end", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			fmt.Fprint(w, "<html>arrived</html>")
		})

		body, err := New(Options{}).Fetch(context.Background(), srv.URL+"/start")
		if err != nil {
			t.Fatalf("Fetch() returned error: %v", err)
		}
		if !strings.Contains(body, "arrived") {
			t.Errorf("Fetch() = %q, want redirect target content", body)
		}
	})

	t.Run("transport errors surface as errors", func(t *testing.T) {
		t.Parallel()

		// A closed server guarantees a connection failure.
		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		url := srv.URL
		srv.Close()

		if _, err := New(Options{Timeout: 2 * time.Second}).Fetch(context.Background(), url); err == nil {
			t.Error("Fetch() against a closed server succeeded, want error")
		}
	})

	t.Run("decodes declared non-utf8 charset", func(t *testing.T) {
		t.Parallel()

		// "café" in ISO-8859-1: the é is byte 0xE9.
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
			w.Write([]byte("<html><body>caf\xe9</body></html>"))
		}))
		defer srv.Close()

		body, err := New(Options{}).Fetch(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("Fetch() returned error: %v", err)
		}
		if !strings.Contains(body, "café") {
			t.Errorf("Fetch() = %q, want decoded UTF-8 content", body)
		}
	})
}
