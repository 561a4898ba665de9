package urlkit

import (
	"errors"
	"testing"
)

// TestToBaseOrigin tests derivation of the crawl's domain anchor.
func TestToBaseOrigin(t *testing.T) {
	t.Parallel()

	t.Run("valid inputs", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name  string
			input string
			want  string
		}{
			{"plain https URL", "https://example.com", "https://example.com/"},
			{"plain http URL", "http://example.com", "http://example.com/"},
			{"scheme assumed", "example.com", "https://example.com/"},
			{"path stripped", "https://example.com/some/deep/page", "https://example.com/"},
			{"port preserved", "http://example.com:8080/page", "http://example.com:8080/"},
			{"host lowercased", "https://EXAMPLE.Com/About", "https://example.com/"},
			{"surrounding whitespace", "  example.com  ", "https://example.com/"},
			{"query dropped", "https://example.com/?utm=1", "https://example.com/"},
		}

		for _, tt := range tests {
			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				got, err := ToBaseOrigin(tt.input)
				if err != nil {
					t.Fatalf("ToBaseOrigin(%q) returned error: %v", tt.input, err)
				}
				if got != tt.want {
					t.Errorf("ToBaseOrigin(%q) = %q, want %q", tt.input, got, tt.want)
				}
			})
		}
	})

	t.Run("invalid inputs", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name  string
			input string
			want  error
		}{
			{"empty", "", ErrInvalidURL},
			{"whitespace only", "   ", ErrInvalidURL},
			{"ftp scheme", "ftp://example.com", ErrUnsupportedScheme},
			{"javascript scheme", "javascript://alert(1)", ErrUnsupportedScheme},
			{"no host", "https://", ErrInvalidURL},
		}

		for _, tt := range tests {
			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				_, err := ToBaseOrigin(tt.input)
				if !errors.Is(err, tt.want) {
					t.Errorf("ToBaseOrigin(%q) error = %v, want %v", tt.input, err, tt.want)
				}
			})
		}
	})

	t.Run("never returns non-http scheme", func(t *testing.T) {
		t.Parallel()

		inputs := []string{
			"example.com", "http://example.com", "HTTPS://EXAMPLE.COM",
			"mailto:someone@example.com", "file:///etc/passwd", "gopher://old.example",
		}
		for _, input := range inputs {
			input := input
			origin, err := ToBaseOrigin(input)
			if err != nil {
				continue
			}
			if origin[:7] != "http://" && origin[:8] != "https://" {
				t.Errorf("ToBaseOrigin(%q) = %q: not an http(s) origin", input, origin)
			}
		}
	})
}

// TestNormalize tests canonicalization of discovered links.
func TestNormalize(t *testing.T) {
	t.Parallel()

	const base = "https://example.com/"

	t.Run("canonical forms", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			raw  string
			want string
		}{
			{"relative path", "/contact", "https://example.com/contact"},
			{"relative without slash", "contact", "https://example.com/contact"},
			{"fragment stripped", "https://example.com/about#team", "https://example.com/about"},
			{"fragment only", "#top", "https://example.com/"},
			{"host lowercased", "https://EXAMPLE.com/About", "https://example.com/About"},
			{"default https port stripped", "https://example.com:443/x", "https://example.com/x"},
			{"default http port stripped", "http://example.com:80/x", "http://example.com/x"},
			{"non-default port kept", "https://example.com:8443/x", "https://example.com:8443/x"},
			{"trailing slash stripped", "https://example.com/about/", "https://example.com/about"},
			{"root slash kept", "https://example.com/", "https://example.com/"},
			{"empty path becomes root", "https://example.com", "https://example.com/"},
			{"query preserved", "/page?id=2", "https://example.com/page?id=2"},
		}

		for _, tt := range tests {
			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				got, err := Normalize(tt.raw, base)
				if err != nil {
					t.Fatalf("Normalize(%q) returned error: %v", tt.raw, err)
				}
				if got != tt.want {
					t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
				}
			})
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()

		inputs := []string{
			"/contact/",
			"https://Example.COM:443/about#x",
			"page?q=1",
			"https://example.com",
		}
		for _, raw := range inputs {
			raw := raw
			once, err := Normalize(raw, base)
			if err != nil {
				t.Fatalf("Normalize(%q) returned error: %v", raw, err)
			}
			twice, err := Normalize(once, base)
			if err != nil {
				t.Fatalf("Normalize(%q) second pass returned error: %v", once, err)
			}
			if once != twice {
				t.Errorf("Normalize not idempotent for %q: first %q, second %q", raw, once, twice)
			}
		}
	})

	t.Run("rejects unusable links", func(t *testing.T) {
		t.Parallel()

		inputs := []string{"", "   ", "://nope", "mailto:a@b.com", "tel:+123456"}
		for _, raw := range inputs {
			raw := raw
			if _, err := Normalize(raw, base); err == nil {
				t.Errorf("Normalize(%q) succeeded, want error", raw)
			}
		}
	})
}

// TestSameHost tests domain-membership checks.
func TestSameHost(t *testing.T) {
	t.Parallel()

	const origin = "https://example.com/"

	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"same host", "https://example.com/page", true},
		{"same host different scheme", "http://example.com/page", true},
		{"case insensitive", "https://EXAMPLE.COM/page", true},
		{"subdomain is off-domain", "https://blog.example.com/page", false},
		{"different host", "https://other.com/page", false},
		{"unparseable", "://broken", false},
		{"empty host", "/relative/only", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := SameHost(tt.url, origin); got != tt.want {
				t.Errorf("SameHost(%q, %q) = %v, want %v", tt.url, origin, got, tt.want)
			}
		})
	}
}
