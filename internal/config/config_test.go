package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestBudgetsClamp tests budget clamping semantics.
func TestBudgetsClamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   Budgets
		want Budgets
	}{
		{
			name: "zero values become defaults",
			in:   Budgets{Fast: true},
			want: Budgets{MaxPages: 30, MaxEmails: 2, Concurrency: 4, Fast: true},
		},
		{
			name: "in-range values pass through",
			in:   Budgets{MaxPages: 100, MaxEmails: 10, Concurrency: 8},
			want: Budgets{MaxPages: 100, MaxEmails: 10, Concurrency: 8},
		},
		{
			name: "oversized values clamp down",
			in:   Budgets{MaxPages: 10000, MaxEmails: 999, Concurrency: 64},
			want: Budgets{MaxPages: 500, MaxEmails: 50, Concurrency: 20},
		},
		{
			name: "negative values clamp up",
			in:   Budgets{MaxPages: -5, MaxEmails: -1, Concurrency: -3},
			want: Budgets{MaxPages: 1, MaxEmails: 1, Concurrency: 1},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.in.Clamp(); got != tt.want {
				t.Errorf("Clamp() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// TestConfigValidate tests validation of non-clamped settings.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	t.Run("defaults are valid", func(t *testing.T) {
		t.Parallel()

		if err := NewConfig().Validate(); err != nil {
			t.Errorf("Validate() on defaults = %v, want nil", err)
		}
	})

	t.Run("detects invalid settings", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name   string
			mutate func(*Config)
			want   error
		}{
			{"zero timeout", func(c *Config) { c.FetchTimeout = 0 }, ErrInvalidTimeout},
			{"negative redirects", func(c *Config) { c.MaxRedirects = -1 }, ErrInvalidRedirects},
			{"zero body size", func(c *Config) { c.MaxBodySize = 0 }, ErrInvalidMaxBodySize},
			{"zero rate", func(c *Config) { c.RequestsPerSecond = 0 }, ErrInvalidRate},
			{"both report formats", func(c *Config) { c.JSONReport = true; c.MarkdownReport = true }, ErrConflictingReportFormats},
		}

		for _, tt := range tests {
			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				cfg := NewConfig()
				tt.mutate(cfg)
				if err := cfg.Validate(); !errors.Is(err, tt.want) {
					t.Errorf("Validate() = %v, want %v", err, tt.want)
				}
			})
		}
	})
}

// TestLoadConfigFile tests the YAML seed-file loader.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("loads overrides", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, DefaultConfigFile)
		content := []byte("fast_seeds:\n  - /kontakt\n  - /imprint\nuser_agent: \"custom/1.0\"\nrequests_per_second: 2\n")
		if err := os.WriteFile(path, content, 0600); err != nil {
			t.Fatal(err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("LoadConfigFile() returned error: %v", err)
		}

		cfg := NewConfig()
		cf.Apply(cfg)

		if len(cfg.FastSeeds) != 2 || cfg.FastSeeds[0] != "/kontakt" {
			t.Errorf("FastSeeds = %v, want [/kontakt /imprint]", cfg.FastSeeds)
		}
		if cfg.UserAgent != "custom/1.0" {
			t.Errorf("UserAgent = %q, want custom/1.0", cfg.UserAgent)
		}
		if cfg.RequestsPerSecond != 2 {
			t.Errorf("RequestsPerSecond = %v, want 2", cfg.RequestsPerSecond)
		}
	})

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("LoadConfigFile() error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("empty file leaves defaults untouched", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, DefaultConfigFile)
		if err := os.WriteFile(path, []byte(""), 0600); err != nil {
			t.Fatal(err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("LoadConfigFile() returned error: %v", err)
		}

		cfg := NewConfig()
		cf.Apply(cfg)
		if len(cfg.FastSeeds) != len(DefaultFastSeeds) {
			t.Errorf("FastSeeds = %v, want defaults", cfg.FastSeeds)
		}
		if cfg.UserAgent != DefaultUserAgent {
			t.Errorf("UserAgent = %q, want default", cfg.UserAgent)
		}
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, DefaultConfigFile)
		if err := os.WriteFile(path, []byte("fast_seeds: [unclosed"), 0600); err != nil {
			t.Fatal(err)
		}

		if _, err := LoadConfigFile(path); err == nil {
			t.Error("LoadConfigFile() on malformed YAML succeeded, want error")
		}
	})
}
