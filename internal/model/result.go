package model

import "time"

// Result is the outcome of one crawl run. Everything in it is a copy:
// the crawl's internal state (frontier, email set) is discarded when the
// run ends, and nothing persists between runs.
type Result struct {
	// BaseOrigin is the resolved domain anchor the crawl was scoped to.
	BaseOrigin string `json:"base_origin"`

	// PagesScanned is the number of pages claimed by workers. Never
	// exceeds the page budget.
	PagesScanned int `json:"pages_scanned"`

	// Emails are the validated addresses in the order they were first
	// seen. The set is deduplicated by exact string; casing is preserved.
	Emails []string `json:"emails"`

	// MaxPages, MaxEmails, and Concurrency are the budgets actually
	// applied after clamping, so callers can see what their request
	// became.
	MaxPages    int `json:"max_pages"`
	MaxEmails   int `json:"max_emails"`
	Concurrency int `json:"concurrency"`

	// Fast reports whether contact-path seeding was enabled.
	Fast bool `json:"fast"`

	// Elapsed is the wall-clock duration of the crawl.
	Elapsed time.Duration `json:"elapsed_ns"`
}

// EmailCount returns the number of validated addresses found.
func (r *Result) EmailCount() int {
	return len(r.Emails)
}
