package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values. The crawl budgets mirror what a polite
// single-site harvest needs; the fetch limits bound per-page work and
// memory on constrained hosts.
const (
	// DefaultMaxPages is the page-visit budget per crawl. 30 pages is
	// enough to reach a contact page on almost any small business site
	// without hammering larger ones.
	DefaultMaxPages = 30

	// MinMaxPages and MaxMaxPages bound the page budget. Values outside
	// the range are clamped, not rejected.
	MinMaxPages = 1
	MaxMaxPages = 500

	// DefaultMaxEmails is the email-count budget that stops the crawl.
	// Most callers want one or two contact addresses, not a full dump.
	DefaultMaxEmails = 2

	// MinMaxEmails and MaxMaxEmails bound the email budget.
	MinMaxEmails = 1
	MaxMaxEmails = 50

	// DefaultConcurrency is the worker count. Four concurrent fetches
	// keeps a small site responsive while still overlapping latency.
	DefaultConcurrency = 4

	// MinConcurrency and MaxConcurrency bound the worker count.
	MinConcurrency = 1
	MaxConcurrency = 20

	// DefaultFetchTimeout bounds a single page fetch. It is generous
	// enough for slow shared hosting; a page that takes longer is dropped,
	// never retried.
	DefaultFetchTimeout = 12 * time.Second

	// DefaultMaxRedirects bounds redirect chains per fetch.
	DefaultMaxRedirects = 5

	// DefaultMaxBodySize is the declared-content-length cap. Pages larger
	// than 2.5MB are skipped; the same cap limits how much of an
	// undeclared body is read.
	DefaultMaxBodySize = int64(2.5 * 1024 * 1024)

	// DefaultUserAgent identifies mailsift in HTTP requests. A descriptive
	// User-Agent lets site operators recognize harvester traffic.
	DefaultUserAgent = "mailsift/1.0 (+https://github.com/mailsift/mailsift)"

	// MinPolitenessDelay and MaxPolitenessDelay bound the randomized
	// pause a worker takes between successive requests.
	MinPolitenessDelay = 120 * time.Millisecond
	MaxPolitenessDelay = 240 * time.Millisecond

	// DefaultRequestsPerSecond caps the whole pool's request rate on top
	// of the per-worker jitter, so raising concurrency never turns the
	// harvester into a load test.
	DefaultRequestsPerSecond = 8

	// AppName is the application name used for XDG directory paths.
	AppName = "mailsift"
)

// DefaultFastSeeds are the well-known high-signal paths seeded ahead of
// organic link discovery in fast mode. Contact pages are where the target
// data lives; seeding them trades crawl completeness for speed.
//
// The list is a heuristic table, kept as data so a config file can
// replace it without code changes.
var DefaultFastSeeds = []string{
	"/contact",
	"/contact-us",
	"/about",
	"/about-us",
	"/support",
	"/help",
	"/privacy",
	"/terms",
	"/impressum",
}

// Budgets are the per-crawl limits, fixed at crawl start.
//
// Design decision: Budgets is a separate value type rather than fields on
// Config because the webapi shell builds one per request while the CLI
// builds one per invocation; both clamp through the same code path.
type Budgets struct {
	// MaxPages is the number of pages that may be visited.
	MaxPages int

	// MaxEmails is the number of validated emails that stops the crawl.
	MaxEmails int

	// Concurrency is the worker count.
	Concurrency int

	// Fast seeds well-known contact paths ahead of organic discovery.
	Fast bool
}

// DefaultBudgets returns the budgets applied when a caller specifies
// nothing.
func DefaultBudgets() Budgets {
	return Budgets{
		MaxPages:    DefaultMaxPages,
		MaxEmails:   DefaultMaxEmails,
		Concurrency: DefaultConcurrency,
		Fast:        true,
	}
}

// Clamp forces every budget into its safe range. Zero values (an unset
// option) become the defaults. Out-of-range values are clamped rather
// than rejected so sloppy callers still get a bounded crawl.
func (b Budgets) Clamp() Budgets {
	if b.MaxPages == 0 {
		b.MaxPages = DefaultMaxPages
	}
	if b.MaxEmails == 0 {
		b.MaxEmails = DefaultMaxEmails
	}
	if b.Concurrency == 0 {
		b.Concurrency = DefaultConcurrency
	}

	b.MaxPages = clampInt(b.MaxPages, MinMaxPages, MaxMaxPages)
	b.MaxEmails = clampInt(b.MaxEmails, MinMaxEmails, MaxMaxEmails)
	b.Concurrency = clampInt(b.Concurrency, MinConcurrency, MaxConcurrency)
	return b
}

// clampInt forces v into [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Config holds all configuration options for mailsift.
// It is populated from CLI flags or API requests and passed through the
// application via dependency injection rather than global state.
type Config struct {
	// Budgets are the per-crawl limits (pages, emails, workers, fast mode).
	Budgets Budgets

	// FetchTimeout bounds each page fetch, including redirects.
	FetchTimeout time.Duration

	// MaxRedirects bounds the redirect chain per fetch.
	MaxRedirects int

	// MaxBodySize is the response size cap in bytes.
	MaxBodySize int64

	// UserAgent is the User-Agent header sent with every request.
	UserAgent string

	// RequestsPerSecond caps the worker pool's aggregate request rate.
	RequestsPerSecond float64

	// FastSeeds are the relative paths seeded in fast mode.
	FastSeeds []string

	// Verbose enables slog.LevelDebug output. When false, only warnings
	// and errors are logged.
	Verbose bool

	// JSONReport and MarkdownReport select the CLI output format.
	// Mutually exclusive; the default is the human-readable report.
	JSONReport     bool
	MarkdownReport bool

	// ReportFile is the output file path for the report. When empty, the
	// report goes to stdout.
	ReportFile string

	// ConfigFilePath is an explicit seed-file path. When empty, the
	// standard search locations are tried.
	ConfigFilePath string

	// ListenAddr is the bind address for the serve command.
	ListenAddr string
}

// NewConfig creates a Config with default values.
//
// Design decision: We use a constructor instead of relying on zero values
// because most defaults are non-zero; the constructor also documents what
// the defaults are.
func NewConfig() *Config {
	return &Config{
		Budgets:           DefaultBudgets(),
		FetchTimeout:      DefaultFetchTimeout,
		MaxRedirects:      DefaultMaxRedirects,
		MaxBodySize:       DefaultMaxBodySize,
		UserAgent:         DefaultUserAgent,
		RequestsPerSecond: DefaultRequestsPerSecond,
		FastSeeds:         DefaultFastSeeds,
		ListenAddr:        ":8080",
	}
}

// Validate checks the non-clamped parts of the configuration.
// Budgets never fail validation (they clamp); only settings a typo could
// render unusable are checked here.
func (c *Config) Validate() error {
	if c.FetchTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.MaxRedirects < 0 {
		return ErrInvalidRedirects
	}
	if c.MaxBodySize <= 0 {
		return ErrInvalidMaxBodySize
	}
	if c.RequestsPerSecond <= 0 {
		return ErrInvalidRate
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}

// XDGConfigDir returns the XDG config directory for mailsift.
// On Linux: ~/.config/mailsift
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}
