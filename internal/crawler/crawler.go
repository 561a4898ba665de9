package crawler

import (
	"context"
	"log/slog"
	"math/rand"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/mailsift/mailsift/internal/config"
	"github.com/mailsift/mailsift/internal/email"
	"github.com/mailsift/mailsift/internal/fetcher"
	"github.com/mailsift/mailsift/internal/frontier"
	"github.com/mailsift/mailsift/internal/model"
	"github.com/mailsift/mailsift/internal/parser"
	"github.com/mailsift/mailsift/internal/urlkit"
)

// Crawler runs budget-bounded, single-site email harvests. One Crawler
// can serve many Harvest calls; per-run state (frontier, email set,
// counters) is created inside Harvest and discarded with it.
type Crawler struct {
	cfg    *config.Config
	fetch  *fetcher.Fetcher
	logger *slog.Logger
}

// Option configures a Crawler.
type Option func(*Crawler)

// WithLogger sets a custom logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Crawler) {
		c.logger = logger
	}
}

// New creates a Crawler from cfg.
func New(cfg *config.Config, opts ...Option) *Crawler {
	c := &Crawler{
		cfg: cfg,
		fetch: fetcher.New(fetcher.Options{
			Timeout:      cfg.FetchTimeout,
			MaxRedirects: cfg.MaxRedirects,
			MaxBodySize:  cfg.MaxBodySize,
			UserAgent:    cfg.UserAgent,
		}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// run is the per-harvest state shared by the workers.
type run struct {
	frontier *frontier.Frontier
	emails   *email.Set
	budgets  config.Budgets

	// claimed counts page reservations. Workers reserve before fetching;
	// a reservation past MaxPages is handed back and the worker stops.
	claimed atomic.Int64

	limiter *rate.Limiter
}

// stopped is the global stop condition: either budget exhausted. It is
// polled before each claim.
func (r *run) stopped() bool {
	return r.emailBudgetReached() ||
		int(r.claimed.Load()) >= r.budgets.MaxPages
}

// emailBudgetReached is the mid-parse stop condition, polled between
// extraction phases. The page budget is excluded here: the worker has
// already reserved its page slot by the time it parses, so consulting
// the claim count mid-parse would skip extraction on the last page
// inside the budget.
func (r *run) emailBudgetReached() bool {
	return r.emails.Len() >= r.budgets.MaxEmails
}

// Harvest crawls the site at inputURL and returns the collected result.
//
// The only fatal failure is construction: an input that cannot be
// resolved to a valid http(s) origin returns an error before any request
// is made. Every later failure (per page, per link, per candidate)
// degrades silently into a smaller result set.
func (c *Crawler) Harvest(ctx context.Context, inputURL string, budgets config.Budgets) (*model.Result, error) {
	baseOrigin, err := urlkit.ToBaseOrigin(inputURL)
	if err != nil {
		return nil, err
	}
	budgets = budgets.Clamp()

	r := &run{
		frontier: frontier.New(baseOrigin),
		emails:   email.NewSet(),
		budgets:  budgets,
		limiter:  rate.NewLimiter(rate.Limit(c.cfg.RequestsPerSecond), budgets.Concurrency),
	}
	if budgets.Fast {
		r.frontier.SeedPaths(c.cfg.FastSeeds)
	}

	c.logger.Info("starting crawl",
		"origin", baseOrigin,
		"maxPages", budgets.MaxPages,
		"maxEmails", budgets.MaxEmails,
		"concurrency", budgets.Concurrency,
		"fast", budgets.Fast,
	)

	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < budgets.Concurrency; i++ {
		g.Go(func() error {
			c.worker(ctx, r)
			return nil
		})
	}
	// Workers never return errors; Wait only propagates ctx cancellation
	// from a parent, which still yields a partial result below.
	_ = g.Wait() //nolint:errcheck

	// Concurrent adds can land a few addresses past the budget while the
	// stop condition propagates; the report itself never exceeds it.
	emails := r.emails.Addresses()
	if len(emails) > budgets.MaxEmails {
		emails = emails[:budgets.MaxEmails]
	}

	result := &model.Result{
		BaseOrigin:   baseOrigin,
		PagesScanned: int(r.claimed.Load()),
		Emails:       emails,
		MaxPages:     budgets.MaxPages,
		MaxEmails:    budgets.MaxEmails,
		Concurrency:  budgets.Concurrency,
		Fast:         budgets.Fast,
		Elapsed:      time.Since(start),
	}

	c.logger.Info("crawl finished",
		"origin", baseOrigin,
		"pagesScanned", result.PagesScanned,
		"emailsFound", len(result.Emails),
		"elapsed", result.Elapsed,
	)

	return result, nil
}

// worker is one member of the pool. It loops until the stop condition
// holds, the frontier is exhausted, or the context is cancelled.
func (c *Crawler) worker(ctx context.Context, r *run) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if r.stopped() {
			return
		}

		url, ok := r.frontier.Next()
		if !ok {
			return
		}

		// Reserve a page slot before fetching. If the reservation lands
		// past the budget another worker took the last slot; the slot is
		// handed back and the dequeued URL stays unvisited, which is safe
		// only because an exhausted page budget ends the whole crawl.
		if r.claimed.Add(1) > int64(r.budgets.MaxPages) {
			r.claimed.Add(-1)
			return
		}

		// Mark-then-fetch: the URL is burned the moment it is claimed,
		// whether or not the fetch succeeds.
		r.frontier.MarkVisited(url)

		if err := r.limiter.Wait(ctx); err != nil {
			return
		}

		c.processPage(ctx, r, url)

		if !c.politenessSleep(ctx) {
			return
		}
	}
}

// processPage fetches and parses one URL, feeding results into the run.
// A page that yields no content is simply dropped.
func (c *Crawler) processPage(ctx context.Context, r *run, url string) {
	body, err := c.fetch.Fetch(ctx, url)
	if err != nil {
		c.logger.Debug("page yielded no content", "url", url, "reason", err)
		return
	}

	page := parser.Parse(body, r.emailBudgetReached)

	for _, candidate := range page.Candidates {
		if r.emails.Len() >= r.budgets.MaxEmails {
			break
		}
		r.emails.Add(candidate)
	}

	for _, link := range page.Links {
		r.frontier.Enqueue(link)
	}

	c.logger.Debug("page processed",
		"url", url,
		"title", page.Title,
		"candidates", len(page.Candidates),
		"links", len(page.Links),
	)
}

// politenessSleep pauses the worker for a randomized interval between
// requests. Returns false when the context is cancelled mid-sleep.
func (c *Crawler) politenessSleep(ctx context.Context) bool {
	span := config.MaxPolitenessDelay - config.MinPolitenessDelay
	delay := config.MinPolitenessDelay + time.Duration(rand.Int63n(int64(span)))

	select {
	case <-ctx.Done():
		return false
	case <-time.After(delay):
		return true
	}
}
