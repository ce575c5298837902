// Package scraper drives pagination over a page-source provider and
// turns catalog item elements into normalized records.
package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/aluiziolira/go-catalog-insights/config"
	"github.com/aluiziolira/go-catalog-insights/models"
)

// Crawler walks a paginated catalog one page at a time: navigate,
// extract, follow the next-page link until none remains. Records
// accumulate in page order, then within-page order, and the slice is
// owned by the crawl loop until it is returned.
type Crawler struct {
	cfg      *config.Config
	provider PageProvider
	Metrics  *Metrics

	visited *lru.Cache[string, struct{}]
}

// NewCrawler builds a crawler over the given page provider.
func NewCrawler(cfg *config.Config, provider PageProvider, metrics *Metrics) (*Crawler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// The visited set guards against next-link cycles on malformed
	// sites. Sized at MaxPages since the crawl never outlives it.
	visited, err := lru.New[string, struct{}](cfg.MaxPages)
	if err != nil {
		return nil, fmt.Errorf("create visited set: %w", err)
	}

	return &Crawler{
		cfg:      cfg,
		provider: provider,
		Metrics:  metrics,
		visited:  visited,
	}, nil
}

// Crawl visits pages starting at the configured base URL until the last
// page reports no next link, the page cap is reached, or a next link
// points back at a visited page. A navigation failure is fatal for the
// run and returns no records.
func (c *Crawler) Crawl(ctx context.Context) (*models.CrawlResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()
	records := make([]*models.Record, 0)
	pageURL := c.cfg.BaseURL
	pages := 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		navStart := time.Now()
		if err := c.provider.Navigate(ctx, pageURL); err != nil {
			c.Metrics.IncNavError(errorTypeLabel(err))
			return nil, fmt.Errorf("navigate %s: %w", pageURL, err)
		}
		c.Metrics.ObserveNavigation(time.Since(navStart))

		pages++
		c.visited.Add(pageURL, struct{}{})
		c.Metrics.IncPages()

		pageRecords := ExtractRecords(c.provider.Items(c.cfg.ItemSelector), c.Metrics)
		records = append(records, pageRecords...)

		slog.Info("page extracted",
			slog.String("url", pageURL),
			slog.Int("page", pages),
			slog.Int("items", len(pageRecords)),
		)

		next, ok := c.provider.NextURL(c.cfg.NextSelector)
		if !ok {
			slog.Debug("last page reached", slog.String("url", pageURL))
			break
		}
		if pages >= c.cfg.MaxPages {
			slog.Warn("page cap reached", slog.Int("max_pages", c.cfg.MaxPages))
			break
		}
		if c.visited.Contains(next) {
			slog.Warn("next link points at a visited page, stopping",
				slog.String("url", next))
			break
		}

		if c.cfg.PageDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.cfg.PageDelay):
			}
		}

		pageURL = next
	}

	return &models.CrawlResult{
		Records:   records,
		StartTime: start,
		EndTime:   time.Now(),
		PageCount: pages,
	}, nil
}
