package scraper

import (
	"context"
	"fmt"
	"strings"

	"github.com/chromedp/chromedp"

	"github.com/aluiziolira/go-catalog-insights/config"
)

// ChromeProvider is the rendered-page source. It drives a headless
// browser session and snapshots the DOM after each navigation, for
// catalogs that only render their listings client-side.
type ChromeProvider struct {
	cfg *config.Config

	browserCtx context.Context
	cancels    []context.CancelFunc

	current *pageDocument
}

// NewChromeProvider starts a headless browser session configured from cfg.
func NewChromeProvider(ctx context.Context, cfg *config.Config) (*ChromeProvider, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(cfg.UserAgent),
		chromedp.WindowSize(1920, 1080),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(string, ...interface{}) {}),
	)

	return &ChromeProvider{
		cfg:        cfg,
		browserCtx: browserCtx,
		cancels:    []context.CancelFunc{cancelBrowser, cancelAlloc},
	}, nil
}

// Navigate loads pageURL in the browser, blocks until the document is
// ready, and snapshots the rendered DOM. Exceeding the page-load budget
// surfaces as a timeout error.
func (p *ChromeProvider) Navigate(ctx context.Context, pageURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.current = nil

	navCtx, cancel := context.WithTimeout(p.browserCtx, p.cfg.Timeout)
	defer cancel()

	var html, location string
	err := chromedp.Run(navCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body"),
		chromedp.OuterHTML("html", &html),
		chromedp.Location(&location),
	)
	if err != nil {
		return classifyError(err, 0)
	}
	if location == "" {
		location = pageURL
	}

	doc, err := newPageDocument(strings.NewReader(html), location)
	if err != nil {
		return fmt.Errorf("snapshot page: %w", err)
	}
	p.current = doc
	return nil
}

// Items returns the current page's catalog items in document order.
func (p *ChromeProvider) Items(selector string) []ItemElement {
	if p.current == nil {
		return nil
	}
	return p.current.items(selector)
}

// NextURL reports the current page's next-page link target.
func (p *ChromeProvider) NextURL(selector string) (string, bool) {
	if p.current == nil {
		return "", false
	}
	return p.current.nextURL(selector)
}

// Close tears down the browser session.
func (p *ChromeProvider) Close() error {
	for _, cancel := range p.cancels {
		cancel()
	}
	return nil
}
