package scraper

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/aluiziolira/go-catalog-insights/config"
)

// CollyProvider is the HTTP page source. It fetches pages with a
// synchronous colly collector, one navigation at a time.
type CollyProvider struct {
	cfg       *config.Config
	collector *colly.Collector

	current *pageDocument
	navErr  error
}

// NewCollyProvider builds an HTTP provider configured from cfg.
func NewCollyProvider(cfg *config.Config) (*CollyProvider, error) {
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("base url must include a host")
	}

	collector := colly.NewCollector(
		colly.AllowedDomains(parsed.Host),
		colly.UserAgent(cfg.UserAgent),
	)
	collector.AllowURLRevisit = true
	collector.SetRequestTimeout(cfg.Timeout)
	collector.WithTransport(&http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.Timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	})

	p := &CollyProvider{
		cfg:       cfg,
		collector: collector,
	}

	collector.OnResponse(func(r *colly.Response) {
		doc, err := newPageDocument(bytes.NewReader(r.Body), r.Request.URL.String())
		if err != nil {
			p.navErr = err
			return
		}
		p.current = doc
	})

	collector.OnError(func(r *colly.Response, err error) {
		statusCode := 0
		if r != nil {
			statusCode = r.StatusCode
		}
		p.navErr = classifyError(err, statusCode)
	})

	return p, nil
}

// WithTransport swaps the collector's transport; used by tests.
func (p *CollyProvider) WithTransport(rt http.RoundTripper) {
	p.collector.WithTransport(rt)
}

// Navigate fetches pageURL and blocks until the response is parsed.
func (p *CollyProvider) Navigate(ctx context.Context, pageURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.current = nil
	p.navErr = nil

	err := p.collector.Visit(pageURL)
	p.collector.Wait()

	// OnError sees the response status code, so its classification is
	// more precise than the bare error Visit returns.
	if p.navErr != nil {
		return p.navErr
	}
	if err != nil {
		return classifyError(err, 0)
	}
	if p.current == nil {
		return fmt.Errorf("no response received for %s", pageURL)
	}
	return nil
}

// Items returns the current page's catalog items in document order.
func (p *CollyProvider) Items(selector string) []ItemElement {
	if p.current == nil {
		return nil
	}
	return p.current.items(selector)
}

// NextURL reports the current page's next-page link target.
func (p *CollyProvider) NextURL(selector string) (string, bool) {
	if p.current == nil {
		return "", false
	}
	return p.current.nextURL(selector)
}

// Close releases the provider. The HTTP collector holds no session
// state beyond its transport, so this is a no-op.
func (p *CollyProvider) Close() error {
	return nil
}
