package scraper

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ItemElement is one catalog item's already-fetched element handle. All
// lookups report presence explicitly; a missing sub-element is an
// expected condition, not an error.
type ItemElement interface {
	// Text returns the trimmed text of the first descendant matching
	// the selector.
	Text(selector string) (string, bool)
	// Attr returns an attribute of the first descendant matching the
	// selector.
	Attr(selector, name string) (string, bool)
	// Link returns the href of the first descendant matching the
	// selector, resolved against the page URL.
	Link(selector string) (string, bool)
}

// PageProvider supplies rendered page content and navigation. The
// crawler treats it as an opaque page source and performs no transport
// or browser configuration of its own.
type PageProvider interface {
	// Navigate loads pageURL and blocks until the page is ready.
	// Exceeding the page-load budget is an error.
	Navigate(ctx context.Context, pageURL string) error
	// Items returns the current page's catalog item elements in
	// document order.
	Items(selector string) []ItemElement
	// NextURL reports the absolute target of the current page's
	// next-page link, if one exists.
	NextURL(selector string) (string, bool)
	// Close releases the provider's underlying session.
	Close() error
}

// pageDocument is a parsed page snapshot shared by both providers.
type pageDocument struct {
	doc  *goquery.Document
	base *url.URL
}

func newPageDocument(r io.Reader, pageURL string) (*pageDocument, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse page url: %w", err)
	}
	return &pageDocument{doc: doc, base: base}, nil
}

func (p *pageDocument) items(selector string) []ItemElement {
	var out []ItemElement
	p.doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		out = append(out, &selectionElement{sel: sel, base: p.base})
	})
	return out
}

func (p *pageDocument) nextURL(selector string) (string, bool) {
	href, ok := p.doc.Find(selector).First().Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return "", false
	}
	return resolveURL(p.base, href), true
}

// selectionElement adapts a goquery selection to ItemElement.
type selectionElement struct {
	sel  *goquery.Selection
	base *url.URL
}

func (e *selectionElement) Text(selector string) (string, bool) {
	found := e.sel.Find(selector).First()
	if found.Length() == 0 {
		return "", false
	}
	return strings.TrimSpace(found.Text()), true
}

func (e *selectionElement) Attr(selector, name string) (string, bool) {
	found := e.sel.Find(selector).First()
	if found.Length() == 0 {
		return "", false
	}
	return found.Attr(name)
}

func (e *selectionElement) Link(selector string) (string, bool) {
	href, ok := e.Attr(selector, "href")
	if !ok || strings.TrimSpace(href) == "" {
		return "", false
	}
	return resolveURL(e.base, href), true
}

func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	if base == nil {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}
