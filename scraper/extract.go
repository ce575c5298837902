package scraper

import (
	"strings"
	"time"

	"github.com/aluiziolira/go-catalog-insights/models"
	"github.com/aluiziolira/go-catalog-insights/parser"
)

// Sub-element selectors for the catalog item layout.
const (
	titleSelector        = "h3 a"
	priceSelector        = "p.price_color"
	availabilitySelector = "p.instock.availability"
	availabilityFallback = "p.availability"
	starsSelector        = "p.star-rating"
)

// ExtractRecords produces one record per item element, preserving
// element order. Each field is extracted independently: a missing
// sub-element or unparseable value nulls that field only and never
// aborts the record. No navigation or I/O happens here.
func ExtractRecords(items []ItemElement, metrics *Metrics) []*models.Record {
	records := make([]*models.Record, 0, len(items))
	for _, item := range items {
		records = append(records, extractRecord(item, metrics))
		metrics.IncItems()
	}
	return records
}

func extractRecord(item ItemElement, metrics *Metrics) *models.Record {
	rec := &models.Record{ScrapedAt: time.Now()}

	if title, ok := item.Attr(titleSelector, "title"); ok {
		if t := strings.TrimSpace(title); t != "" {
			rec.Title = &t
		}
	}
	if link, ok := item.Link(titleSelector); ok {
		rec.Link = &link
	}

	if text, ok := item.Text(priceSelector); ok {
		rec.PriceRaw = &text
		rec.Price = parser.ParsePrice(text)
		if rec.Price == nil {
			metrics.IncParseFailure("price")
		}
	}

	if text, ok := item.Text(availabilitySelector); ok {
		rec.AvailabilityRaw = &text
		rec.Availability = parser.ParseAvailability(text)
	} else if text, ok := item.Text(availabilityFallback); ok {
		rec.AvailabilityRaw = &text
		rec.Availability = parser.ParseAvailability(text)
	}

	if class, ok := item.Attr(starsSelector, "class"); ok {
		rec.StarsRaw = &class
		rec.Stars = parser.ParseStarRating(class)
		if rec.Stars == nil {
			metrics.IncParseFailure("stars")
		}
	}

	return rec
}
