// Package models defines data structures shared across the pipeline.
package models

import "time"

// ValueCategory is the binary price classification derived from the
// price-vs-median comparison.
type ValueCategory string

const (
	ValueHigh ValueCategory = "High"
	ValueLow  ValueCategory = "Low"
)

// Record represents one catalog item. Parsed fields are pointers so that
// a missing or unparseable value is an explicit null in every output,
// never a sentinel like 0 or "".
type Record struct {
	Title           *string        `csv:"title" json:"title"`
	Link            *string        `csv:"link" json:"link"`
	PriceRaw        *string        `csv:"price_raw" json:"price_raw"`
	Price           *float64       `csv:"price" json:"price"`
	AvailabilityRaw *string        `csv:"availability_raw" json:"availability_raw"`
	Availability    int            `csv:"availability" json:"availability"`
	StarsRaw        *string        `csv:"stars_raw" json:"stars_raw"`
	Stars           *int           `csv:"stars" json:"stars"`
	ValueCategory   *ValueCategory `csv:"value_category" json:"value_category"`
	Cluster         *int           `csv:"cluster" json:"cluster"`
	ScrapedAt       time.Time      `csv:"scraped_at" json:"scraped_at"`
}

// Summary aggregates the analysis output. Price statistics are nil when
// no record carries a parseable price; consumers must not read missing
// statistics as zero.
type Summary struct {
	TotalRecords              int                   `json:"total_records"`
	PriceMean                 *float64              `json:"price_mean"`
	PriceMedian               *float64              `json:"price_median"`
	PriceMin                  *float64              `json:"price_min"`
	PriceMax                  *float64              `json:"price_max"`
	ValueCategoryDistribution map[ValueCategory]int `json:"value_category_distribution"`
	ClusterCenters            []float64             `json:"cluster_centers"`
}

// CrawlResult holds bookkeeping for one crawl run.
type CrawlResult struct {
	Records   []*Record
	StartTime time.Time
	EndTime   time.Time
	PageCount int
}
