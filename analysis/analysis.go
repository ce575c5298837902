// Package analysis derives summary statistics, a High/Low value
// classification, and a two-group price clustering from extracted
// records.
package analysis

import (
	"log/slog"
	"sort"

	"github.com/aluiziolira/go-catalog-insights/models"
)

// DefaultClusterMinPriced is the minimum number of priced records
// required before clustering runs.
const DefaultClusterMinPriced = 10

// Analyzer runs the analysis stages over a frozen record set. Records
// with a nil price are excluded from numeric aggregates but never cause
// the run to fail; degenerate input degrades to nil statistics and a
// skipped clustering stage.
type Analyzer struct {
	clusterMinPriced int
}

// NewAnalyzer returns an analyzer with the default clustering threshold.
func NewAnalyzer() *Analyzer {
	return &Analyzer{clusterMinPriced: DefaultClusterMinPriced}
}

// Run computes the summary and enriches records in place: every priced
// record gets a value category, and, when clustering runs, a cluster
// label. The stages are deterministic; identical input always yields
// identical output.
func (a *Analyzer) Run(records []*models.Record) *models.Summary {
	summary := &models.Summary{
		TotalRecords:              len(records),
		ValueCategoryDistribution: make(map[models.ValueCategory]int),
		ClusterCenters:            []float64{},
	}

	var priced []*models.Record
	var prices []float64
	for _, rec := range records {
		if rec.Price != nil {
			priced = append(priced, rec)
			prices = append(prices, *rec.Price)
		}
	}

	if len(prices) == 0 {
		slog.Debug("no priced records, statistics skipped")
		return summary
	}

	mean, median, min, max := priceStats(prices)
	summary.PriceMean = &mean
	summary.PriceMedian = &median
	summary.PriceMin = &min
	summary.PriceMax = &max

	// A price exactly at the median classifies Low; only strictly
	// greater prices are High.
	for _, rec := range priced {
		category := models.ValueLow
		if *rec.Price > median {
			category = models.ValueHigh
		}
		rec.ValueCategory = &category
		summary.ValueCategoryDistribution[category]++
	}

	if len(prices) < a.clusterMinPriced {
		slog.Debug("too few priced records, clustering skipped",
			slog.Int("priced", len(prices)),
			slog.Int("required", a.clusterMinPriced),
		)
		return summary
	}

	assignments, centers := kmeans2(prices)
	for i, rec := range priced {
		cluster := assignments[i]
		rec.Cluster = &cluster
	}
	summary.ClusterCenters = centers

	return summary
}

// priceStats computes mean, median, min, and max over a non-empty set.
// The median of an even-sized set is the mean of the two middle values.
func priceStats(prices []float64) (mean, median, min, max float64) {
	sorted := make([]float64, len(prices))
	copy(sorted, prices)
	sort.Float64s(sorted)

	min = sorted[0]
	max = sorted[len(sorted)-1]

	var total float64
	for _, p := range sorted {
		total += p
	}
	mean = total / float64(len(sorted))

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		median = sorted[mid]
	}
	return mean, median, min, max
}
