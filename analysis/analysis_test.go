package analysis

import (
	"math"
	"testing"

	"github.com/aluiziolira/go-catalog-insights/models"
)

func pricedRecords(prices ...float64) []*models.Record {
	records := make([]*models.Record, 0, len(prices))
	for _, p := range prices {
		v := p
		records = append(records, &models.Record{Price: &v})
	}
	return records
}

func TestRunDegenerateInput(t *testing.T) {
	tests := []struct {
		name    string
		records []*models.Record
	}{
		{name: "empty record set", records: nil},
		{name: "all prices null", records: []*models.Record{{}, {}, {}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := NewAnalyzer().Run(tt.records)
			if summary.TotalRecords != len(tt.records) {
				t.Errorf("TotalRecords = %d, want %d", summary.TotalRecords, len(tt.records))
			}
			if summary.PriceMean != nil || summary.PriceMedian != nil ||
				summary.PriceMin != nil || summary.PriceMax != nil {
				t.Errorf("statistics should be nil with no priced records")
			}
			if len(summary.ClusterCenters) != 0 {
				t.Errorf("ClusterCenters = %v, want empty", summary.ClusterCenters)
			}
			for i, rec := range tt.records {
				if rec.ValueCategory != nil {
					t.Errorf("record %d should keep a nil value category", i)
				}
				if rec.Cluster != nil {
					t.Errorf("record %d should keep a nil cluster", i)
				}
			}
		})
	}
}

func TestRunStatisticsBounds(t *testing.T) {
	tests := []struct {
		name   string
		prices []float64
	}{
		{name: "odd count", prices: []float64{3, 1, 2}},
		{name: "even count", prices: []float64{10, 20, 30, 40}},
		{name: "single price", prices: []float64{7.5}},
		{name: "identical prices", prices: []float64{5, 5, 5, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := NewAnalyzer().Run(pricedRecords(tt.prices...))
			if summary.PriceMin == nil || summary.PriceMedian == nil ||
				summary.PriceMean == nil || summary.PriceMax == nil {
				t.Fatalf("statistics should be set for priced records")
			}
			if *summary.PriceMin > *summary.PriceMedian || *summary.PriceMedian > *summary.PriceMax {
				t.Errorf("min %v <= median %v <= max %v violated",
					*summary.PriceMin, *summary.PriceMedian, *summary.PriceMax)
			}
			if *summary.PriceMin > *summary.PriceMean || *summary.PriceMean > *summary.PriceMax {
				t.Errorf("min %v <= mean %v <= max %v violated",
					*summary.PriceMin, *summary.PriceMean, *summary.PriceMax)
			}
		})
	}
}

func TestRunMedianEvenCount(t *testing.T) {
	summary := NewAnalyzer().Run(pricedRecords(10, 20, 30, 40))
	if *summary.PriceMedian != 25 {
		t.Errorf("median = %v, want 25", *summary.PriceMedian)
	}
}

func TestRunValueClassification(t *testing.T) {
	records := pricedRecords(10, 20, 30)
	records = append(records, &models.Record{}) // no price

	summary := NewAnalyzer().Run(records)

	median := *summary.PriceMedian
	for i, rec := range records {
		if rec.Price == nil {
			if rec.ValueCategory != nil {
				t.Errorf("record %d: unpriced record got category %v", i, *rec.ValueCategory)
			}
			continue
		}
		want := models.ValueLow
		if *rec.Price > median {
			want = models.ValueHigh
		}
		if rec.ValueCategory == nil || *rec.ValueCategory != want {
			t.Errorf("record %d: category = %v, want %v", i, rec.ValueCategory, want)
		}
	}

	// Median-equal prices are Low by the strict-> rule.
	mid := records[1]
	if *mid.Price != median {
		t.Fatalf("test setup: expected middle price %v to equal median %v", *mid.Price, median)
	}
	if *mid.ValueCategory != models.ValueLow {
		t.Errorf("median-equal price classified %v, want Low", *mid.ValueCategory)
	}

	total := 0
	for _, count := range summary.ValueCategoryDistribution {
		total += count
	}
	if total != 3 {
		t.Errorf("distribution counts %d records, want 3 (assigned only)", total)
	}
}

func TestRunClusteringThreshold(t *testing.T) {
	records := pricedRecords(1, 2, 3, 4, 5, 6, 7, 8, 9)
	summary := NewAnalyzer().Run(records)

	if len(summary.ClusterCenters) != 0 {
		t.Errorf("ClusterCenters = %v, want empty below threshold", summary.ClusterCenters)
	}
	for i, rec := range records {
		if rec.Cluster != nil {
			t.Errorf("record %d: cluster = %d, want nil below threshold", i, *rec.Cluster)
		}
	}
}

func TestRunEndToEndScenario(t *testing.T) {
	prices := []float64{10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 100, 100}
	records := pricedRecords(prices...)

	summary := NewAnalyzer().Run(records)

	if *summary.PriceMedian != 10 {
		t.Fatalf("median = %v, want 10", *summary.PriceMedian)
	}
	if got := summary.ValueCategoryDistribution[models.ValueLow]; got != 10 {
		t.Errorf("Low count = %d, want 10", got)
	}
	if got := summary.ValueCategoryDistribution[models.ValueHigh]; got != 2 {
		t.Errorf("High count = %d, want 2", got)
	}

	if len(summary.ClusterCenters) != 2 {
		t.Fatalf("ClusterCenters = %v, want 2 centers", summary.ClusterCenters)
	}

	// The two 100s must share a cluster distinct from the 10s, and its
	// center must be visibly higher.
	expensive := *records[10].Cluster
	if *records[11].Cluster != expensive {
		t.Errorf("the two expensive records landed in different clusters")
	}
	for i := 0; i < 10; i++ {
		if *records[i].Cluster == expensive {
			t.Errorf("record %d (price 10) shares the expensive cluster", i)
		}
	}
	cheap := 1 - expensive
	if summary.ClusterCenters[expensive] <= summary.ClusterCenters[cheap] {
		t.Errorf("expensive center %v not above cheap center %v",
			summary.ClusterCenters[expensive], summary.ClusterCenters[cheap])
	}
	if math.Abs(summary.ClusterCenters[expensive]-100) > 1e-9 {
		t.Errorf("expensive center = %v, want 100", summary.ClusterCenters[expensive])
	}
	if math.Abs(summary.ClusterCenters[cheap]-10) > 1e-9 {
		t.Errorf("cheap center = %v, want 10", summary.ClusterCenters[cheap])
	}
}

func TestRunDeterministic(t *testing.T) {
	prices := []float64{4, 8, 15, 16, 23, 42, 4, 8, 15, 16, 23, 42}

	first := pricedRecords(prices...)
	second := pricedRecords(prices...)

	s1 := NewAnalyzer().Run(first)
	s2 := NewAnalyzer().Run(second)

	if *s1.PriceMean != *s2.PriceMean || *s1.PriceMedian != *s2.PriceMedian {
		t.Errorf("statistics differ across identical runs")
	}
	if len(s1.ClusterCenters) != len(s2.ClusterCenters) {
		t.Fatalf("cluster center counts differ: %v vs %v", s1.ClusterCenters, s2.ClusterCenters)
	}
	for i := range s1.ClusterCenters {
		if s1.ClusterCenters[i] != s2.ClusterCenters[i] {
			t.Errorf("cluster center %d differs: %v vs %v", i, s1.ClusterCenters[i], s2.ClusterCenters[i])
		}
	}
	for i := range first {
		if *first[i].Cluster != *second[i].Cluster {
			t.Errorf("record %d: cluster assignment differs across identical runs", i)
		}
		if *first[i].ValueCategory != *second[i].ValueCategory {
			t.Errorf("record %d: value category differs across identical runs", i)
		}
	}
}
