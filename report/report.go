// Package report renders the analysis summary for human consumption.
// It consumes pipeline output and contains no decision logic; chart and
// PDF rendering live outside this repository.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/aluiziolira/go-catalog-insights/models"
)

// Assembler turns a Summary into a plain-text report.
type Assembler struct {
	title string
}

// NewAssembler returns an assembler with the given report title.
func NewAssembler(title string) *Assembler {
	if title == "" {
		title = "Catalog Report"
	}
	return &Assembler{title: title}
}

// Render produces the text report for a summary.
func (a *Assembler) Render(summary *models.Summary) string {
	var b strings.Builder

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.SetTitle(a.title)
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRow(table.Row{"Total records", summary.TotalRecords})
	t.AppendRow(table.Row{"Price mean", formatStat(summary.PriceMean)})
	t.AppendRow(table.Row{"Price median", formatStat(summary.PriceMedian)})
	t.AppendRow(table.Row{"Price min", formatStat(summary.PriceMin)})
	t.AppendRow(table.Row{"Price max", formatStat(summary.PriceMax)})
	b.WriteString(t.Render())
	b.WriteString("\n")

	dist := table.NewWriter()
	dist.SetStyle(table.StyleLight)
	dist.SetTitle("Value Categories")
	dist.AppendHeader(table.Row{"Category", "Count"})
	for _, category := range []models.ValueCategory{models.ValueHigh, models.ValueLow} {
		if count, ok := summary.ValueCategoryDistribution[category]; ok {
			dist.AppendRow(table.Row{string(category), count})
		}
	}
	b.WriteString(dist.Render())
	b.WriteString("\n")

	if len(summary.ClusterCenters) > 0 {
		clusters := table.NewWriter()
		clusters.SetStyle(table.StyleLight)
		clusters.SetTitle("Price Clusters")
		clusters.AppendHeader(table.Row{"Cluster", "Center"})
		for i, center := range summary.ClusterCenters {
			clusters.AppendRow(table.Row{i, fmt.Sprintf("%.2f", center)})
		}
		b.WriteString(clusters.Render())
		b.WriteString("\n")
	}

	return b.String()
}

// WriteTo renders the report into w.
func (a *Assembler) WriteTo(w io.Writer, summary *models.Summary) error {
	_, err := io.WriteString(w, a.Render(summary))
	return err
}

// formatStat renders a statistic, keeping absence visible instead of
// collapsing it to zero.
func formatStat(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *v)
}
