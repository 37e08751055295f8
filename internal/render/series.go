// Package render shapes analytics results into chart-library-agnostic
// series and display strings. Nothing here feeds back into the analytics
// contract: aggregation keeps full precision and rounding happens only in
// this layer.
package render

import (
	"github.com/ledgerdash/backend/internal/analytics"
	"github.com/ledgerdash/backend/internal/model"
)

// Series is a single-dataset chart feed.
type Series struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// Dataset is one named value track of a MultiSeries.
type Dataset struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// MultiSeries is a chart feed with several datasets over shared labels.
type MultiSeries struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// StatusSeries renders the status histogram with all five statuses in
// display order, zeros included.
func StatusSeries(s *analytics.Summary) Series {
	out := Series{
		Labels: make([]string, 0, len(model.InvoiceStatuses)),
		Values: make([]float64, 0, len(model.InvoiceStatuses)),
	}
	for _, st := range model.InvoiceStatuses {
		out.Labels = append(out.Labels, string(st))
		out.Values = append(out.Values, float64(s.StatusCounts[st]))
	}
	return out
}

// MonthlyAverageSeries renders the monthly average-invoice-value buckets.
func MonthlyAverageSeries(s *analytics.Summary) Series {
	out := Series{
		Labels: make([]string, 0, len(s.MonthlyAverages)),
		Values: make([]float64, 0, len(s.MonthlyAverages)),
	}
	for _, m := range s.MonthlyAverages {
		out.Labels = append(out.Labels, m.Label)
		out.Values = append(out.Values, m.Average)
	}
	return out
}

// ClientCountSeries renders a top-client list keyed by invoice count.
func ClientCountSeries(clients []analytics.ClientTotal) Series {
	out := Series{
		Labels: make([]string, 0, len(clients)),
		Values: make([]float64, 0, len(clients)),
	}
	for _, c := range clients {
		out.Labels = append(out.Labels, c.Name)
		out.Values = append(out.Values, float64(c.Count))
	}
	return out
}

// ClientValueSeries renders a top-client list keyed by billed value.
func ClientValueSeries(clients []analytics.ClientTotal) Series {
	out := Series{
		Labels: make([]string, 0, len(clients)),
		Values: make([]float64, 0, len(clients)),
	}
	for _, c := range clients {
		out.Labels = append(out.Labels, c.Name)
		out.Values = append(out.Values, c.Value)
	}
	return out
}

// ForecastSeries renders history plus projections over one shared label
// axis. Revenue carries both historical and projected values; the expense
// dataset only covers history and pads the projected months with zeros.
func ForecastSeries(f *analytics.Forecast) MultiSeries {
	total := len(f.History) + len(f.Projections)
	labels := make([]string, 0, total)
	revenue := make([]float64, 0, total)
	expense := make([]float64, 0, total)

	for _, p := range f.History {
		labels = append(labels, p.Label)
		revenue = append(revenue, p.Revenue)
		expense = append(expense, p.Expense)
	}
	for _, p := range f.Projections {
		labels = append(labels, p.Label)
		revenue = append(revenue, p.Revenue)
		expense = append(expense, 0)
	}

	return MultiSeries{
		Labels: labels,
		Datasets: []Dataset{
			{Name: "revenue", Values: revenue},
			{Name: "expenses", Values: expense},
		},
	}
}
