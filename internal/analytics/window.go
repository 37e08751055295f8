// Package analytics derives dashboard metrics from invoice and transaction
// snapshots. Every function is pure: it takes the record collections and an
// explicit reference time, mutates nothing, and always returns a result for
// well-typed input. Empty inputs resolve to zero defaults, never errors.
package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/ledgerdash/backend/internal/model"
)

// TimeRange selects how far back an aggregation looks.
type TimeRange string

const (
	RangeAll       TimeRange = "all"
	RangeSixMonths TimeRange = "6m"
	RangeYear      TimeRange = "1y"
)

// ParseTimeRange accepts both the short query-parameter form and the
// longer labels used by the dashboard's range picker.
func ParseTimeRange(s string) (TimeRange, error) {
	switch s {
	case "", "all":
		return RangeAll, nil
	case "6m", "last-6-months":
		return RangeSixMonths, nil
	case "1y", "last-year":
		return RangeYear, nil
	}
	return "", fmt.Errorf("unknown time range %q", s)
}

// Cutoff returns the inclusive lower bound for the range relative to now.
// ok is false for RangeAll, which applies no filter.
func (r TimeRange) Cutoff(now time.Time) (cutoff time.Time, ok bool) {
	switch r {
	case RangeSixMonths:
		return now.AddDate(0, -6, 0), true
	case RangeYear:
		return now.AddDate(-1, 0, 0), true
	default:
		return time.Time{}, false
	}
}

// FilterInvoices returns the invoices whose issue date falls on or after
// the range cutoff, preserving input order. RangeAll returns the input
// slice unchanged.
func FilterInvoices(invoices []*model.Invoice, r TimeRange, now time.Time) []*model.Invoice {
	cutoff, ok := r.Cutoff(now)
	if !ok {
		return invoices
	}
	filtered := make([]*model.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if !inv.IssueDate.Before(cutoff) {
			filtered = append(filtered, inv)
		}
	}
	return filtered
}

// monthOf truncates t to the first instant of its calendar month in UTC.
func monthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// monthLabel is the fixed bucket label format used across the analytics
// output; the render layer applies user date preferences separately.
func monthLabel(t time.Time) string {
	return t.Format("Jan 2006")
}

// paymentDays is the rounded number of days between issue and payment.
func paymentDays(issue, payment time.Time) float64 {
	return math.Round(payment.Sub(issue).Hours() / 24)
}
