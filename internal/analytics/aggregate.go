package analytics

import (
	"sort"
	"time"

	"github.com/ledgerdash/backend/internal/model"
)

// ClientTotal is a per-client rollup within a summary window.
type ClientTotal struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Value float64 `json:"value"`
}

// MonthlyValue is one bucket of the monthly average-invoice-value series.
type MonthlyValue struct {
	Month   time.Time `json:"month"`
	Label   string    `json:"label"`
	Average float64   `json:"average"`
}

// Summary is the aggregation-stage result for one time window.
type Summary struct {
	Range             TimeRange                   `json:"range"`
	Invoices          []*model.Invoice            `json:"-"`
	InvoiceCount      int                         `json:"invoice_count"`
	TotalRevenue      float64                     `json:"total_revenue"`
	AvgInvoiceValue   float64                     `json:"avg_invoice_value"`
	PaidCount         int                         `json:"paid_count"`
	OutstandingCount  int                         `json:"outstanding_count"`
	PaymentRate       float64                     `json:"payment_rate"`
	StatusCounts      map[model.InvoiceStatus]int `json:"status_counts"`
	TopClientsByCount []ClientTotal               `json:"top_clients_by_count"`
	TopClientsByValue []ClientTotal               `json:"top_clients_by_value"`
	AvgPaymentDays    float64                     `json:"avg_payment_days"`
	MonthlyAverages   []MonthlyValue              `json:"monthly_averages"`
}

const topClientLimit = 5

// Summarize filters invoices to the requested window (issue date on or
// after the cutoff computed from now) and computes the aggregation-stage
// metrics. Empty windows produce zeros throughout: the average divisors
// are floored at one rather than reported as errors.
func Summarize(invoices []*model.Invoice, r TimeRange, now time.Time) *Summary {
	filtered := FilterInvoices(invoices, r, now)

	s := &Summary{
		Range:        r,
		Invoices:     filtered,
		InvoiceCount: len(filtered),
		StatusCounts: make(map[model.InvoiceStatus]int, len(model.InvoiceStatuses)),
	}
	// All five status keys are always present, even at zero.
	for _, st := range model.InvoiceStatuses {
		s.StatusCounts[st] = 0
	}

	byClient := make(map[string]*ClientTotal)
	var clientOrder []string

	var paymentDaySum float64
	var paymentDayCount int

	monthTotals := make(map[time.Time]float64)
	monthCounts := make(map[time.Time]int)

	for _, inv := range filtered {
		s.TotalRevenue += inv.Total
		s.StatusCounts[inv.Status]++

		switch {
		case inv.Status == model.StatusPaid:
			s.PaidCount++
		case inv.Status.Outstanding():
			s.OutstandingCount++
		}

		if inv.Status == model.StatusPaid && inv.PaymentDate != nil {
			paymentDaySum += paymentDays(inv.IssueDate, *inv.PaymentDate)
			paymentDayCount++
		}

		ct, ok := byClient[inv.ClientName]
		if !ok {
			ct = &ClientTotal{Name: inv.ClientName}
			byClient[inv.ClientName] = ct
			clientOrder = append(clientOrder, inv.ClientName)
		}
		ct.Count++
		ct.Value += inv.Total

		month := monthOf(inv.IssueDate)
		monthTotals[month] += inv.Total
		monthCounts[month]++
	}

	count := len(filtered)
	divisor := count
	if divisor < 1 {
		divisor = 1
	}
	s.AvgInvoiceValue = s.TotalRevenue / float64(divisor)
	s.PaymentRate = float64(s.PaidCount) / float64(divisor) * 100

	if paymentDayCount > 0 {
		s.AvgPaymentDays = paymentDaySum / float64(paymentDayCount)
	}

	// Client rollups in encounter order, then stable sorts so ties keep
	// that order in the top-5 lists.
	totals := make([]ClientTotal, 0, len(clientOrder))
	for _, name := range clientOrder {
		totals = append(totals, *byClient[name])
	}
	s.TopClientsByCount = topClients(totals, func(a, b ClientTotal) bool { return a.Count > b.Count })
	s.TopClientsByValue = topClients(totals, func(a, b ClientTotal) bool { return a.Value > b.Value })

	// Monthly average invoice value, chronological, most recent 12 buckets.
	months := make([]time.Time, 0, len(monthTotals))
	for m := range monthTotals {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })
	if len(months) > 12 {
		months = months[len(months)-12:]
	}
	for _, m := range months {
		s.MonthlyAverages = append(s.MonthlyAverages, MonthlyValue{
			Month:   m,
			Label:   monthLabel(m),
			Average: monthTotals[m] / float64(monthCounts[m]),
		})
	}

	return s
}

func topClients(totals []ClientTotal, less func(a, b ClientTotal) bool) []ClientTotal {
	out := make([]ClientTotal, len(totals))
	copy(out, totals)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	if len(out) > topClientLimit {
		out = out[:topClientLimit]
	}
	return out
}
