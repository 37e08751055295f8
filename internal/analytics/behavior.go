package analytics

import (
	"sort"
	"time"

	"github.com/ledgerdash/backend/internal/model"
)

// ClientProfile is the per-client payment-behavior rollup. Profiles are
// always built from the full invoice history, never a time window, and are
// recomputed from scratch on every pass.
type ClientProfile struct {
	Name            string    `json:"name"`
	TotalSpent      float64   `json:"total_spent"`
	InvoiceCount    int       `json:"invoice_count"`
	LatePayments    int       `json:"late_payments"`
	AvgPaymentDays  float64   `json:"avg_payment_days"`
	LastInvoice     time.Time `json:"last_invoice"`
	ConsecutiveLate int       `json:"consecutive_late"`
	Active          bool      `json:"active"`
}

// activeWindowDays is how recently a client must have been invoiced to
// count as active.
const activeWindowDays = 90

// BuildClientProfiles folds the invoice collection, in its given order,
// into one profile per distinct client name. Lateness is only ever judged
// on paid invoices with a payment date: an on-time payment resets the
// consecutive-late streak, while unpaid or overdue invoices leave the
// streak untouched. The running average of days-to-payment uses a
// two-point average of the previous average and the new observation; this
// recency-biased formula is kept as-is because the churn thresholds were
// tuned against it.
func BuildClientProfiles(invoices []*model.Invoice, now time.Time) []*ClientProfile {
	byName := make(map[string]*ClientProfile)
	var order []*ClientProfile

	for _, inv := range invoices {
		p, ok := byName[inv.ClientName]
		if !ok {
			p = &ClientProfile{Name: inv.ClientName}
			byName[inv.ClientName] = p
			order = append(order, p)
		}

		p.TotalSpent += inv.Total
		p.InvoiceCount++

		if inv.Status == model.StatusPaid && inv.PaymentDate != nil {
			if inv.PaymentDate.After(inv.DueDate) {
				p.LatePayments++
				p.ConsecutiveLate++
			} else {
				p.ConsecutiveLate = 0
			}

			days := paymentDays(inv.IssueDate, *inv.PaymentDate)
			if p.AvgPaymentDays == 0 {
				p.AvgPaymentDays = days
			} else {
				p.AvgPaymentDays = (p.AvgPaymentDays + days) / 2
			}
		}

		if inv.IssueDate.After(p.LastInvoice) {
			p.LastInvoice = inv.IssueDate
		}
	}

	activeCutoff := now.AddDate(0, 0, -activeWindowDays)
	for _, p := range order {
		p.Active = !p.LastInvoice.Before(activeCutoff)
	}

	return order
}

// LatePayer is one entry of the late-payment ranking.
type LatePayer struct {
	Name         string  `json:"name"`
	LatePayments int     `json:"late_payments"`
	InvoiceCount int     `json:"invoice_count"`
	LateRate     float64 `json:"late_rate"`
}

// LatePayers ranks clients with at least one late payment, descending by
// late count with stable ties, capped at five.
func LatePayers(profiles []*ClientProfile) []LatePayer {
	var out []LatePayer
	for _, p := range profiles {
		if p.LatePayments == 0 {
			continue
		}
		out = append(out, LatePayer{
			Name:         p.Name,
			LatePayments: p.LatePayments,
			InvoiceCount: p.InvoiceCount,
			LateRate:     float64(p.LatePayments) / float64(p.InvoiceCount) * 100,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].LatePayments > out[j].LatePayments })
	if len(out) > topClientLimit {
		out = out[:topClientLimit]
	}
	return out
}

// Churn-risk score weights. The three flags are binary, so every score is
// a member of {0, 20, 30, 50, 70, 80, 100}.
const (
	riskWeightLateStreak  = 30
	riskWeightSlowPayer   = 20
	riskWeightOutstanding = 50
	riskThreshold         = 20
	slowPayerFactor       = 1.5
)

// ChurnRisk is one flagged client with the flags that produced its score.
type ChurnRisk struct {
	Name            string  `json:"name"`
	Score           int     `json:"score"`
	LateStreak      bool    `json:"late_streak"`
	SlowPayer       bool    `json:"slow_payer"`
	HasOutstanding  bool    `json:"has_outstanding"`
	AvgPaymentDays  float64 `json:"avg_payment_days"`
	ConsecutiveLate int     `json:"consecutive_late"`
}

// ChurnRisks scores every active client against three weighted flags: a
// consecutive-late streak of two or more, an average payment time beyond
// 1.5x the mean across all clients, and any currently outstanding invoice.
// Only active clients scoring above the threshold are listed, descending
// by score; the list is uncapped.
func ChurnRisks(profiles []*ClientProfile, invoices []*model.Invoice) []ChurnRisk {
	var meanPaymentDays float64
	if len(profiles) > 0 {
		var sum float64
		for _, p := range profiles {
			sum += p.AvgPaymentDays
		}
		meanPaymentDays = sum / float64(len(profiles))
	}

	outstanding := make(map[string]bool)
	for _, inv := range invoices {
		if inv.Status.Outstanding() {
			outstanding[inv.ClientName] = true
		}
	}

	var out []ChurnRisk
	for _, p := range profiles {
		if !p.Active {
			continue
		}
		risk := ChurnRisk{
			Name:            p.Name,
			LateStreak:      p.ConsecutiveLate >= 2,
			SlowPayer:       p.AvgPaymentDays > slowPayerFactor*meanPaymentDays,
			HasOutstanding:  outstanding[p.Name],
			AvgPaymentDays:  p.AvgPaymentDays,
			ConsecutiveLate: p.ConsecutiveLate,
		}
		if risk.LateStreak {
			risk.Score += riskWeightLateStreak
		}
		if risk.SlowPayer {
			risk.Score += riskWeightSlowPayer
		}
		if risk.HasOutstanding {
			risk.Score += riskWeightOutstanding
		}
		if risk.Score > riskThreshold {
			out = append(out, risk)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// Value score weights. A heuristic ranking, not a normalized score; the
// recency term uses two discrete buckets (100 active, 50 inactive).
const (
	valueWeightSpend       = 0.4
	valueWeightAvgInvoice  = 0.3
	valueWeightRecency     = 0.15
	valueWeightReliability = 0.15
)

// ValuableClient is one entry of the client-value ranking.
type ValuableClient struct {
	Name            string  `json:"name"`
	Score           float64 `json:"score"`
	TotalSpent      float64 `json:"total_spent"`
	AvgInvoiceValue float64 `json:"avg_invoice_value"`
	LateRate        float64 `json:"late_rate"`
	Active          bool    `json:"active"`
}

// ValuableClients ranks clients by a weighted sum of total spend, average
// invoice value, recency and payment reliability, descending with stable
// ties, capped at five.
func ValuableClients(profiles []*ClientProfile) []ValuableClient {
	out := make([]ValuableClient, 0, len(profiles))
	for _, p := range profiles {
		avgValue := p.TotalSpent / float64(max(p.InvoiceCount, 1))
		lateRate := float64(p.LatePayments) / float64(max(p.InvoiceCount, 1)) * 100
		recency := 50.0
		if p.Active {
			recency = 100.0
		}
		out = append(out, ValuableClient{
			Name:            p.Name,
			TotalSpent:      p.TotalSpent,
			AvgInvoiceValue: avgValue,
			LateRate:        lateRate,
			Active:          p.Active,
			Score: valueWeightSpend*p.TotalSpent +
				valueWeightAvgInvoice*avgValue +
				valueWeightRecency*recency +
				valueWeightReliability*(100-lateRate),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > topClientLimit {
		out = out[:topClientLimit]
	}
	return out
}
