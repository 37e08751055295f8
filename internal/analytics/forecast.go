package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/ledgerdash/backend/internal/model"
)

// forecastWindowMonths is the trailing history the forecast is fitted on.
const (
	forecastWindowMonths = 6
	forecastHorizon      = 3
	minForecastBuckets   = 3
	recurringMinInvoices = 3
)

// ForecastPoint is one month of the revenue series, historical or
// projected.
type ForecastPoint struct {
	Label     string    `json:"label"`
	Month     time.Time `json:"month"`
	Revenue   float64   `json:"revenue"`
	Expense   float64   `json:"expense"`
	Projected bool      `json:"projected"`
}

// Forecast is the forecast-stage result. When fewer than three monthly
// buckets exist, HasForecast is false, Reason explains why, and
// Projections is empty; the historical series and the recurring-revenue
// metrics are still populated. That degraded mode is a defined result, not
// an error.
type Forecast struct {
	HasForecast             bool            `json:"has_forecast"`
	Reason                  string          `json:"reason,omitempty"`
	History                 []ForecastPoint `json:"history"`
	Projections             []ForecastPoint `json:"projections"`
	Slope                   float64         `json:"slope"`
	Intercept               float64         `json:"intercept"`
	AvgMonthlyRevenue       float64         `json:"avg_monthly_revenue"`
	AvgMonthlyExpense       float64         `json:"avg_monthly_expense"`
	TrendPercent            float64         `json:"trend_percent"`
	RecurringClients        int             `json:"recurring_clients"`
	RecurringMonthlyRevenue float64         `json:"recurring_monthly_revenue"`
	AnnualRecurringRevenue  float64         `json:"annual_recurring_revenue"`
}

// ForecastRevenue buckets the trailing six months of invoices and debit
// transactions into calendar months and fits an ordinary least squares
// line to the monthly revenue, projecting three months forward with
// negative projections clamped to zero. The trend percent deliberately
// compares only the first and last historical bucket; it is a two-point
// measure, distinct from the fitted slope.
func ForecastRevenue(invoices []*model.Invoice, transactions []*model.Transaction, now time.Time) *Forecast {
	cutoff := now.AddDate(0, -forecastWindowMonths, 0)

	revenueByMonth := make(map[time.Time]float64)
	expenseByMonth := make(map[time.Time]float64)
	invoicesByClient := make(map[string]int)
	revenueByClient := make(map[string]float64)

	for _, inv := range invoices {
		if inv.IssueDate.Before(cutoff) {
			continue
		}
		month := monthOf(inv.IssueDate)
		revenueByMonth[month] += inv.Total
		invoicesByClient[inv.ClientName]++
		revenueByClient[inv.ClientName] += inv.Total
	}
	for _, tx := range transactions {
		if tx.Type != model.TypeDebit || tx.Date.Before(cutoff) {
			continue
		}
		month := monthOf(tx.Date)
		expenseByMonth[month] += tx.Amount
	}

	// Bucket set is the chronological union of months seen in either
	// source, so expense-only months still anchor the series.
	monthSet := make(map[time.Time]bool)
	for m := range revenueByMonth {
		monthSet[m] = true
	}
	for m := range expenseByMonth {
		monthSet[m] = true
	}
	months := make([]time.Time, 0, len(monthSet))
	for m := range monthSet {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	f := &Forecast{}
	var revenueSum, expenseSum float64
	for _, m := range months {
		f.History = append(f.History, ForecastPoint{
			Label:   monthLabel(m),
			Month:   m,
			Revenue: revenueByMonth[m],
			Expense: expenseByMonth[m],
		})
		revenueSum += revenueByMonth[m]
		expenseSum += expenseByMonth[m]
	}

	n := len(months)
	if n > 0 {
		f.AvgMonthlyRevenue = revenueSum / float64(n)
		f.AvgMonthlyExpense = expenseSum / float64(n)

		first := f.History[0].Revenue
		last := f.History[n-1].Revenue
		if first != 0 {
			f.TrendPercent = (last - first) / first * 100
		}

		var recurringRevenue float64
		for name, count := range invoicesByClient {
			if count >= recurringMinInvoices {
				f.RecurringClients++
				recurringRevenue += revenueByClient[name]
			}
		}
		f.RecurringMonthlyRevenue = recurringRevenue / float64(n)
		f.AnnualRecurringRevenue = f.RecurringMonthlyRevenue * 12
	}

	if n < minForecastBuckets {
		f.Reason = fmt.Sprintf("not enough history to forecast: need %d months of activity, have %d", minForecastBuckets, n)
		return f
	}

	values := make([]float64, n)
	for i, p := range f.History {
		values[i] = p.Revenue
	}
	f.Slope, f.Intercept = linearRegression(values)
	f.HasForecast = true

	lastMonth := months[n-1]
	for i := 0; i < forecastHorizon; i++ {
		x := float64(n + i)
		projected := f.Slope*x + f.Intercept
		if projected < 0 {
			projected = 0
		}
		month := lastMonth.AddDate(0, i+1, 0)
		f.Projections = append(f.Projections, ForecastPoint{
			Label:     monthLabel(month),
			Month:     month,
			Revenue:   projected,
			Projected: true,
		})
	}

	return f
}

// linearRegression fits y = slope*x + intercept over x = 0, 1, 2, ... by
// the closed-form least squares solution.
func linearRegression(points []float64) (slope, intercept float64) {
	n := float64(len(points))
	if n < 2 {
		return 0, 0
	}
	var sumX, sumY, sumXY, sumX2 float64
	for i, y := range points {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}
	denom := n*sumX2 - sumX*sumX
	if denom == 0 {
		return 0, 0
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}
