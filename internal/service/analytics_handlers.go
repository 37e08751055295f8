package service

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerdash/backend/internal/analytics"
	"github.com/ledgerdash/backend/internal/render"
)

// AnalyticsSummary computes the aggregation-stage metrics for the
// requested time range (?range=all|6m|1y, long labels accepted).
func (s *DashboardService) AnalyticsSummary(c *gin.Context) {
	timeRange, err := analytics.ParseTimeRange(c.Query("range"))
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}

	ctx := c.Request.Context()
	key := "analytics:summary:" + string(timeRange)
	if raw := s.cachedJSON(ctx, key); raw != nil {
		c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
		return
	}

	invoices, err := s.store.ListInvoices(ctx)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, fmt.Errorf("list invoices: %w", err))
		return
	}

	summary := analytics.Summarize(invoices, timeRange, s.now())
	s.respondCached(c, key, summary)
}

// clientInsights bundles the behavior-stage outputs. Profiles always come
// from the full invoice history regardless of any dashboard range filter.
type clientInsights struct {
	Profiles        []*analytics.ClientProfile `json:"profiles"`
	LatePayers      []analytics.LatePayer      `json:"late_payers"`
	ChurnRisks      []analytics.ChurnRisk      `json:"churn_risks"`
	ValuableClients []analytics.ValuableClient `json:"valuable_clients"`
}

// AnalyticsClients computes client payment-behavior profiles and the
// derived late-payer, churn-risk and client-value rankings.
func (s *DashboardService) AnalyticsClients(c *gin.Context) {
	ctx := c.Request.Context()
	if raw := s.cachedJSON(ctx, "analytics:clients"); raw != nil {
		c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
		return
	}

	invoices, err := s.store.ListInvoices(ctx)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, fmt.Errorf("list invoices: %w", err))
		return
	}

	now := s.now()
	profiles := analytics.BuildClientProfiles(invoices, now)
	insights := clientInsights{
		Profiles:        profiles,
		LatePayers:      analytics.LatePayers(profiles),
		ChurnRisks:      analytics.ChurnRisks(profiles, invoices),
		ValuableClients: analytics.ValuableClients(profiles),
	}
	s.respondCached(c, "analytics:clients", insights)
}

// AnalyticsForecast fits the six-month revenue forecast. With fewer than
// three monthly buckets the response still succeeds, with has_forecast
// false and a reason string.
func (s *DashboardService) AnalyticsForecast(c *gin.Context) {
	ctx := c.Request.Context()
	if raw := s.cachedJSON(ctx, "analytics:forecast"); raw != nil {
		c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
		return
	}

	invoices, err := s.store.ListInvoices(ctx)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, fmt.Errorf("list invoices: %w", err))
		return
	}
	transactions, err := s.store.ListTransactions(ctx)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, fmt.Errorf("list transactions: %w", err))
		return
	}

	forecast := analytics.ForecastRevenue(invoices, transactions, s.now())
	s.respondCached(c, "analytics:forecast", forecast)
}

// chartBundle is the presentation-ready payload for the dashboard's chart
// widgets: agnostic series plus headline figures formatted with the user's
// locale, currency and date preferences.
type chartBundle struct {
	Status         render.Series      `json:"status"`
	MonthlyAverage render.Series      `json:"monthly_average"`
	ClientsByCount render.Series      `json:"clients_by_count"`
	ClientsByValue render.Series      `json:"clients_by_value"`
	Forecast       render.MultiSeries `json:"forecast"`
	Headline       map[string]string  `json:"headline"`
}

// AnalyticsCharts shapes the summary and forecast into chart feeds.
func (s *DashboardService) AnalyticsCharts(c *gin.Context) {
	timeRange, err := analytics.ParseTimeRange(c.Query("range"))
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}

	ctx := c.Request.Context()
	key := "analytics:charts:" + string(timeRange)
	if raw := s.cachedJSON(ctx, key); raw != nil {
		c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
		return
	}

	invoices, err := s.store.ListInvoices(ctx)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, fmt.Errorf("list invoices: %w", err))
		return
	}
	transactions, err := s.store.ListTransactions(ctx)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, fmt.Errorf("list transactions: %w", err))
		return
	}
	prefs, err := s.store.GetPreferences(ctx)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, fmt.Errorf("get preferences: %w", err))
		return
	}

	now := s.now()
	summary := analytics.Summarize(invoices, timeRange, now)
	forecast := analytics.ForecastRevenue(invoices, transactions, now)
	formatter := render.NewFormatter(prefs)

	bundle := chartBundle{
		Status:         render.StatusSeries(summary),
		MonthlyAverage: render.MonthlyAverageSeries(summary),
		ClientsByCount: render.ClientCountSeries(summary.TopClientsByCount),
		ClientsByValue: render.ClientValueSeries(summary.TopClientsByValue),
		Forecast:       render.ForecastSeries(forecast),
		Headline: map[string]string{
			"total_revenue":     formatter.Currency(summary.TotalRevenue),
			"avg_invoice_value": formatter.Currency(summary.AvgInvoiceValue),
			"payment_rate":      formatter.Percent(summary.PaymentRate),
			"avg_payment_days":  formatter.Number(summary.AvgPaymentDays),
			"monthly_recurring": formatter.Currency(forecast.RecurringMonthlyRevenue),
		},
	}
	s.respondCached(c, key, bundle)
}

// respondCached marshals once, caches the body and writes it.
func (s *DashboardService) respondCached(c *gin.Context, key string, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, fmt.Errorf("encode response: %w", err))
		return
	}
	s.storeJSON(c.Request.Context(), key, body)
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
