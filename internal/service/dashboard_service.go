package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/ledgerdash/backend/internal/model"
	"github.com/ledgerdash/backend/internal/store"
)

// DashboardService exposes the dashboard REST API: invoice and transaction
// CRUD, display preferences, and the analytics endpoints. Analytics are
// recomputed from a fresh store snapshot on every request; the optional
// redis cache only short-circuits identical requests and is never required
// for correctness.
type DashboardService struct {
	store store.Store
	cache *redis.Client
	log   *logrus.Logger

	// now is the reference clock for every analytics call; tests swap it
	// for a fixture.
	now func() time.Time
}

// NewDashboardService wires a service. cache may be nil.
func NewDashboardService(st store.Store, cache *redis.Client, log *logrus.Logger) *DashboardService {
	if log == nil {
		log = logrus.New()
	}
	return &DashboardService{
		store: st,
		cache: cache,
		log:   log,
		now:   time.Now,
	}
}

// Routes registers every endpoint under /api/v1.
func (s *DashboardService) Routes(r *gin.Engine) {
	api := r.Group("/api/v1")

	api.GET("/invoices", s.ListInvoices)
	api.POST("/invoices", s.CreateInvoice)
	api.GET("/invoices/:id", s.GetInvoice)
	api.PUT("/invoices/:id", s.UpdateInvoice)
	api.DELETE("/invoices/:id", s.DeleteInvoice)

	api.GET("/transactions", s.ListTransactions)
	api.POST("/transactions", s.CreateTransaction)
	api.GET("/transactions/:id", s.GetTransaction)
	api.PUT("/transactions/:id", s.UpdateTransaction)
	api.DELETE("/transactions/:id", s.DeleteTransaction)

	api.GET("/preferences", s.GetPreferences)
	api.PUT("/preferences", s.UpdatePreferences)

	api.GET("/analytics/summary", s.AnalyticsSummary)
	api.GET("/analytics/clients", s.AnalyticsClients)
	api.GET("/analytics/forecast", s.AnalyticsForecast)
	api.GET("/analytics/charts", s.AnalyticsCharts)

	api.GET("/categories", s.ListCategories)
}

// GetPreferences returns the saved display preferences.
func (s *DashboardService) GetPreferences(c *gin.Context) {
	prefs, err := s.store.GetPreferences(c.Request.Context())
	if err != nil {
		s.fail(c, http.StatusInternalServerError, fmt.Errorf("get preferences: %w", err))
		return
	}
	c.JSON(http.StatusOK, prefs)
}

// UpdatePreferences saves display preferences after light validation.
func (s *DashboardService) UpdatePreferences(c *gin.Context) {
	var prefs model.Preferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	if prefs.DateFormat != "" {
		if _, ok := model.DateFormats[prefs.DateFormat]; !ok {
			s.fail(c, http.StatusBadRequest, fmt.Errorf("unknown date format %q", prefs.DateFormat))
			return
		}
	}
	if err := s.store.UpdatePreferences(c.Request.Context(), prefs); err != nil {
		s.fail(c, http.StatusInternalServerError, fmt.Errorf("update preferences: %w", err))
		return
	}
	s.invalidateAnalyticsCache(c.Request.Context())
	c.JSON(http.StatusOK, prefs)
}

// ListCategories returns the suggested category vocabulary for the entry
// forms.
func (s *DashboardService) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"income":  model.IncomeCategories,
		"expense": model.ExpenseCategories,
	})
}

// fail logs and writes a JSON error body.
func (s *DashboardService) fail(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.log.WithError(err).Error("request failed")
	} else {
		s.log.WithError(err).Debug("request rejected")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// statusFor maps store errors to HTTP statuses.
func statusFor(err error) int {
	if errors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// parseDate accepts the dashboard's plain date form and RFC 3339. Dates
// are validated here, at the entry boundary, so the analytics core never
// sees a malformed one.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD or RFC 3339)", s)
	}
	return t, nil
}

// analyticsCacheKeys are every key the cache may hold; mutations drop them
// all rather than tracking which window a record lands in.
var analyticsCacheKeys = []string{
	"analytics:summary:all", "analytics:summary:6m", "analytics:summary:1y",
	"analytics:charts:all", "analytics:charts:6m", "analytics:charts:1y",
	"analytics:clients", "analytics:forecast",
}

const analyticsCacheTTL = 60 * time.Second

// cachedJSON returns a previously cached response body, or nil.
func (s *DashboardService) cachedJSON(ctx context.Context, key string) []byte {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	return raw
}

// storeJSON caches a response body; failures are logged and ignored.
func (s *DashboardService) storeJSON(ctx context.Context, key string, body []byte) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetEx(ctx, key, body, analyticsCacheTTL).Err(); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("analytics cache write failed")
	}
}

func (s *DashboardService) invalidateAnalyticsCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, analyticsCacheKeys...).Err(); err != nil {
		s.log.WithError(err).Warn("analytics cache invalidation failed")
	}
}
