package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/ledgerdash/backend/internal/model"
	"github.com/ledgerdash/backend/internal/store"
)

// testClock is the fixed reference time every service test runs against.
var testClock = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*DashboardService, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logrus.New()
	log.SetOutput(io.Discard)

	svc := NewDashboardService(store.NewMemoryStore(), nil, log)
	svc.now = func() time.Time { return testClock }

	router := gin.New()
	svc.Routes(router)
	return svc, router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// seedInvoice writes an invoice straight into the service's store,
// bypassing the HTTP layer, for analytics fixtures.
func seedInvoice(t *testing.T, svc *DashboardService, client string, issue time.Time, total float64, status model.InvoiceStatus, paymentDate *time.Time) *model.Invoice {
	t.Helper()
	inv := model.NewInvoice(client, "", "", issue, issue.AddDate(0, 0, 14),
		[]model.LineItem{{Description: "Work", Quantity: 1, UnitPrice: total}}, 0, "")
	inv.Status = status
	inv.PaymentDate = paymentDate
	require.NoError(t, svc.store.CreateInvoice(context.Background(), inv))
	return inv
}

func seedDebit(t *testing.T, svc *DashboardService, day time.Time, amount float64) {
	t.Helper()
	tx := model.NewTransaction(day, "Expense", "Other Expenses", "Checking", model.TypeDebit, amount, "Completed", "", "")
	require.NoError(t, svc.store.CreateTransaction(context.Background(), tx))
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, w.Code, "body: %s", w.Body.String())
}
