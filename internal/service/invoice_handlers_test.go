package service

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerdash/backend/internal/model"
)

func validInvoiceBody() map[string]interface{} {
	return map[string]interface{}{
		"client_name": "Acme Corp",
		"issue_date":  "2025-06-01",
		"due_date":    "2025-06-15",
		"tax_rate":    10,
		"items": []map[string]interface{}{
			{"description": "Consulting", "quantity": 2, "unit_price": 150},
			{"description": "Support", "quantity": 1, "unit_price": 40},
		},
	}
}

func TestCreateInvoice(t *testing.T) {
	t.Run("derives monetary fields server side", func(t *testing.T) {
		_, router := newTestService(t)
		w := doJSON(t, router, http.MethodPost, "/api/v1/invoices", validInvoiceBody())
		requireStatus(t, w, http.StatusCreated)

		var inv model.Invoice
		decode(t, w, &inv)
		assert.NotEmpty(t, inv.ID)
		assert.Equal(t, 340.0, inv.Subtotal)
		assert.Equal(t, 34.0, inv.TaxAmount)
		assert.Equal(t, 374.0, inv.Total)
		assert.Equal(t, model.StatusUnpaid, inv.Status)
		assert.Equal(t, 300.0, inv.Items[0].Amount)
	})

	t.Run("rejects missing client name", func(t *testing.T) {
		_, router := newTestService(t)
		body := validInvoiceBody()
		delete(body, "client_name")
		w := doJSON(t, router, http.MethodPost, "/api/v1/invoices", body)
		requireStatus(t, w, http.StatusBadRequest)
	})

	t.Run("rejects empty item list", func(t *testing.T) {
		_, router := newTestService(t)
		body := validInvoiceBody()
		body["items"] = []map[string]interface{}{}
		w := doJSON(t, router, http.MethodPost, "/api/v1/invoices", body)
		requireStatus(t, w, http.StatusBadRequest)
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		_, router := newTestService(t)
		body := validInvoiceBody()
		body["issue_date"] = "06/01/2025"
		w := doJSON(t, router, http.MethodPost, "/api/v1/invoices", body)
		requireStatus(t, w, http.StatusBadRequest)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		_, router := newTestService(t)
		body := validInvoiceBody()
		body["status"] = "Pending"
		w := doJSON(t, router, http.MethodPost, "/api/v1/invoices", body)
		requireStatus(t, w, http.StatusBadRequest)
	})

	t.Run("paid without payment date defaults to the clock", func(t *testing.T) {
		_, router := newTestService(t)
		body := validInvoiceBody()
		body["status"] = "Paid"
		w := doJSON(t, router, http.MethodPost, "/api/v1/invoices", body)
		requireStatus(t, w, http.StatusCreated)

		var inv model.Invoice
		decode(t, w, &inv)
		require.NotNil(t, inv.PaymentDate)
		assert.True(t, inv.PaymentDate.Equal(testClock))
	})
}

func TestGetInvoice(t *testing.T) {
	svc, router := newTestService(t)
	created := seedInvoice(t, svc, "Acme", testClock.AddDate(0, -1, 0), 500, model.StatusUnpaid, nil)

	t.Run("found", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/v1/invoices/"+created.ID, nil)
		requireStatus(t, w, http.StatusOK)

		var inv model.Invoice
		decode(t, w, &inv)
		assert.Equal(t, "Acme", inv.ClientName)
	})

	t.Run("missing is 404", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/v1/invoices/unknown", nil)
		requireStatus(t, w, http.StatusNotFound)
	})
}

func TestUpdateInvoice(t *testing.T) {
	t.Run("recalculates totals from replaced items", func(t *testing.T) {
		svc, router := newTestService(t)
		created := seedInvoice(t, svc, "Acme", testClock.AddDate(0, -1, 0), 500, model.StatusUnpaid, nil)

		body := validInvoiceBody()
		body["items"] = []map[string]interface{}{
			{"description": "Retainer", "quantity": 1, "unit_price": 1000},
		}
		body["tax_rate"] = 0
		w := doJSON(t, router, http.MethodPut, "/api/v1/invoices/"+created.ID, body)
		requireStatus(t, w, http.StatusOK)

		var inv model.Invoice
		decode(t, w, &inv)
		assert.Equal(t, 1000.0, inv.Total)
		require.Len(t, inv.Items, 1)
	})

	t.Run("marking paid then unpaid clears the payment date", func(t *testing.T) {
		svc, router := newTestService(t)
		created := seedInvoice(t, svc, "Acme", testClock.AddDate(0, -1, 0), 500, model.StatusUnpaid, nil)

		body := validInvoiceBody()
		body["status"] = "Paid"
		body["payment_date"] = "2025-06-10"
		w := doJSON(t, router, http.MethodPut, "/api/v1/invoices/"+created.ID, body)
		requireStatus(t, w, http.StatusOK)

		var inv model.Invoice
		decode(t, w, &inv)
		require.NotNil(t, inv.PaymentDate)

		body["status"] = "Unpaid"
		w = doJSON(t, router, http.MethodPut, "/api/v1/invoices/"+created.ID, body)
		requireStatus(t, w, http.StatusOK)
		inv = model.Invoice{}
		decode(t, w, &inv)
		assert.Nil(t, inv.PaymentDate)
	})

	t.Run("missing is 404", func(t *testing.T) {
		_, router := newTestService(t)
		w := doJSON(t, router, http.MethodPut, "/api/v1/invoices/unknown", validInvoiceBody())
		requireStatus(t, w, http.StatusNotFound)
	})
}

func TestDeleteInvoice(t *testing.T) {
	svc, router := newTestService(t)
	created := seedInvoice(t, svc, "Acme", testClock.AddDate(0, -1, 0), 500, model.StatusUnpaid, nil)

	w := doJSON(t, router, http.MethodDelete, "/api/v1/invoices/"+created.ID, nil)
	requireStatus(t, w, http.StatusNoContent)

	w = doJSON(t, router, http.MethodGet, "/api/v1/invoices/"+created.ID, nil)
	requireStatus(t, w, http.StatusNotFound)
}

func TestListInvoices(t *testing.T) {
	svc, router := newTestService(t)
	seedInvoice(t, svc, "First", testClock.AddDate(0, -2, 0), 100, model.StatusPaid, nil)
	seedInvoice(t, svc, "Second", testClock.AddDate(0, -1, 0), 200, model.StatusUnpaid, nil)

	w := doJSON(t, router, http.MethodGet, "/api/v1/invoices", nil)
	requireStatus(t, w, http.StatusOK)

	var list []model.Invoice
	decode(t, w, &list)
	require.Len(t, list, 2)
	assert.Equal(t, "First", list[0].ClientName)
	assert.Equal(t, "Second", list[1].ClientName)
}
