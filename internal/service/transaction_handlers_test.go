package service

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerdash/backend/internal/model"
)

func validTransactionBody() map[string]interface{} {
	return map[string]interface{}{
		"date":        "2025-06-01",
		"description": "Office rent",
		"category":    "Rent",
		"account":     "Checking",
		"type":        "Debit",
		"amount":      1200,
	}
}

func TestCreateTransaction(t *testing.T) {
	t.Run("defaults status to Completed", func(t *testing.T) {
		_, router := newTestService(t)
		w := doJSON(t, router, http.MethodPost, "/api/v1/transactions", validTransactionBody())
		requireStatus(t, w, http.StatusCreated)

		var tx model.Transaction
		decode(t, w, &tx)
		assert.NotEmpty(t, tx.ID)
		assert.Equal(t, "Completed", tx.Status)
		assert.Equal(t, model.TypeDebit, tx.Type)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, router := newTestService(t)
		body := validTransactionBody()
		body["type"] = "Transfer"
		w := doJSON(t, router, http.MethodPost, "/api/v1/transactions", body)
		requireStatus(t, w, http.StatusBadRequest)
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		_, router := newTestService(t)
		body := validTransactionBody()
		body["date"] = "June 1st"
		w := doJSON(t, router, http.MethodPost, "/api/v1/transactions", body)
		requireStatus(t, w, http.StatusBadRequest)
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		_, router := newTestService(t)
		body := validTransactionBody()
		body["amount"] = -5
		w := doJSON(t, router, http.MethodPost, "/api/v1/transactions", body)
		requireStatus(t, w, http.StatusBadRequest)
	})
}

func TestTransactionLifecycle(t *testing.T) {
	_, router := newTestService(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/transactions", validTransactionBody())
	requireStatus(t, w, http.StatusCreated)
	var created model.Transaction
	decode(t, w, &created)

	w = doJSON(t, router, http.MethodGet, "/api/v1/transactions/"+created.ID, nil)
	requireStatus(t, w, http.StatusOK)

	body := validTransactionBody()
	body["amount"] = 1300
	w = doJSON(t, router, http.MethodPut, "/api/v1/transactions/"+created.ID, body)
	requireStatus(t, w, http.StatusOK)
	var updated model.Transaction
	decode(t, w, &updated)
	assert.Equal(t, 1300.0, updated.Amount)

	w = doJSON(t, router, http.MethodGet, "/api/v1/transactions", nil)
	requireStatus(t, w, http.StatusOK)
	var list []model.Transaction
	decode(t, w, &list)
	require.Len(t, list, 1)

	w = doJSON(t, router, http.MethodDelete, "/api/v1/transactions/"+created.ID, nil)
	requireStatus(t, w, http.StatusNoContent)

	w = doJSON(t, router, http.MethodGet, "/api/v1/transactions/"+created.ID, nil)
	requireStatus(t, w, http.StatusNotFound)
}
