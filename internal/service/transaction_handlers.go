package service

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerdash/backend/internal/model"
)

type transactionRequest struct {
	Date        string  `json:"date" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Category    string  `json:"category"`
	Account     string  `json:"account"`
	Type        string  `json:"type" binding:"required"`
	Amount      float64 `json:"amount" binding:"gte=0"`
	Status      string  `json:"status"`
	Reference   string  `json:"reference"`
	Notes       string  `json:"notes"`
}

func (r *transactionRequest) build() (*model.Transaction, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return nil, err
	}
	txType := model.TransactionType(r.Type)
	if !txType.Valid() {
		return nil, fmt.Errorf("unknown transaction type %q", r.Type)
	}
	status := r.Status
	if status == "" {
		status = "Completed"
	}
	return model.NewTransaction(date, r.Description, r.Category, r.Account, txType, r.Amount, status, r.Reference, r.Notes), nil
}

// CreateTransaction validates and stores a ledger entry.
func (s *DashboardService) CreateTransaction(c *gin.Context) {
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	tx, err := req.build()
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	if err := s.store.CreateTransaction(c.Request.Context(), tx); err != nil {
		s.fail(c, http.StatusInternalServerError, fmt.Errorf("create transaction: %w", err))
		return
	}
	s.invalidateAnalyticsCache(c.Request.Context())
	s.log.WithFields(map[string]interface{}{
		"transaction": tx.ID,
		"type":        tx.Type,
		"amount":      tx.Amount,
	}).Info("transaction created")

	c.JSON(http.StatusCreated, tx)
}

// GetTransaction returns one transaction by ID.
func (s *DashboardService) GetTransaction(c *gin.Context) {
	tx, err := s.store.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

// ListTransactions returns every transaction in creation order.
func (s *DashboardService) ListTransactions(c *gin.Context) {
	transactions, err := s.store.ListTransactions(c.Request.Context())
	if err != nil {
		s.fail(c, http.StatusInternalServerError, fmt.Errorf("list transactions: %w", err))
		return
	}
	c.JSON(http.StatusOK, transactions)
}

// UpdateTransaction replaces a transaction's editable fields.
func (s *DashboardService) UpdateTransaction(c *gin.Context) {
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}

	existing, err := s.store.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, statusFor(err), err)
		return
	}

	updated, err := req.build()
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	if err := s.store.UpdateTransaction(c.Request.Context(), updated); err != nil {
		s.fail(c, statusFor(err), fmt.Errorf("update transaction: %w", err))
		return
	}
	s.invalidateAnalyticsCache(c.Request.Context())

	c.JSON(http.StatusOK, updated)
}

// DeleteTransaction removes a transaction.
func (s *DashboardService) DeleteTransaction(c *gin.Context) {
	if err := s.store.DeleteTransaction(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, statusFor(err), err)
		return
	}
	s.invalidateAnalyticsCache(c.Request.Context())
	c.Status(http.StatusNoContent)
}
