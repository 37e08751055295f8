package service

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerdash/backend/internal/model"
)

// lineItemRequest is one line of an invoice create/update body. Amounts
// are never accepted from the client; the model derives them.
type lineItemRequest struct {
	Description string  `json:"description" binding:"required"`
	Quantity    float64 `json:"quantity" binding:"required,gt=0"`
	UnitPrice   float64 `json:"unit_price" binding:"gte=0"`
}

type invoiceRequest struct {
	ClientName    string            `json:"client_name" binding:"required"`
	ClientEmail   string            `json:"client_email"`
	ClientAddress string            `json:"client_address"`
	IssueDate     string            `json:"issue_date" binding:"required"`
	DueDate       string            `json:"due_date" binding:"required"`
	Items         []lineItemRequest `json:"items" binding:"required,min=1,dive"`
	TaxRate       float64           `json:"tax_rate" binding:"gte=0"`
	Notes         string            `json:"notes"`
	Status        string            `json:"status"`
	PaymentDate   string            `json:"payment_date"`
}

// CreateInvoice validates the request, derives the computed monetary
// fields and stores the invoice.
func (s *DashboardService) CreateInvoice(c *gin.Context) {
	var req invoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}

	issue, err := parseDate(req.IssueDate)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	due, err := parseDate(req.DueDate)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}

	items := make([]model.LineItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, model.LineItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}

	inv := model.NewInvoice(req.ClientName, req.ClientEmail, req.ClientAddress, issue, due, items, req.TaxRate, req.Notes)
	if err := s.applyStatus(inv, req.Status, req.PaymentDate); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}

	if err := s.store.CreateInvoice(c.Request.Context(), inv); err != nil {
		s.fail(c, http.StatusInternalServerError, fmt.Errorf("create invoice: %w", err))
		return
	}
	s.invalidateAnalyticsCache(c.Request.Context())
	s.log.WithFields(map[string]interface{}{
		"invoice": inv.ID,
		"client":  inv.ClientName,
		"total":   inv.Total,
	}).Info("invoice created")

	c.JSON(http.StatusCreated, inv)
}

// GetInvoice returns one invoice by ID.
func (s *DashboardService) GetInvoice(c *gin.Context) {
	inv, err := s.store.GetInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

// ListInvoices returns every invoice in creation order.
func (s *DashboardService) ListInvoices(c *gin.Context) {
	invoices, err := s.store.ListInvoices(c.Request.Context())
	if err != nil {
		s.fail(c, http.StatusInternalServerError, fmt.Errorf("list invoices: %w", err))
		return
	}
	c.JSON(http.StatusOK, invoices)
}

// UpdateInvoice replaces an invoice's editable fields and rederives the
// computed ones.
func (s *DashboardService) UpdateInvoice(c *gin.Context) {
	var req invoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}

	inv, err := s.store.GetInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, statusFor(err), err)
		return
	}

	issue, err := parseDate(req.IssueDate)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	due, err := parseDate(req.DueDate)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}

	inv.ClientName = req.ClientName
	inv.ClientEmail = req.ClientEmail
	inv.ClientAddress = req.ClientAddress
	inv.IssueDate = issue
	inv.DueDate = due
	inv.TaxRate = req.TaxRate
	inv.Notes = req.Notes
	inv.Items = inv.Items[:0]
	for _, it := range req.Items {
		inv.Items = append(inv.Items, model.LineItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	inv.Recalculate()

	if err := s.applyStatus(inv, req.Status, req.PaymentDate); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}

	if err := s.store.UpdateInvoice(c.Request.Context(), inv); err != nil {
		s.fail(c, statusFor(err), fmt.Errorf("update invoice: %w", err))
		return
	}
	s.invalidateAnalyticsCache(c.Request.Context())

	c.JSON(http.StatusOK, inv)
}

// DeleteInvoice removes an invoice.
func (s *DashboardService) DeleteInvoice(c *gin.Context) {
	if err := s.store.DeleteInvoice(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, statusFor(err), err)
		return
	}
	s.invalidateAnalyticsCache(c.Request.Context())
	c.Status(http.StatusNoContent)
}

// applyStatus applies an optional status and payment date from a request.
// A Paid status without a payment date defaults it to the reference clock;
// a non-Paid status clears it.
func (s *DashboardService) applyStatus(inv *model.Invoice, status, paymentDate string) error {
	if status == "" {
		return nil
	}
	st := model.InvoiceStatus(status)
	if !st.Valid() {
		return fmt.Errorf("unknown invoice status %q", status)
	}
	inv.Status = st

	if st != model.StatusPaid {
		inv.PaymentDate = nil
		return nil
	}
	if paymentDate == "" {
		now := s.now()
		inv.PaymentDate = &now
		return nil
	}
	paid, err := parseDate(paymentDate)
	if err != nil {
		return err
	}
	inv.PaymentDate = &paid
	return nil
}
