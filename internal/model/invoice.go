package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	StatusPaid          InvoiceStatus = "Paid"
	StatusUnpaid        InvoiceStatus = "Unpaid"
	StatusPartiallyPaid InvoiceStatus = "PartiallyPaid"
	StatusOverdue       InvoiceStatus = "Overdue"
	StatusCancelled     InvoiceStatus = "Cancelled"
)

// InvoiceStatuses lists every status in display order.
var InvoiceStatuses = []InvoiceStatus{
	StatusPaid,
	StatusUnpaid,
	StatusPartiallyPaid,
	StatusOverdue,
	StatusCancelled,
}

// Valid reports whether s is one of the known statuses.
func (s InvoiceStatus) Valid() bool {
	for _, known := range InvoiceStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Outstanding reports whether the invoice still needs collecting.
func (s InvoiceStatus) Outstanding() bool {
	return s == StatusUnpaid || s == StatusOverdue
}

// LineItem is a single billed line on an invoice. Amount is derived from
// Quantity and UnitPrice by the invoice constructor.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Amount      float64 `json:"amount"`
}

// Invoice is a billed document for a client. Monetary fields are computed
// once at construction (total == subtotal + tax_amount, subtotal == sum of
// item amounts); downstream code trusts them and never re-validates.
type Invoice struct {
	ID            string        `json:"id"`
	ClientName    string        `json:"client_name"`
	ClientEmail   string        `json:"client_email"`
	ClientAddress string        `json:"client_address"`
	IssueDate     time.Time     `json:"issue_date"`
	DueDate       time.Time     `json:"due_date"`
	Items         []LineItem    `json:"items"`
	Subtotal      float64       `json:"subtotal"`
	TaxRate       float64       `json:"tax_rate"`
	TaxAmount     float64       `json:"tax_amount"`
	Total         float64       `json:"total"`
	Notes         string        `json:"notes,omitempty"`
	Status        InvoiceStatus `json:"status"`
	PaymentDate   *time.Time    `json:"payment_date,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// NewInvoice builds an invoice and derives every computed monetary field.
// Line amounts, subtotal, tax and total are calculated with decimal
// arithmetic and only then narrowed to float64, so the construction
// invariants hold exactly. taxRate is a percentage (e.g. 10 for 10%).
func NewInvoice(clientName, clientEmail, clientAddress string, issueDate, dueDate time.Time, items []LineItem, taxRate float64, notes string) *Invoice {
	now := time.Now().UTC()
	inv := &Invoice{
		ID:            uuid.New().String(),
		ClientName:    clientName,
		ClientEmail:   clientEmail,
		ClientAddress: clientAddress,
		IssueDate:     issueDate,
		DueDate:       dueDate,
		Items:         items,
		TaxRate:       taxRate,
		Notes:         notes,
		Status:        StatusUnpaid,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	inv.Recalculate()
	return inv
}

// Recalculate rederives line amounts, subtotal, tax amount and total from
// the current items and tax rate. Called by constructors and by the edit
// path after line items change.
func (inv *Invoice) Recalculate() {
	subtotal := decimal.Zero
	for i := range inv.Items {
		amount := decimal.NewFromFloat(inv.Items[i].Quantity).
			Mul(decimal.NewFromFloat(inv.Items[i].UnitPrice))
		inv.Items[i].Amount = amount.InexactFloat64()
		subtotal = subtotal.Add(amount)
	}
	tax := subtotal.Mul(decimal.NewFromFloat(inv.TaxRate)).Div(decimal.NewFromInt(100))
	inv.Subtotal = subtotal.InexactFloat64()
	inv.TaxAmount = tax.InexactFloat64()
	inv.Total = subtotal.Add(tax).InexactFloat64()
}

// Clone returns a deep copy so callers can hand out snapshots without
// sharing line-item or payment-date storage.
func (inv *Invoice) Clone() *Invoice {
	out := *inv
	out.Items = make([]LineItem, len(inv.Items))
	copy(out.Items, inv.Items)
	if inv.PaymentDate != nil {
		d := *inv.PaymentDate
		out.PaymentDate = &d
	}
	return &out
}
