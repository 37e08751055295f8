package model

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType distinguishes money in from money out.
type TransactionType string

const (
	TypeCredit TransactionType = "Credit"
	TypeDebit  TransactionType = "Debit"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TypeCredit || t == TypeDebit
}

// Transaction is a single ledger entry. Category and account are free text;
// the category vocabulary in categories.go is a suggestion list, not an
// enum. Amount is always non-negative, with direction carried by Type.
type Transaction struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Account     string          `json:"account"`
	Type        TransactionType `json:"type"`
	Amount      float64         `json:"amount"`
	Status      string          `json:"status"`
	Reference   string          `json:"reference,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewTransaction builds a transaction with a fresh ID and timestamps.
func NewTransaction(date time.Time, description, category, account string, txType TransactionType, amount float64, status, reference, notes string) *Transaction {
	now := time.Now().UTC()
	return &Transaction{
		ID:          uuid.New().String(),
		Date:        date,
		Description: description,
		Category:    category,
		Account:     account,
		Type:        txType,
		Amount:      amount,
		Status:      status,
		Reference:   reference,
		Notes:       notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Clone returns a copy of the transaction.
func (t *Transaction) Clone() *Transaction {
	out := *t
	return &out
}
