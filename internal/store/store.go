// Package store owns the invoice and transaction collections. The
// analytics core never touches a store directly: the service layer pulls
// read-only snapshots out and passes them in, so the store is the single
// place records are validated and mutated.
package store

import (
	"context"
	"errors"

	"github.com/ledgerdash/backend/internal/model"
)

// ErrNotFound is returned when a record ID does not exist.
var ErrNotFound = errors.New("record not found")

// Store defines the persistence operations the dashboard service uses.
// List methods return deep copies in creation order; callers may mutate
// the returned records freely without affecting stored state.
type Store interface {
	// Invoice operations
	CreateInvoice(ctx context.Context, inv *model.Invoice) error
	GetInvoice(ctx context.Context, id string) (*model.Invoice, error)
	UpdateInvoice(ctx context.Context, inv *model.Invoice) error
	DeleteInvoice(ctx context.Context, id string) error
	ListInvoices(ctx context.Context) ([]*model.Invoice, error)

	// Transaction operations
	CreateTransaction(ctx context.Context, tx *model.Transaction) error
	GetTransaction(ctx context.Context, id string) (*model.Transaction, error)
	UpdateTransaction(ctx context.Context, tx *model.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error
	ListTransactions(ctx context.Context) ([]*model.Transaction, error)

	// Display preferences
	GetPreferences(ctx context.Context) (model.Preferences, error)
	UpdatePreferences(ctx context.Context, prefs model.Preferences) error
}
