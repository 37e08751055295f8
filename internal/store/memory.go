package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerdash/backend/internal/model"
)

// MemoryStore implements Store with mutex-guarded in-memory maps. Creation
// order is tracked explicitly so list snapshots are deterministic; the
// analytics top-5 tie-breaking depends on that order being stable.
type MemoryStore struct {
	mu sync.RWMutex

	invoices     map[string]*model.Invoice
	invoiceOrder []string

	transactions map[string]*model.Transaction
	txOrder      []string

	prefs model.Preferences
}

// NewMemoryStore creates an empty in-memory store with default preferences.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		invoices:     make(map[string]*model.Invoice),
		transactions: make(map[string]*model.Transaction),
		prefs:        model.DefaultPreferences(),
	}
}

// Invoice operations

func (m *MemoryStore) CreateInvoice(ctx context.Context, inv *model.Invoice) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	if _, exists := m.invoices[inv.ID]; exists {
		return fmt.Errorf("invoice already exists: %s", inv.ID)
	}
	m.invoices[inv.ID] = inv.Clone()
	m.invoiceOrder = append(m.invoiceOrder, inv.ID)
	return nil
}

func (m *MemoryStore) GetInvoice(ctx context.Context, id string) (*model.Invoice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	inv, ok := m.invoices[id]
	if !ok {
		return nil, fmt.Errorf("get invoice %s: %w", id, ErrNotFound)
	}
	return inv.Clone(), nil
}

func (m *MemoryStore) UpdateInvoice(ctx context.Context, inv *model.Invoice) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.invoices[inv.ID]; !ok {
		return fmt.Errorf("update invoice %s: %w", inv.ID, ErrNotFound)
	}
	inv.UpdatedAt = time.Now().UTC()
	m.invoices[inv.ID] = inv.Clone()
	return nil
}

func (m *MemoryStore) DeleteInvoice(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.invoices[id]; !ok {
		return fmt.Errorf("delete invoice %s: %w", id, ErrNotFound)
	}
	delete(m.invoices, id)
	m.invoiceOrder = removeID(m.invoiceOrder, id)
	return nil
}

func (m *MemoryStore) ListInvoices(ctx context.Context) ([]*model.Invoice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*model.Invoice, 0, len(m.invoiceOrder))
	for _, id := range m.invoiceOrder {
		out = append(out, m.invoices[id].Clone())
	}
	return out, nil
}

// Transaction operations

func (m *MemoryStore) CreateTransaction(ctx context.Context, tx *model.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	if _, exists := m.transactions[tx.ID]; exists {
		return fmt.Errorf("transaction already exists: %s", tx.ID)
	}
	m.transactions[tx.ID] = tx.Clone()
	m.txOrder = append(m.txOrder, tx.ID)
	return nil
}

func (m *MemoryStore) GetTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tx, ok := m.transactions[id]
	if !ok {
		return nil, fmt.Errorf("get transaction %s: %w", id, ErrNotFound)
	}
	return tx.Clone(), nil
}

func (m *MemoryStore) UpdateTransaction(ctx context.Context, tx *model.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.transactions[tx.ID]; !ok {
		return fmt.Errorf("update transaction %s: %w", tx.ID, ErrNotFound)
	}
	tx.UpdatedAt = time.Now().UTC()
	m.transactions[tx.ID] = tx.Clone()
	return nil
}

func (m *MemoryStore) DeleteTransaction(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.transactions[id]; !ok {
		return fmt.Errorf("delete transaction %s: %w", id, ErrNotFound)
	}
	delete(m.transactions, id)
	m.txOrder = removeID(m.txOrder, id)
	return nil
}

func (m *MemoryStore) ListTransactions(ctx context.Context) ([]*model.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*model.Transaction, 0, len(m.txOrder))
	for _, id := range m.txOrder {
		out = append(out, m.transactions[id].Clone())
	}
	return out, nil
}

// Preferences

func (m *MemoryStore) GetPreferences(ctx context.Context) (model.Preferences, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.prefs, nil
}

func (m *MemoryStore) UpdatePreferences(ctx context.Context, prefs model.Preferences) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs = prefs
	return nil
}

func removeID(ids []string, id string) []string {
	for i, existing := range ids {
		if existing == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
