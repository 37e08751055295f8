package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ledgerdash/backend/internal/model"
)

// FileStore persists the whole collection as a single JSON snapshot,
// mirroring the browser-local-storage model the dashboard started with:
// load everything on open, rewrite everything on each mutation. It wraps a
// MemoryStore for all reads so snapshot semantics and ordering match the
// in-memory implementation exactly.
type FileStore struct {
	path string
	mem  *MemoryStore
}

// fileSnapshot is the on-disk layout.
type fileSnapshot struct {
	Invoices     []*model.Invoice     `json:"invoices"`
	Transactions []*model.Transaction `json:"transactions"`
	Preferences  model.Preferences    `json:"preferences"`
}

// OpenFileStore loads the snapshot at path, creating an empty store when
// the file does not exist yet.
func OpenFileStore(path string) (*FileStore, error) {
	fs := &FileStore{path: path, mem: NewMemoryStore()}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return fs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store file: %w", err)
	}

	var snap fileSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode store file %s: %w", path, err)
	}

	ctx := context.Background()
	for _, inv := range snap.Invoices {
		if err := fs.mem.CreateInvoice(ctx, inv); err != nil {
			return nil, fmt.Errorf("load invoice %s: %w", inv.ID, err)
		}
	}
	for _, tx := range snap.Transactions {
		if err := fs.mem.CreateTransaction(ctx, tx); err != nil {
			return nil, fmt.Errorf("load transaction %s: %w", tx.ID, err)
		}
	}
	if snap.Preferences != (model.Preferences{}) {
		if err := fs.mem.UpdatePreferences(ctx, snap.Preferences); err != nil {
			return nil, err
		}
	}
	return fs, nil
}

// save rewrites the snapshot atomically (write to temp file, then rename).
func (f *FileStore) save(ctx context.Context) error {
	invoices, err := f.mem.ListInvoices(ctx)
	if err != nil {
		return err
	}
	transactions, err := f.mem.ListTransactions(ctx)
	if err != nil {
		return err
	}
	prefs, err := f.mem.GetPreferences(ctx)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(fileSnapshot{
		Invoices:     invoices,
		Transactions: transactions,
		Preferences:  prefs,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store file: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}

func (f *FileStore) CreateInvoice(ctx context.Context, inv *model.Invoice) error {
	if err := f.mem.CreateInvoice(ctx, inv); err != nil {
		return err
	}
	return f.save(ctx)
}

func (f *FileStore) GetInvoice(ctx context.Context, id string) (*model.Invoice, error) {
	return f.mem.GetInvoice(ctx, id)
}

func (f *FileStore) UpdateInvoice(ctx context.Context, inv *model.Invoice) error {
	if err := f.mem.UpdateInvoice(ctx, inv); err != nil {
		return err
	}
	return f.save(ctx)
}

func (f *FileStore) DeleteInvoice(ctx context.Context, id string) error {
	if err := f.mem.DeleteInvoice(ctx, id); err != nil {
		return err
	}
	return f.save(ctx)
}

func (f *FileStore) ListInvoices(ctx context.Context) ([]*model.Invoice, error) {
	return f.mem.ListInvoices(ctx)
}

func (f *FileStore) CreateTransaction(ctx context.Context, tx *model.Transaction) error {
	if err := f.mem.CreateTransaction(ctx, tx); err != nil {
		return err
	}
	return f.save(ctx)
}

func (f *FileStore) GetTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	return f.mem.GetTransaction(ctx, id)
}

func (f *FileStore) UpdateTransaction(ctx context.Context, tx *model.Transaction) error {
	if err := f.mem.UpdateTransaction(ctx, tx); err != nil {
		return err
	}
	return f.save(ctx)
}

func (f *FileStore) DeleteTransaction(ctx context.Context, id string) error {
	if err := f.mem.DeleteTransaction(ctx, id); err != nil {
		return err
	}
	return f.save(ctx)
}

func (f *FileStore) ListTransactions(ctx context.Context) ([]*model.Transaction, error) {
	return f.mem.ListTransactions(ctx)
}

func (f *FileStore) GetPreferences(ctx context.Context) (model.Preferences, error) {
	return f.mem.GetPreferences(ctx)
}

func (f *FileStore) UpdatePreferences(ctx context.Context, prefs model.Preferences) error {
	if err := f.mem.UpdatePreferences(ctx, prefs); err != nil {
		return err
	}
	return f.save(ctx)
}
