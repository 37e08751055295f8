package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerdash/backend/internal/model"
)

func TestFileStoreRoundtrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledgerdash.json")

	s, err := OpenFileStore(path)
	require.NoError(t, err)

	inv := storeInvoice("Acme")
	require.NoError(t, s.CreateInvoice(ctx, inv))
	tx := model.NewTransaction(time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC),
		"Hosting", "Software", "Checking", model.TypeDebit, 49, "Completed", "", "")
	require.NoError(t, s.CreateTransaction(ctx, tx))

	prefs := model.DefaultPreferences()
	prefs.Currency = "GBP"
	require.NoError(t, s.UpdatePreferences(ctx, prefs))

	// Reopen from disk and expect identical contents.
	reopened, err := OpenFileStore(path)
	require.NoError(t, err)

	invoices, err := reopened.ListInvoices(ctx)
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, inv.ID, invoices[0].ID)
	assert.Equal(t, inv.Total, invoices[0].Total)

	transactions, err := reopened.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, 49.0, transactions[0].Amount)

	got, err := reopened.GetPreferences(ctx)
	require.NoError(t, err)
	assert.Equal(t, "GBP", got.Currency)
}

func TestFileStoreMissingFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "does-not-exist-yet.json")

	s, err := OpenFileStore(path)
	require.NoError(t, err)

	invoices, err := s.ListInvoices(ctx)
	require.NoError(t, err)
	assert.Empty(t, invoices)

	// The file only appears once something is written.
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))

	require.NoError(t, s.CreateInvoice(ctx, storeInvoice("Acme")))
	_, statErr = os.Stat(path)
	assert.NoError(t, statErr)
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := OpenFileStore(path)
	assert.Error(t, err)
}

func TestFileStoreDeletePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledgerdash.json")

	s, err := OpenFileStore(path)
	require.NoError(t, err)

	a := storeInvoice("A")
	b := storeInvoice("B")
	require.NoError(t, s.CreateInvoice(ctx, a))
	require.NoError(t, s.CreateInvoice(ctx, b))
	require.NoError(t, s.DeleteInvoice(ctx, a.ID))

	reopened, err := OpenFileStore(path)
	require.NoError(t, err)
	invoices, err := reopened.ListInvoices(ctx)
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, "B", invoices[0].ClientName)
}
