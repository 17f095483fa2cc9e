package mirror

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"contas/internal/core"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "mirror.db"), 0)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestReplaceAccounts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.ReplaceAccounts(ctx, []core.Account{
		{ID: 1, Name: "Main", Currency: "EUR"},
		{ID: 2, Name: "USD Savings", Currency: "USD", Status: "CLOSED"},
	})
	if err != nil {
		t.Fatalf("ReplaceAccounts: %v", err)
	}

	// a second replace fully supersedes the first
	if err := s.ReplaceAccounts(ctx, []core.Account{{ID: 3, Name: "New", Currency: "EUR"}}); err != nil {
		t.Fatalf("second ReplaceAccounts: %v", err)
	}
	got, err := s.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("ListAccounts: %v", err)
	}
	if len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("got %+v", got)
	}
}

func TestUpsertAndListTransactions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	catID := int64(4)
	trID := int64(9)

	first := core.Transaction{
		ID:         1,
		AccountID:  2,
		CategoryID: &catID,
		Amount:     "12.50",
		OccurredAt: time.Date(2025, 3, 16, 9, 0, 0, 0, time.UTC),
	}
	second := core.Transaction{
		ID:           2,
		AccountID:    2,
		Amount:       "92.00",
		OccurredAt:   time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC),
		FromTransfer: true,
		TransferID:   &trID,
		Description:  "fx transfer leg",
	}
	if err := s.UpsertTransactions(ctx, []core.Transaction{first, second}); err != nil {
		t.Fatalf("UpsertTransactions: %v", err)
	}

	// upsert with a changed amount must update in place
	first.Amount = "13.00"
	if err := s.UpsertTransactions(ctx, []core.Transaction{first}); err != nil {
		t.Fatalf("second UpsertTransactions: %v", err)
	}

	got, err := s.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d", len(got))
	}
	// ordered by occurred_at: the transfer leg comes first
	if got[0].ID != 2 || !got[0].FromTransfer || got[0].TransferID == nil || *got[0].TransferID != 9 {
		t.Fatalf("first row = %+v", got[0])
	}
	if got[1].ID != 1 || got[1].Amount != "13.00" {
		t.Fatalf("second row = %+v", got[1])
	}
	if got[1].CategoryID == nil || *got[1].CategoryID != 4 {
		t.Fatalf("category id = %v", got[1].CategoryID)
	}
	if !got[1].OccurredAt.Equal(time.Date(2025, 3, 16, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("occurred_at = %v", got[1].OccurredAt)
	}
}

func TestUpsertTransactionsBatched(t *testing.T) {
	s, err := NewStore(filepath.Join(t.TempDir(), "mirror.db"), 2)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	ctx := context.Background()

	// five rows across three commits of at most two
	var txs []core.Transaction
	for i := int64(1); i <= 5; i++ {
		txs = append(txs, core.Transaction{
			ID:         i,
			AccountID:  1,
			Amount:     "1.00",
			OccurredAt: time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Minute),
		})
	}
	if err := s.UpsertTransactions(ctx, txs); err != nil {
		t.Fatalf("UpsertTransactions: %v", err)
	}
	got, err := s.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}

	// a row in the last, short batch still updates in place
	txs[4].Amount = "2.00"
	if err := s.UpsertTransactions(ctx, txs); err != nil {
		t.Fatalf("second UpsertTransactions: %v", err)
	}
	got, err = s.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if got[4].ID != 5 || got[4].Amount != "2.00" {
		t.Fatalf("last row = %+v", got[4])
	}
}

func TestDeleteTransaction(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tx := core.Transaction{ID: 1, AccountID: 1, Amount: "5.00", OccurredAt: time.Now().UTC()}
	if err := s.UpsertTransactions(ctx, []core.Transaction{tx}); err != nil {
		t.Fatalf("UpsertTransactions: %v", err)
	}
	if err := s.DeleteTransaction(ctx, 1); err != nil {
		t.Fatalf("DeleteTransaction: %v", err)
	}
	got, err := s.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty mirror, got %+v", got)
	}
	// deleting twice is fine
	if err := s.DeleteTransaction(ctx, 1); err != nil {
		t.Fatalf("second DeleteTransaction: %v", err)
	}
}
